package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/mmartinez10/event-invitations-backend/config"
	"github.com/mmartinez10/event-invitations-backend/database"
	"github.com/mmartinez10/event-invitations-backend/internal/auditlog"
	"github.com/mmartinez10/event-invitations-backend/internal/auth"
	"github.com/mmartinez10/event-invitations-backend/internal/evento"
	"github.com/mmartinez10/event-invitations-backend/internal/invitacion"
	"github.com/mmartinez10/event-invitations-backend/internal/notification"
	"github.com/mmartinez10/event-invitations-backend/internal/usuario"
	"github.com/mmartinez10/event-invitations-backend/routes"
	"github.com/mmartinez10/event-invitations-backend/utils"
)

// @title Event Invitations API
// @version 1.0
// @description Gestión de invitaciones a eventos: usuarios, códigos QR y envíos por correo y WhatsApp.
// @BasePath /api/v1
func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	utils.InitRedis(cfg)

	log.Println("🔄 Ejecutando migraciones...")
	if err := db.AutoMigrate(
		&auditlog.AuditLog{},
		&auth.AdminUser{},
		&usuario.Usuario{},
		&evento.Evento{},
		&invitacion.Estado{},
		&invitacion.Invitacion{},
		&invitacion.Confirmacion{},
		&notification.NotificationLog{},
	); err != nil {
		panic(fmt.Sprintf("❌ Fallo en AutoMigrate: %v", err))
	}
	log.Println("✅ Migraciones completadas")

	// Seed estado catalog and initial admin account.
	invRepo := invitacion.NewRepository(db)
	if err := invRepo.SeedEstados(context.Background()); err != nil {
		panic(fmt.Sprintf("❌ Fallo al sembrar estados: %v", err))
	}

	authRepo := auth.NewRepository(db)
	authSvc := auth.NewService(authRepo, cfg)
	if err := authSvc.SeedAdmin(cfg.AdminCorreo, cfg.AdminPassword); err != nil {
		log.Printf("⚠️ No se pudo sembrar el admin inicial: %v", err)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(routes.CORSMiddleware())

	routes.Setup(router, cfg)

	log.Printf("🚀 Servidor escuchando en el puerto %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ El servidor no pudo iniciar: %v", err)
	}
}
