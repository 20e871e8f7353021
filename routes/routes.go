package routes

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mmartinez10/event-invitations-backend/config"
	"github.com/mmartinez10/event-invitations-backend/database"
	"github.com/mmartinez10/event-invitations-backend/internal/auditlog"
	"github.com/mmartinez10/event-invitations-backend/internal/auth"
	"github.com/mmartinez10/event-invitations-backend/internal/evento"
	"github.com/mmartinez10/event-invitations-backend/internal/invitacion"
	"github.com/mmartinez10/event-invitations-backend/internal/notification"
	"github.com/mmartinez10/event-invitations-backend/internal/qr"
	"github.com/mmartinez10/event-invitations-backend/internal/reportes"
	"github.com/mmartinez10/event-invitations-backend/internal/usuario"
	"github.com/mmartinez10/event-invitations-backend/middleware"

	_ "github.com/mmartinez10/event-invitations-backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Setup wires every module (repo → service → handler) and registers the routes.
func Setup(r *gin.Engine, cfg *config.Config) {
	for _, dir := range []string{cfg.TempPath, cfg.UploadPath} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Printf("⚠️ No se pudo crear el directorio %s: %v\n", dir, err)
		}
	}

	// QR artifacts and uploaded invitation images are served as static files.
	r.Static("/temp", cfg.TempPath)
	r.Static("/uploads", cfg.UploadPath)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())
	api.Use(middleware.AuditMiddleware()) // captures client IP for audit trails

	// ========== Audit Log ==========
	auditRepo := auditlog.NewRepository(database.DB)
	auditSvc := auditlog.NewService(auditRepo)
	auditHandler := auditlog.NewHandler(auditSvc)

	// ========== Auth ==========
	authRepo := auth.NewRepository(database.DB)
	authSvc := auth.NewService(authRepo, cfg)
	authHandler := auth.NewHandler(authSvc, auditSvc)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.GET("/me", middleware.AuthMiddleware(cfg, authSvc), authHandler.Me)
	}

	// ========== Notification stack ==========
	renderer := notification.NewRenderer()
	dispatcher := notification.NewDispatcher(cfg)

	canales := map[string]notification.Channel{
		notification.CanalCorreo: notification.NewEmailSender(cfg),
	}
	if wa, err := notification.NewWhatsAppSender(context.Background(), cfg); err != nil {
		fmt.Printf("⚠️ Canal de WhatsApp deshabilitado: %v\n", err)
	} else {
		canales[notification.CanalWhatsApp] = wa
	}

	notifRepo := notification.NewRepository(database.DB)
	publisher := notification.NewKafkaPublisher(cfg)
	notifSvc := notification.NewService(notifRepo, dispatcher, renderer, canales, publisher)
	notifHandler := notification.NewHandler(notifSvc)
	notification.StartKafkaConsumer(cfg, notifSvc)

	// ========== Usuarios ==========
	usuarioRepo := usuario.NewRepository(database.DB)
	usuarioSvc := usuario.NewService(usuarioRepo)
	usuarioHandler := usuario.NewHandler(usuarioSvc)

	// ========== Eventos ==========
	eventoRepo := evento.NewRepository(database.DB)
	eventoSvc := evento.NewService(eventoRepo, auditSvc)
	eventoHandler := evento.NewHandler(eventoSvc)

	// ========== Invitaciones ==========
	qrGen := qr.NewGenerator(cfg.TempPath)
	invRepo := invitacion.NewRepository(database.DB)
	invSvc := invitacion.NewService(invRepo, usuarioRepo, eventoRepo, qrGen, notifSvc, auditSvc, cfg.FormBaseURL)
	invHandler := invitacion.NewHandler(invSvc, cfg.UploadPath)

	// ========== Reportes ==========
	repRepo := reportes.NewRepository(database.DB)
	repExporter := reportes.NewExporter()
	repSvc := reportes.NewService(repRepo, eventoRepo, repExporter, auditSvc)
	repHandler := reportes.NewHandler(repSvc)

	// Public endpoint: guests confirm attendance with the code from their
	// invitation, no token involved. The rate limiter above is the only guard.
	api.POST("/invitaciones/confirmar/:codigo", invHandler.Confirmar)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg, authSvc))

	// ========== Audit Logs (admin only) ==========
	auditRoutes := protected.Group("/auditlogs")
	auditRoutes.Use(middleware.RequireRol(auth.RolAdmin))
	{
		auditRoutes.GET("/", auditHandler.GetAuditLogs)
		auditRoutes.GET("/stats", auditHandler.GetAuditLogStats)
		auditRoutes.GET("/:id", auditHandler.GetAuditLogByID)
	}

	// ========== Usuarios ==========
	usuarioRoutes := protected.Group("/usuarios")
	{
		usuarioRoutes.POST("/", usuarioHandler.Create)
		usuarioRoutes.GET("/", usuarioHandler.List)
		usuarioRoutes.GET("/:id", usuarioHandler.GetByID)
		usuarioRoutes.PUT("/:id", usuarioHandler.Update)
		usuarioRoutes.DELETE("/:id", middleware.RequireRol(auth.RolAdmin), usuarioHandler.Delete)
	}

	// ========== Eventos ==========
	eventoRoutes := protected.Group("/eventos")
	{
		eventoRoutes.POST("/", eventoHandler.CreateEvento)
		eventoRoutes.GET("/", eventoHandler.ListEventos)
		eventoRoutes.GET("/proximos", eventoHandler.GetProximosEventos)
		eventoRoutes.GET("/stats", eventoHandler.GetEventoStats)
		eventoRoutes.GET("/:id", eventoHandler.GetEventoByID)
		eventoRoutes.GET("/:id/invitaciones", invHandler.ListByEvento)
		eventoRoutes.PUT("/:id", eventoHandler.UpdateEvento)
		eventoRoutes.DELETE("/:id", middleware.RequireRol(auth.RolAdmin), eventoHandler.DeleteEvento)
	}

	// ========== Invitaciones ==========
	invRoutes := protected.Group("/invitaciones")
	{
		invRoutes.POST("/", invHandler.CrearInvitacion)
		invRoutes.GET("/usuario/:id", invHandler.ListByUsuario)
		invRoutes.GET("/:id", invHandler.GetByID)
		invRoutes.GET("/:id/confirmaciones", invHandler.ListConfirmaciones)
		invRoutes.DELETE("/:id", middleware.RequireRol(auth.RolAdmin), invHandler.Delete)

		// Two-stage dispatch: first the confirmation form link, then the codes.
		invRoutes.POST("/enviar-formulario", invHandler.EnviarFormulario)
		invRoutes.POST("/enviar-codigos", invHandler.EnviarCodigos)
	}

	// ========== Notificaciones (delivery log) ==========
	notifRoutes := protected.Group("/notificaciones")
	{
		notifRoutes.GET("/", notifHandler.ListarEnvios)
		notifRoutes.GET("/codigo/:codigo", notifHandler.ListarEnviosPorCodigo)
	}

	// ========== Reportes ==========
	reporteRoutes := protected.Group("/reportes")
	{
		reporteRoutes.GET("/asistencia/:id_evento", repHandler.GetAsistencia)
		reporteRoutes.GET("/invitaciones/:id_evento", repHandler.GetInvitaciones)
	}
}

// CORSMiddleware returns the CORS policy applied in front of every route.
func CORSMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
	})
}
