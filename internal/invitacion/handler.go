package invitacion

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mmartinez10/event-invitations-backend/internal/evento"
	"github.com/mmartinez10/event-invitations-backend/middleware"
)

type Handler struct {
	Service    *Service
	UploadPath string
}

func NewHandler(s *Service, uploadPath string) *Handler {
	return &Handler{Service: s, UploadPath: uploadPath}
}

// ===========================
// 🎯 Crear Invitacion - POST /invitaciones (multipart form)
func (h *Handler) CrearInvitacion(c *gin.Context) {
	var req CreateInvitacionRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "datos invalidos: " + err.Error()})
		return
	}

	// Optional image upload, stored under a randomized filename
	imagen := ""
	if file, err := c.FormFile("imagen"); err == nil {
		nombre := uuid.NewString() + filepath.Ext(file.Filename)
		destino := filepath.Join(h.UploadPath, nombre)
		if err := c.SaveUploadedFile(file, destino); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo guardar la imagen"})
			return
		}
		imagen = nombre
	}

	inv, canales, err := h.Service.CrearInvitacion(c.Request.Context(), &req, imagen)
	switch {
	case err == nil:
	case errors.Is(err, ErrInvitacionDuplicada), errors.Is(err, ErrCodigoDuplicado), errors.Is(err, ErrValidacion):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, evento.ErrNoEncontrado):
		c.JSON(http.StatusNotFound, gin.H{"error": "evento no encontrado"})
		return
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo crear la invitacion"})
		fmt.Printf("❌ Crear invitacion: %v\n", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"invitacion": inv,
		"envios":     canales,
	})
}

// ===========================
// 📄 Invitaciones de un usuario - GET /invitaciones/usuario/:id
func (h *Handler) ListByUsuario(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id de usuario invalido"})
		return
	}

	invitaciones, err := h.Service.ListByUsuario(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudieron obtener las invitaciones"})
		return
	}

	c.JSON(http.StatusOK, invitaciones)
}

// ===========================
// 📄 Invitaciones de un evento - GET /eventos/:id/invitaciones
func (h *Handler) ListByEvento(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id de evento invalido"})
		return
	}

	invitaciones, err := h.Service.ListByEvento(c.Request.Context(), uint(id))
	if errors.Is(err, evento.ErrNoEncontrado) {
		c.JSON(http.StatusNotFound, gin.H{"error": "evento no encontrado"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudieron obtener las invitaciones"})
		return
	}

	c.JSON(http.StatusOK, invitaciones)
}

// ===========================
// 📄 Confirmaciones de una invitacion - GET /invitaciones/:id/confirmaciones
func (h *Handler) ListConfirmaciones(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id invalido"})
		return
	}

	confirmaciones, err := h.Service.ListConfirmaciones(c.Request.Context(), uint(id))
	if errors.Is(err, ErrNoEncontrada) {
		c.JSON(http.StatusNotFound, gin.H{"error": "invitacion no encontrada"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudieron obtener las confirmaciones"})
		return
	}

	c.JSON(http.StatusOK, confirmaciones)
}

// ===========================
// 🔍 Get Invitacion - GET /invitaciones/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id invalido"})
		return
	}

	inv, err := h.Service.GetByID(c.Request.Context(), uint(id))
	if errors.Is(err, ErrNoEncontrada) {
		c.JSON(http.StatusNotFound, gin.H{"error": "invitacion no encontrada"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo obtener la invitacion"})
		return
	}

	c.JSON(http.StatusOK, inv)
}

// ===========================
// ✅ Confirmar - POST /invitaciones/confirmar/:codigo
func (h *Handler) Confirmar(c *gin.Context) {
	codigo := c.Param("codigo")
	if codigo == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "codigo requerido"})
		return
	}

	var req ConfirmarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "datos invalidos: " + err.Error()})
		return
	}

	res, err := h.Service.Confirmar(c.Request.Context(), codigo, &req)
	switch {
	case err == nil:
	case errors.Is(err, ErrNoEncontrada):
		c.JSON(http.StatusNotFound, gin.H{"error": "invitacion no encontrada"})
		return
	case errors.Is(err, ErrYaConfirmada), errors.Is(err, ErrValidacion):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo registrar la confirmacion"})
		fmt.Printf("❌ Confirmar %s: %v\n", codigo, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

// ===========================
// 📨 Enviar Formulario - POST /invitaciones/enviar-formulario (stage 1)
func (h *Handler) EnviarFormulario(c *gin.Context) {
	var req EnvioMasivoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "datos invalidos: " + err.Error()})
		return
	}

	resultados, err := h.Service.EnviarFormulario(c.Request.Context(), &req)
	if errors.Is(err, evento.ErrNoEncontrado) {
		c.JSON(http.StatusNotFound, gin.H{"error": "evento no encontrado"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo enviar el formulario"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"resultados": resultados})
}

// ===========================
// 📨 Enviar Codigos - POST /invitaciones/enviar-codigos (stage 2)
func (h *Handler) EnviarCodigos(c *gin.Context) {
	var req EnvioMasivoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "datos invalidos: " + err.Error()})
		return
	}

	resultados, err := h.Service.EnviarCodigos(c.Request.Context(), &req)
	if errors.Is(err, evento.ErrNoEncontrado) {
		c.JSON(http.StatusNotFound, gin.H{"error": "evento no encontrado"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudieron enviar los codigos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"resultados": resultados})
}

// ===========================
// ❌ Delete Invitacion - DELETE /invitaciones/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id invalido"})
		return
	}

	adminID := middleware.GetAdminIDFromContext(c)
	ip := middleware.GetIPFromContext(c)

	err = h.Service.DeleteInvitacion(c.Request.Context(), uint(id), adminID, ip)
	if errors.Is(err, ErrNoEncontrada) {
		c.JSON(http.StatusNotFound, gin.H{"error": "invitacion no encontrada"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo eliminar la invitacion"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "invitacion eliminada"})
}
