package reportes

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mmartinez10/event-invitations-backend/internal/evento"
	"github.com/mmartinez10/event-invitations-backend/middleware"
)

type Handler struct {
	Service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{Service: s}
}

// GetAsistencia godoc
// @Summary Reporte de asistencia de un evento
// @Description Lista los asistentes confirmados (titulares y acompañantes). Con ?format=csv|excel|pdf descarga el archivo.
// @Tags reportes
// @Produce json
// @Param id_evento path int true "ID del evento"
// @Param format query string false "csv, excel o pdf"
// @Success 200 {object} map[string]interface{}
// @Router /reportes/asistencia/{id_evento} [get]
func (h *Handler) GetAsistencia(c *gin.Context) {
	eventoID, err := strconv.ParseUint(c.Param("id_evento"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id de evento inválido"})
		return
	}

	format := c.Query("format")
	if format != "" {
		adminID := middleware.GetAdminIDFromContext(c)
		ip := middleware.GetIPFromContext(c)

		bytes, fname, mime, err := h.Service.ExportAsistencia(c.Request.Context(), uint(eventoID), format, adminID, ip)
		if err != nil {
			h.renderError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fname))
		c.Data(http.StatusOK, mime, bytes)
		return
	}

	resumen, rows, err := h.Service.GetAsistencia(uint(eventoID))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resumen": resumen, "asistentes": rows})
}

// GetInvitaciones godoc
// @Summary Reporte de invitaciones de un evento
// @Description Lista las invitaciones con su estado de envío y confirmación. Con ?format=csv|excel|pdf descarga el archivo.
// @Tags reportes
// @Produce json
// @Param id_evento path int true "ID del evento"
// @Param format query string false "csv, excel o pdf"
// @Success 200 {object} map[string]interface{}
// @Router /reportes/invitaciones/{id_evento} [get]
func (h *Handler) GetInvitaciones(c *gin.Context) {
	eventoID, err := strconv.ParseUint(c.Param("id_evento"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id de evento inválido"})
		return
	}

	format := c.Query("format")
	if format != "" {
		adminID := middleware.GetAdminIDFromContext(c)
		ip := middleware.GetIPFromContext(c)

		bytes, fname, mime, err := h.Service.ExportInvitaciones(c.Request.Context(), uint(eventoID), format, adminID, ip)
		if err != nil {
			h.renderError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fname))
		c.Data(http.StatusOK, mime, bytes)
		return
	}

	resumen, rows, err := h.Service.GetInvitaciones(uint(eventoID))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resumen": resumen, "invitaciones": rows})
}

func (h *Handler) renderError(c *gin.Context, err error) {
	if errors.Is(err, evento.ErrNoEncontrado) {
		c.JSON(http.StatusNotFound, gin.H{"error": "evento no encontrado"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
