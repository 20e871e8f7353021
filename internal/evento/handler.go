package evento

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mmartinez10/event-invitations-backend/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// 🎯 Create Evento - POST /eventos
func (h *Handler) CreateEvento(c *gin.Context) {
	var req CreateEventoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "datos invalidos: " + err.Error()})
		return
	}

	adminID := middleware.GetAdminIDFromContext(c)
	ip := middleware.GetIPFromContext(c)

	e, err := h.Service.CreateEvento(&req, adminID, ip)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, e)
}

// ===========================
// 🔍 Get Evento - GET /eventos/:id
func (h *Handler) GetEventoByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id de evento invalido"})
		return
	}

	e, err := h.Service.GetEventoByID(uint(id))
	if errors.Is(err, ErrNoEncontrado) {
		c.JSON(http.StatusNotFound, gin.H{"error": "evento no encontrado"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo obtener el evento"})
		return
	}

	c.JSON(http.StatusOK, e)
}

// ===========================
// 📆 Próximos Eventos - GET /eventos/proximos
func (h *Handler) GetProximosEventos(c *gin.Context) {
	eventos, err := h.Service.GetProximosEventos()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudieron obtener los eventos"})
		return
	}

	c.JSON(http.StatusOK, eventos)
}

// ===========================
// 📄 List Eventos - GET /eventos?limit=&page=&search=&categoria=
func (h *Handler) ListEventos(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	search := c.Query("search")
	categoria := c.Query("categoria")

	eventos, total, err := h.Service.ListEventos(limit, (page-1)*limit, search, categoria)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudieron obtener los eventos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  eventos,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// ===========================
// 📊 Evento Stats - GET /eventos/stats
func (h *Handler) GetEventoStats(c *gin.Context) {
	stats, err := h.Service.GetEventoStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudieron obtener las estadisticas"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ===========================
// 🛠 Update Evento - PUT /eventos/:id
func (h *Handler) UpdateEvento(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id de evento invalido"})
		return
	}

	var req UpdateEventoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "datos invalidos: " + err.Error()})
		return
	}

	adminID := middleware.GetAdminIDFromContext(c)
	ip := middleware.GetIPFromContext(c)

	e, err := h.Service.UpdateEvento(uint(id), &req, adminID, ip)
	if errors.Is(err, ErrNoEncontrado) {
		c.JSON(http.StatusNotFound, gin.H{"error": "evento no encontrado"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, e)
}

// ===========================
// ❌ Delete Evento - DELETE /eventos/:id
func (h *Handler) DeleteEvento(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id de evento invalido"})
		return
	}

	adminID := middleware.GetAdminIDFromContext(c)
	ip := middleware.GetIPFromContext(c)

	err = h.Service.DeleteEvento(uint(id), adminID, ip)
	if errors.Is(err, ErrNoEncontrado) {
		c.JSON(http.StatusNotFound, gin.H{"error": "evento no encontrado"})
		return
	}
	if errors.Is(err, ErrConInvitaciones) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo eliminar el evento"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "evento eliminado"})
}
