package notification

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// 📨 List delivery logs - GET /notificaciones?canal=correo&limit=50&page=1
func (h *Handler) ListarEnvios(c *gin.Context) {
	canal := c.Query("canal")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	logs, err := h.Service.ListarEnvios(c.Request.Context(), canal, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudieron obtener los envios"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  logs,
		"page":  page,
		"limit": limit,
	})
}

// ===========================
// 🔍 Delivery logs for one code - GET /notificaciones/codigo/:codigo
func (h *Handler) ListarEnviosPorCodigo(c *gin.Context) {
	codigo := c.Param("codigo")
	if codigo == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "codigo requerido"})
		return
	}

	logs, err := h.Service.ListarEnviosPorCodigo(c.Request.Context(), codigo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudieron obtener los envios"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": logs})
}
