package usuario

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// 🎯 Create Usuario - POST /usuarios
func (h *Handler) Create(c *gin.Context) {
	var req CreateUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "datos invalidos: " + err.Error()})
		return
	}

	u, err := h.Service.Create(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, u)
}

// ===========================
// 🔍 Get Usuario - GET /usuarios/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id invalido"})
		return
	}

	u, err := h.Service.GetByID(c.Request.Context(), uint(id))
	if errors.Is(err, ErrNoEncontrado) {
		c.JSON(http.StatusNotFound, gin.H{"error": "usuario no encontrado"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo obtener el usuario"})
		return
	}

	c.JSON(http.StatusOK, u)
}

// ===========================
// 📄 List Usuarios - GET /usuarios?limit=20&page=1&search=juan
func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	search := c.Query("search")

	usuarios, total, err := h.Service.List(c.Request.Context(), limit, (page-1)*limit, search)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudieron obtener los usuarios"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  usuarios,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// ===========================
// 🛠 Update Usuario - PUT /usuarios/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id invalido"})
		return
	}

	var req UpdateUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "datos invalidos: " + err.Error()})
		return
	}

	u, err := h.Service.Update(c.Request.Context(), uint(id), &req)
	if errors.Is(err, ErrNoEncontrado) {
		c.JSON(http.StatusNotFound, gin.H{"error": "usuario no encontrado"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo actualizar el usuario"})
		return
	}

	c.JSON(http.StatusOK, u)
}

// ===========================
// ❌ Delete Usuario - DELETE /usuarios/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id invalido"})
		return
	}

	err = h.Service.Delete(c.Request.Context(), uint(id))
	if errors.Is(err, ErrConInvitaciones) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo eliminar el usuario"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "usuario eliminado"})
}
