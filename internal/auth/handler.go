package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmartinez10/event-invitations-backend/internal/auditlog"
)

type Handler struct {
	service  Service
	auditSvc auditlog.Service
}

func NewHandler(s Service, auditSvc auditlog.Service) *Handler {
	return &Handler{service: s, auditSvc: auditSvc}
}

// clientIP reads the address stored by the audit middleware. The middleware
// package imports this one, so the context key is read directly.
func clientIP(c *gin.Context) string {
	if ip := c.GetString("client_ip"); ip != "" {
		return ip
	}
	return c.ClientIP()
}

// ===============================
// Login
// ===============================

type LoginRequest struct {
	Correo   string `json:"correo" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /auth/login
// @Summary Admin login
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} gin.H
// @Failure 401 {object} gin.H
// @Router /api/v1/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokens, user, err := h.service.Login(req.Correo, req.Password)
	if errors.Is(err, ErrCredenciales) {
		h.auditSvc.LogAuthAction(c.Request.Context(), nil, "LOGIN_FALLIDO", req.Correo, clientIP(c), "failure")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "credenciales invalidas"})
		return
	}
	if err != nil {
		h.auditSvc.LogAuthAction(c.Request.Context(), nil, "LOGIN_FALLIDO", req.Correo, clientIP(c), "failure")
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	h.auditSvc.LogAuthAction(c.Request.Context(), &user.ID, "LOGIN_EXITOSO", user.Correo, clientIP(c), "success")

	c.JSON(http.StatusOK, gin.H{
		"tokens": tokens,
		"user": gin.H{
			"id":     user.ID,
			"nombre": user.Nombre,
			"correo": user.Correo,
			"rol":    user.Rol,
		},
	})
}

// ===============================
// Refresh
// ===============================

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// Refresh handles POST /auth/refresh
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accessToken, err := h.service.Refresh(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
}

// ===============================
// Me
// ===============================

// Me handles GET /auth/me — the authenticated admin's own profile
func (h *Handler) Me(c *gin.Context) {
	idRaw, exists := c.Get("admin_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no autenticado"})
		return
	}

	id, ok := idRaw.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "contexto invalido"})
		return
	}

	user, err := h.service.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "cuenta no encontrada"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     user.ID,
		"nombre": user.Nombre,
		"correo": user.Correo,
		"rol":    user.Rol,
	})
}
