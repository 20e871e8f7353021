package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/mmartinez10/event-invitations-backend/config"
	"github.com/mmartinez10/event-invitations-backend/internal/auth"
)

// AuthMiddleware validates the bearer token and loads the admin account
// into the request context.
func AuthMiddleware(cfg *config.Config, authSvc auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "falta el encabezado Authorization"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "encabezado Authorization invalido"})
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTAccessSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token invalido"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "claims invalidos"})
			return
		}

		idFloat, ok := claims["admin_id"].(float64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin_id ausente en el token"})
			return
		}

		user, err := authSvc.GetByID(uint(idFloat))
		if err != nil || !user.Activo {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "cuenta no encontrada"})
			return
		}

		c.Set("admin", user)
		c.Set("admin_id", user.ID)
		c.Set("rol", user.Rol)

		c.Next()
	}
}

// GetAdminIDFromContext returns the authenticated admin's ID, nil on
// unauthenticated routes (the public confirmation endpoint, for one).
func GetAdminIDFromContext(c *gin.Context) *uint {
	idRaw, exists := c.Get("admin_id")
	if !exists {
		return nil
	}
	if id, ok := idRaw.(uint); ok {
		return &id
	}
	return nil
}
