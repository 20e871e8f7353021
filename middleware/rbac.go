package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRol allows the request through only when the authenticated admin
// holds one of the listed roles.
func RequireRol(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rolRaw, exists := c.Get("rol")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no autenticado"})
			return
		}

		rol, ok := rolRaw.(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "contexto invalido"})
			return
		}

		for _, permitido := range roles {
			if rol == permitido {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "rol sin permiso para esta operacion"})
	}
}
