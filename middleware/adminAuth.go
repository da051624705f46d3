package middleware

import (
	"net/http"

	"smarthub/models"
	"smarthub/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AdminAuthMiddleware accepts a static bearer token whose bcrypt hash is configured
// in ADMIN_TOKEN_HASH. An empty hash disables the admin API.
func AdminAuthMiddleware(tokenHash string) gin.HandlerFunc {
	hash := []byte(tokenHash)
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Missing or invalid Authorization header", "")
			return
		}
		if len(hash) == 0 || bcrypt.CompareHashAndPassword(hash, []byte(tokenString)) != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized admin access", "")
			return
		}

		SetActor(c, models.Actor{Role: models.RoleAdmin})
		c.Next()
	}
}
