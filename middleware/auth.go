package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"smarthub/models"
	"smarthub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const actorKey = "actor"

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}

// JWTAuthMiddleware validates the bearer token and stores the caller as a models.Actor.
// When roles are given, callers with any other role are rejected with 403.
func JWTAuthMiddleware(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Missing or invalid Authorization header", "")
			return
		}

		subject, role, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid token", err.Error())
			return
		}
		id, err := strconv.ParseInt(subject, 10, 64)
		if err != nil || id <= 0 {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid token", "subject is not a numeric id")
			return
		}
		actor := models.Actor{ID: id, Role: models.Role(strings.ToUpper(role))}
		if actor.Role != models.RoleUser && actor.Role != models.RoleProvider {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid token", "unknown role")
			return
		}

		if len(roles) > 0 && !hasRole(actor.Role, roles) {
			utils.JSONError(c, http.StatusForbidden, "Forbidden", "this endpoint requires role "+joinRoles(roles))
			return
		}

		SetActor(c, actor)
		c.Next()
	}
}

func hasRole(r models.Role, allowed []models.Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

func joinRoles(roles []models.Role) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, " or ")
}

// SetActor stores actor on the request and tags the request logger with it.
func SetActor(c *gin.Context, actor models.Actor) {
	c.Set(actorKey, actor)
	if l, ok := c.Get(loggerKey); ok {
		if logger, ok := l.(*zap.Logger); ok {
			c.Set(loggerKey, logger.With(zap.String("actorRole", string(actor.Role)), zap.Int64("actorId", actor.ID)))
		}
	}
}

// ActorFrom returns the actor stored by the auth middleware.
func ActorFrom(c *gin.Context) (models.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return models.Actor{}, false
	}
	actor, ok := v.(models.Actor)
	return actor, ok
}
