package handlers

import (
	"net/http"
	"strconv"

	"smarthub/middleware"
	"smarthub/models"
	"smarthub/services/apperr"
	"smarthub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps an error kind to its HTTP status.
func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindInvalidTransition:
		return http.StatusConflict
	case apperr.KindTransport:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// respondError writes err as {message, details}. Internal causes are logged, not returned.
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status := statusFor(kind)
	if status >= http.StatusInternalServerError {
		getLogger(c).Error("Request failed", zap.String("kind", kind.String()), zap.Error(err))
	}
	utils.JSONError(c, status, apperr.MessageOf(err), "")
}

func badRequest(c *gin.Context, message string, err error) {
	details := ""
	if err != nil {
		details = err.Error()
	}
	utils.JSONError(c, http.StatusBadRequest, message, details)
}

// pathID parses a positive int64 path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+name, err)
		return 0, false
	}
	return id, true
}

func actorOf(c *gin.Context) (models.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication required", "")
	}
	return actor, ok
}
