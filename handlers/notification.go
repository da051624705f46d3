package handlers

import (
	"net/http"

	"smarthub/models"
	"smarthub/services/apperr"
	"smarthub/services/notification"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	Service notification.NotificationService
}

func NewNotificationHandler(svc notification.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: svc}
}

// inbox resolves the :id path parameter to the caller's own inbox.
func inbox(c *gin.Context) (models.Receiver, bool) {
	actor, ok := actorOf(c)
	if !ok {
		return models.Receiver{}, false
	}
	id, ok := pathID(c, "id")
	if !ok {
		return models.Receiver{}, false
	}
	rcv, ok := actor.Receiver()
	if !ok || rcv.ID != id {
		respondError(c, apperr.Forbidden("notifications can only be read by their receiver"))
		return models.Receiver{}, false
	}
	return rcv, true
}

// ListHandler handles GET /api/notifications/:id.
func (h *NotificationHandler) ListHandler(c *gin.Context) {
	rcv, ok := inbox(c)
	if !ok {
		return
	}
	list, err := h.Service.ListFor(c.Request.Context(), rcv)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *NotificationHandler) UnreadCountHandler(c *gin.Context) {
	rcv, ok := inbox(c)
	if !ok {
		return
	}
	n, err := h.Service.UnreadCount(c.Request.Context(), rcv)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.UnreadCount{ReceiverID: rcv.ID, ReceiverType: rcv.Type, Unread: n})
}

// MarkReadHandler handles PATCH /api/notifications/:id/read where :id is the notification.
func (h *NotificationHandler) MarkReadHandler(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Service.MarkRead(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkAllReadHandler handles PATCH /api/notifications/:id/read-all where :id is the receiver.
func (h *NotificationHandler) MarkAllReadHandler(c *gin.Context) {
	rcv, ok := inbox(c)
	if !ok {
		return
	}
	if err := h.Service.MarkAllRead(c.Request.Context(), rcv); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
