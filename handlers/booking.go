package handlers

import (
	"net/http"
	"strings"

	"smarthub/models"
	"smarthub/services/apperr"
	"smarthub/services/booking"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// CreateBookingHandler handles POST /api/bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload", err)
		return
	}
	if req.UserID == 0 {
		req.UserID = actor.ID
	}

	b, err := h.Service.CreateBooking(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	b, err := h.Service.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListUserBookingsHandler handles GET /api/bookings/user/:userId for the user themself.
func (h *BookingHandler) ListUserBookingsHandler(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	if !actor.Is(models.RoleUser, userID) {
		respondError(c, apperr.Forbidden("users can only list their own bookings"))
		return
	}
	bookings, err := h.Service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) ListProviderBookingsHandler(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	providerID, ok := pathID(c, "providerId")
	if !ok {
		return
	}
	if !actor.Is(models.RoleProvider, providerID) {
		respondError(c, apperr.Forbidden("providers can only list their own bookings"))
		return
	}
	bookings, err := h.Service.ListForProvider(c.Request.Context(), providerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// UpdateStatusHandler accepts {"action": "ACCEPT"} or the legacy {"status": "ACCEPTED"}.
func (h *BookingHandler) UpdateStatusHandler(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.StatusChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload", err)
		return
	}
	action, err := actionOf(req)
	if err != nil {
		respondError(c, err)
		return
	}

	b, err := h.Service.Transition(c.Request.Context(), id, actor, action)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func actionOf(req models.StatusChangeRequest) (models.BookingAction, error) {
	if req.Action != "" {
		return models.BookingAction(strings.ToUpper(strings.TrimSpace(string(req.Action)))), nil
	}
	if req.Status == "" {
		return "", apperr.Validation("action or status is required")
	}
	status := models.BookingStatus(strings.ToUpper(strings.TrimSpace(string(req.Status))))
	action, ok := models.ActionForStatus(status)
	if !ok {
		return "", apperr.Validation("status %q cannot be requested", req.Status)
	}
	return action, nil
}
