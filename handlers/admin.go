package handlers

import (
	"net/http"

	"smarthub/models"
	"smarthub/services/booking"
	"smarthub/services/complaint"
	"smarthub/services/provider"
	"smarthub/services/user"

	"github.com/gin-gonic/gin"
)

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	UserService      user.UserService
	ProviderService  provider.ProviderService
	BookingService   booking.BookingService
	ComplaintService complaint.ComplaintService
}

// GetAllUsersHandler returns all users.
func (ah *AdminHandler) GetAllUsersHandler(c *gin.Context) {
	users, err := ah.UserService.GetAllUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetAllProvidersHandler returns all providers.
func (ah *AdminHandler) GetAllProvidersHandler(c *gin.Context) {
	providers, err := ah.ProviderService.GetAllProviders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, providers)
}

func (ah *AdminHandler) GetAllBookingsHandler(c *gin.Context) {
	bookings, err := ah.BookingService.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (ah *AdminHandler) GetAllComplaintsHandler(c *gin.Context) {
	complaints, err := ah.ComplaintService.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaints)
}

// CompleteBookingHandler marks an accepted booking completed on behalf of the platform.
func (ah *AdminHandler) CompleteBookingHandler(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	b, err := ah.BookingService.Transition(c.Request.Context(), id, actor, models.ActionComplete)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (ah *AdminHandler) RespondComplaintHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.ComplaintResponse
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload", err)
		return
	}
	cm, err := ah.ComplaintService.Respond(c.Request.Context(), id, req.Response)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cm)
}
