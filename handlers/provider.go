package handlers

import (
	"net/http"

	"smarthub/models"
	"smarthub/services/provider"
	"smarthub/services/review"

	"github.com/gin-gonic/gin"
)

type ProviderHandler struct {
	Service provider.ProviderService
	Reviews review.ReviewService
}

func NewProviderHandler(svc provider.ProviderService, reviews review.ReviewService) *ProviderHandler {
	return &ProviderHandler{Service: svc, Reviews: reviews}
}

// SearchHandler handles GET /api/provider/search?type=&location=.
func (h *ProviderHandler) SearchHandler(c *gin.Context) {
	providers, err := h.Service.Search(c.Request.Context(), c.Query("type"), c.Query("location"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, providers)
}

func (h *ProviderHandler) GetProfileHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.Service.GetProfile(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProviderHandler) UpdateProfileHandler(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var upd models.ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		badRequest(c, "Invalid request payload", err)
		return
	}
	p, err := h.Service.UpdateProfile(c.Request.Context(), actor, id, upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProviderHandler) ListReviewsHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	reviews, err := h.Reviews.ListForProvider(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}
