package handlers

import (
	"net/http"

	"smarthub/models"
	"smarthub/services/complaint"
	"smarthub/services/payment"
	"smarthub/services/review"

	"github.com/gin-gonic/gin"
)

// FeedbackHandler serves reviews, complaints and booking payments filed by users.
type FeedbackHandler struct {
	Reviews    review.ReviewService
	Complaints complaint.ComplaintService
	Payments   payment.PaymentService
}

func (h *FeedbackHandler) CreateReviewHandler(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	var req models.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload", err)
		return
	}
	rv, err := h.Reviews.Create(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rv)
}

func (h *FeedbackHandler) CreateComplaintHandler(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	var req models.ComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload", err)
		return
	}
	cm, err := h.Complaints.Create(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cm)
}

// ChargeHandler handles POST /api/payments/charge.
func (h *FeedbackHandler) ChargeHandler(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	var req models.ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload", err)
		return
	}
	res, err := h.Payments.Charge(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
