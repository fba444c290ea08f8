package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-nepal/services"
)

type ReviewController struct {
	ReviewSvc *services.ReviewService
}

func NewReviewController(svc *services.ReviewService) *ReviewController {
	return &ReviewController{ReviewSvc: svc}
}

// GetReviews (GET /api/hotels/:id/reviews)
func (ctrl *ReviewController) GetReviews(c *gin.Context) {
	hotelID, ok := parseID(c, "id")
	if !ok {
		return
	}
	reviews, err := ctrl.ReviewSvc.ForHotel(c.Request.Context(), hotelID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// CreateReview (POST /api/hotels/:id/reviews)
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	hotelID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req services.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	review, err := ctrl.ReviewSvc.Create(c.Request.Context(), hotelID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}
