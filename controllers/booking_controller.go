package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-nepal/services"
	"hotel-nepal/utils"
)

type updateStatusPayload struct {
	Status string `json:"status"`
}

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

// CreateBooking (POST /api/bookings) answers with the stored booking; its
// total_price is computed server side.
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var req services.BookingRequest
	if !bindJSON(c, &req) {
		return
	}
	booking, err := ctrl.BookingSvc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

func (ctrl *BookingController) GetBookings(c *gin.Context) {
	bookings, err := ctrl.BookingSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (ctrl *BookingController) GetBookingDetails(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	booking, err := ctrl.BookingSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// UpdateBookingStatus (PATCH /api/bookings/:id/status)
func (ctrl *BookingController) UpdateBookingStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var payload updateStatusPayload
	if !bindJSON(c, &payload) {
		return
	}
	booking, err := ctrl.BookingSvc.UpdateStatus(c.Request.Context(), id, payload.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Booking status updated", "booking", booking)
}

// DeleteBooking cancels; the record stays.
func (ctrl *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	booking, err := ctrl.BookingSvc.Cancel(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Booking cancelled successfully", "booking", booking)
}
