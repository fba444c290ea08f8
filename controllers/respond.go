package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotel-nepal/services"
	"hotel-nepal/store"
	"hotel-nepal/utils"
	"hotel-nepal/validation"
)

var knownErrors = []struct {
	err     error
	status  int
	message string
}{
	{services.ErrHotelNotFound, http.StatusNotFound, "Hotel not found"},
	{services.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{services.ErrProductNotFound, http.StatusNotFound, "Product not found"},
	{services.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{services.ErrInvalidDateRange, http.StatusBadRequest, "Invalid date range: stay must be at least one night"},
	{services.ErrInvalidStatus, http.StatusBadRequest, "Status must be one of pending, confirmed, cancelled"},
	{services.ErrEmailTaken, http.StatusBadRequest, "User with this email already exists"},
	{services.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{services.ErrNoImage, http.StatusBadRequest, "No file uploaded"},
	{services.ErrImageTooLarge, http.StatusBadRequest, "File too large"},
	{services.ErrNotAnImage, http.StatusBadRequest, "Only image files are allowed"},
	{store.ErrNotFound, http.StatusNotFound, "Resource not found"},
}

// respondError maps a service error onto the response taxonomy. Anything
// unrecognised is a 500 carrying the underlying message.
func respondError(c *gin.Context, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		utils.JSONError(c, verr.Status, verr.Message)
		return
	}
	for _, k := range knownErrors {
		if errors.Is(err, k.err) {
			utils.JSONError(c, k.status, k.message)
			return
		}
	}
	_ = c.Error(err)
	utils.JSONError(c, http.StatusInternalServerError, err.Error())
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
