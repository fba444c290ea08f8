package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-nepal/services"
	"hotel-nepal/utils"
	"hotel-nepal/validation"
)

type HotelController struct {
	HotelSvc     *services.HotelService
	MaxPageLimit int
}

func NewHotelController(svc *services.HotelService, maxPageLimit int) *HotelController {
	return &HotelController{HotelSvc: svc, MaxPageLimit: maxPageLimit}
}

// GetHotels (GET /api/hotels?page=&limit=)
func (ctrl *HotelController) GetHotels(c *gin.Context) {
	page, verr := validation.Pagination(c.Query("page"), c.Query("limit"), ctrl.MaxPageLimit)
	if verr != nil {
		respondError(c, verr)
		return
	}
	hotels, err := ctrl.HotelSvc.List(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hotels)
}

func (ctrl *HotelController) GetHotel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	hotel, err := ctrl.HotelSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hotel)
}

func (ctrl *HotelController) CreateHotel(c *gin.Context) {
	var req services.HotelRequest
	if !bindJSON(c, &req) {
		return
	}
	hotel, err := ctrl.HotelSvc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusCreated, "Hotel created successfully", "hotel", hotel)
}

func (ctrl *HotelController) UpdateHotel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req services.HotelPatchRequest
	if !bindJSON(c, &req) {
		return
	}
	hotel, err := ctrl.HotelSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Hotel updated successfully", "hotel", hotel)
}

func (ctrl *HotelController) DeleteHotel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	hotel, err := ctrl.HotelSvc.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Hotel deleted successfully", "hotel", hotel)
}
