package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-nepal/middleware"
	"hotel-nepal/services"
	"hotel-nepal/utils"
)

type UserController struct {
	AuthSvc *services.AuthService
}

func NewUserController(svc *services.AuthService) *UserController {
	return &UserController{AuthSvc: svc}
}

func (ctrl *UserController) Register(c *gin.Context) {
	var req services.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := ctrl.AuthSvc.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusCreated, "User registered successfully", "user", user)
}

func (ctrl *UserController) Login(c *gin.Context) {
	var req services.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	token, user, err := ctrl.AuthSvc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": token, "user": user})
}

// Profile runs behind middleware.RequireAuth.
func (ctrl *UserController) Profile(c *gin.Context) {
	id, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, middleware.InvalidTokenMessage)
		return
	}
	user, err := ctrl.AuthSvc.Profile(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile (PATCH /api/users/profile) runs behind middleware.RequireAuth.
func (ctrl *UserController) UpdateProfile(c *gin.Context) {
	id, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, middleware.InvalidTokenMessage)
		return
	}
	var req services.ProfileUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := ctrl.AuthSvc.UpdateProfile(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Profile updated successfully", "user", user)
}

func (ctrl *UserController) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := ctrl.AuthSvc.DeleteUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "User deleted successfully", "user", user)
}

func (ctrl *UserController) GetUsers(c *gin.Context) {
	users, err := ctrl.AuthSvc.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
