package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/little-lemon-app/internal/models"
	"github.com/franciscosanchezn/little-lemon-app/internal/services"
	"github.com/gin-gonic/gin"
)

// ProfileController handles HTTP requests for the profile screen
type ProfileController interface {
	// GetProfile retrieves every stored profile field
	GetProfile(c *gin.Context)
	// UpdateProfile stores the provided profile fields
	UpdateProfile(c *gin.Context)
}

type profileController struct {
	service services.ProfileService
}

// NewProfileController creates a new instance of ProfileController
func NewProfileController(service services.ProfileService) *profileController {
	return &profileController{service: service}
}

// GetProfile godoc
// @Summary Get profile
// @Description Get all profile fields; missing fields read as empty values
// @Tags profile
// @Accept json
// @Produce json
// @Success 200 {object} models.Profile
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/profile [get]
func (ctl *profileController) GetProfile(ctx *gin.Context) {
	profile, err := ctl.service.LoadProfile()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			models.NewAPIError(models.ErrInternalServer, "Failed to load profile"))
		return
	}
	ctx.JSON(http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary Update profile
// @Description Store the provided profile fields; each key write is independent
// @Tags profile
// @Accept json
// @Produce json
// @Param profile body models.Profile true "Profile fields"
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/profile [put]
func (ctl *profileController) UpdateProfile(ctx *gin.Context) {
	var profile models.Profile
	if err := ctx.ShouldBindJSON(&profile); err != nil {
		ctx.JSON(http.StatusBadRequest,
			models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}

	if err := ctl.service.SaveProfile(profile); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			models.NewAPIError(models.ErrInternalServer, "Failed to save changes. Please try again."))
		return
	}
	ctx.JSON(http.StatusOK, profile)
}
