package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/franciscosanchezn/little-lemon-app/internal/auth"
	"github.com/franciscosanchezn/little-lemon-app/internal/models"
	"github.com/franciscosanchezn/little-lemon-app/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// OnboardingRequest is the payload collected on first launch
type OnboardingRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SessionController handles onboarding, session inspection and logout
type SessionController interface {
	// CompleteOnboarding validates and stores the initial user data
	CompleteOnboarding(c *gin.Context)
	// GetSession reports whether a user is logged in
	GetSession(c *gin.Context)
	// Logout clears the whole session and profile state
	Logout(c *gin.Context)
}

type sessionController struct {
	profiles services.ProfileService
	tokens   *auth.SessionTokenGenerator
}

// NewSessionController creates a new instance of SessionController
func NewSessionController(profiles services.ProfileService, tokens *auth.SessionTokenGenerator) *sessionController {
	return &sessionController{profiles: profiles, tokens: tokens}
}

// CompleteOnboarding godoc
// @Summary Complete onboarding
// @Description Store the user's name and email, derive first/last name and start a session
// @Tags session
// @Accept json
// @Produce json
// @Param onboarding body OnboardingRequest true "Name and email"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Router /api/v1/onboarding [post]
func (ctl *sessionController) CompleteOnboarding(ctx *gin.Context) {
	var req OnboardingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest,
			models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}

	if err := ctl.profiles.CompleteOnboarding(req.Name, req.Email); err != nil {
		var fieldErr *models.FieldError
		if errors.As(err, &fieldErr) {
			ctx.JSON(http.StatusBadRequest,
				models.NewAPIError(models.ErrValidationFailed, fieldErr.Message,
					map[string]interface{}{"field": fieldErr.Field}))
			return
		}
		ctx.JSON(http.StatusInternalServerError,
			models.NewAPIError(models.ErrInternalServer, "Failed to save your information. Please try again."))
		return
	}

	token, err := ctl.tokens.Token(req.Email, req.Name)
	if err != nil {
		log.WithError(err).Error("Failed to mint session token")
		ctx.JSON(http.StatusInternalServerError,
			models.NewAPIError(models.ErrInternalServer, "Could not generate session token"))
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"token":      token,
		"type":       "Bearer",
		"expires_in": int(ctl.tokens.TTL / time.Second),
	})
}

// GetSession godoc
// @Summary Get session state
// @Description Report whether a persisted session exists
// @Tags session
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /api/v1/session [get]
func (ctl *sessionController) GetSession(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"logged_in": ctl.profiles.IsLoggedIn(),
	})
}

// Logout godoc
// @Summary Log out
// @Description Clear the entire key-value store and end the session
// @Tags session
// @Accept json
// @Produce json
// @Success 204
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/logout [post]
func (ctl *sessionController) Logout(ctx *gin.Context) {
	if err := ctl.profiles.Logout(); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			models.NewAPIError(models.ErrInternalServer, "Failed to log out"))
		return
	}
	ctx.JSON(http.StatusNoContent, nil)
}
