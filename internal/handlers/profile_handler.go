package handlers

import (
	"errors"
	"net/http"

	"github.com/driftsocial/backend/internal/middleware"
	"github.com/driftsocial/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ProfileHandler handles HTTP requests related to profiles
type ProfileHandler struct {
	profileRepository repositories.ProfileRepository
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileRepo repositories.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{profileRepository: profileRepo}
}

// GetProfile retrieves the authenticated caller's profile
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID := middleware.UserID(c)

	profile, err := h.profileRepository.GetProfileByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, profile)
}
