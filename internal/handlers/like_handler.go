package handlers

import (
	"errors"
	"net/http"

	"github.com/driftsocial/backend/internal/middleware"
	"github.com/driftsocial/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	engagement *services.EngagementService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(engagement *services.EngagementService) *LikeHandler {
	return &LikeHandler{engagement: engagement}
}

// ToggleLike flips the caller's liked state for a post and reports the result
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	userID := middleware.UserID(c)

	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	liked, err := h.engagement.ToggleLike(c.Request().Context(), postID, userID)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"liked": liked})
}
