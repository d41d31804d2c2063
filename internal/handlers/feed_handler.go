package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/driftsocial/backend/internal/middleware"
	"github.com/driftsocial/backend/internal/models"
	"github.com/driftsocial/backend/internal/repositories"
	"github.com/driftsocial/backend/internal/services"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	postRepository repositories.PostRepository
	enrichment     *services.EnrichmentService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(postRepo repositories.PostRepository, enrichment *services.EnrichmentService) *FeedHandler {
	return &FeedHandler{
		postRepository: postRepo,
		enrichment:     enrichment,
	}
}

// GetFeed returns enriched posts, newest first. The viewer is the
// authenticated principal when a bearer token was supplied, otherwise the
// viewer_id query parameter; with neither, liked_by_me is always false.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	viewerID := middleware.UserID(c)
	if viewerID == "" {
		viewerID = c.QueryParam("viewer_id")
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 50 {
		limit = 20
	}
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if offset < 0 {
		offset = 0
	}

	posts, err := h.postRepository.GetPosts(c.Request().Context(), c.QueryParam("author_id"), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	enriched, err := h.enrichment.EnrichPosts(c.Request().Context(), posts, viewerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, enriched)
}

// GetPost returns a single post enriched for the (optional) viewer
func (h *FeedHandler) GetPost(c echo.Context) error {
	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	viewerID := middleware.UserID(c)
	if viewerID == "" {
		viewerID = c.QueryParam("viewer_id")
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	enriched, err := h.enrichment.EnrichPosts(c.Request().Context(), []models.Post{*post}, viewerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, enriched[0])
}

// parsePostID parses the :id path parameter shared by the post routes
func parsePostID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound, "post not found")
	}
	return uint(id), nil
}
