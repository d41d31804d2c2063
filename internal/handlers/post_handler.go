package handlers

import (
	"net/http"
	"strings"

	"github.com/driftsocial/backend/internal/middleware"
	"github.com/driftsocial/backend/internal/models"
	"github.com/driftsocial/backend/internal/repositories"
	"github.com/driftsocial/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// MaxImageSize caps post image uploads at 5 MiB
const MaxImageSize = 5 << 20

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository repositories.PostRepository
	uploader       services.Uploader
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, uploader services.Uploader) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		uploader:       uploader,
	}
}

// CreatePost creates a new text-only post
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID := middleware.UserID(c)

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "content must not be empty")
	}

	post := &models.Post{
		AuthorID: userID,
		Content:  content,
	}
	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, post)
}

// CreatePostWithImage creates a post from a multipart form with an image
// field. The image is uploaded to object storage first; if the upload fails
// no post row is created.
func (h *PostHandler) CreatePostWithImage(c echo.Context) error {
	userID := middleware.UserID(c)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image file is required")
	}
	if fileHeader.Size > MaxImageSize {
		return echo.NewHTTPError(http.StatusBadRequest, "image must not exceed 5 MiB")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not read image file")
	}
	defer file.Close()

	content := strings.TrimSpace(c.FormValue("content"))

	url, err := h.uploader.Upload(
		c.Request().Context(),
		userID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	post := &models.Post{
		AuthorID: userID,
		Content:  content,
		ImageURL: &url,
	}
	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, post)
}

// UpdatePost applies a partial update to a post the caller owns. A missing
// post and a post owned by someone else are both reported as not found.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	userID := middleware.UserID(c)

	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updates := map[string]interface{}{}
	if req.Content != nil {
		content := strings.TrimSpace(*req.Content)
		if content == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "content must not be empty")
		}
		updates["content"] = content
	}
	if req.RemoveImage {
		// The previously stored object is not deleted, only unlinked.
		updates["image_url"] = nil
	}
	if len(updates) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "nothing to update")
	}

	affected, err := h.postRepository.UpdateOwned(c.Request().Context(), postID, userID, updates)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if affected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "post not found")
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post the caller owns. Deleting a post that does not
// exist, or that belongs to someone else, removes nothing and still reports
// success.
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID := middleware.UserID(c)

	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	if _, err := h.postRepository.DeleteOwned(c.Request().Context(), postID, userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
