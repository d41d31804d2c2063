package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/driftsocial/backend/internal/middleware"
	"github.com/driftsocial/backend/internal/models"
	"github.com/driftsocial/backend/internal/repositories"
	"github.com/driftsocial/backend/internal/services"
	"github.com/driftsocial/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires handlers against an in-memory store.
type testEnv struct {
	echo     *echo.Echo
	db       *gorm.DB
	posts    repositories.PostRepository
	comments repositories.CommentRepository
	likes    repositories.LikeRepository
	uploader *stubUploader
}

type stubUploader struct {
	url  string
	err  error
	size int64
}

func (s *stubUploader) Upload(ctx context.Context, userID, filename, contentType string, r io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	n, err := io.Copy(io.Discard, r)
	if err != nil {
		return "", err
	}
	s.size = n
	return s.url, nil
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Profile{}, &models.Post{}, &models.Like{}, &models.Comment{}))

	require.NoError(t, db.Create(&models.Profile{ID: "user-a", Username: "alice"}).Error)
	require.NoError(t, db.Create(&models.Profile{ID: "user-b", Username: "bob"}).Error)

	e := echo.New()
	e.Validator = validators.NewValidator()

	return &testEnv{
		echo:     e,
		db:       db,
		posts:    repositories.NewPostgresPostRepository(db),
		comments: repositories.NewPostgresCommentRepository(db),
		likes:    repositories.NewPostgresLikeRepository(db),
		uploader: &stubUploader{url: "https://storage.googleapis.com/test-bucket/posts/user-a/1_pic.png"},
	}
}

func (env *testEnv) postHandler() *PostHandler {
	return NewPostHandler(env.posts, env.uploader)
}

func (env *testEnv) commentHandler() *CommentHandler {
	return NewCommentHandler(env.comments, env.posts, services.NewEnrichmentService(env.likes, env.comments))
}

func (env *testEnv) feedHandler() *FeedHandler {
	return NewFeedHandler(env.posts, services.NewEnrichmentService(env.likes, env.comments))
}

func (env *testEnv) likeHandler() *LikeHandler {
	return NewLikeHandler(services.NewEngagementService(env.posts, env.likes))
}

type httpRequest struct {
	raw    *http.Request
	postID string
}

func jsonRequest(method, target, body string) *httpRequest {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return &httpRequest{raw: req}
}

func (r *httpRequest) withPostID(id string) *httpRequest {
	r.postID = id
	return r
}

func multipartRequest(t *testing.T, target string, content string, imageName string, image []byte) *httpRequest {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if content != "" {
		require.NoError(t, w.WriteField("content", content))
	}
	if imageName != "" {
		part, err := w.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return &httpRequest{raw: req}
}

// newContext builds an echo context as the auth middleware would leave it for
// the given principal ("" for anonymous).
func (env *testEnv) newContext(req *httptest.ResponseRecorder, r *httpRequest, userID string) echo.Context {
	c := env.echo.NewContext(r.raw, req)
	if r.postID != "" {
		c.SetParamNames("id")
		c.SetParamValues(r.postID)
	}
	if userID != "" {
		c.Set(middleware.ContextUserID, userID)
	}
	return c
}

func httpErrCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	return he.Code
}

var errUpstream = errors.New("object storage unavailable")
