package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/driftsocial/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	env := newTestEnv(t)
	h := env.postHandler()

	rec := httptest.NewRecorder()
	c := env.newContext(rec, jsonRequest(http.MethodPost, "/posts", `{"content":"  hello  "}`), "user-a")
	require.NoError(t, h.CreatePost(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "hello", body["content"])
	assert.Equal(t, "user-a", body["author_id"])
	assert.Contains(t, body, "image_url")
	assert.Nil(t, body["image_url"])
}

func TestCreatePostEmptyContent(t *testing.T) {
	env := newTestEnv(t)
	h := env.postHandler()

	for _, payload := range []string{`{"content":""}`, `{"content":"   "}`, `{}`} {
		rec := httptest.NewRecorder()
		c := env.newContext(rec, jsonRequest(http.MethodPost, "/posts", payload), "user-a")
		err := h.CreatePost(c)
		assert.Equal(t, http.StatusBadRequest, httpErrCode(t, err), "payload %s", payload)
	}

	var count int64
	require.NoError(t, env.db.Model(&models.Post{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreatePostWithImage(t *testing.T) {
	env := newTestEnv(t)
	h := env.postHandler()

	rec := httptest.NewRecorder()
	c := env.newContext(rec, multipartRequest(t, "/posts/upload", "look at this", "pic.png", []byte("fake png bytes")), "user-a")
	require.NoError(t, h.CreatePostWithImage(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, env.uploader.url, body["image_url"])
	assert.Equal(t, "look at this", body["content"])
	assert.Equal(t, int64(len("fake png bytes")), env.uploader.size)
}

func TestCreatePostWithImageMissingFile(t *testing.T) {
	env := newTestEnv(t)
	h := env.postHandler()

	rec := httptest.NewRecorder()
	c := env.newContext(rec, multipartRequest(t, "/posts/upload", "no image here", "", nil), "user-a")
	err := h.CreatePostWithImage(c)
	assert.Equal(t, http.StatusBadRequest, httpErrCode(t, err))
}

func TestCreatePostWithImageTooLarge(t *testing.T) {
	env := newTestEnv(t)
	h := env.postHandler()

	big := make([]byte, MaxImageSize+1)
	rec := httptest.NewRecorder()
	c := env.newContext(rec, multipartRequest(t, "/posts/upload", "", "huge.png", big), "user-a")
	err := h.CreatePostWithImage(c)
	assert.Equal(t, http.StatusBadRequest, httpErrCode(t, err))
}

func TestCreatePostWithImageUploadFailureCreatesNoRow(t *testing.T) {
	env := newTestEnv(t)
	env.uploader.err = errUpstream
	h := env.postHandler()

	rec := httptest.NewRecorder()
	c := env.newContext(rec, multipartRequest(t, "/posts/upload", "doomed", "pic.png", []byte("bytes")), "user-a")
	err := h.CreatePostWithImage(c)
	assert.Equal(t, http.StatusInternalServerError, httpErrCode(t, err))

	var count int64
	require.NoError(t, env.db.Model(&models.Post{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdatePostByOwner(t *testing.T) {
	env := newTestEnv(t)
	h := env.postHandler()
	require.NoError(t, env.posts.CreatePost(context.Background(), &models.Post{AuthorID: "user-a", Content: "before"}))

	rec := httptest.NewRecorder()
	c := env.newContext(rec, jsonRequest(http.MethodPut, "/posts/1", `{"content":"after"}`).withPostID("1"), "user-a")
	require.NoError(t, h.UpdatePost(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "after", body["content"])
}

func TestUpdatePostRemoveImage(t *testing.T) {
	env := newTestEnv(t)
	h := env.postHandler()
	url := "https://storage.googleapis.com/test-bucket/posts/user-a/1_pic.png"
	require.NoError(t, env.posts.CreatePost(context.Background(), &models.Post{AuthorID: "user-a", Content: "pic", ImageURL: &url}))

	rec := httptest.NewRecorder()
	c := env.newContext(rec, jsonRequest(http.MethodPut, "/posts/1", `{"remove_image":true}`).withPostID("1"), "user-a")
	require.NoError(t, h.UpdatePost(c))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Nil(t, body["image_url"])
	assert.Equal(t, "pic", body["content"])
}

func TestUpdatePostNonOwnerLooksLikeMissing(t *testing.T) {
	env := newTestEnv(t)
	h := env.postHandler()
	require.NoError(t, env.posts.CreatePost(context.Background(), &models.Post{AuthorID: "user-a", Content: "mine"}))

	// Non-owner and missing id produce the same 404.
	rec := httptest.NewRecorder()
	c := env.newContext(rec, jsonRequest(http.MethodPut, "/posts/1", `{"content":"stolen"}`).withPostID("1"), "user-b")
	assert.Equal(t, http.StatusNotFound, httpErrCode(t, h.UpdatePost(c)))

	rec = httptest.NewRecorder()
	c = env.newContext(rec, jsonRequest(http.MethodPut, "/posts/99", `{"content":"ghost"}`).withPostID("99"), "user-b")
	assert.Equal(t, http.StatusNotFound, httpErrCode(t, h.UpdatePost(c)))

	post, err := env.posts.GetPostByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "mine", post.Content)
}

func TestUpdatePostEmptyBody(t *testing.T) {
	env := newTestEnv(t)
	h := env.postHandler()
	require.NoError(t, env.posts.CreatePost(context.Background(), &models.Post{AuthorID: "user-a", Content: "mine"}))

	rec := httptest.NewRecorder()
	c := env.newContext(rec, jsonRequest(http.MethodPut, "/posts/1", `{}`).withPostID("1"), "user-a")
	assert.Equal(t, http.StatusBadRequest, httpErrCode(t, h.UpdatePost(c)))

	rec = httptest.NewRecorder()
	c = env.newContext(rec, jsonRequest(http.MethodPut, "/posts/1", `{"content":"  "}`).withPostID("1"), "user-a")
	assert.Equal(t, http.StatusBadRequest, httpErrCode(t, h.UpdatePost(c)))
}

func TestDeletePostIdempotent(t *testing.T) {
	env := newTestEnv(t)
	h := env.postHandler()
	require.NoError(t, env.posts.CreatePost(context.Background(), &models.Post{AuthorID: "user-a", Content: "mine"}))

	// Owner delete succeeds.
	rec := httptest.NewRecorder()
	c := env.newContext(rec, jsonRequest(http.MethodDelete, "/posts/1", "").withPostID("1"), "user-a")
	require.NoError(t, h.DeletePost(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	// Deleting the same id again returns the identical success shape.
	rec = httptest.NewRecorder()
	c = env.newContext(rec, jsonRequest(http.MethodDelete, "/posts/1", "").withPostID("1"), "user-a")
	require.NoError(t, h.DeletePost(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestDeletePostNonOwnerNoSideEffects(t *testing.T) {
	env := newTestEnv(t)
	h := env.postHandler()
	require.NoError(t, env.posts.CreatePost(context.Background(), &models.Post{AuthorID: "user-a", Content: "mine"}))

	rec := httptest.NewRecorder()
	c := env.newContext(rec, jsonRequest(http.MethodDelete, "/posts/1", "").withPostID("1"), "user-b")
	require.NoError(t, h.DeletePost(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	exists, err := env.posts.PostExists(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, exists)
}
