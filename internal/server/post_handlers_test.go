package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"quill/internal/forms"
	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type postDetailPayload struct {
	Post     models.Post       `json:"post"`
	Comments []models.Comment  `json:"comments"`
	Form     forms.CommentForm `json:"form"`
}

type postFormPayload struct {
	Form   forms.PostForm `json:"form"`
	IsEdit bool           `json:"is_edit"`
	Post   *models.Post   `json:"post"`
}

func TestPostDetail(t *testing.T) {
	srv, app := newTestServer(t)
	author, _ := createTestUser(t, srv, "author")
	reader, _ := createTestUser(t, srv, "reader")
	group := createTestGroup(t, srv, "Essays", "essays")
	post := createTestPost(t, srv, author, group, "a long essay", time.Now())
	require.NoError(t, srv.db.Create(&models.Comment{
		PostID: &post.ID, AuthorID: reader.ID, Text: "first comment",
	}).Error)

	resp, err := app.Test(getRequest(postDetailPath(post.ID), ""))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload postDetailPayload
	decodeBody(t, resp, &payload)
	assert.Equal(t, "a long essay", payload.Post.Text)
	assert.Equal(t, "author", payload.Post.Author.Username)
	require.NotNil(t, payload.Post.Group)
	assert.Equal(t, "essays", payload.Post.Group.Slug)
	require.Len(t, payload.Comments, 1)
	assert.Equal(t, "first comment", payload.Comments[0].Text)
	assert.Empty(t, payload.Form.Text)
}

func TestPostDetailNotFound(t *testing.T) {
	_, app := newTestServer(t)

	resp, err := app.Test(getRequest("/posts/424242", ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNewPostForm(t *testing.T) {
	srv, app := newTestServer(t)
	_, token := createTestUser(t, srv, "writer")

	resp, err := app.Test(getRequest("/create", token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload postFormPayload
	decodeBody(t, resp, &payload)
	assert.False(t, payload.IsEdit)
	assert.Empty(t, payload.Form.Text)
}

func TestCreatePost(t *testing.T) {
	srv, app := newTestServer(t)
	writer, token := createTestUser(t, srv, "writer")
	group := createTestGroup(t, srv, "Stories", "stories")

	resp, err := app.Test(jsonRequest(http.MethodPost, "/create", map[string]string{
		"text":  "my first story",
		"group": "1",
	}, token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/profile/writer", resp.Header.Get("Location"))

	posts, err := srv.postRepo.ListByAuthor(context.Background(), writer.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "my first story", posts[0].Text)
	require.NotNil(t, posts[0].GroupID)
	assert.Equal(t, group.ID, *posts[0].GroupID)
	assert.False(t, posts[0].PubDate.IsZero())
}

func TestCreatePostWithoutGroup(t *testing.T) {
	srv, app := newTestServer(t)
	writer, token := createTestUser(t, srv, "writer")

	resp, err := app.Test(jsonRequest(http.MethodPost, "/create", map[string]string{
		"text": "ungrouped musings",
	}, token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	posts, err := srv.postRepo.ListByAuthor(context.Background(), writer.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Nil(t, posts[0].GroupID)
}

func TestCreatePostValidation(t *testing.T) {
	srv, app := newTestServer(t)
	writer, token := createTestUser(t, srv, "writer")

	// missing text re-renders the form with a field error
	resp, err := app.Test(jsonRequest(http.MethodPost, "/create", map[string]string{
		"text": "",
	}, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var payload postFormPayload
	decodeBody(t, resp, &payload)
	assert.Contains(t, payload.Form.Errors, "text")

	// a group id that names no group is a form error, not a 404
	resp, err = app.Test(jsonRequest(http.MethodPost, "/create", map[string]string{
		"text":  "valid text",
		"group": "77",
	}, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decodeBody(t, resp, &payload)
	assert.Contains(t, payload.Form.Errors, "group")

	posts, err := srv.postRepo.ListByAuthor(context.Background(), writer.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, posts, "nothing should be persisted on validation failure")
}

func TestCreatePostRequiresLogin(t *testing.T) {
	_, app := newTestServer(t)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/create", map[string]string{
		"text": "drive-by post",
	}, ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "/auth/login?next=")
}

func TestEditPostForm(t *testing.T) {
	srv, app := newTestServer(t)
	writer, token := createTestUser(t, srv, "writer")
	group := createTestGroup(t, srv, "Stories", "stories")
	post := createTestPost(t, srv, writer, group, "draft one", time.Now())

	resp, err := app.Test(getRequest(postDetailPath(post.ID)+"/edit", token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload postFormPayload
	decodeBody(t, resp, &payload)
	assert.True(t, payload.IsEdit)
	assert.Equal(t, "draft one", payload.Form.Text)
	assert.Equal(t, "1", payload.Form.Group)
}

func TestEditPostFormNonAuthorRedirects(t *testing.T) {
	srv, app := newTestServer(t)
	writer, _ := createTestUser(t, srv, "writer")
	_, otherToken := createTestUser(t, srv, "other")
	post := createTestPost(t, srv, writer, nil, "not yours", time.Now())

	resp, err := app.Test(getRequest(postDetailPath(post.ID)+"/edit", otherToken))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, postDetailPath(post.ID), resp.Header.Get("Location"))
}

func TestEditPost(t *testing.T) {
	srv, app := newTestServer(t)
	writer, token := createTestUser(t, srv, "writer")
	group := createTestGroup(t, srv, "Stories", "stories")
	pubDate := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	post := createTestPost(t, srv, writer, group, "before edit", pubDate)

	resp, err := app.Test(jsonRequest(http.MethodPost, postDetailPath(post.ID)+"/edit",
		map[string]string{"text": "after edit"}, token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, postDetailPath(post.ID), resp.Header.Get("Location"))

	updated, err := srv.postRepo.GetByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "after edit", updated.Text)
	assert.Nil(t, updated.GroupID, "submitting without a group clears it")
	assert.Equal(t, writer.ID, updated.AuthorID)
	assert.True(t, updated.PubDate.Equal(pubDate), "publication date never changes on edit")
}

func TestEditPostNonAuthorLeavesPostUntouched(t *testing.T) {
	srv, app := newTestServer(t)
	writer, _ := createTestUser(t, srv, "writer")
	_, otherToken := createTestUser(t, srv, "other")
	post := createTestPost(t, srv, writer, nil, "hands off", time.Now())

	resp, err := app.Test(jsonRequest(http.MethodPost, postDetailPath(post.ID)+"/edit",
		map[string]string{"text": "defaced"}, otherToken))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, postDetailPath(post.ID), resp.Header.Get("Location"))

	unchanged, err := srv.postRepo.GetByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "hands off", unchanged.Text)
}

func TestEditPostValidation(t *testing.T) {
	srv, app := newTestServer(t)
	writer, token := createTestUser(t, srv, "writer")
	post := createTestPost(t, srv, writer, nil, "still intact", time.Now())

	resp, err := app.Test(jsonRequest(http.MethodPost, postDetailPath(post.ID)+"/edit",
		map[string]string{"text": ""}, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var payload postFormPayload
	decodeBody(t, resp, &payload)
	assert.True(t, payload.IsEdit)
	assert.Contains(t, payload.Form.Errors, "text")

	unchanged, err := srv.postRepo.GetByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "still intact", unchanged.Text)
}

func TestEditPostNotFound(t *testing.T) {
	srv, app := newTestServer(t)
	_, token := createTestUser(t, srv, "writer")

	resp, err := app.Test(jsonRequest(http.MethodPost, "/posts/31337/edit",
		map[string]string{"text": "ghost edit"}, token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
