package controllers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/frazhaidry/DebugDairy/models"
	"github.com/frazhaidry/DebugDairy/repositories"
)

func newCommentRouter(comments repositories.CommentRepository, users repositories.UserRepository, caller models.User) *gin.Engine {
	cc := NewCommentController(comments, users)
	r := gin.New()
	r.GET("/api/posts/:id/comments", cc.List)
	r.POST("/api/posts/:id/comments", asUser(caller), cc.Create)
	r.DELETE("/api/posts/:id/comments/:commentId", asUser(caller), cc.Delete)
	return r
}

func TestListCommentsBadPostID(t *testing.T) {
	comments := new(repositories.MockCommentRepository)
	users := new(repositories.MockUserRepository)

	w := doJSON(t, newCommentRouter(comments, users, testCaller()),
		http.MethodGet, "/api/posts/not-a-hex-id/comments", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid post ID")
	comments.AssertNotCalled(t, "FindByPost", mock.Anything, mock.Anything)
}

func TestListCommentsPopulatesAuthors(t *testing.T) {
	author := testCaller()
	postID := primitive.NewObjectID()

	newer := models.Comment{ID: primitive.NewObjectID(), PostID: postID, UserID: author.ID, Body: "second", CreatedAt: time.Now()}
	older := models.Comment{ID: primitive.NewObjectID(), PostID: postID, UserID: author.ID, Body: "first", CreatedAt: time.Now().Add(-time.Hour)}

	comments := new(repositories.MockCommentRepository)
	users := new(repositories.MockUserRepository)
	comments.On("FindByPost", mock.Anything, postID).Return([]models.Comment{newer, older}, nil)
	users.On("FindByIDs", mock.Anything, mock.Anything).Return([]models.User{author}, nil)

	w := doJSON(t, newCommentRouter(comments, users, author),
		http.MethodGet, "/api/posts/"+postID.Hex()+"/comments", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string][]models.CommentView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body["comments"], 2)

	// store order (newest first) is preserved
	assert.Equal(t, "second", body["comments"][0].Body)
	assert.Equal(t, author.Name, body["comments"][0].Author.Name)
	assert.Equal(t, author.Email, body["comments"][0].Author.Email)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestCreateComment(t *testing.T) {
	caller := testCaller()
	postID := primitive.NewObjectID()

	comments := new(repositories.MockCommentRepository)
	users := new(repositories.MockUserRepository)

	var stored *models.Comment
	comments.On("Create", mock.Anything, mock.AnythingOfType("*models.Comment")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*models.Comment) }).
		Return(nil)

	w := doJSON(t, newCommentRouter(comments, users, caller),
		http.MethodPost, "/api/posts/"+postID.Hex()+"/comments", gin.H{"body": "  nice writeup  "})

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, stored)
	assert.Equal(t, postID, stored.PostID)
	assert.Equal(t, caller.ID, stored.UserID)
	assert.Equal(t, "nice writeup", stored.Body)
}

func TestCreateCommentEmptyBody(t *testing.T) {
	caller := testCaller()
	postID := primitive.NewObjectID()

	for _, payload := range []gin.H{{"body": ""}, {"body": "   "}, {}} {
		comments := new(repositories.MockCommentRepository)
		users := new(repositories.MockUserRepository)

		w := doJSON(t, newCommentRouter(comments, users, caller),
			http.MethodPost, "/api/posts/"+postID.Hex()+"/comments", payload)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Comment text required")
		comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	}
}

func TestDeleteCommentAuthorization(t *testing.T) {
	author := testCaller()
	stranger := models.User{ID: primitive.NewObjectID(), Name: "Mallory Mal", Email: "mallory@ex.com"}
	admin := models.User{ID: primitive.NewObjectID(), Name: "Root", Email: "root@ex.com", IsAdmin: true}

	postID := primitive.NewObjectID()
	commentID := primitive.NewObjectID()
	comment := models.Comment{ID: commentID, PostID: postID, UserID: author.ID, Body: "mine"}

	path := "/api/posts/" + postID.Hex() + "/comments/" + commentID.Hex()

	t.Run("stranger is forbidden", func(t *testing.T) {
		comments := new(repositories.MockCommentRepository)
		users := new(repositories.MockUserRepository)
		comments.On("FindByIDUnderPost", mock.Anything, commentID, postID).Return(&comment, nil)

		w := doJSON(t, newCommentRouter(comments, users, stranger), http.MethodDelete, path, nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Not authorized")
		comments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("author may delete", func(t *testing.T) {
		comments := new(repositories.MockCommentRepository)
		users := new(repositories.MockUserRepository)
		comments.On("FindByIDUnderPost", mock.Anything, commentID, postID).Return(&comment, nil)
		comments.On("Delete", mock.Anything, commentID).Return(nil)

		w := doJSON(t, newCommentRouter(comments, users, author), http.MethodDelete, path, nil)

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, commentID.Hex(), body["id"])
	})

	t.Run("admin may delete", func(t *testing.T) {
		comments := new(repositories.MockCommentRepository)
		users := new(repositories.MockUserRepository)
		comments.On("FindByIDUnderPost", mock.Anything, commentID, postID).Return(&comment, nil)
		comments.On("Delete", mock.Anything, commentID).Return(nil)

		w := doJSON(t, newCommentRouter(comments, users, admin), http.MethodDelete, path, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing comment is 404", func(t *testing.T) {
		comments := new(repositories.MockCommentRepository)
		users := new(repositories.MockUserRepository)
		other := primitive.NewObjectID()
		comments.On("FindByIDUnderPost", mock.Anything, other, postID).Return(nil, repositories.ErrNotFound)

		w := doJSON(t, newCommentRouter(comments, users, author), http.MethodDelete,
			"/api/posts/"+postID.Hex()+"/comments/"+other.Hex(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Comment not found")
	})
}
