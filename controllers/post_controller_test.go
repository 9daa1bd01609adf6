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
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/frazhaidry/DebugDairy/models"
	"github.com/frazhaidry/DebugDairy/repositories"
)

// asUser mimics the auth gate by attaching a resolved caller.
func asUser(user models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user", user)
		c.Next()
	}
}

func newPostRouter(posts repositories.PostRepository, users repositories.UserRepository, caller models.User) *gin.Engine {
	pc := NewPostController(posts, users)
	r := gin.New()
	r.GET("/api/posts", pc.List)
	r.GET("/api/posts/:id", pc.Get)
	r.POST("/api/posts", asUser(caller), pc.Create)
	r.PUT("/api/posts/:id", asUser(caller), pc.Update)
	r.DELETE("/api/posts/:id", asUser(caller), pc.Delete)
	r.PUT("/api/posts/:id/like", asUser(caller), pc.ToggleLike)
	return r
}

func testCaller() models.User {
	return models.User{ID: primitive.NewObjectID(), Name: "Ada Lovelace", Email: "ada@ex.com"}
}

func TestCreatePostForcesCaller(t *testing.T) {
	caller := testCaller()
	posts := new(repositories.MockPostRepository)
	users := new(repositories.MockUserRepository)

	var stored *models.Post
	posts.On("Create", mock.Anything, mock.AnythingOfType("*models.Post")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*models.Post) }).
		Return(nil)

	w := doJSON(t, newPostRouter(posts, users, caller), http.MethodPost, "/api/posts", gin.H{
		"title":         "T",
		"problem":       "P",
		"solution":      "S",
		"resourceLinks": []string{"http://x"},
		"tags":          []string{"go"},
		// a spoofed author is ignored
		"createdBy": primitive.NewObjectID().Hex(),
	})

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, stored)
	assert.Equal(t, caller.ID, stored.CreatedBy)
	assert.NotNil(t, stored.Likes)
	assert.Empty(t, stored.Likes)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	var view models.PostView
	require.NoError(t, json.Unmarshal(body["post"], &view))
	assert.Equal(t, caller.ID, view.CreatedBy.ID)
	assert.Equal(t, caller.Name, view.CreatedBy.Name)
}

func TestCreatePostMissingFields(t *testing.T) {
	tests := []struct {
		name    string
		payload gin.H
	}{
		{"no title", gin.H{"problem": "P", "solution": "S", "resourceLinks": []string{}, "tags": []string{}}},
		{"no problem", gin.H{"title": "T", "solution": "S", "resourceLinks": []string{}, "tags": []string{}}},
		{"no solution", gin.H{"title": "T", "problem": "P", "resourceLinks": []string{}, "tags": []string{}}},
		{"no resource links", gin.H{"title": "T", "problem": "P", "solution": "S", "tags": []string{}}},
		{"no tags", gin.H{"title": "T", "problem": "P", "solution": "S", "resourceLinks": []string{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts := new(repositories.MockPostRepository)
			users := new(repositories.MockUserRepository)
			w := doJSON(t, newPostRouter(posts, users, testCaller()), http.MethodPost, "/api/posts", tt.payload)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "Please provide all required fields")
			posts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestGetPostNotFound(t *testing.T) {
	posts := new(repositories.MockPostRepository)
	users := new(repositories.MockUserRepository)
	missing := primitive.NewObjectID()
	posts.On("FindByID", mock.Anything, missing).Return(nil, repositories.ErrNotFound)

	r := newPostRouter(posts, users, testCaller())

	w := doJSON(t, r, http.MethodGet, "/api/posts/"+missing.Hex(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Post not found")

	// structurally invalid ids cannot exist either
	w = doJSON(t, r, http.MethodGet, "/api/posts/not-a-hex-id", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListPostsPopulatesAuthors(t *testing.T) {
	author := testCaller()
	fan := models.User{ID: primitive.NewObjectID(), Name: "Grace Hopper", Email: "grace@ex.com"}

	post := models.Post{
		ID:            primitive.NewObjectID(),
		Title:         "T",
		Problem:       "P",
		Solution:      "S",
		ResourceLinks: []string{"http://x"},
		Tags:          []string{"go"},
		CreatedBy:     author.ID,
		Likes:         []primitive.ObjectID{fan.ID},
		CreatedAt:     time.Now(),
	}

	posts := new(repositories.MockPostRepository)
	users := new(repositories.MockUserRepository)
	posts.On("FindAll", mock.Anything).Return([]models.Post{post}, nil)
	users.On("FindByIDs", mock.Anything, mock.Anything).Return([]models.User{author, fan}, nil)

	w := doJSON(t, newPostRouter(posts, users, author), http.MethodGet, "/api/posts", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string][]models.PostView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body["posts"], 1)

	view := body["posts"][0]
	assert.Equal(t, author.Name, view.CreatedBy.Name)
	require.Len(t, view.Likes, 1)
	assert.Equal(t, fan.Name, view.Likes[0].Name)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestUpdatePostPartialAndReassignsAuthor(t *testing.T) {
	caller := testCaller()
	postID := primitive.NewObjectID()

	updated := models.Post{
		ID:        postID,
		Title:     "New title",
		Problem:   "P",
		Solution:  "S",
		CreatedBy: caller.ID,
		Likes:     []primitive.ObjectID{},
	}

	posts := new(repositories.MockPostRepository)
	users := new(repositories.MockUserRepository)

	posts.On("Update", mock.Anything, postID, mock.MatchedBy(func(set bson.M) bool {
		// only the provided field plus the forced author reassignment
		_, hasTitle := set["title"]
		_, hasProblem := set["problem"]
		_, hasSolution := set["solution"]
		_, hasLinks := set["resourceLinks"]
		_, hasTags := set["tags"]
		return hasTitle && !hasProblem && !hasSolution && !hasLinks && !hasTags &&
			set["createdBy"] == caller.ID
	})).Return(&updated, nil)
	users.On("FindByIDs", mock.Anything, mock.Anything).Return([]models.User{caller}, nil)

	w := doJSON(t, newPostRouter(posts, users, caller), http.MethodPut, "/api/posts/"+postID.Hex(),
		gin.H{"title": "New title"})

	require.Equal(t, http.StatusOK, w.Code)
	posts.AssertExpectations(t)
}

func TestUpdatePostNotFound(t *testing.T) {
	posts := new(repositories.MockPostRepository)
	users := new(repositories.MockUserRepository)
	missing := primitive.NewObjectID()
	posts.On("Update", mock.Anything, missing, mock.Anything).Return(nil, repositories.ErrNotFound)

	w := doJSON(t, newPostRouter(posts, users, testCaller()), http.MethodPut, "/api/posts/"+missing.Hex(),
		gin.H{"title": "x"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Post not found")
}

func TestDeletePost(t *testing.T) {
	posts := new(repositories.MockPostRepository)
	users := new(repositories.MockUserRepository)
	id := primitive.NewObjectID()
	posts.On("Delete", mock.Anything, id).Return(nil)

	w := doJSON(t, newPostRouter(posts, users, testCaller()), http.MethodDelete, "/api/posts/"+id.Hex(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Post deleted successfully")

	missing := primitive.NewObjectID()
	posts.On("Delete", mock.Anything, missing).Return(repositories.ErrNotFound)
	w = doJSON(t, newPostRouter(posts, users, testCaller()), http.MethodDelete, "/api/posts/"+missing.Hex(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleLike(t *testing.T) {
	caller := testCaller()
	postID := primitive.NewObjectID()

	liked := models.Post{
		ID:        postID,
		Title:     "T",
		CreatedBy: caller.ID,
		Likes:     []primitive.ObjectID{caller.ID},
	}

	posts := new(repositories.MockPostRepository)
	users := new(repositories.MockUserRepository)
	posts.On("ToggleLike", mock.Anything, postID, caller.ID).Return(&liked, nil)
	users.On("FindByIDs", mock.Anything, mock.Anything).Return([]models.User{caller}, nil)

	w := doJSON(t, newPostRouter(posts, users, caller), http.MethodPut, "/api/posts/"+postID.Hex()+"/like", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	var view models.PostView
	require.NoError(t, json.Unmarshal(body["post"], &view))
	require.Len(t, view.Likes, 1)
	assert.Equal(t, caller.ID, view.Likes[0].ID)
}

func TestToggleLikeMissingPost(t *testing.T) {
	caller := testCaller()
	posts := new(repositories.MockPostRepository)
	users := new(repositories.MockUserRepository)
	missing := primitive.NewObjectID()
	posts.On("ToggleLike", mock.Anything, missing, caller.ID).Return(nil, repositories.ErrNotFound)

	w := doJSON(t, newPostRouter(posts, users, caller), http.MethodPut, "/api/posts/"+missing.Hex()+"/like", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
