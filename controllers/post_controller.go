package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/frazhaidry/DebugDairy/middlewares"
	"github.com/frazhaidry/DebugDairy/models"
	"github.com/frazhaidry/DebugDairy/repositories"
	"github.com/frazhaidry/DebugDairy/utils"
)

// PostController handles the documentation post endpoints.
type PostController struct {
	posts repositories.PostRepository
	users repositories.UserRepository
}

func NewPostController(posts repositories.PostRepository, users repositories.UserRepository) *PostController {
	return &PostController{posts: posts, users: users}
}

type createPostRequest struct {
	Title         string   `json:"title"`
	Problem       string   `json:"problem"`
	Solution      string   `json:"solution"`
	ResourceLinks []string `json:"resourceLinks"`
	Tags          []string `json:"tags"`
}

type updatePostRequest struct {
	Title         *string   `json:"title"`
	Problem       *string   `json:"problem"`
	Solution      *string   `json:"solution"`
	ResourceLinks *[]string `json:"resourceLinks"`
	Tags          *[]string `json:"tags"`
}

// Create stores a post owned by the caller. A client-supplied author is
// ignored: createdBy is always the authenticated user.
func (pc *PostController) Create(c *gin.Context) {
	caller, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.Message(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Message(c, http.StatusBadRequest, "Please provide all required fields")
		return
	}
	if req.Title == "" || req.Problem == "" || req.Solution == "" || req.ResourceLinks == nil || req.Tags == nil {
		utils.Message(c, http.StatusBadRequest, "Please provide all required fields")
		return
	}

	now := time.Now()
	post := models.Post{
		ID:            primitive.NewObjectID(),
		Title:         req.Title,
		Problem:       req.Problem,
		Solution:      req.Solution,
		ResourceLinks: req.ResourceLinks,
		Tags:          req.Tags,
		CreatedBy:     caller.ID,
		Likes:         []primitive.ObjectID{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := pc.posts.Create(c.Request.Context(), &post); err != nil {
		pc.internalError(c, "create", err)
		return
	}

	view := pc.viewWith(post, map[primitive.ObjectID]models.Author{caller.ID: caller.Author()})
	c.JSON(http.StatusCreated, gin.H{
		"message": "Post created successfully",
		"post":    view,
	})
}

// List returns every post, authors and like-sets populated. Search, filter
// and sort are client concerns.
func (pc *PostController) List(c *gin.Context) {
	posts, err := pc.posts.FindAll(c.Request.Context())
	if err != nil {
		pc.internalError(c, "list", err)
		return
	}

	views, err := pc.populate(c, posts)
	if err != nil {
		pc.internalError(c, "list populate", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": views})
}

// Get returns a single post by id, 404 when it does not exist.
func (pc *PostController) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Message(c, http.StatusNotFound, "Post not found")
		return
	}

	post, err := pc.posts.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Message(c, http.StatusNotFound, "Post not found")
			return
		}
		pc.internalError(c, "get", err)
		return
	}

	views, err := pc.populate(c, []models.Post{*post})
	if err != nil {
		pc.internalError(c, "get populate", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": views[0]})
}

// Update applies the fields present in the request and leaves the rest
// untouched. createdBy is reassigned to the caller on every update and no
// ownership check runs first; both match the deployed behavior.
func (pc *PostController) Update(c *gin.Context) {
	caller, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.Message(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Message(c, http.StatusNotFound, "Post not found")
		return
	}

	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Message(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	set := bson.M{"createdBy": caller.ID}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Problem != nil {
		set["problem"] = *req.Problem
	}
	if req.Solution != nil {
		set["solution"] = *req.Solution
	}
	if req.ResourceLinks != nil {
		set["resourceLinks"] = *req.ResourceLinks
	}
	if req.Tags != nil {
		set["tags"] = *req.Tags
	}

	post, err := pc.posts.Update(c.Request.Context(), id, set)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Message(c, http.StatusNotFound, "Post not found")
			return
		}
		pc.internalError(c, "update", err)
		return
	}

	views, err := pc.populate(c, []models.Post{*post})
	if err != nil {
		pc.internalError(c, "update populate", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Post updated successfully",
		"post":    views[0],
	})
}

// Delete removes the post by id. Any authenticated caller may delete any
// post; see the design notes before changing that.
func (pc *PostController) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Message(c, http.StatusNotFound, "Post not found")
		return
	}

	if err := pc.posts.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Message(c, http.StatusNotFound, "Post not found")
			return
		}
		pc.internalError(c, "delete", err)
		return
	}
	utils.Message(c, http.StatusOK, "Post deleted successfully")
}

// ToggleLike likes the post if the caller is not in the like-set, unlikes
// it if they are. The store applies each branch as one conditional update.
func (pc *PostController) ToggleLike(c *gin.Context) {
	caller, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.Message(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Message(c, http.StatusNotFound, "Post not found")
		return
	}

	post, err := pc.posts.ToggleLike(c.Request.Context(), id, caller.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Message(c, http.StatusNotFound, "Post not found")
			return
		}
		pc.internalError(c, "toggle like", err)
		return
	}

	views, err := pc.populate(c, []models.Post{*post})
	if err != nil {
		pc.internalError(c, "toggle like populate", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": views[0]})
}

// populate resolves author and like-set references to {id, name}
// projections with a single users query.
func (pc *PostController) populate(c *gin.Context, posts []models.Post) ([]models.PostView, error) {
	seen := map[primitive.ObjectID]struct{}{}
	var ids []primitive.ObjectID
	for _, p := range posts {
		for _, id := range append([]primitive.ObjectID{p.CreatedBy}, p.Likes...) {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	authors := map[primitive.ObjectID]models.Author{}
	if len(ids) > 0 {
		users, err := pc.users.FindByIDs(c.Request.Context(), ids)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			authors[u.ID] = u.Author()
		}
	}

	views := make([]models.PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, pc.viewWith(p, authors))
	}
	return views, nil
}

func (pc *PostController) viewWith(p models.Post, authors map[primitive.ObjectID]models.Author) models.PostView {
	likes := make([]models.Author, 0, len(p.Likes))
	for _, id := range p.Likes {
		if a, ok := authors[id]; ok {
			likes = append(likes, a)
		}
	}
	return models.PostView{
		ID:            p.ID,
		Title:         p.Title,
		Problem:       p.Problem,
		Solution:      p.Solution,
		ResourceLinks: p.ResourceLinks,
		Tags:          p.Tags,
		CreatedBy:     authors[p.CreatedBy],
		Likes:         likes,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (pc *PostController) internalError(c *gin.Context, op string, err error) {
	utils.Sugar.Errorw("post: "+op, "error", err)
	utils.Message(c, http.StatusInternalServerError, "Internal server error")
}
