package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/frazhaidry/DebugDairy/middlewares"
	"github.com/frazhaidry/DebugDairy/models"
	"github.com/frazhaidry/DebugDairy/repositories"
	"github.com/frazhaidry/DebugDairy/utils"
)

// CommentController handles the comment endpoints nested under posts.
type CommentController struct {
	comments repositories.CommentRepository
	users    repositories.UserRepository
}

func NewCommentController(comments repositories.CommentRepository, users repositories.UserRepository) *CommentController {
	return &CommentController{comments: comments, users: users}
}

type createCommentRequest struct {
	Body string `json:"body"`
}

// List returns a post's comments newest first, authors populated with name
// and email.
func (cc *CommentController) List(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Message(c, http.StatusBadRequest, "Invalid post ID")
		return
	}

	comments, err := cc.comments.FindByPost(c.Request.Context(), postID)
	if err != nil {
		cc.internalError(c, "list", err)
		return
	}

	views, err := cc.populate(c, comments)
	if err != nil {
		cc.internalError(c, "list populate", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": views})
}

// Create stores a comment by the caller under the post.
func (cc *CommentController) Create(c *gin.Context) {
	caller, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.Message(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Message(c, http.StatusBadRequest, "Invalid post ID")
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Message(c, http.StatusBadRequest, "Comment text required")
		return
	}
	body := strings.TrimSpace(req.Body)
	if body == "" {
		utils.Message(c, http.StatusBadRequest, "Comment text required")
		return
	}

	now := time.Now()
	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		PostID:    postID,
		UserID:    caller.ID,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := cc.comments.Create(c.Request.Context(), &comment); err != nil {
		cc.internalError(c, "create", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": models.CommentView{
		ID:        comment.ID,
		PostID:    comment.PostID,
		Author:    caller.CommentAuthor(),
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}})
}

// Delete removes a comment. Only its author or an admin may do so.
func (cc *CommentController) Delete(c *gin.Context) {
	caller, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.Message(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Message(c, http.StatusNotFound, "Comment not found")
		return
	}
	commentID, err := primitive.ObjectIDFromHex(c.Param("commentId"))
	if err != nil {
		utils.Message(c, http.StatusNotFound, "Comment not found")
		return
	}

	comment, err := cc.comments.FindByIDUnderPost(c.Request.Context(), commentID, postID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Message(c, http.StatusNotFound, "Comment not found")
			return
		}
		cc.internalError(c, "delete lookup", err)
		return
	}

	if comment.UserID != caller.ID && !caller.IsAdmin {
		utils.Message(c, http.StatusForbidden, "Not authorized")
		return
	}

	if err := cc.comments.Delete(c.Request.Context(), commentID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Message(c, http.StatusNotFound, "Comment not found")
			return
		}
		cc.internalError(c, "delete", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Deleted successfully",
		"id":      commentID.Hex(),
	})
}

func (cc *CommentController) populate(c *gin.Context, comments []models.Comment) ([]models.CommentView, error) {
	seen := map[primitive.ObjectID]struct{}{}
	var ids []primitive.ObjectID
	for _, cm := range comments {
		if _, ok := seen[cm.UserID]; !ok {
			seen[cm.UserID] = struct{}{}
			ids = append(ids, cm.UserID)
		}
	}

	authors := map[primitive.ObjectID]models.CommentAuthor{}
	if len(ids) > 0 {
		users, err := cc.users.FindByIDs(c.Request.Context(), ids)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			authors[u.ID] = u.CommentAuthor()
		}
	}

	views := make([]models.CommentView, 0, len(comments))
	for _, cm := range comments {
		views = append(views, models.CommentView{
			ID:        cm.ID,
			PostID:    cm.PostID,
			Author:    authors[cm.UserID],
			Body:      cm.Body,
			CreatedAt: cm.CreatedAt,
			UpdatedAt: cm.UpdatedAt,
		})
	}
	return views, nil
}

func (cc *CommentController) internalError(c *gin.Context, op string, err error) {
	utils.Sugar.Errorw("comment: "+op, "error", err)
	utils.Message(c, http.StatusInternalServerError, "Internal server error")
}
