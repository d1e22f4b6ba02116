package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/yatube/backend/internal/middleware"
	"github.com/emilythestrangee/yatube/backend/internal/models"
	"github.com/emilythestrangee/yatube/backend/internal/service"
)

type CommentHandler struct {
	base
	comments *service.CommentService
}

// commentRequest only reads text; post and author come from the path and the token.
type commentRequest struct {
	Text *string `json:"text"`
}

// GetComments returns the comments of the post in the path
func (h *CommentHandler) GetComments(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	p := h.pageParams(c)
	list, err := h.comments.List(c.Request.Context(), middleware.Principal(c), postID, p.Page())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondList(c, p, list, (*models.Comment).Response)
}

func (h *CommentHandler) GetComment(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	id, ok := pathID(c, "comment_id")
	if !ok {
		return
	}

	comment, err := h.comments.Get(c.Request.Context(), middleware.Principal(c), postID, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment.Response())
}

// CreateComment creates a new comment on a post
func (h *CommentHandler) CreateComment(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	principal := middleware.Principal(c)
	if err := h.comments.Authorize(c.Request.Context(), principal, service.ActionCreate, postID, 0); err != nil {
		h.respondError(c, err)
		return
	}

	var input commentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	comment, err := h.comments.Create(c.Request.Context(), principal, postID, service.CommentInput{Text: input.Text})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.metrics.Write("comment", "create")
	c.JSON(http.StatusCreated, comment.Response())
}

// UpdateComment handles PUT and PATCH (owner only)
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	id, ok := pathID(c, "comment_id")
	if !ok {
		return
	}

	principal := middleware.Principal(c)
	if err := h.comments.Authorize(c.Request.Context(), principal, service.ActionUpdate, postID, id); err != nil {
		h.respondError(c, err)
		return
	}

	var input commentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	partial := c.Request.Method == http.MethodPatch
	comment, err := h.comments.Update(c.Request.Context(), principal, postID, id, service.CommentInput{Text: input.Text}, partial)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.metrics.Write("comment", "update")
	c.JSON(http.StatusOK, comment.Response())
}

// DeleteComment deletes a comment (owner only)
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	id, ok := pathID(c, "comment_id")
	if !ok {
		return
	}

	if err := h.comments.Delete(c.Request.Context(), middleware.Principal(c), postID, id); err != nil {
		h.respondError(c, err)
		return
	}

	h.metrics.Write("comment", "delete")
	c.Status(http.StatusNoContent)
}
