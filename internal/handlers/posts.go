package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/yatube/backend/internal/middleware"
	"github.com/emilythestrangee/yatube/backend/internal/models"
	"github.com/emilythestrangee/yatube/backend/internal/service"
)

type PostHandler struct {
	base
	posts *service.PostService
}

// postRequest has no author field: the author always comes from the token.
type postRequest struct {
	Text  *string     `json:"text"`
	Group optionalInt `json:"group"`
	Image *string     `json:"image"`
}

func (r postRequest) input() service.PostInput {
	return service.PostInput{
		Text:     r.Text,
		Group:    r.Group.Value,
		GroupSet: r.Group.Set,
		Image:    r.Image,
	}
}

// GetPosts lists posts, newest first.
func (h *PostHandler) GetPosts(c *gin.Context) {
	p := h.pageParams(c)
	list, err := h.posts.List(c.Request.Context(), middleware.Principal(c), p.Page())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondList(c, p, list, (*models.Post).Response)
}

// GetPost returns a single post by ID
func (h *PostHandler) GetPost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	post, err := h.posts.Get(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post.Response())
}

// CreatePost creates a new post authored by the caller
func (h *PostHandler) CreatePost(c *gin.Context) {
	principal := middleware.Principal(c)
	if err := h.posts.Authorize(c.Request.Context(), principal, service.ActionCreate, 0); err != nil {
		h.respondError(c, err)
		return
	}

	var input postRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	post, err := h.posts.Create(c.Request.Context(), principal, input.input())
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.metrics.Write("post", "create")
	c.JSON(http.StatusCreated, post.Response())
}

// UpdatePost handles PUT and PATCH (author only)
func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	principal := middleware.Principal(c)
	if err := h.posts.Authorize(c.Request.Context(), principal, service.ActionUpdate, id); err != nil {
		h.respondError(c, err)
		return
	}

	var input postRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	partial := c.Request.Method == http.MethodPatch
	post, err := h.posts.Update(c.Request.Context(), principal, id, input.input(), partial)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.metrics.Write("post", "update")
	c.JSON(http.StatusOK, post.Response())
}

// DeletePost deletes a post (author only)
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.posts.Delete(c.Request.Context(), middleware.Principal(c), id); err != nil {
		h.respondError(c, err)
		return
	}

	h.metrics.Write("post", "delete")
	c.Status(http.StatusNoContent)
}
