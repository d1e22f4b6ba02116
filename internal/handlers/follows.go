package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/yatube/backend/internal/middleware"
	"github.com/emilythestrangee/yatube/backend/internal/models"
	"github.com/emilythestrangee/yatube/backend/internal/service"
)

const searchParam = "search"

type FollowHandler struct {
	base
	follows *service.FollowService
}

type followRequest struct {
	Following string `json:"following"`
}

// GetFollows lists the caller's follow edges, filtered by ?search=.
func (h *FollowHandler) GetFollows(c *gin.Context) {
	p := h.pageParams(c)
	list, err := h.follows.List(c.Request.Context(), middleware.Principal(c), c.Query(searchParam), p.Page())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondList(c, p, list, (*models.Follow).Response)
}

func (h *FollowHandler) GetFollow(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	follow, err := h.follows.Get(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, follow.Response())
}

// FollowUser makes the caller follow the username in the body
func (h *FollowHandler) FollowUser(c *gin.Context) {
	principal := middleware.Principal(c)
	if principal == nil {
		// Anonymous callers learn nothing about the body.
		h.respondError(c, service.ErrUnauthenticated)
		return
	}

	var input followRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	follow, err := h.follows.Create(c.Request.Context(), principal, input.Following)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.metrics.Write("follow", "create")
	c.JSON(http.StatusCreated, follow.Response())
}

// UnfollowUser removes one of the caller's follow edges
func (h *FollowHandler) UnfollowUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.follows.Delete(c.Request.Context(), middleware.Principal(c), id); err != nil {
		h.respondError(c, err)
		return
	}

	h.metrics.Write("follow", "delete")
	c.Status(http.StatusNoContent)
}

// UpdateFollow rejects PUT/PATCH: follow edges are created and deleted, never edited.
func (h *FollowHandler) UpdateFollow(c *gin.Context) {
	h.respondError(c, service.FollowPolicy.Check(service.ActionUpdate, middleware.Principal(c)))
}
