package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/yatube/backend/internal/middleware"
	"github.com/emilythestrangee/yatube/backend/internal/models"
	"github.com/emilythestrangee/yatube/backend/internal/service"
)

type GroupHandler struct {
	base
	groups *service.GroupService
}

func (h *GroupHandler) GetGroups(c *gin.Context) {
	p := h.pageParams(c)
	list, err := h.groups.List(c.Request.Context(), middleware.Principal(c), p.Page())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondList(c, p, list, func(g *models.Group) models.Group { return *g })
}

func (h *GroupHandler) GetGroup(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	group, err := h.groups.Get(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

// Reject answers the write verbs on groups. The group policy decides, before
// the body is read or anything is persisted.
func (h *GroupHandler) Reject(action service.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.groups.Authorize(action, middleware.Principal(c)); err != nil {
			if errors.Is(err, service.ErrMethodNotAllowed) {
				c.Header("Allow", "GET, HEAD, OPTIONS")
			}
			h.respondError(c, err)
			return
		}
		// Only reachable if the policy is relaxed without a write path.
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Not implemented."})
	}
}
