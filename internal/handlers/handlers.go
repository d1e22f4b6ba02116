package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/emilythestrangee/yatube/backend/internal/auth"
	"github.com/emilythestrangee/yatube/backend/internal/config"
	"github.com/emilythestrangee/yatube/backend/internal/metrics"
	"github.com/emilythestrangee/yatube/backend/internal/service"
)

// Handler combines all handler types
type Handler struct {
	Auth    *AuthHandler
	Post    *PostHandler
	Comment *CommentHandler
	Group   *GroupHandler
	Follow  *FollowHandler
}

// base carries what every resource handler needs to answer a request.
type base struct {
	log     logrus.FieldLogger
	metrics *metrics.Metrics
	paging  config.PaginationConfig
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(svc *service.Service, tokens *auth.Issuer, m *metrics.Metrics, paging config.PaginationConfig, log logrus.FieldLogger) *Handler {
	b := base{log: log, metrics: m, paging: paging}

	return &Handler{
		Auth:    &AuthHandler{base: b, users: svc.Users, tokens: tokens},
		Post:    &PostHandler{base: b, posts: svc.Posts},
		Comment: &CommentHandler{base: b, comments: svc.Comments},
		Group:   &GroupHandler{base: b, groups: svc.Groups},
		Follow:  &FollowHandler{base: b, follows: svc.Follows},
	}
}
