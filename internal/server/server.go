package server

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/emilythestrangee/yatube/backend/internal/auth"
	"github.com/emilythestrangee/yatube/backend/internal/cache"
	"github.com/emilythestrangee/yatube/backend/internal/config"
	"github.com/emilythestrangee/yatube/backend/internal/handlers"
	"github.com/emilythestrangee/yatube/backend/internal/metrics"
	"github.com/emilythestrangee/yatube/backend/internal/middleware"
	"github.com/emilythestrangee/yatube/backend/internal/repository"
	"github.com/emilythestrangee/yatube/backend/internal/service"
)

// Deps is everything the API needs from the process that hosts it.
type Deps struct {
	Config  *config.Config
	Log     *logrus.Logger
	Repos   repository.Repositories
	Cache   cache.Cache // optional
	Metrics *metrics.Metrics
	// Health reports backing store status for /health; nil reports ok.
	Health func() map[string]string
}

type Server struct {
	cfg     *config.Config
	log     *logrus.Logger
	handler *handlers.Handler
	tokens  *auth.Issuer
	users   *service.UserService
	metrics *metrics.Metrics
	health  func() map[string]string
}

// New wires services and handlers on top of the given repositories
func New(d Deps) *Server {
	if d.Metrics == nil {
		d.Metrics = metrics.New()
	}

	svc := service.New(d.Log, d.Repos, service.Options{
		Cache:         d.Cache,
		GroupCacheTTL: d.Config.Redis.GroupTTL,
	})
	tokens := auth.NewIssuer(d.Config.JWT.Secret, d.Config.JWT.AccessTTL, d.Config.JWT.RefreshTTL)

	return &Server{
		cfg:     d.Config,
		log:     d.Log,
		handler: handlers.NewHandler(svc, tokens, d.Metrics, d.Config.Pagination, d.Log),
		tokens:  tokens,
		users:   svc.Users,
		metrics: d.Metrics,
		health:  d.Health,
	}
}

// HTTPServer wraps the router with the configured timeouts
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         "0.0.0.0:" + s.cfg.Port,
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  s.cfg.IdleTimeout,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.New()
	// Both "/posts" and "/posts/" are registered explicitly below.
	r.RedirectTrailingSlash = false

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(s.log))
	r.Use(s.metrics.Middleware())

	origins := s.cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	r.GET("/health", s.healthHandler)
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	h := s.handler
	api := r.Group("/v1")
	api.Use(middleware.AuthMiddleware(s.tokens, s.users))
	{
		// Auth collaborator
		handle(api, http.MethodPost, "/users", h.Auth.Register)
		handle(api, http.MethodPost, "/jwt/create", h.Auth.CreateToken)
		handle(api, http.MethodPost, "/jwt/refresh", h.Auth.RefreshToken)
		handle(api, http.MethodPost, "/jwt/verify", h.Auth.VerifyToken)

		// Post routes
		handle(api, http.MethodGet, "/posts", h.Post.GetPosts)
		handle(api, http.MethodPost, "/posts", h.Post.CreatePost)
		handle(api, http.MethodGet, "/posts/:id", h.Post.GetPost)
		handle(api, http.MethodPut, "/posts/:id", h.Post.UpdatePost)
		handle(api, http.MethodPatch, "/posts/:id", h.Post.UpdatePost)
		handle(api, http.MethodDelete, "/posts/:id", h.Post.DeletePost)

		// Comment routes
		handle(api, http.MethodGet, "/posts/:id/comments", h.Comment.GetComments)
		handle(api, http.MethodPost, "/posts/:id/comments", h.Comment.CreateComment)
		handle(api, http.MethodGet, "/posts/:id/comments/:comment_id", h.Comment.GetComment)
		handle(api, http.MethodPut, "/posts/:id/comments/:comment_id", h.Comment.UpdateComment)
		handle(api, http.MethodPatch, "/posts/:id/comments/:comment_id", h.Comment.UpdateComment)
		handle(api, http.MethodDelete, "/posts/:id/comments/:comment_id", h.Comment.DeleteComment)

		// Group routes (read only)
		handle(api, http.MethodGet, "/groups", h.Group.GetGroups)
		handle(api, http.MethodPost, "/groups", h.Group.Reject(service.ActionCreate))
		handle(api, http.MethodGet, "/groups/:id", h.Group.GetGroup)
		handle(api, http.MethodPut, "/groups/:id", h.Group.Reject(service.ActionUpdate))
		handle(api, http.MethodPatch, "/groups/:id", h.Group.Reject(service.ActionUpdate))
		handle(api, http.MethodDelete, "/groups/:id", h.Group.Reject(service.ActionDelete))

		// Follow routes
		handle(api, http.MethodGet, "/follow", h.Follow.GetFollows)
		handle(api, http.MethodPost, "/follow", h.Follow.FollowUser)
		handle(api, http.MethodGet, "/follow/:id", h.Follow.GetFollow)
		handle(api, http.MethodPut, "/follow/:id", h.Follow.UpdateFollow)
		handle(api, http.MethodPatch, "/follow/:id", h.Follow.UpdateFollow)
		handle(api, http.MethodDelete, "/follow/:id", h.Follow.UnfollowUser)
	}

	return r
}

// handle registers path with and without the trailing slash.
func handle(g *gin.RouterGroup, method, path string, h gin.HandlerFunc) {
	g.Handle(method, path, h)
	g.Handle(method, strings.TrimSuffix(path, "/")+"/", h)
}

func (s *Server) healthHandler(c *gin.Context) {
	if s.health == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	stats := s.health()
	if stats["status"] != "up" {
		c.JSON(http.StatusServiceUnavailable, stats)
		return
	}
	c.JSON(http.StatusOK, stats)
}
