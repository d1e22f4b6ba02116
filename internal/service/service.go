// Package service holds the authorization and relationship rules for posts,
// comments, groups and follows. Every operation takes the caller's principal
// explicitly; nil means anonymous.
package service

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/emilythestrangee/yatube/backend/internal/cache"
	"github.com/emilythestrangee/yatube/backend/internal/repository"
)

type Service struct {
	Users    *UserService
	Groups   *GroupService
	Posts    *PostService
	Comments *CommentService
	Follows  *FollowService
}

type Options struct {
	// Cache is optional; nil disables group caching.
	Cache         cache.Cache
	GroupCacheTTL time.Duration
}

func New(log logrus.FieldLogger, repos repository.Repositories, opts Options) *Service {
	return &Service{
		Users:    newUserService(log, repos),
		Groups:   newGroupService(log, repos, opts.Cache, opts.GroupCacheTTL),
		Posts:    newPostService(log, repos),
		Comments: newCommentService(log, repos),
		Follows:  newFollowService(log, repos),
	}
}

// List is one window of an ordered collection plus the collection size.
type List[T any] struct {
	Items []T
	Count int64
}

// notFound maps the repository miss to the service error and passes anything else through.
func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
