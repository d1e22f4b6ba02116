package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/emilythestrangee/yatube/backend/internal/auth"
	"github.com/emilythestrangee/yatube/backend/internal/cache"
	"github.com/emilythestrangee/yatube/backend/internal/models"
	"github.com/emilythestrangee/yatube/backend/internal/repository"
)

// GroupService serves the read-only group catalogue. Groups change only
// out-of-band, so reads may be cached for ttl.
type GroupService struct {
	log    logrus.FieldLogger
	groups repository.GroupRepository
	cache  cache.Cache
	ttl    time.Duration
}

func newGroupService(log logrus.FieldLogger, repos repository.Repositories, c cache.Cache, ttl time.Duration) *GroupService {
	return &GroupService{
		log:    log.WithField("component", "groups"),
		groups: repos.Groups,
		cache:  c,
		ttl:    ttl,
	}
}

// Authorize is the gate for write actions on groups. With the current policy
// it always fails with ErrMethodNotAllowed, whoever the caller is.
func (s *GroupService) Authorize(action Action, principal *auth.Principal) error {
	return GroupPolicy.Check(action, principal)
}

func (s *GroupService) List(ctx context.Context, principal *auth.Principal, page repository.Page) (*List[models.Group], error) {
	if err := GroupPolicy.Check(ActionList, principal); err != nil {
		return nil, err
	}

	key := cache.GroupsListKey(page.Limit, page.Offset)
	var cached List[models.Group]
	if s.lookup(ctx, key, &cached) {
		return &cached, nil
	}

	groups, count, err := s.groups.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}

	result := &List[models.Group]{Items: groups, Count: count}
	s.store(ctx, key, result)
	return result, nil
}

func (s *GroupService) Get(ctx context.Context, principal *auth.Principal, id int) (*models.Group, error) {
	if err := GroupPolicy.Check(ActionRetrieve, principal); err != nil {
		return nil, err
	}

	key := cache.GroupKey(id)
	var cached models.Group
	if s.lookup(ctx, key, &cached) {
		return &cached, nil
	}

	group, err := s.groups.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	s.store(ctx, key, group)
	return group, nil
}

// Cache failures degrade to a database read; they never fail the request.
func (s *GroupService) lookup(ctx context.Context, key string, dst interface{}) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.Get(ctx, key, dst)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Warn("failed to read group cache")
		return false
	}
	return hit
}

func (s *GroupService) store(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("failed to write group cache")
	}
}
