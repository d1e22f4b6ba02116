package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/emilythestrangee/yatube/backend/internal/auth"
	"github.com/emilythestrangee/yatube/backend/internal/models"
	"github.com/emilythestrangee/yatube/backend/internal/repository"
)

type FollowService struct {
	log     logrus.FieldLogger
	users   repository.UserRepository
	follows repository.FollowRepository
}

func newFollowService(log logrus.FieldLogger, repos repository.Repositories) *FollowService {
	return &FollowService{
		log:     log.WithField("component", "follows"),
		users:   repos.Users,
		follows: repos.Follows,
	}
}

// List returns the principal's own follow edges, optionally filtered by a
// substring of the followed username.
func (s *FollowService) List(ctx context.Context, principal *auth.Principal, search string, page repository.Page) (*List[models.Follow], error) {
	if err := FollowPolicy.Check(ActionList, principal); err != nil {
		return nil, err
	}

	follows, count, err := s.follows.FindByUser(ctx, principal.ID, strings.TrimSpace(search), page)
	if err != nil {
		return nil, fmt.Errorf("list follows of user %d: %w", principal.ID, err)
	}
	return &List[models.Follow]{Items: follows, Count: count}, nil
}

func (s *FollowService) Get(ctx context.Context, principal *auth.Principal, id int) (*models.Follow, error) {
	if err := FollowPolicy.Check(ActionRetrieve, principal); err != nil {
		return nil, err
	}

	follow, err := s.follows.FindByID(ctx, principal.ID, id)
	if err != nil {
		return nil, notFound(err)
	}
	return follow, nil
}

// Create adds the edge principal -> following. The checks run in a fixed
// order: missing username, unknown username, existing edge, self-follow.
func (s *FollowService) Create(ctx context.Context, principal *auth.Principal, following string) (*models.Follow, error) {
	if err := FollowPolicy.Check(ActionCreate, principal); err != nil {
		return nil, err
	}

	following = strings.TrimSpace(following)
	if following == "" {
		return nil, invalid("following", "This field is required.")
	}

	target, err := s.users.FindByUsername(ctx, following)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, invalid("following", fmt.Sprintf("User %q does not exist.", following))
	}
	if err != nil {
		return nil, fmt.Errorf("find user %q: %w", following, err)
	}

	exists, err := s.follows.Exists(ctx, principal.ID, target.ID)
	if err != nil {
		return nil, fmt.Errorf("check follow %d->%d: %w", principal.ID, target.ID, err)
	}
	if exists {
		return nil, errAlreadyFollowing
	}

	if target.ID == principal.ID {
		return nil, invalid("following", "You cannot follow yourself.")
	}

	follow := models.Follow{UserID: principal.ID, FollowingID: target.ID}
	if err := s.follows.Create(ctx, &follow); err != nil {
		// Lost a race with a concurrent identical request; the unique index decided.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errAlreadyFollowing
		}
		return nil, fmt.Errorf("create follow %d->%d: %w", principal.ID, target.ID, err)
	}

	s.log.WithFields(logrus.Fields{"user": principal.Username, "following": target.Username}).Info("follow created")
	return &follow, nil
}

func (s *FollowService) Delete(ctx context.Context, principal *auth.Principal, id int) error {
	if err := FollowPolicy.Check(ActionDelete, principal); err != nil {
		return err
	}

	if _, err := s.follows.FindByID(ctx, principal.ID, id); err != nil {
		return notFound(err)
	}
	if err := s.follows.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete follow %d: %w", id, notFound(err))
	}
	return nil
}

var errAlreadyFollowing = invalid("following", "You already follow this user.")
