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

// PostInput carries the client-writable post fields. Nil pointers are absent
// fields; GroupSet distinguishes an explicit null group from an absent one.
type PostInput struct {
	Text     *string
	Group    *int
	GroupSet bool
	Image    *string
}

type PostService struct {
	log    logrus.FieldLogger
	posts  repository.PostRepository
	groups repository.GroupRepository
}

func newPostService(log logrus.FieldLogger, repos repository.Repositories) *PostService {
	return &PostService{
		log:    log.WithField("component", "posts"),
		posts:  repos.Posts,
		groups: repos.Groups,
	}
}

func (s *PostService) List(ctx context.Context, principal *auth.Principal, page repository.Page) (*List[models.Post], error) {
	if err := PostPolicy.Check(ActionList, principal); err != nil {
		return nil, err
	}

	posts, count, err := s.posts.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return &List[models.Post]{Items: posts, Count: count}, nil
}

func (s *PostService) Get(ctx context.Context, principal *auth.Principal, id int) (*models.Post, error) {
	if err := PostPolicy.Check(ActionRetrieve, principal); err != nil {
		return nil, err
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return post, nil
}

// Create stores a post authored by the principal.
func (s *PostService) Create(ctx context.Context, principal *auth.Principal, in PostInput) (*models.Post, error) {
	if err := PostPolicy.Check(ActionCreate, principal); err != nil {
		return nil, err
	}

	post := models.Post{AuthorID: principal.ID}
	if err := s.apply(ctx, &post, in, false); err != nil {
		return nil, err
	}

	if err := s.posts.Create(ctx, &post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.log.WithFields(logrus.Fields{"post_id": post.ID, "author": principal.Username}).Info("post created")
	return &post, nil
}

// Update is PUT when partial is false and PATCH otherwise. Only the author may
// update, and that is checked before the body is validated.
func (s *PostService) Update(ctx context.Context, principal *auth.Principal, id int, in PostInput, partial bool) (*models.Post, error) {
	post, err := s.editable(ctx, principal, ActionUpdate, id)
	if err != nil {
		return nil, err
	}

	if err := s.apply(ctx, post, in, partial); err != nil {
		return nil, err
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post %d: %w", id, notFound(err))
	}
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, principal *auth.Principal, id int) error {
	if _, err := s.editable(ctx, principal, ActionDelete, id); err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post %d: %w", id, notFound(err))
	}

	s.log.WithFields(logrus.Fields{"post_id": id, "author": principal.Username}).Info("post deleted")
	return nil
}

// Authorize runs the permission checks of action without reading any input:
// the policy first, then for update and delete the post lookup and the author
// check. Handlers call it before decoding the request body.
func (s *PostService) Authorize(ctx context.Context, principal *auth.Principal, action Action, id int) error {
	if action&(ActionUpdate|ActionDelete) == 0 {
		return PostPolicy.Check(action, principal)
	}
	_, err := s.editable(ctx, principal, action, id)
	return err
}

func (s *PostService) editable(ctx context.Context, principal *auth.Principal, action Action, id int) (*models.Post, error) {
	if err := PostPolicy.Check(action, principal); err != nil {
		return nil, err
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if !isAuthor(post.AuthorID, principal) {
		return nil, ErrPermissionDenied
	}
	return post, nil
}

func (s *PostService) apply(ctx context.Context, post *models.Post, in PostInput, partial bool) error {
	switch {
	case in.Text != nil:
		if strings.TrimSpace(*in.Text) == "" {
			return invalid("text", "This field may not be blank.")
		}
		post.Text = *in.Text
	case !partial:
		return invalid("text", "This field is required.")
	}

	if in.GroupSet {
		if in.Group != nil {
			if _, err := s.groups.FindByID(ctx, *in.Group); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return invalid("group", fmt.Sprintf(`Invalid pk "%d" - object does not exist.`, *in.Group))
				}
				return fmt.Errorf("find group %d: %w", *in.Group, err)
			}
		}
		post.GroupID = in.Group
	}

	if in.Image != nil {
		post.Image = strings.TrimSpace(*in.Image)
	}
	return nil
}
