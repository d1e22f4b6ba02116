package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/emilythestrangee/yatube/backend/internal/auth"
	"github.com/emilythestrangee/yatube/backend/internal/models"
	"github.com/emilythestrangee/yatube/backend/internal/repository"
)

type CommentInput struct {
	Text *string
}

type CommentService struct {
	log      logrus.FieldLogger
	posts    repository.PostRepository
	comments repository.CommentRepository
}

func newCommentService(log logrus.FieldLogger, repos repository.Repositories) *CommentService {
	return &CommentService{
		log:      log.WithField("component", "comments"),
		posts:    repos.Posts,
		comments: repos.Comments,
	}
}

// post resolves the parent post from the path; a missing post is ErrNotFound.
func (s *CommentService) post(ctx context.Context, postID int) (*models.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, notFound(err)
	}
	return post, nil
}

func (s *CommentService) List(ctx context.Context, principal *auth.Principal, postID int, page repository.Page) (*List[models.Comment], error) {
	if err := CommentPolicy.Check(ActionList, principal); err != nil {
		return nil, err
	}
	if _, err := s.post(ctx, postID); err != nil {
		return nil, err
	}

	comments, count, err := s.comments.FindByPost(ctx, postID, page)
	if err != nil {
		return nil, fmt.Errorf("list comments of post %d: %w", postID, err)
	}
	return &List[models.Comment]{Items: comments, Count: count}, nil
}

func (s *CommentService) Get(ctx context.Context, principal *auth.Principal, postID, id int) (*models.Comment, error) {
	if err := CommentPolicy.Check(ActionRetrieve, principal); err != nil {
		return nil, err
	}
	if _, err := s.post(ctx, postID); err != nil {
		return nil, err
	}

	comment, err := s.comments.FindByID(ctx, postID, id)
	if err != nil {
		return nil, notFound(err)
	}
	return comment, nil
}

// Create binds the comment to the path post and the principal, whatever the body says.
func (s *CommentService) Create(ctx context.Context, principal *auth.Principal, postID int, in CommentInput) (*models.Comment, error) {
	if err := CommentPolicy.Check(ActionCreate, principal); err != nil {
		return nil, err
	}
	post, err := s.post(ctx, postID)
	if err != nil {
		return nil, err
	}

	text, err := commentText(in, false)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		Text:     text,
		AuthorID: principal.ID,
		PostID:   post.ID,
	}
	if err := s.comments.Create(ctx, &comment); err != nil {
		return nil, fmt.Errorf("create comment on post %d: %w", postID, notFound(err))
	}

	s.log.WithFields(logrus.Fields{"post_id": postID, "comment_id": comment.ID, "author": principal.Username}).Info("comment created")
	return &comment, nil
}

// Update rejects non-authors with ErrPermissionDenied, the same rule posts use.
func (s *CommentService) Update(ctx context.Context, principal *auth.Principal, postID, id int, in CommentInput, partial bool) (*models.Comment, error) {
	if err := CommentPolicy.Check(ActionUpdate, principal); err != nil {
		return nil, err
	}
	comment, err := s.owned(ctx, principal, postID, id)
	if err != nil {
		return nil, err
	}

	if in.Text != nil || !partial {
		text, err := commentText(in, partial)
		if err != nil {
			return nil, err
		}
		comment.Text = text
	}

	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment %d: %w", id, notFound(err))
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, principal *auth.Principal, postID, id int) error {
	if err := CommentPolicy.Check(ActionDelete, principal); err != nil {
		return err
	}
	if _, err := s.owned(ctx, principal, postID, id); err != nil {
		return err
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete comment %d: %w", id, notFound(err))
	}
	return nil
}

// Authorize runs the permission checks of action before any input is read.
// The path post is resolved for every action; update and delete also need
// the comment and its author.
func (s *CommentService) Authorize(ctx context.Context, principal *auth.Principal, action Action, postID, id int) error {
	if err := CommentPolicy.Check(action, principal); err != nil {
		return err
	}
	if action&(ActionUpdate|ActionDelete) != 0 {
		_, err := s.owned(ctx, principal, postID, id)
		return err
	}
	_, err := s.post(ctx, postID)
	return err
}

func (s *CommentService) owned(ctx context.Context, principal *auth.Principal, postID, id int) (*models.Comment, error) {
	if _, err := s.post(ctx, postID); err != nil {
		return nil, err
	}
	comment, err := s.comments.FindByID(ctx, postID, id)
	if err != nil {
		return nil, notFound(err)
	}
	if !isAuthor(comment.AuthorID, principal) {
		return nil, ErrPermissionDenied
	}
	return comment, nil
}

func commentText(in CommentInput, partial bool) (string, error) {
	if in.Text == nil {
		if partial {
			return "", nil
		}
		return "", invalid("text", "This field is required.")
	}
	if strings.TrimSpace(*in.Text) == "" {
		return "", invalid("text", "This field may not be blank.")
	}
	return *in.Text, nil
}
