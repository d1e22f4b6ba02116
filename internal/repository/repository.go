// Package repository holds the query functions the services run against storage.
package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/emilythestrangee/yatube/backend/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// Page selects a window of an ordered collection. Limit 0 means everything after Offset.
type Page struct {
	Limit  int
	Offset int
}

type UserRepository interface {
	FindByID(ctx context.Context, id int) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type GroupRepository interface {
	List(ctx context.Context, page Page) ([]models.Group, int64, error)
	FindByID(ctx context.Context, id int) (*models.Group, error)
	Create(ctx context.Context, group *models.Group) error
}

type PostRepository interface {
	List(ctx context.Context, page Page) ([]models.Post, int64, error)
	FindByID(ctx context.Context, id int) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id int) error
}

type CommentRepository interface {
	FindByPost(ctx context.Context, postID int, page Page) ([]models.Comment, int64, error)
	FindByID(ctx context.Context, postID, id int) (*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id int) error
}

type FollowRepository interface {
	// FindByUser lists the edges whose follower is userID. A non-empty search
	// keeps only edges whose followed username contains it, case-insensitively.
	FindByUser(ctx context.Context, userID int, search string, page Page) ([]models.Follow, int64, error)
	FindByID(ctx context.Context, userID, id int) (*models.Follow, error)
	Exists(ctx context.Context, userID, followingID int) (bool, error)
	Create(ctx context.Context, follow *models.Follow) error
	Delete(ctx context.Context, id int) error
}

type Repositories struct {
	Users    UserRepository
	Groups   GroupRepository
	Posts    PostRepository
	Comments CommentRepository
	Follows  FollowRepository
}

func New(db *gorm.DB) Repositories {
	return Repositories{
		Users:    &userRepository{db: db},
		Groups:   &groupRepository{db: db},
		Posts:    &postRepository{db: db},
		Comments: &commentRepository{db: db},
		Follows:  &followRepository{db: db},
	}
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrDuplicate
	}
	return err
}

func paginate(page Page) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page.Offset > 0 {
			db = db.Offset(page.Offset)
		}
		if page.Limit > 0 {
			db = db.Limit(page.Limit)
		}
		return db
	}
}
