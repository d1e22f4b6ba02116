package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/emilythestrangee/yatube/backend/internal/auth"
	"github.com/emilythestrangee/yatube/backend/internal/models"
	"github.com/emilythestrangee/yatube/backend/internal/repository"
)

// UserService is the account side of the auth collaborator: registration and
// credential checks. Token handling lives in package auth.
type UserService struct {
	log   logrus.FieldLogger
	users repository.UserRepository
	cost  int
}

func newUserService(log logrus.FieldLogger, repos repository.Repositories) *UserService {
	return &UserService{
		log:   log.WithField("component", "users"),
		users: repos.Users,
		cost:  bcrypt.DefaultCost,
	}
}

func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, invalid("username", "This field may not be blank.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username: username,
		Email:    strings.TrimSpace(req.Email),
		Password: string(hashed),
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, invalid("username", "A user with that username already exists.")
		}
		return nil, fmt.Errorf("create user %q: %w", username, err)
	}

	s.log.WithField("username", user.Username).Info("user registered")
	return &user, nil
}

// Authenticate checks a username/password pair.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*auth.Principal, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user %q: %w", username, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &auth.Principal{ID: user.ID, Username: user.Username}, nil
}

// Principal reloads the account behind a token so deleted users lose access.
func (s *UserService) Principal(ctx context.Context, id int) (*auth.Principal, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return &auth.Principal{ID: user.ID, Username: user.Username}, nil
}
