package service_test

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/yatube/backend/internal/auth"
	"github.com/emilythestrangee/yatube/backend/internal/models"
	"github.com/emilythestrangee/yatube/backend/internal/repository"
	"github.com/emilythestrangee/yatube/backend/internal/repository/memory"
	"github.com/emilythestrangee/yatube/backend/internal/service"
)

type fixture struct {
	svc   *service.Service
	repos repository.Repositories
	alice *auth.Principal
	bob   *auth.Principal
	group models.Group
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newFixture(t *testing.T, opts service.Options) *fixture {
	t.Helper()
	ctx := context.Background()
	repos := memory.New().Repositories()

	f := &fixture{
		svc:   service.New(quietLogger(), repos, opts),
		repos: repos,
	}
	f.alice = f.user(t, "alice")
	f.bob = f.user(t, "bob")

	f.group = models.Group{Title: "Cats", Slug: "cats", Description: "All about cats"}
	require.NoError(t, repos.Groups.Create(ctx, &f.group))
	return f
}

func (f *fixture) user(t *testing.T, username string) *auth.Principal {
	t.Helper()
	u := models.User{Username: username, Password: "x"}
	require.NoError(t, f.repos.Users.Create(context.Background(), &u))
	return &auth.Principal{ID: u.ID, Username: u.Username}
}

func (f *fixture) post(t *testing.T, author *auth.Principal, text string) *models.Post {
	t.Helper()
	post, err := f.svc.Posts.Create(context.Background(), author, service.PostInput{Text: &text})
	require.NoError(t, err)
	return post
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
