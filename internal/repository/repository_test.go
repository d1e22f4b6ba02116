package repository_test

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/emilythestrangee/yatube/backend/internal/database"
	"github.com/emilythestrangee/yatube/backend/internal/models"
	"github.com/emilythestrangee/yatube/backend/internal/repository"
)

// newRepositories starts a throwaway PostgreSQL and migrates the schema into it.
func newRepositories(t *testing.T) repository.Repositories {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping PostgreSQL integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("yatube"),
		postgres.WithUsername("yatube"),
		postgres.WithPassword("yatube"),
		postgres.BasicWaitStrategies(),
	)
	t.Cleanup(func() {
		if ctr != nil {
			_ = ctr.Terminate(context.Background())
		}
	})
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)

	db, err := database.Open(dsn, log)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return repository.New(db)
}

func createUser(t *testing.T, repos repository.Repositories, username string) models.User {
	t.Helper()
	u := models.User{Username: username, Password: "hash"}
	require.NoError(t, repos.Users.Create(context.Background(), &u))
	return u
}

func TestPostgresRepositories(t *testing.T) {
	repos := newRepositories(t)
	ctx := context.Background()

	alice := createUser(t, repos, "alice")
	bob := createUser(t, repos, "bob")
	bobby := createUser(t, repos, "Bobby_B")

	t.Run("duplicate username", func(t *testing.T) {
		err := repos.Users.Create(ctx, &models.User{Username: "alice", Password: "hash"})
		assert.ErrorIs(t, err, repository.ErrDuplicate)
	})

	t.Run("follow unique index", func(t *testing.T) {
		first := models.Follow{UserID: alice.ID, FollowingID: bob.ID}
		require.NoError(t, repos.Follows.Create(ctx, &first))
		assert.Equal(t, "alice", first.User.Username)
		assert.Equal(t, "bob", first.Following.Username)

		exists, err := repos.Follows.Exists(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		err = repos.Follows.Create(ctx, &models.Follow{UserID: alice.ID, FollowingID: bob.ID})
		assert.ErrorIs(t, err, repository.ErrDuplicate)
	})

	t.Run("self follow check constraint", func(t *testing.T) {
		err := repos.Follows.Create(ctx, &models.Follow{UserID: bob.ID, FollowingID: bob.ID})
		require.Error(t, err)
		assert.NotErrorIs(t, err, repository.ErrDuplicate)
	})

	t.Run("follow scoping and search", func(t *testing.T) {
		require.NoError(t, repos.Follows.Create(ctx, &models.Follow{UserID: alice.ID, FollowingID: bobby.ID}))

		follows, count, err := repos.Follows.FindByUser(ctx, alice.ID, "", repository.Page{})
		require.NoError(t, err)
		assert.EqualValues(t, 2, count)
		assert.Len(t, follows, 2)

		follows, count, err = repos.Follows.FindByUser(ctx, alice.ID, "BY_", repository.Page{})
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
		require.Len(t, follows, 1)
		assert.Equal(t, "Bobby_B", follows[0].Following.Username)

		// "_" is literal, not a single-character wildcard.
		_, count, err = repos.Follows.FindByUser(ctx, alice.ID, "b_b", repository.Page{})
		require.NoError(t, err)
		assert.Zero(t, count)

		follows, _, err = repos.Follows.FindByUser(ctx, bob.ID, "", repository.Page{})
		require.NoError(t, err)
		assert.Empty(t, follows)

		_, err = repos.Follows.FindByID(ctx, bob.ID, firstFollow(t, repos, alice.ID).ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("posts and comments", func(t *testing.T) {
		group := models.Group{Title: "Cats", Slug: "cats"}
		require.NoError(t, repos.Groups.Create(ctx, &group))
		err := repos.Groups.Create(ctx, &models.Group{Title: "Other cats", Slug: "cats"})
		assert.ErrorIs(t, err, repository.ErrDuplicate)

		post := models.Post{Text: "hello", AuthorID: alice.ID, GroupID: &group.ID}
		require.NoError(t, repos.Posts.Create(ctx, &post))
		assert.Equal(t, "alice", post.Author.Username)
		assert.False(t, post.PubDate.IsZero())

		other := models.Post{Text: "second", AuthorID: bob.ID}
		require.NoError(t, repos.Posts.Create(ctx, &other))

		posts, count, err := repos.Posts.List(ctx, repository.Page{Limit: 1})
		require.NoError(t, err)
		assert.EqualValues(t, 2, count)
		require.Len(t, posts, 1)
		assert.Equal(t, other.ID, posts[0].ID)

		post.Text = "edited"
		post.GroupID = nil
		require.NoError(t, repos.Posts.Update(ctx, &post))
		got, err := repos.Posts.FindByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "edited", got.Text)
		assert.Nil(t, got.GroupID)

		comment := models.Comment{Text: "nice", AuthorID: bob.ID, PostID: post.ID}
		require.NoError(t, repos.Comments.Create(ctx, &comment))
		assert.Equal(t, "bob", comment.Author.Username)

		_, err = repos.Comments.FindByID(ctx, other.ID, comment.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)

		comments, count, err := repos.Comments.FindByPost(ctx, post.ID, repository.Page{})
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
		require.Len(t, comments, 1)

		// Comments go with their post.
		require.NoError(t, repos.Posts.Delete(ctx, post.ID))
		_, err = repos.Comments.FindByID(ctx, post.ID, comment.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		_, err = repos.Posts.FindByID(ctx, post.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func firstFollow(t *testing.T, repos repository.Repositories, userID int) models.Follow {
	t.Helper()
	follows, _, err := repos.Follows.FindByUser(context.Background(), userID, "", repository.Page{Limit: 1})
	require.NoError(t, err)
	require.NotEmpty(t, follows)
	return follows[0]
}
