package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/yatube/backend/internal/models"
	"github.com/emilythestrangee/yatube/backend/internal/repository"
	"github.com/emilythestrangee/yatube/backend/internal/repository/memory"
)

func TestCreateGroup(t *testing.T) {
	ctx := context.Background()
	groups := memory.New().Repositories().Groups

	require.NoError(t, createGroup(ctx, groups, models.Group{Title: "Cats", Slug: "cats"}))

	err := createGroup(ctx, groups, models.Group{Title: "More cats", Slug: "cats"})
	assert.EqualError(t, err, `slug "cats" is already taken`)

	err = createGroup(ctx, groups, models.Group{Title: "No slug"})
	assert.Error(t, err)

	items, count, err := groups.List(ctx, repository.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	assert.Equal(t, "Cats", items[0].Title)

	assert.NoError(t, listGroups(ctx, groups))
}
