package repo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/sharded_shop/internal/transport"
)

func TestCategoryCreateThenGet(t *testing.T) {
	r, _ := newTestSession(t)
	ctx := context.Background()

	created, err := r.CreateCategory(ctx, transport.CreateCategoryRequest{Name: "books"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := r.GetCategory(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)
}

func TestCategoryGetMissingIsAbsent(t *testing.T) {
	r, _ := newTestSession(t)

	got, err := r.GetCategory(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCategoryDuplicateName(t *testing.T) {
	r, _ := newTestSession(t)
	ctx := context.Background()

	_, err := r.CreateCategory(ctx, transport.CreateCategoryRequest{Name: "books"})
	require.NoError(t, err)

	_, err = r.CreateCategory(ctx, transport.CreateCategoryRequest{Name: "books"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func TestCategoryListPages(t *testing.T) {
	r, _ := newTestSession(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := r.CreateCategory(ctx, transport.CreateCategoryRequest{Name: fmt.Sprintf("cat-%d", i)})
		require.NoError(t, err)
	}

	firstPage, err := r.ListCategories(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, firstPage, 2)

	rest, err := r.ListCategories(ctx, 2, 10)
	require.NoError(t, err)
	require.Len(t, rest, 3)

	seen := map[uint]bool{}
	for _, c := range firstPage {
		seen[c.ID] = true
	}
	for _, c := range rest {
		assert.False(t, seen[c.ID], "category %d returned twice", c.ID)
	}

	all, err := r.ListCategories(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}
