package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRestoBrowsing(t *testing.T) {
	f := newFixture(t)
	restos := NewRestoService(f.client, zap.NewNop())
	ctx := context.Background()

	page, err := restos.List(ctx, 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Restaurants, 2)
	assert.Equal(t, 1, page.Pagination.Page)

	hits, err := restos.Search(ctx, "sate", 1, 20)
	require.NoError(t, err)
	require.Len(t, hits.Restaurants, 1)
	assert.Equal(t, "Sate Ratu", hits.Restaurants[0].Name)

	near, err := restos.Nearby(ctx, 3, 20)
	require.NoError(t, err)
	require.Len(t, near, 1)
	assert.Equal(t, "Burger Bang", near[0].Name)

	detail, err := restos.Detail(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Burger Bang", detail.Name)
	require.Len(t, detail.Menus, 2)
	assert.EqualValues(t, 15000, detail.Menus[0].Price)

	_, err = restos.Detail(ctx, 404)
	require.Error(t, err)
}
