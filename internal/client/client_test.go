package client

import (
	"context"
	"errors"
	"math/rand"
	"net/http/httptest"
	"testing"
	"time"

	"recipe-finder/internal/api"
	"recipe-finder/internal/core/catalog"
	"recipe-finder/internal/core/favorites"
	"recipe-finder/internal/core/search"
	"recipe-finder/internal/core/similarity"
	"recipe-finder/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server:  config.ServerConfig{MaxBodyBytes: 1 << 10},
		Session: config.SessionConfig{TTL: time.Hour, CookieName: "recipe_session"},
	}
	c, err := catalog.Default(rand.New(rand.NewSource(5)))
	require.NoError(t, err)
	sessions := favorites.NewManager(cfg.Session)
	t.Cleanup(func() { sessions.Close() })

	router, err := api.SetupRouter(cfg, api.Services{
		Search:    search.NewService(c, similarity.FitCatalog(c), nil, search.Limits{}),
		Favorites: favorites.NewService(c, sessions),
	})
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", 5*time.Second)
}

func TestClientCuisines(t *testing.T) {
	c := newTestClient(t)

	cuisines, err := c.Cuisines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "All", cuisines[0])
	assert.Len(t, cuisines, 8)
}

func TestClientSearch(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	resp, err := c.Search(ctx, search.Query{Cuisine: "All", Ingredients: "cheese, tomato"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Recipes)
	assert.Equal(t, "Margherita Pizza", resp.Recipes[0].Name)
	require.NotNil(t, resp.Recipes[0].Similarity)

	resp, err = c.Search(ctx, search.Query{Name: "zzznotfound"})
	require.NoError(t, err)
	assert.True(t, resp.Fallback)
	assert.Equal(t, "zzznotfound", resp.FallbackKey)
	assert.Empty(t, resp.Recipes)
}

func TestClientFavorites(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	id, err := c.CreateSession(ctx)
	require.NoError(t, err)

	added, err := c.AddFavorite(ctx, id, "Sushi")
	require.NoError(t, err)
	assert.True(t, added.Added)
	assert.Equal(t, "Added 'Sushi' to favorites!", added.Message)

	added, err = c.AddFavorite(ctx, id, "Sushi")
	require.NoError(t, err)
	assert.False(t, added.Added)

	list, err := c.Favorites(ctx, id)
	require.NoError(t, err)
	require.Len(t, list.Recipes, 1)
	assert.Equal(t, "Sushi", list.Recipes[0].Name)
}

func TestClientAPIError(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Favorites(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, "SESSION_NOT_FOUND", apiErr.Code)
	assert.Contains(t, apiErr.Error(), "SESSION_NOT_FOUND")
}

func TestClientConnectionError(t *testing.T) {
	c := New("http://127.0.0.1:1", time.Second)

	_, err := c.Cuisines(context.Background())
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}
