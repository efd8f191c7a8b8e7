package main

import (
	"bytes"
	"context"
	"math/rand"
	"net/http/httptest"
	"strings"
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

func startServer(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{Session: config.SessionConfig{TTL: time.Hour, CookieName: "recipe_session"}}
	c, err := catalog.Default(rand.New(rand.NewSource(1)))
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
	return srv.URL
}

func run(t *testing.T, server string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := execute(context.Background(), &out, append([]string{"--server", server}, args...)...)
	return out.String(), err
}

func TestCuisinesCommand(t *testing.T) {
	server := startServer(t)

	out, err := run(t, server, "cuisines")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "All", lines[0])
	assert.Len(t, lines, 8)
}

func TestSearchCommand(t *testing.T) {
	server := startServer(t)

	out, err := run(t, server, "search", "--cuisine", "Italian")
	require.NoError(t, err)
	assert.Contains(t, out, "Margherita Pizza")
	assert.Contains(t, out, "Pasta Alfredo")
	assert.Contains(t, out, "2 recipe(s)")

	out, err = run(t, server, "search", "--name", "zzznotfound")
	require.NoError(t, err)
	assert.Contains(t, out, `Showing similar recipes for "zzznotfound"`)
	assert.Contains(t, out, "0 recipe(s)")
}

func TestFavoriteCommands(t *testing.T) {
	server := startServer(t)

	out, err := run(t, server, "session", "new")
	require.NoError(t, err)
	id := strings.TrimSpace(out)
	require.NotEmpty(t, id)

	out, err = run(t, server, "fav", "add", id, "Veg", "Fried", "Rice")
	require.NoError(t, err)
	assert.Equal(t, "Added 'Veg Fried Rice' to favorites!\n", out)

	out, err = run(t, server, "fav", "add", id, "Veg Fried Rice")
	require.NoError(t, err)
	assert.Contains(t, out, "already a favorite")

	out, err = run(t, server, "fav", "list", id)
	require.NoError(t, err)
	assert.Contains(t, out, "- Veg Fried Rice (Chinese)")
}

func TestFavoriteCommandUnknownSession(t *testing.T) {
	server := startServer(t)

	_, err := run(t, server, "fav", "list", "missing")
	assert.ErrorContains(t, err, "SESSION_NOT_FOUND")
}
