package favorites

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"recipe-finder/internal/core/catalog"
	"recipe-finder/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default(rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	return c
}

func newTestManager(ttl time.Duration) *Manager {
	return NewManager(config.SessionConfig{TTL: ttl})
}

func recipeNames(recipes []catalog.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.Name
	}
	return out
}

func TestSessionAddIsIdempotent(t *testing.T) {
	c := testCatalog(t)
	s := newSession(time.Now())

	assert.True(t, s.Add("Sushi"))
	assert.False(t, s.Add("Sushi"))

	list := s.List(c)
	require.Len(t, list, 1)
	assert.Equal(t, "Sushi", list[0].Name)
	assert.Equal(t, "Japanese", list[0].Cuisine)
}

func TestSessionListUsesCatalogOrder(t *testing.T) {
	c := testCatalog(t)
	s := newSession(time.Now())

	s.Add("Caesar Salad")
	s.Add("Sushi")
	s.Add("Veg Fried Rice")

	assert.Equal(t, []string{"Veg Fried Rice", "Sushi", "Caesar Salad"}, recipeNames(s.List(c)))
	assert.Equal(t, []string{"Caesar Salad", "Sushi", "Veg Fried Rice"}, s.Names())
}

func TestSessionEmptyList(t *testing.T) {
	s := newSession(time.Now())

	list := s.List(testCatalog(t))
	assert.NotNil(t, list)
	assert.Empty(t, list)
	assert.Equal(t, 0, s.Len())
}

func TestSessionConcurrentAdd(t *testing.T) {
	s := newSession(time.Now())

	var wg sync.WaitGroup
	var mu sync.Mutex
	added := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Add("Ramen") {
				mu.Lock()
				added++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, added)
	assert.Equal(t, 1, s.Len())
}

func TestManagerCreateGet(t *testing.T) {
	m := newTestManager(time.Hour)
	defer m.Close()

	s := m.Create()
	assert.NotEmpty(t, s.ID())
	assert.Equal(t, 1, m.Len())

	got, err := m.Get(s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = m.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManagerSessionsAreIsolated(t *testing.T) {
	m := newTestManager(time.Hour)
	defer m.Close()

	a, b := m.Create(), m.Create()
	a.Add("Tacos")

	assert.NotEqual(t, a.ID(), b.ID())
	assert.True(t, a.Contains("Tacos"))
	assert.False(t, b.Contains("Tacos"))
}

func TestManagerExpiry(t *testing.T) {
	m := newTestManager(time.Minute)
	defer m.Close()

	now := time.Now()
	m.now = func() time.Time { return now }

	idle := m.Create()
	active := m.Create()

	now = now.Add(45 * time.Second)
	_, err := m.Touch(active.ID())
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	_, err = m.Get(idle.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = m.Get(active.ID())
	assert.NoError(t, err)

	assert.Equal(t, 1, m.cleanup())
	assert.Equal(t, 1, m.Len())
}

func TestManagerZeroTTLNeverExpires(t *testing.T) {
	m := newTestManager(0)
	defer m.Close()

	now := time.Now()
	m.now = func() time.Time { return now }
	s := m.Create()

	now = now.Add(24 * 365 * time.Hour)
	_, err := m.Get(s.ID())
	assert.NoError(t, err)
	assert.Equal(t, 0, m.cleanup())
}

func TestManagerJanitor(t *testing.T) {
	m := NewManager(config.SessionConfig{TTL: time.Millisecond, CleanupInterval: 5 * time.Millisecond})
	defer m.Close()

	m.Create()
	assert.Eventually(t, func() bool { return m.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestManagerCloseTwice(t *testing.T) {
	m := NewManager(config.SessionConfig{TTL: time.Minute, CleanupInterval: time.Millisecond})
	assert.NoError(t, m.Close())
	assert.NoError(t, m.Close())
}

func TestServiceAdd(t *testing.T) {
	m := newTestManager(time.Hour)
	defer m.Close()
	svc := NewService(testCatalog(t), m)
	s := m.Create()

	added, msg, err := svc.Add(s.ID(), "Sushi")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, "Added 'Sushi' to favorites!", msg)

	added, msg, err = svc.Add(s.ID(), "Sushi")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Empty(t, msg)

	list, err := svc.List(s.ID())
	require.NoError(t, err)
	assert.Equal(t, []string{"Sushi"}, recipeNames(list))
}

func TestServiceAddErrors(t *testing.T) {
	m := newTestManager(time.Hour)
	defer m.Close()
	svc := NewService(testCatalog(t), m)
	s := m.Create()

	_, _, err := svc.Add(s.ID(), "sushi")
	assert.ErrorIs(t, err, ErrUnknownRecipe)
	assert.Equal(t, 0, s.Len())

	_, _, err = svc.Add("missing", "Sushi")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = svc.List("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
