package catalog

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T, seed int64) *Catalog {
	t.Helper()
	c, err := Default(rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return c
}

func TestDefaultCatalog(t *testing.T) {
	c := newTestCatalog(t, 1)

	assert.Equal(t, 14, c.Len())
	assert.NotEmpty(t, c.ID())

	all := c.All()
	assert.Equal(t, "Veg Fried Rice", all[0].Name)
	assert.Equal(t, "Chinese", all[0].Cuisine)
	assert.Equal(t, "rice, soy sauce, vegetables, garlic", all[0].IngredientText)
	assert.Equal(t, "Caesar Salad", all[len(all)-1].Name)

	assert.Equal(t, []string{
		"Chinese", "Continental", "Italian", "Japanese", "Mexican", "North Indian", "South Indian",
	}, c.Cuisines())
}

func TestRatingAndDifficultyRanges(t *testing.T) {
	c := newTestCatalog(t, 7)

	for _, r := range c.All() {
		assert.GreaterOrEqual(t, r.Rating, MinRating, r.Name)
		assert.LessOrEqual(t, r.Rating, MaxRating, r.Name)
		assert.InDelta(t, r.Rating, math.Round(r.Rating*10)/10, 1e-9, "rating must have one decimal: %s", r.Name)
		assert.Contains(t, Difficulties(), r.Difficulty, r.Name)
	}
}

func TestSameSeedSameCatalog(t *testing.T) {
	a := newTestCatalog(t, 42).All()
	b := newTestCatalog(t, 42).All()

	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, a[i].Difficulty, b[i].Difficulty)
		assert.Equal(t, a[i].Rating, b[i].Rating)
	}
}

func TestLookup(t *testing.T) {
	c := newTestCatalog(t, 1)

	r, ok := c.Lookup("Sushi")
	require.True(t, ok)
	assert.Equal(t, "Japanese", r.Cuisine)
	assert.Equal(t, []string{"rice", "nori", "fish", "soy sauce"}, r.Ingredients)
	assert.Equal(t, 10, c.Index("Sushi"))

	_, ok = c.Lookup("sushi")
	assert.False(t, ok, "lookup is case-sensitive")
	assert.Equal(t, -1, c.Index("Pho"))
}

func TestBuildMalformed(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	ok := Definition{Name: "Tacos", Ingredients: []string{"tortilla"}}

	tests := []struct {
		name   string
		groups []CuisineGroup
	}{
		{"empty cuisine", []CuisineGroup{{Cuisine: " ", Recipes: []Definition{ok}}}},
		{"empty name", []CuisineGroup{{Cuisine: "Mexican", Recipes: []Definition{{Ingredients: []string{"x"}}}}}},
		{"no ingredients", []CuisineGroup{{Cuisine: "Mexican", Recipes: []Definition{{Name: "Air"}}}}},
		{"duplicate across cuisines", []CuisineGroup{
			{Cuisine: "Mexican", Recipes: []Definition{ok}},
			{Cuisine: "Fusion", Recipes: []Definition{ok}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.groups, rng)
			assert.ErrorIs(t, err, ErrMalformedRecipe)
		})
	}
}

func TestBuildNilRandomSource(t *testing.T) {
	_, err := Build(nil, nil)
	assert.Error(t, err)
}

func TestLoadRawRejectsUnknownFields(t *testing.T) {
	_, err := LoadRaw([]byte(`[{"cuisine":"Thai","recipes":[],"region":"SEA"}]`))
	assert.ErrorIs(t, err, ErrMalformedRecipe)

	groups, err := LoadRaw([]byte(`[{"cuisine":"Thai","recipes":[{"name":"Pad Thai","ingredients":["noodles"]}]}]`))
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Pad Thai", groups[0].Recipes[0].Name)
}

func TestAllReturnsCopy(t *testing.T) {
	c := newTestCatalog(t, 1)
	all := c.All()
	all[0].Name = "changed"
	all[0].Ingredients[0] = "changed"

	first := c.All()[0]
	assert.Equal(t, "Veg Fried Rice", first.Name)
	assert.Equal(t, []string{"rice", "soy sauce", "vegetables", "garlic"}, first.Ingredients)
	assert.Equal(t, "rice, soy sauce, vegetables, garlic", first.IngredientText)
}

func TestLookupReturnsCopy(t *testing.T) {
	c := newTestCatalog(t, 1)
	r, ok := c.Lookup("Sushi")
	require.True(t, ok)
	r.Ingredients[0] = "changed"

	again, _ := c.Lookup("Sushi")
	assert.Equal(t, []string{"rice", "nori", "fish", "soy sauce"}, again.Ingredients)
}

func TestDifficultiesReturnsCopy(t *testing.T) {
	d := Difficulties()
	d[0] = "Impossible"

	assert.Equal(t, []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}, Difficulties())
}
