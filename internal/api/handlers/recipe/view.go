package recipe

import (
	"recipe-finder/internal/core/catalog"
	"recipe-finder/internal/core/search"
	"recipe-finder/internal/pkg/common"
)

// ToView 將食譜轉為對外格式
func ToView(r catalog.Recipe, similarity *float64) common.RecipeView {
	return common.RecipeView{
		Cuisine:         r.Cuisine,
		Name:            r.Name,
		Ingredients:     append([]string(nil), r.Ingredients...),
		IngredientsText: r.IngredientText,
		Instructions:    r.Instructions,
		Image:           r.Image,
		Difficulty:      string(r.Difficulty),
		Rating:          r.Rating,
		Similarity:      similarity,
	}
}

// MatchViews 轉換搜尋結果
func MatchViews(matches []search.Match) []common.RecipeView {
	views := make([]common.RecipeView, len(matches))
	for i, m := range matches {
		views[i] = ToView(m.Recipe, m.Similarity)
	}
	return views
}

// RecipeViews 轉換食譜清單
func RecipeViews(recipes []catalog.Recipe) []common.RecipeView {
	views := make([]common.RecipeView, len(recipes))
	for i, r := range recipes {
		views[i] = ToView(r, nil)
	}
	return views
}

// NewSearchResponse 建立搜尋回應
func NewSearchResponse(result *search.Result) common.SearchResponse {
	return common.SearchResponse{
		Recipes:     MatchViews(result.Matches),
		Count:       len(result.Matches),
		Fallback:    result.Fallback,
		FallbackKey: result.FallbackKey,
	}
}
