package common

import "time"

// RecipeView 食譜對外呈現格式
type RecipeView struct {
	Cuisine         string   `json:"cuisine"`
	Name            string   `json:"name"`
	Ingredients     []string `json:"ingredients"`
	IngredientsText string   `json:"ingredients_text"`
	Instructions    string   `json:"instructions"`
	Image           string   `json:"image"`
	Difficulty      string   `json:"difficulty"`
	Rating          float64  `json:"rating"`
	Similarity      *float64 `json:"similarity,omitempty"` // 僅在以食材排序時出現
}

// SearchResponse 搜尋結果
type SearchResponse struct {
	Recipes     []RecipeView `json:"recipes"`
	Count       int          `json:"count"`
	Fallback    bool         `json:"fallback"`
	FallbackKey string       `json:"fallback_key,omitempty"`
}

// CuisinesResponse 料理類別選項
type CuisinesResponse struct {
	Cuisines []string `json:"cuisines"`
}

// SessionResponse 建立會話的回應
type SessionResponse struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}

// FavoriteRequest 加入收藏的請求
type FavoriteRequest struct {
	Name string `json:"name" binding:"required"`
}

// FavoriteResponse 加入收藏的回應
type FavoriteResponse struct {
	Added   bool   `json:"added"`
	Message string `json:"message,omitempty"`
}

// FavoritesResponse 收藏清單
type FavoritesResponse struct {
	SessionID string       `json:"session_id"`
	Recipes   []RecipeView `json:"recipes"`
}
