package search

import (
	"context"
	"strings"
	"time"

	"recipe-finder/internal/core/catalog"
	"recipe-finder/internal/core/similarity"
	"recipe-finder/internal/pkg/common"
	"recipe-finder/internal/pkg/metrics"

	"go.uber.org/zap"
)

// AllCuisines 不過濾料理類別的選項
const AllCuisines = "All"

// 預設筆數上限
const (
	DefaultMaxResults      = 10
	DefaultFallbackResults = 5
)

// 搜尋模式
const (
	ModePlain    = "plain"
	ModeRanked   = "ranked"
	ModeFallback = "fallback"
)

// Query 搜尋條件，空白欄位視為不過濾
type Query struct {
	Cuisine     string `json:"cuisine"`
	Name        string `json:"name"`
	Ingredients string `json:"ingredients"`
}

// Match 一筆搜尋結果，Similarity 只在食材排序時設定
type Match struct {
	Recipe     catalog.Recipe `json:"recipe"`
	Similarity *float64       `json:"similarity,omitempty"`
}

// Result 搜尋結果
type Result struct {
	Matches     []Match `json:"matches"`
	Mode        string  `json:"mode"`
	Fallback    bool    `json:"fallback"`
	FallbackKey string  `json:"fallback_key,omitempty"`
}

// Limits 結果筆數上限
type Limits struct {
	MaxResults      int
	FallbackResults int
}

// Service 搜尋服務
type Service struct {
	catalog *catalog.Catalog
	model   *similarity.Model
	cache   Cache
	limits  Limits
}

// NewService 創建搜尋服務，cache 可為 nil
func NewService(c *catalog.Catalog, model *similarity.Model, cache Cache, limits Limits) *Service {
	if limits.MaxResults <= 0 {
		limits.MaxResults = DefaultMaxResults
	}
	if limits.FallbackResults <= 0 {
		limits.FallbackResults = DefaultFallbackResults
	}
	return &Service{
		catalog: c,
		model:   model,
		cache:   cache,
		limits:  limits,
	}
}

// Catalog 回傳搜尋使用的目錄
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Cuisines 回傳下拉選單選項："All" 加上所有料理類別
func (s *Service) Cuisines() []string {
	return append([]string{AllCuisines}, s.catalog.Cuisines()...)
}

// Search 執行搜尋，有快取時先查快取
func (s *Service) Search(ctx context.Context, q Query) (*Result, error) {
	start := time.Now()

	var key string
	if s.cache != nil {
		key = CacheKey(s.catalog.ID(), q)
		cached, err := s.cache.Get(ctx, key)
		switch {
		case err == nil && cached != nil:
			metrics.RecordCache("hit")
			common.LogCacheHit("search")
			return cached, nil
		case err != nil && err != ErrCacheMiss:
			metrics.RecordCache("error")
			common.LogWarn("Search cache lookup failed", zap.Error(err))
		default:
			metrics.RecordCache("miss")
			common.LogCacheMiss("search")
		}
	}

	result := s.run(q)
	metrics.RecordSearch(result.Mode, len(result.Matches))
	common.LogSearch(result.Mode, q.Cuisine, len(result.Matches), time.Since(start))

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result); err != nil {
			common.LogWarn("Search cache store failed", zap.Error(err))
		}
	}

	return result, nil
}

// run 依序執行：料理過濾、食材排序、名稱過濾、後備搜尋
func (s *Service) run(q Query) *Result {
	all := s.catalog.All()

	// 料理類別
	filtered := all
	if q.Cuisine != "" && q.Cuisine != AllCuisines {
		filtered = make([]catalog.Recipe, 0, len(all))
		for _, r := range all {
			if r.Cuisine == q.Cuisine {
				filtered = append(filtered, r)
			}
		}
	}

	// 食材相似度
	mode := ModePlain
	var matches []Match
	if strings.TrimSpace(q.Ingredients) != "" {
		mode = ModeRanked
		scored := similarity.Top(s.model.Score(q.Ingredients, filtered), s.limits.MaxResults)
		matches = make([]Match, len(scored))
		for i, sc := range scored {
			sim := sc.Similarity
			matches[i] = Match{Recipe: sc.Recipe, Similarity: &sim}
		}
	} else {
		matches = make([]Match, len(filtered))
		for i, r := range filtered {
			matches[i] = Match{Recipe: r}
		}
	}

	// 名稱
	if strings.TrimSpace(q.Name) != "" {
		needle := strings.ToLower(q.Name)
		kept := matches[:0]
		for _, m := range matches {
			if strings.Contains(strings.ToLower(m.Recipe.Name), needle) {
				kept = append(kept, m)
			}
		}
		matches = kept
	}

	if len(matches) > 0 {
		return &Result{Matches: matches, Mode: mode}
	}

	// 後備：以單一關鍵字在整個目錄的食材字串中搜尋
	key := fallbackKey(q)
	return &Result{
		Matches:     s.broadSearch(all, key),
		Mode:        ModeFallback,
		Fallback:    true,
		FallbackKey: key,
	}
}

// fallbackKey 有輸入食材時取第一個逗號前的詞，否則使用名稱
func fallbackKey(q Query) string {
	if q.Ingredients != "" {
		first, _, _ := strings.Cut(q.Ingredients, ",")
		return strings.TrimSpace(first)
	}
	return strings.TrimSpace(q.Name)
}

// broadSearch 不分大小寫的子字串比對，空關鍵字不回傳任何結果
func (s *Service) broadSearch(all []catalog.Recipe, key string) []Match {
	matches := []Match{}
	if key == "" {
		return matches
	}

	needle := strings.ToLower(key)
	for _, r := range all {
		if r.IngredientText == "" {
			continue
		}
		if strings.Contains(strings.ToLower(r.IngredientText), needle) {
			matches = append(matches, Match{Recipe: r})
			if len(matches) == s.limits.FallbackResults {
				break
			}
		}
	}
	return matches
}
