package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"

	"recipe-finder/internal/pkg/common"

	"github.com/google/uuid"
)

//go:embed recipes.json
var defaultData []byte

// ErrMalformedRecipe 食譜定義缺少必要欄位或名稱重複
var ErrMalformedRecipe = errors.New("malformed recipe definition")

// Difficulty 難度
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

var difficulties = [...]Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Difficulties 依抽樣順序回傳所有難度
func Difficulties() []Difficulty {
	return append([]Difficulty(nil), difficulties[:]...)
}

// 評分範圍
const (
	MinRating = 3.5
	MaxRating = 5.0
)

// IngredientSeparator 食材顯示字串的分隔符
const IngredientSeparator = ", "

// Definition 原始食譜定義
type Definition struct {
	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	Image        string   `json:"image"`
}

// CuisineGroup 同一料理類別下的食譜定義
type CuisineGroup struct {
	Cuisine string       `json:"cuisine"`
	Recipes []Definition `json:"recipes"`
}

// Recipe 食譜記錄，建立後不再變動
type Recipe struct {
	Cuisine        string
	Name           string
	Ingredients    []string
	IngredientText string
	Instructions   string
	Image          string
	Difficulty     Difficulty
	Rating         float64
}

// Catalog 有序且不可變的食譜目錄
type Catalog struct {
	id      string
	recipes []Recipe
	byName  map[string]int
}

// LoadRaw 解析內嵌格式的 JSON 食譜資料
func LoadRaw(data []byte) ([]CuisineGroup, error) {
	var groups []CuisineGroup
	if err := common.ParseJSONBytesStrict(data, &groups); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecipe, err)
	}
	return groups, nil
}

// Default 以內嵌資料建立目錄
func Default(rng *rand.Rand) (*Catalog, error) {
	groups, err := LoadRaw(defaultData)
	if err != nil {
		return nil, err
	}
	return Build(groups, rng)
}

// Build 建立目錄，難度與評分在此時隨機決定
func Build(groups []CuisineGroup, rng *rand.Rand) (*Catalog, error) {
	if rng == nil {
		return nil, errors.New("catalog: nil random source")
	}

	c := &Catalog{
		id:     uuid.New().String(),
		byName: make(map[string]int),
	}

	for _, g := range groups {
		if strings.TrimSpace(g.Cuisine) == "" {
			return nil, fmt.Errorf("%w: empty cuisine", ErrMalformedRecipe)
		}
		for _, def := range g.Recipes {
			if err := validate(g.Cuisine, def); err != nil {
				return nil, err
			}
			if _, exists := c.byName[def.Name]; exists {
				return nil, fmt.Errorf("%w: duplicate name %q", ErrMalformedRecipe, def.Name)
			}

			ingredients := append([]string(nil), def.Ingredients...)
			c.byName[def.Name] = len(c.recipes)
			c.recipes = append(c.recipes, Recipe{
				Cuisine:        g.Cuisine,
				Name:           def.Name,
				Ingredients:    ingredients,
				IngredientText: strings.Join(ingredients, IngredientSeparator),
				Instructions:   def.Instructions,
				Image:          def.Image,
				Difficulty:     difficulties[rng.Intn(len(difficulties))],
				Rating:         drawRating(rng),
			})
		}
	}

	return c, nil
}

func validate(cuisine string, def Definition) error {
	if strings.TrimSpace(def.Name) == "" {
		return fmt.Errorf("%w: empty name in cuisine %q", ErrMalformedRecipe, cuisine)
	}
	if len(def.Ingredients) == 0 {
		return fmt.Errorf("%w: %q has no ingredients", ErrMalformedRecipe, def.Name)
	}
	return nil
}

// clone 複製食材切片，呼叫端的修改不影響目錄
func (r Recipe) clone() Recipe {
	r.Ingredients = append([]string(nil), r.Ingredients...)
	return r
}

// drawRating 在 [3.5, 5.0] 均勻取值並四捨五入到一位小數
func drawRating(rng *rand.Rand) float64 {
	r := MinRating + rng.Float64()*(MaxRating-MinRating)
	return math.Round(r*10) / 10
}

// ID 本次建立的識別碼
func (c *Catalog) ID() string {
	return c.id
}

// Len 食譜數量
func (c *Catalog) Len() int {
	return len(c.recipes)
}

// All 依目錄順序回傳所有食譜的副本
func (c *Catalog) All() []Recipe {
	out := make([]Recipe, len(c.recipes))
	for i, r := range c.recipes {
		out[i] = r.clone()
	}
	return out
}

// Lookup 依名稱查詢食譜
func (c *Catalog) Lookup(name string) (Recipe, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Recipe{}, false
	}
	return c.recipes[i].clone(), true
}

// Index 回傳食譜在目錄中的位置，不存在時為 -1
func (c *Catalog) Index(name string) int {
	if i, ok := c.byName[name]; ok {
		return i
	}
	return -1
}

// Cuisines 回傳排序後的料理類別
func (c *Catalog) Cuisines() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range c.recipes {
		if !seen[r.Cuisine] {
			seen[r.Cuisine] = true
			out = append(out, r.Cuisine)
		}
	}
	sort.Strings(out)
	return out
}

// IngredientTexts 依目錄順序回傳食材字串，用於建立相似度模型
func (c *Catalog) IngredientTexts() []string {
	out := make([]string, len(c.recipes))
	for i, r := range c.recipes {
		out[i] = r.IngredientText
	}
	return out
}
