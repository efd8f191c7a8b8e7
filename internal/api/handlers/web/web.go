// Package web 提供瀏覽器頁面：篩選表單、食譜卡片與收藏清單。
package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	recipeHandler "recipe-finder/internal/api/handlers/recipe"
	"recipe-finder/internal/core/favorites"
	"recipe-finder/internal/core/search"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PageTitle 頁面標題
const PageTitle = "Smart Recipe Generator"

const (
	flashCookie   = "recipe_flash"
	warningCookie = "recipe_warning"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates 解析內嵌的頁面樣板
func Templates() (*template.Template, error) {
	return template.New("").
		Funcs(template.FuncMap{"score": formatScore}).
		ParseFS(templateFS, "templates/*.html")
}

func formatScore(p *float64) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *p)
}

type pageData struct {
	Title       string
	Cuisines    []string
	Query       search.Query
	Recipes     []common.RecipeView
	Fallback    bool
	FallbackKey string
	Favorites   []common.RecipeView
	Flash       string
	Warning     string
}

// Handler 頁面處理器
type Handler struct {
	search     *search.Service
	favorites  *favorites.Service
	cookieName string
}

// NewHandler 創建頁面處理器
func NewHandler(searchSvc *search.Service, favoritesSvc *favorites.Service, cookieName string) *Handler {
	return &Handler{
		search:     searchSvc,
		favorites:  favoritesSvc,
		cookieName: cookieName,
	}
}

// HandleIndex 顯示搜尋結果與收藏
func (h *Handler) HandleIndex(c *gin.Context) {
	var req recipeHandler.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		common.WriteErrorResponse(c, common.ErrInvalidRequest.WithErr(err), false)
		return
	}
	if req.Cuisine == "" {
		req.Cuisine = search.AllCuisines
	}

	result, err := h.search.Search(c.Request.Context(), req.Query())
	if err != nil {
		common.WriteErrorResponse(c, err, false)
		return
	}

	sess := h.session(c)
	c.HTML(http.StatusOK, "index.html", pageData{
		Title:       PageTitle,
		Cuisines:    h.search.Cuisines(),
		Query:       req.Query(),
		Recipes:     recipeHandler.MatchViews(result.Matches),
		Fallback:    result.Fallback,
		FallbackKey: result.FallbackKey,
		Favorites:   recipeHandler.RecipeViews(sess.List(h.search.Catalog())),
		Flash:       popCookie(c, flashCookie),
		Warning:     popCookie(c, warningCookie),
	})
}

// HandleAddFavorite 表單加入收藏後導回原本的搜尋頁面
func (h *Handler) HandleAddFavorite(c *gin.Context) {
	name := c.PostForm("recipe")
	sess := h.session(c)

	added, message, err := h.favorites.Add(sess.ID(), name)
	switch {
	case errors.Is(err, favorites.ErrUnknownRecipe):
		common.LogDebug("Unknown recipe posted", zap.String("recipe", name))
		c.SetCookie(warningCookie, fmt.Sprintf("Recipe '%s' not found.", name), 60, "/", "", false, true)
	case err != nil:
		common.WriteErrorResponse(c, err, false)
		return
	case added:
		c.SetCookie(flashCookie, message, 60, "/", "", false, true)
	}

	c.Redirect(http.StatusSeeOther, returnURL(c))
}

// session 取得瀏覽器會話，不存在或已過期時建立新的
func (h *Handler) session(c *gin.Context) *favorites.Session {
	manager := h.favorites.Sessions()
	if id, err := c.Cookie(h.cookieName); err == nil && id != "" {
		if s, err := manager.Touch(id); err == nil {
			return s
		}
		common.LogDebug("Session cookie expired", zap.String("session_id", id))
	}

	s := manager.Create()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, s.ID(), 0, "/", "", false, true)
	return s
}

// popCookie 讀取並清除一次性訊息
func popCookie(c *gin.Context, name string) string {
	msg, err := c.Cookie(name)
	if err != nil || msg == "" {
		return ""
	}
	c.SetCookie(name, "", -1, "/", "", false, true)
	return msg
}

func returnURL(c *gin.Context) string {
	q := url.Values{}
	for _, field := range []string{"cuisine", "name", "ingredients"} {
		if v := c.PostForm(field); v != "" {
			q.Set(field, v)
		}
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}
