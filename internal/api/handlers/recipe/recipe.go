package recipe

import (
	"errors"
	"net/http"

	"recipe-finder/internal/core/favorites"
	"recipe-finder/internal/core/search"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SearchRequest 搜尋參數，空白欄位表示不過濾
type SearchRequest struct {
	Cuisine     string `form:"cuisine"`
	Name        string `form:"name"`
	Ingredients string `form:"ingredients"`
}

// Query 轉換為搜尋條件
func (r SearchRequest) Query() search.Query {
	return search.Query{
		Cuisine:     r.Cuisine,
		Name:        r.Name,
		Ingredients: r.Ingredients,
	}
}

// Handler 食譜與收藏 API
type Handler struct {
	search    *search.Service
	favorites *favorites.Service
}

// NewHandler 創建處理器
func NewHandler(searchSvc *search.Service, favoritesSvc *favorites.Service) *Handler {
	return &Handler{
		search:    searchSvc,
		favorites: favoritesSvc,
	}
}

// HandleCuisines 回傳料理類別選項
func (h *Handler) HandleCuisines(c *gin.Context) {
	c.JSON(http.StatusOK, common.CuisinesResponse{Cuisines: h.search.Cuisines()})
}

// HandleSearch 執行食譜搜尋
func (h *Handler) HandleSearch(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		writeError(c, common.ErrInvalidRequest.WithErr(err))
		return
	}

	result, err := h.search.Search(c.Request.Context(), req.Query())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSearchResponse(result))
}

// HandleCreateSession 建立收藏會話
func (h *Handler) HandleCreateSession(c *gin.Context) {
	s := h.favorites.Sessions().Create()
	c.JSON(http.StatusCreated, common.SessionResponse{SessionID: s.ID(), CreatedAt: s.CreatedAt()})
}

// HandleListFavorites 列出會話收藏
func (h *Handler) HandleListFavorites(c *gin.Context) {
	id := c.Param("id")
	recipes, err := h.favorites.List(id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.FavoritesResponse{
		SessionID: id,
		Recipes:   RecipeViews(recipes),
	})
}

// HandleAddFavorite 加入收藏
func (h *Handler) HandleAddFavorite(c *gin.Context) {
	var req common.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, common.ErrInvalidRequest.WithErr(err))
		return
	}

	added, message, err := h.favorites.Add(c.Param("id"), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	c.JSON(status, common.FavoriteResponse{Added: added, Message: message})
}

// MapError 將核心錯誤轉為 HTTP 錯誤
func MapError(err error) *common.CustomError {
	switch {
	case errors.Is(err, favorites.ErrSessionNotFound):
		return common.ErrSessionNotFound.WithErr(err)
	case errors.Is(err, favorites.ErrUnknownRecipe):
		return common.ErrRecipeNotFound.WithErr(err)
	default:
		return common.AsCustomError(err)
	}
}

func writeError(c *gin.Context, err error) {
	ce := MapError(err)
	if ce.Status < http.StatusInternalServerError {
		common.LogDebug("Request rejected",
			zap.String("code", ce.Code),
			zap.Error(err),
			zap.String("request_id", requestid.Get(c)),
		)
	}
	common.WriteErrorResponse(c, ce, debugMode(c))
}

// debugMode 從請求上下文取得設定
func debugMode(c *gin.Context) bool {
	v, ok := c.Get("config")
	if !ok {
		return false
	}
	cfg, ok := v.(*config.Config)
	return ok && cfg.App.Debug
}
