// Package client 提供 recipe-finder HTTP API 的客戶端。
package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"recipe-finder/internal/core/search"
	"recipe-finder/internal/pkg/common"

	"github.com/goccy/go-json"
	"github.com/go-resty/resty/v2"
)

// DefaultServer 預設伺服器位址
const DefaultServer = "http://localhost:8080"

// APIError 伺服器回傳的錯誤
type APIError struct {
	Status int
	common.ErrorResponse
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("server returned status %d", e.Status)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Code, e.Message, e.Status)
}

// Client API 客戶端
type Client struct {
	http *resty.Client
}

// New 創建客戶端
func New(server string, timeout time.Duration) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(server, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)

	return &Client{http: httpClient}
}

// Cuisines 取得料理類別選項
func (c *Client) Cuisines(ctx context.Context) ([]string, error) {
	var out common.CuisinesResponse
	if err := c.do(ctx, resty.MethodGet, "/api/v1/cuisines", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Cuisines, nil
}

// Search 搜尋食譜
func (c *Client) Search(ctx context.Context, q search.Query) (*common.SearchResponse, error) {
	params := url.Values{}
	if q.Cuisine != "" {
		params.Set("cuisine", q.Cuisine)
	}
	if q.Name != "" {
		params.Set("name", q.Name)
	}
	if q.Ingredients != "" {
		params.Set("ingredients", q.Ingredients)
	}

	var out common.SearchResponse
	if err := c.do(ctx, resty.MethodGet, "/api/v1/recipes", params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateSession 建立收藏會話
func (c *Client) CreateSession(ctx context.Context) (string, error) {
	var out common.SessionResponse
	if err := c.do(ctx, resty.MethodPost, "/api/v1/sessions", nil, nil, &out); err != nil {
		return "", err
	}
	return out.SessionID, nil
}

// AddFavorite 加入收藏
func (c *Client) AddFavorite(ctx context.Context, sessionID, name string) (*common.FavoriteResponse, error) {
	var out common.FavoriteResponse
	path := "/api/v1/sessions/" + url.PathEscape(sessionID) + "/favorites"
	if err := c.do(ctx, resty.MethodPost, path, nil, common.FavoriteRequest{Name: name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Favorites 列出收藏
func (c *Client) Favorites(ctx context.Context, sessionID string) (*common.FavoritesResponse, error) {
	var out common.FavoritesResponse
	path := "/api/v1/sessions/" + url.PathEscape(sessionID) + "/favorites"
	if err := c.do(ctx, resty.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out interface{}) error {
	var apiErr common.ErrorResponse
	req := c.http.R().
		SetContext(ctx).
		SetResult(out).
		SetError(&apiErr)
	if params != nil {
		req.SetQueryParamsFromValues(params)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("failed to send request to %s: %w", path, err)
	}
	if resp.IsError() {
		return &APIError{Status: resp.StatusCode(), ErrorResponse: apiErr}
	}
	return nil
}
