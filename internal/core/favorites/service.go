package favorites

import (
	"errors"
	"fmt"

	"recipe-finder/internal/core/catalog"
	"recipe-finder/internal/pkg/common"
	"recipe-finder/internal/pkg/metrics"

	"go.uber.org/zap"
)

// ErrUnknownRecipe 目錄中沒有此食譜名稱
var ErrUnknownRecipe = errors.New("unknown recipe")

// Service 收藏服務，負責名稱驗證與確認訊息
type Service struct {
	catalog  *catalog.Catalog
	sessions *Manager
}

// NewService 創建收藏服務
func NewService(c *catalog.Catalog, sessions *Manager) *Service {
	return &Service{
		catalog:  c,
		sessions: sessions,
	}
}

// Sessions 回傳會話管理器
func (s *Service) Sessions() *Manager {
	return s.sessions
}

// Confirmation 加入收藏後顯示的訊息
func Confirmation(name string) string {
	return fmt.Sprintf("Added '%s' to favorites!", name)
}

// Add 將食譜加入會話收藏；已存在時 added 為 false 且沒有訊息
func (s *Service) Add(sessionID, name string) (added bool, message string, err error) {
	sess, err := s.sessions.Touch(sessionID)
	if err != nil {
		return false, "", err
	}
	if _, ok := s.catalog.Lookup(name); !ok {
		return false, "", fmt.Errorf("%w: %q", ErrUnknownRecipe, name)
	}

	if !sess.Add(name) {
		return false, "", nil
	}

	metrics.FavoritesAddedTotal.Inc()
	common.LogInfo("Favorite added",
		zap.String("session_id", sessionID),
		zap.String("recipe", name),
	)
	return true, Confirmation(name), nil
}

// List 依目錄順序回傳會話的收藏
func (s *Service) List(sessionID string) ([]catalog.Recipe, error) {
	sess, err := s.sessions.Touch(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.List(s.catalog), nil
}
