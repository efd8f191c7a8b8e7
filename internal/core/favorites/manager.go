package favorites

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"
	"recipe-finder/internal/pkg/metrics"

	"go.uber.org/zap"
)

// ErrSessionNotFound 會話不存在或已過期
var ErrSessionNotFound = errors.New("session not found")

// Manager 會話登記表，閒置超過 TTL 的會話會被清除
type Manager struct {
	ttl             time.Duration
	cleanupInterval time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session

	done chan struct{}
	once sync.Once
	now  func() time.Time
}

// NewManager 創建會話管理器並啟動清理協程
func NewManager(cfg config.SessionConfig) *Manager {
	m := &Manager{
		ttl:             cfg.TTL,
		cleanupInterval: cfg.CleanupInterval,
		sessions:        make(map[string]*Session),
		done:            make(chan struct{}),
		now:             time.Now,
	}

	if m.ttl > 0 && m.cleanupInterval > 0 {
		go m.startJanitor()
	}

	common.LogInfo("會話管理員已初始化",
		zap.Duration("存活時間", cfg.TTL),
		zap.Duration("清理間隔", cfg.CleanupInterval),
	)
	return m
}

// Create 建立空的收藏會話
func (m *Manager) Create() *Session {
	s := newSession(m.now())

	m.mu.Lock()
	m.sessions[s.id] = s
	count := len(m.sessions)
	m.mu.Unlock()

	metrics.ActiveSessions.Set(float64(count))
	common.LogDebug("Session created", zap.String("session_id", s.id))
	return s
}

// Get 取得會話，過期的會話視為不存在
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok || m.expired(s, m.now()) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// Touch 取得會話並更新最後使用時間
func (m *Manager) Touch(id string) (*Session, error) {
	s, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	s.touch(m.now())
	return s, nil
}

// Len 目前登記的會話數
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) expired(s *Session, now time.Time) bool {
	return m.ttl > 0 && now.Sub(s.idleSince()) > m.ttl
}

func (m *Manager) startJanitor() {
	ticker := time.NewTicker(m.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := m.cleanup(); n > 0 {
				common.LogDebug("Expired sessions removed", zap.Int("count", n))
			}
		case <-m.done:
			return
		}
	}
}

// cleanup 移除過期會話並回傳移除數量
func (m *Manager) cleanup() int {
	now := m.now()

	m.mu.Lock()
	removed := 0
	for id, s := range m.sessions {
		if m.expired(s, now) {
			delete(m.sessions, id)
			removed++
		}
	}
	count := len(m.sessions)
	m.mu.Unlock()

	metrics.ActiveSessions.Set(float64(count))
	return removed
}

// Close 停止清理協程
func (m *Manager) Close() error {
	m.once.Do(func() {
		close(m.done)
		common.LogInfo("會話管理員已關閉", zap.Int("會話數", m.Len()))
	})
	return nil
}
