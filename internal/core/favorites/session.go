// Package favorites 管理每個使用者會話的收藏清單。
package favorites

import (
	"sync"
	"time"

	"recipe-finder/internal/core/catalog"
	"recipe-finder/internal/pkg/common"
)

// Session 一個使用者的收藏集合，只增不減
type Session struct {
	id        string
	createdAt time.Time

	mu       sync.Mutex
	lastSeen time.Time
	names    []string
	set      map[string]struct{}
}

func newSession(now time.Time) *Session {
	return &Session{
		id:        common.GenerateUUID(),
		createdAt: now,
		lastSeen:  now,
		set:       make(map[string]struct{}),
	}
}

// ID 會話識別碼
func (s *Session) ID() string {
	return s.id
}

// CreatedAt 建立時間
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// Add 名稱不存在時加入並回傳 true，已存在時不做任何事
func (s *Session) Add(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.set[name]; exists {
		return false
	}
	s.set[name] = struct{}{}
	s.names = append(s.names, name)
	return true
}

// Contains 是否已收藏
func (s *Session) Contains(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.set[name]
	return exists
}

// Names 依加入順序回傳收藏名稱
func (s *Session) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.names...)
}

// Len 收藏數量
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.names)
}

// List 依目錄順序回傳已收藏的食譜
func (s *Session) List(c *catalog.Catalog) []catalog.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []catalog.Recipe{}
	for _, r := range c.All() {
		if _, ok := s.set[r.Name]; ok {
			out = append(out, r)
		}
	}
	return out
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
