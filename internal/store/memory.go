package store

import (
	"context"
	"sync"
)

// MemoryRepository：未配置数据库时的进程内仓储（本地开发）
type MemoryRepository struct {
	mu   sync.RWMutex
	recs []Resource
	ids  map[string]struct{}
}

func NewMemory() *MemoryRepository {
	return &MemoryRepository{ids: make(map[string]struct{})}
}

// List 返回副本，调用方修改不影响仓储
func (m *MemoryRepository) List(_ context.Context) ([]Resource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Resource, len(m.recs))
	copy(out, m.recs)
	return out, nil
}

func (m *MemoryRepository) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.recs), nil
}

// Insert：与 Postgres 一致，重复 id 忽略
func (m *MemoryRepository) Insert(_ context.Context, recs []Resource) error {
	for _, r := range recs {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range recs {
		if _, ok := m.ids[r.ID]; ok {
			continue
		}
		m.ids[r.ID] = struct{}{}
		m.recs = append(m.recs, r)
	}
	return nil
}
