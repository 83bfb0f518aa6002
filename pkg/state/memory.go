package state

import (
	"context"
	"sync"
)

type InMemoryStateManager struct {
	lock  sync.RWMutex
	stats EngineStats
}

func NewInMemoryStateManager() *InMemoryStateManager {
	return &InMemoryStateManager{}
}

func (m *InMemoryStateManager) Get(ctx context.Context) (EngineStats, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.stats, nil
}

func (m *InMemoryStateManager) Set(ctx context.Context, stats EngineStats) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.stats = stats
	return nil
}
