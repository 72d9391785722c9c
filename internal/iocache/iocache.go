package iocache

import (
	"sync"

	"github.com/gitpulse/gitpulse/internal/contract"
)

// CacheStoreManager coordinates access to the activity cache and history stores.
type CacheStoreManager struct {
	sync.RWMutex
	activity contract.CacheStore
	history  contract.HistoryStore
}

var _ contract.PersistenceManager = &CacheStoreManager{} // Compile-time check

// GetActivityStore returns the activity cache store.
func (m *CacheStoreManager) GetActivityStore() contract.CacheStore {
	m.RLock()
	defer m.RUnlock()
	return m.activity
}

// GetHistoryStore returns the run history store.
func (m *CacheStoreManager) GetHistoryStore() contract.HistoryStore {
	m.RLock()
	defer m.RUnlock()
	return m.history
}
