package favorites

import "sync"

// Persistence loads and saves the whole favorites list as URL strings.
// Implementations are treated as best effort by Store.
type Persistence interface {
	Load() ([]string, error)
	Save(urls []string) error
}

// MemoryPersistence keeps the list in memory. It is safe for concurrent use.
type MemoryPersistence struct {
	mu    sync.Mutex
	urls  []string
	saves int
}

// NewMemoryPersistence returns a MemoryPersistence seeded with urls.
func NewMemoryPersistence(urls ...string) *MemoryPersistence {
	return &MemoryPersistence{urls: append([]string(nil), urls...)}
}

func (m *MemoryPersistence) Load() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.urls...), nil
}

func (m *MemoryPersistence) Save(urls []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.urls = append([]string(nil), urls...)
	m.saves++
	return nil
}

// Saved returns the last saved list and the number of saves so far.
func (m *MemoryPersistence) Saved() ([]string, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.urls...), m.saves
}
