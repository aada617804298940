package cas

import "sync"

type MemoryStore struct {
	mu   sync.RWMutex
	data map[Hash][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[Hash][]byte)}
}

func (m *MemoryStore) getValue(h Hash) (bool, []byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[h]
	if !ok {
		return false, nil, nil
	}
	return true, v, nil
}

func (m *MemoryStore) Has(hash Hash) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[hash]
	return ok
}

func (m *MemoryStore) Put(item Hashable) (Hash, error) {
	h, data, err := encode(item)
	if err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[h]; !ok {
		m.data[h] = data
	}
	return h, nil
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

func (m *MemoryStore) Close() error { return nil }
