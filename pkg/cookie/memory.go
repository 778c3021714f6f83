package cookie

import "sync"

// MemoryStore is an in-process Store for callers without an HTTP exchange,
// such as background jobs and tests. It is safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	defaults Options
	values   map[string]string
	written  []Written
}

// Written records a cookie written to a MemoryStore.
type Written struct {
	Name    string
	Value   string
	Options Options
	Deleted bool
}

// NewMemoryStore creates a MemoryStore pre-populated with initial values.
func NewMemoryStore(initial map[string]string, opts ...Option) *MemoryStore {
	values := make(map[string]string, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	return &MemoryStore{
		defaults: New(opts...).Defaults(),
		values:   values,
	}
}

func (s *MemoryStore) Get(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[name]
	return v, ok
}

func (s *MemoryStore) Set(name, value string, opts ...Option) error {
	if name == "" {
		return ErrInvalidName
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = value
	s.written = append(s.written, Written{Name: name, Value: value, Options: applyOptions(s.defaults, opts)})
	return nil
}

func (s *MemoryStore) Delete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, name)
	s.written = append(s.written, Written{Name: name, Options: s.defaults, Deleted: true})
}

// Writes returns every Set and Delete performed on the store, in order.
func (s *MemoryStore) Writes() []Written {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Written(nil), s.written...)
}
