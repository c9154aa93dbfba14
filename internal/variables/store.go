// Package variables holds the named byte values referenced as ${name}.
package variables

import (
	"sort"
	"sync"

	wsterror "github.com/msto63/wsterm/foundation/core/error"
	"github.com/msto63/wsterm/foundation/tmplexpr"
)

// Store is a concurrency-safe map of variable names to byte values
type Store struct {
	mu   sync.RWMutex
	vars map[string][]byte
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{vars: make(map[string][]byte)}
}

// Set stores a copy of value under name
func (s *Store) Set(name string, value []byte) error {
	if !tmplexpr.IsValidVariableName(name) {
		return wsterror.Newf("invalid variable name %q", name).
			WithCode(wsterror.CodeInvalidInput).
			WithOperation("variables.Set").
			WithDetail("name", name)
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	s.vars[name] = stored
	s.mu.Unlock()
	return nil
}

// Get returns a copy of the value stored under name
func (s *Store) Get(name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.vars[name]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true
}

// Unset removes name and reports whether it was defined
func (s *Store) Unset(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.vars[name]
	delete(s.vars, name)
	return ok
}

// Names returns all variable names in sorted order
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.vars))
	for name := range s.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of defined variables
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vars)
}

// Clear removes all variables
func (s *Store) Clear() {
	s.mu.Lock()
	s.vars = make(map[string][]byte)
	s.mu.Unlock()
}
