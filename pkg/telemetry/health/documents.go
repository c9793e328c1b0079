package health

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// DocumentState tracks the latest validation outcome of each watched
// document. Its Check fails while any document is invalid.
type DocumentState struct {
	mu      sync.RWMutex
	invalid map[string]int
	seen    map[string]struct{}
}

// NewDocumentState creates an empty state. A state with no documents is
// healthy.
func NewDocumentState() *DocumentState {
	return &DocumentState{
		invalid: make(map[string]int),
		seen:    make(map[string]struct{}),
	}
}

// Set records the latest outcome for path.
func (s *DocumentState) Set(path string, valid bool, errorCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seen[path] = struct{}{}
	if valid {
		delete(s.invalid, path)
		return
	}
	s.invalid[path] = errorCount
}

// Len returns the number of documents seen.
func (s *DocumentState) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seen)
}

// Check implements CheckFunc.
func (s *DocumentState) Check(context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.invalid) == 0 {
		return nil
	}
	paths := make([]string, 0, len(s.invalid))
	for path := range s.invalid {
		paths = append(paths, fmt.Sprintf("%s (%d errors)", path, s.invalid[path]))
	}
	sort.Strings(paths)
	return fmt.Errorf("invalid documents: %s", strings.Join(paths, ", "))
}
