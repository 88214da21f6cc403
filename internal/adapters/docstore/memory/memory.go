// Package memory implements the DocumentStore port in process. It backs the
// dev store mode and the test suites.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/delux1000/deluxwallet/internal/core/ports"
)

// Store keeps whole documents in a map, mirroring the remote blob service's
// get/replace-only contract.
type Store struct {
	mu   sync.RWMutex
	docs map[ports.Collection]json.RawMessage
}

// New creates an empty Store.
func New() *Store {
	return &Store{docs: make(map[ports.Collection]json.RawMessage)}
}

var _ ports.DocumentStore = (*Store)(nil)

// Get returns the stored document, or nil when the collection has never been
// written.
func (s *Store) Get(_ context.Context, collection ports.Collection) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs[collection], nil
}

// Replace overwrites the stored document.
func (s *Store) Replace(_ context.Context, collection ports.Collection, records any) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding %s collection: %w", collection, err)
	}
	s.mu.Lock()
	s.docs[collection] = payload
	s.mu.Unlock()
	return nil
}
