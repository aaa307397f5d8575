package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Memory is an in-process DocStore with the same semantics as the
// Postgres backend. It backs unit tests and the "memory" store mode.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string]Doc
}

// NewMemory creates an empty in-memory DocStore.
func NewMemory() *Memory {
	return &Memory{data: map[string]map[string]Doc{}}
}

// Put inserts a new document.
func (m *Memory) Put(_ context.Context, collection string, doc Doc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	coll := m.data[collection]
	if coll == nil {
		coll = map[string]Doc{}
		m.data[collection] = coll
	}
	if _, ok := coll[doc.ID]; ok {
		return fmt.Errorf("document %s/%s already exists", collection, doc.ID)
	}
	coll[doc.ID] = cloneDoc(doc)
	return nil
}

// Get returns a document by id, or (nil, nil) when absent.
func (m *Memory) Get(_ context.Context, collection, id string) (*Doc, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.data[collection][id]
	if !ok {
		return nil, nil
	}
	out := cloneDoc(doc)
	return &out, nil
}

// Update replaces a document only when the stored version matches.
func (m *Memory) Update(_ context.Context, collection string, doc Doc, expected int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.data[collection][doc.ID]
	if !ok || current.Version != expected {
		return false, nil
	}
	next := cloneDoc(doc)
	next.CreatedAt = current.CreatedAt
	m.data[collection][doc.ID] = next
	return true, nil
}

// List returns every document of a collection ordered by creation time.
func (m *Memory) List(_ context.Context, collection string) ([]Doc, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	coll := m.data[collection]
	out := make([]Doc, 0, len(coll))
	for _, doc := range coll {
		out = append(out, cloneDoc(doc))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func cloneDoc(doc Doc) Doc {
	out := doc
	out.Data = append([]byte(nil), doc.Data...)
	return out
}

var _ DocStore = (*Memory)(nil)
