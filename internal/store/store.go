// Package store is a generic document store: typed collections over a
// pluggable key-value backend with optimistic version checks.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"service-foodrescue/internal/apperr"
	"service-foodrescue/internal/domain"
)

// Doc is the raw persisted form of a record.
type Doc struct {
	ID        string
	Data      []byte
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int64
}

// DocStore is the backend contract. Get returns (nil, nil) when the
// document does not exist. Update applies only when the stored version
// equals expected and reports whether a document was replaced.
type DocStore interface {
	Put(ctx context.Context, collection string, doc Doc) error
	Get(ctx context.Context, collection, id string) (*Doc, error)
	Update(ctx context.Context, collection string, doc Doc, expected int64) (bool, error)
	List(ctx context.Context, collection string) ([]Doc, error)
}

type record[T any] interface {
	*T
	DocMeta() *domain.Meta
}

// Collection is a typed view over one named collection of the backend.
type Collection[T any, PT record[T]] struct {
	docs DocStore
	name string
	now  func() time.Time
}

// NewCollection binds a record type to a collection name.
func NewCollection[T any, PT record[T]](docs DocStore, name string) *Collection[T, PT] {
	return &Collection[T, PT]{
		docs: docs,
		name: name,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Create persists a new record, assigning id, timestamps and version.
func (c *Collection[T, PT]) Create(ctx context.Context, rec PT) error {
	m := rec.DocMeta()
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	now := c.now()
	m.CreatedAt, m.UpdatedAt, m.Version = now, now, 1

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal %s %s: %w", c.name, m.ID, err)
	}
	doc := Doc{ID: m.ID, Data: data, CreatedAt: now, UpdatedAt: now, Version: 1}
	if err := c.docs.Put(ctx, c.name, doc); err != nil {
		return fmt.Errorf("create %s %s: %w", c.name, m.ID, err)
	}
	return nil
}

// Get loads a record by id, or (nil, nil) when absent.
func (c *Collection[T, PT]) Get(ctx context.Context, id string) (PT, error) {
	doc, err := c.docs.Get(ctx, c.name, id)
	if err != nil {
		return nil, fmt.Errorf("get %s %s: %w", c.name, id, err)
	}
	if doc == nil {
		return nil, nil
	}
	return c.decode(*doc)
}

// Update replaces the stored record if its version still matches the
// in-memory one, then bumps version and updated_at. A lost race
// surfaces as apperr.ErrConflict with the record left untouched.
func (c *Collection[T, PT]) Update(ctx context.Context, rec PT) error {
	m := rec.DocMeta()
	expected := m.Version
	now := c.now()

	next := *m
	next.Version = expected + 1
	next.UpdatedAt = now
	prev := *m
	*m = next

	data, err := json.Marshal(rec)
	if err != nil {
		*m = prev
		return fmt.Errorf("marshal %s %s: %w", c.name, m.ID, err)
	}
	doc := Doc{ID: next.ID, Data: data, CreatedAt: next.CreatedAt, UpdatedAt: now, Version: next.Version}
	ok, err := c.docs.Update(ctx, c.name, doc, expected)
	if err != nil {
		*m = prev
		return fmt.Errorf("update %s %s: %w", c.name, m.ID, err)
	}
	if !ok {
		*m = prev
		return apperr.ErrConflict
	}
	return nil
}

// List loads every record of the collection.
func (c *Collection[T, PT]) List(ctx context.Context) ([]PT, error) {
	docs, err := c.docs.List(ctx, c.name)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.name, err)
	}
	out := make([]PT, 0, len(docs))
	for _, doc := range docs {
		rec, err := c.decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (c *Collection[T, PT]) decode(doc Doc) (PT, error) {
	var v T
	rec := PT(&v)
	if err := json.Unmarshal(doc.Data, rec); err != nil {
		return nil, fmt.Errorf("unmarshal %s %s: %w", c.name, doc.ID, err)
	}
	m := rec.DocMeta()
	m.ID = doc.ID
	m.CreatedAt = doc.CreatedAt
	m.UpdatedAt = doc.UpdatedAt
	m.Version = doc.Version
	return rec, nil
}
