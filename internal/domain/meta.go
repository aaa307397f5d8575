package domain

import "time"

// Meta carries the identity and bookkeeping fields shared by every
// stored record. Entities embed it and thereby satisfy store.Record.
type Meta struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int64     `json:"-"`
}

// DocMeta exposes the embedded metadata to the persistence layer.
func (m *Meta) DocMeta() *Meta { return m }
