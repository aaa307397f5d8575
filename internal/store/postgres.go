package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres keeps every collection in a single documents table with a
// JSONB payload and a version column for compare-and-set updates.
type Postgres struct {
	db *pgxpool.Pool
}

// NewPostgres creates a Postgres-backed DocStore.
func NewPostgres(db *pgxpool.Pool) *Postgres { return &Postgres{db: db} }

// NewPool creates and pings a new pgx connection pool.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// Bootstrap creates the documents table when it does not exist yet.
func (p *Postgres) Bootstrap(ctx context.Context) error {
	_, err := p.db.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS documents (
            collection  text        NOT NULL,
            id          text        NOT NULL,
            data        jsonb       NOT NULL,
            created_at  timestamptz NOT NULL,
            updated_at  timestamptz NOT NULL,
            version     bigint      NOT NULL,
            PRIMARY KEY (collection, id)
        )
    `)
	if err != nil {
		return fmt.Errorf("bootstrap documents table: %w", err)
	}
	return nil
}

// Put inserts a new document.
func (p *Postgres) Put(ctx context.Context, collection string, doc Doc) error {
	_, err := p.db.Exec(ctx, `
        INSERT INTO documents (collection, id, data, created_at, updated_at, version)
        VALUES ($1, $2, $3, $4, $5, $6)
    `, collection, doc.ID, doc.Data, doc.CreatedAt, doc.UpdatedAt, doc.Version)
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("document %s/%s already exists", collection, doc.ID)
		}
		return fmt.Errorf("put %s/%s: %w", collection, doc.ID, err)
	}
	return nil
}

// Get returns a document by id, or (nil, nil) when absent.
func (p *Postgres) Get(ctx context.Context, collection, id string) (*Doc, error) {
	var doc Doc
	err := p.db.QueryRow(ctx, `
        SELECT id, data, created_at, updated_at, version
        FROM documents
        WHERE collection = $1 AND id = $2
    `, collection, id).Scan(&doc.ID, &doc.Data, &doc.CreatedAt, &doc.UpdatedAt, &doc.Version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return &doc, nil
}

// Update replaces a document only when the stored version matches.
func (p *Postgres) Update(ctx context.Context, collection string, doc Doc, expected int64) (bool, error) {
	ct, err := p.db.Exec(ctx, `
        UPDATE documents
        SET data = $3, updated_at = $4, version = $5
        WHERE collection = $1 AND id = $2 AND version = $6
    `, collection, doc.ID, doc.Data, doc.UpdatedAt, doc.Version, expected)
	if err != nil {
		return false, fmt.Errorf("update %s/%s: %w", collection, doc.ID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// List returns every document of a collection ordered by creation time.
func (p *Postgres) List(ctx context.Context, collection string) ([]Doc, error) {
	rows, err := p.db.Query(ctx, `
        SELECT id, data, created_at, updated_at, version
        FROM documents
        WHERE collection = $1
        ORDER BY created_at, id
    `, collection)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	defer rows.Close()

	var out []Doc
	for rows.Next() {
		var doc Doc
		if err := rows.Scan(&doc.ID, &doc.Data, &doc.CreatedAt, &doc.UpdatedAt, &doc.Version); err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func isDuplicate(err error) bool {
	var pgerr *pgconn.PgError
	return errors.As(err, &pgerr) && pgerr.Code == "23505"
}

var _ DocStore = (*Postgres)(nil)
