package store

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/url-shortener/internal/shortener"
)

const schema = `
	CREATE TABLE IF NOT EXISTS urls (
		id         BIGSERIAL PRIMARY KEY,
		url        TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// PostgresStore is a PostgreSQL implementation of shortener.Repository.
// IDs come from the BIGSERIAL sequence, so concurrent inserts never collide.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed URL store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the urls table if it does not exist yet.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	return nil
}

func (p *PostgresStore) Insert(ctx context.Context, url string) (*shortener.URLRecord, error) {
	query := `
		INSERT INTO urls (url)
		VALUES ($1)
		RETURNING id, created_at
	`

	record := shortener.URLRecord{URL: url}

	var id int64

	if err := p.pool.QueryRow(ctx, query, url).Scan(&id, &record.CreatedAt); err != nil {
		return nil, err
	}

	record.ID = shortener.ID(id)

	return &record, nil
}

func (p *PostgresStore) FindByID(ctx context.Context, id shortener.ID) (*shortener.URLRecord, error) {
	// BIGSERIAL never exceeds int64, so larger IDs cannot exist.
	if id > math.MaxInt64 {
		return nil, shortener.ErrNotFound
	}

	query := `
		SELECT url, created_at
		FROM urls
		WHERE id = $1
	`

	record := shortener.URLRecord{ID: id}

	err := p.pool.QueryRow(ctx, query, int64(id)).Scan(&record.URL, &record.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	return &record, nil
}

// Ping checks PostgreSQL connectivity.
func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Shutdown closes the connection pool.
func (p *PostgresStore) Shutdown() error {
	p.pool.Close()

	return nil
}

// Compile-time check.
var _ shortener.Repository = (*PostgresStore)(nil)
