package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ymaeda/katsuyo/internal/store"
)

//go:embed schema.sql
var schemaSQL string

// Repository implements store.Repository on PostgreSQL via pgx.
type Repository struct {
	pool *pgxpool.Pool
}

// New connects, verifies the connection, and applies the schema. The word
// store is a small read-mostly table, so the pool stays tiny.
func New(ctx context.Context, databaseURL string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}

	config.MaxConns = 5
	config.MinConns = 2
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 30 * time.Second
	config.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &Repository{pool: pool}, nil
}

func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

const wordColumns = `id, script, reading, class, transitive, created_at, updated_at`

func (r *Repository) UpsertWord(ctx context.Context, arg store.UpsertWordParams) (store.Word, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO words (script, reading, class, transitive)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (script) DO UPDATE SET
			reading = EXCLUDED.reading,
			class = EXCLUDED.class,
			transitive = EXCLUDED.transitive,
			updated_at = now()
		RETURNING `+wordColumns,
		arg.Script, arg.Reading, arg.Class, arg.Transitive)
	return scanWord(row)
}

func (r *Repository) GetWord(ctx context.Context, script string) (store.Word, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+wordColumns+` FROM words WHERE script = $1
	`, script)
	return scanWord(row)
}

func (r *Repository) ListWords(ctx context.Context, arg store.ListWordsParams) ([]store.Word, error) {
	query := `SELECT ` + wordColumns + ` FROM words`
	var args []any
	if arg.Class != "" {
		query += ` WHERE class = $1 ORDER BY script LIMIT $2 OFFSET $3`
		args = []any{arg.Class, arg.Limit, arg.Offset}
	} else {
		query += ` ORDER BY script LIMIT $1 OFFSET $2`
		args = []any{arg.Limit, arg.Offset}
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanWords(rows)
}

func (r *Repository) LoadAll(ctx context.Context) ([]store.Word, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+wordColumns+` FROM words ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanWords(rows)
}

func (r *Repository) CountWords(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM words`).Scan(&count)
	return count, err
}

func (r *Repository) DeleteWord(ctx context.Context, script string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM words WHERE script = $1`, script)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanWord(row pgx.Row) (store.Word, error) {
	var w store.Word
	err := row.Scan(&w.ID, &w.Script, &w.Reading, &w.Class, &w.Transitive, &w.CreatedAt, &w.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return store.Word{}, store.ErrNoRows
	}
	if err != nil {
		return store.Word{}, err
	}
	return w, nil
}

func scanWords(rows pgx.Rows) ([]store.Word, error) {
	var words []store.Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, rows.Err()
}
