package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/ymaeda/katsuyo/internal/store"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Repository implements store.Repository using SQLite.
type Repository struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath. ":memory:" gives an
// ephemeral database, which the tests rely on.
func New(ctx context.Context, dbPath string) (*Repository, error) {
	dbPath = strings.TrimPrefix(dbPath, "sqlite://")

	sqliteDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening SQLite database: %w", err)
	}

	// WAL improves concurrent read behavior
	if _, err := sqliteDB.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		sqliteDB.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := sqliteDB.ExecContext(ctx, schemaSQL); err != nil {
		sqliteDB.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &Repository{db: sqliteDB}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) UpsertWord(ctx context.Context, arg store.UpsertWordParams) (store.Word, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO words (script, reading, class, transitive)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (script) DO UPDATE SET
			reading = excluded.reading,
			class = excluded.class,
			transitive = excluded.transitive,
			updated_at = CURRENT_TIMESTAMP
	`, arg.Script, arg.Reading, arg.Class, arg.Transitive)
	if err != nil {
		return store.Word{}, err
	}
	return r.GetWord(ctx, arg.Script)
}

func (r *Repository) GetWord(ctx context.Context, script string) (store.Word, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, script, reading, class, transitive, created_at, updated_at
		FROM words
		WHERE script = ?
	`, script)
	return scanWord(row)
}

func (r *Repository) ListWords(ctx context.Context, arg store.ListWordsParams) ([]store.Word, error) {
	query := `
		SELECT id, script, reading, class, transitive, created_at, updated_at
		FROM words
	`
	var args []any
	if arg.Class != "" {
		query += ` WHERE class = ?`
		args = append(args, arg.Class)
	}
	query += ` ORDER BY script LIMIT ? OFFSET ?`
	args = append(args, arg.Limit, arg.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanWords(rows)
}

func (r *Repository) LoadAll(ctx context.Context) ([]store.Word, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, script, reading, class, transitive, created_at, updated_at
		FROM words
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanWords(rows)
}

func (r *Repository) CountWords(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM words`).Scan(&count)
	return count, err
}

func (r *Repository) DeleteWord(ctx context.Context, script string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM words WHERE script = ?`, script)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWord(row rowScanner) (store.Word, error) {
	var w store.Word
	err := row.Scan(&w.ID, &w.Script, &w.Reading, &w.Class, &w.Transitive, &w.CreatedAt, &w.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Word{}, store.ErrNoRows
	}
	if err != nil {
		return store.Word{}, err
	}
	return w, nil
}

func scanWords(rows *sql.Rows) ([]store.Word, error) {
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
