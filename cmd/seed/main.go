// seed imports words into the store from a TSV file with one word per line:
//
//	script<TAB>reading<TAB>class[<TAB>transitive]
//
// class is one of godan, ichidan, suru, kuru, i-adjective, na-adjective;
// transitive, when present, is "t" or "i". Lines starting with # are
// comments. Every row is shape-checked against the engine before it is
// written, so malformed dictionary data never reaches the store.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/ymaeda/katsuyo/internal/conjugate"
	"github.com/ymaeda/katsuyo/internal/logger"
	"github.com/ymaeda/katsuyo/internal/store"
	"github.com/ymaeda/katsuyo/internal/store/postgres"
	"github.com/ymaeda/katsuyo/internal/store/sqlite"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("katsuyo-seed")
	var (
		databaseURL = fs.StringLong("database-url", "katsuyo.db", "PostgreSQL URL or SQLite path")
		file        = fs.StringLong("file", "", "TSV file of words to import")
	)
	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVars()); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs))
		return fmt.Errorf("parsing flags: %w", err)
	}
	if *file == "" {
		return fmt.Errorf("file is required")
	}

	log := logger.Init()
	ctx := context.Background()

	repo, err := openStore(ctx, *databaseURL)
	if err != nil {
		return fmt.Errorf("opening word store: %w", err)
	}
	defer repo.Close()

	f, err := os.Open(*file)
	if err != nil {
		return err
	}
	defer f.Close()

	engine := conjugate.New()
	var imported, skipped int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		params, err := parseLine(line)
		if err != nil {
			log.Warn("skipping line", "line", line, "error", err)
			skipped++
			continue
		}
		// Shape-check before writing: generate the full table once.
		if _, err := engine.GenerateAll(params.Script, params.Reading, conjugate.Class(params.Class)); err != nil {
			log.Warn("skipping malformed word", "script", params.Script, "error", err)
			skipped++
			continue
		}
		if _, err := repo.UpsertWord(ctx, params); err != nil {
			return fmt.Errorf("upserting %q: %w", params.Script, err)
		}
		imported++
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	log.Info("seed complete", "imported", imported, "skipped", skipped)
	return nil
}

func parseLine(line string) (store.UpsertWordParams, error) {
	parts := strings.Split(line, "\t")
	if len(parts) < 3 {
		return store.UpsertWordParams{}, fmt.Errorf("expected at least 3 tab-separated fields, got %d", len(parts))
	}
	params := store.UpsertWordParams{
		Script:  strings.TrimSpace(parts[0]),
		Reading: strings.TrimSpace(parts[1]),
		Class:   strings.TrimSpace(parts[2]),
	}
	if !conjugate.Class(params.Class).Valid() {
		return store.UpsertWordParams{}, fmt.Errorf("unknown class %q", params.Class)
	}
	if len(parts) > 3 {
		switch strings.TrimSpace(parts[3]) {
		case "t":
			params.Transitive = sql.NullBool{Bool: true, Valid: true}
		case "i":
			params.Transitive = sql.NullBool{Bool: false, Valid: true}
		case "":
		default:
			return store.UpsertWordParams{}, fmt.Errorf("transitive field must be t or i")
		}
	}
	return params, nil
}

func openStore(ctx context.Context, databaseURL string) (store.Repository, error) {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return postgres.New(ctx, databaseURL)
	}
	return sqlite.New(ctx, databaseURL)
}
