// The katsuyo server exposes the conjugation engine over HTTP: canonical
// tables, validation verdicts, word management, and LLM-generated drill
// sentences reviewed by the validator.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"golang.org/x/sync/errgroup"

	"github.com/ymaeda/katsuyo/internal/anthropic"
	"github.com/ymaeda/katsuyo/internal/conjugate"
	"github.com/ymaeda/katsuyo/internal/drill"
	"github.com/ymaeda/katsuyo/internal/google"
	"github.com/ymaeda/katsuyo/internal/lexicon"
	"github.com/ymaeda/katsuyo/internal/llm"
	"github.com/ymaeda/katsuyo/internal/logger"
	"github.com/ymaeda/katsuyo/internal/store"
	"github.com/ymaeda/katsuyo/internal/store/postgres"
	"github.com/ymaeda/katsuyo/internal/store/sqlite"
	"github.com/ymaeda/katsuyo/internal/validate"
	"github.com/ymaeda/katsuyo/internal/web"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("katsuyo-server")
	var (
		port            = fs.Int64Long("port", 8080, "HTTP server port")
		databaseURL     = fs.StringLong("database-url", "katsuyo.db", "PostgreSQL URL or SQLite path")
		llmProvider     = fs.StringLong("llm-provider", "", "LLM provider for drill sentences (anthropic or google)")
		llmModel        = fs.StringLong("llm-model", "", "LLM model name")
		anthropicAPIKey = fs.StringLong("anthropic-api-key", "", "Anthropic API key")
		googleAPIKey    = fs.StringLong("google-api-key", "", "Google API key")
	)
	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVars()); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs))
		return fmt.Errorf("parsing flags: %w", err)
	}

	log := logger.Init()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := openStore(ctx, *databaseURL)
	if err != nil {
		return fmt.Errorf("opening word store: %w", err)
	}
	defer repo.Close()

	index := lexicon.NewIndex()
	if err := loadIndex(ctx, repo, index, log); err != nil {
		return err
	}

	llmClient, err := buildLLMClient(ctx, *llmProvider, *llmModel, *anthropicAPIKey, *googleAPIKey)
	if err != nil {
		return err
	}

	engine := conjugate.New()
	validator := validate.New(index, engine)
	var generator *drill.Generator
	if llmClient != nil {
		generator = drill.NewGenerator(llmClient, validator)
	}

	router := web.NewRouter(repo, index, engine, validator, generator, log)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", *port),
		Handler:           router.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "port", *port, "words", index.Len())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func openStore(ctx context.Context, databaseURL string) (store.Repository, error) {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return postgres.New(ctx, databaseURL)
	}
	return sqlite.New(ctx, databaseURL)
}

func loadIndex(ctx context.Context, repo store.Repository, index *lexicon.Index, log *slog.Logger) error {
	words, err := repo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("loading words: %w", err)
	}
	records, err := store.ToRecords(words)
	if err != nil {
		return fmt.Errorf("converting words: %w", err)
	}
	for _, c := range index.Load(records) {
		log.Warn("surface collision in word index",
			"surface", c.Surface,
			"kept", c.Kept.DictionaryForm,
			"replaced", c.Replaced.DictionaryForm,
		)
	}
	log.Info("word index loaded", "words", index.Len())
	return nil
}

func buildLLMClient(ctx context.Context, provider, model, anthropicKey, googleKey string) (llm.Client, error) {
	switch provider {
	case "":
		return nil, nil // drill endpoint disabled
	case "anthropic":
		if anthropicKey == "" {
			return nil, errors.New("anthropic-api-key is required when using anthropic provider")
		}
		return anthropic.NewClient(anthropicKey, anthropic.Model(model)), nil
	case "google":
		if googleKey == "" {
			return nil, errors.New("google-api-key is required when using google provider")
		}
		return google.NewClient(ctx, googleKey, google.Model(model))
	default:
		return nil, fmt.Errorf("unknown llm provider %q", provider)
	}
}
