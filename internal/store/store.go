// Package store is the data-access layer feeding word records to the engine.
// The engine itself never touches storage; cmd binaries read from a
// Repository and hand the records to lexicon.Index.Load.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ymaeda/katsuyo/internal/conjugate"
	"github.com/ymaeda/katsuyo/internal/lexicon"
)

// Word is one stored dictionary word.
type Word struct {
	ID         int64
	Script     string
	Reading    string
	Class      string
	Transitive sql.NullBool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type UpsertWordParams struct {
	Script     string
	Reading    string
	Class      string
	Transitive sql.NullBool
}

type ListWordsParams struct {
	Class  string // empty means all classes
	Limit  int32
	Offset int32
}

// Repository is implemented by the sqlite and postgres backends.
type Repository interface {
	UpsertWord(ctx context.Context, arg UpsertWordParams) (Word, error)
	GetWord(ctx context.Context, script string) (Word, error)
	ListWords(ctx context.Context, arg ListWordsParams) ([]Word, error)
	LoadAll(ctx context.Context) ([]Word, error)
	CountWords(ctx context.Context) (int64, error)
	DeleteWord(ctx context.Context, script string) (int64, error)
	Close() error
}

// ToRecords converts stored rows to engine records, rejecting rows whose
// class is not a known inflection class.
func ToRecords(words []Word) ([]lexicon.Record, error) {
	records := make([]lexicon.Record, 0, len(words))
	for _, w := range words {
		class := conjugate.Class(w.Class)
		if !class.Valid() {
			return nil, fmt.Errorf("word %q has unknown inflection class %q", w.Script, w.Class)
		}
		rec := lexicon.Record{
			DictionaryForm: w.Script,
			Reading:        w.Reading,
			Class:          class,
		}
		if w.Transitive.Valid {
			t := w.Transitive.Bool
			rec.Transitive = &t
		}
		records = append(records, rec)
	}
	return records, nil
}
