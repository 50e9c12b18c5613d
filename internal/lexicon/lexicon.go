// Package lexicon holds the in-process word index: surface form (script or
// reading) to word record. Load builds the replacement maps aside and
// publishes them in a single atomic swap, so lock-free readers observe
// either the old contents or the new, never a partially loaded index.
// Concurrent Loads still need caller serialization; the last publisher wins.
package lexicon

import (
	"sync/atomic"

	"github.com/ymaeda/katsuyo/internal/conjugate"
)

// Record is one dictionary word. Immutable once loaded.
type Record struct {
	DictionaryForm string          `json:"dictionary_form"`
	Reading        string          `json:"reading"`
	Class          conjugate.Class `json:"class"`
	// Transitive is informational only; conjugation never consults it.
	Transitive *bool `json:"transitive,omitempty"`
}

// Collision reports two loaded records claiming the same surface in one of
// the maps. The incoming record wins; the caller decides whether that is a
// data-quality problem worth acting on.
type Collision struct {
	Surface  string
	Kept     Record
	Replaced Record
}

// snapshot is one immutable generation of the index. Script and reading live
// in separate maps so a kana-spelled dictionary form cannot shadow another
// word's reading silently.
type snapshot struct {
	byScript  map[string]Record
	byReading map[string]Record
}

// Index maps surfaces to records.
type Index struct {
	snap atomic.Pointer[snapshot]
}

func NewIndex() *Index {
	ix := &Index{}
	ix.snap.Store(&snapshot{
		byScript:  make(map[string]Record),
		byReading: make(map[string]Record),
	})
	return ix
}

// Load replaces the index contents wholesale and returns any surface
// collisions among the incoming records. Last record wins on collision. The
// new maps are fully built before they are published, so Lookup stays safe
// during a Load.
func (ix *Index) Load(records []Record) []Collision {
	next := &snapshot{
		byScript:  make(map[string]Record, len(records)),
		byReading: make(map[string]Record, len(records)),
	}

	var collisions []Collision
	for _, rec := range records {
		if prev, ok := next.byScript[rec.DictionaryForm]; ok {
			collisions = append(collisions, Collision{Surface: rec.DictionaryForm, Kept: rec, Replaced: prev})
		}
		next.byScript[rec.DictionaryForm] = rec

		if prev, ok := next.byReading[rec.Reading]; ok {
			collisions = append(collisions, Collision{Surface: rec.Reading, Kept: rec, Replaced: prev})
		}
		next.byReading[rec.Reading] = rec
	}

	ix.snap.Store(next)
	return collisions
}

// Lookup resolves a surface, trying the dictionary-form map before the
// reading map.
func (ix *Index) Lookup(surface string) (Record, bool) {
	s := ix.snap.Load()
	if rec, ok := s.byScript[surface]; ok {
		return rec, true
	}
	rec, ok := s.byReading[surface]
	return rec, ok
}

// Len returns the number of distinct dictionary forms loaded.
func (ix *Index) Len() int {
	return len(ix.snap.Load().byScript)
}
