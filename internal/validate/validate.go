// Package validate checks candidate text against canonically generated
// conjugations and proposes corrections. It is the review side of the engine:
// machine-generated sentences go in, verdicts and rewritten text come out.
package validate

import (
	"strings"

	"github.com/ymaeda/katsuyo/internal/conjugate"
	"github.com/ymaeda/katsuyo/internal/lexicon"
)

// IssueKind tags a validation issue variant.
type IssueKind string

const (
	IssueUnknownWord IssueKind = "unknown_word"
	IssueWrongForm   IssueKind = "wrong_form"
)

// Issue is one detected problem. Expected and Found are set for wrong_form
// only.
type Issue struct {
	Kind     IssueKind         `json:"kind"`
	Word     string            `json:"word"`
	Tag      conjugate.FormTag `json:"tag,omitempty"`
	Expected *conjugate.Form   `json:"expected,omitempty"`
	Found    string            `json:"found,omitempty"`
}

// Verdict is the result of a validation call.
type Verdict struct {
	Valid     bool            `json:"valid"`
	Input     string          `json:"input"`
	Expected  *conjugate.Form `json:"expected_form,omitempty"`
	Corrected string          `json:"corrected_text,omitempty"`
	Issues    []Issue         `json:"issues,omitempty"`
}

// Expectation names a word and the form it should appear in.
type Expectation struct {
	Word string            `json:"word"`
	Tag  conjugate.FormTag `json:"form"`
}

// Validator compares candidate strings against the conjugator's canonical
// tables. It holds no mutable state of its own; the index it reads follows
// the single-writer contract documented in lexicon.
type Validator struct {
	index  *lexicon.Index
	engine *conjugate.Engine
}

// New builds a Validator over an index. A nil engine selects the default
// conjugation engine.
func New(index *lexicon.Index, engine *conjugate.Engine) *Validator {
	if engine == nil {
		engine = conjugate.New()
	}
	return &Validator{index: index, engine: engine}
}

// ValidateForm resolves word through the index and checks candidate against
// the canonical form. The candidate is accepted when it matches either the
// script or the reading rendering. An index miss yields an unknown_word
// verdict, not an error; errors are reserved for unsupported tags and
// malformed records.
func (v *Validator) ValidateForm(word string, tag conjugate.FormTag, candidate string) (Verdict, error) {
	rec, ok := v.index.Lookup(word)
	if !ok {
		return Verdict{
			Input:  candidate,
			Issues: []Issue{{Kind: IssueUnknownWord, Word: word}},
		}, nil
	}
	return v.ValidateRecord(rec, tag, candidate)
}

// ValidateRecord is ValidateForm for a caller-supplied record, skipping the
// index.
func (v *Validator) ValidateRecord(rec lexicon.Record, tag conjugate.FormTag, candidate string) (Verdict, error) {
	form, err := v.engine.Conjugate(rec.DictionaryForm, rec.Reading, rec.Class, tag)
	if err != nil {
		return Verdict{}, err
	}

	verdict := Verdict{Input: candidate, Expected: &form}
	if candidate == form.Script || candidate == form.Reading {
		verdict.Valid = true
		return verdict, nil
	}
	verdict.Corrected = form.Script
	verdict.Issues = []Issue{{
		Kind:     IssueWrongForm,
		Word:     rec.DictionaryForm,
		Tag:      tag,
		Expected: &form,
		Found:    candidate,
	}}
	return verdict, nil
}

// ValidateFreeText scans text for each expectation. When the expected form is
// absent but some other form of the same word is present, that occurrence is
// reported as a substitution error and rewritten to the expected script form
// in Corrected. Replacement is literal and first-occurrence only; a surface
// that happens to be a substring of unrelated text will be miscorrected.
// That failure mode is documented, not defended against.
func (v *Validator) ValidateFreeText(text string, expectations []Expectation) (Verdict, error) {
	verdict := Verdict{Input: text, Corrected: text}

	for _, exp := range expectations {
		rec, ok := v.index.Lookup(exp.Word)
		if !ok {
			verdict.Issues = append(verdict.Issues, Issue{Kind: IssueUnknownWord, Word: exp.Word})
			continue
		}
		table, err := v.engine.GenerateAll(rec.DictionaryForm, rec.Reading, rec.Class)
		if err != nil {
			return Verdict{}, err
		}
		expected, ok := table[exp.Tag]
		if !ok {
			return Verdict{}, &conjugate.UnsupportedFormError{Class: rec.Class, Tag: exp.Tag}
		}
		if strings.Contains(verdict.Corrected, expected.Script) ||
			strings.Contains(verdict.Corrected, expected.Reading) {
			continue
		}

		found, foundTag, ok := findAlternateForm(verdict.Corrected, table, exp.Tag, rec.Class)
		if !ok {
			continue
		}
		verdict.Issues = append(verdict.Issues, Issue{
			Kind:     IssueWrongForm,
			Word:     rec.DictionaryForm,
			Tag:      foundTag,
			Expected: &expected,
			Found:    found,
		})
		verdict.Corrected = strings.Replace(verdict.Corrected, found, expected.Script, 1)
	}

	verdict.Valid = len(verdict.Issues) == 0
	if verdict.Valid {
		verdict.Corrected = ""
	}
	return verdict, nil
}

// AutoCorrect validates text and returns it with all detected substitutions
// applied. Valid text comes back unchanged.
func (v *Validator) AutoCorrect(text string, expectations []Expectation) (string, error) {
	verdict, err := v.ValidateFreeText(text, expectations)
	if err != nil {
		return "", err
	}
	if verdict.Valid {
		return text, nil
	}
	return verdict.Corrected, nil
}

// findAlternateForm looks for any non-expected form's surface in text,
// scanning tags in canonical order and preferring script over reading.
func findAlternateForm(text string, table conjugate.Table, skip conjugate.FormTag, class conjugate.Class) (string, conjugate.FormTag, bool) {
	for _, tag := range conjugate.TagsFor(class) {
		if tag == skip {
			continue
		}
		form := table[tag]
		if strings.Contains(text, form.Script) {
			return form.Script, tag, true
		}
		if strings.Contains(text, form.Reading) {
			return form.Reading, tag, true
		}
	}
	return "", "", false
}
