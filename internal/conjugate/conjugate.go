// Package conjugate generates Japanese verb and adjective inflections.
//
// Conjugation runs on the phonetic reading; the written (script) form is
// derived afterwards by grafting the mutated kana tail onto the script stem.
// The romanized field always comes from romanizing the reading, never the
// script.
package conjugate

import (
	"fmt"
	"strings"

	"github.com/ymaeda/katsuyo/internal/kana"
)

// Class is a word's inflection class.
type Class string

const (
	ClassGodan       Class = "godan"
	ClassIchidan     Class = "ichidan"
	ClassSuru        Class = "suru"
	ClassKuru        Class = "kuru"
	ClassIAdjective  Class = "i-adjective"
	ClassNaAdjective Class = "na-adjective"
)

// Valid reports whether c is one of the known inflection classes.
func (c Class) Valid() bool {
	switch c {
	case ClassGodan, ClassIchidan, ClassSuru, ClassKuru, ClassIAdjective, ClassNaAdjective:
		return true
	}
	return false
}

// IsVerb reports whether c is a verb class.
func (c Class) IsVerb() bool {
	switch c {
	case ClassGodan, ClassIchidan, ClassSuru, ClassKuru:
		return true
	}
	return false
}

// FormTag names one inflected form.
type FormTag string

const (
	FormDictionary       FormTag = "dictionary"
	FormNegative         FormTag = "negative"
	FormPast             FormTag = "past"
	FormPastNegative     FormTag = "past_negative"
	FormTe               FormTag = "te"
	FormMasu             FormTag = "masu"
	FormMasuNegative     FormTag = "masu_negative"
	FormMasuPast         FormTag = "masu_past"
	FormMasuPastNegative FormTag = "masu_past_negative"
	FormPotential        FormTag = "potential"
	FormPassive          FormTag = "passive"
	FormCausative        FormTag = "causative"
	FormImperative       FormTag = "imperative"
	FormVolitional       FormTag = "volitional"
	FormBa               FormTag = "ba"
	FormTara             FormTag = "tara"
	FormProhibitive      FormTag = "prohibitive"
	FormTai              FormTag = "tai"
	FormAdverbial        FormTag = "adverbial"
)

// verbTags is the closed tag set for every verb class, in canonical order.
var verbTags = []FormTag{
	FormDictionary, FormNegative, FormPast, FormPastNegative, FormTe,
	FormMasu, FormMasuNegative, FormMasuPast, FormMasuPastNegative,
	FormPotential, FormPassive, FormCausative, FormImperative,
	FormVolitional, FormBa, FormTara, FormProhibitive, FormTai,
}

// adjectiveTags is the closed tag set for both adjective classes.
var adjectiveTags = []FormTag{
	FormDictionary, FormNegative, FormPast, FormPastNegative, FormTe,
	FormAdverbial, FormBa, FormTara,
}

// TagsFor returns the fixed, ordered tag set for a class. It returns nil for
// an unknown class.
func TagsFor(class Class) []FormTag {
	switch {
	case class.IsVerb():
		return verbTags
	case class == ClassIAdjective || class == ClassNaAdjective:
		return adjectiveTags
	}
	return nil
}

// Form is one inflected surface form.
type Form struct {
	Script    string `json:"script"`
	Reading   string `json:"reading"`
	Romanized string `json:"romanized"`
}

// Table maps every tag in a class's fixed set to its form. Iterate it in
// TagsFor order when ordering matters.
type Table map[FormTag]Form

// UnsupportedFormError signals a tag outside the class's fixed set. This is a
// caller bug, not bad data.
type UnsupportedFormError struct {
	Class Class
	Tag   FormTag
}

func (e *UnsupportedFormError) Error() string {
	return fmt.Sprintf("form %q is not defined for class %q", e.Tag, e.Class)
}

// ShapeError signals a dictionary-form/reading pair inconsistent with its
// declared class, e.g. a godan reading not ending in a consonant-row mora.
// It is surfaced to the data-import layer, never coerced.
type ShapeError struct {
	DictForm string
	Reading  string
	Class    Class
	Reason   string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("word %q (reading %q) does not fit class %q: %s",
		e.DictForm, e.Reading, e.Class, e.Reason)
}

// Engine derives conjugation tables. The zero value is not usable; construct
// with New. Engines are immutable after construction and safe for concurrent
// use.
type Engine struct {
	teExceptions map[string]string
}

// Option configures an Engine.
type Option func(*Engine)

// WithTeExceptions replaces the lexical exception table for the godan te/ta
// series. Keys are dictionary forms, values the overriding te-series suffix
// (て/で included). The default table holds 行く and its kana spelling.
func WithTeExceptions(table map[string]string) Option {
	return func(e *Engine) {
		e.teExceptions = table
	}
}

// defaultTeExceptions covers verbs that ignore the regular k-row euphonic
// rule and geminate instead.
var defaultTeExceptions = map[string]string{
	"行く": "って",
	"いく": "って",
}

// New returns an Engine with the default exception table unless overridden.
func New(opts ...Option) *Engine {
	e := &Engine{teExceptions: defaultTeExceptions}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = New()

// Conjugate derives a single form using the default engine.
func Conjugate(dictForm, reading string, class Class, tag FormTag) (Form, error) {
	return defaultEngine.Conjugate(dictForm, reading, class, tag)
}

// GenerateAll derives the full table using the default engine.
func GenerateAll(dictForm, reading string, class Class) (Table, error) {
	return defaultEngine.GenerateAll(dictForm, reading, class)
}

// Conjugate derives the form named by tag for the given word.
func (e *Engine) Conjugate(dictForm, reading string, class Class, tag FormTag) (Form, error) {
	w, err := e.analyze(dictForm, reading, class)
	if err != nil {
		return Form{}, err
	}
	if !tagSupported(class, tag) {
		return Form{}, &UnsupportedFormError{Class: class, Tag: tag}
	}
	return w.form(tag), nil
}

// GenerateAll derives every form in the class's fixed tag set. The returned
// table always contains exactly TagsFor(class).
func (e *Engine) GenerateAll(dictForm, reading string, class Class) (Table, error) {
	w, err := e.analyze(dictForm, reading, class)
	if err != nil {
		return nil, err
	}
	tags := TagsFor(class)
	table := make(Table, len(tags))
	for _, tag := range tags {
		table[tag] = w.form(tag)
	}
	return table, nil
}

func tagSupported(class Class, tag FormTag) bool {
	for _, t := range TagsFor(class) {
		if t == tag {
			return true
		}
	}
	return false
}

// word is an analyzed input ready for form derivation.
type word struct {
	dictForm string
	reading  string
	class    Class
	engine   *Engine

	// stemLen is the number of leading reading runes that survive every
	// inflection. Used for script grafting.
	stemLen int
}

// analyze validates the word's shape against its class and precomputes the
// invariant stem length.
func (e *Engine) analyze(dictForm, reading string, class Class) (*word, error) {
	if !class.Valid() {
		return nil, &ShapeError{DictForm: dictForm, Reading: reading, Class: class, Reason: "unknown inflection class"}
	}
	if !kana.IsKana(reading) {
		return nil, &ShapeError{DictForm: dictForm, Reading: reading, Class: class, Reason: "reading must be kana only"}
	}
	w := &word{dictForm: dictForm, reading: reading, class: class, engine: e}
	runes := []rune(reading)
	n := len(runes)

	switch class {
	case ClassGodan:
		if _, ok := godanRows[runes[n-1]]; !ok {
			return nil, &ShapeError{DictForm: dictForm, Reading: reading, Class: class, Reason: "final mora is not a u-row consonant mora"}
		}
		w.stemLen = n - 1
	case ClassIchidan:
		if n < 2 || runes[n-1] != 'る' {
			return nil, &ShapeError{DictForm: dictForm, Reading: reading, Class: class, Reason: "reading does not end in る"}
		}
		w.stemLen = n - 1
	case ClassSuru:
		if n < 2 || !strings.HasSuffix(reading, "する") {
			return nil, &ShapeError{DictForm: dictForm, Reading: reading, Class: class, Reason: "reading does not end in する"}
		}
		w.stemLen = n - 2
	case ClassKuru:
		if n < 2 || !strings.HasSuffix(reading, "くる") {
			return nil, &ShapeError{DictForm: dictForm, Reading: reading, Class: class, Reason: "reading does not end in くる"}
		}
		w.stemLen = n - 2
	case ClassIAdjective:
		if n < 2 || runes[n-1] != 'い' {
			return nil, &ShapeError{DictForm: dictForm, Reading: reading, Class: class, Reason: "reading does not end in い"}
		}
		w.stemLen = n - 1
	case ClassNaAdjective:
		// The stem never mutates; the copula carries all inflection.
		w.stemLen = n
	}
	return w, nil
}

// form derives one form. The tag is known to be in the class's set.
func (w *word) form(tag FormTag) Form {
	var readingForm string
	switch w.class {
	case ClassGodan:
		readingForm = w.godanReading(tag)
	case ClassIchidan:
		readingForm = w.ichidanReading(tag)
	case ClassSuru:
		readingForm = w.stem() + suruParadigm[tag]
	case ClassKuru:
		return w.kuruForm(tag)
	case ClassIAdjective:
		readingForm = w.iAdjectiveReading(tag)
	case ClassNaAdjective:
		readingForm = w.stem() + naAdjectiveSuffixes[tag]
	}
	return Form{
		Script:    w.scriptFor(readingForm),
		Reading:   readingForm,
		Romanized: kana.Romanize(readingForm),
	}
}

// stem returns the invariant leading portion of the reading.
func (w *word) stem() string {
	return string([]rune(w.reading)[:w.stemLen])
}

// scriptFor grafts the mutated reading tail onto the script stem. When the
// script does not share the reading's trailing kana (script and reading
// diverge beyond the mutated tail), it falls back to the kana rendering.
func (w *word) scriptFor(readingForm string) string {
	tail := string([]rune(w.reading)[w.stemLen:])
	newTail := string([]rune(readingForm)[w.stemLen:])
	if strings.HasSuffix(w.dictForm, tail) {
		return strings.TrimSuffix(w.dictForm, tail) + newTail
	}
	return readingForm
}
