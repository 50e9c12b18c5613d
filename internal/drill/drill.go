// Package drill generates practice sentences with an LLM and reviews them
// against the conjugation engine. Every generated sentence is validated; bad
// conjugations are auto-corrected rather than shown to a learner.
package drill

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/ymaeda/katsuyo/internal/conjugate"
	"github.com/ymaeda/katsuyo/internal/llm"
	"github.com/ymaeda/katsuyo/internal/validate"
)

// Request asks for sentences exercising one word in one form.
type Request struct {
	Word string            `json:"word"`
	Tag  conjugate.FormTag `json:"form"`
}

// Sentence is one raw model-produced sentence.
type Sentence struct {
	Text string            `json:"text"`
	Word string            `json:"word"`
	Form conjugate.FormTag `json:"form"`
}

// Reviewed is a sentence after validation. Corrected is empty when the model
// conjugated correctly.
type Reviewed struct {
	Sentence
	Valid     bool             `json:"valid"`
	Corrected string           `json:"corrected,omitempty"`
	Issues    []validate.Issue `json:"issues,omitempty"`
}

type Generator struct {
	llm       llm.Client
	validator *validate.Validator
}

func NewGenerator(client llm.Client, validator *validate.Validator) *Generator {
	return &Generator{llm: client, validator: validator}
}

const systemPrompt = `You are writing short, natural Japanese practice sentences for language learners.

For each requested word and grammatical form, write one sentence that uses the word in exactly that form.

Respond ONLY with a JSON array, no other text. Example:
[
  {"text": "毎朝コーヒーを飲みます。", "word": "飲む", "form": "masu"},
  {"text": "手紙を書いてください。", "word": "書く", "form": "te"}
]`

// Generate asks the model for one sentence per request and reviews each
// against the canonical conjugation table.
func (g *Generator) Generate(ctx context.Context, requests []Request) ([]Reviewed, error) {
	if len(requests) == 0 {
		return nil, nil
	}

	var sb strings.Builder
	sb.WriteString("Write one sentence for each of these:\n")
	for _, req := range requests {
		fmt.Fprintf(&sb, "- word %s in the %s form\n", req.Word, req.Tag)
	}

	text, err := g.llm.Complete(ctx, systemPrompt, sb.String())
	if err != nil {
		return nil, err
	}

	var sentences []Sentence
	if err := json.Unmarshal([]byte(text), &sentences); err != nil {
		return nil, fmt.Errorf("parsing drill response: %w (response: %s)", err, text)
	}

	return g.review(sentences)
}

func (g *Generator) review(sentences []Sentence) ([]Reviewed, error) {
	reviewed := make([]Reviewed, 0, len(sentences))
	for _, s := range sentences {
		verdict, err := g.validator.ValidateFreeText(s.Text, []validate.Expectation{
			{Word: s.Word, Tag: s.Form},
		})
		if err != nil {
			return nil, fmt.Errorf("reviewing sentence %q: %w", s.Text, err)
		}
		r := Reviewed{Sentence: s, Valid: verdict.Valid, Issues: verdict.Issues}
		if !verdict.Valid {
			r.Corrected = verdict.Corrected
		}
		reviewed = append(reviewed, r)
	}
	return reviewed, nil
}

// CorrectedTexts returns the learner-facing sentence texts with corrections
// already applied.
func CorrectedTexts(reviewed []Reviewed) []string {
	return lo.Map(reviewed, func(r Reviewed, _ int) string {
		if r.Corrected != "" {
			return r.Corrected
		}
		return r.Text
	})
}
