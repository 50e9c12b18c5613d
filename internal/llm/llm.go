package llm

import (
	"context"
	"strings"
)

// Client is the minimal completion surface the drill generator needs.
// Implementations live in internal/anthropic and internal/google.
type Client interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// StripCodeFence removes a ```...``` wrapper from a model response, including
// a language hint on the opening fence. Responses without a fence pass
// through unchanged.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	if idx := strings.Index(text, "\n"); idx != -1 {
		text = text[idx+1:]
	}
	if idx := strings.LastIndex(text, "```"); idx != -1 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
