// Package nlintake turns free-form natural language into draft task
// candidates via an LLM, for the CLI's optional `add` command. It
// never runs scheduling itself: intake.go returns ordinary task.Task
// values, which the CLI saves through the repository's SaveAll, the
// same way an import from internal/taskio is saved.
//
// The transport layer (this file, factory.go, copilot.go, token.go,
// ollama.go, lmstudio.go) is domain-agnostic chat plumbing. The
// decomposition prompt and retry/validation loop (intake.go,
// validator.go) target draft tasks rather than time-block placements.
package nlintake

import (
	"context"
)

// Message represents a chat message exchanged with an LLM provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client defines the interface implemented by each LLM provider
// backend.
type Client interface {
	// Chat sends messages to the LLM and returns the raw response text.
	Chat(ctx context.Context, messages []Message) (string, error)

	// ChatJSON sends messages and parses the response as JSON into result.
	ChatJSON(ctx context.Context, messages []Message, result any) error
}
