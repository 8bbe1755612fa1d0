package interfaces

import (
	"context"
)

// LLMMode represents the operational mode of the LLM service
type LLMMode string

const (
	// LLMModeCloud indicates the service uses cloud-based LLM APIs
	LLMModeCloud LLMMode = "cloud"

	// LLMModeOffline indicates the service uses local/offline LLM models
	LLMModeOffline LLMMode = "offline"
)

// Message represents a single message in a chat conversation
type Message struct {
	// Role identifies the message sender: "user", "assistant", or "system"
	Role string

	// Content contains the text content of the message
	Content string
}

// LLMService is the generation collaborator. The pipeline supplies a prompt
// context and consumes raw response text or an explicit failure; transport
// retries and timeouts are the implementation's responsibility. A failed or
// absent service is never fatal to callers - it routes them to the
// heuristic fallback paths instead.
type LLMService interface {
	// Chat generates a completion response based on the conversation
	// history. Messages should contain the full context in chronological
	// order, including any system prompt.
	Chat(ctx context.Context, messages []Message) (string, error)

	// HealthCheck verifies the service is operational and can handle
	// requests.
	HealthCheck(ctx context.Context) error

	// GetMode returns the current operational mode of the service.
	GetMode() LLMMode

	// Close releases resources and performs cleanup operations.
	Close() error
}
