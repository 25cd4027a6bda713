package llm

import (
	"context"
	"time"
)

// Adapter defines the interface for LLM providers. A single prompt goes in,
// the complete free-text completion comes back. No streaming.
type Adapter interface {
	// Generate sends the prompt and returns the full completion text
	Generate(ctx context.Context, prompt string) (string, error)

	// ModelName returns the current model name
	ModelName() string

	// IsAvailable checks if the adapter is properly configured and available
	IsAvailable() bool
}

// AdapterConfig contains common configuration for LLM adapters
type AdapterConfig struct {
	Model   string
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// DefaultTimeout for LLM requests
const DefaultTimeout = 30 * time.Second
