package repositories

import (
	"context"

	"google.golang.org/genai"
)

// AIClientConfig is what the Gemini SDK client needs to be built.
type AIClientConfig struct {
	APIKey  string
	BaseURL string
}

// GenAIClientPool hands out one lazily created Gemini SDK client.
type GenAIClientPool interface {
	GetGenAIClient(ctx context.Context) (*genai.Client, error)

	Close() error
}
