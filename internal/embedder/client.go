// Package embedder provides clients that turn text into fixed-length,
// unit-norm embedding vectors for semantic search.
package embedder

import (
	"context"
	"fmt"
)

// Client generates an embedding vector for text.
// Implementations must be safe for concurrent use and deterministic for a
// fixed model: identical input yields the same vector within float tolerance.
type Client interface {
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// New creates a Client for the given provider ("ollama" or "mock").
func New(provider, baseURL, model string, dimensions int) (Client, error) {
	switch provider {
	case "ollama":
		return NewOllamaClient(baseURL, model, dimensions), nil
	case "mock":
		return NewMockClient(dimensions), nil
	default:
		return nil, fmt.Errorf("unsupported embedder provider: %s (supported: ollama, mock)", provider)
	}
}
