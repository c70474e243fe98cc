package embedder

import (
	"context"
	"crypto/sha256"
	"strings"

	"github.com/inkwellhq/inkwell/pkg/embeddings"
)

// MockClient is a deterministic in-process embedder for tests and local
// development without a model server. Each whitespace-delimited word hashes
// to a pseudo token vector; the token vectors are mean-pooled and
// L2-normalized, mirroring the production pipeline's shape.
type MockClient struct {
	dimensions int
}

var _ Client = (*MockClient)(nil)

// NewMockClient creates a mock embedding client with the given dimensions.
func NewMockClient(dimensions int) *MockClient {
	return &MockClient{dimensions: dimensions}
}

// CreateEmbedding generates a deterministic unit-norm embedding from text.
func (c *MockClient) CreateEmbedding(_ context.Context, text string) ([]float32, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, ErrEmptyText
	}

	tokens := make([][]float32, len(words))
	for i, word := range words {
		tokens[i] = c.tokenVector(word)
	}

	vec := embeddings.MeanPool(tokens)
	embeddings.NormalizeL2(vec)

	return vec, nil
}

// tokenVector maps one word to a fixed vector from its SHA-256 hash, with
// each component in [-1, 1].
func (c *MockClient) tokenVector(word string) []float32 {
	hash := sha256.Sum256([]byte(word))
	vec := make([]float32, c.dimensions)

	for i := range vec {
		b := hash[i%len(hash)]
		vec[i] = (float32(b) / 127.5) - 1.0
	}

	return vec
}
