package embedder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/inkwellhq/inkwell/pkg/embeddings"
)

// MaxInputRunes is the input budget sent to the model server. The MiniLM
// family truncates at a 256-token window; 1200 runes comfortably covers it.
// Longer text is truncated here, explicitly, rather than silently server-side.
const MaxInputRunes = 1200

var (
	// ErrEmptyText is returned when CreateEmbedding is called with empty or blank text.
	ErrEmptyText = errors.New("embedder: text is empty")
	// ErrDimensionMismatch is returned when the server's vector length does not
	// match the configured dimensions (wrong model or wrong column size).
	ErrDimensionMismatch = errors.New("embedder: embedding dimension mismatch")
)

const ollamaRequestTimeout = 30 * time.Second

// OllamaClient generates embeddings via an Ollama-compatible HTTP server.
// The server mean-pools token representations into one vector; the client
// L2-normalizes the result so unit norm holds regardless of server config.
type OllamaClient struct {
	baseURL    string
	model      string
	dimensions int
	http       *http.Client
}

var _ Client = (*OllamaClient)(nil)

type ollamaEmbeddingRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaEmbeddingResponse struct {
	Embedding []float32 `json:"embedding"`
}

// NewOllamaClient creates a client for an Ollama-compatible embedding server.
// The client is process-wide: create it once and share it across requests.
func NewOllamaClient(baseURL, model string, dimensions int) *OllamaClient {
	return &OllamaClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		dimensions: dimensions,
		http: &http.Client{
			Timeout: ollamaRequestTimeout,
		},
	}
}

// CreateEmbedding returns the unit-norm embedding for text.
// Text beyond MaxInputRunes is truncated before the request.
func (c *OllamaClient) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	if runes := []rune(text); len(runes) > MaxInputRunes {
		slog.DebugContext(ctx, "embedder: input truncated",
			"model", c.model, "original_runes", len(runes), "max_runes", MaxInputRunes)
		text = string(runes[:MaxInputRunes])
	}

	body, err := json.Marshal(ollamaEmbeddingRequest{Model: c.model, Prompt: text})
	if err != nil {
		return nil, fmt.Errorf("marshal embedding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build embedding request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call embedding server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("embedding server returned status %d: %s", resp.StatusCode, string(payload))
	}

	var embResp ollamaEmbeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&embResp); err != nil {
		return nil, fmt.Errorf("decode embedding response: %w", err)
	}

	if len(embResp.Embedding) == 0 {
		return nil, errors.New("embedder: no embedding in response")
	}

	if c.dimensions > 0 && len(embResp.Embedding) != c.dimensions {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(embResp.Embedding), c.dimensions)
	}

	embeddings.NormalizeL2(embResp.Embedding)

	return embResp.Embedding, nil
}
