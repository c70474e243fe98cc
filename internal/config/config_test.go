package config

import (
	"testing"
)

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		shouldSet    bool
		want         string
	}{
		{
			name:         "returns environment variable when set",
			key:          "TEST_VAR",
			defaultValue: "default",
			envValue:     "custom",
			shouldSet:    true,
			want:         "custom",
		},
		{
			name:         "returns default when environment variable not set",
			key:          "TEST_VAR_MISSING",
			defaultValue: "default",
			envValue:     "",
			shouldSet:    false,
			want:         "default",
		},
		{
			name:         "returns default when environment variable is empty string",
			key:          "TEST_VAR_EMPTY",
			defaultValue: "default",
			envValue:     "",
			shouldSet:    true,
			want:         "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				t.Setenv(tt.key, tt.envValue)
			}

			got := getEnv(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvAsInt(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue int
		envValue     string
		shouldSet    bool
		want         int
	}{
		{
			name:         "returns environment variable as int when set with valid integer",
			key:          "TEST_INT_VAR",
			defaultValue: 100,
			envValue:     "200",
			shouldSet:    true,
			want:         200,
		},
		{
			name:         "returns default when environment variable not set",
			key:          "TEST_INT_VAR_MISSING",
			defaultValue: 100,
			envValue:     "",
			shouldSet:    false,
			want:         100,
		},
		{
			name:         "returns default when environment variable is not a valid integer",
			key:          "TEST_INT_VAR_INVALID",
			defaultValue: 100,
			envValue:     "not-a-number",
			shouldSet:    true,
			want:         100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				t.Setenv(tt.key, tt.envValue)
			}

			got := getEnvAsInt(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnvAsInt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvAsFloat(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue float64
		envValue     string
		shouldSet    bool
		want         float64
	}{
		{
			name:         "returns environment variable as float when set",
			key:          "TEST_FLOAT_VAR",
			defaultValue: 0.5,
			envValue:     "0.75",
			shouldSet:    true,
			want:         0.75,
		},
		{
			name:         "returns default when environment variable not set",
			key:          "TEST_FLOAT_VAR_MISSING",
			defaultValue: 0.5,
			envValue:     "",
			shouldSet:    false,
			want:         0.5,
		},
		{
			name:         "returns default when environment variable is not a valid float",
			key:          "TEST_FLOAT_VAR_INVALID",
			defaultValue: 0.5,
			envValue:     "abc",
			shouldSet:    true,
			want:         0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				t.Setenv(tt.key, tt.envValue)
			}

			got := getEnvAsFloat(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnvAsFloat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("fails when API_KEY is not set", func(t *testing.T) {
		t.Setenv("API_KEY", "")

		_, err := Load()
		if err == nil {
			t.Fatal("expected error when API_KEY is missing")
		}
	})

	t.Run("applies defaults when only API_KEY is set", func(t *testing.T) {
		t.Setenv("API_KEY", "test-key")
		t.Setenv("EMBEDDER_PROVIDER", "")
		t.Setenv("EMBEDDING_DIMENSIONS", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}

		if cfg.Port != "8080" {
			t.Errorf("Port = %v, want 8080", cfg.Port)
		}
		if cfg.EmbedderProvider != "ollama" {
			t.Errorf("EmbedderProvider = %v, want ollama", cfg.EmbedderProvider)
		}
		if cfg.EmbeddingDimensions != 384 {
			t.Errorf("EmbeddingDimensions = %v, want 384", cfg.EmbeddingDimensions)
		}
	})

	t.Run("rejects unknown embedder provider", func(t *testing.T) {
		t.Setenv("API_KEY", "test-key")
		t.Setenv("EMBEDDER_PROVIDER", "carrier-pigeon")

		_, err := Load()
		if err == nil {
			t.Fatal("expected error for unknown EMBEDDER_PROVIDER")
		}
	})

	t.Run("rejects out-of-range score threshold", func(t *testing.T) {
		t.Setenv("API_KEY", "test-key")
		t.Setenv("EMBEDDER_PROVIDER", "mock")
		t.Setenv("SEARCH_SCORE_THRESHOLD", "1.5")

		_, err := Load()
		if err == nil {
			t.Fatal("expected error for SEARCH_SCORE_THRESHOLD > 1")
		}
	})
}
