package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.EmbeddingHost)
	assert.Equal(t, cfg.EmbeddingHost, cfg.ChatHost)
	assert.Equal(t, 800, cfg.MaxNarrationTokens)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfigOptions(t *testing.T) {
	cfg := NewConfig(
		WithHost("http://models.internal:9100"),
		WithEmbeddingModel("voyage-3-lite"),
		WithChatModel("gpt-4o-mini"),
		WithAPIKey("sk-test"),
		WithMaxNarrationTokens(500),
	)

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://models.internal:9100/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://models.internal:9100/v1", cfg.ChatHost)
	assert.Equal(t, "voyage-3-lite", cfg.EmbeddingModel)
	assert.Equal(t, "gpt-4o-mini", cfg.ChatModel)
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, 500, cfg.MaxNarrationTokens)
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"http://localhost:11434", "http://localhost:11434/v1"},
		{"http://localhost:11434/", "http://localhost:11434/v1"},
		{"http://localhost:11434/v1", "http://localhost:11434/v1"},
	}

	for _, tt := range tests {
		cfg := NewConfig(WithHost(tt.host))
		cfg.Normalize()
		assert.Equal(t, tt.want, cfg.EmbeddingHost, "host=%q", tt.host)
		assert.Equal(t, tt.want, cfg.ChatHost, "host=%q", tt.host)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("missing embedding model", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.EmbeddingModel = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing chat host", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ChatHost = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive narration budget", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MaxNarrationTokens = 0
		assert.Error(t, cfg.Validate())
	})
}
