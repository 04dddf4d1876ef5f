package imagegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnvModelDefaults(t *testing.T) {
	cfg, err := LoadConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "dall-e-3", cfg.ImageModel)
	assert.Equal(t, "1024x1024", cfg.ImageSize)
	assert.Equal(t, "gpt-4o-mini", cfg.ChatModel)
}

func TestLoadConfigFromEnvOverrides(t *testing.T) {
	t.Setenv("PROMPTGEN_IMAGE_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PROMPTGEN_SEED", "99")

	cfg, err := LoadConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, int64(99), cfg.Seed)
}

func TestLoadConfigFromEnvRejectsBadSeed(t *testing.T) {
	t.Setenv("PROMPTGEN_SEED", "not-a-number")

	_, err := LoadConfigFromEnv()
	assert.Error(t, err)
}
