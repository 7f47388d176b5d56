package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.NotEmpty(t, cfg.GetModel(TierLite))
	assert.NotEmpty(t, cfg.GetModel(TierStandard))
	assert.NotEmpty(t, cfg.GetModel(TierAdvanced))
}

func TestGetModelFallback(t *testing.T) {
	cfg := &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierStandard: "standard-model",
		},
	}

	// Unconfigured tiers fall back to standard.
	assert.Equal(t, "standard-model", cfg.GetModel(TierAdvanced))
	assert.Equal(t, "standard-model", cfg.GetModel(TierLite))

	cfg = &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite: "lite-model",
		},
	}
	assert.Equal(t, "lite-model", cfg.GetModel(TierAdvanced))

	empty := &Config{Provider: ProviderGemini, Models: map[ModelTier]string{}}
	assert.Equal(t, "", empty.GetModel(TierStandard))
}

func TestWithModel(t *testing.T) {
	base := DefaultConfig()
	custom := base.WithModel(TierAdvanced, "custom-pro")

	assert.Equal(t, "custom-pro", custom.GetModel(TierAdvanced))
	// Original is untouched.
	assert.NotEqual(t, "custom-pro", base.GetModel(TierAdvanced))
	// Other tiers carry over.
	assert.Equal(t, base.GetModel(TierLite), custom.GetModel(TierLite))
}
