// Package llm provides model configuration and a provider-agnostic client
// for the generative steps of the agent: summary rewriting, structured field
// extraction, and the interactive assistant.
package llm

// ModelTier represents the capability level requested for a call.
type ModelTier string

const (
	// TierLite is for cheap tasks: field extraction, short classification.
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: section parsing, chat replies.
	TierStandard ModelTier = "standard"
	// TierAdvanced is for the heavier rewriting passes.
	TierAdvanced ModelTier = "advanced"
)

// Provider identifies an LLM backend.
type Provider string

const (
	// ProviderGemini is the Google Gemini provider.
	ProviderGemini Provider = "gemini"
)

// Config maps model tiers to concrete model names for one provider.
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the default Gemini configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a tier, falling back to standard and
// then lite when the requested tier is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of the config with one tier overridden.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	next := &Config{
		Provider: c.Provider,
		Models:   make(map[ModelTier]string, len(c.Models)+1),
	}
	for k, v := range c.Models {
		next.Models[k] = v
	}
	next.Models[tier] = model
	return next
}
