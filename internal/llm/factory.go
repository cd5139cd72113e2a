package llm

import (
	"fmt"

	"github.com/smartdoc-io/smartdoc/internal/config"
)

// NewFromConfig constructs a provider from its configuration entry.
func NewFromConfig(name string, pc *config.Provider) (Provider, error) {
	if pc == nil {
		return nil, fmt.Errorf("no configuration for provider: %s", name)
	}

	switch name {
	case "anthropic":
		return NewAnthropic(pc.APIKey, pc.Model), nil
	case "openai":
		return NewOpenAI(pc.APIKey, pc.Model), nil
	case "gemini":
		return NewGemini(pc.APIKey, pc.Model), nil
	case "ollama":
		return NewOllama(pc.Endpoint, pc.Model), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", name)
	}
}

// NewRegistryFromConfig builds a registry holding one provider per
// configured entry. Entries with unknown provider names are skipped.
func NewRegistryFromConfig(cfg *config.Config) *Registry {
	r := NewRegistry()
	for name := range cfg.Providers {
		pc, _ := cfg.GetProvider(name)
		p, err := NewFromConfig(name, pc)
		if err != nil {
			continue
		}
		_ = r.Register(p)
	}
	return r
}
