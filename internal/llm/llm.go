package llm

import (
	"fmt"
)

// creates the text generator for the configured provider
func NewTextGenerator(config *Config) (TextGenerator, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	if config.APIKey == "" {
		return nil, fmt.Errorf("api key is required for provider %s", config.Provider)
	}

	switch config.Provider {
	case ProviderGemini, ProviderOpenAI, "":
		return NewOpenAIGenerator(*config), nil
	case ProviderAnthropic:
		return NewAnthropicGenerator(*config), nil
	default:
		return nil, fmt.Errorf("unsupported generator provider: %s", config.Provider)
	}
}
