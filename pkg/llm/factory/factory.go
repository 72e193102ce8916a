package factory

import (
	"fmt"

	"promptlycoach-be/pkg/llm"
	"promptlycoach-be/pkg/llm/openai"
)

const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case ProviderOpenAI, "":
		return openai.NewOpenAIProvider(baseURL, apiKey, modelName), nil
	case ProviderOllama:
		if baseURL == "" {
			baseURL = "http://localhost:11434/v1"
		}
		return openai.NewOpenAIProvider(baseURL, apiKey, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}

// RequiresAPIKey reports whether requests to this provider must carry a key.
func RequiresAPIKey(providerType string) bool {
	return providerType == ProviderOpenAI || providerType == ""
}
