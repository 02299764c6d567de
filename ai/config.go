package ai

import (
	"github.com/pkg/errors"

	"github.com/Atharva2922/notesgenai/ai/core/llm"
	"github.com/Atharva2922/notesgenai/internal/profile"
)

// Config represents AI configuration.
type Config struct {
	LLM     llm.Config
	Enabled bool
}

// NewConfigFromProfile creates AI config from profile.
func NewConfigFromProfile(p *profile.Profile) *Config {
	cfg := &Config{
		Enabled: p.IsAIEnabled(),
	}

	if !cfg.Enabled {
		return cfg
	}

	cfg.LLM = llm.Config{
		Provider:    p.LLMProvider,
		Model:       p.LLMModel,
		APIKey:      p.LLMAPIKey,
		BaseURL:     p.LLMBaseURL,
		MaxTokens:   2048,
		Temperature: 0.7,
		Timeout:     p.LLMTimeout,
	}

	return cfg
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.LLM.Provider == "" {
		return errors.New("LLM provider is required")
	}
	if c.LLM.Provider != "ollama" && c.LLM.APIKey == "" {
		return errors.New("LLM API key is required")
	}
	if c.LLM.Model == "" {
		return errors.New("LLM model is required")
	}

	return nil
}

// NewLLMService creates the LLM service from config. Returns nil when AI is
// disabled so callers can pass it straight into notegen.NewService.
func NewLLMService(cfg *Config) (llm.Service, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	return llm.NewService(&cfg.LLM)
}
