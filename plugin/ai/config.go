package ai

import (
	"time"

	"github.com/pkg/errors"

	"github.com/classcal/classcal/internal/profile"
)

// ExtractionConfig holds the vision extraction provider configuration.
type ExtractionConfig struct {
	BaseURL   string
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration

	// MaxImageDim caps the longest side of submitted images; larger
	// uploads are downscaled before encoding to bound request size.
	MaxImageDim int

	// MaxConcurrent caps in-flight extraction calls across requests.
	MaxConcurrent int64
}

// DefaultExtractionConfig returns the default configuration.
func DefaultExtractionConfig() *ExtractionConfig {
	return &ExtractionConfig{
		BaseURL:       "https://api.openai.com/v1",
		Model:         "gpt-4o",
		MaxTokens:     1500,
		Timeout:       60 * time.Second,
		MaxImageDim:   2048,
		MaxConcurrent: 4,
	}
}

// NewExtractionConfigFromProfile builds the configuration from the profile.
func NewExtractionConfigFromProfile(p *profile.Profile) *ExtractionConfig {
	cfg := DefaultExtractionConfig()
	if p.AIBaseURL != "" {
		cfg.BaseURL = p.AIBaseURL
	}
	cfg.APIKey = p.AIAPIKey
	if p.AIModel != "" {
		cfg.Model = p.AIModel
	}
	if p.AIMaxTokens > 0 {
		cfg.MaxTokens = p.AIMaxTokens
	}
	if p.AITimeout > 0 {
		cfg.Timeout = p.AITimeout
	}
	return cfg
}

// Validate checks that the configuration is usable.
func (c *ExtractionConfig) Validate() error {
	if c.APIKey == "" {
		return errors.New("extraction API key is required")
	}
	if c.Model == "" {
		return errors.New("extraction model is required")
	}
	return nil
}
