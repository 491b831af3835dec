// Package ai wraps the vision-capable language model used to extract
// structured schedule data from photographed class schedules.
package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/sync/semaphore"

	pipeerr "github.com/classcal/classcal/internal/errors"
)

// ExtractionService turns an uploaded schedule image into the model's
// free-form text response, presumed to contain a JSON object under an
// "events" key. It is an interface so the concrete provider can be
// substituted or faked in tests without touching the pipeline.
type ExtractionService interface {
	ExtractSchedule(ctx context.Context, imagePath string) (string, error)
}

type openAIExtractor struct {
	client *openai.Client
	config *ExtractionConfig
	// sem caps concurrent vision calls across requests.
	sem *semaphore.Weighted
	now func() time.Time
}

// NewExtractionService creates an OpenAI-backed extraction service.
func NewExtractionService(cfg *ExtractionConfig) (ExtractionService, error) {
	if cfg == nil {
		cfg = DefaultExtractionConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultExtractionConfig().MaxConcurrent
	}

	return &openAIExtractor{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
		sem:    semaphore.NewWeighted(maxConcurrent),
		now:    time.Now,
	}, nil
}

// ExtractSchedule reads the image, encodes it into a data URL, and performs
// one vision chat completion. No retries: a slow or failed call fails only
// the request that made it.
func (e *openAIExtractor) ExtractSchedule(ctx context.Context, imagePath string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", pipeerr.ExtractionFailed("failed to read uploaded image", err)
	}

	mimeType, err := mimeTypeForPath(imagePath)
	if err != nil {
		return "", err
	}
	data, mimeType = NormalizeImage(data, mimeType, e.config.MaxImageDim)

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))

	if err := e.sem.Acquire(ctx, 1); err != nil {
		return "", pipeerr.ContextCanceled(err)
	}
	defer e.sem.Release(1)

	ctx, cancel := context.WithTimeout(ctx, e.config.Timeout)
	defer cancel()

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     e.config.Model,
		MaxTokens: e.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: buildPrompt(e.now()),
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL,
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return "", pipeerr.ExtractionFailed("vision extraction call failed", err)
	}
	if len(resp.Choices) == 0 {
		return "", pipeerr.ExtractionFailed("vision extraction returned no choices", nil)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// mimeTypeForPath derives the image MIME type from the stored upload's
// extension. The HTTP boundary has already rejected other content types, so
// an unknown extension here indicates an inconsistent upload.
func mimeTypeForPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg", nil
	case ".png":
		return "image/png", nil
	default:
		return "", pipeerr.InvalidInput(fmt.Sprintf("unsupported image type %q", filepath.Ext(path)))
	}
}
