package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/preptalk-ai/preptalk-lambda/internal/config"
	"google.golang.org/genai"
)

// ErrMalformedOutput marks model responses that are not valid JSON after
// fence-stripping or are missing required keys. Callers must never default
// such responses to empty results.
var ErrMalformedOutput = errors.New("malformed model output")

// Provider sends a prompt to a text-generation model and returns its raw output.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type geminiProvider struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
}

// NewGeminiProvider creates a Provider backed by the Gemini API. Credentials
// come from the environment (GEMINI_API_KEY or application default credentials).
func NewGeminiProvider(ctx context.Context, model string, temperature float32, maxTokens int32) (Provider, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &geminiProvider{
		client:      client,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}, nil
}

func (p *geminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	log := config.WithContext(ctx)

	result, err := p.client.Models.GenerateContent(
		ctx,
		p.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr(p.temperature),
			MaxOutputTokens: p.maxTokens,
		},
	)
	if err != nil {
		log.WithError(err).Error("gemini generate content failed")
		return "", fmt.Errorf("generate content: %w", err)
	}

	raw := result.Text()
	if raw == "" {
		return "", errors.New("empty response from model")
	}

	return raw, nil
}
