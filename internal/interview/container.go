package interview

import (
	"context"
	"fmt"

	"github.com/preptalk-ai/preptalk-lambda/internal/config"
	"github.com/preptalk-ai/preptalk-lambda/internal/evaluation"
	"github.com/preptalk-ai/preptalk-lambda/internal/llm"
	"github.com/preptalk-ai/preptalk-lambda/internal/prompts"
	"github.com/preptalk-ai/preptalk-lambda/internal/question"
	"github.com/preptalk-ai/preptalk-lambda/internal/speech"
	"github.com/preptalk-ai/preptalk-lambda/internal/transcribe"
)

type Container struct {
	Handler *Handler
	Service Service
	Store   *Store
}

func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	templates, err := prompts.Load(cfg.PromptFile)
	if err != nil {
		return nil, fmt.Errorf("load prompt templates: %w", err)
	}

	provider, err := llm.NewGeminiProvider(ctx, cfg.GeminiModel, cfg.Temperature, cfg.MaxOutputTokens)
	if err != nil {
		return nil, fmt.Errorf("init gemini provider: %w", err)
	}

	synthesizer, err := speech.NewGoogleSynthesizer(ctx, cfg.Voice, cfg.VoiceLanguage)
	if err != nil {
		return nil, fmt.Errorf("init synthesizer: %w", err)
	}

	transcriber, err := transcribe.NewGoogleTranscriber(
		ctx,
		cfg.AudioBucket,
		cfg.SpeechLanguage,
		cfg.SampleRateHertz,
		cfg.PollInterval,
		cfg.PollTimeout,
	)
	if err != nil {
		return nil, fmt.Errorf("init transcriber: %w", err)
	}

	store := NewStore(cfg.SessionTTL)
	service := NewService(
		store,
		question.NewService(provider, templates),
		synthesizer,
		transcriber,
		evaluation.NewService(provider, templates),
	)

	return &Container{
		Handler: NewHandler(service),
		Service: service,
		Store:   store,
	}, nil
}
