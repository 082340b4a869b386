package question

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/preptalk-ai/preptalk-lambda/internal/config"
	"github.com/preptalk-ai/preptalk-lambda/internal/llm"
	"github.com/preptalk-ai/preptalk-lambda/internal/prompts"
)

// Count is the number of questions generated per interview.
const Count = 5

type generatedPayload struct {
	Questions []string `json:"questions"`
}

type Service interface {
	Generate(ctx context.Context, jobDescription string) ([]string, error)
}

type service struct {
	provider  llm.Provider
	templates *prompts.Templates
}

func NewService(provider llm.Provider, templates *prompts.Templates) Service {
	return &service{provider: provider, templates: templates}
}

// Generate asks the model for interview questions tailored to the job
// description and returns them in order. Anything other than exactly Count
// questions is a malformed-output error, never a partial result.
func (s *service) Generate(ctx context.Context, jobDescription string) ([]string, error) {
	log := config.WithContext(ctx)

	raw, err := s.provider.Generate(ctx, BuildPrompt(jobDescription, s.templates.Persona))
	if err != nil {
		return nil, fmt.Errorf("question generation: %w", err)
	}

	clean := llm.ExtractJSON(raw)

	var payload generatedPayload
	if err := json.Unmarshal([]byte(clean), &payload); err != nil {
		log.WithError(err).Debugf("unparseable question output: %s", raw)
		return nil, fmt.Errorf("%w: decode questions: %v", llm.ErrMalformedOutput, err)
	}

	if payload.Questions == nil {
		log.Debugf("question output missing questions key: %s", raw)
		return nil, fmt.Errorf("%w: missing questions key", llm.ErrMalformedOutput)
	}
	if len(payload.Questions) != Count {
		log.Debugf("question output with %d questions: %s", len(payload.Questions), raw)
		return nil, fmt.Errorf("%w: expected %d questions, got %d", llm.ErrMalformedOutput, Count, len(payload.Questions))
	}
	for i, q := range payload.Questions {
		if q == "" {
			return nil, fmt.Errorf("%w: question %d is empty", llm.ErrMalformedOutput, i+1)
		}
	}

	log.Infof("generated %d interview questions", len(payload.Questions))
	return payload.Questions, nil
}
