package evaluation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/preptalk-ai/preptalk-lambda/internal/config"
	"github.com/preptalk-ai/preptalk-lambda/internal/llm"
	"github.com/preptalk-ai/preptalk-lambda/internal/prompts"
)

// ErrIncompleteTranscript is returned when evaluation is requested before
// both questions and answers exist.
var ErrIncompleteTranscript = errors.New("transcript is incomplete")

type Service interface {
	Evaluate(ctx context.Context, questions, answers []string) (*Result, error)
}

type service struct {
	provider  llm.Provider
	templates *prompts.Templates
}

func NewService(provider llm.Provider, templates *prompts.Templates) Service {
	return &service{provider: provider, templates: templates}
}

// Evaluate scores the transcript against the rubric. The returned Result
// echoes the question and answer sequences exactly as given, so repeated
// calls on unchanged state produce an identical transcript echo.
func (s *service) Evaluate(ctx context.Context, questions, answers []string) (*Result, error) {
	if len(questions) == 0 || len(answers) == 0 {
		return nil, ErrIncompleteTranscript
	}

	log := config.WithContext(ctx)

	prompt := BuildPrompt(questions, answers, s.templates.Rubric, s.templates.EvaluationFormat)
	raw, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("evaluation: %w", err)
	}

	clean := llm.ExtractJSON(raw)

	var payload evaluationPayload
	if err := json.Unmarshal([]byte(clean), &payload); err != nil {
		log.WithError(err).Debugf("unparseable evaluation output: %s", raw)
		return nil, fmt.Errorf("%w: decode evaluation: %v", llm.ErrMalformedOutput, err)
	}

	if payload.TotalScore == nil {
		log.Debugf("evaluation output missing total_score: %s", raw)
		return nil, fmt.Errorf("%w: missing total_score key", llm.ErrMalformedOutput)
	}
	if len(payload.Feedback) != FeedbackCount {
		log.Debugf("evaluation output with %d feedback items: %s", len(payload.Feedback), raw)
		return nil, fmt.Errorf("%w: expected %d feedback items, got %d", llm.ErrMalformedOutput, FeedbackCount, len(payload.Feedback))
	}

	log.Infof("evaluated transcript of %d questions, score %.0f", len(questions), float64(*payload.TotalScore))

	return &Result{
		TotalScore: float64(*payload.TotalScore),
		Feedback:   payload.Feedback,
		Questions:  questions,
		Answers:    answers,
	}, nil
}
