package interview

import (
	"context"
	"fmt"

	"github.com/preptalk-ai/preptalk-lambda/internal/config"
	"github.com/preptalk-ai/preptalk-lambda/internal/evaluation"
	"github.com/preptalk-ai/preptalk-lambda/internal/question"
	"github.com/preptalk-ai/preptalk-lambda/internal/speech"
	"github.com/preptalk-ai/preptalk-lambda/internal/transcribe"
)

// GeneratedQuestion pairs a question's text with its synthesized audio. A
// failed synthesis carries the per-item error and empty audio.
type GeneratedQuestion struct {
	Text  string
	Audio []byte
	Err   error
}

// StartResult is the outcome of starting (or restarting) an interview.
type StartResult struct {
	SessionID string
	Questions []GeneratedQuestion
}

type Service interface {
	// Start generates questions for the job description and synthesizes each
	// to audio. With a session ID it resets that session; otherwise it creates
	// a new one.
	Start(ctx context.Context, sessionID, jobDescription string) (*StartResult, error)
	// AppendAnswer transcribes the audio and appends the transcript to the
	// session's answers in arrival order.
	AppendAnswer(ctx context.Context, sessionID string, audio []byte) (string, error)
	// Evaluate scores the session's transcript. Repeatable; it does not
	// change session state.
	Evaluate(ctx context.Context, sessionID string) (*evaluation.Result, error)
}

type service struct {
	store       *Store
	questions   question.Service
	synthesizer speech.Synthesizer
	transcriber transcribe.Transcriber
	evaluator   evaluation.Service
}

func NewService(
	store *Store,
	questions question.Service,
	synthesizer speech.Synthesizer,
	transcriber transcribe.Transcriber,
	evaluator evaluation.Service,
) Service {
	return &service{
		store:       store,
		questions:   questions,
		synthesizer: synthesizer,
		transcriber: transcriber,
		evaluator:   evaluator,
	}
}

func (s *service) Start(ctx context.Context, sessionID, jobDescription string) (*StartResult, error) {
	log := config.WithContext(ctx)

	var session *Session
	if sessionID != "" {
		existing, ok := s.store.Get(sessionID)
		if !ok {
			return nil, ErrSessionNotFound
		}
		session = existing
	} else {
		session = s.store.Create()
	}

	questions, err := s.questions.Generate(ctx, jobDescription)
	if err != nil {
		return nil, err
	}

	// Questions land before synthesis so a partial audio failure still leaves
	// a usable session.
	session.SetQuestions(questions)

	results := speech.SynthesizeAll(ctx, s.synthesizer, questions)

	generated := make([]GeneratedQuestion, len(questions))
	failed := 0
	for i, q := range questions {
		generated[i] = GeneratedQuestion{Text: q, Audio: results[i].Audio, Err: results[i].Err}
		if results[i].Err != nil {
			failed++
			log.WithError(results[i].Err).Warnf("synthesis failed for question %d", i+1)
		}
	}
	log.Infof("session %s started with %d questions, %d synthesis failures", session.ID, len(questions), failed)

	return &StartResult{SessionID: session.ID, Questions: generated}, nil
}

func (s *service) AppendAnswer(ctx context.Context, sessionID string, audio []byte) (string, error) {
	session, ok := s.store.Get(sessionID)
	if !ok {
		return "", ErrSessionNotFound
	}

	// Reject early so an over-limit answer never spends a transcription call.
	switch session.State() {
	case StateEmpty:
		return "", ErrNoQuestions
	case StateReadyToEvaluate:
		return "", ErrAnswerLimit
	}

	transcript, err := s.transcriber.Transcribe(ctx, audio)
	if err != nil {
		return "", fmt.Errorf("transcribe answer: %w", err)
	}

	if err := session.AppendAnswer(transcript); err != nil {
		return "", err
	}

	config.WithContext(ctx).Infof("session %s answer recorded, %d characters", sessionID, len(transcript))
	return transcript, nil
}

func (s *service) Evaluate(ctx context.Context, sessionID string) (*evaluation.Result, error) {
	session, ok := s.store.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	questions, answers := session.Transcript()
	return s.evaluator.Evaluate(ctx, questions, answers)
}
