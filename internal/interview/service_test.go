package interview

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/preptalk-ai/preptalk-lambda/internal/evaluation"
)

var fiveQuestions = []string{"q1", "q2", "q3", "q4", "q5"}

type stubQuestionService struct {
	questions []string
	err       error
	calls     int
}

func (s *stubQuestionService) Generate(context.Context, string) ([]string, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.questions, nil
}

type stubSynthesizer struct {
	failOn map[string]error
}

func (s *stubSynthesizer) Synthesize(_ context.Context, text string) ([]byte, error) {
	if err, ok := s.failOn[text]; ok {
		return nil, err
	}
	return []byte("audio:" + text), nil
}

type stubTranscriber struct {
	transcript string
	err        error
	calls      int
}

func (s *stubTranscriber) Transcribe(context.Context, []byte) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.transcript, nil
}

type stubEvaluator struct {
	lastQuestions []string
	lastAnswers   []string
}

func (s *stubEvaluator) Evaluate(_ context.Context, questions, answers []string) (*evaluation.Result, error) {
	if len(questions) == 0 || len(answers) == 0 {
		return nil, evaluation.ErrIncompleteTranscript
	}
	s.lastQuestions = questions
	s.lastAnswers = answers
	return &evaluation.Result{
		TotalScore: 80,
		Feedback:   []string{"f1", "f2", "f3", "f4", "f5"},
		Questions:  questions,
		Answers:    answers,
	}, nil
}

type serviceFixture struct {
	service     Service
	store       *Store
	questions   *stubQuestionService
	synthesizer *stubSynthesizer
	transcriber *stubTranscriber
	evaluator   *stubEvaluator
}

func newFixture() *serviceFixture {
	f := &serviceFixture{
		store:       NewStore(time.Hour),
		questions:   &stubQuestionService{questions: fiveQuestions},
		synthesizer: &stubSynthesizer{},
		transcriber: &stubTranscriber{transcript: "spoken answer"},
		evaluator:   &stubEvaluator{},
	}
	f.service = NewService(f.store, f.questions, f.synthesizer, f.transcriber, f.evaluator)
	return f
}

func TestServiceStart(t *testing.T) {
	t.Run("NewSession", func(t *testing.T) {
		f := newFixture()
		result, err := f.service.Start(context.Background(), "", "backend role")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.SessionID == "" {
			t.Fatal("expected a session ID")
		}
		if len(result.Questions) != 5 {
			t.Fatalf("expected 5 questions, got %d", len(result.Questions))
		}
		for i, q := range result.Questions {
			if q.Text != fiveQuestions[i] {
				t.Errorf("question %d = %q, want %q", i, q.Text, fiveQuestions[i])
			}
			if q.Err != nil || string(q.Audio) != "audio:"+q.Text {
				t.Errorf("question %d audio mismatch", i)
			}
		}

		session, ok := f.store.Get(result.SessionID)
		if !ok {
			t.Fatal("session was not stored")
		}
		if session.State() != StateQuestionsReady {
			t.Errorf("session state = %s", session.State())
		}
	})

	t.Run("PartialSynthesisFailure", func(t *testing.T) {
		f := newFixture()
		f.synthesizer.failOn = map[string]error{"q3": errors.New("voice down")}

		result, err := f.service.Start(context.Background(), "", "role")
		if err != nil {
			t.Fatalf("a per-item synthesis failure must not fail the batch: %v", err)
		}

		errored := 0
		for i, q := range result.Questions {
			if i == 2 {
				if q.Err == nil || len(q.Audio) != 0 {
					t.Errorf("expected errored empty entry at index 2")
				}
				errored++
				continue
			}
			if q.Err != nil {
				t.Errorf("unexpected error at index %d: %v", i, q.Err)
			}
		}
		if errored != 1 {
			t.Errorf("expected exactly one errored entry")
		}
	})

	t.Run("RestartResetsAnswers", func(t *testing.T) {
		f := newFixture()
		first, err := f.service.Start(context.Background(), "", "role")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.service.AppendAnswer(context.Background(), first.SessionID, []byte("blob")); err != nil {
			t.Fatal(err)
		}

		second, err := f.service.Start(context.Background(), first.SessionID, "role")
		if err != nil {
			t.Fatal(err)
		}
		if second.SessionID != first.SessionID {
			t.Errorf("restart must keep the session ID")
		}

		_, err = f.service.Evaluate(context.Background(), first.SessionID)
		if !errors.Is(err, evaluation.ErrIncompleteTranscript) {
			t.Fatalf("answers from before the reset leaked into evaluate: %v", err)
		}
	})

	t.Run("UnknownSession", func(t *testing.T) {
		f := newFixture()
		if _, err := f.service.Start(context.Background(), "nope", "role"); !errors.Is(err, ErrSessionNotFound) {
			t.Fatalf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("GenerationFailureLeavesNoNewState", func(t *testing.T) {
		f := newFixture()
		f.questions.err = errors.New("model down")
		if _, err := f.service.Start(context.Background(), "", "role"); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestServiceAppendAnswer(t *testing.T) {
	t.Run("AppendsInArrivalOrder", func(t *testing.T) {
		f := newFixture()
		result, _ := f.service.Start(context.Background(), "", "role")

		f.transcriber.transcript = "first"
		if _, err := f.service.AppendAnswer(context.Background(), result.SessionID, []byte("b1")); err != nil {
			t.Fatal(err)
		}
		f.transcriber.transcript = "second"
		if _, err := f.service.AppendAnswer(context.Background(), result.SessionID, []byte("b2")); err != nil {
			t.Fatal(err)
		}

		session, _ := f.store.Get(result.SessionID)
		_, answers := session.Transcript()
		if !reflect.DeepEqual(answers, []string{"first", "second"}) {
			t.Errorf("answers = %v", answers)
		}
	})

	t.Run("UnknownSession", func(t *testing.T) {
		f := newFixture()
		if _, err := f.service.AppendAnswer(context.Background(), "nope", []byte("b")); !errors.Is(err, ErrSessionNotFound) {
			t.Fatalf("expected ErrSessionNotFound, got %v", err)
		}
		if f.transcriber.calls != 0 {
			t.Errorf("transcriber must not be called for an unknown session")
		}
	})

	t.Run("LimitRejectedBeforeTranscription", func(t *testing.T) {
		f := newFixture()
		result, _ := f.service.Start(context.Background(), "", "role")
		for i := 0; i < 5; i++ {
			if _, err := f.service.AppendAnswer(context.Background(), result.SessionID, []byte("b")); err != nil {
				t.Fatal(err)
			}
		}
		calls := f.transcriber.calls

		_, err := f.service.AppendAnswer(context.Background(), result.SessionID, []byte("b"))
		if !errors.Is(err, ErrAnswerLimit) {
			t.Fatalf("expected ErrAnswerLimit, got %v", err)
		}
		if f.transcriber.calls != calls {
			t.Errorf("over-limit answer spent a transcription call")
		}
	})

	t.Run("TranscriptionFailure", func(t *testing.T) {
		f := newFixture()
		result, _ := f.service.Start(context.Background(), "", "role")
		f.transcriber.err = errors.New("job failed")

		if _, err := f.service.AppendAnswer(context.Background(), result.SessionID, []byte("b")); err == nil {
			t.Fatal("expected error")
		}
		session, _ := f.store.Get(result.SessionID)
		_, answers := session.Transcript()
		if len(answers) != 0 {
			t.Errorf("failed transcription must not append an answer")
		}
	})
}

func TestServiceEvaluate(t *testing.T) {
	t.Run("PassesTranscriptThrough", func(t *testing.T) {
		f := newFixture()
		result, _ := f.service.Start(context.Background(), "", "role")
		if _, err := f.service.AppendAnswer(context.Background(), result.SessionID, []byte("b")); err != nil {
			t.Fatal(err)
		}

		evalResult, err := f.service.Evaluate(context.Background(), result.SessionID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(evalResult.Questions, fiveQuestions) {
			t.Errorf("questions echo mismatch: %v", evalResult.Questions)
		}
		if !reflect.DeepEqual(evalResult.Answers, []string{"spoken answer"}) {
			t.Errorf("answers echo mismatch: %v", evalResult.Answers)
		}
	})

	t.Run("IdempotentAcrossCalls", func(t *testing.T) {
		f := newFixture()
		result, _ := f.service.Start(context.Background(), "", "role")
		if _, err := f.service.AppendAnswer(context.Background(), result.SessionID, []byte("b")); err != nil {
			t.Fatal(err)
		}

		first, err := f.service.Evaluate(context.Background(), result.SessionID)
		if err != nil {
			t.Fatal(err)
		}
		second, err := f.service.Evaluate(context.Background(), result.SessionID)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first.Questions, second.Questions) || !reflect.DeepEqual(first.Answers, second.Answers) {
			t.Errorf("transcript echo changed between evaluations")
		}

		session, _ := f.store.Get(result.SessionID)
		if session.State() == StateEmpty {
			t.Errorf("evaluation must not reset the session")
		}
	})

	t.Run("NoAnswers", func(t *testing.T) {
		f := newFixture()
		result, _ := f.service.Start(context.Background(), "", "role")
		if _, err := f.service.Evaluate(context.Background(), result.SessionID); !errors.Is(err, evaluation.ErrIncompleteTranscript) {
			t.Fatalf("expected ErrIncompleteTranscript, got %v", err)
		}
	})

	t.Run("UnknownSession", func(t *testing.T) {
		f := newFixture()
		if _, err := f.service.Evaluate(context.Background(), "nope"); !errors.Is(err, ErrSessionNotFound) {
			t.Fatalf("expected ErrSessionNotFound, got %v", err)
		}
	})
}
