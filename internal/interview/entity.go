package interview

import (
	"errors"
	"sync"
	"time"
)

// State tracks where a session is in the question/answer flow.
type State string

const (
	StateEmpty             State = "EMPTY"
	StateQuestionsReady    State = "QUESTIONS_READY"
	StateAnswersCollecting State = "ANSWERS_COLLECTING"
	StateReadyToEvaluate   State = "READY_TO_EVALUATE"
)

var (
	// ErrSessionNotFound is returned for an unknown or expired session ID.
	ErrSessionNotFound = errors.New("session not found")
	// ErrNoQuestions is returned when an answer arrives before questions exist.
	ErrNoQuestions = errors.New("no questions have been generated for this session")
	// ErrAnswerLimit is returned when every question already has an answer.
	ErrAnswerLimit = errors.New("all questions have been answered")
)

// Session owns the mutable state for one interview. All mutation goes through
// methods holding the session's own lock, so concurrent interviews never
// share a writer.
type Session struct {
	ID string

	mu        sync.Mutex
	questions []string
	answers   []string
	state     State
	updatedAt time.Time
}

func newSession(id string) *Session {
	return &Session{
		ID:        id,
		state:     StateEmpty,
		updatedAt: time.Now(),
	}
}

// SetQuestions installs freshly generated questions and performs a full
// reset: any previously collected answers are dropped, never merged.
func (s *Session) SetQuestions(questions []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.questions = append([]string(nil), questions...)
	s.answers = nil
	s.state = StateQuestionsReady
	s.updatedAt = time.Now()
}

// AppendAnswer records a transcribed answer in arrival order. Answers bind to
// questions by append order only; nothing ties an answer to a question index.
func (s *Session) AppendAnswer(answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.questions) == 0 {
		return ErrNoQuestions
	}
	if len(s.answers) >= len(s.questions) {
		return ErrAnswerLimit
	}

	s.answers = append(s.answers, answer)
	if len(s.answers) == len(s.questions) {
		s.state = StateReadyToEvaluate
	} else {
		s.state = StateAnswersCollecting
	}
	s.updatedAt = time.Now()
	return nil
}

// Transcript returns copies of the question and answer sequences. Evaluation
// reads through here and never mutates state, so repeated evaluations see an
// identical transcript.
func (s *Session) Transcript() (questions, answers []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	questions = append([]string(nil), s.questions...)
	answers = append([]string(nil), s.answers...)
	return questions, answers
}

// State returns the session's current flow state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) touchedBefore(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt.Before(cutoff)
}
