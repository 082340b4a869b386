package interview

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/preptalk-ai/preptalk-lambda/internal/config"
	"github.com/preptalk-ai/preptalk-lambda/internal/evaluation"
	"github.com/preptalk-ai/preptalk-lambda/internal/llm"
	"github.com/preptalk-ai/preptalk-lambda/internal/transcribe"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

type startRequest struct {
	JobDescription string `json:"jobDescription"`
	SessionID      string `json:"sessionId"`
}

type questionResponse struct {
	Text  string `json:"text"`
	Audio string `json:"audio"`
	Error string `json:"error,omitempty"`
}

type transcribeRequest struct {
	SessionID string `json:"sessionId"`
	Audio     string `json:"audio"`
}

// Start handles POST /start: generate questions for the job description and
// return them keyed question1..question5 with base64 audio.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.Start(r.Context(), req.SessionID, req.JobDescription)
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			config.Error(w, http.StatusBadRequest, "unknown session")
		case errors.Is(err, llm.ErrMalformedOutput):
			log.WithError(err).Error("question generation returned malformed output")
			config.Error(w, http.StatusInternalServerError, "failed to generate questions")
		default:
			log.WithError(err).Error("failed to start interview")
			config.Error(w, http.StatusBadGateway, "failed to generate questions")
		}
		return
	}

	resp := map[string]interface{}{"sessionId": result.SessionID}
	for i, q := range result.Questions {
		item := questionResponse{Text: q.Text}
		if q.Err != nil {
			item.Error = "speech synthesis failed"
		} else {
			item.Audio = base64.StdEncoding.EncodeToString(q.Audio)
		}
		resp[fmt.Sprintf("question%d", i+1)] = item
	}

	config.JSON(w, http.StatusOK, resp)
}

// Transcribe handles POST /transcribe: convert one recorded answer to text
// and append it to the session's transcript.
func (h *Handler) Transcribe(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req transcribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Audio == "" {
		config.Error(w, http.StatusBadRequest, "audio is required")
		return
	}
	if req.SessionID == "" {
		config.Error(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	audio, err := base64.StdEncoding.DecodeString(req.Audio)
	if err != nil {
		config.Error(w, http.StatusBadRequest, "audio must be base64-encoded")
		return
	}

	transcript, err := h.service.AppendAnswer(r.Context(), req.SessionID, audio)
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrNoQuestions), errors.Is(err, ErrAnswerLimit):
			config.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, transcribe.ErrPollTimeout):
			log.WithError(err).Error("transcription timed out")
			config.Error(w, http.StatusGatewayTimeout, "transcription timed out")
		default:
			log.WithError(err).Error("transcription failed")
			config.Error(w, http.StatusInternalServerError, "transcription failed")
		}
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{"transcript": transcript})
}

// Evaluate handles GET /evaluate: score the session's transcript against the
// rubric.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		config.Error(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	result, err := h.service.Evaluate(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			config.Error(w, http.StatusBadRequest, "unknown session")
		case errors.Is(err, evaluation.ErrIncompleteTranscript):
			config.Error(w, http.StatusBadRequest, "interview transcript is incomplete")
		case errors.Is(err, llm.ErrMalformedOutput):
			log.WithError(err).Error("evaluation returned malformed output")
			config.Error(w, http.StatusInternalServerError, "failed to evaluate interview")
		default:
			log.WithError(err).Error("evaluation failed")
			config.Error(w, http.StatusBadGateway, "failed to evaluate interview")
		}
		return
	}

	config.JSON(w, http.StatusOK, result)
}
