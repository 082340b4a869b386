package evaluation

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FeedbackCount is the required number of feedback bullet points.
const FeedbackCount = 5

// Result is the self-contained transcript-plus-score record returned to the
// caller.
type Result struct {
	TotalScore float64  `json:"total_score"`
	Feedback   []string `json:"feedback"`
	Questions  []string `json:"transcript_questions"`
	Answers    []string `json:"transcript_answers"`
}

type evaluationPayload struct {
	TotalScore *scoreValue `json:"total_score"`
	Feedback   []string    `json:"feedback"`
}

// scoreValue tolerates the model returning the score as either a JSON number
// or a numeric string.
type scoreValue float64

func (s *scoreValue) UnmarshalJSON(b []byte) error {
	trimmed := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if trimmed == "" || trimmed == "null" {
		return fmt.Errorf("score is empty")
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return fmt.Errorf("score %q is not numeric", trimmed)
	}
	*s = scoreValue(f)
	return nil
}

var _ json.Unmarshaler = (*scoreValue)(nil)
