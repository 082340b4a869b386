package evaluation

import (
	"fmt"
	"strings"
)

// BuildPrompt renders the evaluation prompt: the numbered transcript followed
// by the rubric and the output-format instruction. Questions without a
// recorded answer are marked as unanswered.
func BuildPrompt(questions, answers []string, rubric, format string) string {
	var b strings.Builder

	b.WriteString("You are evaluating a candidate's mock-interview performance. ")
	b.WriteString("Below is the interview transcript, followed by the scoring rubric.\n\n")
	b.WriteString("## TRANSCRIPT\n\n")

	for i, q := range questions {
		fmt.Fprintf(&b, "Question %d: %s\n", i+1, q)
		if i < len(answers) {
			fmt.Fprintf(&b, "Answer %d: %s\n\n", i+1, answers[i])
		} else {
			fmt.Fprintf(&b, "Answer %d: (no answer recorded)\n\n", i+1)
		}
	}

	b.WriteString("## SCORING RUBRIC\n\n")
	b.WriteString(rubric)
	b.WriteString("\n\n")
	b.WriteString(format)

	return b.String()
}
