package speech

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// MaxConcurrent bounds the synthesis fan-out width.
const MaxConcurrent = 5

// Result pairs synthesized audio with the error for that item, if any.
// A failed item carries an error and empty audio.
type Result struct {
	Audio []byte
	Err   error
}

// SynthesizeAll synthesizes every text concurrently, at most MaxConcurrent in
// flight, and returns results indexed by the original input position. A failed
// synthesis is recorded on its own slot and never aborts the other items.
func SynthesizeAll(ctx context.Context, syn Synthesizer, texts []string) []Result {
	results := make([]Result, len(texts))

	// Plain Group rather than WithContext: one failure must not cancel siblings.
	var g errgroup.Group
	g.SetLimit(MaxConcurrent)

	for i, text := range texts {
		g.Go(func() error {
			audio, err := syn.Synthesize(ctx, text)
			if err != nil {
				results[i] = Result{Err: err}
				return nil
			}
			results[i] = Result{Audio: audio}
			return nil
		})
	}

	_ = g.Wait()
	return results
}
