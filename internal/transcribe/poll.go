package transcribe

import (
	"context"
	"errors"
	"fmt"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
)

// ErrPollTimeout is returned when a recognition job does not finish within
// the configured maximum wait.
var ErrPollTimeout = errors.New("transcription job did not finish within the maximum wait")

// poller abstracts a long-running recognition operation so the bounded poll
// loop can be tested without the real service.
type poller interface {
	Poll(ctx context.Context) (*speechpb.LongRunningRecognizeResponse, error)
	Done() bool
}

type recognizeOperation struct {
	op *speech.LongRunningRecognizeOperation
}

func (r recognizeOperation) Poll(ctx context.Context) (*speechpb.LongRunningRecognizeResponse, error) {
	return r.op.Poll(ctx)
}

func (r recognizeOperation) Done() bool {
	return r.op.Done()
}

// pollRecognition checks the job once per interval until it completes or the
// elapsed wait would exceed timeout. The ceiling is honored exactly: the loop
// never sleeps past it and never gives up before it.
func pollRecognition(ctx context.Context, p poller, interval, timeout time.Duration) (*speechpb.LongRunningRecognizeResponse, error) {
	start := time.Now()
	for {
		resp, err := p.Poll(ctx)
		if err != nil {
			return nil, fmt.Errorf("poll recognition job: %w", err)
		}
		if p.Done() {
			return resp, nil
		}

		if time.Since(start)+interval > timeout {
			return nil, ErrPollTimeout
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}
	}
}
