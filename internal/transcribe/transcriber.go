// Package transcribe converts recorded answer audio to text. Audio is staged
// in a storage bucket, submitted as a long-running recognition job, and the
// job is polled at a fixed interval up to a bounded maximum wait.
package transcribe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/preptalk-ai/preptalk-lambda/internal/config"
)

// Transcriber converts a single audio blob into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

type googleTranscriber struct {
	storage  *storage.Client
	speech   *speech.Client
	bucket   string
	language string

	sampleRate int32
	interval   time.Duration
	timeout    time.Duration
}

// NewGoogleTranscriber creates a Transcriber backed by Cloud Speech-to-Text,
// staging audio in the given bucket. Interval and timeout bound the job poll.
func NewGoogleTranscriber(ctx context.Context, bucket, language string, sampleRate int32, interval, timeout time.Duration) (Transcriber, error) {
	if bucket == "" {
		return nil, errors.New("audio bucket is required")
	}

	storageClient, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	speechClient, err := speech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create speech client: %w", err)
	}

	return &googleTranscriber{
		storage:    storageClient,
		speech:     speechClient,
		bucket:     bucket,
		language:   language,
		sampleRate: sampleRate,
		interval:   interval,
		timeout:    timeout,
	}, nil
}

func (t *googleTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", errors.New("audio must not be empty")
	}

	log := config.WithContext(ctx)

	object := fmt.Sprintf("answers/answer-%s.webm", uuid.New())
	if err := t.stage(ctx, object, audio); err != nil {
		return "", fmt.Errorf("stage audio: %w", err)
	}
	defer t.cleanup(ctx, object)

	op, err := t.speech.LongRunningRecognize(ctx, &speechpb.LongRunningRecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        speechpb.RecognitionConfig_WEBM_OPUS,
			SampleRateHertz: t.sampleRate,
			LanguageCode:    t.language,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Uri{
				Uri: fmt.Sprintf("gs://%s/%s", t.bucket, object),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("start recognition job: %w", err)
	}
	log.Infof("recognition job %s started", op.Name())

	resp, err := pollRecognition(ctx, recognizeOperation{op}, t.interval, t.timeout)
	if err != nil {
		return "", err
	}

	transcript := joinTranscripts(resp)
	log.Infof("recognition job %s finished, %d characters", op.Name(), len(transcript))
	return transcript, nil
}

func (t *googleTranscriber) stage(ctx context.Context, object string, audio []byte) error {
	w := t.storage.Bucket(t.bucket).Object(object).NewWriter(ctx)
	w.ContentType = "audio/webm"
	if _, err := w.Write(audio); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// cleanup removes the staged object. Runs on its own context so a cancelled
// request cannot leave the blob behind.
func (t *googleTranscriber) cleanup(ctx context.Context, object string) {
	cleanupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := t.storage.Bucket(t.bucket).Object(object).Delete(cleanupCtx); err != nil {
		config.WithContext(ctx).WithError(err).Warnf("failed to delete staged audio %s", object)
	}
}

func joinTranscripts(resp *speechpb.LongRunningRecognizeResponse) string {
	if resp == nil {
		return ""
	}

	var b strings.Builder
	for _, result := range resp.Results {
		if len(result.Alternatives) == 0 {
			continue
		}
		text := strings.TrimSpace(result.Alternatives[0].Transcript)
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(text)
	}
	return b.String()
}
