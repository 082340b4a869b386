package container

import (
	"context"
	"fmt"

	"github.com/preptalk-ai/preptalk-lambda/internal/config"
	"github.com/preptalk-ai/preptalk-lambda/internal/interview"
)

type Container struct {
	Config             *config.Config
	InterviewContainer *interview.Container
}

func New(ctx context.Context) (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	config.Init(cfg.LogLevel)

	interviewContainer, err := interview.NewContainer(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init interview container: %w", err)
	}

	return &Container{
		Config:             cfg,
		InterviewContainer: interviewContainer,
	}, nil
}
