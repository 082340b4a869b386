package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/preptalk-ai/preptalk-lambda/internal/config"
	"github.com/preptalk-ai/preptalk-lambda/internal/container"
	"github.com/preptalk-ai/preptalk-lambda/internal/router"
)

func main() {
	if err := godotenv.Load(); err == nil {
		logrus.Info("loaded environment from .env")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := container.New(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize application")
	}

	r := router.New(router.RouterConfig{
		InterviewHandler: c.InterviewContainer.Handler,
		AllowedOrigin:    c.Config.AllowedOrigin,
	})

	c.InterviewContainer.Store.StartSweeper(ctx, c.Config.SessionTTL)

	if config.IsLambda() {
		adapter := chiadapter.New(r)
		lambda.Start(adapter.ProxyWithContext)
		return
	}

	// Local development: plain HTTP server. The write timeout leaves room for
	// the transcription poll ceiling.
	srv := &http.Server{
		Addr:         ":" + c.Config.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: c.Config.PollTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logrus.Infof("server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("forced shutdown")
	}
}
