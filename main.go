package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/linesmerrill/rider-docs-api/api/handlers"
	"github.com/linesmerrill/rider-docs-api/api/scheduler"
	"github.com/linesmerrill/rider-docs-api/config"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()

	// initialize database, storage and router
	if err := a.Initialize(); err != nil {
		zap.S().Fatalw("failed to initialize", "error", err)
	}

	digest := scheduler.NewScheduler(a.DocumentStore(), a.Config.DigestSchedule)
	if err := digest.Start(); err != nil {
		zap.S().Warnw("pending digest disabled", "error", err)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%v", a.Config.Port),
		Handler: a.Router,
	}
	go func() {
		zap.S().Infow("rider-docs-api is up and running",
			"port", a.Config.Port,
			"url", a.Config.BaseURL,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Fatalw("server stopped", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	digest.Stop()
	if err := srv.Shutdown(ctx); err != nil {
		zap.S().Warnw("failed to shut down cleanly", "error", err)
	}
	a.Close(ctx)
	zap.S().Info("rider-docs-api stopped")
}
