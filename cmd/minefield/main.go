package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"
	slogmulti "github.com/samber/slog-multi"

	"github.com/vancomm/minefield/internal/app"
	"github.com/vancomm/minefield/internal/config"
)

func newLogger(logFile io.Writer) *slog.Logger {
	level := slog.LevelInfo
	var handler slog.Handler = slog.NewJSONHandler(os.Stderr, nil)
	if config.Development() {
		level = slog.LevelDebug
		handler = tint.NewHandler(os.Stderr, &tint.Options{Level: level})
	}
	if logFile != nil {
		handler = slogmulti.Fanout(
			handler,
			slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: level}),
		)
	}
	return slog.New(handler)
}

func main() {
	logFile, err := config.NewLogFile()
	if err != nil {
		slog.Error("failed to read log config", slog.Any("error", err))
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	logger := newLogger(logFile)

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer cancel()

	a, err := app.New(logger)
	if err != nil {
		logger.Error("failed to configure app", slog.Any("error", err))
		os.Exit(1)
	}

	if err := a.Start(ctx, config.Port()); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("shut down")
}
