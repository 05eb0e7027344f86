package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"importfix/internal/slogutil"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		if !errors.Is(err, errChangesPending) {
			logger := slogutil.NewLogger(os.Stderr, slog.LevelError)
			logger.Error("Command execution failed", "error", err.Error())
		}
		os.Exit(1)
	}
}
