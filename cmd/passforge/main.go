package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/passforge/passforge-go/internal/cli"
	"github.com/passforge/passforge-go/internal/logging"
)

func main() {
	godotenv.Load()

	// Logs go to stderr so they never mix with generated passwords.
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "warn"
	}
	slog.SetDefault(logging.NewWithWriter(os.Stderr, level, "text"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewApp().Execute(ctx, os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
