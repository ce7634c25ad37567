package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/opinionmining/aspectsum/internal/config"
	"github.com/opinionmining/aspectsum/internal/observability"
	"github.com/opinionmining/aspectsum/internal/runner"
)

const usage = `usage:
  aspectsum summarize -config aspectsum.yaml
  aspectsum train -labeled sentences.csv -model-dir models/en`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "summarize":
		err = summarize(ctx, os.Args[2:])
	case "train":
		err = train(ctx, os.Args[2:])
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		stop()
		os.Exit(1)
	}
}

func summarize(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("summarize", flag.ExitOnError)
	configPath := fs.String("config", "aspectsum.yaml", "path to config file")
	_ = fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return err
	}
	logger := observability.NewLogger(cfg.Env, cfg.LogLevel)

	if _, err := runner.Summarize(ctx, cfg, logger); err != nil {
		logger.Error().Err(err).Msg("summarization incomplete")
		return err
	}
	return nil
}

func train(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	labeled := fs.String("labeled", "", "CSV of hand-labeled sentences")
	modelDir := fs.String("model-dir", "", "model directory holding the lexicons")
	env := fs.String("env", os.Getenv("APP_ENV"), "dev for console logging")
	level := fs.String("log-level", "info", "log level")
	_ = fs.Parse(args)

	logger := observability.NewLogger(*env, *level)
	if *labeled == "" || *modelDir == "" {
		err := fmt.Errorf("train: -labeled and -model-dir are required")
		logger.Error().Err(err).Msg("bad arguments")
		return err
	}

	if _, err := runner.Train(ctx, *labeled, *modelDir, logger); err != nil {
		logger.Error().Err(err).Msg("training failed")
		return err
	}
	return nil
}
