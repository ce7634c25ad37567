// Package runner drives batch summarization and classifier training for the
// command line.
package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/opinionmining/aspectsum"
	"github.com/opinionmining/aspectsum/internal/config"
	"github.com/opinionmining/aspectsum/internal/corpus"
	"github.com/opinionmining/aspectsum/internal/observability"
)

// Stats counts the outcome of a run.
type Stats struct {
	Succeeded int
	Failed    int
	Sentences int
}

// A Runner summarizes grouped corpora and writes one JSON document per line.
type Runner struct {
	Model   *aspectsum.Model
	Summary aspectsum.SummaryConfig
	Workers int
	Metrics *observability.Metrics
	Logger  zerolog.Logger
}

// Run summarizes every corpus and writes the successful summaries to w in
// corpus order. Per-business failures are logged, counted and returned
// joined; they do not stop the run.
func (r *Runner) Run(ctx context.Context, corpora [][]aspectsum.ReviewRecord, w io.Writer) (Stats, error) {
	var stats Stats
	progress := func(res aspectsum.BatchResult) {
		if r.Metrics != nil {
			r.Metrics.ObserveBusiness(res.Err != nil, res.Sentences, res.Elapsed)
		}
		if res.Err != nil {
			r.Logger.Error().Err(res.Err).Str("business", res.BusinessID).Msg("summary failed")
			return
		}
		r.Logger.Debug().
			Str("business", res.BusinessID).
			Int("reviews", res.Reviews).
			Int("sentences", res.Sentences).
			Dur("elapsed", res.Elapsed).
			Msg("summary done")
	}

	results, err := aspectsum.SummarizeAll(ctx, r.Model, corpora, r.Workers,
		aspectsum.WithBusinessOpts(
			aspectsum.WithSummaryConfig(r.Summary),
			aspectsum.WithLogger(r.Logger),
		),
		aspectsum.WithProgressCallback(progress),
	)

	enc := json.NewEncoder(w)
	for _, res := range results {
		stats.Sentences += res.Sentences
		if res.Summary == nil {
			if res.Err != nil {
				stats.Failed++
			}
			continue
		}
		if encErr := enc.Encode(res.Summary); encErr != nil {
			return stats, fmt.Errorf("runner: writing summary of %s: %w", res.BusinessID, encErr)
		}
		stats.Succeeded++
	}
	return stats, err
}

// Summarize loads everything cfg names and runs the batch.
func Summarize(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (Stats, error) {
	metrics := observability.NewMetrics()
	metrics.Serve(ctx, cfg.MetricsAddr, logger)

	model, err := aspectsum.ModelFromDisk(cfg.ModelDir, aspectsum.UsingLogger(logger))
	if err != nil {
		return Stats{}, fmt.Errorf("runner: loading model: %w", err)
	}
	records, err := corpus.ReadFile(cfg.Corpus)
	if err != nil {
		return Stats{}, err
	}
	corpora := corpus.GroupByBusiness(records)
	logger.Info().
		Str("corpus", cfg.Corpus).
		Int("reviews", len(records)).
		Int("businesses", len(corpora)).
		Int("workers", cfg.Workers).
		Msg("starting summarization")

	var w io.Writer = os.Stdout
	if cfg.Output != config.StdoutOutput {
		f, err := os.Create(cfg.Output)
		if err != nil {
			return Stats{}, fmt.Errorf("runner: %w", err)
		}
		defer f.Close()
		w = f
	}

	r := &Runner{
		Model:   model,
		Summary: cfg.Summary,
		Workers: cfg.Workers,
		Metrics: metrics,
		Logger:  logger,
	}
	stats, err := r.Run(ctx, corpora, w)
	logger.Info().
		Int("succeeded", stats.Succeeded).
		Int("failed", stats.Failed).
		Int("sentences", stats.Sentences).
		Msg("summarization finished")
	return stats, err
}
