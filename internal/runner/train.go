package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/opinionmining/aspectsum"
	"github.com/opinionmining/aspectsum/internal/corpus"
)

// TrainResult reports the fit of both classifiers.
type TrainResult struct {
	Opinion   aspectsum.TrainingMetrics
	Sentiment aspectsum.TrainingMetrics
}

// Train fits the opinion and sentiment classifiers on a labeled CSV and
// writes them into modelDir, which must already hold the lexicon files.
func Train(ctx context.Context, labeledPath, modelDir string, logger zerolog.Logger) (TrainResult, error) {
	labeled, err := corpus.ReadLabeledFile(labeledPath)
	if err != nil {
		return TrainResult{}, err
	}
	lex, err := aspectsum.LoadLexicons(os.DirFS(modelDir))
	if err != nil {
		return TrainResult{}, err
	}

	// Featurizing needs a Model; its classifiers are not used.
	untrained := &aspectsum.LogisticClassifier{}
	model, err := aspectsum.NewModel(lex, untrained, untrained, aspectsum.UsingLogger(logger))
	if err != nil {
		return TrainResult{}, err
	}

	cfg := aspectsum.DefaultTrainingConfig()
	cfg.Context = ctx
	cfg.Logger = logger
	trainer := aspectsum.NewTrainer(cfg)

	var result TrainResult
	targets := []struct {
		name    string
		target  aspectsum.TrainingTarget
		dir     string
		metrics *aspectsum.TrainingMetrics
	}{
		{"opinion", aspectsum.OpinionTarget, aspectsum.OpinionDir, &result.Opinion},
		{"sentiment", aspectsum.SentimentTarget, aspectsum.SentimentDir, &result.Sentiment},
	}
	for _, tt := range targets {
		examples, err := model.TrainingSet(labeled, tt.target)
		if err != nil {
			return result, fmt.Errorf("runner: building %s training set: %w", tt.name, err)
		}
		lc, metrics, err := trainer.TrainLogistic(examples)
		if err != nil {
			return result, fmt.Errorf("runner: training %s classifier: %w", tt.name, err)
		}
		if err := lc.Write(filepath.Join(modelDir, tt.dir)); err != nil {
			return result, fmt.Errorf("runner: writing %s classifier: %w", tt.name, err)
		}
		*tt.metrics = metrics
		logger.Info().
			Str("classifier", tt.name).
			Int("examples", len(examples)).
			Float64("accuracy", metrics.BestAccuracy).
			Msg("classifier written")
	}
	return result, nil
}
