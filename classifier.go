package aspectsum

import (
	"encoding/gob"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
)

// Artifact locations inside a model directory.
const (
	OpinionDir   = "Opinion"
	SentimentDir = "Sentiment"
	logisticFile = "logistic.gob"
)

// A Classifier returns the probability of the positive class for a feature
// vector.
type Classifier interface {
	Probability(fv FeatureVector) (float64, error)
}

// LogisticClassifier is a binary logistic regression over named features.
type LogisticClassifier struct {
	Features  []string
	Weights   []float64
	Intercept float64
}

// NewLogisticClassifier checks that every feature has a weight.
func NewLogisticClassifier(features []string, weights []float64, intercept float64) (*LogisticClassifier, error) {
	if len(features) != len(weights) {
		return nil, fmt.Errorf("%w: %d features but %d weights", ErrInvalidInput, len(features), len(weights))
	}
	return &LogisticClassifier{Features: features, Weights: weights, Intercept: intercept}, nil
}

// Probability computes sigmoid(intercept + w·x). Every model feature must be
// present in fv.
func (lc *LogisticClassifier) Probability(fv FeatureVector) (float64, error) {
	if len(lc.Features) == 0 {
		return sigmoid(lc.Intercept), nil
	}
	x := make([]float64, len(lc.Features))
	for i, name := range lc.Features {
		v, ok := fv.Get(name)
		if !ok {
			return 0, fmt.Errorf("%w: feature %q missing from vector", ErrInvalidInput, name)
		}
		x[i] = v
	}
	score := lc.Intercept + mat.Dot(mat.NewVecDense(len(x), x), mat.NewVecDense(len(lc.Weights), lc.Weights))
	return sigmoid(score), nil
}

// Check verifies that every model feature is among names.
func (lc *LogisticClassifier) Check(names []string) error {
	have := make(map[string]bool, len(names))
	for _, n := range names {
		have[n] = true
	}
	for _, f := range lc.Features {
		if !have[f] {
			return fmt.Errorf("%w: classifier expects unknown feature %q", ErrInvalidInput, f)
		}
	}
	return nil
}

// Write saves the classifier under dir/logistic.gob.
func (lc *LogisticClassifier) Write(dir string) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, logisticFile))
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(f).Encode(lc); err != nil {
		f.Close()
		return fmt.Errorf("aspectsum: encoding classifier: %w", err)
	}
	return f.Close()
}

// LoadLogisticClassifier reads dir/logistic.gob from fsys.
func LoadLogisticClassifier(fsys fs.FS, dir string) (*LogisticClassifier, error) {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return nil, err
	}
	file, err := sub.Open(logisticFile)
	if err != nil {
		return nil, fmt.Errorf("aspectsum: opening %s/%s: %w", dir, logisticFile, err)
	}
	defer file.Close()

	var lc LogisticClassifier
	if err := gob.NewDecoder(file).Decode(&lc); err != nil {
		return nil, fmt.Errorf("aspectsum: decoding %s/%s: %w", dir, logisticFile, err)
	}
	return NewLogisticClassifier(lc.Features, lc.Weights, lc.Intercept)
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// OpinionModel separates opinionated sentences from objective ones.
type OpinionModel struct {
	Classifier
}

// OpinionatedProbability returns P(opinionated | fv).
func (m OpinionModel) OpinionatedProbability(fv FeatureVector) (float64, error) {
	return m.Probability(fv)
}

// SentimentModel separates positive from negative opinionated sentences.
type SentimentModel struct {
	Classifier
}

// PositiveProbability returns P(positive | fv).
func (m SentimentModel) PositiveProbability(fv FeatureVector) (float64, error) {
	return m.Probability(fv)
}
