package aspectsum

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
)

// TrainingConfig contains configuration for classifier training
type TrainingConfig struct {
	Iterations       int
	LearningRate     float64
	RegularizationL2 float64
	EarlyStopping    bool
	ValidationSplit  float64
	Patience         int
	BatchSize        int
	Seed             int64
	Context          context.Context
	Logger           zerolog.Logger
	ProgressCallback func(epoch int, loss float64, accuracy float64)
}

// DefaultTrainingConfig returns a default training configuration
func DefaultTrainingConfig() TrainingConfig {
	return TrainingConfig{
		Iterations:       300,
		LearningRate:     0.05,
		RegularizationL2: 0.001,
		EarlyStopping:    true,
		ValidationSplit:  0.2,
		Patience:         20,
		BatchSize:        32,
		Seed:             1,
		Context:          context.Background(),
		Logger:           zerolog.Nop(),
	}
}

// TrainingMetrics contains metrics from training
type TrainingMetrics struct {
	FinalLoss       float64
	FinalAccuracy   float64
	BestLoss        float64
	BestAccuracy    float64
	EpochsCompleted int
	TrainingTime    time.Duration
	Converged       bool
}

// CrossValidationResult contains results from cross-validation
type CrossValidationResult struct {
	MeanAccuracy float64
	StdAccuracy  float64
	MeanLoss     float64
	StdLoss      float64
	FoldResults  []ValidationResult
}

// ValidationResult contains validation metrics
type ValidationResult struct {
	Accuracy  float64
	Loss      float64
	F1Score   float64
	Precision float64
	Recall    float64
}

// A LabeledVector is one training example for a binary classifier.
type LabeledVector struct {
	Features FeatureVector
	Positive bool
}

// SentenceLabel is the hand annotation of a training sentence.
type SentenceLabel int

const (
	LabelObjective SentenceLabel = iota
	LabelPositive
	LabelNegative
)

// ParseSentenceLabel reads an annotation. "neutral" counts as negative.
func ParseSentenceLabel(s string) (SentenceLabel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "objective", "obj":
		return LabelObjective, nil
	case "positive", "pos":
		return LabelPositive, nil
	case "negative", "neg", "neutral":
		return LabelNegative, nil
	}
	return LabelObjective, fmt.Errorf("%w: unknown sentence label %q", ErrInvalidInput, s)
}

func (l SentenceLabel) String() string {
	switch l {
	case LabelPositive:
		return "positive"
	case LabelNegative:
		return "negative"
	}
	return "objective"
}

// A LabeledSentence is a hand-annotated sentence with the star rating of
// the review it came from.
type LabeledSentence struct {
	Text  string
	Stars int
	Label SentenceLabel
}

// TrainingTarget selects which classifier a training set is built for.
type TrainingTarget int

const (
	// OpinionTarget separates opinionated (positive or negative) sentences
	// from objective ones.
	OpinionTarget TrainingTarget = iota
	// SentimentTarget separates positive from negative sentences; objective
	// sentences are left out.
	SentimentTarget
)

// TrainingSet featurizes labeled sentences for target. Sentences without
// tokens are skipped.
func (m *Model) TrainingSet(labeled []LabeledSentence, target TrainingTarget) ([]LabeledVector, error) {
	out := make([]LabeledVector, 0, len(labeled))
	for _, ls := range labeled {
		if target == SentimentTarget && ls.Label == LabelObjective {
			continue
		}
		s := NewSentence(m, ls.Text, &Review{Stars: ls.Stars, Text: ls.Text})
		if len(s.Tokens()) == 0 {
			continue
		}
		if err := s.EnsureFeatures(m.Featurizer()); err != nil {
			return nil, err
		}
		fv, err := s.Features()
		if err != nil {
			return nil, err
		}

		positive := ls.Label != LabelObjective
		if target == SentimentTarget {
			positive = ls.Label == LabelPositive
		}
		out = append(out, LabeledVector{Features: fv, Positive: positive})
	}
	return out, nil
}

// Trainer fits classifiers for the summarization model
type Trainer struct {
	config TrainingConfig
}

// NewTrainer creates a new trainer with the given configuration
func NewTrainer(config TrainingConfig) *Trainer {
	if config.Context == nil {
		config.Context = context.Background()
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 1
	}
	return &Trainer{config: config}
}

// design is the example matrix, one row per example, with labels in y.
type design struct {
	names []string
	x     *mat.Dense
	y     []float64
}

func newDesign(examples []LabeledVector) (*design, error) {
	if len(examples) == 0 {
		return nil, fmt.Errorf("%w: training data is empty", ErrInvalidInput)
	}
	names := examples[0].Features.Names()
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: training examples have no features", ErrInvalidInput)
	}

	d := &design{
		names: names,
		x:     mat.NewDense(len(examples), len(names), nil),
		y:     make([]float64, len(examples)),
	}
	for i, ex := range examples {
		for j, name := range names {
			v, ok := ex.Features.Get(name)
			if !ok {
				return nil, fmt.Errorf("%w: example %d lacks feature %q", ErrInvalidInput, i, name)
			}
			d.x.Set(i, j, v)
		}
		if ex.Positive {
			d.y[i] = 1
		}
	}
	return d, nil
}

// TrainLogistic fits a logistic regression with mini-batch gradient descent
// and L2 regularization. With early stopping enabled the weights with the
// lowest validation loss are returned.
func (t *Trainer) TrainLogistic(examples []LabeledVector) (*LogisticClassifier, TrainingMetrics, error) {
	startTime := time.Now()

	data, err := newDesign(examples)
	if err != nil {
		return nil, TrainingMetrics{}, err
	}
	n, dim := data.x.Dims()

	rng := rand.New(rand.NewSource(t.config.Seed))
	order := rng.Perm(n)

	var trainIdx, validIdx []int
	if t.config.EarlyStopping && t.config.ValidationSplit > 0 {
		splitIdx := int(float64(n) * (1.0 - t.config.ValidationSplit))
		if splitIdx < 1 {
			splitIdx = 1
		}
		trainIdx, validIdx = order[:splitIdx], order[splitIdx:]
	} else {
		trainIdx = order
	}
	if len(validIdx) == 0 {
		validIdx = trainIdx
	}

	w := mat.NewVecDense(dim, nil)
	grad := mat.NewVecDense(dim, nil)
	var bias float64

	best := mat.NewVecDense(dim, nil)
	var bestBias float64
	bestLoss := math.Inf(1)
	bestAccuracy := 0.0
	patienceCounter := 0

	var metrics TrainingMetrics

	for epoch := 0; epoch < t.config.Iterations; epoch++ {
		select {
		case <-t.config.Context.Done():
			return nil, metrics, t.config.Context.Err()
		default:
		}

		rng.Shuffle(len(trainIdx), func(i, j int) {
			trainIdx[i], trainIdx[j] = trainIdx[j], trainIdx[i]
		})

		for start := 0; start < len(trainIdx); start += t.config.BatchSize {
			end := start + t.config.BatchSize
			if end > len(trainIdx) {
				end = len(trainIdx)
			}
			batch := trainIdx[start:end]

			grad.Zero()
			var gradBias float64
			for _, i := range batch {
				row := data.x.RowView(i)
				residual := sigmoid(bias+mat.Dot(row, w)) - data.y[i]
				grad.AddScaledVec(grad, residual, row)
				gradBias += residual
			}

			m := float64(len(batch))
			grad.ScaleVec(1/m, grad)
			grad.AddScaledVec(grad, t.config.RegularizationL2, w)
			w.AddScaledVec(w, -t.config.LearningRate, grad)
			bias -= t.config.LearningRate * gradBias / m
		}

		valid := evaluate(data, validIdx, w, bias)

		if t.config.ProgressCallback != nil {
			t.config.ProgressCallback(epoch, valid.Loss, valid.Accuracy)
		}
		t.config.Logger.Debug().
			Int("epoch", epoch).
			Float64("loss", valid.Loss).
			Float64("accuracy", valid.Accuracy).
			Msg("training epoch")

		metrics.EpochsCompleted = epoch + 1
		metrics.FinalLoss = valid.Loss
		metrics.FinalAccuracy = valid.Accuracy

		if valid.Loss < bestLoss {
			bestLoss = valid.Loss
			bestAccuracy = valid.Accuracy
			best.CopyVec(w)
			bestBias = bias
			patienceCounter = 0
		} else if t.config.EarlyStopping {
			patienceCounter++
			if patienceCounter >= t.config.Patience {
				metrics.Converged = true
				break
			}
		}
	}

	if !t.config.EarlyStopping {
		best.CopyVec(w)
		bestBias = bias
	}

	weights := make([]float64, dim)
	for j := range weights {
		weights[j] = best.AtVec(j)
	}
	lc, err := NewLogisticClassifier(data.names, weights, bestBias)
	if err != nil {
		return nil, metrics, err
	}

	metrics.BestLoss = bestLoss
	metrics.BestAccuracy = bestAccuracy
	metrics.TrainingTime = time.Since(startTime)

	t.config.Logger.Info().
		Int("examples", n).
		Int("epochs", metrics.EpochsCompleted).
		Float64("best_loss", metrics.BestLoss).
		Float64("best_accuracy", metrics.BestAccuracy).
		Bool("converged", metrics.Converged).
		Dur("elapsed", metrics.TrainingTime).
		Msg("classifier trained")

	return lc, metrics, nil
}

// evaluate scores the rows idx of data with the given weights.
func evaluate(data *design, idx []int, w *mat.VecDense, bias float64) ValidationResult {
	var loss float64
	var tp, fp, fn, correct int
	for _, i := range idx {
		p := sigmoid(bias + mat.Dot(data.x.RowView(i), w))
		loss += logLoss(p, data.y[i])

		predicted := p >= 0.5
		actual := data.y[i] == 1
		switch {
		case predicted && actual:
			tp++
		case predicted && !actual:
			fp++
		case !predicted && actual:
			fn++
		}
		if predicted == actual {
			correct++
		}
	}
	return summarizeCounts(len(idx), correct, tp, fp, fn, loss)
}

func summarizeCounts(n, correct, tp, fp, fn int, loss float64) ValidationResult {
	if n == 0 {
		return ValidationResult{}
	}
	r := ValidationResult{
		Accuracy: float64(correct) / float64(n),
		Loss:     loss / float64(n),
	}
	if tp+fp > 0 {
		r.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		r.Recall = float64(tp) / float64(tp+fn)
	}
	if r.Precision+r.Recall > 0 {
		r.F1Score = 2 * r.Precision * r.Recall / (r.Precision + r.Recall)
	}
	return r
}

func logLoss(p, y float64) float64 {
	const eps = 1e-12
	p = math.Min(math.Max(p, eps), 1-eps)
	return -(y*math.Log(p) + (1-y)*math.Log(1-p))
}

// Evaluate scores any classifier on labeled examples.
func (t *Trainer) Evaluate(c Classifier, examples []LabeledVector) (ValidationResult, error) {
	var loss float64
	var tp, fp, fn, correct int
	for _, ex := range examples {
		p, err := c.Probability(ex.Features)
		if err != nil {
			return ValidationResult{}, err
		}
		y := 0.0
		if ex.Positive {
			y = 1
		}
		loss += logLoss(p, y)

		predicted := p >= 0.5
		switch {
		case predicted && ex.Positive:
			tp++
		case predicted && !ex.Positive:
			fp++
		case !predicted && ex.Positive:
			fn++
		}
		if predicted == ex.Positive {
			correct++
		}
	}
	return summarizeCounts(len(examples), correct, tp, fp, fn, loss), nil
}

// CrossValidateLogistic performs k-fold cross-validation
func (t *Trainer) CrossValidateLogistic(examples []LabeledVector, k int) (CrossValidationResult, error) {
	if k <= 1 {
		return CrossValidationResult{}, fmt.Errorf("%w: k must be greater than 1", ErrInvalidInput)
	}
	if len(examples) < k {
		return CrossValidationResult{}, fmt.Errorf("%w: %d examples for %d folds", ErrInvalidInput, len(examples), k)
	}

	foldSize := len(examples) / k
	results := make([]ValidationResult, k)

	for fold := 0; fold < k; fold++ {
		start := fold * foldSize
		end := start + foldSize
		if fold == k-1 {
			end = len(examples)
		}

		testData := examples[start:end]
		trainData := make([]LabeledVector, 0, len(examples)-len(testData))
		trainData = append(trainData, examples[:start]...)
		trainData = append(trainData, examples[end:]...)

		foldConfig := t.config
		foldConfig.EarlyStopping = false
		lc, _, err := NewTrainer(foldConfig).TrainLogistic(trainData)
		if err != nil {
			return CrossValidationResult{}, err
		}
		if results[fold], err = t.Evaluate(lc, testData); err != nil {
			return CrossValidationResult{}, err
		}
	}

	var meanAcc, meanLoss float64
	for _, result := range results {
		meanAcc += result.Accuracy
		meanLoss += result.Loss
	}
	meanAcc /= float64(k)
	meanLoss /= float64(k)

	var varAcc, varLoss float64
	for _, result := range results {
		varAcc += math.Pow(result.Accuracy-meanAcc, 2)
		varLoss += math.Pow(result.Loss-meanLoss, 2)
	}

	return CrossValidationResult{
		MeanAccuracy: meanAcc,
		StdAccuracy:  math.Sqrt(varAcc / float64(k)),
		MeanLoss:     meanLoss,
		StdLoss:      math.Sqrt(varLoss / float64(k)),
		FoldResults:  results,
	}, nil
}
