package aspectsum

import (
	"context"
	"errors"
	"testing"
)

func separableExamples() []LabeledVector {
	var out []LabeledVector
	for i := 0; i < 10; i++ {
		for _, raw := range []float64{-3, -2, -1, 1, 2, 3} {
			out = append(out, LabeledVector{
				Features: NewFeatureVector(map[string]float64{FeatRaw: raw, FeatHasModal: float64(i % 2)}),
				Positive: raw > 0,
			})
		}
	}
	return out
}

func TestTrainLogistic(t *testing.T) {
	var epochs int
	cfg := DefaultTrainingConfig()
	cfg.ProgressCallback = func(epoch int, loss, accuracy float64) { epochs++ }

	lc, metrics, err := NewTrainer(cfg).TrainLogistic(separableExamples())
	if err != nil {
		t.Fatal(err)
	}
	if metrics.EpochsCompleted == 0 || epochs != metrics.EpochsCompleted {
		t.Errorf("Callback saw %d epochs, metrics report %d", epochs, metrics.EpochsCompleted)
	}
	if metrics.BestAccuracy != 1 {
		t.Errorf("Expected perfect validation accuracy on separable data, got %v", metrics.BestAccuracy)
	}

	pos, err := lc.Probability(NewFeatureVector(map[string]float64{FeatRaw: 2, FeatHasModal: 0}))
	if err != nil {
		t.Fatal(err)
	}
	neg, _ := lc.Probability(NewFeatureVector(map[string]float64{FeatRaw: -2, FeatHasModal: 0}))
	if pos <= 0.5 || neg >= 0.5 {
		t.Errorf("Expected P(+|raw=2) > 0.5 > P(+|raw=-2), got %v and %v", pos, neg)
	}

	eval, err := NewTrainer(cfg).Evaluate(lc, separableExamples())
	if err != nil {
		t.Fatal(err)
	}
	if eval.Accuracy != 1 || eval.F1Score != 1 {
		t.Errorf("Unexpected evaluation %+v", eval)
	}
}

func TestTrainLogisticIsDeterministic(t *testing.T) {
	a, _, err := NewTrainer(DefaultTrainingConfig()).TrainLogistic(separableExamples())
	if err != nil {
		t.Fatal(err)
	}
	b, _, _ := NewTrainer(DefaultTrainingConfig()).TrainLogistic(separableExamples())
	for i := range a.Weights {
		if a.Weights[i] != b.Weights[i] {
			t.Fatalf("Weights differ between runs: %v vs %v", a.Weights, b.Weights)
		}
	}
}

func TestTrainLogisticErrors(t *testing.T) {
	trainer := NewTrainer(DefaultTrainingConfig())
	if _, _, err := trainer.TrainLogistic(nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Empty data: expected ErrInvalidInput, got %v", err)
	}

	ragged := []LabeledVector{
		{Features: NewFeatureVector(map[string]float64{"a": 1, "b": 1}), Positive: true},
		{Features: NewFeatureVector(map[string]float64{"a": 1}), Positive: false},
	}
	if _, _, err := trainer.TrainLogistic(ragged); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Ragged data: expected ErrInvalidInput, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := DefaultTrainingConfig()
	cfg.Context = ctx
	if _, _, err := NewTrainer(cfg).TrainLogistic(separableExamples()); !errors.Is(err, context.Canceled) {
		t.Errorf("Cancelled: expected context.Canceled, got %v", err)
	}
}

func TestCrossValidateLogistic(t *testing.T) {
	cfg := DefaultTrainingConfig()
	cfg.Iterations = 50
	trainer := NewTrainer(cfg)

	res, err := trainer.CrossValidateLogistic(separableExamples(), 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.FoldResults) != 3 {
		t.Fatalf("Expected 3 folds, got %d", len(res.FoldResults))
	}
	if res.MeanAccuracy < 0.9 {
		t.Errorf("Expected high accuracy on separable data, got %v", res.MeanAccuracy)
	}

	if _, err := trainer.CrossValidateLogistic(separableExamples(), 1); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for k=1, got %v", err)
	}
}

func TestParseSentenceLabel(t *testing.T) {
	tests := map[string]SentenceLabel{
		"positive":  LabelPositive,
		"Negative":  LabelNegative,
		" neutral ": LabelNegative,
		"objective": LabelObjective,
	}
	for in, expected := range tests {
		got, err := ParseSentenceLabel(in)
		if err != nil || got != expected {
			t.Errorf("ParseSentenceLabel(%q) = %v, %v; expected %v", in, got, err, expected)
		}
	}
	if _, err := ParseSentenceLabel("mixed"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestTrainingSet(t *testing.T) {
	m := testModel(t, "pizza", "service")
	labeled := []LabeledSentence{
		{Text: "The pizza was great.", Stars: 5, Label: LabelPositive},
		{Text: "The service was slow.", Stars: 2, Label: LabelNegative},
		{Text: "They open at noon.", Stars: 3, Label: LabelObjective},
		{Text: "   ", Stars: 3, Label: LabelPositive},
	}

	opinion, err := m.TrainingSet(labeled, OpinionTarget)
	if err != nil {
		t.Fatal(err)
	}
	if len(opinion) != 3 {
		t.Fatalf("Expected 3 opinion examples, got %d", len(opinion))
	}
	if !opinion[0].Positive || !opinion[1].Positive || opinion[2].Positive {
		t.Errorf("Unexpected opinion labels %+v", opinion)
	}
	if stars, _ := opinion[1].Features.Get(FeatReviewStars); stars != 2 {
		t.Errorf("Expected review_stars 2, got %v", stars)
	}

	sentiment, err := m.TrainingSet(labeled, SentimentTarget)
	if err != nil {
		t.Fatal(err)
	}
	if len(sentiment) != 2 || !sentiment[0].Positive || sentiment[1].Positive {
		t.Errorf("Unexpected sentiment examples %+v", sentiment)
	}
}
