package aspectsum

import (
	"bytes"
	"encoding/gob"
	"errors"
	"math"
	"os"
	"testing"
	"testing/fstest"
)

func TestLogisticClassifierProbability(t *testing.T) {
	lc, err := NewLogisticClassifier([]string{"a", "b"}, []float64{2, -1}, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	fv := NewFeatureVector(map[string]float64{"a": 1, "b": 3, "ignored": 100})
	got, err := lc.Probability(fv)
	if err != nil {
		t.Fatal(err)
	}
	expected := 1 / (1 + math.Exp(-(0.5 + 2 - 3)))
	if math.Abs(got-expected) > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestLogisticClassifierMissingFeature(t *testing.T) {
	lc, _ := NewLogisticClassifier([]string{"a", "b"}, []float64{1, 1}, 0)
	_, err := lc.Probability(NewFeatureVector(map[string]float64{"a": 1}))
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestNewLogisticClassifierDimensionMismatch(t *testing.T) {
	if _, err := NewLogisticClassifier([]string{"a"}, []float64{1, 2}, 0); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestSigmoidIsStable(t *testing.T) {
	for _, z := range []float64{-1000, -30, 0, 30, 1000} {
		p := sigmoid(z)
		if math.IsNaN(p) || p < 0 || p > 1 {
			t.Errorf("sigmoid(%v) = %v", z, p)
		}
	}
	if sigmoid(0) != 0.5 {
		t.Errorf("sigmoid(0) = %v", sigmoid(0))
	}
}

func TestLogisticClassifierWriteLoad(t *testing.T) {
	dir := t.TempDir()
	lc, _ := NewLogisticClassifier([]string{FeatRaw, FeatFracPos}, []float64{1.5, -0.25}, 0.1)
	if err := lc.Write(dir + "/" + OpinionDir); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadLogisticClassifier(os.DirFS(dir), OpinionDir)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Intercept != lc.Intercept || len(loaded.Weights) != 2 || loaded.Features[1] != FeatFracPos {
		t.Errorf("Loaded classifier differs: %+v", loaded)
	}
}

func gobBytes(t *testing.T, lc *LogisticClassifier) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(lc); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestModelFromFS(t *testing.T) {
	opinion, sentiment := testClassifiers(t)
	fsys := fstest.MapFS{
		OpinionDir + "/" + logisticFile:   {Data: gobBytes(t, opinion)},
		SentimentDir + "/" + logisticFile: {Data: gobBytes(t, sentiment)},
	}
	for _, name := range []string{PositiveWordsFile, NegativeWordsFile, SubjectivityFile} {
		data, err := os.ReadFile("testdata/model/" + name)
		if err != nil {
			t.Fatal(err)
		}
		fsys[name] = &fstest.MapFile{Data: data}
	}

	m, err := ModelFromFS("en-test", fsys, UsingTagger(newStubTagger("pizza")))
	if err != nil {
		t.Fatalf("Failed to load model: %v", err)
	}
	if m.Name != "en-test" {
		t.Errorf("Expected name en-test, got %q", m.Name)
	}

	fv := NewFeatureVector(map[string]float64{FeatRaw: 1, FeatFracPos: 0.2, FeatFracNeg: 0})
	p, err := m.Opinion().OpinionatedProbability(fv)
	if err != nil || p < 0.99 {
		t.Errorf("Expected confident opinion, got %v (%v)", p, err)
	}
	p, err = m.Sentiment().PositiveProbability(fv)
	if err != nil || p < 0.99 {
		t.Errorf("Expected confident positive, got %v (%v)", p, err)
	}
}

func TestNewModelRejectsUnknownFeatures(t *testing.T) {
	bad, _ := NewLogisticClassifier([]string{"bag_of_words"}, []float64{1}, 0)
	_, sentiment := testClassifiers(t)
	if _, err := NewModel(testLexicons(t), bad, sentiment); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestModelFromFSMissingArtifact(t *testing.T) {
	fsys := fstest.MapFS{}
	for _, name := range []string{PositiveWordsFile, NegativeWordsFile, SubjectivityFile} {
		data, _ := os.ReadFile("testdata/model/" + name)
		fsys[name] = &fstest.MapFile{Data: data}
	}
	if _, err := ModelFromFS("en-test", fsys); err == nil {
		t.Error("Expected an error for missing classifier artifacts")
	}
}
