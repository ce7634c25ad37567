package aspectsum

import "testing"

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		pOpin    float64
		pPos     float64
		expected Polarity
	}{
		{"clearly opinionated positive", 0.9, 0.9, PositiveSentence},
		{"clearly opinionated negative", 0.9, 0.1, NegativeSentence},
		{"opinionated but unsure", 0.9, 0.5, Dropped},
		{"opinionated just under sentiment threshold", 0.9, 0.85, Dropped},
		{"borderline with confident sentiment", 0.65, 0.97, PositiveSentence},
		{"borderline with confident negative", 0.65, 0.02, NegativeSentence},
		{"borderline without confident sentiment", 0.65, 0.9, Dropped},
		{"objective but confident", 0.55, 0.99, Dropped},
		{"objective", 0.1, 0.5, Dropped},
		{"at the opinion threshold with confident sentiment", 0.7, 0.99, PositiveSentence},
		{"at the opinion threshold without confident sentiment", 0.7, 0.9, Dropped},
	}

	cfg := DefaultSummaryConfig()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.Decide(tt.pOpin, tt.pPos); got != tt.expected {
				t.Errorf("Decide(%v, %v) = %v, expected %v", tt.pOpin, tt.pPos, got, tt.expected)
			}
		})
	}
}

func TestDecideUsesConfiguredThresholds(t *testing.T) {
	cfg := DefaultSummaryConfig()
	cfg.SentimentThreshold = 0.6
	if got := cfg.Decide(0.9, 0.7); got != PositiveSentence {
		t.Errorf("Expected positive with a lowered sentiment threshold, got %v", got)
	}
}

func TestPolarityString(t *testing.T) {
	for p, expected := range map[Polarity]string{
		Dropped:          "dropped",
		PositiveSentence: "positive",
		NegativeSentence: "negative",
		Polarity(7):      "Polarity(7)",
	} {
		if got := p.String(); got != expected {
			t.Errorf("Expected %q, got %q", expected, got)
		}
	}
}
