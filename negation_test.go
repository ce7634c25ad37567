package aspectsum

import (
	"reflect"
	"strings"
	"testing"
)

func TestNegationSuffix(t *testing.T) {
	tests := []struct {
		text     string
		expected string
	}{
		{"the food was not good . but fine", "the food was not good_NEG . but fine"},
		{"i did n't like it at all", "i did n't like_NEG it_NEG at_NEG all_NEG"},
		{"never again ! the end", "never again_NEG ! the end"},
		{"nothing , nothing at all ; ok", "nothing ,_NEG nothing_NEG at_NEG all_NEG ; ok"},
		{"we loved it", "we loved it"},
	}

	var n NegationSuffixer
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := strings.Join(n.Suffix(strings.Fields(tt.text)), " ")
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestNegationMarkPunctuationNeverCarriesScope(t *testing.T) {
	var n NegationSuffixer
	got := n.Mark([]string{"not", ".", "good"})
	expected := []MarkedToken{{"not", false}, {".", false}, {"good", false}}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestIsNegationCue(t *testing.T) {
	for _, tok := range []string{"not", "no", "never", "n't", "couldn't", "dont", "aint"} {
		if !IsNegationCue(tok) {
			t.Errorf("Expected %q to be a negation cue", tok)
		}
	}
	for _, tok := range []string{"note", "know", "nation", "ok"} {
		if IsNegationCue(tok) {
			t.Errorf("Did not expect %q to be a negation cue", tok)
		}
	}
}
