package aspectsum

import (
	"reflect"
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		text     string
		expected []string
	}{
		{"The pizza was great.", []string{"the", "pizza", "was", "great", "."}},
		{"Service, not so much.", []string{"service", ",", "not", "so", "much", "."}},
		{"I don't like it", []string{"i", "do", "n't", "like", "it"}},
		{"They'll be back!", []string{"they", "'ll", "be", "back", "!"}},
		{"It cost $20 (tax incl.)", []string{"it", "cost", "$", "20", "(", "tax", "incl", ".", ")"}},
		{"Loved it :)", []string{"loved", "it", ":)"}},
		{"It’s “fine”", []string{"it", "'s", `"`, "fine", `"`}},
		{"", nil},
	}

	tok := NewIterTokenizer()
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := tok.Tokenize(tt.text)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Tokenize(%q)\nExpected: %q\nGot:      %q", tt.text, tt.expected, got)
			}
		})
	}
}

func TestTokenizeCaseChangingRunes(t *testing.T) {
	// Lower-casing changes the byte length of these spans, so split points
	// must come from the span itself.
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{"growing", "ȺȺȺȺ's oven", []string{"ⱥⱥⱥⱥ", "'s", "oven"}},
		{"shrinking", "İİİ's food", []string{strings.ToLower("İİİ"), "'s", "food"}},
		{"invalid bytes", "\xff\xff\xff\xffa'll go.", []string{"\uFFFD\uFFFD\uFFFD\uFFFDa", "'ll", "go", "."}},
		{"upper contraction", "DON'T GO", []string{"do", "n't", "go"}},
	}

	tok := NewIterTokenizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tok.Tokenize(tt.text)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Tokenize(%q)\nExpected: %q\nGot:      %q", tt.text, tt.expected, got)
			}
		})
	}
}

func TestTokenizePreservingCase(t *testing.T) {
	got := NewIterTokenizer(PreservingCase(true)).Tokenize("Great Pizza")
	expected := []string{"Great", "Pizza"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestPunktSegmenter(t *testing.T) {
	seg, err := NewPunktSegmenter()
	if err != nil {
		t.Fatalf("Failed to load segmenter: %v", err)
	}

	got := seg.Segment("The pizza was great. We sat by the window.  ")
	expected := []string{"The pizza was great.", "We sat by the window."}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %q, got %q", expected, got)
	}

	if got := seg.Segment("   "); len(got) != 0 {
		t.Errorf("Expected no sentences for blank text, got %q", got)
	}
}

func BenchmarkTokenize(b *testing.B) {
	tok := NewIterTokenizer()
	text := "The crust wasn't as crispy as I'd hoped, but the sauce was amazing and the staff were friendly."
	for i := 0; i < b.N; i++ {
		tok.Tokenize(text)
	}
}
