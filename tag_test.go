package aspectsum

import (
	"reflect"
	"testing"

	"github.com/jdkato/prose/v2"
)

func TestAlignTags(t *testing.T) {
	tests := []struct {
		name      string
		tokens    []string
		predicted []prose.Token
		expected  []TaggedToken
	}{
		{
			"one to one",
			[]string{"was", "n't"},
			[]prose.Token{{Text: "was", Tag: "VBD"}, {Text: "n't", Tag: "RB"}},
			[]TaggedToken{{"was", "VBD"}, {"n't", "RB"}},
		},
		{
			"merged emoticon",
			[]string{"nice", ":)"},
			[]prose.Token{{Text: "nice", Tag: "JJ"}, {Text: ":", Tag: ":"}, {Text: ")", Tag: ")"}},
			[]TaggedToken{{"nice", "JJ"}, {":)", ")"}},
		},
		{
			"merged ellipsis",
			[]string{"ok", "..."},
			[]prose.Token{{Text: "ok", Tag: "JJ"}, {Text: ".", Tag: "."}, {Text: ".", Tag: "."}, {Text: ".", Tag: "."}},
			[]TaggedToken{{"ok", "JJ"}, {"...", "."}},
		},
		{
			"tagger joined our tokens",
			[]string{"do", "n't", "go"},
			[]prose.Token{{Text: "don't", Tag: "VBP"}, {Text: "go", Tag: "VB"}},
			[]TaggedToken{{"do", "VBP"}, {"n't", "VB"}, {"go", fallbackTag}},
		},
		{
			"nothing predicted",
			[]string{"pizza"},
			nil,
			[]TaggedToken{{"pizza", fallbackTag}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := alignTags(tt.tokens, tt.predicted)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPerceptronTagger(t *testing.T) {
	tagger := NewPerceptronTagger()
	tok := NewIterTokenizer()

	tests := []struct {
		text     string
		expected []TaggedToken
	}{
		{"The pizza wasn't great.", []TaggedToken{
			{"the", "DT"}, {"pizza", "NN"}, {"was", "VBD"}, {"n't", "RB"}, {"great", "JJ"}, {".", "."},
		}},
		{"Luigi's oven is hot", nil},
		{"Loved it :)", nil},
		{"Well ... fine", nil},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			tokens := tok.Tokenize(tt.text)
			got := tagger.Tag(tokens)
			if len(got) != len(tokens) {
				t.Fatalf("Expected %d tags, got %d: %v", len(tokens), len(got), got)
			}
			for i, tagged := range got {
				if tagged.Text != tokens[i] || tagged.Tag == "" {
					t.Errorf("Token %d: expected %q with a tag, got %v", i, tokens[i], tagged)
				}
			}
			if tt.expected != nil && !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}

	if got := tagger.Tag(nil); len(got) != 0 {
		t.Errorf("Expected no tags for no tokens, got %v", got)
	}
}

func TestDefaultModelTagsSentences(t *testing.T) {
	opinion, sentiment := testClassifiers(t)
	m, err := NewModel(testLexicons(t), opinion, sentiment)
	if err != nil {
		t.Fatalf("Failed to build model: %v", err)
	}

	s := NewSentence(m, "The pizza wasn't great.", nil)
	tagged := s.Tagged()
	if len(tagged) != len(s.Tokens()) {
		t.Fatalf("Expected %d tags, got %d", len(s.Tokens()), len(tagged))
	}
	if tagged[1].Text != "pizza" || tagged[1].Tag != "NN" {
		t.Errorf("Expected pizza/NN, got %v", tagged[1])
	}
}
