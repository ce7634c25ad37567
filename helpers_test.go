package aspectsum

import (
	"os"
	"testing"
)

// stubTagger tags known nouns NN, sentence punctuation ".", and everything
// else DT.
type stubTagger struct {
	nouns map[string]bool
}

func newStubTagger(nouns ...string) stubTagger {
	st := stubTagger{nouns: map[string]bool{}}
	for _, n := range nouns {
		st.nouns[n] = true
	}
	return st
}

func (st stubTagger) Tag(tokens []string) []TaggedToken {
	tagged := make([]TaggedToken, len(tokens))
	for i, tok := range tokens {
		tag := "DT"
		switch {
		case st.nouns[tok]:
			tag = "NN"
		case IsClausePunctuation(tok) || tok == ",":
			tag = "."
		}
		tagged[i] = TaggedToken{Text: tok, Tag: tag}
	}
	return tagged
}

// fakeSentence is a hand-built Featurizable.
type fakeSentence struct {
	tokens []string
	tagged []TaggedToken
	lemmas []TaggedToken
	stars  int
}

func (f fakeSentence) Tokens() []string      { return f.tokens }
func (f fakeSentence) Tagged() []TaggedToken { return f.tagged }
func (f fakeSentence) Lemmas() []TaggedToken { return f.lemmas }
func (f fakeSentence) Stars() int            { return f.stars }

func testLexicons(t testing.TB) *Lexicons {
	t.Helper()
	lex, err := LoadLexicons(os.DirFS("testdata/model"))
	if err != nil {
		t.Fatalf("Failed to load lexicons: %v", err)
	}
	return lex
}

// testClassifiers returns an opinion classifier that fires on any polarity
// word and a sentiment classifier that follows the raw polarity score.
func testClassifiers(t testing.TB) (*LogisticClassifier, *LogisticClassifier) {
	t.Helper()
	opinion, err := NewLogisticClassifier([]string{FeatFracNeg, FeatFracPos}, []float64{50, 50}, -2)
	if err != nil {
		t.Fatal(err)
	}
	sentiment, err := NewLogisticClassifier([]string{FeatRaw}, []float64{5}, 0)
	if err != nil {
		t.Fatal(err)
	}
	return opinion, sentiment
}

func testModel(t testing.TB, nouns ...string) *Model {
	t.Helper()
	opinion, sentiment := testClassifiers(t)
	m, err := NewModel(testLexicons(t), opinion, sentiment, UsingTagger(newStubTagger(nouns...)))
	if err != nil {
		t.Fatalf("Failed to build model: %v", err)
	}
	return m
}

func record(business, review, user string, stars int, text string) ReviewRecord {
	return ReviewRecord{
		BusinessID:   business,
		BusinessName: "Luigi's",
		OverallStars: 4.5,
		Categories:   []string{"Pizza", "Italian"},
		ReviewID:     review,
		ReviewStars:  stars,
		Text:         text,
		UserID:       "id-" + user,
		UserName:     user,
	}
}
