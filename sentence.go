package aspectsum

import (
	"fmt"
	"strings"
	"sync"
)

// AnalyzedSentence is the capability the Business aggregation relies on.
type AnalyzedSentence interface {
	Featurizable
	Text() string
	User() string
	Aspects() [][]string
	Features() (FeatureVector, error)
	HasAspect(aspect string) bool
}

// A Sentence is one sentence of a review with its linguistic analysis.
//
// Construction has two phases: NewSentence tokenizes, tags, lemmatizes and
// extracts aspects; EnsureFeatures computes the feature vector once.
type Sentence struct {
	raw     string
	tokens  []string
	tagged  []TaggedToken
	lemmas  []TaggedToken
	aspects [][]string
	review  *Review

	mu       sync.Mutex
	computed bool
	features FeatureVector
	featErr  error
}

// NewSentence runs the first analysis phase on raw. review may be nil.
func NewSentence(m *Model, raw string, review *Review) *Sentence {
	s := &Sentence{raw: raw, review: review}
	s.tokens = m.WordTokenize(raw)
	s.tagged = m.PosTag(s.tokens)
	s.lemmas = m.Lemmatize(s.tagged)
	s.aspects = m.Extractor().Extract(s.tagged)
	return s
}

// EnsureFeatures computes and stores the feature vector on first call;
// later calls return the stored result.
func (s *Sentence) EnsureFeatures(f *CompositeFeaturizer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.computed {
		s.features, s.featErr = f.Vectorize(s)
		s.computed = true
	}
	return s.featErr
}

// Features returns the vector computed by EnsureFeatures.
func (s *Sentence) Features() (FeatureVector, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.computed {
		return FeatureVector{}, fmt.Errorf("%w: features of %q not computed", ErrInvalidInput, s.raw)
	}
	return s.features, s.featErr
}

// Text returns the raw sentence.
func (s *Sentence) Text() string { return s.raw }

// Tokens returns the lower-cased words.
func (s *Sentence) Tokens() []string { return s.tokens }

// Tagged returns the (word, tag) pairs.
func (s *Sentence) Tagged() []TaggedToken { return s.tagged }

// Lemmas returns the (lemma, tag) pairs.
func (s *Sentence) Lemmas() []TaggedToken { return s.lemmas }

// Aspects returns the candidate aspects found in the sentence.
func (s *Sentence) Aspects() [][]string { return s.aspects }

// Review returns the review the sentence came from, if any.
func (s *Sentence) Review() *Review { return s.review }

// Stars returns the originating review's star rating, or 0.
func (s *Sentence) Stars() int {
	if s.review == nil {
		return 0
	}
	return s.review.Stars
}

// User returns the originating reviewer's name.
func (s *Sentence) User() string {
	if s.review == nil {
		return ""
	}
	return s.review.UserName
}

// HasAspect reports whether every word of aspect appears among the tokens.
func (s *Sentence) HasAspect(aspect string) bool {
	return containsAll(s.tokens, strings.Fields(aspect))
}

func (s *Sentence) String() string {
	return s.raw
}

func containsAll(tokens, words []string) bool {
	if len(words) == 0 {
		return false
	}
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	for _, w := range words {
		if !set[w] {
			return false
		}
	}
	return true
}
