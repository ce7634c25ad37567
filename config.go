package aspectsum

// SummaryConfig holds the tuning knobs of aspect discovery and the sentence
// decision cascade.
type SummaryConfig struct {
	// Aspect discovery.
	SingleWordThreshold float64 `yaml:"single_word_threshold"` // min count/sentences for one-word aspects
	MultiWordThreshold  float64 `yaml:"multi_word_threshold"`  // min count/sentences for multi-word aspects
	TopAspects          int     `yaml:"top_aspects"`           // most frequent phrases kept per pool

	// Sentence selection.
	MaxSentenceTokens int `yaml:"max_sentence_tokens"`

	// Decision cascade.
	OpinionThreshold           float64 `yaml:"opinion_threshold"`
	OverrideOpinionThreshold   float64 `yaml:"override_opinion_threshold"`
	OverrideSentimentThreshold float64 `yaml:"override_sentiment_threshold"`
	SentimentThreshold         float64 `yaml:"sentiment_threshold"`

	// Aspects need more than this many positive or negative sentences to be
	// reported.
	MinAspectSentences int `yaml:"min_aspect_sentences"`
}

// DefaultSummaryConfig returns the standard thresholds.
func DefaultSummaryConfig() SummaryConfig {
	return SummaryConfig{
		SingleWordThreshold:        0.012,
		MultiWordThreshold:         0.003,
		TopAspects:                 30,
		MaxSentenceTokens:          30,
		OpinionThreshold:           0.7,
		OverrideOpinionThreshold:   0.6,
		OverrideSentimentThreshold: 0.95,
		SentimentThreshold:         0.85,
		MinAspectSentences:         5,
	}
}

// Informative reports whether a sentence is opinionated enough to summarize:
// either clearly opinionated, or borderline with a very confident sentiment.
func (c SummaryConfig) Informative(pOpinionated, pPositive float64) bool {
	confidence := pPositive
	if 1-pPositive > confidence {
		confidence = 1 - pPositive
	}
	return pOpinionated > c.OpinionThreshold ||
		(confidence > c.OverrideSentimentThreshold && pOpinionated > c.OverrideOpinionThreshold)
}

// Decide runs the full cascade for one sentence.
func (c SummaryConfig) Decide(pOpinionated, pPositive float64) Polarity {
	if !c.Informative(pOpinionated, pPositive) {
		return Dropped
	}
	switch {
	case pPositive > c.SentimentThreshold:
		return PositiveSentence
	case 1-pPositive > c.SentimentThreshold:
		return NegativeSentence
	}
	return Dropped
}
