package aspectsum

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// A Business is the full review corpus of one business.
type Business struct {
	ID           string
	Name         string
	OverallStars float64
	ReviewCount  int

	categories []string
	ambiance   []string
	reviews    []*Review
	model      *Model
	config     SummaryConfig
	logger     zerolog.Logger
}

// A BusinessOpt changes how a Business is summarized.
type BusinessOpt func(b *Business)

// WithSummaryConfig replaces the default thresholds.
func WithSummaryConfig(c SummaryConfig) BusinessOpt {
	return func(b *Business) {
		b.config = c
	}
}

// WithLogger sets the logger; it defaults to the Model's.
func WithLogger(l zerolog.Logger) BusinessOpt {
	return func(b *Business) {
		b.logger = l
	}
}

type featureComputer interface {
	EnsureFeatures(f *CompositeFeaturizer) error
}

// NewBusiness analyzes every review in records, which must all share one
// business id, and computes the features of every sentence.
func NewBusiness(m *Model, records []ReviewRecord, opts ...BusinessOpt) (*Business, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty corpus", ErrInvalidInput)
	}
	first := records[0]
	for _, rec := range records[1:] {
		if rec.BusinessID != first.BusinessID {
			return nil, fmt.Errorf("%w: corpus mixes businesses %q and %q",
				ErrInvalidInput, first.BusinessID, rec.BusinessID)
		}
	}

	b := &Business{
		ID:           first.BusinessID,
		Name:         first.BusinessName,
		OverallStars: first.OverallStars,
		ReviewCount:  first.ReviewCount,
		categories:   first.Categories,
		ambiance:     first.Ambiance,
		model:        m,
		config:       DefaultSummaryConfig(),
		logger:       m.Logger(),
	}
	for _, applyOpt := range opts {
		applyOpt(b)
	}

	b.reviews = make([]*Review, 0, len(records))
	for _, rec := range records {
		b.reviews = append(b.reviews, NewReview(m, rec))
	}

	for _, s := range b.sentences() {
		if fc, ok := s.(featureComputer); ok {
			if err := fc.EnsureFeatures(m.Featurizer()); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}

// Reviews returns the reviews in input order.
func (b *Business) Reviews() []*Review {
	return b.reviews
}

// Categories returns the business categories.
func (b *Business) Categories() []string {
	return b.categories
}

// Ambiance returns the ambiance tags.
func (b *Business) Ambiance() []string {
	return b.ambiance
}

// Config returns the thresholds in use.
func (b *Business) Config() SummaryConfig {
	return b.config
}

func (b *Business) String() string {
	return b.Name
}

// SentenceCount returns the number of analyzed sentences across all reviews.
func (b *Business) SentenceCount() int {
	n := 0
	for _, r := range b.reviews {
		n += len(r.Sentences())
	}
	return n
}

func (b *Business) sentences() []AnalyzedSentence {
	var out []AnalyzedSentence
	for _, r := range b.reviews {
		out = append(out, r.Sentences()...)
	}
	return out
}

type phraseCount struct {
	phrase string
	count  int
}

// mostCommon returns the n most frequent phrases; ties keep first-seen order.
func mostCommon(phrases []string, n int) []phraseCount {
	index := map[string]int{}
	var counts []phraseCount
	for _, p := range phrases {
		if i, ok := index[p]; ok {
			counts[i].count++
			continue
		}
		index[p] = len(counts)
		counts = append(counts, phraseCount{phrase: p, count: 1})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].count > counts[j].count
	})
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// ExtractAspects returns the aspects discussed often enough across the
// corpus. The result is ordered by ascending occurrence count.
func (b *Business) ExtractAspects() []string {
	sents := b.sentences()
	if len(sents) == 0 {
		return nil
	}
	nSents := float64(len(sents))

	var single, multi []string
	for _, s := range sents {
		for _, asp := range s.Aspects() {
			switch {
			case len(asp) == 1:
				single = append(single, asp[0])
			case len(asp) > 1:
				multi = append(multi, strings.Join(asp, " "))
			}
		}
	}

	frequent := func(phrases []string, thresh float64) []phraseCount {
		var out []phraseCount
		for _, pc := range mostCommon(phrases, b.config.TopAspects) {
			if float64(pc.count)/nSents > thresh {
				out = append(out, pc)
			}
		}
		return out
	}
	singles := frequent(single, b.config.SingleWordThreshold)
	multis := frequent(multi, b.config.MultiWordThreshold)

	kept := make([]phraseCount, 0, len(singles)+len(multis))
	for _, s := range singles {
		if !subsumed(s.phrase, multis) {
			kept = append(kept, s)
		}
	}
	kept = append(kept, multis...)

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].count < kept[j].count
	})

	aspects := make([]string, len(kept))
	for i, pc := range kept {
		aspects[i] = pc.phrase
	}

	b.logger.Debug().
		Str("business", b.ID).
		Int("sentences", len(sents)).
		Int("single_candidates", len(single)).
		Int("multi_candidates", len(multi)).
		Int("aspects", len(aspects)).
		Msg("aspects extracted")
	return aspects
}

// subsumed reports whether single is a substring of any multi-word aspect.
func subsumed(single string, multis []phraseCount) bool {
	for _, m := range multis {
		if strings.Contains(m.phrase, single) {
			return true
		}
	}
	return false
}

// AspectSummary classifies every short sentence mentioning aspect.
func (b *Business) AspectSummary(aspect string) (AspectSummary, error) {
	var pos, neg []EncodedSentence
	for _, s := range b.sentences() {
		if !s.HasAspect(aspect) || len(s.Tokens()) > b.config.MaxSentenceTokens {
			continue
		}

		fv, err := s.Features()
		if err != nil {
			return AspectSummary{}, err
		}
		pOpin, err := b.model.Opinion().OpinionatedProbability(fv)
		if err != nil {
			return AspectSummary{}, err
		}
		pPos, err := b.model.Sentiment().PositiveProbability(fv)
		if err != nil {
			return AspectSummary{}, err
		}

		switch b.config.Decide(pOpin, pPos) {
		case PositiveSentence:
			pos = append(pos, encodeSentence(s, pOpin, pPos))
		case NegativeSentence:
			neg = append(neg, encodeSentence(s, pOpin, pPos))
		}
	}

	byKey := func(list []EncodedSentence) {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].SortKey > list[j].SortKey
		})
	}
	byKey(pos)
	byKey(neg)

	total := len(pos) + len(neg)
	if total == 0 {
		total = 1
	}
	return AspectSummary{
		Positive:         pos,
		Negative:         neg,
		NumPositive:      len(pos),
		NumNegative:      len(neg),
		FractionPositive: float64(len(pos)) / float64(total),
	}, nil
}

func encodeSentence(s AnalyzedSentence, pOpin, pPos float64) EncodedSentence {
	pNeg := 1 - pPos
	return EncodedSentence{
		Text:            s.Text(),
		User:            s.User(),
		ProbOpinionated: pOpin,
		ProbPositive:    pPos,
		ProbNegative:    pNeg,
		SortKey:         pOpin * maxFloat(pPos, pNeg),
	}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// AspectBasedSummary discovers aspects, summarizes each one and keeps those
// above the noise floor.
func (b *Business) AspectBasedSummary() (BusinessSummary, error) {
	out := BusinessSummary{
		BusinessID:   b.ID,
		BusinessName: b.Name,
		OverallStars: b.OverallStars,
		Categories:   b.categories,
		Ambiance:     b.ambiance,
		Aspects:      map[string]AspectSummary{},
	}
	for _, aspect := range b.ExtractAspects() {
		summary, err := b.AspectSummary(aspect)
		if err != nil {
			return BusinessSummary{}, fmt.Errorf("aspectsum: summarizing %q for %s: %w", aspect, b.ID, err)
		}
		if summary.NumPositive > b.config.MinAspectSentences || summary.NumNegative > b.config.MinAspectSentences {
			out.Aspects[aspect] = summary
		}
	}

	b.logger.Info().
		Str("business", b.ID).
		Int("reviews", len(b.reviews)).
		Int("aspects", len(out.Aspects)).
		Msg("business summarized")
	return out, nil
}
