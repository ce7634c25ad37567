package aspectsum

// A Review is one reviewer's text about a business, split into sentences.
type Review struct {
	ID       string
	UserID   string
	UserName string
	Stars    int
	Text     string

	sentences []AnalyzedSentence
}

// NewReview splits rec.Text into sentences and analyzes each one. Sentences
// without a single token are skipped.
func NewReview(m *Model, rec ReviewRecord) *Review {
	r := &Review{
		ID:       rec.ReviewID,
		UserID:   rec.UserID,
		UserName: rec.UserName,
		Stars:    rec.ReviewStars,
		Text:     rec.Text,
	}
	for _, raw := range m.SentenceSplit(rec.Text) {
		s := NewSentence(m, raw, r)
		if len(s.Tokens()) == 0 {
			continue
		}
		r.sentences = append(r.sentences, s)
	}
	return r
}

// Sentences returns the review's sentences in order.
func (r *Review) Sentences() []AnalyzedSentence {
	return r.sentences
}

func (r *Review) String() string {
	return r.Text
}
