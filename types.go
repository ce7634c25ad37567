package aspectsum

import (
	"errors"
	"fmt"
)

// ErrInvalidInput reports a construction-time invariant violation, such as a
// corpus that spans more than one business or a sentence with no tokens.
var ErrInvalidInput = errors.New("aspectsum: invalid input")

// ErrUnknownTag is returned by a Lemmatizer that cannot map a part-of-speech
// tag onto one of its word classes.
var ErrUnknownTag = errors.New("aspectsum: unrecognized part-of-speech tag")

// A TaggedToken pairs a word (or lemma) with its Penn Treebank tag.
type TaggedToken struct {
	Text string // The token's content.
	Tag  string // The token's part-of-speech tag.
}

// String returns the token in word/TAG form.
func (t TaggedToken) String() string {
	return t.Text + "/" + t.Tag
}

// ReviewRecord is one row of the merged review corpus.
type ReviewRecord struct {
	BusinessID       string
	BusinessName     string
	OverallStars     float64
	Categories       []string
	Ambiance         []string
	ReviewCount      int
	ReviewID         string
	ReviewStars      int
	Text             string
	UserID           string
	UserName         string
	UserAverageStars float64
}

// Polarity is the outcome of the two-stage decision cascade for a sentence.
type Polarity int

const (
	Dropped Polarity = iota // Objective or ambiguous; not part of the summary
	PositiveSentence
	NegativeSentence
)

// String returns the name of the polarity.
func (p Polarity) String() string {
	switch p {
	case Dropped:
		return "dropped"
	case PositiveSentence:
		return "positive"
	case NegativeSentence:
		return "negative"
	}
	return fmt.Sprintf("Polarity(%d)", int(p))
}

// EncodedSentence is a summarized sentence ready for display.
type EncodedSentence struct {
	Text            string  `json:"text"`
	User            string  `json:"user"`
	ProbOpinionated float64 `json:"prob_opinionated"`
	ProbPositive    float64 `json:"prob_positive"`
	ProbNegative    float64 `json:"prob_negative"`
	SortKey         float64 `json:"sort_key"`
}

// AspectSummary holds the classified sentences for a single aspect.
type AspectSummary struct {
	Positive         []EncodedSentence `json:"pos"`
	Negative         []EncodedSentence `json:"neg"`
	NumPositive      int               `json:"num_pos"`
	NumNegative      int               `json:"num_neg"`
	FractionPositive float64           `json:"frac_pos"`
}

// BusinessSummary is the final aspect-based summary of a business.
type BusinessSummary struct {
	BusinessID   string                   `json:"business_id"`
	BusinessName string                   `json:"business_name"`
	OverallStars float64                  `json:"overall_stars"`
	Categories   []string                 `json:"categories,omitempty"`
	Ambiance     []string                 `json:"ambiance,omitempty"`
	Aspects      map[string]AspectSummary `json:"aspect_summary"`
}
