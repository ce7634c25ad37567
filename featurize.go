package aspectsum

import (
	"fmt"
	"sort"
)

// Featurizable is what a featurizer reads from a sentence.
type Featurizable interface {
	Tokens() []string
	Tagged() []TaggedToken
	Lemmas() []TaggedToken
	Stars() int
}

// A Featurizer scores a sentence into named numeric features.
type Featurizer interface {
	Featurize(s Featurizable) (map[string]float64, error)
}

// Feature names.
const (
	FeatRaw            = "raw"
	FeatFracPos        = "frac_pos"
	FeatFracNeg        = "frac_neg"
	FeatFracStrongSubj = "frac_strongsubj"
	FeatFracWeakSubj   = "frac_weaksubj"
	FeatTotalSubj      = "total_subj"
	FeatNumNouns       = "n_nouns"
	FeatNumAdjs        = "n_adjs"
	FeatNumAdvbs       = "n_advbs"
	FeatFracNouns      = "frac_nouns"
	FeatFracAdjs       = "frac_adjs"
	FeatFracAdvbs      = "frac_advbs"
	FeatHasPronoun     = "has_pronoun"
	FeatHasCardinal    = "has_cardinal"
	FeatHasModal       = "has_modal"
	FeatReviewStars    = "review_stars"
)

// FeatureVector is a feature mapping with a fixed, name-sorted order.
type FeatureVector struct {
	names  []string
	values []float64
}

// NewFeatureVector sorts features by name.
func NewFeatureVector(features map[string]float64) FeatureVector {
	names := make([]string, 0, len(features))
	for name := range features {
		names = append(names, name)
	}
	sort.Strings(names)

	values := make([]float64, len(names))
	for i, name := range names {
		values[i] = features[name]
	}
	return FeatureVector{names: names, values: values}
}

// Names returns the feature names in vector order.
func (fv FeatureVector) Names() []string { return fv.names }

// Values returns the feature values in vector order.
func (fv FeatureVector) Values() []float64 { return fv.values }

// Len returns the number of features.
func (fv FeatureVector) Len() int { return len(fv.names) }

// Get returns the value of the named feature.
func (fv FeatureVector) Get(name string) (float64, bool) {
	i := sort.SearchStrings(fv.names, name)
	if i < len(fv.names) && fv.names[i] == name {
		return fv.values[i], true
	}
	return 0, false
}

// Map copies the vector into a map.
func (fv FeatureVector) Map() map[string]float64 {
	out := make(map[string]float64, len(fv.names))
	for i, name := range fv.names {
		out[name] = fv.values[i]
	}
	return out
}

func emptySentenceError(kind string) error {
	return fmt.Errorf("%w: %s featurizer given a sentence with no tokens", ErrInvalidInput, kind)
}

// PolarityFeaturizer counts opinion words, flipping polarity inside negation
// scopes.
type PolarityFeaturizer struct {
	Lexicon  *PolarityLexicon
	negation NegationSuffixer
}

// NewPolarityFeaturizer returns a featurizer over lex.
func NewPolarityFeaturizer(lex *PolarityLexicon) *PolarityFeaturizer {
	return &PolarityFeaturizer{Lexicon: lex}
}

// Featurize emits raw, frac_pos and frac_neg.
func (pf *PolarityFeaturizer) Featurize(s Featurizable) (map[string]float64, error) {
	marked := pf.negation.Mark(s.Tokens())
	n := len(marked)
	if n == 0 {
		return nil, emptySentenceError("polarity")
	}

	numPos, numNeg := 0, 0
	for _, tok := range marked {
		isPos := pf.Lexicon.IsPositive(tok.Text)
		isNeg := !isPos && pf.Lexicon.IsNegative(tok.Text)
		if tok.Negated {
			isPos, isNeg = isNeg, isPos
		}
		if isPos {
			numPos++
		} else if isNeg {
			numNeg++
		}
	}

	return map[string]float64{
		FeatRaw:     float64(numPos - numNeg),
		FeatFracPos: float64(numPos) / float64(n),
		FeatFracNeg: float64(numNeg) / float64(n),
	}, nil
}

// subjTagMap maps Penn Treebank tags onto the subjectivity lexicon's classes.
var subjTagMap = map[string]string{
	"NN": "noun", "NNS": "noun", "NNP": "noun",
	"JJ": "adj", "JJR": "adj", "JJS": "adj",
	"RB": "adverb", "RBR": "adverb", "RBS": "adverb",
	"VB": "verb", "VBD": "verb", "VBG": "verb", "VBN": "verb", "VBP": "verb", "VBZ": "verb",
}

// SubjectivityFeaturizer tallies strong and weak subjective lemmas.
type SubjectivityFeaturizer struct {
	Lexicon *SubjectivityLexicon
}

// NewSubjectivityFeaturizer returns a featurizer over lex.
func NewSubjectivityFeaturizer(lex *SubjectivityLexicon) *SubjectivityFeaturizer {
	return &SubjectivityFeaturizer{Lexicon: lex}
}

// Featurize emits frac_strongsubj, frac_weaksubj and total_subj.
func (sf *SubjectivityFeaturizer) Featurize(s Featurizable) (map[string]float64, error) {
	n := len(s.Tokens())
	if n == 0 {
		return nil, emptySentenceError("subjectivity")
	}

	strong, weak := 0, 0
	for _, lemma := range s.Lemmas() {
		pos, ok := subjTagMap[lemma.Tag]
		if !ok {
			pos = "N/A"
		}
		clue, found := sf.Lexicon.Lookup(lemma.Text, pos)
		if !found {
			continue
		}
		switch clue.Type {
		case "strongsubj":
			strong++
		case "weaksubj":
			weak++
		}
	}

	return map[string]float64{
		FeatFracStrongSubj: float64(strong) / float64(n),
		FeatFracWeakSubj:   float64(weak) / float64(n),
		FeatTotalSubj:      float64(strong + weak),
	}, nil
}

var (
	nounTags    = map[string]bool{"NN": true, "NNS": true, "NNP": true, "NNPS": true}
	adjTags     = map[string]bool{"JJ": true, "JJR": true, "JJS": true}
	advTags     = map[string]bool{"RB": true, "RBR": true, "RBS": true}
	pronounTags = map[string]bool{"PRP": true, "PRP$": true}
)

// POSFeaturizer describes the part-of-speech distribution of a sentence.
type POSFeaturizer struct{}

// Featurize emits noun/adjective/adverb counts and fractions plus pronoun,
// cardinal and modal flags. "will" does not count as a modal.
func (POSFeaturizer) Featurize(s Featurizable) (map[string]float64, error) {
	tagged := s.Tagged()
	n := len(tagged)
	if n == 0 {
		return nil, emptySentenceError("part-of-speech")
	}

	var nouns, adjs, advbs int
	var pronoun, cardinal, modal bool
	for _, tok := range tagged {
		switch {
		case nounTags[tok.Tag]:
			nouns++
		case adjTags[tok.Tag]:
			adjs++
		case advTags[tok.Tag]:
			advbs++
		case pronounTags[tok.Tag]:
			pronoun = true
		case tok.Tag == "CD":
			cardinal = true
		case tok.Tag == "MD" && tok.Text != "will":
			modal = true
		}
	}

	return map[string]float64{
		FeatNumNouns:    float64(nouns),
		FeatNumAdjs:     float64(adjs),
		FeatNumAdvbs:    float64(advbs),
		FeatFracNouns:   float64(nouns) / float64(n),
		FeatFracAdjs:    float64(adjs) / float64(n),
		FeatFracAdvbs:   float64(advbs) / float64(n),
		FeatHasPronoun:  boolFeature(pronoun),
		FeatHasCardinal: boolFeature(cardinal),
		FeatHasModal:    boolFeature(modal),
	}, nil
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// CompositeFeaturizer unions its children's features in order (later
// children win on name clashes) and adds the review star rating.
type CompositeFeaturizer struct {
	children []Featurizer
}

// NewCompositeFeaturizer combines children.
func NewCompositeFeaturizer(children ...Featurizer) *CompositeFeaturizer {
	return &CompositeFeaturizer{children: children}
}

// Featurize returns the combined feature map.
func (cf *CompositeFeaturizer) Featurize(s Featurizable) (map[string]float64, error) {
	features := map[string]float64{}
	for _, child := range cf.children {
		part, err := child.Featurize(s)
		if err != nil {
			return nil, err
		}
		for name, value := range part {
			features[name] = value
		}
	}
	features[FeatReviewStars] = float64(s.Stars())
	return features, nil
}

// Vectorize returns the combined features in name-sorted order.
func (cf *CompositeFeaturizer) Vectorize(s Featurizable) (FeatureVector, error) {
	features, err := cf.Featurize(s)
	if err != nil {
		return FeatureVector{}, err
	}
	return NewFeatureVector(features), nil
}

// DefaultFeatureNames lists the names Vectorize produces for the default
// featurizer set, in vector order.
func DefaultFeatureNames() []string {
	names := []string{
		FeatRaw, FeatFracPos, FeatFracNeg,
		FeatFracStrongSubj, FeatFracWeakSubj, FeatTotalSubj,
		FeatNumNouns, FeatNumAdjs, FeatNumAdvbs,
		FeatFracNouns, FeatFracAdjs, FeatFracAdvbs,
		FeatHasPronoun, FeatHasCardinal, FeatHasModal,
		FeatReviewStars,
	}
	sort.Strings(names)
	return names
}
