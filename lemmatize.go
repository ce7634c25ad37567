package aspectsum

import (
	"fmt"
	"strings"

	"github.com/blevesearch/snowballstem"
	"github.com/blevesearch/snowballstem/english"
)

// A Lemmatizer reduces words to their dictionary form.
type Lemmatizer interface {
	// LemmaTagged uses the part-of-speech tag to choose the lemma. It returns
	// ErrUnknownTag when the tag maps onto no word class.
	LemmaTagged(word, tag string) (string, error)
	// Lemma ignores part of speech.
	Lemma(word string) string
}

type wordClass int

const (
	nounClass wordClass = iota
	verbClass
	adjClass
	advClass
)

// detachments are the inflectional suffix rules for each word class, tried
// in order.
var detachments = map[wordClass][][2]string{
	nounClass: {
		{"s", ""}, {"ses", "s"}, {"ves", "f"}, {"xes", "x"}, {"zes", "z"},
		{"ches", "ch"}, {"shes", "sh"}, {"men", "man"}, {"ies", "y"},
	},
	verbClass: {
		{"s", ""}, {"ies", "y"}, {"es", "e"}, {"es", ""},
		{"ed", "e"}, {"ed", ""}, {"ing", "e"}, {"ing", ""},
	},
	adjClass: {
		{"er", ""}, {"est", ""}, {"er", "e"}, {"est", "e"}, {"ier", "y"}, {"iest", "y"},
	},
	advClass: {},
}

// irregular forms no suffix rule reaches.
var irregular = map[wordClass]map[string]string{
	verbClass: {
		"am": "be", "is": "be", "are": "be", "was": "be", "were": "be", "been": "be", "being": "be",
		"has": "have", "had": "have", "does": "do", "did": "do", "done": "do",
		"went": "go", "gone": "go", "ate": "eat", "eaten": "eat", "came": "come",
		"got": "get", "gotten": "get", "made": "make", "took": "take", "taken": "take",
		"brought": "bring", "bought": "buy", "felt": "feel", "left": "leave", "paid": "pay",
		"said": "say", "saw": "see", "seen": "see", "thought": "think", "told": "tell",
	},
	adjClass: {
		"better": "good", "best": "good", "worse": "bad", "worst": "bad",
		"more": "much", "most": "much", "less": "little", "least": "little",
	},
}

func classOf(tag string) (wordClass, bool) {
	switch {
	case strings.HasPrefix(tag, "NN"):
		return nounClass, true
	case strings.HasPrefix(tag, "VB"), tag == "MD":
		return verbClass, true
	case strings.HasPrefix(tag, "JJ"):
		return adjClass, true
	case strings.HasPrefix(tag, "RB"):
		return advClass, true
	}
	return 0, false
}

// dictLemmatizer checks suffix-rule candidates against a vocabulary of base
// forms and falls back to matching Snowball stems.
type dictLemmatizer struct {
	vocab map[string]bool
	stems map[string]string
}

// NewDictLemmatizer builds a lemmatizer whose base forms are vocabulary.
func NewDictLemmatizer(vocabulary []string) Lemmatizer {
	l := &dictLemmatizer{
		vocab: make(map[string]bool, len(vocabulary)),
		stems: make(map[string]string, len(vocabulary)),
	}
	for _, w := range vocabulary {
		w = strings.ToLower(w)
		l.vocab[w] = true
		s := stem(w)
		if prev, ok := l.stems[s]; !ok || len(w) < len(prev) {
			l.stems[s] = w
		}
	}
	return l
}

func stem(word string) string {
	env := snowballstem.NewEnv(word)
	english.Stem(env)
	return env.Current()
}

// Lemma returns the vocabulary word sharing word's stem, or word itself.
func (l *dictLemmatizer) Lemma(word string) string {
	for _, forms := range irregular {
		if base, ok := forms[word]; ok {
			return base
		}
	}
	if l.vocab[word] {
		return word
	}
	if base, ok := l.stems[stem(word)]; ok {
		return base
	}
	return word
}

// LemmaTagged returns the first rule-derived candidate found in the
// vocabulary. Verbs and adjectives that no rule reaches fall back to their
// irregular form or stem match; anything else is returned unchanged.
func (l *dictLemmatizer) LemmaTagged(word, tag string) (string, error) {
	class, ok := classOf(tag)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	if base, ok := irregular[class][word]; ok {
		return base, nil
	}

	for _, candidate := range candidates(word, class) {
		if l.vocab[candidate] {
			return candidate, nil
		}
	}
	if class == verbClass || class == adjClass {
		if base, ok := l.stems[stem(word)]; ok {
			return base, nil
		}
	}
	return word, nil
}

// candidates lists word followed by every suffix-rule rewrite of it.
func candidates(word string, class wordClass) []string {
	out := []string{word}
	for _, rule := range detachments[class] {
		if strings.HasSuffix(word, rule[0]) && len(word) > len(rule[0]) {
			out = append(out, strings.TrimSuffix(word, rule[0])+rule[1])
		}
	}
	return out
}
