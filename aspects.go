package aspectsum

import (
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/bbalet/stopwords"
)

// domainStopwords are review noise words treated as stopwords.
var domainStopwords = map[string]bool{
	"it's": true, "i'm": true, "star": true, "time": true, "night": true,
	"try": true, "sure": true, "times": true, "way": true, "friends": true,
}

// forbiddenAspectWords disqualify any candidate that contains them.
var forbiddenAspectWords = map[string]bool{
	"great": true, "good": true, "time": true, "friend": true, "way": true, "friends": true,
}

var punctRE = regexp.MustCompile(`^[".:;!?')(/]$`)

// AspectExtractor finds candidate aspects in a tagged sentence with a shallow
// noun-phrase grammar:
//
//	NBAR: {<NN.*|JJ>*<NN.*>}
//	NP:   {<NBAR><IN|CC><NBAR>}
//	      {<NBAR>}
type AspectExtractor struct {
	lang      string
	extra     map[string]bool
	forbidden map[string]bool
	stopCache sync.Map
}

// NewAspectExtractor returns an extractor using the English stopword list plus
// the domain noise words.
func NewAspectExtractor() *AspectExtractor {
	return &AspectExtractor{
		lang:      "en",
		extra:     domainStopwords,
		forbidden: forbiddenAspectWords,
	}
}

// Extract returns the valid noun-phrase candidates of tagged in match order.
func (ae *AspectExtractor) Extract(tagged []TaggedToken) [][]string {
	var aspects [][]string
	for _, np := range chunkNounPhrases(tagged) {
		words := make([]string, len(np))
		for i, tok := range np {
			words[i] = tok.Text
		}
		if ae.Valid(words) {
			aspects = append(aspects, words)
		}
	}
	return aspects
}

// Valid reports whether a candidate keeps at least one content word and
// contains no forbidden word.
func (ae *AspectExtractor) Valid(aspect []string) bool {
	content := 0
	for _, w := range aspect {
		if ae.forbidden[w] {
			return false
		}
		if !ae.IsStopword(w) && !punctRE.MatchString(w) {
			content++
		}
	}
	return content > 0
}

// IsStopword reports whether w is a standard or domain stopword.
func (ae *AspectExtractor) IsStopword(w string) bool {
	if w == "" || ae.extra[w] {
		return true
	}
	if cached, ok := ae.stopCache.Load(w); ok {
		return cached.(bool)
	}
	stop := hasLetter(w) && strings.TrimSpace(stopwords.CleanString(w, ae.lang, false)) == ""
	ae.stopCache.Store(w, stop)
	return stop
}

func hasLetter(w string) bool {
	for _, r := range w {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func isNounTag(tag string) bool {
	return strings.HasPrefix(tag, "NN")
}

// chunkUnit is either a base noun group or a single token outside one.
type chunkUnit struct {
	tokens []TaggedToken
	nbar   bool
}

// chunkNounPhrases applies the NBAR and NP stages and returns each NP's
// tokens in sentence order.
func chunkNounPhrases(tagged []TaggedToken) [][]TaggedToken {
	units := baseNounGroups(tagged)

	var phrases [][]TaggedToken
	for i := 0; i < len(units); i++ {
		if !units[i].nbar {
			continue
		}
		if i+2 < len(units) && !units[i+1].nbar && units[i+2].nbar {
			if tag := units[i+1].tokens[0].Tag; tag == "IN" || tag == "CC" {
				np := append(append(append([]TaggedToken{}, units[i].tokens...),
					units[i+1].tokens...), units[i+2].tokens...)
				phrases = append(phrases, np)
				i += 2
				continue
			}
		}
		phrases = append(phrases, units[i].tokens)
	}
	return phrases
}

// baseNounGroups groups each maximal run of nouns and plain adjectives up to
// its last noun.
func baseNounGroups(tagged []TaggedToken) []chunkUnit {
	var units []chunkUnit
	i := 0
	for i < len(tagged) {
		if !isNounTag(tagged[i].Tag) && tagged[i].Tag != "JJ" {
			units = append(units, chunkUnit{tokens: tagged[i : i+1]})
			i++
			continue
		}

		end, lastNoun := i, -1
		for end < len(tagged) && (isNounTag(tagged[end].Tag) || tagged[end].Tag == "JJ") {
			if isNounTag(tagged[end].Tag) {
				lastNoun = end
			}
			end++
		}

		if lastNoun < 0 {
			for ; i < end; i++ {
				units = append(units, chunkUnit{tokens: tagged[i : i+1]})
			}
			continue
		}
		units = append(units, chunkUnit{tokens: tagged[i : lastNoun+1], nbar: true})
		i = lastNoun + 1
	}
	return units
}
