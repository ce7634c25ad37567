package aspectsum

import "strings"

// negationCues is the closed set of negation words and contracted negative
// auxiliaries.
var negationCues = map[string]bool{
	"never": true, "no": true, "nothing": true, "nowhere": true, "noone": true,
	"none": true, "not": true,
	"havent": true, "hasnt": true, "hadnt": true, "cant": true, "couldnt": true,
	"shouldnt": true, "wont": true, "wouldnt": true, "dont": true, "doesnt": true,
	"didnt": true, "isnt": true, "arent": true, "aint": true,
}

// clauseMarks end a negation scope.
var clauseMarks = map[string]bool{
	".": true, ":": true, ";": true, "!": true, "?": true,
}

// IsNegationCue reports whether token opens a negation scope.
func IsNegationCue(token string) bool {
	return negationCues[token] || strings.HasSuffix(token, "n't")
}

// IsClausePunctuation reports whether token closes a negation scope.
func IsClausePunctuation(token string) bool {
	return clauseMarks[token]
}

// MarkedToken is a token with its negation-scope flag.
type MarkedToken struct {
	Text    string
	Negated bool
}

// NegSuffix is appended by Suffix to tokens inside a negation scope.
const NegSuffix = "_NEG"

// NegationSuffixer marks every token between a negation cue and the next
// clause-level punctuation mark.
type NegationSuffixer struct{}

// Mark scans tokens left to right. Punctuation closes the scope before the
// current token is marked; a cue opens it after, so the cue itself is never
// negated.
func (NegationSuffixer) Mark(tokens []string) []MarkedToken {
	marked := make([]MarkedToken, len(tokens))
	inScope := false
	for i, tok := range tokens {
		if IsClausePunctuation(tok) {
			inScope = false
		}
		marked[i] = MarkedToken{Text: tok, Negated: inScope}
		if IsNegationCue(tok) {
			inScope = true
		}
	}
	return marked
}

// Suffix returns tokens with NegSuffix appended inside negation scopes.
func (n NegationSuffixer) Suffix(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, m := range n.Mark(tokens) {
		out[i] = m.Text
		if m.Negated {
			out[i] += NegSuffix
		}
	}
	return out
}
