package aspectsum

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// TokenTester reports whether a token must be kept whole.
type TokenTester func(string) bool

// A WordTokenizer splits one sentence into words.
type WordTokenizer interface {
	Tokenize(string) []string
}

// A SentenceSegmenter splits raw review text into sentences.
type SentenceSegmenter interface {
	Segment(string) []string
}

// iterTokenizer splits a sentence into words.
type iterTokenizer struct {
	specialRE      *regexp.Regexp
	sanitizer      *strings.Replacer
	contractions   []string
	splitCases     []string
	suffixes       []string
	prefixes       []string
	emoticons      map[string]int
	isUnsplittable TokenTester
	preserveCase   bool
}

type TokenizerOptFunc func(*iterTokenizer)

// UsingIsUnsplittable gives a function that tests whether a token is splittable or not.
func UsingIsUnsplittable(x TokenTester) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.isUnsplittable = x
	}
}

// Use the provided special regex for unsplittable tokens.
func UsingSpecialRE(x *regexp.Regexp) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.specialRE = x
	}
}

// Use the provided sanitizer.
func UsingSanitizer(x *strings.Replacer) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.sanitizer = x
	}
}

// Use the provided suffixes.
func UsingSuffixes(x []string) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.suffixes = x
	}
}

// Use the provided prefixes.
func UsingPrefixes(x []string) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.prefixes = x
	}
}

// Use the provided map of emoticons.
func UsingEmoticons(x map[string]int) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.emoticons = x
	}
}

// Use the provided contractions.
func UsingContractions(x []string) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.contractions = x
	}
}

// PreservingCase keeps the original casing of words. By default every token
// except emoticons is lower-cased.
func PreservingCase(include bool) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.preserveCase = include
	}
}

// NewIterTokenizer is the constructor for the default word tokenizer.
func NewIterTokenizer(opts ...TokenizerOptFunc) *iterTokenizer {
	tok := new(iterTokenizer)

	tok.contractions = contractions
	tok.emoticons = emoticons
	tok.isUnsplittable = func(_ string) bool { return false }
	tok.prefixes = prefixes
	tok.sanitizer = sanitizer
	tok.specialRE = internalRE
	tok.suffixes = suffixes

	for _, applyOpt := range opts {
		applyOpt(tok)
	}

	tok.splitCases = append(tok.splitCases, tok.contractions...)

	return tok
}

func addToken(s string, toks []string) []string {
	if strings.TrimSpace(s) != "" {
		toks = append(toks, s)
	}
	return toks
}

func (t *iterTokenizer) isSpecial(token string) bool {
	_, found := t.emoticons[token]
	return found || t.specialRE.MatchString(token) || t.isUnsplittable(token)
}

func (t *iterTokenizer) doSplit(token string) []string {
	tokens := []string{}
	suffs := []string{}

	last := 0
	for token != "" && utf8.RuneCountInString(token) != last {
		if t.isSpecial(token) {
			// Emoticons and abbreviations are kept as-is.
			tokens = addToken(token, tokens)
			break
		}
		last = utf8.RuneCountInString(token)
		if p := matchPrefix(token, t.prefixes); p != "" {
			// $100 -> [$, 100].
			tokens = addToken(p, tokens)
			token = token[len(p):]
		} else if idx := hasAnyIndex(token, t.splitCases); idx > -1 {
			// they'll -> [they, 'll].
			// don't -> [do, n't].
			tokens = addToken(token[:idx], tokens)
			token = token[idx:]
		} else if sf := matchSuffix(token, t.suffixes); sf != "" {
			// Well) -> [Well, )].
			suffs = append([]string{sf}, suffs...)
			token = token[:len(token)-len(sf)]
		} else {
			tokens = addToken(token, tokens)
		}
	}

	return append(tokens, suffs...)
}

// Tokenize splits a sentence into a slice of words.
func (t *iterTokenizer) Tokenize(text string) []string {
	clean := t.sanitizer.Replace(norm.NFC.String(text))

	var tokens []string
	cache := map[string][]string{}
	for _, span := range strings.Fields(clean) {
		toks, found := cache[span]
		if !found {
			toks = t.doSplit(span)
			cache[span] = toks
		}
		for _, tok := range toks {
			if _, emoticon := t.emoticons[tok]; !emoticon && !t.preserveCase {
				tok = strings.ToLower(tok)
			}
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// matchPrefix returns the first prefix that starts s and leaves something
// behind, or "".
func matchPrefix(s string, prefixes []string) string {
	for _, prefix := range prefixes {
		if prefix != "" && len(s) > len(prefix) && strings.HasPrefix(s, prefix) {
			return prefix
		}
	}
	return ""
}

// matchSuffix returns the first suffix that ends s and leaves something
// behind, or "".
func matchSuffix(s string, suffixes []string) string {
	for _, suffix := range suffixes {
		if suffix != "" && len(s) > len(suffix) && strings.HasSuffix(s, suffix) {
			return suffix
		}
	}
	return ""
}

// hasAnyIndex returns the byte offset in s of the first split case found
// there, ignoring case. A match at position zero is not a split point.
func hasAnyIndex(s string, cases []string) int {
	for _, c := range cases {
		if idx := indexFold(s, c); idx > 0 {
			return idx
		}
	}
	return -1
}

// indexFold is a case-insensitive strings.Index. The returned offset always
// falls on a rune boundary of s.
func indexFold(s, sub string) int {
	if sub == "" {
		return -1
	}
	for i := range s {
		if i+len(sub) > len(s) {
			break
		}
		if strings.EqualFold(s[i:i+len(sub)], sub) {
			return i
		}
	}
	return -1
}

// punktSegmenter splits text into sentences with the pre-trained English
// punkt parameters.
type punktSegmenter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewPunktSegmenter returns the default sentence segmenter.
func NewPunktSegmenter() (SentenceSegmenter, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, err
	}
	return &punktSegmenter{tokenizer: tokenizer}, nil
}

// Segment returns the non-empty sentences of text in order.
func (p *punktSegmenter) Segment(text string) []string {
	var out []string
	for _, s := range p.tokenizer.Tokenize(text) {
		if trimmed := strings.TrimSpace(s.Text); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

var internalRE = regexp.MustCompile(`^(?:[A-Za-z]\.){2,}$|^[A-Z][a-z]{1,2}\.$`)
var sanitizer = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
	"&rsquo;", "'")
var contractions = []string{"'ll", "'s", "'re", "'m", "'ve", "'d", "n't"}
var suffixes = []string{",", ")", `"`, "]", "!", ";", ".", "?", ":", "'"}
var prefixes = []string{"$", "(", `"`, "["}
var emoticons = map[string]int{
	"(-8":     1,
	"(-;":     1,
	"(:":      1,
	"(=":      1,
	"-__-":    1,
	"8-)":     1,
	"8-D":     1,
	"8D":      1,
	":(":      1,
	":((":     1,
	":)":      1,
	":))":     1,
	":-(":     1,
	":-)":     1,
	":-/":     1,
	":-D":     1,
	":-P":     1,
	":-p":     1,
	":-|":     1,
	":D":      1,
	":P":      1,
	":]":      1,
	":o":      1,
	";)":      1,
	";-)":     1,
	"<3":      1,
	"=(":      1,
	"=)":      1,
	"=D":      1,
	"@_@":     1,
	"O_o":     1,
	"XD":      1,
	"^_^":     1,
	"o_O":     1,
	"xD":      1,
	"¯\\(ツ)/¯": 1,
}
