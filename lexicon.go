package aspectsum

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"
)

// Lexicon file names inside a model directory.
const (
	PositiveWordsFile = "positive-words.txt"
	NegativeWordsFile = "negative-words.txt"
	SubjectivityFile  = "subjclueslen1-HLTEMNLP05.tff"
)

// PolarityLexicon is a pair of positive and negative opinion word lists.
type PolarityLexicon struct {
	positive map[string]bool
	negative map[string]bool
}

// NewPolarityLexicon builds a lexicon from in-memory word lists.
func NewPolarityLexicon(positive, negative []string) *PolarityLexicon {
	pl := &PolarityLexicon{
		positive: make(map[string]bool, len(positive)),
		negative: make(map[string]bool, len(negative)),
	}
	for _, w := range positive {
		pl.positive[strings.ToLower(w)] = true
	}
	for _, w := range negative {
		pl.negative[strings.ToLower(w)] = true
	}
	return pl
}

// IsPositive reports whether word is in the positive list.
func (pl *PolarityLexicon) IsPositive(word string) bool {
	return pl.positive[word]
}

// IsNegative reports whether word is in the negative list.
func (pl *PolarityLexicon) IsNegative(word string) bool {
	return pl.negative[word]
}

// Size returns the number of positive and negative entries.
func (pl *PolarityLexicon) Size() (int, int) {
	return len(pl.positive), len(pl.negative)
}

// ReadWordList reads an opinion word list: a free-form header, a blank line,
// then one word per line.
func ReadWordList(r io.Reader) ([]string, error) {
	var words []string
	started := false
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !started {
			if line == "" {
				started = true
			}
			continue
		}
		if line != "" {
			words = append(words, line)
		}
	}
	return words, scanner.Err()
}

// LoadPolarityLexicon reads positive-words.txt and negative-words.txt from fsys.
func LoadPolarityLexicon(fsys fs.FS) (*PolarityLexicon, error) {
	positive, err := readWordListFile(fsys, PositiveWordsFile)
	if err != nil {
		return nil, err
	}
	negative, err := readWordListFile(fsys, NegativeWordsFile)
	if err != nil {
		return nil, err
	}
	return NewPolarityLexicon(positive, negative), nil
}

func readWordListFile(fsys fs.FS, name string) ([]string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("aspectsum: opening %s: %w", name, err)
	}
	defer f.Close()

	words, err := ReadWordList(f)
	if err != nil {
		return nil, fmt.Errorf("aspectsum: reading %s: %w", name, err)
	}
	return words, nil
}

// AnyPOS is the subjectivity lexicon's part-of-speech wildcard.
const AnyPOS = "anypos"

// SubjectivityClue is one entry of the subjectivity lexicon.
type SubjectivityClue struct {
	Type          string // strongsubj or weaksubj
	PriorPolarity string // positive, negative, both or neutral
}

type clueKey struct {
	word string
	pos  string
}

// SubjectivityLexicon maps (word, part of speech) to a subjectivity clue.
type SubjectivityLexicon struct {
	clues map[clueKey]SubjectivityClue
}

// ReadSubjectivityLexicon parses "key=value" records separated by spaces, one
// clue per line. Fields without "=" and lines missing word1/pos1 are skipped.
func ReadSubjectivityLexicon(r io.Reader) (*SubjectivityLexicon, error) {
	sl := &SubjectivityLexicon{clues: make(map[clueKey]SubjectivityClue)}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := map[string]string{}
		for _, field := range strings.Fields(scanner.Text()) {
			key, value, ok := strings.Cut(field, "=")
			if !ok {
				continue
			}
			fields[key] = value
		}
		word, pos := fields["word1"], fields["pos1"]
		if word == "" || pos == "" {
			continue
		}
		sl.clues[clueKey{word: word, pos: pos}] = SubjectivityClue{
			Type:          fields["type"],
			PriorPolarity: fields["priorpolarity"],
		}
	}
	return sl, scanner.Err()
}

// LoadSubjectivityLexicon reads the subjectivity clue file from fsys.
func LoadSubjectivityLexicon(fsys fs.FS) (*SubjectivityLexicon, error) {
	f, err := fsys.Open(SubjectivityFile)
	if err != nil {
		return nil, fmt.Errorf("aspectsum: opening %s: %w", SubjectivityFile, err)
	}
	defer f.Close()

	sl, err := ReadSubjectivityLexicon(f)
	if err != nil {
		return nil, fmt.Errorf("aspectsum: reading %s: %w", SubjectivityFile, err)
	}
	return sl, nil
}

// Lookup returns the clue for word under pos, falling back to the
// part-of-speech agnostic entry. A miss is not an error.
func (sl *SubjectivityLexicon) Lookup(word, pos string) (SubjectivityClue, bool) {
	if clue, ok := sl.clues[clueKey{word: word, pos: pos}]; ok {
		return clue, true
	}
	clue, ok := sl.clues[clueKey{word: word, pos: AnyPOS}]
	return clue, ok
}

// Len returns the number of clues.
func (sl *SubjectivityLexicon) Len() int {
	return len(sl.clues)
}

// Lexicons bundles every static word list the featurizers read.
type Lexicons struct {
	Polarity     *PolarityLexicon
	Subjectivity *SubjectivityLexicon
}

// LoadLexicons reads all lexicon files from fsys.
func LoadLexicons(fsys fs.FS) (*Lexicons, error) {
	polarity, err := LoadPolarityLexicon(fsys)
	if err != nil {
		return nil, err
	}
	subjectivity, err := LoadSubjectivityLexicon(fsys)
	if err != nil {
		return nil, err
	}
	return &Lexicons{Polarity: polarity, Subjectivity: subjectivity}, nil
}

// Vocabulary returns every distinct word of both lexicons.
func (lex *Lexicons) Vocabulary() []string {
	seen := map[string]bool{}
	var words []string
	add := func(w string) {
		if !seen[w] {
			seen[w] = true
			words = append(words, w)
		}
	}
	if lex.Polarity != nil {
		for w := range lex.Polarity.positive {
			add(w)
		}
		for w := range lex.Polarity.negative {
			add(w)
		}
	}
	if lex.Subjectivity != nil {
		for k := range lex.Subjectivity.clues {
			add(k.word)
		}
	}
	sort.Strings(words)
	return words
}
