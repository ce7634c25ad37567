package aspectsum

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// A Model holds every read-only resource the analysis pipeline needs:
// segmenter, tokenizer, tagger, lemmatizer, lexicon featurizers, aspect
// extractor and the two pre-trained classifiers. It is built once and is safe
// for concurrent use by any number of businesses.
type Model struct {
	Name string

	segmenter  SentenceSegmenter
	tokenizer  WordTokenizer
	tagger     Tagger
	lemmatizer Lemmatizer
	featurizer *CompositeFeaturizer
	extractor  *AspectExtractor
	opinion    OpinionModel
	sentiment  SentimentModel
	logger     zerolog.Logger
}

// A ModelOpt replaces one of the Model's default components.
type ModelOpt func(m *Model)

// UsingTagger specifies the part-of-speech tagger to use.
func UsingTagger(t Tagger) ModelOpt {
	return func(m *Model) {
		m.tagger = t
	}
}

// UsingTokenizer specifies the word tokenizer to use.
func UsingTokenizer(t WordTokenizer) ModelOpt {
	return func(m *Model) {
		m.tokenizer = t
	}
}

// UsingSegmenter specifies the sentence segmenter to use.
func UsingSegmenter(s SentenceSegmenter) ModelOpt {
	return func(m *Model) {
		m.segmenter = s
	}
}

// UsingLemmatizer specifies the lemmatizer to use.
func UsingLemmatizer(l Lemmatizer) ModelOpt {
	return func(m *Model) {
		m.lemmatizer = l
	}
}

// UsingLogger sets the logger shared by everything built from the Model.
func UsingLogger(l zerolog.Logger) ModelOpt {
	return func(m *Model) {
		m.logger = l
	}
}

// NewModel assembles a Model from loaded lexicons and classifiers. Components
// not supplied through opts are created with their defaults.
func NewModel(lex *Lexicons, opinion, sentiment Classifier, opts ...ModelOpt) (*Model, error) {
	if lex == nil || lex.Polarity == nil || lex.Subjectivity == nil {
		return nil, fmt.Errorf("%w: model needs polarity and subjectivity lexicons", ErrInvalidInput)
	}
	if opinion == nil || sentiment == nil {
		return nil, fmt.Errorf("%w: model needs opinion and sentiment classifiers", ErrInvalidInput)
	}

	m := &Model{
		Name:      "en-aspects",
		opinion:   OpinionModel{opinion},
		sentiment: SentimentModel{sentiment},
		logger:    zerolog.Nop(),
	}
	for _, applyOpt := range opts {
		applyOpt(m)
	}

	var err error
	if m.segmenter == nil {
		if m.segmenter, err = NewPunktSegmenter(); err != nil {
			return nil, fmt.Errorf("aspectsum: loading sentence segmenter: %w", err)
		}
	}
	if m.tokenizer == nil {
		m.tokenizer = NewIterTokenizer()
	}
	if m.tagger == nil {
		m.tagger = NewPerceptronTagger()
	}
	if m.lemmatizer == nil {
		m.lemmatizer = NewDictLemmatizer(lex.Vocabulary())
	}

	m.featurizer = NewCompositeFeaturizer(
		NewPolarityFeaturizer(lex.Polarity),
		POSFeaturizer{},
		NewSubjectivityFeaturizer(lex.Subjectivity),
	)
	m.extractor = NewAspectExtractor()

	names := DefaultFeatureNames()
	for _, c := range []Classifier{opinion, sentiment} {
		if lc, ok := c.(*LogisticClassifier); ok {
			if err := lc.Check(names); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// ModelFromFS loads lexicons and classifier artifacts from fsys.
func ModelFromFS(name string, fsys fs.FS, opts ...ModelOpt) (*Model, error) {
	lex, err := LoadLexicons(fsys)
	if err != nil {
		return nil, err
	}
	opinion, err := LoadLogisticClassifier(fsys, OpinionDir)
	if err != nil {
		return nil, err
	}
	sentiment, err := LoadLogisticClassifier(fsys, SentimentDir)
	if err != nil {
		return nil, err
	}

	m, err := NewModel(lex, opinion, sentiment, opts...)
	if err != nil {
		return nil, err
	}
	m.Name = name
	return m, nil
}

// ModelFromDisk loads a Model from the user-provided directory.
func ModelFromDisk(path string, opts ...ModelOpt) (*Model, error) {
	return ModelFromFS(filepath.Base(path), os.DirFS(path), opts...)
}

// SentenceSplit splits raw review text into sentences.
func (m *Model) SentenceSplit(text string) []string {
	return m.segmenter.Segment(text)
}

// WordTokenize splits a sentence into lower-cased words.
func (m *Model) WordTokenize(sentence string) []string {
	return m.tokenizer.Tokenize(sentence)
}

// PosTag tags each token.
func (m *Model) PosTag(tokens []string) []TaggedToken {
	return m.tagger.Tag(tokens)
}

// Lemmatize lemmatizes every token, retrying without the tag when the
// lemmatizer does not recognize it. The original tag is kept.
func (m *Model) Lemmatize(tagged []TaggedToken) []TaggedToken {
	out := make([]TaggedToken, len(tagged))
	for i, tok := range tagged {
		lemma, err := m.lemmatizer.LemmaTagged(tok.Text, tok.Tag)
		if err != nil {
			if !errors.Is(err, ErrUnknownTag) {
				m.logger.Debug().Err(err).Str("word", tok.Text).Msg("lemmatizer error")
			}
			lemma = m.lemmatizer.Lemma(tok.Text)
		}
		out[i] = TaggedToken{Text: lemma, Tag: tok.Tag}
	}
	return out
}

// Featurizer returns the composite featurizer.
func (m *Model) Featurizer() *CompositeFeaturizer {
	return m.featurizer
}

// Extractor returns the aspect extractor.
func (m *Model) Extractor() *AspectExtractor {
	return m.extractor
}

// Opinion returns the opinion classifier.
func (m *Model) Opinion() OpinionModel {
	return m.opinion
}

// Sentiment returns the sentiment classifier.
func (m *Model) Sentiment() SentimentModel {
	return m.sentiment
}

// Logger returns the Model's logger.
func (m *Model) Logger() zerolog.Logger {
	return m.logger
}
