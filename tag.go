package aspectsum

import (
	"strings"

	"github.com/jdkato/prose/v2"
)

// A Tagger assigns a Penn Treebank tag to every token of a sentence. The
// result must have the same length as the input.
type Tagger interface {
	Tag(tokens []string) []TaggedToken
}

// fallbackTag is assigned when a token cannot be aligned with the tagger's
// own tokenization.
const fallbackTag = "NN"

// proseTagger wraps the averaged perceptron shipped with prose.
type proseTagger struct {
	model *prose.Model
}

// NewPerceptronTagger loads the pre-trained English averaged perceptron once
// so that every sentence reuses the same weights.
func NewPerceptronTagger() Tagger {
	return &proseTagger{model: prose.ModelFromData("en-tagger")}
}

// Tag tags pre-tokenized words. prose re-tokenizes its input, so its tokens
// are aligned back onto ours by concatenation.
func (pt *proseTagger) Tag(tokens []string) []TaggedToken {
	tagged := make([]TaggedToken, len(tokens))
	if len(tokens) == 0 {
		return tagged
	}

	doc, err := prose.NewDocument(
		strings.Join(tokens, " "),
		prose.UsingModel(pt.model),
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		for i, tok := range tokens {
			tagged[i] = TaggedToken{Text: tok, Tag: fallbackTag}
		}
		return tagged
	}
	return alignTags(tokens, doc.Tokens())
}

func alignTags(tokens []string, predicted []prose.Token) []TaggedToken {
	tagged := make([]TaggedToken, len(tokens))
	j := 0
	for i, tok := range tokens {
		tag := ""
		acc := ""
		for j < len(predicted) && len(acc) < len(tok) {
			acc += predicted[j].Text
			tag = predicted[j].Tag
			j++
		}
		if tag == "" {
			tag = fallbackTag
		}
		tagged[i] = TaggedToken{Text: tok, Tag: tag}
	}
	return tagged
}
