package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/opinionmining/aspectsum"
)

var labeledAliases = map[string][]string{
	"sentence":     {"sentence", "text"},
	"label":        {"sentiment", "label"},
	"review_stars": {"review_stars", "rev_stars", "stars"},
}

// ReadLabeled parses hand-annotated training sentences. The label column
// holds positive, negative, neutral or objective.
func ReadLabeled(r io.Reader) ([]aspectsum.LabeledSentence, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	first, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("corpus: empty input")
		}
		return nil, fmt.Errorf("corpus: reading header: %w", err)
	}
	h, err := newHeader(first, labeledAliases, []string{"sentence", "label"})
	if err != nil {
		return nil, err
	}

	var out []aspectsum.LabeledSentence
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("corpus: %w", err)
		}

		label, err := aspectsum.ParseSentenceLabel(h.get(row, "label"))
		if err != nil {
			return nil, fmt.Errorf("corpus: line %d: %w", line, err)
		}
		stars, err := h.integer(row, "review_stars")
		if err != nil {
			return nil, fmt.Errorf("corpus: line %d: %w", line, err)
		}
		out = append(out, aspectsum.LabeledSentence{
			Text:  h.get(row, "sentence"),
			Stars: stars,
			Label: label,
		})
	}
	return out, nil
}

// ReadLabeledFile opens path and parses it with ReadLabeled.
func ReadLabeledFile(path string) ([]aspectsum.LabeledSentence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: %w", err)
	}
	defer f.Close()
	return ReadLabeled(f)
}
