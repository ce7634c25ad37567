// Package corpus reads merged review CSV exports and labeled training
// sentences.
package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/opinionmining/aspectsum"
)

// Multi-valued column separators.
const (
	CategorySep = "<CAT>"
	AmbianceSep = "<AMB>"
)

// columnAliases maps each field to the header names it may appear under.
var columnAliases = map[string][]string{
	"business_id":    {"business_id"},
	"business_name":  {"business_name", "name"},
	"overall_stars":  {"rest_overall_stars", "overall_stars"},
	"categories":     {"categories"},
	"ambiance":       {"ambiance"},
	"review_count":   {"review_count"},
	"review_id":      {"review_id"},
	"review_stars":   {"review_stars", "rev_stars"},
	"text":           {"text"},
	"user_id":        {"user_id"},
	"user_name":      {"user_name"},
	"user_avg_stars": {"user_avg_stars", "average_stars"},
}

var requiredColumns = []string{"business_id", "review_id", "text"}

type header map[string]int

func newHeader(row []string, aliases map[string][]string, required []string) (header, error) {
	pos := make(map[string]int, len(row))
	for i, name := range row {
		pos[strings.ToLower(strings.TrimSpace(name))] = i
	}
	h := header{}
	for field, names := range aliases {
		for _, name := range names {
			if i, ok := pos[name]; ok {
				h[field] = i
				break
			}
		}
	}
	for _, field := range required {
		if _, ok := h[field]; !ok {
			return nil, fmt.Errorf("corpus: missing required column %q", field)
		}
	}
	return h, nil
}

func (h header) get(row []string, field string) string {
	i, ok := h[field]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (h header) number(row []string, field string) (float64, error) {
	v := h.get(row, field)
	if v == "" || strings.EqualFold(v, "nan") {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", field, err)
	}
	return f, nil
}

// integer accepts "4" as well as "4.0".
func (h header) integer(row []string, field string) (int, error) {
	f, err := h.number(row, field)
	return int(f), err
}

func split(v, sep string) []string {
	var out []string
	for _, part := range strings.Split(v, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Read parses a header-led CSV of review rows.
func Read(r io.Reader) ([]aspectsum.ReviewRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	first, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("corpus: empty input")
		}
		return nil, fmt.Errorf("corpus: reading header: %w", err)
	}
	h, err := newHeader(first, columnAliases, requiredColumns)
	if err != nil {
		return nil, err
	}

	var records []aspectsum.ReviewRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("corpus: %w", err)
		}
		rec, err := h.record(row)
		if err != nil {
			return nil, fmt.Errorf("corpus: line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (h header) record(row []string) (aspectsum.ReviewRecord, error) {
	rec := aspectsum.ReviewRecord{
		BusinessID:   h.get(row, "business_id"),
		BusinessName: h.get(row, "business_name"),
		Categories:   split(h.get(row, "categories"), CategorySep),
		Ambiance:     split(h.get(row, "ambiance"), AmbianceSep),
		ReviewID:     h.get(row, "review_id"),
		Text:         h.get(row, "text"),
		UserID:       h.get(row, "user_id"),
		UserName:     h.get(row, "user_name"),
	}
	if rec.BusinessID == "" {
		return rec, fmt.Errorf("empty business_id")
	}

	var err error
	if rec.OverallStars, err = h.number(row, "overall_stars"); err != nil {
		return rec, err
	}
	if rec.ReviewCount, err = h.integer(row, "review_count"); err != nil {
		return rec, err
	}
	if rec.ReviewStars, err = h.integer(row, "review_stars"); err != nil {
		return rec, err
	}
	if rec.UserAverageStars, err = h.number(row, "user_avg_stars"); err != nil {
		return rec, err
	}
	return rec, nil
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string) ([]aspectsum.ReviewRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// GroupByBusiness splits records into one corpus per business id. Groups are
// ordered by the first appearance of their id; rows keep their input order.
func GroupByBusiness(records []aspectsum.ReviewRecord) [][]aspectsum.ReviewRecord {
	index := map[string]int{}
	var groups [][]aspectsum.ReviewRecord
	for _, rec := range records {
		i, ok := index[rec.BusinessID]
		if !ok {
			i = len(groups)
			index[rec.BusinessID] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], rec)
	}
	return groups
}
