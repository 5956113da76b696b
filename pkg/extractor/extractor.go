// Package extractor pulls the cost report fields out of a converted report.
//
// The converter emits text fragments in reading order with no table
// structure, so every value is located by its offset from a known label.
// A rule that cannot read its value leaves the field unknown; a single bad
// field never stops the scan.
package extractor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xhad/ltcc/internal/models"
	"github.com/xhad/ltcc/pkg/pdfxml"
)

type ExtractorConfig struct {
	// MinBoldNodes is the bold node count needed to scan bold text only.
	MinBoldNodes int
	// LabelVariants adds spellings to the built-in ones, keyed by label name.
	LabelVariants map[string][]string
}

type Extractor struct {
	config ExtractorConfig
	// spellings maps each accepted literal to its label
	spellings map[string]Label
	rules     map[Label]Rule
}

func NewWithConfig(config ExtractorConfig) (*Extractor, error) {
	if config.MinBoldNodes == 0 {
		config.MinBoldNodes = pdfxml.DefaultMinBold
	}

	spellings := make(map[string]Label)
	for label, texts := range DefaultSpellings {
		for _, t := range texts {
			spellings[t] = label
		}
	}

	// sorted so a spelling claimed by two labels always resolves the same way
	names := make([]string, 0, len(config.LabelVariants))
	for name := range config.LabelVariants {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		label := Label(name)
		if _, ok := DefaultRules[label]; !ok {
			return nil, fmt.Errorf("unknown label %q", name)
		}
		for _, t := range config.LabelVariants[name] {
			t = strings.TrimSpace(t)
			if t == "" {
				return nil, fmt.Errorf("empty spelling for label %q", name)
			}
			if _, taken := spellings[t]; !taken {
				spellings[t] = label
			}
		}
	}

	return &Extractor{
		config:    config,
		spellings: spellings,
		rules:     DefaultRules,
	}, nil
}

// New returns an extractor with the built-in label spellings.
func New() *Extractor {
	e, _ := NewWithConfig(ExtractorConfig{})
	return e
}

// Extract scans seq once and returns the record for fileName. When a label
// appears more than once, the last successful match wins.
func (e *Extractor) Extract(fileName string, seq models.Sequence) models.Record {
	record := models.NewRecord(fileName)

	for i := range seq {
		t, ok := seq.Text(i)
		if !ok {
			continue
		}
		label, ok := e.spellings[strings.TrimSpace(t)]
		if !ok {
			continue
		}

		assignments, ok := e.rules[label](seq, i)
		if !ok {
			continue
		}
		for _, a := range assignments {
			record.Set(a.Field, a.Value)
		}
	}

	return record
}

// ExtractDocument picks the node sequence of doc and extracts from it.
func (e *Extractor) ExtractDocument(fileName string, doc pdfxml.Document) models.Record {
	return e.Extract(fileName, doc.Select(e.config.MinBoldNodes))
}

// Labels returns the accepted spellings of label, sorted.
func (e *Extractor) Labels(label Label) []string {
	var out []string
	for t, l := range e.spellings {
		if l == label {
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}
