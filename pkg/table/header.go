package table

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pyhub-apps/tablestitch/pkg/config"
	"github.com/pyhub-apps/tablestitch/pkg/extractors"
)

// ClassifyLine reports whether a folded line contains every required keyword.
func ClassifyLine(folded string, keywords []string) bool {
	return extractors.ContainsAll(folded, keywords)
}

// IsHeaderLine reports whether line is a header candidate for the profile.
func IsHeaderLine(line extractors.Line, p *config.Profile) bool {
	return ClassifyLine(line.Folded(), p.HeaderKeywords)
}

// BuildColumnModel turns a header line into a column model. It returns false
// when a fixed column is missing; the line is then not a usable header.
func BuildColumnModel(line extractors.Line, p *config.Profile) (ColumnModel, bool) {
	specs := canonicalize(rawColumns(line, p), p)

	sort.SliceStable(specs, func(i, j int) bool {
		return specs[i].Anchor < specs[j].Anchor
	})

	present := make(map[string]bool, len(specs))
	for _, s := range specs {
		present[s.Label] = true
	}
	for _, label := range append(p.LeadingLabels(), p.TrailingLabels()...) {
		if !present[label] {
			return ColumnModel{}, false
		}
	}

	return NewColumnModel(moveToEnd(specs, p.Trailing.Label)), true
}

// rawColumns emits one column spec per header token, merging the two words of the
// trailing column into a single spec anchored at the first word.
func rawColumns(line extractors.Line, p *config.Profile) []ColumnSpec {
	first := extractors.Fold(p.Trailing.FirstWord)
	second := extractors.Fold(p.Trailing.SecondWord)

	tokens := line.Tokens
	specs := make([]ColumnSpec, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		text := strings.TrimSpace(tok.Text)

		if first != "" && strings.HasPrefix(extractors.Fold(text), first) {
			if second != "" && i+1 < len(tokens) &&
				strings.Contains(extractors.Fold(tokens[i+1].Text), second) {
				i++
			}
			specs = append(specs, ColumnSpec{Label: p.Trailing.Label, Anchor: tok.Left})
			continue
		}

		specs = append(specs, ColumnSpec{Label: text, Anchor: tok.Left})
	}
	return specs
}

// canonicalize maps fixed-column spellings to their canonical labels and
// renames repeated labels "X", "X (2)", "X (3)"...
func canonicalize(specs []ColumnSpec, p *config.Profile) []ColumnSpec {
	seen := make(map[string]int, len(specs))
	out := make([]ColumnSpec, 0, len(specs))
	for _, s := range specs {
		label := strings.TrimSpace(s.Label)
		if label == "" {
			continue
		}
		label = p.Canonical(label)

		key := strings.ToLower(label)
		seen[key]++
		if n := seen[key]; n > 1 {
			label = fmt.Sprintf("%s (%d)", label, n)
		}
		out = append(out, ColumnSpec{Label: label, Anchor: s.Anchor})
	}
	return out
}

func moveToEnd(specs []ColumnSpec, label string) []ColumnSpec {
	for i, s := range specs {
		if s.Label != label {
			continue
		}
		if i == len(specs)-1 {
			return specs
		}
		out := make([]ColumnSpec, 0, len(specs))
		out = append(out, specs[:i]...)
		out = append(out, specs[i+1:]...)
		return append(out, s)
	}
	return specs
}
