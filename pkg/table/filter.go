package table

import (
	"strings"

	"github.com/pyhub-apps/tablestitch/pkg/config"
	"github.com/pyhub-apps/tablestitch/pkg/extractors"
)

// IsTerminator reports whether line closes the current table: it carries the
// totals phrase but not the leading keyword that a repeated header would.
func IsTerminator(line extractors.Line, p *config.Profile) bool {
	folded := line.Folded()
	phrase := extractors.Fold(p.TerminatorPhrase)
	if phrase == "" || !strings.Contains(folded, phrase) {
		return false
	}
	return !strings.Contains(folded, extractors.Fold(p.LeadingKeyword))
}

// IsNoise reports whether any cell of row carries the annotation marker.
func IsNoise(row Row, p *config.Profile) bool {
	marker := extractors.Fold(p.NoiseMarker)
	if marker == "" {
		return false
	}
	for _, v := range row {
		if v != "" && strings.Contains(extractors.Fold(v), marker) {
			return true
		}
	}
	return false
}

// IsEmpty reports whether every key column of row is blank.
func IsEmpty(row Row, p *config.Profile) bool {
	for _, label := range p.KeyColumns {
		if strings.TrimSpace(row[label]) != "" {
			return false
		}
	}
	return true
}
