// Package config describes the column profiles that drive table reconstruction.
//
// A profile names the fixed columns a header must contain, the keywords used
// to recognise header and totals lines, the annotation marker of noise rows
// and the geometric tolerances. Profiles are plain YAML so new document
// layouts can be supported without code changes.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/pyhub-apps/tablestitch/pkg/extractors"
)

// ErrInvalidProfile is returned when a profile is missing required pieces.
var ErrInvalidProfile = errors.New("invalid profile")

// FixedColumn is a leading column that every header must contain.
type FixedColumn struct {
	Label   string   `yaml:"label"`
	Aliases []string `yaml:"aliases,omitempty"`
	// Prefix also accepts labels starting with the label or an alias.
	Prefix bool `yaml:"prefix,omitempty"`
}

// TrailingColumn is the column forced to the end of every header. Its header
// text is usually split over two tokens ("Kaikki" "yhteensä").
type TrailingColumn struct {
	Label      string   `yaml:"label"`
	FirstWord  string   `yaml:"first_word"`
	SecondWord string   `yaml:"second_word"`
	Aliases    []string `yaml:"aliases,omitempty"`
}

// Profile configures header detection, filtering and merging.
type Profile struct {
	Name             string            `yaml:"name"`
	Leading          []FixedColumn     `yaml:"leading"`
	Trailing         TrailingColumn    `yaml:"trailing"`
	HeaderKeywords   []string          `yaml:"header_keywords"`
	LeadingKeyword   string            `yaml:"leading_keyword"`
	TerminatorPhrase string            `yaml:"terminator_phrase"`
	NoiseMarker      string            `yaml:"noise_marker"`
	KeyColumns       []string          `yaml:"key_columns"`
	Rename           map[string]string `yaml:"rename,omitempty"`
	LineTolerance    float64           `yaml:"line_tolerance,omitempty"`
	WordXTolerance   float64           `yaml:"word_x_tolerance,omitempty"`
	WordYTolerance   float64           `yaml:"word_y_tolerance,omitempty"`
}

// Default tolerances, matching the values the payroll exports were tuned with.
const (
	DefaultLineTolerance  = extractors.DefaultLineTolerance
	DefaultWordXTolerance = 2.0
	DefaultWordYTolerance = 2.0
)

// LeadingLabels returns the canonical leading labels in order.
func (p *Profile) LeadingLabels() []string {
	labels := make([]string, len(p.Leading))
	for i, c := range p.Leading {
		labels[i] = c.Label
	}
	return labels
}

// TrailingLabels returns the canonical trailing labels in order.
func (p *Profile) TrailingLabels() []string {
	return []string{p.Trailing.Label}
}

// IsFixed reports whether label is one of the fixed leading or trailing labels.
func (p *Profile) IsFixed(label string) bool {
	if label == p.Trailing.Label {
		return true
	}
	for _, c := range p.Leading {
		if c.Label == label {
			return true
		}
	}
	return false
}

// Canonical maps a known spelling variant of a fixed column to its canonical
// label. Any other label is returned unchanged.
func (p *Profile) Canonical(label string) string {
	folded := extractors.Fold(strings.TrimSpace(label))
	for _, c := range p.Leading {
		if matchesAny(folded, c.Label, c.Aliases, c.Prefix) {
			return c.Label
		}
	}
	if matchesAny(folded, p.Trailing.Label, p.Trailing.Aliases, false) {
		return p.Trailing.Label
	}
	return label
}

func matchesAny(folded, label string, aliases []string, prefix bool) bool {
	for _, candidate := range append([]string{label}, aliases...) {
		c := extractors.Fold(candidate)
		if c == "" {
			continue
		}
		if folded == c || (prefix && strings.HasPrefix(folded, c)) {
			return true
		}
	}
	return false
}

// WithDefaults fills zero tolerances with the package defaults.
func (p Profile) WithDefaults() Profile {
	if p.LineTolerance <= 0 {
		p.LineTolerance = DefaultLineTolerance
	}
	if p.WordXTolerance <= 0 {
		p.WordXTolerance = DefaultWordXTolerance
	}
	if p.WordYTolerance <= 0 {
		p.WordYTolerance = DefaultWordYTolerance
	}
	return p
}

// Validate checks that the profile can drive an extraction.
func (p *Profile) Validate() error {
	var missing []string
	if len(p.Leading) == 0 {
		missing = append(missing, "leading")
	}
	for i, c := range p.Leading {
		if strings.TrimSpace(c.Label) == "" {
			missing = append(missing, fmt.Sprintf("leading[%d].label", i))
		}
	}
	if p.Trailing.Label == "" {
		missing = append(missing, "trailing.label")
	}
	if p.Trailing.FirstWord == "" {
		missing = append(missing, "trailing.first_word")
	}
	if len(p.HeaderKeywords) == 0 {
		missing = append(missing, "header_keywords")
	}
	if p.LeadingKeyword == "" {
		missing = append(missing, "leading_keyword")
	}
	if p.TerminatorPhrase == "" {
		missing = append(missing, "terminator_phrase")
	}
	if len(p.KeyColumns) == 0 {
		missing = append(missing, "key_columns")
	}
	if len(missing) > 0 {
		return errors.Wrapf(ErrInvalidProfile, "%s: missing %s", p.Name, strings.Join(missing, ", "))
	}
	return nil
}

// Parse decodes a YAML profile and validates it.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.UnmarshalStrict(data, &p); err != nil {
		return nil, errors.Wrap(ErrInvalidProfile, err.Error())
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p = p.WithDefaults()
	return &p, nil
}

// Load reads a YAML profile from path.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read profile %s", path)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, errors.WithMessagef(err, "profile %s", path)
	}
	return p, nil
}

// Marshal encodes the profile as YAML.
func (p *Profile) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}
