package config

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/shibukawa/configdir"
)

const (
	vendorName = "pyhub-apps"
	appName    = "tablestitch"
)

// ErrUnknownProfile is returned for a profile name that is neither built in
// nor found in the user's config folders.
var ErrUnknownProfile = errors.New("unknown profile")

// Finnish is the layout of the subcontractor follow-up invoices:
// "Työntekijät | Aika | Norm | ... | Kaikki yhteensä".
func Finnish() *Profile {
	return &Profile{
		Name: "fi",
		Leading: []FixedColumn{
			{Label: "Työntekijät", Aliases: []string{"tyontekajat"}},
			{Label: "Aika"},
			{Label: "Norm", Prefix: true},
		},
		Trailing: TrailingColumn{
			Label:      "Kaikki yhteensä",
			FirstWord:  "kaikki",
			SecondWord: "yhteensä",
		},
		HeaderKeywords:   []string{"tyontekijat", "aika", "norm", "kaikki", "yhteensa"},
		LeadingKeyword:   "tyontekijat",
		TerminatorPhrase: "kaikki yhteensa",
		NoiseMarker:      "tekijä:",
		KeyColumns:       []string{"Työntekijät", "Aika"},
		Rename: map[string]string{
			"Työntekijät":     "Name",
			"Aika":            "Dates",
			"Iltalisä":        "Evening shift bonus",
			"Yövuoro":         "Night shift bonus",
			"Kaikki yhteensä": "Salary",
		},
		LineTolerance:  DefaultLineTolerance,
		WordXTolerance: DefaultWordXTolerance,
		WordYTolerance: DefaultWordYTolerance,
	}
}

// English is the same layout with English headings.
func English() *Profile {
	return &Profile{
		Name: "en",
		Leading: []FixedColumn{
			{Label: "Workers", Aliases: []string{"worker", "employees"}},
			{Label: "Time", Aliases: []string{"period"}},
			{Label: "Norm", Prefix: true},
		},
		Trailing: TrailingColumn{
			Label:      "Total all",
			FirstWord:  "total",
			SecondWord: "all",
		},
		HeaderKeywords:   []string{"workers", "time", "norm", "total", "all"},
		LeadingKeyword:   "workers",
		TerminatorPhrase: "total all",
		NoiseMarker:      "listed by:",
		KeyColumns:       []string{"Workers", "Time"},
		LineTolerance:    DefaultLineTolerance,
		WordXTolerance:   DefaultWordXTolerance,
		WordYTolerance:   DefaultWordYTolerance,
	}
}

var builtins = map[string]func() *Profile{
	"fi": Finnish,
	"en": English,
}

// Default returns the default built-in profile.
func Default() *Profile {
	return Finnish()
}

// Builtin returns a fresh copy of a built-in profile.
func Builtin(name string) (*Profile, bool) {
	build, ok := builtins[name]
	if !ok {
		return nil, false
	}
	return build(), true
}

// BuiltinNames lists the built-in profile names.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Locate looks for <name>.yaml in the user's and the system's config folders.
func Locate(name string) (*Profile, error) {
	dirs := configdir.New(vendorName, appName)
	file := name + ".yaml"
	folder := dirs.QueryFolderContainsFile(file)
	if folder == nil {
		return nil, errors.Wrapf(ErrUnknownProfile, "%s not found in config folders", file)
	}
	data, err := folder.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", file)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, errors.WithMessagef(err, "profile %s", folder.Path)
	}
	return p, nil
}

// Resolve returns the profile for name: a file path when path is set,
// otherwise a built-in, otherwise a profile found by Locate.
func Resolve(name, path string) (*Profile, error) {
	if path != "" {
		return Load(path)
	}
	if name == "" {
		return Default(), nil
	}
	if p, ok := Builtin(name); ok {
		return p, nil
	}
	return Locate(name)
}
