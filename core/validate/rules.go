package validate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules are the literal heuristics the gates apply. They encode the
// upstream model's phrasing and markup conventions and are kept as data.
type Rules struct {
	// RefusalPhrases are matched against the lower-cased output.
	RefusalPhrases []string `yaml:"refusal_phrases"`
	// MinLengthRatio is the smallest accepted output/original rune ratio.
	MinLengthRatio float64 `yaml:"min_length_ratio"`
	// BoldMarker signals that at least one correction is marked.
	BoldMarker string `yaml:"bold_marker"`
	// DeletionMarker and InsertionMarker must both appear when BoldMarker does.
	DeletionMarker  string `yaml:"deletion_marker"`
	InsertionMarker string `yaml:"insertion_marker"`
}

// DefaultRules returns the built-in heuristics.
func DefaultRules() Rules {
	return Rules{
		RefusalPhrases:  []string{"please provide", "didn't provide", "no text", "error"},
		MinLengthRatio:  0.9,
		BoldMarker:      "<b style=",
		DeletionMarker:  "color:red",
		InsertionMarker: "color:green",
	}
}

// LoadRules reads a YAML rules file over the defaults. Fields missing from
// the file keep their default value. An empty path or a missing file yields
// DefaultRules.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return rules, nil
	}
	if err != nil {
		return Rules{}, fmt.Errorf("read rules: %w", err)
	}

	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("parse rules %s: %w", path, err)
	}
	if err := rules.check(); err != nil {
		return Rules{}, fmt.Errorf("rules %s: %w", path, err)
	}
	return rules, nil
}

func (r Rules) check() error {
	if r.MinLengthRatio < 0 || r.MinLengthRatio > 1 {
		return fmt.Errorf("min_length_ratio %v outside [0, 1]", r.MinLengthRatio)
	}
	if r.BoldMarker == "" || r.DeletionMarker == "" || r.InsertionMarker == "" {
		return errors.New("markup markers must not be empty")
	}
	return nil
}
