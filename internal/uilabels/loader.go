package uilabels

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and parsing of the labels yaml file.
type Loader struct {
	filePath string
}

// NewLoader creates a new labels loader.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the labels file. Sections missing from the
// file keep their built-in defaults. An unconfigured path yields the
// built-ins.
func (l *Loader) Load() (*LabelSet, error) {
	if l.filePath == "" {
		return Defaults(), nil
	}

	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read labels file: %w", err)
	}

	var parsed LabelSet
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse labels yaml: %w", err)
	}

	merged := Defaults()
	if len(parsed.Labels) > 0 {
		merged.Labels = parsed.Labels
	}
	if len(parsed.Meta) > 0 {
		merged.Meta = parsed.Meta
	}
	if len(parsed.Builtin) > 0 {
		merged.Builtin = parsed.Builtin
	}

	return merged, nil
}
