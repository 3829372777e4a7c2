package director

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WriteStoryboard writes a storyboard to a YAML file
func WriteStoryboard(sb *Storyboard, path string) error {
	data, err := yaml.Marshal(sb)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadStoryboard reads a storyboard from a YAML file. Unknown keys are
// rejected so typos in timing names do not silently fall back to zero.
func ReadStoryboard(path string) (*Storyboard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var sb Storyboard
	if err := dec.Decode(&sb); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if sb.Version == "" {
		sb.Version = CurrentVersion
	}

	return &sb, nil
}
