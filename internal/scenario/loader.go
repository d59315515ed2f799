package scenario

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a scenario from YAML bytes and normalizes it.
func ParseYAML(data []byte) (Scenario, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Scenario{}, fmt.Errorf("scenario: payload is empty")
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scenario{}, fmt.Errorf("scenario: decode: %w", err)
	}
	return s.Normalized()
}

// LoadReader reads scenario data from an io.Reader.
func LoadReader(r io.Reader) (Scenario, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario: read: %w", err)
	}
	return ParseYAML(content)
}

// LoadFile loads a scenario from an explicit file path.
func LoadFile(path string) (Scenario, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	s, parseErr := ParseYAML(content)
	if parseErr != nil {
		return Scenario{}, fmt.Errorf("scenario: %s: %w", path, parseErr)
	}
	return s, nil
}
