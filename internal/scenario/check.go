package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CheckReport carries the outcome of checking a scenario file.
type CheckReport struct {
	Path   string
	Name   string
	Errors []error
}

// IsValid reports whether the check passed.
func (r *CheckReport) IsValid() bool {
	return r != nil && len(r.Errors) == 0
}

// CheckFile reads a scenario file and collects every validation problem,
// unlike LoadFile which stops at the first one.
func CheckFile(path string) (*CheckReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}
	var scn Scenario
	if err := yaml.Unmarshal(data, &scn); err != nil {
		return nil, fmt.Errorf("parse scenario file: %w", err)
	}
	report := &CheckReport{
		Path:   path,
		Name:   scn.Name,
		Errors: scn.Validate(),
	}
	return report, nil
}
