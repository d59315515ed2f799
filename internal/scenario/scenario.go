// Package scenario defines the YAML layout files that seed a run: grid
// dimensions, dirt and obstacle positions, the start cell, and pacing knobs.
// A default layout ships embedded so the simulator works with no arguments.
package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Point is a grid coordinate.
type Point struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Scenario describes one floor layout and how to run it.
type Scenario struct {
	Name      string  `yaml:"name"`
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	Start     *Point  `yaml:"start"`
	Dirt      []Point `yaml:"dirt"`
	Obstacles []Point `yaml:"obstacles"`

	// FrameDelayMS paces animated renderers; 0 keeps the renderer default.
	FrameDelayMS int `yaml:"frame_delay_ms"`
	// StepBudget caps move attempts; 0 derives a default from the grid area.
	StepBudget int `yaml:"step_budget"`
}

// defaultScenarioYAML is the layout used when no scenario file is given.
// Default() must stay in sync with it; a test guards the pairing.
const defaultScenarioYAML = `name: office-floor
width: 20
height: 10
start: { x: 10, y: 5 }
dirt:
  - { x: 5, y: 3 }
  - { x: 10, y: 8 }
  - { x: 1, y: 1 }
  - { x: 9, y: 5 }
  - { x: 15, y: 2 }
obstacles:
  - { x: 2, y: 5 }
  - { x: 12, y: 1 }
  - { x: 15, y: 4 }
  - { x: 6, y: 8 }
  - { x: 9, y: 7 }
`

// Default returns the embedded layout.
func Default() Scenario {
	return Scenario{
		Name:   "office-floor",
		Width:  20,
		Height: 10,
		Start:  &Point{X: 10, Y: 5},
		Dirt: []Point{
			{X: 5, Y: 3},
			{X: 10, Y: 8},
			{X: 1, Y: 1},
			{X: 9, Y: 5},
			{X: 15, Y: 2},
		},
		Obstacles: []Point{
			{X: 2, Y: 5},
			{X: 12, Y: 1},
			{X: 15, Y: 4},
			{X: 6, Y: 8},
			{X: 9, Y: 7},
		},
	}
}

// WriteDefault writes the embedded layout to path for editing. It refuses to
// overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("scenario: %s already exists", path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("scenario: create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(defaultScenarioYAML), 0o644); err != nil {
		return fmt.Errorf("scenario: write %s: %w", path, err)
	}
	return nil
}

// Clone returns a deep copy.
func (s Scenario) Clone() Scenario {
	clone := s
	if s.Start != nil {
		start := *s.Start
		clone.Start = &start
	}
	if len(s.Dirt) > 0 {
		clone.Dirt = make([]Point, len(s.Dirt))
		copy(clone.Dirt, s.Dirt)
	}
	if len(s.Obstacles) > 0 {
		clone.Obstacles = make([]Point, len(s.Obstacles))
		copy(clone.Obstacles, s.Obstacles)
	}
	return clone
}

// StartPosition resolves the start cell, defaulting to the grid center.
func (s Scenario) StartPosition() (int, int) {
	if s.Start != nil {
		return s.Start.X, s.Start.Y
	}
	return s.Width / 2, s.Height / 2
}

// FrameDelay converts the configured pacing to a duration; zero means "use
// the renderer default".
func (s Scenario) FrameDelay() time.Duration {
	if s.FrameDelayMS <= 0 {
		return 0
	}
	return time.Duration(s.FrameDelayMS) * time.Millisecond
}

// Validate collects every problem with the scenario. Duplicate points and
// dirt/obstacle collisions are legal; the grid's last-write-wins seeding
// resolves them.
func (s Scenario) Validate() []error {
	var errs []error
	if s.Width <= 0 || s.Height <= 0 {
		errs = append(errs, fmt.Errorf("scenario: width and height must be positive, got %dx%d", s.Width, s.Height))
		return errs
	}
	inBounds := func(p Point) bool {
		return p.X >= 0 && p.X < s.Width && p.Y >= 0 && p.Y < s.Height
	}
	for i, p := range s.Dirt {
		if !inBounds(p) {
			errs = append(errs, fmt.Errorf("scenario: dirt[%d] (%d,%d) is out of bounds for %dx%d", i, p.X, p.Y, s.Width, s.Height))
		}
	}
	for i, p := range s.Obstacles {
		if !inBounds(p) {
			errs = append(errs, fmt.Errorf("scenario: obstacles[%d] (%d,%d) is out of bounds for %dx%d", i, p.X, p.Y, s.Width, s.Height))
		}
	}
	startX, startY := s.StartPosition()
	if !inBounds(Point{X: startX, Y: startY}) {
		errs = append(errs, fmt.Errorf("scenario: start (%d,%d) is out of bounds for %dx%d", startX, startY, s.Width, s.Height))
	} else {
		for _, p := range s.Obstacles {
			if p.X == startX && p.Y == startY {
				errs = append(errs, fmt.Errorf("scenario: start (%d,%d) is an obstacle", startX, startY))
				break
			}
		}
	}
	if s.FrameDelayMS < 0 {
		errs = append(errs, fmt.Errorf("scenario: frame_delay_ms must not be negative, got %d", s.FrameDelayMS))
	}
	if s.StepBudget < 0 {
		errs = append(errs, fmt.Errorf("scenario: step_budget must not be negative, got %d", s.StepBudget))
	}
	return errs
}

// Normalized returns a validated copy with defaults applied.
func (s Scenario) Normalized() (Scenario, error) {
	clone := s.Clone()
	if clone.Name == "" {
		clone.Name = "unnamed"
	}
	if errs := clone.Validate(); len(errs) > 0 {
		return Scenario{}, errs[0]
	}
	return clone, nil
}
