package sim

import (
	"fmt"
	"strings"
	"time"

	"github.com/kingrea/sweeper/internal/scenario"
)

// Report summarizes one finished run.
type Report struct {
	Scenario string `json:"scenario"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`

	Steps   int `json:"steps"`
	Cleaned int `json:"cleaned"`
	Turns   int `json:"turns"`
	Blocked int `json:"blocked"`

	DirtLeft int              `json:"dirt_left"`
	Missed   []scenario.Point `json:"missed,omitempty"` // dirt cells never reached

	Reason     string `json:"halt_reason"`
	FinalX     int    `json:"final_x"`
	FinalY     int    `json:"final_y"`
	DurationMS int64  `json:"duration_ms"`
}

// Clean reports whether no dirt is left on the floor.
func (r Report) Clean() bool {
	return r.DirtLeft == 0
}

// Duration returns the run time as a duration.
func (r Report) Duration() time.Duration {
	return time.Duration(r.DurationMS) * time.Millisecond
}

// Summary renders the human-readable completion message.
func (r Report) Summary() string {
	var b strings.Builder
	if r.Clean() {
		b.WriteString("cleaning complete: floor clean\n")
	} else {
		unit := "cells"
		if r.DirtLeft == 1 {
			unit = "cell"
		}
		fmt.Fprintf(&b, "cleaning stopped: %d dirt %s left\n", r.DirtLeft, unit)
	}
	fmt.Fprintf(&b, "  scenario  %s (%dx%d)\n", r.Scenario, r.Width, r.Height)
	fmt.Fprintf(&b, "  cleaned   %d of %d\n", r.Cleaned, r.Cleaned+r.DirtLeft)
	fmt.Fprintf(&b, "  steps     %d  turns %d  blocked %d\n", r.Steps, r.Turns, r.Blocked)
	fmt.Fprintf(&b, "  halted    %s at (%d,%d)\n", r.Reason, r.FinalX, r.FinalY)
	if len(r.Missed) > 0 {
		coords := make([]string, len(r.Missed))
		for i, p := range r.Missed {
			coords[i] = fmt.Sprintf("(%d,%d)", p.X, p.Y)
		}
		fmt.Fprintf(&b, "  missed    %s\n", strings.Join(coords, " "))
	}
	fmt.Fprintf(&b, "  duration  %s\n", r.Duration().Round(time.Millisecond))
	return b.String()
}
