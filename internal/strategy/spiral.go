package strategy

import (
	"context"

	"github.com/kingrea/sweeper/internal/agent"
)

// SpiralID names the built-in spiral strategy in the registry.
const SpiralID = "spiral"

// ConfigStepBudget is the registry config key for the attempt budget (int).
const ConfigStepBudget = "step_budget"

// DefaultBudgetPerCell sizes the attempt budget when none is given: the
// spiral may attempt this many moves per grid cell before it gives up.
const DefaultBudgetPerCell = 12

// headings is the fixed turn cycle: +x, +y, -x, -y (right, down, left, up).
var headings = [4][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

// Spiral walks an expanding square spiral: straight segments of growing
// length joined by clockwise quarter turns. Segment lengths start at 1 and
// grow by one after every second turn; a blocked move also counts as a turn
// and restarts the current segment along the new heading.
//
// Two halts guard liveness on top of the boxed-in check. A full rotation of
// consecutive blocked moves means every heading from the current cell is
// blocked, so the robot is trapped even though it never moved (the one case
// the post-move check cannot see). And every attempt, blocked or not, draws
// down a fixed budget, which bounds runs on open floors where the spiral
// ends up tracing the walls forever.
type Spiral struct {
	budget int
}

// SpiralOption customizes a spiral strategy.
type SpiralOption func(*Spiral)

// WithStepBudget caps the total number of move attempts. Values <= 0 keep
// the default of DefaultBudgetPerCell attempts per grid cell.
func WithStepBudget(n int) SpiralOption {
	return func(s *Spiral) {
		s.budget = n
	}
}

// NewSpiral returns a spiral strategy.
func NewSpiral(opts ...SpiralOption) *Spiral {
	s := &Spiral{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Clean runs the spiral until the robot is trapped, the attempt budget runs
// out, or ctx ends.
func (s *Spiral) Clean(ctx context.Context, a *agent.Agent) (agent.Result, error) {
	g := a.Grid()
	budget := s.budget
	if budget <= 0 {
		budget = g.Width() * g.Height() * DefaultBudgetPerCell
	}

	var (
		dir      int // index into headings
		segment  = 1 // target length of the current straight run
		taken    int // successful moves within the current segment
		turns    int
		blocked  int
		rotation int // consecutive blocked attempts
	)

	turn := func() {
		dir = (dir + 1) % len(headings)
		turns++
		taken = 0
		if turns%2 == 0 {
			segment++
		}
	}

	for attempt := 0; attempt < budget; attempt++ {
		select {
		case <-ctx.Done():
			return s.result(a, turns, blocked, agent.HaltCanceled), ctx.Err()
		default:
		}

		x, y := a.Position()
		if !a.Move(x+headings[dir][0], y+headings[dir][1]) {
			blocked++
			rotation++
			turn()
			if rotation == len(headings) {
				// Every heading from this cell failed; the robot never moved,
				// so it is boxed in right here.
				return s.result(a, turns, blocked, agent.HaltTrapped), nil
			}
			continue
		}
		rotation = 0

		a.CleanCurrentSpot()
		taken++
		if taken == segment {
			turn()
		}
		if a.Trapped() {
			// A completed move leaves its origin cell open, so this only
			// fires when something mutated the grid mid-run.
			return s.result(a, turns, blocked, agent.HaltTrapped), nil
		}
	}
	return s.result(a, turns, blocked, agent.HaltBudget), nil
}

func (s *Spiral) result(a *agent.Agent, turns, blocked int, reason agent.HaltReason) agent.Result {
	return agent.Result{
		Steps:   a.Steps(),
		Cleaned: a.Cleaned(),
		Turns:   turns,
		Blocked: blocked,
		Reason:  reason,
	}
}
