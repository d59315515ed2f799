// Package agent holds the robot: its position on a grid, the movement and
// cleaning rules every traversal obeys, and the Strategy capability that
// drives it. Strategies decide where to go; the agent enforces what a legal
// move is and reports each successful one to an optional renderer.
package agent

import (
	"context"
	"fmt"

	"github.com/kingrea/sweeper/internal/grid"
	"github.com/kingrea/sweeper/internal/render"
)

// HaltReason explains why a traversal stopped.
type HaltReason string

const (
	// HaltTrapped means every cardinal neighbor was out of bounds or an
	// obstacle.
	HaltTrapped HaltReason = "trapped"
	// HaltBudget means the strategy exhausted its attempt budget.
	HaltBudget HaltReason = "step-budget"
	// HaltCanceled means the run context ended first.
	HaltCanceled HaltReason = "canceled"
)

// Result summarizes a finished (or interrupted) traversal.
type Result struct {
	Steps   int // successful moves
	Cleaned int // dirt cells cleaned
	Turns   int // direction changes
	Blocked int // rejected moves
	Reason  HaltReason
}

// Strategy drives an agent across its grid until it decides to stop.
// Implementations return a partial Result plus ctx.Err() when the context
// ends mid-run; every other halt carries a nil error.
type Strategy interface {
	Clean(ctx context.Context, a *Agent) (Result, error)
}

// Agent is a robot on a grid.
type Agent struct {
	grid     *grid.Grid
	strategy Strategy
	renderer render.Renderer

	x, y    int
	steps   int
	cleaned int
	frames  int
}

// Option customizes an agent.
type Option func(*Agent)

// WithRenderer attaches a renderer; each successful move emits one frame
// through it. Without a renderer the agent runs headless and unpaced.
func WithRenderer(r render.Renderer) Option {
	return func(a *Agent) {
		a.renderer = r
	}
}

// New places an agent on the grid. The start cell must be in bounds and not
// an obstacle; that invariant then holds for the agent's whole life, because
// Move refuses every transition that would break it.
func New(g *grid.Grid, strat Strategy, x, y int, opts ...Option) (*Agent, error) {
	if g == nil {
		return nil, fmt.Errorf("agent: grid is required")
	}
	if strat == nil {
		return nil, fmt.Errorf("agent: strategy is required")
	}
	if !g.InBounds(x, y) {
		return nil, fmt.Errorf("agent: start position (%d,%d) is out of bounds for %dx%d", x, y, g.Width(), g.Height())
	}
	if g.IsObstacle(x, y) {
		return nil, fmt.Errorf("agent: start position (%d,%d) is an obstacle", x, y)
	}
	a := &Agent{grid: g, strategy: strat, x: x, y: y}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Position returns the agent's current coordinates.
func (a *Agent) Position() (int, int) { return a.x, a.y }

// Grid returns the board the agent is on.
func (a *Agent) Grid() *grid.Grid { return a.grid }

// Steps returns the number of successful moves so far.
func (a *Agent) Steps() int { return a.steps }

// Cleaned returns the number of dirt cells cleaned so far.
func (a *Agent) Cleaned() int { return a.cleaned }

// Move relocates the agent to (newX, newY). Targets that are out of bounds
// or obstacles are rejected: the agent stays put, nothing renders, and Move
// returns false. A successful move updates the position, counts a step, and
// emits one frame.
func (a *Agent) Move(newX, newY int) bool {
	if !a.grid.InBounds(newX, newY) || a.grid.IsObstacle(newX, newY) {
		return false
	}
	a.x, a.y = newX, newY
	a.steps++
	a.renderFrame()
	return true
}

// CleanCurrentSpot cleans the cell under the agent when it holds dirt and
// reports whether it did. Any other cell state is a no-op, so repeated calls
// are idempotent. Cleaning does not emit a frame; the next move shows it.
func (a *Agent) CleanCurrentSpot() bool {
	if !a.grid.IsDirt(a.x, a.y) {
		return false
	}
	a.grid.Clean(a.x, a.y)
	a.cleaned++
	return true
}

// Trapped reports whether all four cardinal neighbors are out of bounds or
// obstacles.
func (a *Agent) Trapped() bool {
	for _, d := range [4][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}} {
		nx, ny := a.x+d[0], a.y+d[1]
		if a.grid.InBounds(nx, ny) && !a.grid.IsObstacle(nx, ny) {
			return false
		}
	}
	return true
}

// StartCleaning renders the initial state, cleans the start cell if it is
// dirty, and hands control to the strategy.
func (a *Agent) StartCleaning(ctx context.Context) (Result, error) {
	a.renderFrame()
	a.CleanCurrentSpot()
	return a.strategy.Clean(ctx, a)
}

func (a *Agent) renderFrame() {
	if a.renderer == nil {
		return
	}
	a.frames++
	a.renderer.RenderFrame(render.Frame{
		Width:    a.grid.Width(),
		Height:   a.grid.Height(),
		Cells:    a.grid.Cells(),
		AgentX:   a.x,
		AgentY:   a.y,
		Seq:      a.frames,
		Step:     a.steps,
		Cleaned:  a.cleaned,
		DirtLeft: a.grid.Count(grid.Dirt),
	})
}
