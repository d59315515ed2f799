// Package sim drives a cleaning run end to end: it seeds the grid from a
// scenario, wires the agent to a strategy and a renderer, and condenses the
// outcome into a Report.
package sim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kingrea/sweeper/internal/agent"
	"github.com/kingrea/sweeper/internal/grid"
	"github.com/kingrea/sweeper/internal/logbook"
	"github.com/kingrea/sweeper/internal/render"
	"github.com/kingrea/sweeper/internal/scenario"
	"github.com/kingrea/sweeper/internal/strategy"
)

// Runner owns the pieces of a single run. Build one with NewRunner and call
// Run once; a Runner is not safe for concurrent use.
type Runner struct {
	scn      scenario.Scenario
	strategy agent.Strategy
	renderer render.Renderer
	book     *logbook.Logbook
	budget   int
	clock    func() time.Time
}

// Option adjusts a Runner before the run starts.
type Option func(*Runner)

// WithStrategy replaces the default spiral strategy.
func WithStrategy(s agent.Strategy) Option {
	return func(r *Runner) { r.strategy = s }
}

// WithRenderer attaches a renderer; without one the run is headless.
func WithRenderer(rd render.Renderer) Option {
	return func(r *Runner) { r.renderer = rd }
}

// WithLogbook journals run milestones to the given logbook.
func WithLogbook(book *logbook.Logbook) Option {
	return func(r *Runner) { r.book = book }
}

// WithStepBudget caps the default strategy's move attempts. It overrides the
// scenario's step_budget and is ignored when WithStrategy is used.
func WithStepBudget(n int) Option {
	return func(r *Runner) { r.budget = n }
}

// WithClock overrides the time source used for the report duration.
func WithClock(clock func() time.Time) Option {
	return func(r *Runner) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// NewRunner validates and normalizes the scenario and prepares a run.
func NewRunner(scn scenario.Scenario, opts ...Option) (*Runner, error) {
	normalized, err := scn.Normalized()
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	r := &Runner{
		scn:    normalized,
		budget: normalized.StepBudget,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Scenario returns a copy of the normalized scenario the runner will use.
func (r *Runner) Scenario() scenario.Scenario {
	return r.scn.Clone()
}

// Run executes the cleaning run. Context cancellation is not an error: the
// run stops where it is and the report carries the canceled halt reason.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	started := r.clock()

	g, err := grid.New(r.scn.Width, r.scn.Height)
	if err != nil {
		return Report{}, fmt.Errorf("sim: %w", err)
	}
	for _, p := range r.scn.Dirt {
		g.AddDirt(p.X, p.Y)
	}
	for _, p := range r.scn.Obstacles {
		g.AddObstacle(p.X, p.Y)
	}

	strat := r.strategy
	if strat == nil {
		strat, err = strategy.BuiltinRegistry().Resolve(strategy.SpiralID, strategy.Config{
			strategy.ConfigStepBudget: r.budget,
		})
		if err != nil {
			return Report{}, fmt.Errorf("sim: %w", err)
		}
	}

	startX, startY := r.scn.StartPosition()
	a, err := agent.New(g, strat, startX, startY, agent.WithRenderer(r.tap()))
	if err != nil {
		return Report{}, fmt.Errorf("sim: %w", err)
	}

	r.book.Info("run started: %s (%dx%d), %d dirt, %d obstacles, start (%d,%d)",
		r.scn.Name, r.scn.Width, r.scn.Height, len(r.scn.Dirt), len(r.scn.Obstacles), startX, startY)

	res, runErr := a.StartCleaning(ctx)
	rep := r.report(g, a, res, started)
	r.journalOutcome(rep)

	if runErr != nil && !errors.Is(runErr, context.Canceled) && !errors.Is(runErr, context.DeadlineExceeded) {
		return rep, fmt.Errorf("sim: strategy: %w", runErr)
	}
	return rep, nil
}

// tap wraps the configured renderer so clean events reach the logbook. The
// previous frame carries the position the agent cleaned, since the increment
// only shows up on the frame after the move away.
func (r *Runner) tap() render.Renderer {
	if r.book == nil {
		return r.renderer
	}
	var last render.Frame
	var have bool
	return render.RendererFunc(func(f render.Frame) {
		if have && f.Cleaned > last.Cleaned {
			r.book.Info("cleaned (%d,%d), %d dirt left", last.AgentX, last.AgentY, f.DirtLeft)
		}
		last, have = f, true
		if r.renderer != nil {
			r.renderer.RenderFrame(f)
		}
	})
}

func (r *Runner) report(g *grid.Grid, a *agent.Agent, res agent.Result, started time.Time) Report {
	finalX, finalY := a.Position()
	rep := Report{
		Scenario:   r.scn.Name,
		Width:      r.scn.Width,
		Height:     r.scn.Height,
		Steps:      res.Steps,
		Cleaned:    res.Cleaned,
		Turns:      res.Turns,
		Blocked:    res.Blocked,
		DirtLeft:   g.Count(grid.Dirt),
		Reason:     string(res.Reason),
		FinalX:     finalX,
		FinalY:     finalY,
		DurationMS: r.clock().Sub(started).Milliseconds(),
	}
	for y := 0; y < r.scn.Height; y++ {
		for x := 0; x < r.scn.Width; x++ {
			if g.IsDirt(x, y) {
				rep.Missed = append(rep.Missed, scenario.Point{X: x, Y: y})
			}
		}
	}
	return rep
}

func (r *Runner) journalOutcome(rep Report) {
	switch agent.HaltReason(rep.Reason) {
	case agent.HaltTrapped:
		r.book.Warn("robot trapped at (%d,%d) after %d steps, %d dirt left",
			rep.FinalX, rep.FinalY, rep.Steps, rep.DirtLeft)
	case agent.HaltCanceled:
		r.book.Warn("run canceled after %d steps, %d dirt left", rep.Steps, rep.DirtLeft)
	default:
		if rep.Clean() {
			r.book.Info("floor clean: %d cells in %d steps", rep.Cleaned, rep.Steps)
		} else {
			r.book.Warn("attempt budget exhausted after %d steps, %d dirt left", rep.Steps, rep.DirtLeft)
		}
	}
}
