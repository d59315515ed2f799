package agent

import (
	"context"
	"testing"

	"github.com/kingrea/sweeper/internal/grid"
	"github.com/kingrea/sweeper/internal/render"
)

// idleStrategy halts immediately; tests drive the agent by hand.
type idleStrategy struct{}

func (idleStrategy) Clean(ctx context.Context, a *Agent) (Result, error) {
	return Result{Steps: a.Steps(), Cleaned: a.Cleaned(), Reason: HaltTrapped}, nil
}

func buildAgent(t *testing.T, g *grid.Grid, x, y int, opts ...Option) *Agent {
	t.Helper()
	a, err := New(g, idleStrategy{}, x, y, opts...)
	if err != nil {
		t.Fatalf("new agent: %v", err)
	}
	return a
}

func buildGrid(t *testing.T, width, height int) *grid.Grid {
	t.Helper()
	g, err := grid.New(width, height)
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	return g
}

func TestNewRejectsBadStarts(t *testing.T) {
	g := buildGrid(t, 5, 5)
	g.AddObstacle(2, 2)

	if _, err := New(nil, idleStrategy{}, 0, 0); err == nil {
		t.Fatalf("expected error for nil grid")
	}
	if _, err := New(g, nil, 0, 0); err == nil {
		t.Fatalf("expected error for nil strategy")
	}
	if _, err := New(g, idleStrategy{}, 5, 0); err == nil {
		t.Fatalf("expected error for out-of-bounds start")
	}
	if _, err := New(g, idleStrategy{}, -1, 3); err == nil {
		t.Fatalf("expected error for negative start")
	}
	if _, err := New(g, idleStrategy{}, 2, 2); err == nil {
		t.Fatalf("expected error for start on obstacle")
	}
}

func TestMoveRejectsObstaclesAndEdges(t *testing.T) {
	g := buildGrid(t, 6, 6)
	g.AddObstacle(2, 5)

	var frames []render.Frame
	recorder := render.RendererFunc(func(f render.Frame) { frames = append(frames, f) })
	a := buildAgent(t, g, 1, 5, WithRenderer(recorder))

	if a.Move(2, 5) {
		t.Fatalf("move onto obstacle must fail")
	}
	if a.Move(-1, 5) {
		t.Fatalf("move out of bounds must fail")
	}
	if a.Move(1, 6) {
		t.Fatalf("move below the grid must fail")
	}
	if x, y := a.Position(); x != 1 || y != 5 {
		t.Fatalf("failed moves must not relocate the agent, got (%d,%d)", x, y)
	}
	if len(frames) != 0 {
		t.Fatalf("failed moves must not render, got %d frames", len(frames))
	}
	if a.Steps() != 0 {
		t.Fatalf("failed moves must not count steps, got %d", a.Steps())
	}
}

func TestMoveRendersEachSuccess(t *testing.T) {
	g := buildGrid(t, 4, 4)
	g.AddDirt(1, 0)

	var frames []render.Frame
	a := buildAgent(t, g, 0, 0, WithRenderer(render.RendererFunc(func(f render.Frame) {
		frames = append(frames, f)
	})))

	if !a.Move(1, 0) {
		t.Fatalf("expected move to succeed")
	}
	if !a.Move(1, 1) {
		t.Fatalf("expected second move to succeed")
	}

	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if frames[0].AgentX != 1 || frames[0].AgentY != 0 {
		t.Fatalf("frame 1 at (%d,%d), want (1,0)", frames[0].AgentX, frames[0].AgentY)
	}
	if frames[1].AgentX != 1 || frames[1].AgentY != 1 {
		t.Fatalf("frame 2 at (%d,%d), want (1,1)", frames[1].AgentX, frames[1].AgentY)
	}
	if frames[0].Seq != 1 || frames[1].Seq != 2 {
		t.Fatalf("frames must number from 1, got %d then %d", frames[0].Seq, frames[1].Seq)
	}
	if frames[0].DirtLeft != 1 {
		t.Fatalf("frame 1 should still show the dirt under the robot, dirt left %d", frames[0].DirtLeft)
	}
}

func TestCleanCurrentSpotIsIdempotent(t *testing.T) {
	g := buildGrid(t, 3, 3)
	g.AddDirt(1, 1)
	a := buildAgent(t, g, 1, 1)

	if !a.CleanCurrentSpot() {
		t.Fatalf("expected dirt at (1,1) to be cleaned")
	}
	if got := g.At(1, 1); got != grid.Cleaned {
		t.Fatalf("cell state = %s, want cleaned", got)
	}
	if a.CleanCurrentSpot() {
		t.Fatalf("second clean of the same cell must be a no-op")
	}
	if a.Cleaned() != 1 {
		t.Fatalf("cleaned counter = %d, want 1", a.Cleaned())
	}
}

func TestCleanCurrentSpotIgnoresEmptyCells(t *testing.T) {
	g := buildGrid(t, 3, 3)
	a := buildAgent(t, g, 0, 0)
	if a.CleanCurrentSpot() {
		t.Fatalf("cleaning an empty cell must report false")
	}
	if got := g.At(0, 0); got != grid.Empty {
		t.Fatalf("empty cell must stay empty, got %s", got)
	}
}

func TestTrappedDetection(t *testing.T) {
	g := buildGrid(t, 3, 3)
	g.AddObstacle(1, 0)
	g.AddObstacle(0, 1)
	a := buildAgent(t, g, 0, 0)
	if !a.Trapped() {
		t.Fatalf("corner with both neighbors blocked must be trapped")
	}

	open := buildAgent(t, buildGrid(t, 3, 3), 1, 1)
	if open.Trapped() {
		t.Fatalf("open center cell must not be trapped")
	}
}

func TestStartCleaningRendersInitialStateThenCleansStart(t *testing.T) {
	g := buildGrid(t, 3, 3)
	g.AddDirt(1, 1)

	var frames []render.Frame
	a := buildAgent(t, g, 1, 1, WithRenderer(render.RendererFunc(func(f render.Frame) {
		frames = append(frames, f)
	})))

	res, err := a.StartCleaning(context.Background())
	if err != nil {
		t.Fatalf("start cleaning: %v", err)
	}
	if len(frames) != 1 {
		t.Fatalf("expected exactly the initial frame, got %d", len(frames))
	}
	if frames[0].DirtLeft != 1 {
		t.Fatalf("initial frame must predate the start-cell clean, dirt left %d", frames[0].DirtLeft)
	}
	if got := g.At(1, 1); got != grid.Cleaned {
		t.Fatalf("start cell = %s, want cleaned", got)
	}
	if res.Cleaned != 1 {
		t.Fatalf("result cleaned = %d, want 1", res.Cleaned)
	}
}
