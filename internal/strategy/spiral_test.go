package strategy

import (
	"context"
	"errors"
	"testing"

	"github.com/kingrea/sweeper/internal/agent"
	"github.com/kingrea/sweeper/internal/grid"
	"github.com/kingrea/sweeper/internal/render"
)

func buildGrid(t *testing.T, width, height int) *grid.Grid {
	t.Helper()
	g, err := grid.New(width, height)
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	return g
}

func buildAgent(t *testing.T, g *grid.Grid, x, y int, opts ...agent.Option) *agent.Agent {
	t.Helper()
	a, err := agent.New(g, NewSpiral(), x, y, opts...)
	if err != nil {
		t.Fatalf("new agent: %v", err)
	}
	return a
}

func TestSpiralTracesExpandingSquare(t *testing.T) {
	g := buildGrid(t, 7, 7)
	var trail [][2]int
	a := buildAgent(t, g, 3, 3, agent.WithRenderer(render.RendererFunc(func(f render.Frame) {
		trail = append(trail, [2]int{f.AgentX, f.AgentY})
	})))

	res, err := NewSpiral(WithStepBudget(20)).Clean(context.Background(), a)
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if res.Reason != agent.HaltBudget {
		t.Fatalf("reason = %s, want %s", res.Reason, agent.HaltBudget)
	}
	if res.Steps != 20 || res.Blocked != 0 {
		t.Fatalf("steps = %d blocked = %d, want 20 and 0", res.Steps, res.Blocked)
	}
	if res.Turns != 8 {
		t.Fatalf("turns = %d, want 8", res.Turns)
	}

	// Segments of length 1, 1, 2, 2, 3, 3, 4, 4 joined by clockwise quarter
	// turns: right, down, left, up, repeating.
	want := [][2]int{
		{4, 3},
		{4, 4},
		{3, 4}, {2, 4},
		{2, 3}, {2, 2},
		{3, 2}, {4, 2}, {5, 2},
		{5, 3}, {5, 4}, {5, 5},
		{4, 5}, {3, 5}, {2, 5}, {1, 5},
		{1, 4}, {1, 3}, {1, 2}, {1, 1},
	}
	if len(trail) != len(want) {
		t.Fatalf("trail length = %d, want %d (%v)", len(trail), len(want), trail)
	}
	for i, pos := range want {
		if trail[i] != pos {
			t.Fatalf("move %d went to (%d,%d), want (%d,%d)", i+1, trail[i][0], trail[i][1], pos[0], pos[1])
		}
	}
}

func TestSpiralCleansDirtAlongThePath(t *testing.T) {
	g := buildGrid(t, 7, 7)
	g.AddDirt(4, 3)
	g.AddDirt(2, 2)
	g.AddDirt(0, 0) // far corner: first 20 attempts never reach it
	a := buildAgent(t, g, 3, 3)

	res, err := NewSpiral(WithStepBudget(20)).Clean(context.Background(), a)
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if res.Cleaned != 2 {
		t.Fatalf("cleaned = %d, want 2", res.Cleaned)
	}
	if got := g.At(4, 3); got != grid.Cleaned {
		t.Fatalf("cell (4,3) = %s, want cleaned", got)
	}
	if got := g.At(2, 2); got != grid.Cleaned {
		t.Fatalf("cell (2,2) = %s, want cleaned", got)
	}
	if got := g.At(0, 0); got != grid.Dirt {
		t.Fatalf("cell (0,0) = %s, want dirt still", got)
	}
}

func TestSpiralHaltsTrappedWhenStartBoxedIn(t *testing.T) {
	g := buildGrid(t, 5, 5)
	g.AddObstacle(3, 2)
	g.AddObstacle(2, 3)
	g.AddObstacle(1, 2)
	g.AddObstacle(2, 1)
	a := buildAgent(t, g, 2, 2)

	res, err := NewSpiral().Clean(context.Background(), a)
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if res.Reason != agent.HaltTrapped {
		t.Fatalf("reason = %s, want %s", res.Reason, agent.HaltTrapped)
	}
	if res.Steps != 0 {
		t.Fatalf("boxed-in start must not move, steps = %d", res.Steps)
	}
	if res.Blocked != 4 || res.Turns != 4 {
		t.Fatalf("expected one full blocked rotation, blocked = %d turns = %d", res.Blocked, res.Turns)
	}
}

func TestSpiralHaltsTrappedWhenWalledInMidRun(t *testing.T) {
	g := buildGrid(t, 9, 9)
	walled := false
	a := buildAgent(t, g, 4, 4, agent.WithRenderer(render.RendererFunc(func(f render.Frame) {
		if f.Step != 3 || walled {
			return
		}
		// Wall the robot in at its third stop. The grid allows mutation
		// mid-run, and this is the only way the post-move check can fire.
		walled = true
		g.AddObstacle(f.AgentX+1, f.AgentY)
		g.AddObstacle(f.AgentX-1, f.AgentY)
		g.AddObstacle(f.AgentX, f.AgentY+1)
		g.AddObstacle(f.AgentX, f.AgentY-1)
	})))

	res, err := NewSpiral().Clean(context.Background(), a)
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if res.Reason != agent.HaltTrapped {
		t.Fatalf("reason = %s, want %s", res.Reason, agent.HaltTrapped)
	}
	if res.Steps != 3 {
		t.Fatalf("steps = %d, want 3", res.Steps)
	}
}

func TestSpiralStopsAtStepBudget(t *testing.T) {
	g := buildGrid(t, 50, 50)
	a := buildAgent(t, g, 25, 25)

	res, err := NewSpiral(WithStepBudget(5)).Clean(context.Background(), a)
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if res.Reason != agent.HaltBudget {
		t.Fatalf("reason = %s, want %s", res.Reason, agent.HaltBudget)
	}
	if res.Steps != 5 {
		t.Fatalf("steps = %d, want 5", res.Steps)
	}
}

func TestSpiralReturnsContextError(t *testing.T) {
	g := buildGrid(t, 5, 5)
	a := buildAgent(t, g, 2, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := NewSpiral().Clean(ctx, a)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if res.Reason != agent.HaltCanceled {
		t.Fatalf("reason = %s, want %s", res.Reason, agent.HaltCanceled)
	}
	if res.Steps != 0 {
		t.Fatalf("canceled before the first attempt must not move, steps = %d", res.Steps)
	}
}
