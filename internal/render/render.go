// Package render turns simulation state into frames and delivers them to a
// pluggable renderer.
package render

import (
	"strings"

	"github.com/kingrea/sweeper/internal/grid"
)

// RobotGlyph overlays the agent's cell in textual frames.
const RobotGlyph byte = 'R'

// Legend names every glyph a textual frame can contain. Renderers emit it
// above the board so a frame is readable on its own.
const Legend = "R=robot  D=dirt  X=obstacle  *=cleaned  .=empty"

// Frame is an immutable snapshot of one simulation moment.
type Frame struct {
	Width  int
	Height int
	Cells  []grid.Cell // row-major copy of the board

	AgentX int
	AgentY int

	Seq      int // 1-based frame number
	Step     int // successful moves so far
	Cleaned  int // dirt cells cleaned so far
	DirtLeft int // dirt cells remaining
}

// Rows renders the board as one string per row, cells separated by a single
// space, with the robot glyph overlaying the agent's cell.
func (f Frame) Rows() []string {
	rows := make([]string, 0, f.Height)
	var b strings.Builder
	for y := 0; y < f.Height; y++ {
		b.Reset()
		for x := 0; x < f.Width; x++ {
			if x > 0 {
				b.WriteByte(' ')
			}
			if x == f.AgentX && y == f.AgentY {
				b.WriteByte(RobotGlyph)
				continue
			}
			b.WriteByte(f.Cells[y*f.Width+x].Glyph())
		}
		rows = append(rows, b.String())
	}
	return rows
}

// Renderer consumes frames as the simulation produces them. Implementations
// own their pacing: a renderer that animates sleeps between frames, a
// headless one returns immediately.
type Renderer interface {
	RenderFrame(Frame)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(Frame)

// RenderFrame calls the wrapped function; a nil func drops the frame.
func (fn RendererFunc) RenderFrame(f Frame) {
	if fn == nil {
		return
	}
	fn(f)
}
