package render

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// DefaultFrameDelay is the pause between animated frames.
const DefaultFrameDelay = 150 * time.Millisecond

// ansiClear homes the cursor and wipes the screen so the next frame replaces
// the previous one.
const ansiClear = "\x1b[H\x1b[2J"

// Console animates frames on a terminal: each frame clears the screen, prints
// the legend and the board, then pauses briefly so the motion is visible.
type Console struct {
	out   io.Writer
	delay time.Duration
}

// ConsoleOption customizes a console renderer.
type ConsoleOption func(*Console)

// WithDelay sets the pause after each frame. Zero or negative disables the
// pause (used by tests and non-interactive runs).
func WithDelay(d time.Duration) ConsoleOption {
	return func(c *Console) {
		c.delay = d
	}
}

// NewConsole returns a renderer writing ANSI frames to out.
func NewConsole(out io.Writer, opts ...ConsoleOption) *Console {
	c := &Console{out: out, delay: DefaultFrameDelay}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RenderFrame draws one frame and sleeps for the configured delay.
func (c *Console) RenderFrame(f Frame) {
	var b strings.Builder
	b.WriteString(ansiClear)
	b.WriteString(Legend)
	b.WriteString("\n\n")
	for _, row := range f.Rows() {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "\nstep %d  cleaned %d  dirt left %d\n", f.Step, f.Cleaned, f.DirtLeft)
	fmt.Fprint(c.out, b.String())
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
}
