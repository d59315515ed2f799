package render

import (
	"context"
	"time"
)

// Channel delivers frames to a consumer goroutine, typically a terminal UI.
// Sends are unbuffered, so the simulation stays in lockstep with whatever is
// drawing it; the run context aborts both the handoff and the inter-frame
// pause when the consumer goes away.
type Channel struct {
	ctx   context.Context
	ch    chan Frame
	delay time.Duration
}

// NewChannel returns a channel renderer paced by delay.
func NewChannel(ctx context.Context, delay time.Duration) *Channel {
	return &Channel{
		ctx:   ctx,
		ch:    make(chan Frame),
		delay: delay,
	}
}

// Frames is the consumer side of the renderer.
func (c *Channel) Frames() <-chan Frame {
	return c.ch
}

// RenderFrame hands the frame to the consumer and waits out the frame delay.
func (c *Channel) RenderFrame(f Frame) {
	select {
	case c.ch <- f:
	case <-c.ctx.Done():
		return
	}
	if c.delay <= 0 {
		return
	}
	timer := time.NewTimer(c.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-c.ctx.Done():
	}
}

// Close releases the consumer. Call it only after the producing run has
// returned; the consumer sees the channel drain and then close.
func (c *Channel) Close() {
	close(c.ch)
}
