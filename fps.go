package marionette

import (
	"strconv"
	"time"
)

// FPSCounter counts the frames presented during the trailing second.
// It is driven by frame durations rather than the wall clock, so it works
// the same under a real window and under scripted or simulated loops.
type FPSCounter struct {
	now   time.Duration
	ticks []time.Duration
	fps   int
}

// Tick records a frame that took elapsed and returns the current rate.
// A frame with no positive duration has no place on the timeline and is not
// counted, so the trailing window stays bounded.
func (c *FPSCounter) Tick(elapsed time.Duration) int {
	if elapsed <= 0 {
		return c.fps
	}
	c.now += elapsed
	c.ticks = append(c.ticks, c.now)
	cut := c.now - time.Second
	i := 0
	for i < len(c.ticks) && c.ticks[i] <= cut {
		i++
	}
	if i > 0 {
		n := copy(c.ticks, c.ticks[i:])
		c.ticks = c.ticks[:n]
	}
	c.fps = len(c.ticks)
	return c.fps
}

// FPS returns the rate computed by the last Tick.
func (c *FPSCounter) FPS() int {
	return c.fps
}

// String formats the rate the way the overlay shows it.
func (c *FPSCounter) String() string {
	return strconv.Itoa(c.fps)
}
