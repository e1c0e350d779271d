package marionette

import "time"

// EventSource supplies the frame loop with events and frame timing.
// PollEvent never blocks: it returns false when no event is pending for the
// current frame.
type EventSource interface {
	PollEvent() (Event, bool)
	FrameElapsed() time.Duration
}

// EventQueue is a FIFO EventSource. Backends push the input they observe
// each frame; scripts and tests inject synthetic events the same way. The
// frame loop consumes one event per frame, so a burst of presses is spread
// over consecutive frames in arrival order.
type EventQueue struct {
	events  []Event
	elapsed time.Duration
}

// NewEventQueue creates a queue that reports elapsed as every frame's
// duration until SetFrameElapsed changes it.
func NewEventQueue(elapsed time.Duration) *EventQueue {
	return &EventQueue{elapsed: elapsed}
}

// Push appends ev to the queue.
func (q *EventQueue) Push(ev Event) {
	q.events = append(q.events, ev)
}

// InjectKey queues a key press.
func (q *EventQueue) InjectKey(k Key) {
	q.Push(KeyPress(k))
}

// InjectResize queues a window resize.
func (q *EventQueue) InjectResize(w, h int) {
	q.Push(WindowResize(w, h))
}

// PollEvent pops the oldest queued event.
func (q *EventQueue) PollEvent() (Event, bool) {
	if len(q.events) == 0 {
		return Event{}, false
	}
	ev := q.events[0]
	copy(q.events, q.events[1:])
	q.events = q.events[:len(q.events)-1]
	return ev, true
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	return len(q.events)
}

// SetFrameElapsed sets the duration reported for the coming frames.
func (q *EventQueue) SetFrameElapsed(d time.Duration) {
	q.elapsed = d
}

// FrameElapsed returns the current frame duration.
func (q *EventQueue) FrameElapsed() time.Duration {
	return q.elapsed
}
