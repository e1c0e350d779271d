package term

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/marionette"
)

// Input reads tcell events on a goroutine and hands them to the frame loop
// without blocking it.
type Input struct {
	screen       tcell.Screen
	cellW, cellH int
	events       chan tcell.Event
	quit         chan struct{}
	once         sync.Once
}

// NewInput starts reading events from screen. Resize events are reported in
// scene pixels using the given cell size.
func NewInput(screen tcell.Screen, cellW, cellH int) *Input {
	in := &Input{
		screen: screen,
		cellW:  cellW,
		cellH:  cellH,
		events: make(chan tcell.Event, 100),
		quit:   make(chan struct{}),
	}
	go in.run()
	return in
}

func (in *Input) run() {
	for {
		ev := in.screen.PollEvent()
		if ev == nil {
			return // screen finalized
		}
		select {
		case in.events <- ev:
		case <-in.quit:
			return
		}
	}
}

// Close stops the reader. Call before finalizing the screen.
func (in *Input) Close() {
	in.once.Do(func() { close(in.quit) })
}

// Pump moves every pending terminal event into q.
func (in *Input) Pump(q *marionette.EventQueue) {
	for {
		select {
		case ev := <-in.events:
			if mev, ok := Translate(ev, in.cellW, in.cellH); ok {
				q.Push(mev)
			}
		default:
			return
		}
	}
}

// Translate converts a tcell event. Ctrl-C maps to Escape so it quits like
// the windowed demo. Keys without a marionette.Key still come through as
// named unknown presses so the app can log them. Events the frame loop does
// not use report false.
func Translate(ev tcell.Event, cellW, cellH int) (marionette.Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		k := translateKey(ev)
		if k == marionette.KeyUnknown {
			return marionette.UnknownKeyPress(keyName(ev)), true
		}
		return marionette.KeyPress(k), true
	case *tcell.EventResize:
		w, h := ev.Size()
		return marionette.WindowResize(w*cellW, h*cellH), true
	}
	return marionette.Event{}, false
}

func keyName(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		return string(ev.Rune())
	}
	return ev.Name()
}

func translateKey(ev *tcell.EventKey) marionette.Key {
	switch ev.Key() {
	case tcell.KeyRune:
		return marionette.KeyFromRune(ev.Rune())
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return marionette.KeyEscape
	case tcell.KeyEnter:
		return marionette.KeyEnter
	case tcell.KeyTab:
		return marionette.KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return marionette.KeyBackspace
	case tcell.KeyLeft:
		return marionette.KeyArrowLeft
	case tcell.KeyRight:
		return marionette.KeyArrowRight
	case tcell.KeyUp:
		return marionette.KeyArrowUp
	case tcell.KeyDown:
		return marionette.KeyArrowDown
	}
	return marionette.KeyUnknown
}
