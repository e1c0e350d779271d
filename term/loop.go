package term

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/marionette"
)

// Config configures Run.
type Config struct {
	CellW, CellH int
	Tick         time.Duration // frame interval, ~60 FPS when zero
	Script       *marionette.InputScript
	Watcher      *marionette.ConfigWatcher
}

// Loop drives an App against a terminal screen, one Frame per tick.
type Loop struct {
	app      *marionette.App
	queue    *marionette.EventQueue
	screen   tcell.Screen
	renderer *Renderer
	input    *Input
	cfg      Config
}

// NewLoop wires app to screen. queue must be the EventSource app was built
// with.
func NewLoop(app *marionette.App, queue *marionette.EventQueue, screen tcell.Screen, cfg Config) *Loop {
	if cfg.CellW <= 0 {
		cfg.CellW = DefaultCellW
	}
	if cfg.CellH <= 0 {
		cfg.CellH = DefaultCellH
	}
	if cfg.Tick <= 0 {
		cfg.Tick = 16 * time.Millisecond
	}
	r := NewRenderer(screen)
	r.CellW, r.CellH = float64(cfg.CellW), float64(cfg.CellH)
	return &Loop{
		app:      app,
		queue:    queue,
		screen:   screen,
		renderer: r,
		cfg:      cfg,
	}
}

// Renderer returns the loop's renderer.
func (l *Loop) Renderer() *Renderer {
	return l.renderer
}

// Frame runs one frame that lasted elapsed. It returns marionette.ErrQuit
// once a quit command ran.
func (l *Loop) Frame(elapsed time.Duration) error {
	if l.input != nil {
		l.input.Pump(l.queue)
	}
	if l.cfg.Script != nil {
		l.cfg.Script.Step(l.queue, nil)
	}
	if l.cfg.Watcher != nil {
		l.cfg.Watcher.Pump(l.queue)
	}
	l.queue.SetFrameElapsed(elapsed)
	if err := l.app.Update(); err != nil {
		return err
	}
	l.renderer.Clear()
	l.app.Draw(l.renderer)
	l.screen.Show()
	return nil
}

// Run reads terminal input and runs frames until a quit command. The screen
// must already be initialized; Run does not finalize it.
func (l *Loop) Run() error {
	l.input = NewInput(l.screen, l.cfg.CellW, l.cfg.CellH)
	defer l.input.Close()

	// Report the starting size like a window system would.
	cols, rows := l.screen.Size()
	l.queue.InjectResize(cols*l.cfg.CellW, rows*l.cfg.CellH)

	ticker := time.NewTicker(l.cfg.Tick)
	defer ticker.Stop()

	last := time.Now()
	for now := range ticker.C {
		err := l.Frame(now.Sub(last))
		last = now
		if marionette.IsQuit(err) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}
