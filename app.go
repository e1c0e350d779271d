package marionette

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// AppConfig configures NewApp. Scene and Events are required.
type AppConfig struct {
	Scene     *Scene
	Scheduler *Scheduler // created from Scene when nil
	Events    EventSource
	Bindings  KeyBindings

	// Font and FontSize are used by the FPS overlay.
	Font     Font
	FontSize float64
	ShowFPS  bool

	// OnReload is called for EventReload events.
	OnReload func(*App) error

	Logger *slog.Logger
	Debug  bool
}

// App is the application context threaded through the frame loop: the one
// scene, the one scheduler, the event source and the key table. There is no
// process-wide state; two Apps never share anything.
type App struct {
	Scene     *Scene
	Scheduler *Scheduler
	Events    EventSource
	Bindings  KeyBindings

	font     Font
	fontSize float64
	showFPS  bool
	fps      FPSCounter

	width, height int

	onReload func(*App) error
	logger   *slog.Logger
	debug    bool
	stats    frameStats
	quit     bool
}

const defaultFPSSize = 32

// fpsOrigin is where the FPS overlay baseline starts.
var fpsOrigin = Vec2{10, 30}

// NewApp builds an App from cfg. Panics if Scene or Events is nil.
func NewApp(cfg AppConfig) *App {
	if cfg.Scene == nil || cfg.Events == nil {
		panic("marionette: NewApp requires a scene and an event source")
	}
	a := &App{
		Scene:     cfg.Scene,
		Scheduler: cfg.Scheduler,
		Events:    cfg.Events,
		Bindings:  cfg.Bindings,
		font:      cfg.Font,
		fontSize:  cfg.FontSize,
		showFPS:   cfg.ShowFPS,
		onReload:  cfg.OnReload,
		logger:    cfg.Logger,
		debug:     cfg.Debug,
	}
	if a.Scheduler == nil {
		a.Scheduler = NewScheduler(a.Scene)
	}
	if a.Bindings == nil {
		a.Bindings = KeyBindings{}
	}
	if a.fontSize <= 0 {
		a.fontSize = defaultFPSSize
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a
}

// Bind maps k to cmd, replacing any previous binding.
func (a *App) Bind(k Key, cmd Command) {
	a.Bindings[k] = cmd
}

// ShowFPS reports whether the FPS overlay is visible.
func (a *App) ShowFPS() bool {
	return a.showFPS
}

// FPS returns the current frame rate.
func (a *App) FPS() int {
	return a.fps.FPS()
}

// Size returns the last window size reported by a resize event.
func (a *App) Size() (int, int) {
	return a.width, a.height
}

// Logger returns the app logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Frame runs one full frame: Update followed by Draw.
func (a *App) Frame(r Renderer) error {
	if err := a.Update(); err != nil {
		return err
	}
	a.Draw(r)
	return nil
}

// Update runs the input half of a frame, strictly in this order: measure
// the elapsed time, pull at most one event, dispatch it to the scene,
// apply its key binding, then advance the scheduler. It returns ErrQuit
// once a quit command ran.
func (a *App) Update() error {
	var t0 time.Time
	if a.debug {
		t0 = time.Now()
	}

	elapsed := a.Events.FrameElapsed()
	a.fps.Tick(elapsed)

	if ev, ok := a.Events.PollEvent(); ok {
		a.Scene.Dispatch(ev)
		a.handle(ev)
	}

	if a.debug {
		a.stats.pollTime = time.Since(t0)
		t0 = time.Now()
	}

	if err := a.Scheduler.Advance(elapsed.Seconds()); err != nil {
		return fmt.Errorf("marionette: advance frame: %w", err)
	}

	if a.debug {
		a.stats.advanceTime = time.Since(t0)
		a.stats.running = a.Scheduler.Len()
		a.stats.nodes = a.Scene.Len()
	}
	if a.quit {
		return ErrQuit
	}
	return nil
}

// Draw runs the drawing half of a frame: one pass over the scene, then the
// FPS overlay when enabled.
func (a *App) Draw(r Renderer) {
	var t0 time.Time
	if a.debug {
		t0 = time.Now()
	}

	a.Scene.Draw(r, Identity)
	if a.showFPS && a.font != nil {
		r.DrawText(a.fps.String(), a.font, Translate(fpsOrigin.X, fpsOrigin.Y), ColorBlack, a.fontSize)
	}

	if a.debug {
		a.stats.drawTime = time.Since(t0)
		logFrameStats(a.logger, a.stats)
	}
}

func (a *App) handle(ev Event) {
	switch ev.Kind {
	case EventKeyPress:
		a.handleKey(ev)
	case EventWindowResize:
		a.width, a.height = ev.Width, ev.Height
	case EventReload:
		if a.onReload == nil {
			return
		}
		if err := a.onReload(a); err != nil {
			// A broken config on disk keeps the previous templates.
			a.logger.Error("reload failed", "err", err)
		}
	}
}

func (a *App) handleKey(ev Event) {
	cmd, ok := a.Bindings[ev.Key]
	if !ok {
		if ev.Key == KeyUnknown && ev.Name != "" {
			a.logger.Info("unregistered keyboard key", "key", ev.Name)
		} else {
			a.logger.Info("unregistered keyboard key", "key", ev.Key)
		}
		return
	}
	switch cmd.Kind {
	case CommandRun:
		a.Scheduler.Run(cmd.Node, cmd.Behavior)
	case CommandToggle:
		a.Scheduler.Toggle(cmd.Node, cmd.Behavior)
	case CommandToggleFPS:
		a.showFPS = !a.showFPS
	case CommandQuit:
		a.quit = true
	}
}

// IsQuit reports whether err ends the frame loop normally.
func IsQuit(err error) bool {
	return errors.Is(err, ErrQuit)
}
