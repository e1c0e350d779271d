package marionette

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunConfig configures the ebiten window that hosts an App.
type RunConfig struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	Resizable  bool
	ClearColor Color

	// ScreenshotDir receives screenshots requested by Script.
	ScreenshotDir string
	Script        *InputScript
	Watcher       *ConfigWatcher
}

// game adapts an App to ebiten.Game. Input observed by ebiten is pushed into
// the App's EventQueue so scripted and real input share one path.
type game struct {
	app      *App
	queue    *EventQueue
	cfg      RunConfig
	renderer EbitenRenderer
	shots    *ScreenshotQueue
	keys     []ebiten.Key

	width, height int
}

// Run opens the window and drives app until the window closes or a quit
// command runs. queue must be the EventSource app was built with.
//
// ebiten calls Update on a fixed timestep, so each frame advances animations
// by exactly 1/TPS seconds rather than by measured wall time. A stalled
// window slows the animations down instead of making them jump.
func Run(app *App, queue *EventQueue, cfg RunConfig) error {
	g := newGame(app, queue, cfg)

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetFullscreen(cfg.Fullscreen)

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func newGame(app *App, queue *EventQueue, cfg RunConfig) *game {
	if cfg.ClearColor == (Color{}) {
		cfg.ClearColor = ColorWhite
	}
	return &game{
		app:    app,
		queue:  queue,
		cfg:    cfg,
		shots:  NewScreenshotQueue(cfg.ScreenshotDir, app.Logger()),
		width:  cfg.Width,
		height: cfg.Height,
	}
}

// Update implements ebiten.Game.
func (g *game) Update() error {
	if g.cfg.Script != nil {
		g.cfg.Script.Step(g.queue, g.shots)
	}
	if g.cfg.Watcher != nil {
		g.cfg.Watcher.Pump(g.queue)
	}

	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		g.queue.Push(NamedKeyPress(k.String()))
	}

	g.queue.SetFrameElapsed(frameDuration(ebiten.TPS()))
	if err := g.app.Update(); err != nil {
		if IsQuit(err) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.ClearColor.toRGBA())
	g.renderer.Target = screen
	g.app.Draw(&g.renderer)
	g.shots.Flush(screen)
}

// Layout implements ebiten.Game. A resizable window follows the outside size
// and reports each change as a resize event; a fixed window keeps its
// configured size.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if !g.cfg.Resizable {
		return g.cfg.Width, g.cfg.Height
	}
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.queue.InjectResize(outsideWidth, outsideHeight)
	}
	return g.width, g.height
}

// frameDuration is the time one Update covers at tps ticks per second.
// SyncWithFPS and other non-positive rates use the default tick.
func frameDuration(tps int) time.Duration {
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return time.Second / time.Duration(tps)
}
