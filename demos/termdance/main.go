// termdance runs the marionette demo in a terminal. The sprites become
// blocks of characters; the keys are the same as the windowed demo.
package main

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/marionette"
	"github.com/phanxgames/marionette/term"
)

func main() {
	cfg, configPath, err := marionette.ParseArgs(os.Args[0], os.Args[1:], marionette.VariantResizable)
	if marionette.IsHelp(err) {
		return
	}
	if err != nil {
		slog.Error("parse arguments", "err", err)
		os.Exit(2)
	}

	// The terminal owns the tty; log to a file instead.
	logFile, err := os.Create(filepath.Join(os.TempDir(), "termdance.log"))
	if err != nil {
		slog.Error("open log", "err", err)
		os.Exit(1)
	}
	defer logFile.Close()
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level}))

	if err := run(cfg, configPath, logger); err != nil {
		var le *marionette.AssetLoadError
		if errors.As(err, &le) {
			logger.Error("asset load failed", "kind", le.Kind, "path", le.Path, "err", le.Err)
		} else {
			logger.Error("termdance", "err", err)
		}
		slog.Error("termdance", "err", err)
		os.Exit(1)
	}
}

func run(cfg marionette.Config, configPath string, logger *slog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	cols, rows := screen.Size()
	w, h := cols*term.DefaultCellW, rows*term.DefaultCellH

	scene := marionette.NewScene()
	scene.SetLogger(logger)
	scene.SetDebugMode(cfg.Debug)

	bg := &term.Block{W: w / 2, H: h / 2, Rune: '░', Color: marionette.Color{R: 0.55, G: 0.6, B: 0.7, A: 1}}
	player := &term.Block{W: 3 * term.DefaultCellW, H: 2 * term.DefaultCellH, Rune: '█', Color: marionette.Color{R: 0.8, G: 0.3, B: 0.1, A: 1}}
	puppet, err := marionette.BuildPuppet(scene, bg, player, w, h, true)
	if err != nil {
		return err
	}
	// Centre the player on the background.
	if n, err := scene.Lookup(puppet.Player); err == nil {
		n.SetPosition(0, 0)
	}
	set := cfg.Behaviors()

	queue := marionette.NewEventQueue(0)
	reloader := &marionette.Reloader{Path: configPath, Config: cfg, Set: set, Player: puppet.Player}
	app := marionette.NewApp(marionette.AppConfig{
		Scene:    scene,
		Events:   queue,
		Bindings: marionette.DemoBindings(puppet.Player, set),
		Font:     termFont{},
		ShowFPS:  cfg.ShowFPS,
		OnReload: reloader.Reload,
		Logger:   logger,
		Debug:    cfg.Debug,
	})
	app.Scheduler.Run(puppet.Player, set.Blink)
	app.Scheduler.Toggle(puppet.Player, set.Blink)

	if cfg.Music != "" {
		if cfg.AssetsDir == "" {
			cfg.AssetsDir, _ = marionette.FindAssetsDir(".", "assets", 3, 3)
		}
		audio := term.NewAudio()
		if err := audio.Init(); err != nil {
			// A terminal without a sound device still gets the animation.
			logger.Warn("audio unavailable", "err", err)
		} else {
			defer audio.Close()
			if err := audio.Bind("music", cfg.AssetPath(cfg.Music)); err != nil {
				return err
			}
			if err := audio.Play("music", marionette.RepeatForever); err != nil {
				return err
			}
		}
	}

	tc := term.Config{}
	if cfg.Script != "" {
		data, err := os.ReadFile(cfg.Script)
		if err != nil {
			return err
		}
		if tc.Script, err = marionette.LoadInputScript(data); err != nil {
			return err
		}
	}
	if cfg.Watch && configPath != "" {
		watcher, err := marionette.WatchConfig(configPath, logger)
		if err != nil {
			return err
		}
		defer watcher.Close()
		tc.Watcher = watcher
	}

	return term.NewLoop(app, queue, screen, tc).Run()
}

// termFont measures one cell per rune.
type termFont struct{}

func (termFont) MeasureString(s string, _ float64) (float64, float64) {
	return float64(len([]rune(s)) * term.DefaultCellW), term.DefaultCellH
}
