// marionette opens a window with a background sprite and a player sprite
// riding on it. A/D/W/S bounce the player around, Space toggles a blink,
// F shows the frame rate and Escape quits.
//
// -variant picks the window flavour: fixed (400x400), resizable (640x480,
// the background re-centres on resize) or audio (resizable plus looping
// background music).
package main

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/phanxgames/marionette"
)

func main() {
	cfg, configPath, err := marionette.ParseArgs(os.Args[0], os.Args[1:], marionette.VariantFixed)
	if marionette.IsHelp(err) {
		return
	}
	if err != nil {
		slog.Error("parse arguments", "err", err)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(cfg, configPath, logger); err != nil {
		var le *marionette.AssetLoadError
		if errors.As(err, &le) {
			logger.Error("asset load failed", "kind", le.Kind, "path", le.Path, "err", le.Err)
		} else {
			logger.Error("marionette", "err", err)
		}
		os.Exit(1)
	}
}

func run(cfg marionette.Config, configPath string, logger *slog.Logger) error {
	if cfg.AssetsDir == "" {
		dir, err := marionette.FindAssetsDir(".", "assets", 3, 3)
		if err != nil {
			return err
		}
		cfg.AssetsDir = dir
	}

	bg, err := marionette.LoadTexture(cfg.AssetPath(cfg.Background))
	if err != nil {
		return err
	}
	player, err := marionette.LoadTexture(cfg.AssetPath(cfg.Player))
	if err != nil {
		return err
	}
	font, err := marionette.LoadFont(cfg.AssetPath(cfg.Font))
	if err != nil {
		return err
	}

	scene := marionette.NewScene()
	scene.SetLogger(logger)
	scene.SetDebugMode(cfg.Debug)

	puppet, err := marionette.BuildPuppet(scene, bg, player, cfg.Width, cfg.Height, cfg.Variant != marionette.VariantFixed)
	if err != nil {
		return err
	}
	set := cfg.Behaviors()

	queue := marionette.NewEventQueue(time.Second / 60)
	reloader := &marionette.Reloader{Path: configPath, Config: cfg, Set: set, Player: puppet.Player}
	app := marionette.NewApp(marionette.AppConfig{
		Scene:    scene,
		Events:   queue,
		Bindings: marionette.DemoBindings(puppet.Player, set),
		Font:     font,
		FontSize: cfg.FontSize,
		ShowFPS:  cfg.ShowFPS,
		OnReload: reloader.Reload,
		Logger:   logger,
		Debug:    cfg.Debug,
	})

	// The blink starts idle: run then toggle leaves it off until Space.
	app.Scheduler.Run(puppet.Player, set.Blink)
	app.Scheduler.Toggle(puppet.Player, set.Blink)

	if cfg.Music != "" {
		audio := marionette.NewEbitenAudio()
		if err := audio.Bind("music", cfg.AssetPath(cfg.Music)); err != nil {
			return err
		}
		if err := audio.Play("music", marionette.RepeatForever); err != nil {
			return err
		}
	}

	rc := marionette.RunConfig{
		Title:         cfg.Title,
		Width:         cfg.Width,
		Height:        cfg.Height,
		Fullscreen:    cfg.Fullscreen,
		Resizable:     cfg.Resizable,
		ClearColor:    marionette.ColorWhite,
		ScreenshotDir: "screenshots",
	}
	if cfg.Script != "" {
		data, err := os.ReadFile(cfg.Script)
		if err != nil {
			return err
		}
		if rc.Script, err = marionette.LoadInputScript(data); err != nil {
			return err
		}
	}
	if cfg.Watch && configPath != "" {
		w, err := marionette.WatchConfig(configPath, logger)
		if err != nil {
			return err
		}
		defer w.Close()
		rc.Watcher = w
	}

	return marionette.Run(app, queue, rc)
}
