package marionette

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Variant selects one of the three demo flavours. They share everything but
// window defaults, resize handling and background music.
type Variant string

const (
	VariantFixed     Variant = "fixed"     // 400x400, fixed size window
	VariantResizable Variant = "resizable" // 640x480, resizable, resize re-centres the scene
	VariantAudio     Variant = "audio"     // as resizable, plus looping background music
)

// TweenConfig is one timed, eased effect.
type TweenConfig struct {
	Duration float64      `yaml:"duration" toml:"duration"`
	Ease     EaseFunction `yaml:"ease" toml:"ease"`
}

// AnimationConfig tunes the demo behaviors.
type AnimationConfig struct {
	MoveDistance float64     `yaml:"move_distance" toml:"move_distance"`
	Move         TweenConfig `yaml:"move" toml:"move"`
	FadeOut      TweenConfig `yaml:"fade_out" toml:"fade_out"`
	FadeIn       TweenConfig `yaml:"fade_in" toml:"fade_in"`
}

// Config is the demo configuration. Only the window and asset fields reach
// the backends; Animation builds the behavior templates.
type Config struct {
	Variant    Variant `yaml:"variant" toml:"variant"`
	Title      string  `yaml:"title" toml:"title"`
	Width      int     `yaml:"width" toml:"width"`
	Height     int     `yaml:"height" toml:"height"`
	Fullscreen bool    `yaml:"fullscreen" toml:"fullscreen"`
	Resizable  bool    `yaml:"resizable" toml:"resizable"`

	AssetsDir  string  `yaml:"assets_dir" toml:"assets_dir"`
	Background string  `yaml:"background" toml:"background"`
	Player     string  `yaml:"player" toml:"player"`
	Font       string  `yaml:"font" toml:"font"`
	FontSize   float64 `yaml:"font_size" toml:"font_size"`
	Music      string  `yaml:"music" toml:"music"`

	ShowFPS bool   `yaml:"show_fps" toml:"show_fps"`
	Debug   bool   `yaml:"debug" toml:"debug"`
	Script  string `yaml:"script" toml:"script"`
	Watch   bool   `yaml:"watch" toml:"watch"`

	Animation AnimationConfig `yaml:"animation" toml:"animation"`
}

// DefaultConfig returns the built-in defaults for v.
func DefaultConfig(v Variant) Config {
	c := Config{
		Variant:    v,
		Title:      "marionette",
		Width:      640,
		Height:     480,
		AssetsDir:  "",
		Background: "figure_1.png",
		Player:     "rust.png",
		Font:       "FiraCode-Regular-modified.ttf",
		FontSize:   32,
		Animation: AnimationConfig{
			MoveDistance: 32,
			Move:         TweenConfig{Duration: 1, Ease: EaseBounceOut},
			FadeOut:      TweenConfig{Duration: 1, Ease: EaseQuadraticIn},
			FadeIn:       TweenConfig{Duration: 1, Ease: EaseQuadraticOut},
		},
	}
	switch v {
	case VariantFixed:
		c.Width, c.Height = 400, 400
	case VariantResizable:
		c.Resizable = true
	case VariantAudio:
		c.Resizable = true
		c.Music = "music.ogg"
	}
	return c
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch c.Variant {
	case VariantFixed, VariantResizable, VariantAudio:
	default:
		return fmt.Errorf("marionette: config: unknown variant %q", c.Variant)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("marionette: config: window size %dx%d must be positive", c.Width, c.Height)
	}
	if !(c.FontSize > 0) {
		return fmt.Errorf("marionette: config: font size %v must be positive", c.FontSize)
	}
	a := c.Animation
	if math.IsNaN(a.MoveDistance) || math.IsInf(a.MoveDistance, 0) {
		return fmt.Errorf("marionette: config: move distance %v must be finite", a.MoveDistance)
	}
	for name, t := range map[string]TweenConfig{"move": a.Move, "fade_out": a.FadeOut, "fade_in": a.FadeIn} {
		if !(t.Duration >= 0) || math.IsInf(t.Duration, 0) {
			return fmt.Errorf("marionette: config: %s duration %v must be a non-negative number", name, t.Duration)
		}
		if t.Ease >= easeCount {
			return fmt.Errorf("marionette: config: %s ease %d is not a known curve", name, t.Ease)
		}
	}
	return nil
}

// AssetPath resolves name against AssetsDir.
func (c Config) AssetPath(name string) string {
	if name == "" || filepath.IsAbs(name) || c.AssetsDir == "" {
		return name
	}
	return filepath.Join(c.AssetsDir, name)
}

// Behaviors builds the demo templates: four bounce moves and the endless
// blink.
func (c Config) Behaviors() BehaviorSet {
	a := c.Animation
	d := a.MoveDistance
	move := func(dx, dy float64) Behavior {
		return Sequence(Action(Ease(a.Move.Ease, MoveBy(a.Move.Duration, dx, dy))))
	}
	return BehaviorSet{
		Left:  move(-d, 0),
		Right: move(d, 0),
		Up:    move(0, -d),
		Down:  move(0, d),
		Blink: While(WaitForever(),
			Action(Ease(a.FadeOut.Ease, FadeOut(a.FadeOut.Duration))),
			Action(Ease(a.FadeIn.Ease, FadeIn(a.FadeIn.Duration))),
		),
	}
}

// LoadConfigFile decodes the file at path over c. The format follows the
// extension: .yaml/.yml or .toml. Fields missing from the file keep their
// current values.
func LoadConfigFile(path string, c *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("marionette: config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("marionette: config: unmarshal %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), c); err != nil {
			return fmt.Errorf("marionette: config: decode %s: %w", path, err)
		}
	default:
		return fmt.Errorf("marionette: config: unsupported format %q", filepath.Ext(path))
	}
	return nil
}

// ErrHelp is returned by ParseArgs when -h or -help was given.
var ErrHelp = flag.ErrHelp

// ParseArgs builds a Config from command-line arguments. Precedence, lowest
// first: the variant defaults, the -config file, explicitly set flags. The
// returned path is the config file, if any.
func ParseArgs(name string, args []string, variant Variant) (Config, string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	flags := DefaultConfig(variant)
	var configPath string

	fs.StringVar(&configPath, "config", "", "config file (.yaml, .yml or .toml)")
	fs.Func("variant", "demo variant: fixed, resizable or audio", func(s string) error {
		flags.Variant = Variant(s)
		return nil
	})
	fs.IntVar(&flags.Width, "width", flags.Width, "window width")
	fs.IntVar(&flags.Height, "height", flags.Height, "window height")
	fs.BoolVar(&flags.Fullscreen, "fullscreen", flags.Fullscreen, "start fullscreen")
	fs.BoolVar(&flags.Resizable, "resizable", flags.Resizable, "allow resizing the window")
	fs.StringVar(&flags.AssetsDir, "assets", flags.AssetsDir, "assets folder (searched for when empty)")
	fs.StringVar(&flags.Music, "music", flags.Music, "background music file")
	fs.BoolVar(&flags.ShowFPS, "fps", flags.ShowFPS, "show the FPS overlay at start")
	fs.BoolVar(&flags.Debug, "debug", flags.Debug, "log per-frame stats")
	fs.StringVar(&flags.Script, "script", flags.Script, "JSON input script")
	fs.BoolVar(&flags.Watch, "watch", flags.Watch, "reload -config on change")

	if err := fs.Parse(args); err != nil {
		return Config{}, "", err
	}

	cfg := DefaultConfig(flags.Variant)
	if configPath != "" {
		if err := LoadConfigFile(configPath, &cfg); err != nil {
			return Config{}, "", err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		applyFlag(&cfg, &flags, f.Name)
	})
	if err := cfg.Validate(); err != nil {
		return Config{}, "", err
	}
	return cfg, configPath, nil
}

func applyFlag(dst, src *Config, name string) {
	switch name {
	case "variant":
		dst.Variant = src.Variant
	case "width":
		dst.Width = src.Width
	case "height":
		dst.Height = src.Height
	case "fullscreen":
		dst.Fullscreen = src.Fullscreen
	case "resizable":
		dst.Resizable = src.Resizable
	case "assets":
		dst.AssetsDir = src.AssetsDir
	case "music":
		dst.Music = src.Music
	case "fps":
		dst.ShowFPS = src.ShowFPS
	case "debug":
		dst.Debug = src.Debug
	case "script":
		dst.Script = src.Script
	case "watch":
		dst.Watch = src.Watch
	}
}

// IsHelp reports whether err came from -h/-help.
func IsHelp(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
