package term

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/phanxgames/marionette"
)

func newScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(cols, rows)
	t.Cleanup(s.Fini)
	return s
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func countRune(s tcell.Screen, want rune) int {
	cols, rows := s.Size()
	n := 0
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if runeAt(s, x, y) == want {
				n++
			}
		}
	}
	return n
}

func TestRendererBlockCells(t *testing.T) {
	s := newScreen(t, 20, 10)
	r := NewRenderer(s)
	r.Clear()

	// 16x32 px at (8,16) covers columns 1-2 and rows 1-2.
	r.DrawTexturedQuad(marionette.Translate(8, 16), &Block{W: 16, H: 32, Rune: '#'}, 1)

	for _, c := range [][2]int{{1, 1}, {2, 1}, {1, 2}, {2, 2}} {
		if got := runeAt(s, c[0], c[1]); got != '#' {
			t.Errorf("cell %v = %q, want '#'", c, got)
		}
	}
	if n := countRune(s, '#'); n != 4 {
		t.Errorf("filled cells = %d, want 4", n)
	}
}

func TestRendererSkipsTransparentAndDegenerate(t *testing.T) {
	s := newScreen(t, 20, 10)
	r := NewRenderer(s)
	r.Clear()

	tex := &Block{W: 16, H: 16, Rune: '#'}
	r.DrawTexturedQuad(marionette.Identity, tex, 0)
	r.DrawTexturedQuad(marionette.Scale(0, 1), tex, 1)

	if n := countRune(s, '#'); n != 0 {
		t.Errorf("filled cells = %d, want 0", n)
	}
}

func TestRendererClipsToScreen(t *testing.T) {
	s := newScreen(t, 4, 2)
	r := NewRenderer(s)
	r.Clear()

	r.DrawTexturedQuad(marionette.Translate(-100, -100), &Block{W: 1000, H: 1000, Rune: '#'}, 1)

	if n := countRune(s, '#'); n != 8 {
		t.Errorf("filled cells = %d, want 8", n)
	}
}

func TestRendererText(t *testing.T) {
	s := newScreen(t, 20, 5)
	r := NewRenderer(s)
	r.Clear()

	// Baseline at y=30 lands on row 1.
	r.DrawText("60", nil, marionette.Translate(10, 30), marionette.ColorBlack, 32)

	if runeAt(s, 1, 1) != '6' || runeAt(s, 2, 1) != '0' {
		t.Errorf("row 1 = %q%q, want \"60\"", runeAt(s, 1, 1), runeAt(s, 2, 1))
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		ev   tcell.Event
		want marionette.Event
		ok   bool
	}{
		{"letter", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), marionette.KeyPress(marionette.KeyA), true},
		{"upper", tcell.NewEventKey(tcell.KeyRune, 'W', tcell.ModNone), marionette.KeyPress(marionette.KeyW), true},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), marionette.KeyPress(marionette.KeySpace), true},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), marionette.KeyPress(marionette.KeyEscape), true},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), marionette.KeyPress(marionette.KeyEscape), true},
		{"arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), marionette.KeyPress(marionette.KeyArrowLeft), true},
		{"digit", tcell.NewEventKey(tcell.KeyRune, '7', tcell.ModNone), marionette.UnknownKeyPress("7"), true},
		{"function", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), marionette.UnknownKeyPress("F5"), true},
		{"resize", tcell.NewEventResize(80, 24), marionette.WindowResize(640, 384), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Translate(tt.ev, DefaultCellW, DefaultCellH)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Translate = %+v, %v; want %+v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func newDemoApp(t *testing.T, logger *slog.Logger) (*marionette.App, *marionette.EventQueue, marionette.NodeID) {
	t.Helper()
	scene := marionette.NewScene()
	player := marionette.NewSprite("player", &Block{W: 16, H: 16, Rune: '@'})
	player.SetPosition(80, 80)
	id, err := scene.AddChild(marionette.RootID, player)
	if err != nil {
		t.Fatal(err)
	}
	set := marionette.DefaultConfig(marionette.VariantFixed).Behaviors()
	queue := marionette.NewEventQueue(0)
	app := marionette.NewApp(marionette.AppConfig{
		Scene:    scene,
		Events:   queue,
		Bindings: marionette.DemoBindings(id, set),
		Logger:   logger,
	})
	return app, queue, id
}

func TestLoopFrameMovesPlayer(t *testing.T) {
	s := newScreen(t, 40, 20)
	app, queue, id := newDemoApp(t, nil)
	loop := NewLoop(app, queue, s, Config{})

	queue.InjectKey(marionette.KeyD)
	for i := 0; i < 10; i++ {
		if err := loop.Frame(100 * time.Millisecond); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
	}

	n, _ := app.Scene.Lookup(id)
	if n.X != 112 || n.Y != 80 {
		t.Errorf("player at (%v, %v), want (112, 80)", n.X, n.Y)
	}
	// 16x16 at centre (112, 80): columns 13-14, row 4.
	if runeAt(s, 13, 4) != '@' || runeAt(s, 14, 4) != '@' {
		t.Errorf("player not drawn at its new cells")
	}
}

func TestUnmappedTerminalKeyLogged(t *testing.T) {
	s := newScreen(t, 10, 5)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	app, queue, _ := newDemoApp(t, logger)

	in := NewInput(s, DefaultCellW, DefaultCellH)
	defer in.Close()
	s.InjectKey(tcell.KeyRune, '1', tcell.ModNone)
	deadline := time.Now().Add(2 * time.Second)
	for queue.Len() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("key never reached the queue")
		}
		in.Pump(queue)
		time.Sleep(time.Millisecond)
	}

	if err := app.Update(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "unregistered keyboard key") || !strings.Contains(out, "key=1") {
		t.Errorf("log = %q", out)
	}
	if app.Scheduler.Len() != 0 {
		t.Error("unmapped key started something")
	}
}

func TestLoopFrameQuit(t *testing.T) {
	s := newScreen(t, 10, 5)
	app, queue, _ := newDemoApp(t, nil)
	script, err := marionette.LoadInputScript([]byte(`{"steps":[{"action":"quit"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	loop := NewLoop(app, queue, s, Config{Script: script})

	if err := loop.Frame(time.Millisecond); !marionette.IsQuit(err) {
		t.Fatalf("Frame = %v, want ErrQuit", err)
	}
}

func writeSilence(t *testing.T, rate beep.SampleRate) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "silence.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, beep.Silence(rate.N(100*time.Millisecond)), format); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAudioBindPlayStop(t *testing.T) {
	a := NewAudio()
	// Resampling path: the file rate differs from the speaker rate.
	if err := a.Bind("music", writeSilence(t, 22050)); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if a.Playing("music") {
		t.Fatal("playing before Play")
	}
	if err := a.Play("music", marionette.RepeatForever); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if !a.Playing("music") {
		t.Error("not playing after Play")
	}
	if err := a.Stop("music"); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if a.Playing("music") {
		t.Error("still playing after Stop")
	}
}

func TestAudioErrors(t *testing.T) {
	a := NewAudio()
	if err := a.Play("nope", marionette.PlayOnce); !errors.Is(err, marionette.ErrUnknownSound) {
		t.Errorf("Play unknown = %v, want ErrUnknownSound", err)
	}
	if err := a.Stop("nope"); !errors.Is(err, marionette.ErrUnknownSound) {
		t.Errorf("Stop unknown = %v, want ErrUnknownSound", err)
	}

	err := a.Bind("x", filepath.Join(t.TempDir(), "missing.wav"))
	var le *marionette.AssetLoadError
	if !errors.As(err, &le) || le.Kind != marionette.AssetSound {
		t.Errorf("Bind missing = %v, want sound AssetLoadError", err)
	}
	if err := a.Bind("x", filepath.Join(t.TempDir(), "song.flac")); err == nil {
		t.Error("Bind .flac: want error")
	}
}
