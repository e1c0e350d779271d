package term

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"

	"github.com/phanxgames/marionette"
)

// SampleRate is the speaker rate; decoded sounds are resampled to it.
const SampleRate = beep.SampleRate(marionette.DefaultSampleRate)

type sound struct {
	buf  *beep.Buffer
	ctrl *beep.Ctrl
}

// Audio plays sounds through the beep speaker. Files are decoded into
// memory at Bind. Supported formats are WAV and Ogg Vorbis.
type Audio struct {
	mu          sync.Mutex
	sounds      map[string]*sound
	initialized bool
}

// NewAudio returns an Audio with the speaker not yet opened. Sounds can be
// bound and played before Init; they are silent until it succeeds.
func NewAudio() *Audio {
	return &Audio{sounds: make(map[string]*sound)}
}

// Init opens the speaker.
func (a *Audio) Init() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("term: speaker: %w", err)
	}
	a.initialized = true
	return nil
}

// Close stops every sound and closes the speaker.
func (a *Audio) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	a.initialized = false
}

// Bind decodes the file at path and stores it under name.
func (a *Audio) Bind(name, path string) error {
	buf, err := load(path)
	if err != nil {
		return &marionette.AssetLoadError{Kind: marionette.AssetSound, Path: path, Err: err}
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if old, ok := a.sounds[name]; ok {
		a.pause(old)
	}
	a.sounds[name] = &sound{buf: buf}
	return nil
}

// Play starts name from the beginning, replacing an earlier playback.
func (a *Audio) Play(name string, policy marionette.RepeatPolicy) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok := a.sounds[name]
	if !ok {
		return fmt.Errorf("%w: %q", marionette.ErrUnknownSound, name)
	}
	a.pause(s)

	var st beep.Streamer = s.buf.Streamer(0, s.buf.Len())
	if policy == marionette.RepeatForever {
		st = beep.Loop(-1, s.buf.Streamer(0, s.buf.Len()))
	}
	s.ctrl = &beep.Ctrl{Streamer: st}
	if a.initialized {
		speaker.Play(s.ctrl)
	}
	return nil
}

// Stop silences name. Stopping a bound sound that is not playing is a no-op.
func (a *Audio) Stop(name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok := a.sounds[name]
	if !ok {
		return fmt.Errorf("%w: %q", marionette.ErrUnknownSound, name)
	}
	a.pause(s)
	return nil
}

// Playing reports whether name has an active, unpaused playback.
func (a *Audio) Playing(name string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok := a.sounds[name]
	if !ok || s.ctrl == nil {
		return false
	}
	if a.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return !s.ctrl.Paused
}

func (a *Audio) pause(s *sound) {
	if s.ctrl == nil {
		return
	}
	if a.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	s.ctrl.Paused = true
}

func load(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var (
		st     beep.StreamSeekCloser
		format beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		st, format, err = wav.Decode(f)
	case ".ogg":
		st, format, err = vorbis.Decode(f)
	default:
		f.Close()
		return nil, fmt.Errorf("unsupported sound format %q", filepath.Ext(path))
	}
	if err != nil {
		f.Close()
		return nil, err
	}
	defer st.Close()

	var src beep.Streamer = st
	if format.SampleRate != SampleRate {
		src = beep.Resample(4, format.SampleRate, SampleRate, st)
		format.SampleRate = SampleRate
	}
	buf := beep.NewBuffer(format)
	buf.Append(src)
	if err := st.Err(); err != nil {
		return nil, err
	}
	return buf, nil
}
