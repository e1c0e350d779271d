package marionette

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// ErrUnknownSound is returned when playing or stopping a name that was never
// bound.
var ErrUnknownSound = errors.New("marionette: unknown sound")

// RepeatPolicy selects how often a sound plays.
type RepeatPolicy uint8

const (
	PlayOnce      RepeatPolicy = iota // play to the end and stop
	RepeatForever                     // loop until stopped
)

// Audio plays named sounds. Names are bound to files once at startup.
type Audio interface {
	Bind(name, path string) error
	Play(name string, policy RepeatPolicy) error
	Stop(name string) error
}

// DefaultSampleRate is used when no audio context exists yet.
const DefaultSampleRate = 44100

type ebitenSound struct {
	path   string
	data   []byte
	player *audio.Player
}

// EbitenAudio plays sounds through Ebitengine's audio context. Supported
// formats are WAV, Ogg Vorbis and MP3, chosen by file extension.
type EbitenAudio struct {
	ctx    *audio.Context
	sounds map[string]*ebitenSound
}

// NewEbitenAudio uses the process audio context, creating it at
// DefaultSampleRate if needed.
func NewEbitenAudio() *EbitenAudio {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(DefaultSampleRate)
	}
	return &EbitenAudio{ctx: ctx, sounds: make(map[string]*ebitenSound)}
}

// Bind reads and validates the sound file at path under name.
func (a *EbitenAudio) Bind(name, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &AssetLoadError{Kind: AssetSound, Path: path, Err: err}
	}
	if _, err := a.decode(path, data); err != nil {
		return &AssetLoadError{Kind: AssetSound, Path: path, Err: err}
	}
	if old, ok := a.sounds[name]; ok && old.player != nil {
		_ = old.player.Close()
	}
	a.sounds[name] = &ebitenSound{path: path, data: data}
	return nil
}

// Play starts the sound from the beginning, replacing a previous playback of
// the same name.
func (a *EbitenAudio) Play(name string, policy RepeatPolicy) error {
	snd, ok := a.sounds[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSound, name)
	}
	if snd.player != nil {
		_ = snd.player.Close()
		snd.player = nil
	}
	stream, err := a.decode(snd.path, snd.data)
	if err != nil {
		return fmt.Errorf("marionette: play %q: %w", name, err)
	}
	var src io.Reader = stream
	if policy == RepeatForever {
		src = audio.NewInfiniteLoop(stream, stream.Length())
	}
	player, err := a.ctx.NewPlayer(src)
	if err != nil {
		return fmt.Errorf("marionette: play %q: %w", name, err)
	}
	player.Play()
	snd.player = player
	return nil
}

// Stop halts the sound. Stopping a bound sound that is not playing is a
// no-op.
func (a *EbitenAudio) Stop(name string) error {
	snd, ok := a.sounds[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSound, name)
	}
	if snd.player == nil {
		return nil
	}
	snd.player.Pause()
	err := snd.player.Close()
	snd.player = nil
	return err
}

// decodedStream is the shape shared by the wav, vorbis and mp3 streams.
type decodedStream interface {
	io.ReadSeeker
	Length() int64
}

func (a *EbitenAudio) decode(path string, data []byte) (decodedStream, error) {
	r := bytes.NewReader(data)
	sr := a.ctx.SampleRate()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return wav.DecodeWithSampleRate(sr, r)
	case ".ogg":
		return vorbis.DecodeWithSampleRate(sr, r)
	case ".mp3":
		return mp3.DecodeWithSampleRate(sr, r)
	}
	return nil, fmt.Errorf("unsupported sound format %q", filepath.Ext(path))
}
