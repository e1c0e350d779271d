package marionette

import "strings"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default clear color.
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is used for the FPS overlay.
var ColorBlack = Color{0, 0, 0, 1}

// Vec2 is a 2D vector used for positions, offsets and sizes.
type Vec2 struct {
	X, Y float64
}

// EventKind identifies a kind of window or input event.
type EventKind uint8

const (
	EventOther        EventKind = iota // anything the core does not interpret
	EventKeyPress                      // a key went down this frame
	EventWindowResize                  // the drawable area changed size
	EventFrameTick                     // a frame boundary with no input
	EventReload                        // the config file changed on disk
)

var eventKindNames = [...]string{
	EventOther:        "other",
	EventKeyPress:     "key_press",
	EventWindowResize: "window_resize",
	EventFrameTick:    "frame_tick",
	EventReload:       "reload",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "unknown"
}

// Event is a single window or input event pulled by the frame loop.
// Key is valid for EventKeyPress; Width and Height for EventWindowResize.
// Name carries the backend's key name when Key is KeyUnknown.
type Event struct {
	Kind   EventKind
	Key    Key
	Name   string
	Width  int
	Height int
}

// KeyPress returns a key press event.
func KeyPress(k Key) Event {
	return Event{Kind: EventKeyPress, Key: k}
}

// UnknownKeyPress returns a press of a key that has no Key constant.
// name is whatever the backend calls it, such as "1" or "F5".
func UnknownKeyPress(name string) Event {
	return Event{Kind: EventKeyPress, Key: KeyUnknown, Name: name}
}

// WindowResize returns a resize event.
func WindowResize(w, h int) Event {
	return Event{Kind: EventWindowResize, Width: w, Height: h}
}

// Key identifies a keyboard key independently of the windowing backend.
type Key uint8

const (
	KeyUnknown Key = iota
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	KeySpace
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyArrowLeft
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	keyCount
)

var keyNames = [keyCount]string{
	KeyUnknown:    "Unknown",
	KeySpace:      "Space",
	KeyEscape:     "Escape",
	KeyEnter:      "Enter",
	KeyTab:        "Tab",
	KeyBackspace:  "Backspace",
	KeyArrowLeft:  "ArrowLeft",
	KeyArrowRight: "ArrowRight",
	KeyArrowUp:    "ArrowUp",
	KeyArrowDown:  "ArrowDown",
}

func init() {
	for k := KeyA; k <= KeyZ; k++ {
		keyNames[k] = string(rune('A' + int(k-KeyA)))
	}
}

func (k Key) String() string {
	if k < keyCount {
		return keyNames[k]
	}
	return keyNames[KeyUnknown]
}

// KeyFromRune maps a letter or space to its Key. Other runes map to KeyUnknown.
func KeyFromRune(r rune) Key {
	switch {
	case r >= 'a' && r <= 'z':
		return KeyA + Key(r-'a')
	case r >= 'A' && r <= 'Z':
		return KeyA + Key(r-'A')
	case r == ' ':
		return KeySpace
	}
	return KeyUnknown
}

// NamedKeyPress returns a press of the key called name, falling back to an
// unknown press that keeps the name when no Key matches.
func NamedKeyPress(name string) Event {
	if k, ok := ParseKey(name); ok {
		return KeyPress(k)
	}
	return UnknownKeyPress(name)
}

// ParseKey returns the key with the given name (case-insensitive).
func ParseKey(name string) (Key, bool) {
	for k := KeyA; k < keyCount; k++ {
		if strings.EqualFold(keyNames[k], name) {
			return k, true
		}
	}
	return KeyUnknown, false
}
