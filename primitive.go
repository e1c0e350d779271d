package marionette

import (
	"fmt"
	"strconv"
)

// Primitive is a single timed effect on one node. Primitives are immutable
// descriptions; the start state is captured when a running instance first
// steps them, so one Primitive can drive any number of nodes.
type Primitive interface {
	fmt.Stringer
	// Duration returns the effect length in seconds. A duration <= 0
	// completes on the first step.
	Duration() float64
	bind(n *Node) applyFunc
}

// applyFunc writes the effect at progress p in [0, 1] to the node.
type applyFunc func(n *Node, p float64)

// lerp interpolates from a to b and returns b exactly at p == 1.
func lerp(a, b, p float64) float64 {
	if p == 1 {
		return b
	}
	return a + (b-a)*p
}

func fmtSeconds(d float64) string {
	return strconv.FormatFloat(d, 'g', -1, 64)
}

// --- Move ---

type moveBy struct {
	d, dx, dy float64
}

// MoveBy moves the node by (dx, dy) over d seconds, relative to its
// position when the effect starts.
func MoveBy(d, dx, dy float64) Primitive {
	return &moveBy{d: d, dx: dx, dy: dy}
}

func (m *moveBy) Duration() float64 { return m.d }

func (m *moveBy) bind(n *Node) applyFunc {
	sx, sy := n.X, n.Y
	tx, ty := sx+m.dx, sy+m.dy
	return func(n *Node, p float64) {
		n.X = lerp(sx, tx, p)
		n.Y = lerp(sy, ty, p)
	}
}

func (m *moveBy) String() string {
	return fmt.Sprintf("MoveBy(%s, %g, %g)", fmtSeconds(m.d), m.dx, m.dy)
}

type moveTo struct {
	d, x, y float64
}

// MoveTo moves the node to (x, y) over d seconds.
func MoveTo(d, x, y float64) Primitive {
	return &moveTo{d: d, x: x, y: y}
}

func (m *moveTo) Duration() float64 { return m.d }

func (m *moveTo) bind(n *Node) applyFunc {
	sx, sy := n.X, n.Y
	return func(n *Node, p float64) {
		n.X = lerp(sx, m.x, p)
		n.Y = lerp(sy, m.y, p)
	}
}

func (m *moveTo) String() string {
	return fmt.Sprintf("MoveTo(%s, %g, %g)", fmtSeconds(m.d), m.x, m.y)
}

// --- Fade ---

type fadeTo struct {
	name   string
	d      float64
	target float64
}

// FadeIn fades the node to full opacity over d seconds.
func FadeIn(d float64) Primitive {
	return &fadeTo{name: "FadeIn", d: d, target: 1}
}

// FadeOut fades the node to zero opacity over d seconds.
func FadeOut(d float64) Primitive {
	return &fadeTo{name: "FadeOut", d: d, target: 0}
}

// FadeTo fades the node to opacity a (clamped to [0, 1]) over d seconds.
func FadeTo(d, a float64) Primitive {
	return &fadeTo{name: "FadeTo", d: d, target: clamp01(a)}
}

func (f *fadeTo) Duration() float64 { return f.d }

func (f *fadeTo) bind(n *Node) applyFunc {
	start := n.Alpha
	return func(n *Node, p float64) {
		n.Alpha = lerp(start, f.target, p)
	}
}

func (f *fadeTo) String() string {
	if f.name == "FadeTo" {
		return fmt.Sprintf("FadeTo(%s, %g)", fmtSeconds(f.d), f.target)
	}
	return fmt.Sprintf("%s(%s)", f.name, fmtSeconds(f.d))
}

// --- Rotate ---

type rotate struct {
	d, r     float64
	relative bool
}

// RotateBy rotates the node by r radians over d seconds.
func RotateBy(d, r float64) Primitive {
	return &rotate{d: d, r: r, relative: true}
}

// RotateTo rotates the node to r radians over d seconds.
func RotateTo(d, r float64) Primitive {
	return &rotate{d: d, r: r}
}

func (m *rotate) Duration() float64 { return m.d }

func (m *rotate) bind(n *Node) applyFunc {
	start := n.Rotation
	target := m.r
	if m.relative {
		target += start
	}
	return func(n *Node, p float64) {
		n.Rotation = lerp(start, target, p)
	}
}

func (m *rotate) String() string {
	if m.relative {
		return fmt.Sprintf("RotateBy(%s, %g)", fmtSeconds(m.d), m.r)
	}
	return fmt.Sprintf("RotateTo(%s, %g)", fmtSeconds(m.d), m.r)
}

// --- Scale ---

type scale struct {
	d, sx, sy float64
	relative  bool
}

// ScaleBy adds (sx, sy) to the node's scale over d seconds.
func ScaleBy(d, sx, sy float64) Primitive {
	return &scale{d: d, sx: sx, sy: sy, relative: true}
}

// ScaleTo scales the node to (sx, sy) over d seconds.
func ScaleTo(d, sx, sy float64) Primitive {
	return &scale{d: d, sx: sx, sy: sy}
}

func (m *scale) Duration() float64 { return m.d }

func (m *scale) bind(n *Node) applyFunc {
	x0, y0 := n.ScaleX, n.ScaleY
	tx, ty := m.sx, m.sy
	if m.relative {
		tx += x0
		ty += y0
	}
	return func(n *Node, p float64) {
		n.ScaleX = lerp(x0, tx, p)
		n.ScaleY = lerp(y0, ty, p)
	}
}

func (m *scale) String() string {
	if m.relative {
		return fmt.Sprintf("ScaleBy(%s, %g, %g)", fmtSeconds(m.d), m.sx, m.sy)
	}
	return fmt.Sprintf("ScaleTo(%s, %g, %g)", fmtSeconds(m.d), m.sx, m.sy)
}

// --- Ease ---

type eased struct {
	fn    EaseFunction
	inner Primitive
}

// Ease wraps p so that its linear progress f is replaced by fn(f).
// Nested eases compose: Ease(a, Ease(b, p)) runs p at b(a(f)).
func Ease(fn EaseFunction, p Primitive) Primitive {
	return &eased{fn: fn, inner: p}
}

func (e *eased) Duration() float64 { return e.inner.Duration() }

func (e *eased) bind(n *Node) applyFunc {
	apply := e.inner.bind(n)
	return func(n *Node, p float64) {
		apply(n, e.fn.At(p))
	}
}

func (e *eased) String() string {
	return fmt.Sprintf("Ease(%s, %s)", e.fn, e.inner)
}
