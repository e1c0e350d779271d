package marionette

import (
	"fmt"
	"math"
	"strings"
)

// timeEpsilon absorbs float accumulation when elapsed time is split across
// many steps: ten steps of 0.1 must finish a 1 second effect. It is the only
// tolerance on completion; see Instance.Step.
const timeEpsilon = 1e-9

// Behavior is an immutable description of a timed effect or a composition
// of effects. The set of variants is closed: Action, Sequence, While, Wait
// and WaitForever. A Behavior carries no progress state and can be run on
// many nodes at once; progress lives in an Instance.
//
// Behaviors are compared by identity: two calls to Sequence with the same
// children produce two different behaviors.
type Behavior interface {
	fmt.Stringer
	newRun() run
}

// run is the mutable cursor of one running behavior.
// step advances by dt seconds and reports the time left over once the
// behavior completes, so that followers in a sequence continue in the same
// step.
type run interface {
	step(n *Node, dt float64) (rest float64, done bool)
}

// --- Action ---

type action struct {
	prim Primitive
}

// Action wraps a single primitive as a behavior.
func Action(p Primitive) Behavior {
	if p == nil {
		panic("marionette: Action requires a primitive")
	}
	return &action{prim: p}
}

func (a *action) newRun() run { return &actionRun{prim: a.prim} }

func (a *action) String() string { return "Action(" + a.prim.String() + ")" }

type actionRun struct {
	prim    Primitive
	apply   applyFunc
	elapsed float64
}

func (r *actionRun) step(n *Node, dt float64) (float64, bool) {
	if r.apply == nil {
		r.apply = r.prim.bind(n)
	}
	d := r.prim.Duration()
	if !(d > 0) {
		r.apply(n, 1)
		return dt, true
	}
	r.elapsed += dt
	if r.elapsed >= d-timeEpsilon {
		r.apply(n, 1)
		return math.Max(r.elapsed-d, 0), true
	}
	r.apply(n, r.elapsed/d)
	return 0, false
}

// --- Sequence ---

type sequence struct {
	children []Behavior
}

// Sequence runs children one after another. An empty sequence completes on
// its first step.
func Sequence(children ...Behavior) Behavior {
	return &sequence{children: append([]Behavior(nil), children...)}
}

func (s *sequence) newRun() run { return newSequenceRun(s.children) }

func (s *sequence) String() string { return "Sequence(" + joinBehaviors(s.children) + ")" }

type sequenceRun struct {
	children []Behavior
	index    int
	cur      run
}

func newSequenceRun(children []Behavior) *sequenceRun {
	return &sequenceRun{children: children}
}

func (r *sequenceRun) step(n *Node, dt float64) (float64, bool) {
	for r.index < len(r.children) {
		if r.cur == nil {
			r.cur = r.children[r.index].newRun()
		}
		rest, done := r.cur.step(n, dt)
		if !done {
			return 0, false
		}
		r.index++
		r.cur = nil
		dt = rest
	}
	return dt, true
}

// --- While ---

type while struct {
	cond Behavior
	body []Behavior
}

// While repeats body (as a sequence) until cond completes. When cond
// completes the body is halted immediately, in-flight effects included.
// With WaitForever as the condition the loop only ends when its instance
// is stopped.
func While(cond Behavior, body ...Behavior) Behavior {
	if cond == nil {
		panic("marionette: While requires a condition")
	}
	return &while{cond: cond, body: append([]Behavior(nil), body...)}
}

func (w *while) newRun() run { return &whileRun{cond: w.cond.newRun(), body: w.body} }

func (w *while) String() string {
	return "While(" + w.cond.String() + ", [" + joinBehaviors(w.body) + "])"
}

type whileRun struct {
	cond       run
	body       []Behavior
	bodyRun    *sequenceRun
	iterations int
}

func (r *whileRun) step(n *Node, dt float64) (float64, bool) {
	if rest, done := r.cond.step(n, dt); done {
		r.bodyRun = nil
		return rest, true
	}
	if len(r.body) == 0 {
		return 0, false
	}
	for {
		if r.bodyRun == nil {
			r.bodyRun = newSequenceRun(r.body)
		}
		rest, done := r.bodyRun.step(n, dt)
		if !done {
			return 0, false
		}
		r.bodyRun = nil
		r.iterations++
		// A body that consumed no time would loop forever within one step.
		if rest >= dt {
			return 0, false
		}
		dt = rest
	}
}

// --- Wait ---

type wait struct {
	d       float64
	forever bool
}

var waitForever = &wait{forever: true}

// WaitForever returns a behavior that never completes by itself. It is the
// usual condition of an endless While loop.
func WaitForever() Behavior {
	return waitForever
}

// Wait returns a behavior that completes after d seconds without touching
// the node.
func Wait(d float64) Behavior {
	return &wait{d: d}
}

func (w *wait) newRun() run { return &waitRun{w: w} }

func (w *wait) String() string {
	if w.forever {
		return "WaitForever"
	}
	return "Wait(" + fmtSeconds(w.d) + ")"
}

type waitRun struct {
	w       *wait
	elapsed float64
}

func (r *waitRun) step(_ *Node, dt float64) (float64, bool) {
	if r.w.forever {
		return 0, false
	}
	r.elapsed += dt
	if r.elapsed >= r.w.d-timeEpsilon {
		return math.Max(r.elapsed-math.Max(r.w.d, 0), 0), true
	}
	return 0, false
}

func joinBehaviors(bs []Behavior) string {
	parts := make([]string, len(bs))
	for i, b := range bs {
		parts[i] = b.String()
	}
	return strings.Join(parts, ", ")
}

// --- Instance ---

// Instance is the running state of one Behavior bound to one node: the
// position inside sequences, the elapsed time of the active effect and the
// loop count of While behaviors.
type Instance struct {
	behavior Behavior
	state    run
	done     bool
}

// NewInstance creates a fresh running instance of b.
func NewInstance(b Behavior) *Instance {
	if b == nil {
		panic("marionette: NewInstance requires a behavior")
	}
	return &Instance{behavior: b, state: b.newRun()}
}

// Behavior returns the template this instance runs.
func (i *Instance) Behavior() Behavior {
	return i.behavior
}

// Done reports whether the instance has completed.
func (i *Instance) Done() bool {
	return i.done
}

// Reset rewinds the instance to the start of its behavior.
func (i *Instance) Reset() {
	i.state = i.behavior.newRun()
	i.done = false
}

// Step advances the instance by dt seconds, mutating n. A zero dt is a
// no-op. A negative, NaN or infinite dt returns ErrInvalidTimeDelta and
// leaves both the instance and the node untouched. Stepping a completed
// instance does nothing.
//
// An action or wait counts as finished once its accumulated time is within
// one nanosecond (1e-9 s) of its duration, so splitting a duration into many
// float steps still lands on the end state. Inside that margin the effect
// snaps to its final value slightly early; outside it, never.
func (i *Instance) Step(n *Node, dt float64) (done bool, err error) {
	if err := checkTimeDelta(dt); err != nil {
		return i.done, err
	}
	if i.done || dt == 0 {
		return i.done, nil
	}
	_, i.done = i.state.step(n, dt)
	return i.done, nil
}

func checkTimeDelta(dt float64) error {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidTimeDelta, dt)
	}
	return nil
}
