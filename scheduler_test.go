package marionette

import (
	"errors"
	"math"
	"testing"
)

func newSchedulerScene(t *testing.T) (*Scene, *Scheduler, NodeID, *Node) {
	t.Helper()
	s := NewScene()
	n := NewSprite("player", fakeTexture{8, 8})
	n.SetPosition(100, 100)
	id := mustAdd(t, s, RootID, n)
	return s, NewScheduler(s), id, n
}

func mustAdvance(t *testing.T, sch *Scheduler, dts ...float64) {
	t.Helper()
	for _, dt := range dts {
		if err := sch.Advance(dt); err != nil {
			t.Fatalf("Advance(%v): %v", dt, err)
		}
	}
}

func TestSchedulerRunAdvanceRemovesCompleted(t *testing.T) {
	_, sch, id, n := newSchedulerScene(t)
	left := Sequence(Action(Ease(EaseBounceOut, MoveBy(1, -32, 0))))

	sch.Run(id, left)
	if !sch.Running(id, left) || sch.Len() != 1 {
		t.Fatal("behavior not running after Run")
	}
	mustAdvance(t, sch, repeat(0.25, 4)...)
	if n.X != 68 || n.Y != 100 {
		t.Errorf("position = (%v, %v), want (68, 100)", n.X, n.Y)
	}
	if sch.Running(id, left) || sch.Len() != 0 {
		t.Error("completed instance still active")
	}
}

func TestSchedulerRunRestarts(t *testing.T) {
	_, sch, id, n := newSchedulerScene(t)
	right := Action(MoveBy(1, 10, 0))

	sch.Run(id, right)
	mustAdvance(t, sch, 0.5)
	sch.Run(id, right) // restart from x=105
	if sch.Len() != 1 {
		t.Fatalf("Len = %d, want 1", sch.Len())
	}
	mustAdvance(t, sch, 1)
	assertNear(t, "x", n.X, 115)
}

func TestSchedulerIndependentBehaviorsOnOneNode(t *testing.T) {
	_, sch, id, n := newSchedulerScene(t)
	right := Action(MoveBy(1, 10, 0))
	up := Action(MoveBy(1, 0, -10))

	sch.Run(id, right)
	sch.Run(id, up)
	if sch.Len() != 2 {
		t.Fatalf("Len = %d, want 2", sch.Len())
	}
	mustAdvance(t, sch, 1)
	assertNear(t, "x", n.X, 110)
	assertNear(t, "y", n.Y, 90)
}

func TestSchedulerStopIdempotent(t *testing.T) {
	_, sch, id, _ := newSchedulerScene(t)
	b := Action(FadeOut(1))
	sch.Stop(id, b)
	sch.Run(id, b)
	sch.Stop(id, b)
	sch.Stop(id, b)
	if sch.Running(id, b) || sch.Len() != 0 {
		t.Error("instance survived Stop")
	}
}

func TestSchedulerToggleInvolution(t *testing.T) {
	_, sch, id, _ := newSchedulerScene(t)
	blink := While(WaitForever(), Action(FadeOut(1)), Action(FadeIn(1)))

	for _, startRunning := range []bool{false, true} {
		sch.Stop(id, blink)
		if startRunning {
			sch.Run(id, blink)
		}
		sch.Toggle(id, blink)
		sch.Toggle(id, blink)
		if got := sch.Running(id, blink); got != startRunning {
			t.Errorf("start %v: running after two toggles = %v", startRunning, got)
		}
		if sch.Len() > 1 {
			t.Errorf("Len = %d, want at most one instance per pair", sch.Len())
		}
	}
}

func TestSchedulerBlinkToggleScenario(t *testing.T) {
	_, sch, id, n := newSchedulerScene(t)
	blink := While(WaitForever(),
		Action(Ease(EaseQuadraticIn, FadeOut(1))),
		Action(Ease(EaseQuadraticOut, FadeIn(1))),
	)

	if !sch.Toggle(id, blink) {
		t.Fatal("Toggle on an idle node should start the behavior")
	}
	mustAdvance(t, sch, 0.5)
	if !(n.Alpha < 1) {
		t.Fatalf("alpha = %v, want < 1", n.Alpha)
	}
	mid := n.Alpha

	if sch.Toggle(id, blink) {
		t.Fatal("second Toggle should stop the behavior")
	}
	if sch.Running(id, blink) || sch.Len() != 0 {
		t.Error("blink still active after toggle")
	}
	mustAdvance(t, sch, 0.5)
	if n.Alpha != mid {
		t.Errorf("alpha = %v after stop, want %v (no snap-back)", n.Alpha, mid)
	}
}

func TestSchedulerToggleOneShotMove(t *testing.T) {
	_, sch, id, n := newSchedulerScene(t)
	right := Action(MoveBy(1, 10, 0))

	sch.Toggle(id, right)
	mustAdvance(t, sch, 0.5)
	sch.Toggle(id, right) // stops where it is
	mustAdvance(t, sch, 1)
	assertNear(t, "stopped", n.X, 105)

	sch.Toggle(id, right) // fresh move from 105
	mustAdvance(t, sch, 1)
	assertNear(t, "restarted", n.X, 115)
}

func TestSchedulerNegativeDeltaRejected(t *testing.T) {
	_, sch, id, n := newSchedulerScene(t)
	right := Action(MoveBy(1, 10, 0))
	sch.Run(id, right)
	mustAdvance(t, sch, 0.5)

	for _, dt := range []float64{-0.1, math.NaN(), math.Inf(-1)} {
		if err := sch.Advance(dt); !errors.Is(err, ErrInvalidTimeDelta) {
			t.Errorf("Advance(%v) = %v, want ErrInvalidTimeDelta", dt, err)
		}
	}
	assertNear(t, "x untouched", n.X, 105)
	if !sch.Running(id, right) {
		t.Fatal("instance dropped by a rejected advance")
	}
	mustAdvance(t, sch, 0.5)
	assertNear(t, "x final", n.X, 110)
}

func TestSchedulerZeroDeltaNoOp(t *testing.T) {
	_, sch, id, _ := newSchedulerScene(t)
	empty := Sequence()
	sch.Run(id, empty)
	mustAdvance(t, sch, 0)
	if !sch.Running(id, empty) {
		t.Error("zero advance completed an instance")
	}
	mustAdvance(t, sch, 0.016)
	if sch.Running(id, empty) {
		t.Error("empty sequence not removed after a positive advance")
	}
}

func TestSchedulerDropsRemovedNodes(t *testing.T) {
	s, sch, id, _ := newSchedulerScene(t)
	blink := While(WaitForever(), Action(FadeOut(1)))
	sch.Run(id, blink)
	sch.Run(NodeID(999), blink) // never issued

	if err := s.Remove(id); err != nil {
		t.Fatal(err)
	}
	if err := sch.Advance(0.1); err != nil {
		t.Fatalf("Advance with dead nodes: %v", err)
	}
	if sch.Len() != 0 {
		t.Errorf("Len = %d, want 0", sch.Len())
	}
}

func TestSchedulerPauseResume(t *testing.T) {
	_, sch, id, n := newSchedulerScene(t)
	right := Action(MoveBy(1, 10, 0))
	sch.Run(id, right)
	mustAdvance(t, sch, 0.5)

	sch.Pause(id, right)
	if !sch.Paused(id, right) || !sch.Running(id, right) {
		t.Fatal("paused instance should stay active")
	}
	mustAdvance(t, sch, 5)
	assertNear(t, "paused", n.X, 105)

	sch.Resume(id, right)
	mustAdvance(t, sch, 0.5)
	assertNear(t, "resumed", n.X, 110)

	// Run on a paused pair restarts and unpauses.
	sch.Run(id, right)
	sch.Pause(id, right)
	sch.Run(id, right)
	if sch.Paused(id, right) {
		t.Error("Run should unpause")
	}
}

func TestSchedulerStopAll(t *testing.T) {
	s, sch, id, _ := newSchedulerScene(t)
	other := mustAdd(t, s, RootID, NewContainer("other"))
	a, b := Action(FadeOut(1)), Action(MoveBy(1, 1, 1))
	sch.Run(id, a)
	sch.Run(id, b)
	sch.Run(other, a)

	sch.StopAll(id)
	if sch.Running(id, a) || sch.Running(id, b) {
		t.Error("StopAll left instances on the node")
	}
	if !sch.Running(other, a) || sch.Len() != 1 {
		t.Error("StopAll touched another node")
	}
}

func TestSchedulerReplace(t *testing.T) {
	s, sch, id, n := newSchedulerScene(t)
	other := mustAdd(t, s, RootID, NewContainer("other"))
	old := While(WaitForever(), Action(FadeOut(1)), Action(FadeIn(1)))
	repl := While(WaitForever(), Action(FadeOut(2)), Action(FadeIn(2)))
	unrelated := Action(MoveBy(1, 10, 0))

	sch.Run(id, old)
	sch.Run(other, old)
	sch.Run(id, unrelated)
	sch.Pause(other, old)
	mustAdvance(t, sch, 0.5)

	if got := sch.Replace(old, repl); got != 2 {
		t.Fatalf("Replace = %d, want 2", got)
	}
	if sch.Running(id, old) || !sch.Running(id, repl) || !sch.Running(other, repl) {
		t.Fatal("instances not moved to the new template")
	}
	if !sch.Paused(other, repl) {
		t.Error("paused state lost")
	}
	if !sch.Running(id, unrelated) || sch.Len() != 3 {
		t.Errorf("Len = %d, want 3", sch.Len())
	}

	// The new template starts fresh from the current alpha.
	start := n.Alpha
	mustAdvance(t, sch, 1)
	assertNear(t, "alpha", n.Alpha, start/2)

	if sch.Replace(repl, repl) != 0 {
		t.Error("Replace with itself should be a no-op")
	}
}

func TestSchedulerStepOrderIsStartOrder(t *testing.T) {
	_, sch, id, n := newSchedulerScene(t)
	// Both write X. The second binds its start after the first has stepped.
	first := Action(MoveTo(1, 0, 0))
	second := Action(MoveTo(1, 200, 0))
	sch.Run(id, first)
	sch.Run(id, second)
	mustAdvance(t, sch, 0.5)
	assertNear(t, "x", n.X, 125) // first: 100 -> 50, second: 50 -> 125

	// Restarting keeps its slot, so second still writes last.
	sch.Run(id, first)
	mustAdvance(t, sch, 0.1)
	assertNear(t, "x after restart", n.X, 140)
}
