package marionette

import "testing"

func TestDemoBindings(t *testing.T) {
	set := DefaultConfig(VariantFixed).Behaviors()
	const player NodeID = 7
	b := DemoBindings(player, set)

	tests := []struct {
		key  Key
		want Command
	}{
		{KeyA, RunCommand(player, set.Left)},
		{KeyD, RunCommand(player, set.Right)},
		{KeyW, RunCommand(player, set.Up)},
		{KeyS, RunCommand(player, set.Down)},
		{KeySpace, ToggleCommand(player, set.Blink)},
		{KeyF, Command{Kind: CommandToggleFPS}},
		{KeyEscape, Command{Kind: CommandQuit}},
	}
	for _, tt := range tests {
		got, ok := b[tt.key]
		if !ok {
			t.Errorf("%v unbound", tt.key)
			continue
		}
		if got != tt.want {
			t.Errorf("%v = %+v, want %+v", tt.key, got, tt.want)
		}
	}
	if len(b) != len(tests) {
		t.Errorf("%d bindings, want %d", len(b), len(tests))
	}
}

func TestBehaviorSetReplace(t *testing.T) {
	s := NewScene()
	id := mustAdd(t, s, RootID, NewContainer("p"))
	sch := NewScheduler(s)
	old := DefaultConfig(VariantFixed).Behaviors()
	next := DefaultConfig(VariantFixed).Behaviors()

	sch.Run(id, old.Left)
	sch.Run(id, old.Blink)
	if got := old.Replace(sch, next); got != 2 {
		t.Fatalf("Replace = %d, want 2", got)
	}
	if !sch.Running(id, next.Left) || !sch.Running(id, next.Blink) || sch.Running(id, old.Blink) {
		t.Error("instances not moved to the new set")
	}
	if got := (BehaviorSet{}).Replace(sch, next); got != 0 {
		t.Errorf("empty set replaced %d", got)
	}
}
