package marionette

// CommandKind selects what a key binding does.
type CommandKind uint8

const (
	CommandRun       CommandKind = iota // Scheduler.Run(Node, Behavior)
	CommandToggle                       // Scheduler.Toggle(Node, Behavior)
	CommandToggleFPS                    // show or hide the FPS overlay
	CommandQuit                         // end the frame loop
)

// Command is the action bound to a key.
type Command struct {
	Kind     CommandKind
	Node     NodeID
	Behavior Behavior
}

// RunCommand starts (or restarts) b on node.
func RunCommand(node NodeID, b Behavior) Command {
	return Command{Kind: CommandRun, Node: node, Behavior: b}
}

// ToggleCommand starts b on node if it is idle and stops it otherwise.
func ToggleCommand(node NodeID, b Behavior) Command {
	return Command{Kind: CommandToggle, Node: node, Behavior: b}
}

// KeyBindings is the static key to command table consulted by the frame loop.
type KeyBindings map[Key]Command

// BehaviorSet holds the behavior templates of the demo puppet.
type BehaviorSet struct {
	Left, Right, Up, Down Behavior
	Blink                 Behavior
}

func (b BehaviorSet) all() [5]Behavior {
	return [5]Behavior{b.Left, b.Right, b.Up, b.Down, b.Blink}
}

// Replace moves every running instance of b's templates onto the
// corresponding template of next and returns how many were restarted.
func (b BehaviorSet) Replace(s *Scheduler, next BehaviorSet) int {
	olds, news := b.all(), next.all()
	n := 0
	for i := range olds {
		if olds[i] != nil && news[i] != nil {
			n += s.Replace(olds[i], news[i])
		}
	}
	return n
}

// DemoBindings returns the fixed key table of the demo: A/D/W/S move the
// player, Space toggles its blink, F toggles the FPS overlay and Escape
// quits.
func DemoBindings(player NodeID, set BehaviorSet) KeyBindings {
	return KeyBindings{
		KeyA:      RunCommand(player, set.Left),
		KeyD:      RunCommand(player, set.Right),
		KeyW:      RunCommand(player, set.Up),
		KeyS:      RunCommand(player, set.Down),
		KeySpace:  ToggleCommand(player, set.Blink),
		KeyF:      {Kind: CommandToggleFPS},
		KeyEscape: {Kind: CommandQuit},
	}
}
