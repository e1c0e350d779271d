package marionette

// runKey identifies one running instance: a behavior template on a node.
type runKey struct {
	node     NodeID
	behavior Behavior
}

type scheduled struct {
	key    runKey
	inst   *Instance
	paused bool
	gone   bool // removed during the current pass
}

// Scheduler advances running behavior instances once per frame. There is at
// most one instance per (node, behavior) pair; running the same behavior on
// the same node again restarts it.
//
// Instances are stepped in the order they were first started. A node that
// has left the scene silently drops its instances on the next Advance.
type Scheduler struct {
	scene  *Scene
	active map[runKey]*scheduled
	order  []*scheduled
}

// NewScheduler creates a scheduler that resolves node IDs through scene.
func NewScheduler(scene *Scene) *Scheduler {
	return &Scheduler{
		scene:  scene,
		active: make(map[runKey]*scheduled),
	}
}

// Run starts b on node. An existing instance for the same pair is replaced
// by a fresh one (and resumed if it was paused); it keeps its place in the
// stepping order.
func (s *Scheduler) Run(node NodeID, b Behavior) {
	key := runKey{node, b}
	if e, ok := s.active[key]; ok {
		e.inst = NewInstance(b)
		e.paused = false
		return
	}
	e := &scheduled{key: key, inst: NewInstance(b)}
	s.active[key] = e
	s.order = append(s.order, e)
}

// Stop removes the instance of b on node. No-op if it is not running.
func (s *Scheduler) Stop(node NodeID, b Behavior) {
	key := runKey{node, b}
	e, ok := s.active[key]
	if !ok {
		return
	}
	s.remove(e)
	s.compact()
}

// Toggle stops b on node if it is running, otherwise starts it. It returns
// whether b is running afterwards. Toggle applies to every kind of behavior:
// toggling a one-shot move mid-flight stops it where it is, toggling it
// again starts a new move from that position.
func (s *Scheduler) Toggle(node NodeID, b Behavior) bool {
	if s.Running(node, b) {
		s.Stop(node, b)
		return false
	}
	s.Run(node, b)
	return true
}

// Pause freezes the instance of b on node without discarding its progress.
func (s *Scheduler) Pause(node NodeID, b Behavior) {
	if e, ok := s.active[runKey{node, b}]; ok {
		e.paused = true
	}
}

// Resume continues a paused instance.
func (s *Scheduler) Resume(node NodeID, b Behavior) {
	if e, ok := s.active[runKey{node, b}]; ok {
		e.paused = false
	}
}

// StopAll removes every instance running on node.
func (s *Scheduler) StopAll(node NodeID) {
	for _, e := range s.order {
		if !e.gone && e.key.node == node {
			s.remove(e)
		}
	}
	s.compact()
}

// Replace restarts every running instance of old as a fresh instance of
// repl, keeping its node, paused state and stepping position. It returns
// the number of instances replaced. Used when templates are rebuilt from a
// reloaded config.
func (s *Scheduler) Replace(old, repl Behavior) int {
	if old == repl {
		return 0
	}
	n := 0
	for _, e := range s.order {
		if e.gone || e.key.behavior != old {
			continue
		}
		delete(s.active, e.key)
		newKey := runKey{e.key.node, repl}
		if prev, ok := s.active[newKey]; ok {
			s.remove(prev)
		}
		e.key = newKey
		e.inst = NewInstance(repl)
		s.active[newKey] = e
		n++
	}
	s.compact()
	return n
}

// Running reports whether an instance of b is active on node (paused
// instances count as active).
func (s *Scheduler) Running(node NodeID, b Behavior) bool {
	_, ok := s.active[runKey{node, b}]
	return ok
}

// Paused reports whether the instance of b on node is paused.
func (s *Scheduler) Paused(node NodeID, b Behavior) bool {
	e, ok := s.active[runKey{node, b}]
	return ok && e.paused
}

// Len returns the number of active instances.
func (s *Scheduler) Len() int {
	return len(s.active)
}

// Advance steps every unpaused instance by dt seconds and removes those
// that completed. A zero dt is a no-op. A negative, NaN or infinite dt
// returns ErrInvalidTimeDelta before any instance is touched.
func (s *Scheduler) Advance(dt float64) error {
	if err := checkTimeDelta(dt); err != nil {
		return err
	}
	if dt == 0 {
		return nil
	}
	pass := s.order
	for _, e := range pass {
		if e.gone || e.paused {
			continue
		}
		n, err := s.scene.Lookup(e.key.node)
		if err != nil {
			s.remove(e)
			continue
		}
		if done, _ := e.inst.Step(n, dt); done {
			s.remove(e)
		}
	}
	s.compact()
	return nil
}

// remove drops e from the active set. The order slice is compacted by the
// caller.
func (s *Scheduler) remove(e *scheduled) {
	e.gone = true
	delete(s.active, e.key)
}

// compact removes entries marked gone, keeping the order of the rest.
func (s *Scheduler) compact() {
	kept := s.order[:0]
	for _, e := range s.order {
		if !e.gone {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(s.order); i++ {
		s.order[i] = nil
	}
	s.order = kept
}
