package marionette

import (
	"fmt"
	"log/slog"
)

// EventSink is the interface for optional event forwarding outside the scene
// graph. When set on a Scene, every dispatched event is emitted to it after
// the nodes have seen it.
type EventSink interface {
	EmitEvent(event Event)
}

// Scene owns a forest of nodes. Nodes are stored in one table keyed by
// NodeID; parent and child links are IDs, never pointers. The scene is the
// only mutator of node membership.
type Scene struct {
	nodes  map[NodeID]*Node
	roots  []NodeID
	nextID NodeID

	sink   EventSink
	debug  bool
	logger *slog.Logger
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{
		nodes:  make(map[NodeID]*Node),
		logger: slog.Default(),
	}
}

// SetEventSink sets the optional event forwarder.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
}

// SetLogger replaces the logger used for debug warnings.
func (s *Scene) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	s.logger = l
}

// SetDebugMode enables tree depth and child count warnings.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// Len returns the number of nodes in the scene.
func (s *Scene) Len() int {
	return len(s.nodes)
}

// AddChild inserts n under parent (or as a root when parent is RootID),
// assigns it a fresh ID and returns that ID. Children keep insertion order,
// which is also their draw order.
// Panics if n is nil or already belongs to a scene.
func (s *Scene) AddChild(parent NodeID, n *Node) (NodeID, error) {
	if n == nil {
		panic("marionette: cannot add nil node")
	}
	if n.attached {
		panic(fmt.Sprintf("marionette: node %q is already in a scene", n.Name))
	}
	var p *Node
	if parent != RootID {
		var ok bool
		if p, ok = s.nodes[parent]; !ok {
			return 0, unknownNode(parent)
		}
	}

	s.nextID++
	id := s.nextID
	n.ID = id
	n.parent = parent
	n.attached = true
	s.nodes[id] = n
	if p == nil {
		s.roots = append(s.roots, id)
	} else {
		p.children = append(p.children, id)
	}
	if s.debug {
		s.debugCheckTreeDepth(id)
		if p != nil {
			s.debugCheckChildCount(p)
		}
	}
	return id, nil
}

// Lookup returns the node with the given ID.
func (s *Scene) Lookup(id NodeID) (*Node, error) {
	n, ok := s.nodes[id]
	if !ok {
		return nil, unknownNode(id)
	}
	return n, nil
}

// Children returns the child IDs of id in draw order, or the root list for
// RootID. The returned slice MUST NOT be mutated by the caller.
func (s *Scene) Children(id NodeID) ([]NodeID, error) {
	if id == RootID {
		return s.roots, nil
	}
	n, ok := s.nodes[id]
	if !ok {
		return nil, unknownNode(id)
	}
	return n.children, nil
}

// Parent returns the parent of id, or RootID for a root node.
func (s *Scene) Parent(id NodeID) (NodeID, error) {
	n, ok := s.nodes[id]
	if !ok {
		return 0, unknownNode(id)
	}
	return n.parent, nil
}

// Reparent moves id (with its subtree) to the end of newParent's children.
// Panics if newParent is id itself or one of its descendants.
func (s *Scene) Reparent(id, newParent NodeID) error {
	n, ok := s.nodes[id]
	if !ok {
		return unknownNode(id)
	}
	var p *Node
	if newParent != RootID {
		if p, ok = s.nodes[newParent]; !ok {
			return unknownNode(newParent)
		}
		if s.isAncestor(id, newParent) {
			panic("marionette: reparenting would create a cycle")
		}
	}
	s.detach(n)
	n.parent = newParent
	if p == nil {
		s.roots = append(s.roots, id)
	} else {
		p.children = append(p.children, id)
	}
	return nil
}

// Remove detaches id from its parent and removes it and all its descendants
// from the scene. Their IDs become unknown.
func (s *Scene) Remove(id NodeID) error {
	n, ok := s.nodes[id]
	if !ok {
		return unknownNode(id)
	}
	s.detach(n)
	s.removeSubtree(n)
	return nil
}

func (s *Scene) removeSubtree(n *Node) {
	for _, cid := range n.children {
		if c, ok := s.nodes[cid]; ok {
			s.removeSubtree(c)
		}
	}
	delete(s.nodes, n.ID)
	n.children = nil
	n.parent = RootID
	n.attached = false
	n.ID = 0
}

// detach removes n from its parent's child list (or the root list).
// Uses copy+truncate to keep sibling order.
func (s *Scene) detach(n *Node) {
	list := &s.roots
	if n.parent != RootID {
		if p, ok := s.nodes[n.parent]; ok {
			list = &p.children
		}
	}
	ids := *list
	for i, c := range ids {
		if c == n.ID {
			copy(ids[i:], ids[i+1:])
			*list = ids[:len(ids)-1]
			return
		}
	}
}

// isAncestor reports whether candidate is id or one of id's ancestors.
func (s *Scene) isAncestor(candidate, id NodeID) bool {
	for p := id; p != RootID; {
		if p == candidate {
			return true
		}
		n, ok := s.nodes[p]
		if !ok {
			return false
		}
		p = n.parent
	}
	return false
}

// WorldTransform returns the node's composed transform (root-to-leaf product
// of local transforms, starting from identity) and its effective alpha.
func (s *Scene) WorldTransform(id NodeID) (Affine, float64, error) {
	var chain []*Node
	for p := id; p != RootID; {
		n, ok := s.nodes[p]
		if !ok {
			return Identity, 0, unknownNode(id)
		}
		chain = append(chain, n)
		p = n.parent
	}
	m := Identity
	alpha := 1.0
	for i := len(chain) - 1; i >= 0; i-- {
		m = m.Mul(chain[i].LocalTransform())
		alpha *= chain[i].Alpha
	}
	return m, alpha, nil
}

// Dispatch forwards ev to every node depth-first in draw order, then to the
// event sink. Nodes added by a hook during dispatch are not visited until
// the next event; nodes removed by a hook are skipped.
func (s *Scene) Dispatch(ev Event) {
	s.dispatchList(s.roots, ev)
	if s.sink != nil {
		s.sink.EmitEvent(ev)
	}
}

func (s *Scene) dispatchList(ids []NodeID, ev Event) {
	if len(ids) == 0 {
		return
	}
	snapshot := append([]NodeID(nil), ids...)
	for _, id := range snapshot {
		n, ok := s.nodes[id]
		if !ok {
			continue
		}
		if n.OnEvent != nil {
			n.OnEvent(ev)
		}
		s.dispatchList(n.children, ev)
	}
}

// Draw renders the tree depth-first, pre-order. Each node is drawn with
// root * ancestors * local and the product of the alphas on its path; later
// siblings draw on top of earlier ones. Invisible nodes hide their subtree.
func (s *Scene) Draw(r Renderer, root Affine) {
	s.drawList(r, s.roots, root, 1)
}

func (s *Scene) drawList(r Renderer, ids []NodeID, parent Affine, parentAlpha float64) {
	for _, id := range ids {
		n, ok := s.nodes[id]
		if !ok || !n.Visible {
			continue
		}
		world := parent.Mul(n.LocalTransform())
		alpha := parentAlpha * n.Alpha
		if n.Texture != nil {
			r.DrawTexturedQuad(n.textureTransform(world), n.Texture, alpha)
		}
		s.drawList(r, n.children, world, alpha)
	}
}

// Walk visits every node depth-first in draw order. Returning false from fn
// skips the node's subtree.
func (s *Scene) Walk(fn func(n *Node, depth int) bool) {
	s.walkList(s.roots, 0, fn)
}

func (s *Scene) walkList(ids []NodeID, depth int, fn func(*Node, int) bool) {
	for _, id := range ids {
		n, ok := s.nodes[id]
		if !ok {
			continue
		}
		if fn(n, depth) {
			s.walkList(n.children, depth+1, fn)
		}
	}
}
