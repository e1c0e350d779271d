package marionette

// Texture is a read-only image shared between any number of nodes. Textures
// are owned by whoever loaded them; nodes never mutate or release them.
type Texture interface {
	Size() (width, height int)
}

// NodeID is an opaque handle issued by a Scene. IDs are unique within their
// scene and never reused.
type NodeID uint32

// RootID addresses the scene's root list in AddChild and Reparent. No node
// is ever issued this ID.
const RootID NodeID = 0

// Node is a positioned, drawable element of the scene. A single flat struct
// is used for all nodes; a node without a Texture is a plain group.
//
// Transform fields may be written directly. Membership (parent and children)
// is owned by the Scene and only changes through Scene methods.
type Node struct {
	// Identity, assigned by Scene.AddChild.
	ID   NodeID
	Name string

	// Transform (local)
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64 // radians

	// AnchorX and AnchorY place the texture relative to the node position,
	// as a fraction of the texture size. 0.5/0.5 centres it. Children are
	// not affected by the anchor.
	AnchorX float64
	AnchorY float64

	// Alpha is the node opacity in [0, 1]. It multiplies down the tree.
	Alpha   float64
	Visible bool

	Texture Texture

	// OnEvent, when set, receives every event dispatched through the scene.
	OnEvent func(Event)

	UserData any

	// Hierarchy, maintained by Scene.
	parent   NodeID
	children []NodeID
	attached bool
}

func nodeDefaults(n *Node) {
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.AnchorX = 0.5
	n.AnchorY = 0.5
	n.Visible = true
}

// NewContainer creates a node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name}
	nodeDefaults(n)
	return n
}

// NewSprite creates a node that draws tex centred on its position.
func NewSprite(name string, tex Texture) *Node {
	n := &Node{Name: name, Texture: tex}
	nodeDefaults(n)
	return n
}

// SetPosition sets the node's local X and Y.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
}

// Position returns the node's local position.
func (n *Node) Position() Vec2 {
	return Vec2{n.X, n.Y}
}

// SetScale sets the node's ScaleX and ScaleY.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX = sx
	n.ScaleY = sy
}

// SetRotation sets the node's rotation in radians.
func (n *Node) SetRotation(r float64) {
	n.Rotation = r
}

// SetAlpha sets the node's opacity, clamped to [0, 1].
func (n *Node) SetAlpha(a float64) {
	n.Alpha = clamp01(a)
}

// Parent returns the ID of the node's parent, or RootID for a root node.
func (n *Node) Parent() NodeID {
	return n.parent
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
