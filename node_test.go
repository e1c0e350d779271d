package marionette

import "testing"

func assertNodeDefaults(t *testing.T, n *Node, name string) {
	t.Helper()
	if n.ID != 0 {
		t.Errorf("ID = %d before AddChild, want 0", n.ID)
	}
	if n.Name != name {
		t.Errorf("Name = %q, want %q", n.Name, name)
	}
	if n.ScaleX != 1 || n.ScaleY != 1 {
		t.Errorf("Scale = (%v, %v), want (1, 1)", n.ScaleX, n.ScaleY)
	}
	if n.Alpha != 1 {
		t.Errorf("Alpha = %v, want 1", n.Alpha)
	}
	if n.AnchorX != 0.5 || n.AnchorY != 0.5 {
		t.Errorf("Anchor = (%v, %v), want (0.5, 0.5)", n.AnchorX, n.AnchorY)
	}
	if !n.Visible {
		t.Error("Visible should default to true")
	}
	if n.Parent() != RootID || n.NumChildren() != 0 {
		t.Error("new node should be detached")
	}
}

func TestNewContainerDefaults(t *testing.T) {
	n := NewContainer("group")
	assertNodeDefaults(t, n, "group")
	if n.Texture != nil {
		t.Error("container should have no texture")
	}
}

func TestNewSpriteDefaults(t *testing.T) {
	tex := fakeTexture{32, 16}
	n := NewSprite("hero", tex)
	assertNodeDefaults(t, n, "hero")
	if n.Texture != tex {
		t.Errorf("Texture = %v, want %v", n.Texture, tex)
	}
}

func TestNodeSetters(t *testing.T) {
	n := NewContainer("n")
	n.SetPosition(3, 4)
	if got := n.Position(); got != (Vec2{3, 4}) {
		t.Errorf("Position = %v, want {3 4}", got)
	}
	n.SetScale(2, 5)
	if n.ScaleX != 2 || n.ScaleY != 5 {
		t.Errorf("Scale = (%v, %v)", n.ScaleX, n.ScaleY)
	}
	n.SetRotation(1.5)
	if n.Rotation != 1.5 {
		t.Errorf("Rotation = %v", n.Rotation)
	}
}

func TestNodeSetAlphaClamps(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{-1, 0}, {0, 0}, {0.25, 0.25}, {1, 1}, {3, 1},
	}
	n := NewContainer("n")
	for _, tt := range tests {
		n.SetAlpha(tt.in)
		if n.Alpha != tt.want {
			t.Errorf("SetAlpha(%v) → %v, want %v", tt.in, n.Alpha, tt.want)
		}
	}
}
