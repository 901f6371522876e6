package canvas

import "testing"

func newTestKeyboard() (*Keyboard, *Graph, *Selection, *Viewport, *UndoStack, int) {
	cfg := NewDefaultConfig()
	g := NewGraph()
	sel := NewSelection()
	vp := NewViewport()
	undo := NewUndoStack(cfg.UndoDepth)
	commits := 0
	kb := NewKeyboard(g, sel, vp, nil, NewClipboard(), undo, cfg, func() {
		commits++
		undo.Push(SnapshotGraph(g))
	})
	return kb, g, sel, vp, undo, 0
}

func TestKeyboardDeleteSelection(t *testing.T) {
	kb, g, sel, _, _, _ := newTestKeyboard()
	n := NewNode(NodeImage, Vec2{}, Vec2{X: 100, Y: 100})
	g.Insert(n)
	sel.Add(n.ID)

	kb.Handle(KeyDelete, 0, Vec2{}, Vec2{X: 800, Y: 600})

	if g.Len() != 0 {
		t.Errorf("expected node deleted, graph has %d", g.Len())
	}
	if sel.Len() != 0 {
		t.Error("expected selection cleared after delete")
	}
}

func TestKeyboardCopyPasteAtMouse(t *testing.T) {
	kb, g, sel, _, _, _ := newTestKeyboard()
	n := NewNode(NodeImage, Vec2{X: 0, Y: 0}, Vec2{X: 100, Y: 100})
	g.Insert(n)
	sel.Add(n.ID)

	kb.Handle(KeyC, ModCtrl, Vec2{}, Vec2{X: 800, Y: 600})
	kb.Handle(KeyV, ModCtrl, Vec2{X: 500, Y: 500}, Vec2{X: 800, Y: 600})

	if g.Len() != 2 {
		t.Fatalf("expected 2 nodes after paste, got %d", g.Len())
	}
	if sel.Len() != 1 {
		t.Errorf("expected pasted node selected, sel has %d", sel.Len())
	}
}

func TestKeyboardDuplicateCascades(t *testing.T) {
	kb, g, sel, _, _, _ := newTestKeyboard()
	n := NewNode(NodeImage, Vec2{X: 10, Y: 10}, Vec2{X: 100, Y: 100})
	g.Insert(n)
	sel.Add(n.ID)

	kb.Handle(KeyD, ModCtrl, Vec2{}, Vec2{X: 800, Y: 600})

	if g.Len() != 2 {
		t.Fatalf("expected 2 nodes after duplicate, got %d", g.Len())
	}
	var dup *Node
	for _, node := range g.Nodes() {
		if node.ID != n.ID {
			dup = node
		}
	}
	if dup == nil {
		t.Fatal("expected duplicate node")
	}
	if dup.Pos.X != n.Pos.X+duplicateCascadeOffset || dup.Pos.Y != n.Pos.Y+duplicateCascadeOffset {
		t.Errorf("duplicate pos = %+v, want offset by %v", dup.Pos, duplicateCascadeOffset)
	}
	if !sel.Contains(dup.ID) || sel.Contains(n.ID) {
		t.Error("expected selection replaced with the duplicate only")
	}
}

func TestKeyboardSelectAll(t *testing.T) {
	kb, g, sel, _, _, _ := newTestKeyboard()
	g.Insert(NewNode(NodeImage, Vec2{}, Vec2{X: 10, Y: 10}))
	g.Insert(NewNode(NodeImage, Vec2{X: 50}, Vec2{X: 10, Y: 10}))

	kb.Handle(KeyA, ModCtrl, Vec2{}, Vec2{X: 800, Y: 600})

	if sel.Len() != 2 {
		t.Errorf("expected all 2 nodes selected, got %d", sel.Len())
	}
}

func TestKeyboardUndoRedo(t *testing.T) {
	kb, g, sel, _, undo, _ := newTestKeyboard()
	n := NewNode(NodeImage, Vec2{}, Vec2{X: 10, Y: 10})
	g.Insert(n)
	undo.Push(SnapshotGraph(g))
	sel.Add(n.ID)

	kb.Handle(KeyDelete, 0, Vec2{}, Vec2{X: 800, Y: 600})
	if g.Len() != 0 {
		t.Fatal("expected delete to empty the graph")
	}

	kb.Handle(KeyZ, ModCtrl, Vec2{}, Vec2{X: 800, Y: 600})
	if g.Len() != 1 {
		t.Fatalf("expected undo to restore 1 node, got %d", g.Len())
	}

	kb.Handle(KeyZ, ModCtrl|ModShift, Vec2{}, Vec2{X: 800, Y: 600})
	if g.Len() != 0 {
		t.Fatalf("expected redo to re-apply delete, got %d nodes", g.Len())
	}
}

func TestKeyboardBracketZOrder(t *testing.T) {
	kb, g, sel, _, _, _ := newTestKeyboard()
	a := NewNode(NodeImage, Vec2{X: 0, Y: 0}, Vec2{X: 100, Y: 100})
	b := NewNode(NodeImage, Vec2{X: 0, Y: 0}, Vec2{X: 100, Y: 100})
	g.Insert(a)
	g.Insert(b)
	sel.Add(a.ID)

	kb.Handle(KeyBracketRight, 0, Vec2{}, Vec2{X: 800, Y: 600})

	if g.IndexOf(a.ID) != 1 {
		t.Errorf("expected a moved to top, index = %d", g.IndexOf(a.ID))
	}
}

func TestKeyboardAutoAlignImmediateHorizontal(t *testing.T) {
	kb, g, sel, _, _, _ := newTestKeyboard()
	a := NewNode(NodeImage, Vec2{X: 0, Y: 0}, Vec2{X: 100, Y: 100})
	b := NewNode(NodeImage, Vec2{X: 300, Y: 50}, Vec2{X: 100, Y: 100})
	g.Insert(a)
	g.Insert(b)
	sel.Add(a.ID)
	sel.Add(b.ID)

	kb.Handle(Key1, 0, Vec2{}, Vec2{X: 800, Y: 600})

	if a.Pos.Y != b.Pos.Y {
		t.Errorf("expected horizontal auto-align to align Y: a=%v b=%v", a.Pos.Y, b.Pos.Y)
	}
}

func TestKeyboardCreateTextNodeAtMouse(t *testing.T) {
	kb, g, sel, _, _, _ := newTestKeyboard()
	kb.Handle(KeyT, 0, Vec2{X: 400, Y: 300}, Vec2{X: 800, Y: 600})

	if g.Len() != 1 {
		t.Fatalf("expected 1 text node created, got %d", g.Len())
	}
	n := g.Nodes()[0]
	if n.Type != NodeText {
		t.Errorf("expected NodeText, got %v", n.Type)
	}
	if !sel.Contains(n.ID) {
		t.Error("expected new text node selected")
	}
}

func TestKeyboardShiftTTogglesTitleSkippingText(t *testing.T) {
	kb, g, sel, _, _, _ := newTestKeyboard()
	img := NewNode(NodeImage, Vec2{}, Vec2{X: 10, Y: 10})
	text := NewNode(NodeText, Vec2{}, Vec2{X: 10, Y: 10})
	g.Insert(img)
	g.Insert(text)
	sel.Add(img.ID)
	sel.Add(text.ID)

	kb.Handle(KeyT, ModShift, Vec2{}, Vec2{X: 800, Y: 600})

	if !img.HideTitle {
		t.Error("expected image title hidden after toggle")
	}
	if text.HideTitle {
		t.Error("text nodes should be skipped by title toggle")
	}
}

func TestKeyboardCreateEmptyGroup(t *testing.T) {
	kb, g, sel, _, _, _ := newTestKeyboard()
	kb.Handle(KeyG, 0, Vec2{X: 100, Y: 100}, Vec2{X: 800, Y: 600})

	if g.Len() != 1 {
		t.Fatalf("expected 1 group box created, got %d", g.Len())
	}
	n := g.Nodes()[0]
	if n.Type != NodeGroupBox {
		t.Errorf("expected NodeGroupBox, got %v", n.Type)
	}
	if !sel.Contains(n.ID) {
		t.Error("expected new group box selected")
	}
}

func TestFitTransformCentersAABBOnScreen(t *testing.T) {
	aabb := Rect{X: 100, Y: 100, Width: 200, Height: 100}
	offset, scale := fitTransform(aabb, Vec2{X: 800, Y: 600}, 0)

	sx := aabb.Center().X*scale + offset.X
	sy := aabb.Center().Y*scale + offset.Y
	assertNear(t, "sx", sx, 400)
	assertNear(t, "sy", sy, 300)
}

func TestFitTransformFitsWithinViewport(t *testing.T) {
	aabb := Rect{X: 0, Y: 0, Width: 2000, Height: 200}
	_, scale := fitTransform(aabb, Vec2{X: 800, Y: 600}, 60)
	fitted := aabb.Width * scale
	if fitted > 800-2*60+1e-6 {
		t.Errorf("fitted width %v exceeds available viewport width", fitted)
	}
}
