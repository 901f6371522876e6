package canvas

import "testing"

func TestUndoStackPushAndUndo(t *testing.T) {
	u := NewUndoStack(20)
	g := NewGraph()
	x := NewNode(NodeImage, Vec2{X: 0, Y: 0}, Vec2{X: 100, Y: 100})
	y := NewNode(NodeImage, Vec2{X: 200, Y: 0}, Vec2{X: 100, Y: 100})
	z := NewNode(NodeImage, Vec2{X: 400, Y: 0}, Vec2{X: 100, Y: 100})
	g.Insert(x)
	g.Insert(y)
	g.Insert(z)
	u.Push(SnapshotGraph(g))

	g.Remove(y.ID)
	u.Push(SnapshotGraph(g))

	if g.Len() != 2 {
		t.Fatalf("expected 2 nodes after delete, got %d", g.Len())
	}

	snap, ok := u.Undo()
	if !ok {
		t.Fatal("undo should succeed")
	}
	RestoreGraph(g, snap)

	if g.Len() != 3 {
		t.Fatalf("expected 3 nodes after undo, got %d", g.Len())
	}
	nodes := g.Nodes()
	// Original z-order position: X, Y, Z.
	if nodes[0].Pos.X != 0 || nodes[1].Pos.X != 200 || nodes[2].Pos.X != 400 {
		t.Errorf("restored order wrong: %+v, %+v, %+v", nodes[0].Pos, nodes[1].Pos, nodes[2].Pos)
	}
}

func TestUndoStackDepthBound(t *testing.T) {
	u := NewUndoStack(3)
	g := NewGraph()
	for i := 0; i < 10; i++ {
		n := NewNode(NodeImage, Vec2{X: float64(i), Y: 0}, Vec2{X: 10, Y: 10})
		g.Insert(n)
		u.Push(SnapshotGraph(g))
	}
	if len(u.past) != 3 {
		t.Errorf("past depth = %d, want bounded at 3", len(u.past))
	}
}

func TestUndoStackRedoClearedOnNewPush(t *testing.T) {
	u := NewUndoStack(20)
	g := NewGraph()
	u.Push(SnapshotGraph(g))
	n := NewNode(NodeImage, Vec2{}, Vec2{X: 10, Y: 10})
	g.Insert(n)
	u.Push(SnapshotGraph(g))

	if _, ok := u.Undo(); !ok {
		t.Fatal("undo should succeed")
	}
	if !u.CanRedo() {
		t.Fatal("expected redo available after undo")
	}
	g.Insert(NewNode(NodeImage, Vec2{}, Vec2{X: 10, Y: 10}))
	u.Push(SnapshotGraph(g))
	if u.CanRedo() {
		t.Error("redo should be cleared after a new push")
	}
}

func TestUndoRestoreGraphPreservesGroupBoxContainment(t *testing.T) {
	g := NewGraph()
	member1 := NewNode(NodeImage, Vec2{X: 0, Y: 0}, Vec2{X: 50, Y: 50})
	member2 := NewNode(NodeImage, Vec2{X: 100, Y: 0}, Vec2{X: 50, Y: 50})
	outsider := NewNode(NodeImage, Vec2{X: 500, Y: 500}, Vec2{X: 50, Y: 50})
	gb := NewNode(NodeGroupBox, Vec2{X: -10, Y: -10}, Vec2{X: 200, Y: 100})
	gb.ContainedNodeIDs[member1.ID] = struct{}{}
	gb.ContainedNodeIDs[member2.ID] = struct{}{}
	g.Insert(member1)
	g.Insert(member2)
	g.Insert(outsider)
	g.Insert(gb)

	snap := SnapshotGraph(g)
	RestoreGraph(g, snap)

	var restoredGB *Node
	for _, n := range g.Nodes() {
		if n.Type == NodeGroupBox {
			restoredGB = n
		}
	}
	if restoredGB == nil {
		t.Fatal("group box missing after restore")
	}
	if len(restoredGB.ContainedNodeIDs) != 2 {
		t.Fatalf("restored group box contains %d members, want 2", len(restoredGB.ContainedNodeIDs))
	}
	for id := range restoredGB.ContainedNodeIDs {
		n := g.Find(id)
		if n == nil {
			t.Fatalf("contained id %v does not resolve to a restored node", id)
		}
		if n.Pos.X == 500 {
			t.Errorf("group box wrongly contains the outsider node at %+v", n.Pos)
		}
	}
}

func TestUndoRestoreSkipsUnknownNodeType(t *testing.T) {
	g := NewGraph()
	snap := Snapshot{Nodes: []NodeSnapshot{
		{Type: NodeType(99), Pos: Vec2{X: 0, Y: 0}, Size: Vec2{X: 10, Y: 10}},
		{Type: NodeImage, Pos: Vec2{X: 5, Y: 5}, Size: Vec2{X: 10, Y: 10}},
	}}
	RestoreGraph(g, snap)
	if g.Len() != 1 {
		t.Errorf("expected unknown type skipped, got %d nodes", g.Len())
	}
}
