package canvas

import "testing"

type fakeCanvasStore struct {
	saved []byte
	saveErr error
}

func (f *fakeCanvasStore) SaveCanvasState(data []byte) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = data
	return nil
}
func (f *fakeCanvasStore) LoadCanvasState() ([]byte, error) { return f.saved, nil }

type fakeUndoStore struct {
	saved   []byte
	saveErr error
}

func (f *fakeUndoStore) SaveUndoStack(data []byte) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = data
	return nil
}
func (f *fakeUndoStore) LoadUndoStack() ([]byte, error) { return f.saved, nil }

func TestNewCanvasStartsWithOneUndoEntry(t *testing.T) {
	g := NewGraph()
	c := NewCanvas(g, NewDefaultConfig())
	if c.undo.CanUndo() {
		t.Error("expected no undo available immediately after construction")
	}
}

func TestCanvasCommitPersistsCanvasAndUndoState(t *testing.T) {
	g := NewGraph()
	c := NewCanvas(g, NewDefaultConfig())
	cs := &fakeCanvasStore{}
	us := &fakeUndoStore{}
	c.SetCanvasStore(cs)
	c.SetUndoStore(us)

	g.Insert(NewNode(NodeImage, Vec2{}, Vec2{X: 100, Y: 100}))
	c.commit()

	if len(cs.saved) == 0 {
		t.Error("expected canvas state persisted on commit")
	}
	if len(us.saved) == 0 {
		t.Error("expected undo stack persisted on commit")
	}
	if !c.undo.CanUndo() {
		t.Error("expected commit to push a new undo entry")
	}
}

func TestCanvasCommitClearsUndoHistoryOnPersistenceFailure(t *testing.T) {
	g := NewGraph()
	c := NewCanvas(g, NewDefaultConfig())
	us := &fakeUndoStore{saveErr: errTest}
	c.SetUndoStore(us)

	g.Insert(NewNode(NodeImage, Vec2{}, Vec2{X: 100, Y: 100}))
	c.commit()

	if c.undo.CanUndo() {
		t.Error("expected undo history cleared after a failed persistence write")
	}
}

func TestHandlePointerDownPlainClickEntersDrag(t *testing.T) {
	g := NewGraph()
	c := NewCanvas(g, NewDefaultConfig())
	n := NewNode(NodeImage, Vec2{X: 0, Y: 0}, Vec2{X: 100, Y: 100})
	g.Insert(n)

	c.HandlePointerDown(Vec2{X: 50, Y: 50}, MouseLeft, 0)

	if c.sm.State() != StateDragNode {
		t.Errorf("expected drag state after clicking a node, got %v", c.sm.State())
	}
}

func TestHandlePointerDownDoubleClickResetsMediaNode(t *testing.T) {
	g := NewGraph()
	c := NewCanvas(g, NewDefaultConfig())
	n := NewNode(NodeImage, Vec2{X: 0, Y: 0}, Vec2{X: 100, Y: 100})
	n.AspectRatio = 3
	n.Rotation = 45
	g.Insert(n)

	c.HandlePointerDown(Vec2{X: 50, Y: 50}, MouseLeft, 0)
	c.sm.MouseUp(Vec2{X: 50, Y: 50})
	c.HandlePointerDown(Vec2{X: 50, Y: 50}, MouseLeft, 0)

	if n.Rotation != 0 {
		t.Errorf("expected rotation reset to 0, got %v", n.Rotation)
	}
	if n.AspectRatio != n.OriginalAspect {
		t.Errorf("expected aspect ratio restored to %v, got %v", n.OriginalAspect, n.AspectRatio)
	}
}

func TestHandlePointerDownDoubleClickOnGroupBoxBeginsEditTitle(t *testing.T) {
	g := NewGraph()
	c := NewCanvas(g, NewDefaultConfig())
	n := NewNode(NodeGroupBox, Vec2{X: 0, Y: 0}, Vec2{X: 300, Y: 300})
	g.Insert(n)

	c.HandlePointerDown(Vec2{X: 10, Y: 10}, MouseLeft, 0)
	c.sm.MouseUp(Vec2{X: 10, Y: 10})
	c.HandlePointerDown(Vec2{X: 10, Y: 10}, MouseLeft, 0)

	if c.sm.State() != StateEditTitle {
		t.Errorf("expected edit-title state, got %v", c.sm.State())
	}
}

func TestHandleWheelZoomsAboutScreenPoint(t *testing.T) {
	g := NewGraph()
	c := NewCanvas(g, NewDefaultConfig())
	before := c.Viewport.Scale

	c.HandleWheel(Vec2{X: 400, Y: 300}, true)

	if c.Viewport.Scale <= before {
		t.Errorf("expected wheel-up to increase scale, before=%v after=%v", before, c.Viewport.Scale)
	}
}

func TestHandleKeyDeleteRemovesSelection(t *testing.T) {
	g := NewGraph()
	c := NewCanvas(g, NewDefaultConfig())
	n := NewNode(NodeImage, Vec2{}, Vec2{X: 10, Y: 10})
	g.Insert(n)
	c.Selection.Add(n.ID)

	c.HandleKey(KeyDelete, 0)

	if g.Len() != 0 {
		t.Errorf("expected node deleted via HandleKey, graph has %d", g.Len())
	}
}

func TestLayoutTracksScreenSize(t *testing.T) {
	g := NewGraph()
	c := NewCanvas(g, NewDefaultConfig())
	w, h := c.Layout(1024, 768)
	if w != 1024 || h != 768 {
		t.Errorf("Layout returned %d,%d, want passthrough of 1024,768", w, h)
	}
	if c.screenSize != (Vec2{X: 1024, Y: 768}) {
		t.Errorf("expected screenSize tracked, got %+v", c.screenSize)
	}
}

func TestCanvasCommitNotifiesObserverOfNodeLifecycle(t *testing.T) {
	g := NewGraph()
	c := NewCanvas(g, NewDefaultConfig())
	rec := &recordingObserver{}
	c.SetCommitObserver(rec)

	n := NewNode(NodeImage, Vec2{}, Vec2{X: 10, Y: 10})
	g.Insert(n)
	c.commit()

	g.Remove(n.ID)
	c.commit()

	var created, deleted, changed int
	for _, e := range rec.events {
		switch e.Type {
		case CommitNodeCreated:
			created++
		case CommitNodeDeleted:
			deleted++
		case CommitGraphChanged:
			changed++
		}
	}
	if created != 1 || deleted != 1 || changed != 2 {
		t.Errorf("created=%d deleted=%d changed=%d, want 1/1/2", created, deleted, changed)
	}
}

var errTest = &testError{"forced failure"}

type testError struct{ msg string }

func (e *testError) Error() string { return e.msg }
