package canvas

// Key names the keys carrying a shortcut in the catalog enumerated in §6.
// Plain character keys are named by the character they produce; everything
// else gets its own constant.
type Key int

const (
	KeyDelete Key = iota
	KeyBackspace
	KeyC
	KeyX
	KeyV
	KeyD
	KeyA
	KeyZ
	KeyF
	KeyH
	KeyBracketLeft
	KeyBracketRight
	Key1
	Key2
	KeyT
	KeyG
)

// duplicateCascadeOffset is the world-unit offset applied to each successive
// Ctrl/Cmd+D duplicate so repeated presses fan the copies out rather than
// stacking them exactly on top of each other.
const duplicateCascadeOffset = 20

// fitPaddingCSSPx is the screen-space margin left around the fitted
// bounding box by the f shortcut.
const fitPaddingCSSPx = 60

// cameraShortcutDurationS is the gween tween duration for the h/f shortcuts.
const cameraShortcutDurationS = 0.3

// defaultGroupBoxSize is the size of the empty group box created by g.
var defaultGroupBoxSize = Vec2{X: 300, Y: 300}

// defaultTextNodeSize is the size of the text node created by t.
var defaultTextNodeSize = Vec2{X: 200, Y: 60}

// Keyboard dispatches the keyboard shortcut catalog against a live graph,
// selection, viewport, clipboard, and undo stack. It never fires while
// sm.IsEditing() — Handle checks that itself and returns early (per spec §6: "Keyboard shortcuts fire only when not in
// edit-title/edit-text").
type Keyboard struct {
	cfg       Config
	graph     *Graph
	sel       *Selection
	vp        *Viewport
	sm        *StateMachine
	clipboard *Clipboard
	undo      *UndoStack
	commit    CommitFunc
}

// NewKeyboard wires the shortcut dispatcher against the canvas's live state.
func NewKeyboard(g *Graph, sel *Selection, vp *Viewport, sm *StateMachine, clip *Clipboard, undo *UndoStack, cfg Config, commit CommitFunc) *Keyboard {
	return &Keyboard{cfg: cfg, graph: g, sel: sel, vp: vp, sm: sm, clipboard: clip, undo: undo, commit: commit}
}

// Handle dispatches a single key press with the given modifiers. mouseWorld
// is the current pointer position in world space, used by paste (bbox-
// center-to-mouse) and by t (create text node at mouse). viewportSizePx is
// the current canvas size in CSS pixels, used by f/h. Handle is a no-op
// while the state machine is in edit-title/edit-text.
func (kb *Keyboard) Handle(key Key, mods Modifiers, mouseWorld Vec2, viewportSizePx Vec2) {
	if kb.sm != nil && kb.sm.IsEditing() {
		return
	}
	primary := mods.CtrlOrCmd()

	switch key {
	case KeyDelete, KeyBackspace:
		kb.deleteSelection()
	case KeyC:
		if primary {
			kb.clipboard.Copy(kb.graph, kb.sel)
		}
	case KeyX:
		if primary {
			kb.clipboard.Cut(kb.graph, kb.sel)
			kb.commitIfPresent()
		}
	case KeyV:
		if primary {
			if ids := kb.clipboard.Paste(kb.graph, kb.sel, mouseWorld); len(ids) > 0 {
				kb.commitIfPresent()
			}
		}
	case KeyD:
		if primary {
			kb.duplicateInPlace()
		}
	case KeyA:
		if primary {
			kb.sel.SelectAll(kb.graph)
		}
	case KeyZ:
		if primary {
			if mods.Has(ModShift) {
				kb.redo()
			} else {
				kb.undoOnce()
			}
		}
	case KeyF:
		kb.fitSelectionOrAll(viewportSizePx)
	case KeyH:
		kb.recenter(viewportSizePx)
	case KeyBracketLeft:
		for _, id := range kb.sel.IDs() {
			kb.graph.MoveDown(id)
		}
	case KeyBracketRight:
		for _, id := range kb.sel.IDs() {
			kb.graph.MoveUp(id)
		}
	case Key1:
		kb.autoAlignImmediate(AxisHorizontal)
	case Key2:
		kb.autoAlignImmediate(AxisVertical)
	case KeyT:
		if mods.Has(ModShift) {
			kb.toggleTitles()
		} else {
			kb.createTextNode(mouseWorld)
		}
	case KeyG:
		kb.createEmptyGroup(mouseWorld)
	}
}

func (kb *Keyboard) commitIfPresent() {
	if kb.commit != nil {
		kb.commit()
	}
}

func (kb *Keyboard) deleteSelection() {
	ids := kb.sel.IDs()
	if len(ids) == 0 {
		return
	}
	for _, id := range ids {
		kb.graph.Remove(id)
	}
	kb.sel.Clear()
	kb.commitIfPresent()
}

func (kb *Keyboard) duplicateInPlace() {
	ids := kb.sel.IDs()
	if len(ids) == 0 {
		return
	}
	idRemap := make(map[NodeID]NodeID, len(ids))
	clones := make([]*Node, 0, len(ids))
	for _, id := range ids {
		if n := kb.graph.Find(id); n != nil {
			c := n.Clone()
			idRemap[id] = c.ID
			clones = append(clones, c)
		}
	}
	kb.sel.Clear()
	offset := Vec2{X: duplicateCascadeOffset, Y: duplicateCascadeOffset}
	for _, c := range clones {
		c.Pos = c.Pos.Add(offset)
		if c.ContainedNodeIDs != nil {
			remapped := make(map[NodeID]struct{}, len(c.ContainedNodeIDs))
			for oldID := range c.ContainedNodeIDs {
				if newID, ok := idRemap[oldID]; ok {
					remapped[newID] = struct{}{}
				}
			}
			c.ContainedNodeIDs = remapped
		}
		kb.graph.Insert(c)
		kb.sel.Add(c.ID)
	}
	kb.commitIfPresent()
}

func (kb *Keyboard) undoOnce() {
	if snap, ok := kb.undo.Undo(); ok {
		RestoreGraph(kb.graph, snap)
		kb.sel.Prune(kb.graph)
	}
}

func (kb *Keyboard) redo() {
	if snap, ok := kb.undo.Redo(); ok {
		RestoreGraph(kb.graph, snap)
		kb.sel.Prune(kb.graph)
	}
}

func (kb *Keyboard) toggleTitles() {
	changed := false
	for _, id := range kb.sel.IDs() {
		n := kb.graph.Find(id)
		if n == nil || n.Type == NodeText {
			continue
		}
		n.HideTitle = !n.HideTitle
		changed = true
	}
	if changed {
		kb.commitIfPresent()
	}
}

func (kb *Keyboard) createTextNode(mouseWorld Vec2) {
	n := NewNode(NodeText, Vec2{X: mouseWorld.X - defaultTextNodeSize.X/2, Y: mouseWorld.Y - defaultTextNodeSize.Y/2}, defaultTextNodeSize)
	kb.graph.Insert(n)
	kb.sel.Replace(n.ID)
	kb.commitIfPresent()
}

func (kb *Keyboard) createEmptyGroup(mouseWorld Vec2) {
	n := NewNode(NodeGroupBox, Vec2{X: mouseWorld.X - defaultGroupBoxSize.X/2, Y: mouseWorld.Y - defaultGroupBoxSize.Y/2}, defaultGroupBoxSize)
	kb.graph.Insert(n)
	kb.sel.Replace(n.ID)
	kb.commitIfPresent()
}

// autoAlignImmediate packs the selection along axis with the same math as a
// completed drag-driven auto-align gesture, applied instantly rather than
// springing toward the target.
func (kb *Keyboard) autoAlignImmediate(axis Axis) {
	ids := kb.sel.IDs()
	if len(ids) < 2 {
		return
	}
	a := NewAutoAlign(kb.graph, ids, kb.graph.AABBOf(ids).Center(), kb.cfg)
	a.committed = true
	a.committedAxis = axis
	targets := a.computeTargets(kb.graph)
	for id, t := range targets {
		if n := kb.graph.Find(id); n != nil {
			n.Pos = Vec2{X: t.X - n.Size.X/2, Y: t.Y - n.Size.Y/2}
		}
	}
	kb.commitIfPresent()
}

// fitSelectionOrAll animates the viewport so the selection's bounding box
// (or, with nothing selected, every node's) is fully visible with margin.
func (kb *Keyboard) fitSelectionOrAll(viewportSizePx Vec2) {
	ids := kb.sel.IDs()
	if len(ids) == 0 {
		for _, n := range kb.graph.Nodes() {
			ids = append(ids, n.ID)
		}
	}
	if len(ids) == 0 {
		return
	}
	aabb := kb.graph.AABBOf(ids)
	offset, scale := fitTransform(aabb, viewportSizePx, fitPaddingCSSPx)
	kb.vp.AnimateTo(offset, scale, cameraShortcutDurationS)
}

// recenter animates the viewport back to scale=1 with the world origin at
// the center of the screen.
func (kb *Keyboard) recenter(viewportSizePx Vec2) {
	offset := viewportSizePx.Scale(0.5)
	kb.vp.AnimateTo(offset, 1, cameraShortcutDurationS)
}

// fitTransform computes the offset/scale that centers aabb on a
// viewportSizePx screen with padding CSS pixels of margin on every side. A
// degenerate (zero-area) aabb falls back to scale 1 centered on the aabb's
// position.
func fitTransform(aabb Rect, viewportSizePx Vec2, padding float64) (Vec2, float64) {
	center := aabb.Center()
	if aabb.Width <= 0 || aabb.Height <= 0 {
		return Vec2{X: viewportSizePx.X/2 - center.X, Y: viewportSizePx.Y/2 - center.Y}, 1
	}
	availW := viewportSizePx.X - 2*padding
	availH := viewportSizePx.Y - 2*padding
	if availW < 1 {
		availW = 1
	}
	if availH < 1 {
		availH = 1
	}
	scaleX := availW / aabb.Width
	scaleY := availH / aabb.Height
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}
	offset := Vec2{
		X: viewportSizePx.X/2 - center.X*scale,
		Y: viewportSizePx.Y/2 - center.Y*scale,
	}
	return offset, scale
}
