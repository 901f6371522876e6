package canvas

// GestureState names the interaction state machine's mutually exclusive
// states.
type GestureState int

const (
	StateIdle GestureState = iota
	StatePan
	StateMarquee
	StateDragNode
	StateAltDragDuplicate
	StateResizeSingle
	StateResizeMultiBBox
	StateResizeMultiHandle
	StateRotateSingle
	StateRotateGroupRigid
	StateRotateGroupIndividual
	StateAutoAlign
	StateGridAlign
	StateGroupBoxDrag
	StateEditTitle
	StateEditText
)

// CommitFunc is invoked at every gesture boundary that mutated the graph: it
// should save state and push an undo entry. It is not called for pan, zoom,
// marquee or shift-click selection changes. A mouse-up that ends a drag,
// resize or rotate gesture calls it even when the pointer never moved, so a
// plain click on a node also commits.
type CommitFunc func()

// StateMachine is the gesture arbiter: it owns no rendering or persistence
// concerns, only the current interaction state and the scratch each state
// needs for its lifetime.
type StateMachine struct {
	cfg    Config
	graph  *Graph
	sel    *Selection
	vp     *Viewport
	commit CommitFunc

	state GestureState

	mouseDownWorld         Vec2
	dragOffsets            map[NodeID]Vec2
	backgroundClickPending bool

	resizeBBoxAABB Rect
	resizeNodes    map[NodeID]NodeResizeInitial
	resizeRefID    NodeID

	rotateSingleInit RotateSingleInitial
	rotateGroupInit  RotateGroupInitial
	rotateAnchor     NodeID
	rotateTargets    []NodeID

	autoAlign  *AutoAlign
	gridAlign  *GridAlign
	animStates map[NodeID]*SpringState

	marqueeStart Vec2
	marqueeRect  Rect

	editingNodeID NodeID
}

// NewStateMachine wires the arbiter against a live graph, selection, and
// viewport. commit is called at every gesture-ending mutation.
func NewStateMachine(g *Graph, sel *Selection, vp *Viewport, cfg Config, commit CommitFunc) *StateMachine {
	return &StateMachine{
		cfg:        cfg,
		graph:      g,
		sel:        sel,
		vp:         vp,
		commit:     commit,
		state:      StateIdle,
		animStates: make(map[NodeID]*SpringState),
	}
}

// State returns the current gesture state.
func (sm *StateMachine) State() GestureState { return sm.state }

// IsEditing reports whether keyboard shortcuts must be gated off (edit-title
// or edit-text).
func (sm *StateMachine) IsEditing() bool {
	return sm.state == StateEditTitle || sm.state == StateEditText
}

func (sm *StateMachine) resizeHandleRadius() float64 { return sm.cfg.ResizeHandleCSSPx / sm.vp.Scale }
func (sm *StateMachine) rotateHandleRadius() float64 { return sm.cfg.RotateHandleCSSPx / sm.vp.Scale }
func (sm *StateMachine) selectionHandleRadius() float64 {
	return sm.cfg.SelectionHandleCSSPx / sm.vp.Scale
}

func (sm *StateMachine) hitAnyRotateHandle(world Vec2, r float64) *Node {
	nodes := sm.graph.Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		if HitRotateHandle(nodes[i], world, r) {
			return nodes[i]
		}
	}
	return nil
}

func (sm *StateMachine) hitAnyResizeHandle(world Vec2, r float64) *Node {
	nodes := sm.graph.Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		if HitResizeHandle(nodes[i], world, r) {
			return nodes[i]
		}
	}
	return nil
}

func (sm *StateMachine) hitGroupBoxTitleBar(world Vec2) *Node {
	nodes := sm.graph.Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		if HitTitleBar(nodes[i], world) {
			return nodes[i]
		}
	}
	return nil
}

// MouseDown runs the 12-step priority arbitration and enters exactly one
// state.
func (sm *StateMachine) MouseDown(world Vec2, button MouseButton, mods Modifiers) {
	if sm.IsEditing() {
		sm.endEditing()
	}

	sm.mouseDownWorld = world
	ids := sm.sel.IDs()
	rotateR := sm.rotateHandleRadius()
	resizeR := sm.resizeHandleRadius()
	selR := sm.selectionHandleRadius()

	// 1. Group rotation handle.
	if len(ids) > 1 {
		aabb := sm.graph.AABBOf(ids)
		if HitSelectionRotateHandle(aabb, world, rotateR) {
			sm.beginRotateGroupRigid(world, ids)
			return
		}
	}

	// 2. Any selected node's own rotation handle.
	if n := sm.hitAnyRotateHandle(world, rotateR); n != nil && sm.sel.Contains(n.ID) {
		if len(ids) == 1 {
			sm.beginRotateSingle(world, n)
		} else {
			sm.beginRotateGroupIndividual(world, ids, n.ID)
		}
		return
	}

	// 3. Ctrl+Shift on empty space, left button.
	if button == MouseLeft && mods.Has(ModCtrl) && mods.Has(ModShift) && TopmostHitAt(sm.graph, world) == nil {
		sm.beginGridAlign(world, ids)
		return
	}

	// 4. Pan.
	if button == MouseMiddle || (button == MouseLeft && mods.Has(ModCtrl) && !mods.Has(ModShift)) {
		sm.beginPan(world)
		return
	}

	// 5. Mid-flight auto-align snaps before further arbitration.
	if sm.autoAlign != nil {
		sm.snapAutoAlignAndCommit()
	}

	// 6. Groupbox title bar.
	if gb := sm.hitGroupBoxTitleBar(world); gb != nil {
		sm.beginGroupBoxDrag(world, gb)
		return
	}

	// 7. Resize handle.
	if n := sm.hitAnyResizeHandle(world, resizeR); n != nil {
		if len(ids) > 1 && sm.sel.Contains(n.ID) {
			sm.beginResizeMultiHandle(world, ids, n.ID)
		} else {
			sm.beginResizeSingle(world, n)
		}
		return
	}

	// 8. Empty space + Shift + multi-selection.
	if button == MouseLeft && mods.Has(ModShift) && len(ids) > 1 && TopmostHitAt(sm.graph, world) == nil {
		sm.beginAutoAlign(world, ids)
		return
	}

	// 9. Selection-box resize handle.
	if len(ids) > 1 {
		aabb := sm.graph.AABBOf(ids)
		if HitSelectionBoxHandle(aabb, world, selR) {
			sm.beginResizeMultiBBox(world, ids)
			return
		}
	}

	hit := TopmostHitAt(sm.graph, world)

	// 10. Alt-drag-duplicate.
	if hit != nil && mods.Has(ModAlt) {
		sm.beginAltDragDuplicate(world, hit)
		return
	}

	// 11. Plain node hit.
	if hit != nil {
		if mods.Has(ModShift) {
			sm.sel.Toggle(hit.ID)
			sm.state = StateIdle
			return
		}
		if !sm.sel.Contains(hit.ID) {
			sm.sel.Replace(hit.ID)
		}
		sm.beginDragNode(world)
		return
	}

	// 12. Empty space, left button, no modifiers: marquee.
	if button == MouseLeft && mods == 0 {
		sm.beginMarquee(world)
	}
}

// MouseMove dispatches the live pointer position to whichever state is
// active.
func (sm *StateMachine) MouseMove(world Vec2, mods Modifiers) {
	switch sm.state {
	case StatePan:
		sm.moveViewportBy(world.Sub(sm.mouseDownWorld))
		sm.mouseDownWorld = world
	case StateDragNode, StateAltDragDuplicate, StateGroupBoxDrag:
		sm.moveDraggedNodes(world)
	case StateMarquee:
		sm.marqueeRect = rectFromCorners(sm.marqueeStart, world)
	case StateResizeSingle:
		sm.moveResizeSingle(world, mods)
	case StateResizeMultiBBox:
		sm.moveResizeMultiBBox(world, mods)
	case StateResizeMultiHandle:
		sm.moveResizeMultiHandle(world, mods)
	case StateRotateSingle:
		sm.moveRotateSingle(world, mods)
	case StateRotateGroupRigid:
		sm.moveRotateGroupRigid(world, mods)
	case StateRotateGroupIndividual:
		sm.moveRotateGroupIndividual(world, mods)
	case StateAutoAlign:
		sm.autoAlign.Move(sm.graph, world, sm.vp.Scale)
	case StateGridAlign:
		sm.gridAlign.Move(sm.graph, world)
	}
}

// MouseUp commits whatever state was active and returns to idle.
func (sm *StateMachine) MouseUp(world Vec2) {
	switch sm.state {
	case StateMarquee:
		sm.finishMarquee(world)
	case StateDragNode, StateAltDragDuplicate, StateGroupBoxDrag,
		StateResizeSingle, StateResizeMultiBBox, StateResizeMultiHandle,
		StateRotateSingle, StateRotateGroupRigid, StateRotateGroupIndividual:
		sm.clearScratch()
		sm.commitIfPresent()
	case StateAutoAlign:
		// Do NOT snap; let the spring finish naturally. The gesture itself
		// ends (no more live target updates) but autoAlign and animStates
		// stay alive until the animation step reports completion.
	case StateGridAlign:
		sm.commitIfPresent()
		sm.gridAlign = nil
	case StatePan:
		sm.clearScratch()
	}
	if sm.state != StateAutoAlign {
		sm.state = StateIdle
	}
}

func (sm *StateMachine) commitIfPresent() {
	if sm.commit != nil {
		sm.commit()
	}
}

func (sm *StateMachine) clearScratch() {
	sm.dragOffsets = nil
	sm.resizeNodes = nil
	sm.rotateTargets = nil
	sm.marqueeRect = Rect{}
}

func rectFromCorners(a, b Vec2) Rect {
	x := minF(a.X, b.X)
	y := minF(a.Y, b.Y)
	return Rect{X: x, Y: y, Width: maxF(a.X, b.X) - x, Height: maxF(a.Y, b.Y) - y}
}

// --- pan ---

func (sm *StateMachine) beginPan(world Vec2) {
	sm.state = StatePan
}

func (sm *StateMachine) moveViewportBy(deltaWorld Vec2) {
	// The viewport offset is in world-to-screen space; panning by a
	// world-space delta at the current scale shifts the visible window by
	// that much in the opposite direction.
	sm.vp.Offset.X -= deltaWorld.X * sm.vp.Scale
	sm.vp.Offset.Y -= deltaWorld.Y * sm.vp.Scale
}

// --- drag-node / alt-drag-duplicate / groupbox-drag ---

func (sm *StateMachine) beginDragNode(world Vec2) {
	sm.state = StateDragNode
	sm.captureDragOffsets(world, sm.sel.IDs())
}

func (sm *StateMachine) captureDragOffsets(world Vec2, ids []NodeID) {
	sm.dragOffsets = make(map[NodeID]Vec2, len(ids))
	for _, id := range ids {
		if n := sm.graph.Find(id); n != nil {
			sm.dragOffsets[id] = n.Pos.Sub(world)
		}
	}
}

func (sm *StateMachine) moveDraggedNodes(world Vec2) {
	for id, offset := range sm.dragOffsets {
		if n := sm.graph.Find(id); n != nil {
			n.Pos = world.Add(offset)
		}
	}
}

func (sm *StateMachine) beginAltDragDuplicate(world Vec2, hit *Node) {
	ids := sm.sel.IDs()
	if !sm.sel.Contains(hit.ID) {
		ids = []NodeID{hit.ID}
	}
	clones := make([]NodeID, 0, len(ids))
	for _, id := range ids {
		if n := sm.graph.Find(id); n != nil {
			c := n.Clone()
			sm.graph.Insert(c)
			clones = append(clones, c.ID)
		}
	}
	sm.sel.Clear()
	for _, id := range clones {
		sm.sel.Add(id)
	}
	sm.commitIfPresent() // undo committed at mouse-down per spec
	sm.state = StateAltDragDuplicate
	sm.captureDragOffsets(world, clones)
}

func (sm *StateMachine) beginGroupBoxDrag(world Vec2, gb *Node) {
	sm.state = StateGroupBoxDrag
	ids := append([]NodeID{gb.ID}, containedIDs(gb)...)
	sm.captureDragOffsets(world, ids)
}

func containedIDs(gb *Node) []NodeID {
	out := make([]NodeID, 0, len(gb.ContainedNodeIDs))
	for id := range gb.ContainedNodeIDs {
		out = append(out, id)
	}
	return out
}

// --- marquee ---

func (sm *StateMachine) beginMarquee(world Vec2) {
	sm.state = StateMarquee
	sm.marqueeStart = world
	sm.marqueeRect = Rect{X: world.X, Y: world.Y}
	sm.backgroundClickPending = true
}

func (sm *StateMachine) finishMarquee(world Vec2) {
	rect := rectFromCorners(sm.marqueeStart, world)
	if rect.Width < 5 && rect.Height < 5 {
		if sm.backgroundClickPending {
			sm.sel.Clear()
		}
		sm.backgroundClickPending = false
		sm.marqueeRect = Rect{}
		return
	}
	sm.backgroundClickPending = false
	sm.sel.Clear()
	for _, n := range sm.graph.Nodes() {
		if rect.Intersects(n.AABB()) {
			sm.sel.Add(n.ID)
		}
	}
	sm.marqueeRect = Rect{}
}

// --- resize ---

func (sm *StateMachine) beginResizeSingle(world Vec2, n *Node) {
	sm.state = StateResizeSingle
	sm.resizeNodes = map[NodeID]NodeResizeInitial{n.ID: captureInitial(n)}
	sm.resizeRefID = n.ID
}

func (sm *StateMachine) moveResizeSingle(world Vec2, mods Modifiers) {
	init := sm.resizeNodes[sm.resizeRefID]
	n := sm.graph.Find(sm.resizeRefID)
	if n == nil {
		return
	}
	size, aspect := ResizeSingle(init, world, mods, sm.cfg)
	n.Size = size
	n.AspectRatio = aspect
}

func (sm *StateMachine) beginResizeMultiBBox(world Vec2, ids []NodeID) {
	sm.state = StateResizeMultiBBox
	sm.resizeBBoxAABB, sm.resizeNodes = CaptureMultiResizeInitial(sm.graph, ids)
}

func (sm *StateMachine) moveResizeMultiBBox(world Vec2, mods Modifiers) {
	out := ComputeBBoxResize(sm.resizeBBoxAABB, sm.resizeNodes, world, mods, sm.cfg)
	sm.applyGeometry(out)
}

func (sm *StateMachine) beginResizeMultiHandle(world Vec2, ids []NodeID, refID NodeID) {
	sm.state = StateResizeMultiHandle
	_, sm.resizeNodes = CaptureMultiResizeInitial(sm.graph, ids)
	sm.resizeRefID = refID
}

func (sm *StateMachine) moveResizeMultiHandle(world Vec2, mods Modifiers) {
	out := ComputeMultiHandleResize(sm.resizeNodes, sm.resizeRefID, world, mods, sm.cfg)
	sm.applyGeometry(out)
}

func (sm *StateMachine) applyGeometry(out map[NodeID]NodeGeometry) {
	for id, g := range out {
		if n := sm.graph.Find(id); n != nil {
			n.Pos = g.Pos
			n.Size = g.Size
			n.AspectRatio = g.Aspect
		}
	}
}

// --- rotate ---

func (sm *StateMachine) beginRotateSingle(world Vec2, n *Node) {
	sm.state = StateRotateSingle
	sm.rotateSingleInit = CaptureRotateSingle(n, world)
	sm.rotateRefID(n.ID)
}

func (sm *StateMachine) rotateRefID(id NodeID) { sm.rotateAnchor = id }

func (sm *StateMachine) moveRotateSingle(world Vec2, mods Modifiers) {
	n := sm.graph.Find(sm.rotateAnchor)
	if n == nil {
		return
	}
	n.Rotation = RotateSingle(sm.rotateSingleInit, world, mods)
}

func (sm *StateMachine) beginRotateGroupRigid(world Vec2, ids []NodeID) {
	sm.state = StateRotateGroupRigid
	sm.rotateGroupInit = CaptureRotateGroupRigid(sm.graph, ids, world)
	sm.rotateTargets = ids
	if len(ids) > 0 {
		sm.rotateAnchor = ids[0]
	}
}

func (sm *StateMachine) moveRotateGroupRigid(world Vec2, mods Modifiers) {
	out := ComputeRotateGroupRigid(sm.rotateGroupInit, sm.rotateAnchor, world, mods)
	for id, r := range out {
		if n := sm.graph.Find(id); n != nil {
			n.Pos = Vec2{X: r.Center.X - n.Size.X/2, Y: r.Center.Y - n.Size.Y/2}
			n.Rotation = r.Rotation
		}
	}
}

func (sm *StateMachine) beginRotateGroupIndividual(world Vec2, ids []NodeID, anchor NodeID) {
	sm.state = StateRotateGroupIndividual
	sm.rotateGroupInit = CaptureRotateGroupIndividual(sm.graph, ids, anchor, world)
	sm.rotateAnchor = anchor
	sm.rotateTargets = ids
}

func (sm *StateMachine) moveRotateGroupIndividual(world Vec2, mods Modifiers) {
	out := ComputeRotateGroupIndividual(sm.rotateGroupInit, sm.rotateAnchor, world, mods)
	for id, rot := range out {
		if n := sm.graph.Find(id); n != nil {
			n.Rotation = rot
		}
	}
}

// --- auto-align / grid-align ---

func (sm *StateMachine) beginAutoAlign(world Vec2, ids []NodeID) {
	sm.state = StateAutoAlign
	sm.autoAlign = NewAutoAlign(sm.graph, ids, world, sm.cfg)
}

func (sm *StateMachine) beginGridAlign(world Vec2, ids []NodeID) {
	sm.state = StateGridAlign
	sm.gridAlign = NewGridAlign(sm.graph, ids, world, sm.cfg)
}

// snapAutoAlignAndCommit implements step 5 of arbitration: a competing
// mouse-down while auto-align is mid-flight snaps every animating node to
// its target, clears the animation, and commits.
func (sm *StateMachine) snapAutoAlignAndCommit() {
	for id, target := range sm.autoAlign.Targets() {
		if n := sm.graph.Find(id); n != nil {
			n.Pos = Vec2{X: target.X - n.Size.X/2, Y: target.Y - n.Size.Y/2}
		}
		delete(sm.animStates, id)
	}
	sm.autoAlign = nil
	sm.commitIfPresent()
}

// StepAnimations advances any live auto-align/grid-align springs one tick.
// Call once per frame regardless of gesture state. Returns true if the
// auto-align animation just committed as a result of finishing while the
// gesture had already ended (mouse-up already happened).
func (sm *StateMachine) StepAnimations() (committed bool) {
	if sm.autoAlign != nil {
		nodePos := func(id NodeID) Vec2 {
			if n := sm.graph.Find(id); n != nil {
				return n.Center()
			}
			return Vec2{}
		}
		sm.autoAlign.Step(sm.animStates, nodePos)
		if sm.autoAlign.springs.AllDone(sm.animStates) {
			stillDragging := sm.state == StateAutoAlign
			if stillDragging {
				return false
			}
			for id, target := range sm.autoAlign.Targets() {
				if n := sm.graph.Find(id); n != nil {
					n.Pos = Vec2{X: target.X - n.Size.X/2, Y: target.Y - n.Size.Y/2}
				}
				delete(sm.animStates, id)
			}
			sm.autoAlign = nil
			sm.commitIfPresent()
			return true
		}
	}
	if sm.gridAlign != nil {
		stillDragging := sm.state == StateGridAlign
		sm.gridAlign.Step(sm.graph, sm.animStates, stillDragging)
	}
	return false
}

// --- groupbox / editing ---

func (sm *StateMachine) beginEditTitle(id NodeID) {
	sm.state = StateEditTitle
	sm.editingNodeID = id
}

func (sm *StateMachine) beginEditText(id NodeID) {
	sm.state = StateEditText
	sm.editingNodeID = id
}

func (sm *StateMachine) endEditing() {
	sm.state = StateIdle
	sm.editingNodeID = ""
	sm.commitIfPresent()
}
