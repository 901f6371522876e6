package canvas

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	gridDotColor         = color.RGBA{R: 120, G: 120, B: 120, A: 180}
	selectionStrokeColor = color.RGBA{R: 64, G: 148, B: 255, A: 255}
)

// doubleClickWindow is the maximum gap between two clicks on the same node
// for the second to count as a double-click.
const doubleClickWindow = 350 * time.Millisecond

// Canvas is the top-level glue wiring the graph, selection, viewport,
// interaction state machine, render pipeline, undo stack, clipboard, and
// keyboard dispatcher into an ebiten.Game. It owns persistence only at the
// boundary (commit/save), never the wire format itself (that's
// persistence.go's job).
type Canvas struct {
	cfg Config

	Graph     *Graph
	Selection *Selection
	Viewport  *Viewport

	sm        *StateMachine
	renderer  *Renderer
	undo      *UndoStack
	clipboard *Clipboard
	keyboard  *Keyboard

	drawHook      DrawHook
	resourceHooks ResourceHooks
	canvasStore   CanvasStore
	undoStore     UndoStore
	observer      CommitObserver

	knownNodeIDs map[NodeID]struct{}

	screenSize Vec2

	lastMouseDown bool
	lastClickNode NodeID
	lastClickAt   time.Time

	mouseWorld Vec2
}

// NewCanvas wires a fresh canvas around g, ready to run as an ebiten.Game.
// Persistence, draw, and resource hooks are optional; set them with the
// Set* methods before the first Update if needed.
func NewCanvas(g *Graph, cfg Config) *Canvas {
	sel := NewSelection()
	vp := NewViewport()
	undo := NewUndoStack(cfg.UndoDepth)
	clip := NewClipboard()

	c := &Canvas{
		cfg:          cfg,
		Graph:        g,
		Selection:    sel,
		Viewport:     vp,
		undo:         undo,
		clipboard:    clip,
		renderer:     NewRenderer(cfg),
		screenSize:   Vec2{X: 800, Y: 600},
		knownNodeIDs: make(map[NodeID]struct{}),
	}
	c.sm = NewStateMachine(g, sel, vp, cfg, c.commit)
	c.keyboard = NewKeyboard(g, sel, vp, c.sm, clip, undo, cfg, c.commit)
	undo.Push(SnapshotGraph(g))
	return c
}

// SetDrawHook installs the embedder's per-node interior painter.
func (c *Canvas) SetDrawHook(h DrawHook) { c.drawHook = h }

// SetResourceHooks installs the embedder's media load/unload lifecycle.
func (c *Canvas) SetResourceHooks(h ResourceHooks) { c.resourceHooks = h }

// SetCanvasStore installs the canvas-state persistence backend. Commits
// save to it immediately; failures are logged and swallowed.
func (c *Canvas) SetCanvasStore(s CanvasStore) { c.canvasStore = s }

// SetUndoStore installs the undo-history persistence backend.
func (c *Canvas) SetUndoStore(s UndoStore) { c.undoStore = s }

// SetCommitObserver installs an optional ECS/observer bridge notified of
// node lifecycle and graph-level changes at every commit boundary.
func (c *Canvas) SetCommitObserver(o CommitObserver) { c.observer = o }

// commit is the CommitFunc passed to the state machine and keyboard
// dispatcher: it records a new undo entry, notifies the commit observer of
// any node set change, and persists both the canvas state and the undo
// history.
func (c *Canvas) commit() {
	c.notifyNodeLifecycle()
	c.undo.Push(SnapshotGraph(c.Graph))
	c.renderer.MarkDirty()
	c.persistCanvasState()
	c.persistUndoStack()
}

// notifyNodeLifecycle diffs the graph's current node set against the set
// observed at the last commit, emitting a CommitNodeCreated/CommitNodeDeleted
// per-node event for each change and a trailing CommitGraphChanged for
// everything else (moves, resizes, reorders). A nil observer makes this a
// no-op past the set comparison.
func (c *Canvas) notifyNodeLifecycle() {
	current := make(map[NodeID]struct{}, c.Graph.Len())
	for _, n := range c.Graph.Nodes() {
		current[n.ID] = struct{}{}
		if _, existed := c.knownNodeIDs[n.ID]; !existed {
			NotifyNodeCreated(c.observer, n.ID)
		}
	}
	for id := range c.knownNodeIDs {
		if _, stillPresent := current[id]; !stillPresent {
			NotifyNodeDeleted(c.observer, id)
		}
	}
	c.knownNodeIDs = current
	if c.observer != nil {
		c.observer.ObserveCommit(CommitEvent{Type: CommitGraphChanged})
	}
}

func (c *Canvas) persistCanvasState() {
	if c.canvasStore == nil {
		return
	}
	data, err := EncodeCanvasState(c.Graph)
	if err != nil {
		logWarn("encode canvas state: %v", err)
		return
	}
	if err := c.canvasStore.SaveCanvasState(data); err != nil {
		logWarn("save canvas state: %v", err)
	}
}

func (c *Canvas) persistUndoStack() {
	if c.undoStore == nil {
		return
	}
	data, err := EncodeUndoStack(c.undo)
	if err != nil {
		logWarn("encode undo stack: %v", err)
		return
	}
	// A write failure here means the persisted history may now be
	// inconsistent with in-memory state; clearing it rather than risking a
	// stale or partially-written replay on next load, per the transient-
	// persistence-failure policy.
	if err := c.undoStore.SaveUndoStack(data); err != nil {
		logWarn("save undo stack: %v, clearing undo history", err)
		c.undo = NewUndoStack(c.cfg.UndoDepth)
		c.undo.Push(SnapshotGraph(c.Graph))
	}
}

// LoadCanvasState replaces the current graph with the contents of store,
// leaving the viewport untouched. A corrupt record starts from an empty
// graph rather than failing.
func (c *Canvas) LoadCanvasState() {
	if c.canvasStore == nil {
		return
	}
	data, err := c.canvasStore.LoadCanvasState()
	if err != nil {
		logWarn("load canvas state: %v", err)
		return
	}
	g, err := DecodeCanvasState(data)
	if err != nil {
		logWarn("decode canvas state: %v", err)
		g = NewGraph()
	}
	*c.Graph = *g
	c.Selection.Clear()
	c.renderer.MarkDirty()
}

// HandlePointerDown routes a mouse-down at world through the interaction
// state machine's priority arbitration, also resolving a same-node
// double-click into an edit/reset action before arbitration runs.
func (c *Canvas) HandlePointerDown(world Vec2, button MouseButton, mods Modifiers) {
	c.mouseWorld = world
	if hit := TopmostHitAt(c.Graph, world); hit != nil && button == MouseLeft {
		now := currentTime()
		if hit.ID == c.lastClickNode && now.Sub(c.lastClickAt) <= doubleClickWindow {
			c.handleDoubleClick(hit)
			c.lastClickNode = ""
			return
		}
		c.lastClickNode = hit.ID
		c.lastClickAt = now
	}
	c.sm.MouseDown(world, button, mods)
}

// handleDoubleClick implements the mouse-surface's target-dependent
// double-click behavior: group boxes enter edit-title, text nodes enter
// edit-text, and every other node type has its original aspect restored and
// its rotation zeroed, then commits. Only double-clicks on a node's body are
// detected; a double-click on a resize or rotation handle is not
// distinguished, and only the struck node is reset.
func (c *Canvas) handleDoubleClick(n *Node) {
	switch n.Type {
	case NodeGroupBox:
		c.sm.beginEditTitle(n.ID)
	case NodeText:
		c.sm.beginEditText(n.ID)
	default:
		RestoreOriginalAspect(n)
		ZeroRotation(n)
		c.commit()
	}
}

// HandlePointerMove routes a mouse-move at world through the active gesture.
func (c *Canvas) HandlePointerMove(world Vec2, mods Modifiers) {
	c.mouseWorld = world
	c.sm.MouseMove(world, mods)
}

// HandlePointerUp routes a mouse-up at world, ending the active gesture.
func (c *Canvas) HandlePointerUp(world Vec2) {
	c.sm.MouseUp(world)
}

// HandleWheel zooms the viewport about screenPoint, modifier-independent,
// using cfg's fixed wheel factors.
func (c *Canvas) HandleWheel(screenPoint Vec2, wheelUp bool) {
	factor := c.cfg.ZoomWheelDownFactor
	if wheelUp {
		factor = c.cfg.ZoomWheelUpFactor
	}
	c.Viewport.ZoomAt(screenPoint, factor)
	c.renderer.MarkDirty()
}

// HandleKey dispatches a keyboard shortcut press.
func (c *Canvas) HandleKey(key Key, mods Modifiers) {
	c.keyboard.Handle(key, mods, c.mouseWorld, c.screenSize)
}

// Update advances animations and processes buffered input for one tick. It
// satisfies ebiten.Game.
func (c *Canvas) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))

	mx, my := ebiten.CursorPosition()
	wx, wy := c.Viewport.ScreenToWorld(float64(mx), float64(my))
	world := Vec2{X: wx, Y: wy}
	mods := readModifiersFromEbiten()

	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) ||
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) ||
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	switch {
	case down && !c.lastMouseDown:
		c.HandlePointerDown(world, buttonFromEbiten(), mods)
	case down && c.lastMouseDown:
		c.HandlePointerMove(world, mods)
	case !down && c.lastMouseDown:
		c.HandlePointerUp(world)
	}
	c.lastMouseDown = down

	if _, wheelY := ebiten.Wheel(); wheelY != 0 {
		c.HandleWheel(Vec2{X: float64(mx), Y: float64(my)}, wheelY > 0)
	}

	c.dispatchJustPressedKeys(mods)

	c.Viewport.StepAnimation(dt)
	c.sm.StepAnimations()

	return nil
}

var keyBindings = map[ebiten.Key]Key{
	ebiten.KeyDelete:       KeyDelete,
	ebiten.KeyBackspace:    KeyBackspace,
	ebiten.KeyC:            KeyC,
	ebiten.KeyX:            KeyX,
	ebiten.KeyV:            KeyV,
	ebiten.KeyD:            KeyD,
	ebiten.KeyA:            KeyA,
	ebiten.KeyZ:            KeyZ,
	ebiten.KeyF:            KeyF,
	ebiten.KeyH:            KeyH,
	ebiten.KeyBracketLeft:  KeyBracketLeft,
	ebiten.KeyBracketRight: KeyBracketRight,
	ebiten.Key1:            Key1,
	ebiten.Key2:            Key2,
	ebiten.KeyT:            KeyT,
	ebiten.KeyG:            KeyG,
}

func (c *Canvas) dispatchJustPressedKeys(mods Modifiers) {
	for ek, key := range keyBindings {
		if ebiten.IsKeyJustPressed(ek) {
			c.HandleKey(key, mods)
		}
	}
}

// Draw paints the background grid, every node via the installed DrawHook,
// and the selection/marquee overlays. It satisfies ebiten.Game.
func (c *Canvas) Draw(screen *ebiten.Image) {
	viewportSize := Vec2{X: float64(screen.Bounds().Dx()), Y: float64(screen.Bounds().Dy())}
	bounds := c.Viewport.VisibleBounds(viewportSize, c.cfg.CullMarginWorld)

	c.renderer.UpdateVisibility(c.Graph, c.Viewport, viewportSize, c.resourceHooks)
	DrawGridDots(screen, c.Viewport, bounds, c.cfg, gridDotColor)

	for _, n := range DrawOrder(c.Graph) {
		if !bounds.Intersects(n.AABB()) {
			continue
		}
		sx, sy := c.Viewport.WorldToScreen(n.Pos.X, n.Pos.Y)
		screenSize := Vec2{X: n.Size.X * c.Viewport.Scale, Y: n.Size.Y * c.Viewport.Scale}
		onScreenPx := screenSize.X
		if screenSize.Y > onScreenPx {
			onScreenPx = screenSize.Y
		}
		lod := LODFor(onScreenPx, c.cfg)
		if c.drawHook == nil {
			continue
		}
		c.drawHook.DrawNode(screen, n, Vec2{X: sx, Y: sy}, screenSize, lod)
	}

	if !handlesSuppressed(c.sm.State()) {
		if c.Selection.Len() > 1 {
			DrawSelectionOverlay(screen, c.Viewport, c.Selection.AABB(c.Graph), c.cfg, selectionStrokeColor)
		}
		if c.sm.State() == StateMarquee {
			DrawMarqueeRect(screen, c.Viewport, c.sm.marqueeRect, selectionStrokeColor)
		}
	}

	c.renderer.ClearDirty()
}

// Layout reports the logical screen size, tracking it so keyboard shortcuts
// that need the viewport size (f/h) stay accurate without a separate
// resize callback. It satisfies ebiten.Game.
func (c *Canvas) Layout(outsideWidth, outsideHeight int) (int, int) {
	c.screenSize = Vec2{X: float64(outsideWidth), Y: float64(outsideHeight)}
	return outsideWidth, outsideHeight
}

func buttonFromEbiten() MouseButton {
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		return MouseMiddle
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		return MouseRight
	default:
		return MouseLeft
	}
}

func readModifiersFromEbiten() Modifiers {
	var mods Modifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

// currentTime is a seam over time.Now so double-click detection stays
// testable without depending on wall-clock time in unit tests that drive
// HandlePointerDown directly.
var currentTime = time.Now
