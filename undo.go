package canvas

// NodeSnapshot is the serializable record of one node at a commit boundary.
// Image/video nodes store only Hash/Filename inside Properties (never pixel
// payloads) to keep snapshots bounded, per §4.8.
type NodeSnapshot struct {
	Type        NodeType
	Pos         Vec2
	Size        Vec2
	AspectRatio float64
	Rotation    float64
	Properties  NodeProperties
	HideTitle   bool
	Title       string
	IsGroupBox  bool
	// Contained holds, only when IsGroupBox, the snapshot indices (positions
	// within the owning Snapshot.Nodes) of this group box's member nodes.
	// NodeIDs aren't stable across a restore (RestoreGraph allocates fresh
	// ones every time), so containment is recorded as a reference into the
	// snapshot itself and remapped through the restore's idRemap.
	Contained []int
}

// Snapshot is one undo/redo entry: the whole graph's node order and
// geometry at a commit boundary. Viewport offset/scale are deliberately
// excluded — undo must never teleport the camera (§6).
type Snapshot struct {
	Nodes []NodeSnapshot
}

// SnapshotGraph captures g's current state in z-order.
func SnapshotGraph(g *Graph) Snapshot {
	nodes := g.Nodes()
	indexByID := make(map[NodeID]int, len(nodes))
	for i, n := range nodes {
		indexByID[n.ID] = i
	}
	snap := Snapshot{Nodes: make([]NodeSnapshot, len(nodes))}
	for i, n := range nodes {
		ns := NodeSnapshot{
			Type:        n.Type,
			Pos:         n.Pos,
			Size:        n.Size,
			AspectRatio: n.AspectRatio,
			Rotation:    n.Rotation,
			Properties:  n.Properties,
			HideTitle:   n.HideTitle,
			Title:       n.Title,
			IsGroupBox:  n.Type == NodeGroupBox,
		}
		if ns.IsGroupBox {
			for _, memberID := range containedIDs(n) {
				if idx, ok := indexByID[memberID]; ok {
					ns.Contained = append(ns.Contained, idx)
				}
			}
		}
		snap.Nodes[i] = ns
	}
	return snap
}

// RestoreGraph rebuilds g from snap in place: existing nodes are discarded
// (fresh ids are allocated — undo does not attempt to preserve identity
// across a restore, since nothing outside the graph/selection holds onto a
// NodeID across a commit boundary). Unknown node types are skipped and
// logged rather than failing the whole restore.
func RestoreGraph(g *Graph, snap Snapshot) {
	for _, id := range nodeIDsOf(g) {
		g.Remove(id)
	}
	idRemap := make(map[int]NodeID, len(snap.Nodes))
	for i, ns := range snap.Nodes {
		if !isKnownType(ns.Type) {
			logWarn("skipping unknown node type %v during restore", ns.Type)
			continue
		}
		n := NewNode(ns.Type, ns.Pos, ns.Size)
		n.AspectRatio = ns.AspectRatio
		n.Rotation = ns.Rotation
		n.Properties = ns.Properties
		n.HideTitle = ns.HideTitle
		n.Title = ns.Title
		g.Insert(n)
		idRemap[i] = n.ID
	}
	// Re-link group box containment using the freshly allocated ids.
	for i, ns := range snap.Nodes {
		if !ns.IsGroupBox {
			continue
		}
		gbID, ok := idRemap[i]
		if !ok {
			continue
		}
		gb := g.Find(gbID)
		if gb == nil {
			continue
		}
		gb.ContainedNodeIDs = make(map[NodeID]struct{}, len(ns.Contained))
		for _, memberIdx := range ns.Contained {
			if memberID, ok := idRemap[memberIdx]; ok {
				gb.ContainedNodeIDs[memberID] = struct{}{}
			}
		}
	}
}

func nodeIDsOf(g *Graph) []NodeID {
	nodes := g.Nodes()
	out := make([]NodeID, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

// UndoStack is a depth-bounded history of graph snapshots. Push clears the
// redo stack, per the "redo cleared on new commit" rule.
type UndoStack struct {
	depth int
	past  []Snapshot
	future []Snapshot
}

// NewUndoStack returns an empty stack bounded at depth entries.
func NewUndoStack(depth int) *UndoStack {
	return &UndoStack{depth: depth}
}

// Push records snap as the new top of the undo history and clears redo.
// When the stack exceeds depth, the oldest entry is dropped.
func (u *UndoStack) Push(snap Snapshot) {
	u.past = append(u.past, snap)
	if len(u.past) > u.depth {
		u.past = u.past[len(u.past)-u.depth:]
	}
	u.future = nil
}

// CanUndo/CanRedo report whether Undo/Redo would succeed.
func (u *UndoStack) CanUndo() bool { return len(u.past) > 1 }
func (u *UndoStack) CanRedo() bool { return len(u.future) > 0 }

// Past returns the stack's undo history, oldest first, for persistence.
// The returned slice must not be mutated by the caller.
func (u *UndoStack) Past() []Snapshot { return u.past }

// Future returns the stack's redo history, most-recently-undone last, for
// persistence. The returned slice must not be mutated by the caller.
func (u *UndoStack) Future() []Snapshot { return u.future }

// RestoreUndoStack rebuilds a stack bounded at depth from previously
// persisted past/future slices (e.g. loaded via UndoStore).
func RestoreUndoStack(depth int, past, future []Snapshot) *UndoStack {
	return &UndoStack{depth: depth, past: past, future: future}
}

// Undo moves the current top onto the redo stack and returns the snapshot
// beneath it (the state to restore). The very first pushed snapshot is the
// floor: Undo is a no-op once only it remains.
func (u *UndoStack) Undo() (Snapshot, bool) {
	if !u.CanUndo() {
		return Snapshot{}, false
	}
	top := u.past[len(u.past)-1]
	u.past = u.past[:len(u.past)-1]
	u.future = append(u.future, top)
	return u.past[len(u.past)-1], true
}

// Redo pops the most recently undone snapshot back onto the past stack and
// returns it.
func (u *UndoStack) Redo() (Snapshot, bool) {
	if !u.CanRedo() {
		return Snapshot{}, false
	}
	top := u.future[len(u.future)-1]
	u.future = u.future[:len(u.future)-1]
	u.past = append(u.past, top)
	return top, true
}
