package canvas

import "sort"

// Axis is the auto-align engine's packing axis.
type Axis int

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

// AutoAlign holds the scratch of one shift-drag-on-empty-space gesture. Its
// fields are captured once at gesture start (start, originalClick,
// originals, masterOrder); the commit fields are thereafter mutated only by
// Move (through tryCommitOrSwitch) and by the keyboard's immediate 1/2
// align; the "return to cancel" branch referenced in the source is
// intentionally never implemented here.
type AutoAlign struct {
	cfg Config

	start         Vec2
	originalClick Vec2
	originals     map[NodeID]Vec2
	masterOrder   []NodeID

	committed          bool
	committedAxis      Axis
	committedDirection float64 // +1 or -1 along the committed axis
	commitPoint        Vec2
	hasLeftCircle      bool
	isReorderMode      bool

	springs *SpringGroup
}

// NewAutoAlign captures the one-time gesture scratch from the current
// selection and starts the gesture uncommitted: no axis is chosen until the
// first commit threshold is crossed.
func NewAutoAlign(g *Graph, ids []NodeID, originalClick Vec2, cfg Config) *AutoAlign {
	aabb := g.AABBOf(ids)
	originals := make(map[NodeID]Vec2, len(ids))
	for _, id := range ids {
		if n := g.Find(id); n != nil {
			originals[id] = n.Pos
		}
	}

	dominant := AxisHorizontal
	if aabb.Height > aabb.Width {
		dominant = AxisVertical
	}
	masterOrder := append([]NodeID(nil), ids...)
	sortByAxisCenter(masterOrder, g, dominant)

	return &AutoAlign{
		cfg:           cfg,
		start:         aabb.Center(),
		originalClick: originalClick,
		originals:     originals,
		masterOrder:   masterOrder,
		commitPoint:   originalClick,
		springs:       newSpringGroup(cfg.AutoAlignK, cfg.AutoAlignD, cfg.AutoAlignDT, cfg.SpringDoneEpsilon),
	}
}

func sortByAxisCenter(ids []NodeID, g *Graph, axis Axis) {
	sort.SliceStable(ids, func(i, j int) bool {
		ni, nj := g.Find(ids[i]), g.Find(ids[j])
		if ni == nil || nj == nil {
			return false
		}
		ci, cj := ni.Center(), nj.Center()
		if axis == AxisHorizontal {
			return ci.X < cj.X
		}
		return ci.Y < cj.Y
	})
}

// commitThresholdWorld returns the 40-CSS-px commit/switch threshold
// converted to world units at the given viewport scale.
func (a *AutoAlign) commitThresholdWorld(scale float64) float64 {
	return a.cfg.AutoAlignCommitCSSPx / scale
}

func (a *AutoAlign) homeCircleWorld(scale float64) float64 {
	return a.cfg.AutoAlignHomeCircleCSSPx / scale
}

// Move is called on every pointer move during the gesture. It tracks
// hasLeftCircle, attempts a commit or axis switch against commitPoint, and
// (when committed) recomputes targets and advances the springs. scale is
// the current viewport scale, used to convert the CSS-px thresholds to
// world units.
func (a *AutoAlign) Move(g *Graph, mouse Vec2, scale float64) {
	if dist(mouse, a.originalClick) > a.homeCircleWorld(scale) {
		a.hasLeftCircle = true
	}

	a.tryCommitOrSwitch(g, mouse, scale)

	if a.committed {
		targets := a.computeTargets(g)
		for id, t := range targets {
			a.springs.SetTarget(id, t)
		}
	}
}

func (a *AutoAlign) tryCommitOrSwitch(g *Graph, mouse Vec2, scale float64) {
	if a.committed && !a.hasLeftCircle {
		// Axis switching is gated behind leaving the home circle at least
		// once; before that only the very first commit may fire.
		return
	}

	delta := mouse.Sub(a.commitPoint)
	threshold := a.commitThresholdWorld(scale)
	ax, ay := absF(delta.X), absF(delta.Y)
	if ax <= threshold && ay <= threshold {
		return
	}

	var axis Axis
	var direction float64
	if ax >= ay {
		axis = AxisHorizontal
		direction = signOf(delta.X)
	} else {
		axis = AxisVertical
		direction = signOf(delta.Y)
	}

	alreadyAligned := a.isAlignedOn(g, axis)
	reorder := alreadyAligned && a.committed && a.committedAxis == axis

	a.committed = true
	a.committedAxis = axis
	a.committedDirection = direction
	a.commitPoint = mouse
	a.isReorderMode = reorder
	// A fresh commit on a previously-uncommitted gesture, or on a newly
	// chosen axis, always starts un-reordered.
	if !alreadyAligned {
		a.isReorderMode = false
	}
}

// isAlignedOn reports whether the selection's current positions already
// sit on a single coordinate line along axis's cross dimension, within 10
// world-units of the first node — the reorder-detection test.
func (a *AutoAlign) isAlignedOn(g *Graph, axis Axis) bool {
	if len(a.masterOrder) == 0 {
		return false
	}
	var first float64
	for i, id := range a.masterOrder {
		n := g.Find(id)
		if n == nil {
			continue
		}
		c := n.Center()
		cross := c.Y
		if axis == AxisVertical {
			cross = c.X
		}
		if i == 0 {
			first = cross
			continue
		}
		if absF(cross-first) > a.cfg.ReorderAlignToleranceWorld {
			return false
		}
	}
	return true
}

// computeTargets packs masterOrder (reversed under isReorderMode) along the
// committed axis with a 20-world-unit gap, centered on start; the
// cross-axis coordinate is the mean of originals' cross-axis values (the
// pos captured once at gesture start, not each node's live center — the
// cross coordinate must not drift as a gesture's own targets feed back into
// node positions mid-animation).
func (a *AutoAlign) computeTargets(g *Graph) map[NodeID]Vec2 {
	order := append([]NodeID(nil), a.masterOrder...)
	if a.isReorderMode {
		for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}
	}

	var crossSum float64
	count := 0
	sizes := make(map[NodeID]Vec2, len(order))
	for _, id := range order {
		n := g.Find(id)
		if n == nil {
			continue
		}
		sizes[id] = n.Size
		count++
		orig, ok := a.originals[id]
		if !ok {
			orig = n.Pos
		}
		if a.committedAxis == AxisHorizontal {
			crossSum += orig.Y
		} else {
			crossSum += orig.X
		}
	}
	if count == 0 {
		return nil
	}
	cross := crossSum / float64(count)

	var total float64
	for i, id := range order {
		sz, ok := sizes[id]
		if !ok {
			continue
		}
		along := sz.X
		if a.committedAxis == AxisVertical {
			along = sz.Y
		}
		total += along
		if i < len(order)-1 {
			total += a.cfg.AutoAlignMargin
		}
	}

	startAlong := a.start.X
	if a.committedAxis == AxisVertical {
		startAlong = a.start.Y
	}
	cursor := startAlong - total/2

	targets := make(map[NodeID]Vec2, len(order))
	for _, id := range order {
		sz, ok := sizes[id]
		if !ok {
			continue
		}
		along := sz.X
		if a.committedAxis == AxisVertical {
			along = sz.Y
		}
		center := cursor + along/2
		if a.committedAxis == AxisHorizontal {
			targets[id] = Vec2{X: center, Y: cross}
		} else {
			targets[id] = Vec2{X: cross, Y: center}
		}
		cursor += along + a.cfg.AutoAlignMargin
	}
	return targets
}

// Step advances the gesture's spring animation one tick, lazily seeding
// spring state for any node that doesn't have one yet. Returns ids that
// finished this tick.
func (a *AutoAlign) Step(states map[NodeID]*SpringState, nodePos func(NodeID) Vec2) []NodeID {
	for id := range a.springs.Targets() {
		if _, ok := states[id]; !ok {
			states[id] = &SpringState{Pos: nodePos(id)}
		}
	}
	return a.springs.Step(states)
}

// Committed reports whether any axis has been committed yet (targets are
// only meaningful once true).
func (a *AutoAlign) Committed() bool { return a.committed }

// Targets exposes the live per-node target map, used by the render pipeline
// to draw intermediate frames and by the state machine to snap on a
// competing mouse-down.
func (a *AutoAlign) Targets() map[NodeID]Vec2 { return a.springs.Targets() }

func absF(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func signOf(f float64) float64 {
	if f < 0 {
		return -1
	}
	return 1
}
