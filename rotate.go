package canvas

// RotationSnapDegrees is the step Shift-constrained rotation snaps to. Not
// itemized as a named threshold in the config; fixed here since every
// rotation path references the same step.
const RotationSnapDegrees = 45.0

// RotateSingleInitial captures what a rotate-single gesture needs at
// mouse-down: the node's center (its pivot) and its rotation at that
// instant.
type RotateSingleInitial struct {
	Center      Vec2
	InitialDeg  float64
	InitialMous float64 // angleToDeg(mouseAtDown, Center)
}

// CaptureRotateSingle snapshots the rotation scratch for a single-node
// rotate-handle drag.
func CaptureRotateSingle(n *Node, mouseAtDown Vec2) RotateSingleInitial {
	center := n.Center()
	return RotateSingleInitial{
		Center:      center,
		InitialDeg:  n.Rotation,
		InitialMous: angleToDeg(mouseAtDown, center),
	}
}

// RotateSingle computes n's new rotation as the pointer moves. Shift snaps
// the result to the nearest RotationSnapDegrees multiple.
func RotateSingle(init RotateSingleInitial, mouse Vec2, mods Modifiers) float64 {
	delta := angleToDeg(mouse, init.Center) - init.InitialMous
	rot := normalizeDegrees(init.InitialDeg + delta)
	if mods.Has(ModShift) {
		rot = snapToStep(rot, RotationSnapDegrees)
	}
	return rot
}

// RotateGroupInitial captures the per-node scratch a group rotation gesture
// (rigid or individual) needs: each participant's center and rotation at
// mouse-down, plus the pivot the gesture rotates around (selection AABB
// center for rigid, the anchor node's center for individual) and the
// pointer's initial angle around that pivot.
type RotateGroupInitial struct {
	Pivot       Vec2
	InitialMous float64
	Nodes       map[NodeID]RotateSingleInitial // each node's own center/rotation
}

// CaptureRotateGroupRigid snapshots scratch for rotate-group-rigid: pivot is
// the selection's AABB center.
func CaptureRotateGroupRigid(g *Graph, ids []NodeID, mouseAtDown Vec2) RotateGroupInitial {
	pivot := g.AABBOf(ids).Center()
	nodes := make(map[NodeID]RotateSingleInitial, len(ids))
	for _, id := range ids {
		if n := g.Find(id); n != nil {
			nodes[id] = RotateSingleInitial{Center: n.Center(), InitialDeg: n.Rotation}
		}
	}
	return RotateGroupInitial{Pivot: pivot, InitialMous: angleToDeg(mouseAtDown, pivot), Nodes: nodes}
}

// CaptureRotateGroupIndividual snapshots scratch for rotate-group-individual:
// pivot is the anchor node's own center (the handle that was dragged), used
// only to compute the shared delta — each node then spins about its own
// center, not the anchor's.
func CaptureRotateGroupIndividual(g *Graph, ids []NodeID, anchor NodeID, mouseAtDown Vec2) RotateGroupInitial {
	anchorNode := g.Find(anchor)
	var pivot Vec2
	if anchorNode != nil {
		pivot = anchorNode.Center()
	}
	nodes := make(map[NodeID]RotateSingleInitial, len(ids))
	for _, id := range ids {
		if n := g.Find(id); n != nil {
			nodes[id] = RotateSingleInitial{Center: n.Center(), InitialDeg: n.Rotation}
		}
	}
	return RotateGroupInitial{Pivot: pivot, InitialMous: angleToDeg(mouseAtDown, pivot), Nodes: nodes}
}

// RotateGroupRigidResult is the new center and rotation computed for one
// node under a rigid group rotation.
type RotateGroupRigidResult struct {
	Center Vec2
	Rotation float64
}

// ComputeRotateGroupRigid rotates every participant rigidly around init.Pivot:
// each node's center orbits the pivot by delta, and each node's own rotation
// increases by the same delta. Shift snaps delta so that the group, taken as
// a whole, lands on a RotationSnapDegrees multiple (using refID as the
// reference node whose resulting rotation must land on the grid).
func ComputeRotateGroupRigid(init RotateGroupInitial, refID NodeID, mouse Vec2, mods Modifiers) map[NodeID]RotateGroupRigidResult {
	delta := angleToDeg(mouse, init.Pivot) - init.InitialMous
	if mods.Has(ModShift) {
		if ref, ok := init.Nodes[refID]; ok {
			wantRefRot := snapToStep(ref.InitialDeg+delta, RotationSnapDegrees)
			delta = wantRefRot - ref.InitialDeg
		} else {
			delta = snapToStep(delta, RotationSnapDegrees)
		}
	}

	out := make(map[NodeID]RotateGroupRigidResult, len(init.Nodes))
	for id, n := range init.Nodes {
		center := rotatePoint(n.Center, init.Pivot, delta)
		rot := normalizeDegrees(n.InitialDeg + delta)
		out[id] = RotateGroupRigidResult{Center: center, Rotation: rot}
	}
	return out
}

// ComputeRotateGroupIndividual spins every participant about its own center
// by the same delta (no orbiting). Shift snaps delta using the anchor
// node's initial rotation as the reference that must land on the grid.
func ComputeRotateGroupIndividual(init RotateGroupInitial, anchor NodeID, mouse Vec2, mods Modifiers) map[NodeID]float64 {
	delta := angleToDeg(mouse, init.Pivot) - init.InitialMous
	if mods.Has(ModShift) {
		if a, ok := init.Nodes[anchor]; ok {
			wantAnchorRot := snapToStep(a.InitialDeg+delta, RotationSnapDegrees)
			delta = wantAnchorRot - a.InitialDeg
		} else {
			delta = snapToStep(delta, RotationSnapDegrees)
		}
	}

	out := make(map[NodeID]float64, len(init.Nodes))
	for id, n := range init.Nodes {
		out[id] = normalizeDegrees(n.InitialDeg + delta)
	}
	return out
}

// ZeroRotation implements the double-click-on-rotate-handle behavior: sets
// n's rotation to zero without moving its center.
func ZeroRotation(n *Node) {
	n.Rotation = 0
}
