package canvas

import "math"

// rotateHandleOffsetWorld is the world-space distance above a node's
// unrotated top edge, at its horizontal midpoint, where its rotation handle
// sits. Not a spec-mandated number — only the hit *radii* are specified —
// chosen to sit clear of a resize handle at any node size above the
// minimum.
const rotateHandleOffsetWorld = 30

// titleBarHeightWorld is the world-space height of a groupbox's title-bar
// drag strip.
const titleBarHeightWorld = 24

// HitNode reports whether worldPt lies within n's rotated bounds.
func HitNode(n *Node, worldPt Vec2) bool {
	local := worldToLocalUnrotated(n, worldPt)
	return n.AABB().Contains(local.X, local.Y)
}

// HitTitleBar reports whether worldPt lies within a groupbox's title-bar
// strip (the top titleBarHeightWorld of its rotated bounds). Always false
// for non-groupbox nodes.
func HitTitleBar(n *Node, worldPt Vec2) bool {
	if !n.HasTitleBar() {
		return false
	}
	local := worldToLocalUnrotated(n, worldPt)
	bar := Rect{X: n.Pos.X, Y: n.Pos.Y, Width: n.Size.X, Height: titleBarHeightWorld}
	return bar.Contains(local.X, local.Y)
}

// HitResizeHandle reports whether worldPt lies within radiusWorld of n's
// bottom-right corner, evaluated in n's unrotated local frame so the handle
// rotates with the node. radiusWorld is the screen-pixel handle radius
// already divided by viewport scale by the caller — thresholds are always
// expressed and compared in world units, never stored in screen units.
func HitResizeHandle(n *Node, worldPt Vec2, radiusWorld float64) bool {
	local := worldToLocalUnrotated(n, worldPt)
	corner := Vec2{X: n.Pos.X + n.Size.X, Y: n.Pos.Y + n.Size.Y}
	return dist(local, corner) <= radiusWorld
}

// HitRotateHandle reports whether worldPt lies within radiusWorld of n's
// rotation handle, positioned above the midpoint of its (rotated) top edge.
func HitRotateHandle(n *Node, worldPt Vec2, radiusWorld float64) bool {
	local := worldToLocalUnrotated(n, worldPt)
	handle := Vec2{X: n.Pos.X + n.Size.X/2, Y: n.Pos.Y - rotateHandleOffsetWorld}
	return dist(local, handle) <= radiusWorld
}

// HitSelectionBoxHandle reports whether worldPt lies within radiusWorld of
// aabb's bottom-right corner, used for the multi-selection bounding-box
// resize handle (which has no independent rotation — the selection AABB is
// always axis-aligned).
func HitSelectionBoxHandle(aabb Rect, worldPt Vec2, radiusWorld float64) bool {
	corner := Vec2{X: aabb.X + aabb.Width, Y: aabb.Y + aabb.Height}
	return dist(worldPt, corner) <= radiusWorld
}

// HitSelectionRotateHandle reports whether worldPt lies within radiusWorld
// of the group rotation handle, positioned above the midpoint of the
// (axis-aligned) selection AABB's top edge.
func HitSelectionRotateHandle(aabb Rect, worldPt Vec2, radiusWorld float64) bool {
	handle := Vec2{X: aabb.X + aabb.Width/2, Y: aabb.Y - rotateHandleOffsetWorld}
	return dist(worldPt, handle) <= radiusWorld
}

func dist(a, b Vec2) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// TopmostHitAt performs reverse painter-order hit-testing: it walks g's
// nodes from topmost (last) to bottommost (first) and returns the first one
// worldPt lies within. Returns nil if none match.
func TopmostHitAt(g *Graph, worldPt Vec2) *Node {
	nodes := g.Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		if HitNode(nodes[i], worldPt) {
			return nodes[i]
		}
	}
	return nil
}
