package canvas

import "math"

// ResizeMode selects how a resize handle drag maps mouse movement to size,
// chosen from the held modifiers per the interaction state machine.
type ResizeMode uint8

const (
	ResizeUniform         ResizeMode = iota // default: preserve aspect
	ResizeNonUniform                        // Shift: independent width/height
	ResizeMatchAnchorW                      // Ctrl: match reference width, preserve own aspect
	ResizeMatchAnchorBoth                   // Ctrl+Shift: match reference width AND height
)

// ResizeModeFromModifiers maps held modifiers to a ResizeMode per §4.2.
func ResizeModeFromModifiers(mods Modifiers) ResizeMode {
	switch {
	case mods.Has(ModCtrl) && mods.Has(ModShift):
		return ResizeMatchAnchorBoth
	case mods.Has(ModCtrl):
		return ResizeMatchAnchorW
	case mods.Has(ModShift):
		return ResizeNonUniform
	default:
		return ResizeUniform
	}
}

// NodeResizeInitial captures a node's geometry at resize-gesture mouse-down,
// the basis every resize computation in this file is driven from.
type NodeResizeInitial struct {
	Pos    Vec2
	Size   Vec2
	Aspect float64
}

func captureInitial(n *Node) NodeResizeInitial {
	return NodeResizeInitial{Pos: n.Pos, Size: n.Size, Aspect: n.AspectRatio}
}

// CaptureMultiResizeInitial snapshots every selected node's geometry plus
// the selection's union AABB, the scratch a resize-multi-bbox or
// resize-multi-handle gesture carries for its lifetime.
func CaptureMultiResizeInitial(g *Graph, ids []NodeID) (aabb Rect, nodes map[NodeID]NodeResizeInitial) {
	nodes = make(map[NodeID]NodeResizeInitial, len(ids))
	for _, id := range ids {
		if n := g.Find(id); n != nil {
			nodes[id] = captureInitial(n)
		}
	}
	aabb = g.AABBOf(ids)
	return aabb, nodes
}

// ResizeSingle computes the new size for a single-node resize handle drag.
// anchor is the node's top-left (the fixed corner opposite the dragged
// handle); mouse is the current pointer in world space. Uniform mode
// preserves init.Aspect exactly; Shift releases it. Size floors at
// cfg.MinNodeSize on both axes, with uniform mode scaling both axes
// together so the floor never distorts the preserved aspect.
func ResizeSingle(init NodeResizeInitial, mouse Vec2, mods Modifiers, cfg Config) (newSize Vec2, newAspect float64) {
	trialW := mouse.X - init.Pos.X
	trialH := mouse.Y - init.Pos.Y

	if mods.Has(ModShift) {
		w := math.Max(trialW, cfg.MinNodeSize)
		h := math.Max(trialH, cfg.MinNodeSize)
		return Vec2{X: w, Y: h}, aspectOf(Vec2{X: w, Y: h})
	}

	scale := math.Max(trialW/init.Size.X, trialH/init.Size.Y)
	minScale := math.Max(cfg.MinNodeSize/init.Size.X, cfg.MinNodeSize/init.Size.Y)
	scale = math.Max(scale, minScale)
	w := init.Size.X * scale
	h := init.Size.Y * scale
	return Vec2{X: w, Y: h}, init.Aspect
}

// RestoreOriginalAspect implements the double-click-on-handle behavior:
// keeps the node's current width and recomputes height from
// node.OriginalAspect.
func RestoreOriginalAspect(n *Node) {
	if n.OriginalAspect == 0 {
		return
	}
	n.Size.Y = n.Size.X / n.OriginalAspect
	n.AspectRatio = n.OriginalAspect
}

// ComputeBBoxResize computes new per-node pos/size for a resize-multi-bbox
// gesture: one handle at the selection AABB's bottom-right corner, anchored
// at its top-left. Default mode scales uniformly (min(sx,sy) floored at
// 0.1); Shift allows independent sx/sy (each still floored at 0.1). Trial
// dimensions are floored at 10% of the original AABB extent before the
// scale factors are derived, so a drag past the anchor cannot invert the
// selection.
func ComputeBBoxResize(aabb Rect, nodes map[NodeID]NodeResizeInitial, mouse Vec2, mods Modifiers, cfg Config) map[NodeID]NodeGeometry {
	anchor := Vec2{X: aabb.X, Y: aabb.Y}
	trialW := math.Max(mouse.X-anchor.X, aabb.Width*0.1)
	trialH := math.Max(mouse.Y-anchor.Y, aabb.Height*0.1)

	sx := trialW / aabb.Width
	sy := trialH / aabb.Height

	if mods.Has(ModShift) {
		sx = math.Max(sx, cfg.MinUniformScale)
		sy = math.Max(sy, cfg.MinUniformScale)
	} else {
		scale := math.Max(math.Min(sx, sy), cfg.MinUniformScale)
		sx, sy = scale, scale
	}

	out := make(map[NodeID]NodeGeometry, len(nodes))
	for id, init := range nodes {
		offset := init.Pos.Sub(anchor)
		newPos := anchor.Add(Vec2{X: offset.X * sx, Y: offset.Y * sy})
		newSize := Vec2{X: init.Size.X * sx, Y: init.Size.Y * sy}
		out[id] = NodeGeometry{Pos: newPos, Size: newSize, Aspect: aspectOf(newSize)}
	}
	return out
}

// NodeGeometry is the result of a resize computation: the new position,
// size, and the aspect ratio that must be written back (the invariant
// AspectRatio = Size.X/Size.Y requires every resize path to update it).
type NodeGeometry struct {
	Pos    Vec2
	Size   Vec2
	Aspect float64
}

// ComputeMultiHandleResize computes new sizes for a resize-multi-handle
// gesture: the dragged node (refID) supplies the reference width/height per
// §4.5; every selected node (including the reference) is resized by the
// mode's rule. Node positions (top-left) are unchanged by this gesture —
// only Size (and therefore AspectRatio) moves.
func ComputeMultiHandleResize(nodes map[NodeID]NodeResizeInitial, refID NodeID, mouse Vec2, mods Modifiers, cfg Config) map[NodeID]NodeGeometry {
	ref, ok := nodes[refID]
	if !ok {
		return nil
	}
	mode := ResizeModeFromModifiers(mods)
	trialW := mouse.X - ref.Pos.X
	trialH := mouse.Y - ref.Pos.Y

	out := make(map[NodeID]NodeGeometry, len(nodes))

	switch mode {
	case ResizeUniform:
		scale := math.Max(trialW/ref.Size.X, trialH/ref.Size.Y)
		minScale := math.Max(cfg.MinNodeSize/ref.Size.X, cfg.MinNodeSize/ref.Size.Y)
		scale = math.Max(scale, minScale)
		for id, init := range nodes {
			size := Vec2{X: init.Size.X * scale, Y: init.Size.Y * scale}
			out[id] = NodeGeometry{Pos: init.Pos, Size: size, Aspect: init.Aspect}
		}

	case ResizeNonUniform:
		sx := math.Max(trialW/ref.Size.X, cfg.MinNodeSize/ref.Size.X)
		sy := math.Max(trialH/ref.Size.Y, cfg.MinNodeSize/ref.Size.Y)
		for id, init := range nodes {
			size := Vec2{X: math.Max(init.Size.X*sx, cfg.MinNodeSize), Y: math.Max(init.Size.Y*sy, cfg.MinNodeSize)}
			out[id] = NodeGeometry{Pos: init.Pos, Size: size, Aspect: aspectOf(size)}
		}

	case ResizeMatchAnchorW:
		refW := math.Max(trialW, cfg.MinNodeSize)
		for id, init := range nodes {
			h := math.Max(refW/init.Aspect, cfg.MinNodeSize)
			size := Vec2{X: refW, Y: h}
			out[id] = NodeGeometry{Pos: init.Pos, Size: size, Aspect: init.Aspect}
		}

	case ResizeMatchAnchorBoth:
		refW := math.Max(trialW, cfg.MinNodeSize)
		refH := math.Max(trialH, cfg.MinNodeSize)
		size := Vec2{X: refW, Y: refH}
		aspect := aspectOf(size)
		for id, init := range nodes {
			out[id] = NodeGeometry{Pos: init.Pos, Size: size, Aspect: aspect}
		}
	}

	return out
}
