package canvas

import "math"

// normalizeDegrees canonicalizes an angle to [0, 360).
func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// rotatePoint rotates p by degrees around center and returns the result.
// Degrees follow the node's clockwise-positive screen convention (Y down).
func rotatePoint(p, center Vec2, degrees float64) Vec2 {
	if degrees == 0 {
		return p
	}
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	dx := p.X - center.X
	dy := p.Y - center.Y
	return Vec2{
		X: center.X + dx*cos - dy*sin,
		Y: center.Y + dx*sin + dy*cos,
	}
}

// worldToLocalUnrotated maps a world-space point into a node's unrotated
// local frame: the inverse of rotating the node's AABB by its Rotation
// around its center. Hit-testing a rotated node reduces to rotating the
// query point by -Rotation and then doing a plain axis-aligned containment
// check against AABB(), following the same "bring the query into local
// space" idea as an affine-matrix inverse, without needing a full matrix
// here since a Node has no independent scale or skew.
func worldToLocalUnrotated(n *Node, p Vec2) Vec2 {
	return rotatePoint(p, n.Center(), -n.Rotation)
}

// angleToDeg returns the clockwise angle in degrees from origin to p,
// matching atan2(dy, dx) converted to degrees with no canonicalization
// (callers subtract two angleToDeg results to get a delta, for which
// canonicalizing each operand first would be wrong).
func angleToDeg(p, origin Vec2) float64 {
	return math.Atan2(p.Y-origin.Y, p.X-origin.X) * 180 / math.Pi
}

// snapToStep rounds deg to the nearest multiple of step.
func snapToStep(deg, step float64) float64 {
	return math.Round(deg/step) * step
}
