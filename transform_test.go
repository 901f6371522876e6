package canvas

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestNormalizeDegrees(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0}, {360, 0}, {720, 0}, {-90, 270}, {-360, 0}, {45, 45}, {450, 90},
	}
	for _, c := range cases {
		if got := normalizeDegrees(c.in); math.Abs(got-c.want) > epsilon {
			t.Errorf("normalizeDegrees(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestRotatePointZeroIsIdentity(t *testing.T) {
	p := Vec2{X: 10, Y: 20}
	got := rotatePoint(p, Vec2{X: 5, Y: 5}, 0)
	if got != p {
		t.Errorf("rotatePoint with 0 degrees = %v, want %v", got, p)
	}
}

func TestRotatePoint90(t *testing.T) {
	center := Vec2{X: 0, Y: 0}
	p := Vec2{X: 1, Y: 0}
	got := rotatePoint(p, center, 90)
	assertNear(t, "x", got.X, 0)
	assertNear(t, "y", got.Y, 1)
}

func TestRotatePointRoundtrip(t *testing.T) {
	center := Vec2{X: 12, Y: -7}
	p := Vec2{X: 40, Y: 18}
	rotated := rotatePoint(p, center, 37)
	back := rotatePoint(rotated, center, -37)
	assertNear(t, "x", back.X, p.X)
	assertNear(t, "y", back.Y, p.Y)
}

func TestWorldToLocalUnrotatedNoRotation(t *testing.T) {
	n := NewNode(NodeImage, Vec2{X: 0, Y: 0}, Vec2{X: 100, Y: 100})
	p := Vec2{X: 25, Y: 60}
	got := worldToLocalUnrotated(n, p)
	assertNear(t, "x", got.X, p.X)
	assertNear(t, "y", got.Y, p.Y)
}

func TestWorldToLocalUnrotatedUndoesRotation(t *testing.T) {
	n := NewNode(NodeImage, Vec2{X: 0, Y: 0}, Vec2{X: 100, Y: 100})
	n.Rotation = 90
	center := n.Center()
	// A point at the node's right-middle edge in world space, after a 90°
	// clockwise rotation, should map back to the unrotated right-middle edge.
	worldPt := rotatePoint(Vec2{X: 100, Y: 50}, center, 90)
	got := worldToLocalUnrotated(n, worldPt)
	assertNear(t, "x", got.X, 100)
	assertNear(t, "y", got.Y, 50)
}

func TestAngleToDeg(t *testing.T) {
	origin := Vec2{X: 0, Y: 0}
	if got := angleToDeg(Vec2{X: 10, Y: 0}, origin); math.Abs(got-0) > epsilon {
		t.Errorf("east = %v, want 0", got)
	}
	if got := angleToDeg(Vec2{X: 0, Y: 10}, origin); math.Abs(got-90) > epsilon {
		t.Errorf("south = %v, want 90", got)
	}
}

func TestSnapToStep(t *testing.T) {
	if got := snapToStep(44, 45); got != 45 {
		t.Errorf("snapToStep(44,45) = %v, want 45", got)
	}
	if got := snapToStep(22, 45); got != 0 {
		t.Errorf("snapToStep(22,45) = %v, want 0", got)
	}
	if got := snapToStep(-46, 45); got != -45 {
		t.Errorf("snapToStep(-46,45) = %v, want -45", got)
	}
}
