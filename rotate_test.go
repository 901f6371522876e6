package canvas

import "testing"

func TestRotateSingleNoModifier(t *testing.T) {
	n := NewNode(NodeImage, Vec2{X: -50, Y: -50}, Vec2{X: 100, Y: 100})
	init := CaptureRotateSingle(n, Vec2{X: 50, Y: 0}) // east of center, angle 0
	got := RotateSingle(init, Vec2{X: 0, Y: 50}, 0)   // south of center, angle 90
	if diff := got - 90; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("rotation = %v, want ~90", got)
	}
}

func TestRotateSingleShiftSnaps(t *testing.T) {
	n := NewNode(NodeImage, Vec2{X: -50, Y: -50}, Vec2{X: 100, Y: 100})
	init := CaptureRotateSingle(n, Vec2{X: 50, Y: 0})
	got := RotateSingle(init, Vec2{X: -10, Y: 49}, ModShift)
	rem := got
	for rem >= RotationSnapDegrees {
		rem -= RotationSnapDegrees
	}
	if rem > 1e-6 && (RotationSnapDegrees-rem) > 1e-6 {
		t.Errorf("rotation %v not on a %v-degree step", got, RotationSnapDegrees)
	}
}

func TestRotateSingleShiftSnapsToFortyFiveDegreeGrid(t *testing.T) {
	n := NewNode(NodeImage, Vec2{X: -50, Y: -50}, Vec2{X: 100, Y: 100})
	init := CaptureRotateSingle(n, Vec2{X: 50, Y: 0}) // east of center, angle 0

	// Mouse at a 20-degree raw delta from the initial angle: nearest 45-degree
	// multiple is 0 (distance 20, vs. 25 to 45), but nearest 15-degree
	// multiple would be 15 (distance 5) -- the two grids disagree here, so
	// this reproduces spec §4.2/§4.6's literal 45-degree snap rather than
	// merely checking the result lands on whatever step the constant holds.
	mouse := Vec2{X: 50 * 0.9396926, Y: 50 * 0.3420201}
	got := RotateSingle(init, mouse, ModShift)

	if diff := got - 0; diff > 1e-3 || diff < -1e-3 {
		t.Errorf("rotation = %v, want 0 (nearest 45-degree multiple to a 20-degree raw delta)", got)
	}
}

func TestComputeRotateGroupRigidOrbitsAroundPivot(t *testing.T) {
	g := NewGraph()
	a := NewNode(NodeImage, Vec2{X: -50, Y: -50}, Vec2{X: 100, Y: 100}) // center (0,0)
	b := NewNode(NodeImage, Vec2{X: 50, Y: -50}, Vec2{X: 100, Y: 100})  // center (100,0)
	g.Insert(a)
	g.Insert(b)
	ids := []NodeID{a.ID, b.ID}

	pivot := g.AABBOf(ids).Center() // (50, 0)
	init := CaptureRotateGroupRigid(g, ids, Vec2{X: pivot.X + 50, Y: pivot.Y})
	out := ComputeRotateGroupRigid(init, a.ID, Vec2{X: pivot.X, Y: pivot.Y + 50}, 0)

	// 90-degree orbit: a's center (0,0) should end up at world (50,-50),
	// i.e. (0,-50) relative to pivot (50,0) -- check rotation updated too.
	if diff := out[a.ID].Rotation - 90; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("a rotation = %v, want ~90", out[a.ID].Rotation)
	}
	if diff := out[b.ID].Rotation - 90; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("b rotation = %v, want ~90", out[b.ID].Rotation)
	}
	// b orbits 90 degrees around pivot (50,0): (100,0) -> (50,50).
	if diff := out[b.ID].Center.X - 50; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("b center.X = %v, want ~50", out[b.ID].Center.X)
	}
	if diff := out[b.ID].Center.Y - 50; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("b center.Y = %v, want ~50", out[b.ID].Center.Y)
	}
}

func TestComputeRotateGroupIndividualDoesNotOrbit(t *testing.T) {
	g := NewGraph()
	a := NewNode(NodeImage, Vec2{X: -50, Y: -50}, Vec2{X: 100, Y: 100})
	b := NewNode(NodeImage, Vec2{X: 50, Y: -50}, Vec2{X: 100, Y: 100})
	g.Insert(a)
	g.Insert(b)
	ids := []NodeID{a.ID, b.ID}

	init := CaptureRotateGroupIndividual(g, ids, a.ID, Vec2{X: 50, Y: 0})
	out := ComputeRotateGroupIndividual(init, a.ID, Vec2{X: 0, Y: 50}, 0)

	if diff := out[a.ID] - 90; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("a rotation = %v, want ~90", out[a.ID])
	}
	if diff := out[b.ID] - 90; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("b rotation = %v, want ~90 (same delta, no orbit)", out[b.ID])
	}
}

func TestZeroRotation(t *testing.T) {
	n := NewNode(NodeImage, Vec2{X: 0, Y: 0}, Vec2{X: 100, Y: 100})
	n.Rotation = 123
	ZeroRotation(n)
	if n.Rotation != 0 {
		t.Errorf("rotation = %v, want 0", n.Rotation)
	}
}
