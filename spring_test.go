package canvas

import "testing"

func TestStepSpringConvergesToTarget(t *testing.T) {
	s := &SpringState{Pos: Vec2{X: 0, Y: 0}}
	target := Vec2{X: 100, Y: -50}
	done := false
	for i := 0; i < 2000 && !done; i++ {
		done = stepSpring(s, target, 180, 13, 1.0/40.0, 0.05)
	}
	if !done {
		t.Fatal("spring did not converge within 2000 ticks")
	}
	if diff := abs(s.Pos.X - target.X); diff > 0.1 {
		t.Errorf("final pos.X = %v, want near %v", s.Pos.X, target.X)
	}
	if diff := abs(s.Pos.Y - target.Y); diff > 0.1 {
		t.Errorf("final pos.Y = %v, want near %v", s.Pos.Y, target.Y)
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func TestStepSpringRetargetMidFlightPreservesVelocity(t *testing.T) {
	s := &SpringState{}
	// Run partway toward the first target.
	for i := 0; i < 5; i++ {
		stepSpring(s, Vec2{X: 100, Y: 0}, 180, 13, 1.0/40.0, 0.05)
	}
	velBefore := s.Vel
	if velBefore == (Vec2{}) {
		t.Fatal("expected non-zero velocity after 5 ticks")
	}
	// Re-target: velocity should carry over (not reset to zero), unlike a
	// duration-based tween which would need to restart.
	stepSpring(s, Vec2{X: 200, Y: 0}, 180, 13, 1.0/40.0, 0.05)
	if s.Vel == velBefore {
		t.Error("velocity should have changed under the new target's force")
	}
}

func TestSpringGroupStepReportsFinished(t *testing.T) {
	g := newSpringGroup(180, 13, 1.0/40.0, 0.05)
	states := map[NodeID]*SpringState{
		"a": {Pos: Vec2{X: 99.99, Y: 0}},
	}
	g.SetTarget("a", Vec2{X: 100, Y: 0})
	var finished []NodeID
	for i := 0; i < 50 && len(finished) == 0; i++ {
		finished = g.Step(states)
	}
	if len(finished) != 1 || finished[0] != "a" {
		t.Errorf("finished = %v, want [a]", finished)
	}
}

func TestSpringGroupSkipsMissingState(t *testing.T) {
	g := newSpringGroup(180, 13, 1.0/40.0, 0.05)
	g.SetTarget("missing", Vec2{X: 1, Y: 1})
	finished := g.Step(map[NodeID]*SpringState{})
	if finished != nil {
		t.Errorf("finished = %v, want nil", finished)
	}
}
