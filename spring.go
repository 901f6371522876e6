package canvas

import "math"

// stepSpring advances a critically-damped mass-spring-damper integrator one
// tick toward target, in place. The force model is the standard
// acceleration = k*(target-pos) - d*vel, semi-implicit Euler integrated:
//
//	vel += (k*(target-pos) - d*vel) * dt
//	pos += vel * dt
//
// This is the one hand-rolled piece of animation math in the module: unlike
// a fixed-duration eased tween, the spring can be re-targeted every tick
// (the align engines move `target` as the user's mouse moves) while keeping
// its existing velocity, which a duration-based tween has no way to express.
//
// Returns true once both the position error and the velocity magnitude on
// each axis are below eps — the per-node completion test used by the
// auto-align and grid-align animation steps.
func stepSpring(s *SpringState, target Vec2, k, d, dt, eps float64) bool {
	ax := k*(target.X-s.Pos.X) - d*s.Vel.X
	ay := k*(target.Y-s.Pos.Y) - d*s.Vel.Y
	s.Vel.X += ax * dt
	s.Vel.Y += ay * dt
	s.Pos.X += s.Vel.X * dt
	s.Pos.Y += s.Vel.Y * dt

	errX := math.Abs(target.X - s.Pos.X)
	errY := math.Abs(target.Y - s.Pos.Y)
	return errX < eps && errY < eps && math.Abs(s.Vel.X) < eps && math.Abs(s.Vel.Y) < eps
}

// SpringGroup drives a set of nodes' spring scratch toward per-node targets.
// Auto-align and grid-align each own one SpringGroup for the duration of
// their gesture; it is discarded (not reset) when the gesture ends, per the
// animation-scratch-as-variant design guidance.
type SpringGroup struct {
	targets map[NodeID]Vec2
	k, d, dt, eps float64
}

// newSpringGroup returns a group with the given spring constants.
func newSpringGroup(k, d, dt, eps float64) *SpringGroup {
	return &SpringGroup{targets: make(map[NodeID]Vec2), k: k, d: d, dt: dt, eps: eps}
}

// SetTarget sets or updates id's target. It does not create spring state:
// the caller adds id's entry to the states map it later passes to Step.
func (g *SpringGroup) SetTarget(id NodeID, target Vec2) {
	g.targets[id] = target
}

// Targets returns the live target map. Used by tests and by the commit path
// to know which ids are still animating.
func (g *SpringGroup) Targets() map[NodeID]Vec2 {
	return g.targets
}

// Step advances every node named in g's targets by one tick, using that
// node's entry in states; ids with no entry are skipped. It returns the set
// of ids that finished this tick — callers use this to decide whether to
// commit final positions back to Node.Pos.
func (g *SpringGroup) Step(states map[NodeID]*SpringState) (finished []NodeID) {
	for id, target := range g.targets {
		s, ok := states[id]
		if !ok {
			continue
		}
		if stepSpring(s, target, g.k, g.d, g.dt, g.eps) {
			finished = append(finished, id)
		}
	}
	return finished
}

// AllDone reports whether every tracked id has a finished spring this tick,
// i.e. states no longer contains any of g's target ids (the caller removes
// finished entries from states as Step reports them).
func (g *SpringGroup) AllDone(states map[NodeID]*SpringState) bool {
	for id := range g.targets {
		if _, ok := states[id]; ok {
			return false
		}
	}
	return true
}
