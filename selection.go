package canvas

// Selection is a set of selected node ids, with accessors resolving them
// against a Graph. It carries no side-map of its own; the graph is the
// single source of truth, so a stale id (one whose node was deleted outside
// the gesture that selected it) is simply dropped on next use rather than
// causing a panic, per the invariant-violation handling policy.
type Selection struct {
	ids map[NodeID]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[NodeID]struct{})}
}

// Add adds id to the selection.
func (s *Selection) Add(id NodeID) {
	s.ids[id] = struct{}{}
}

// Remove removes id from the selection.
func (s *Selection) Remove(id NodeID) {
	delete(s.ids, id)
}

// Toggle flips id's membership.
func (s *Selection) Toggle(id NodeID) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}
}

// Replace clears the selection and selects only id.
func (s *Selection) Replace(id NodeID) {
	clear(s.ids)
	s.ids[id] = struct{}{}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	clear(s.ids)
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id NodeID) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected ids (including any currently-stale
// ones; call Prune first if an exact live count is required).
func (s *Selection) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids in unspecified order.
func (s *Selection) IDs() []NodeID {
	out := make([]NodeID, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	return out
}

// Prune drops every selected id that no longer resolves to a live node in g,
// per the "drop the stale id, never abort the gesture" invariant policy.
func (s *Selection) Prune(g *Graph) {
	for id := range s.ids {
		if !g.Contains(id) {
			delete(s.ids, id)
			logWarn("dropped stale selection id %s", id)
		}
	}
}

// AABB returns the union bounding box of the selection's live nodes in g.
func (s *Selection) AABB(g *Graph) Rect {
	return g.AABBOf(s.IDs())
}

// SelectAll replaces the selection with every node currently in g.
func (s *Selection) SelectAll(g *Graph) {
	clear(s.ids)
	for _, n := range g.Nodes() {
		s.ids[n.ID] = struct{}{}
	}
}
