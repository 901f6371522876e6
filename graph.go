package canvas

// Graph is an ordered sequence of nodes. Order IS z-order: the last element
// is topmost. Insertion appends; removal splices; layer operations ([, ])
// move a node within its overlapping subset only, falling back to a
// one-step adjacent move.
type Graph struct {
	nodes []*Node
	byID  map[NodeID]int // index into nodes, kept in sync by every mutator
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{byID: make(map[NodeID]int)}
}

// Insert appends n to the graph (n becomes topmost).
func (g *Graph) Insert(n *Node) {
	g.byID[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, n)
}

// Remove deletes the node with id from the graph, if present, and reindexes
// everything after it.
func (g *Graph) Remove(id NodeID) {
	idx, ok := g.byID[id]
	if !ok {
		return
	}
	copy(g.nodes[idx:], g.nodes[idx+1:])
	g.nodes[len(g.nodes)-1] = nil
	g.nodes = g.nodes[:len(g.nodes)-1]
	delete(g.byID, id)
	for i := idx; i < len(g.nodes); i++ {
		g.byID[g.nodes[i].ID] = i
	}
}

// Find returns the node with id, or nil if it is not in the graph.
func (g *Graph) Find(id NodeID) *Node {
	if idx, ok := g.byID[id]; ok {
		return g.nodes[idx]
	}
	return nil
}

// Contains reports whether id names a live node.
func (g *Graph) Contains(id NodeID) bool {
	_, ok := g.byID[id]
	return ok
}

// Nodes returns the graph's nodes in z-order (back to front). The returned
// slice must not be mutated by the caller.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// IndexOf returns the z-order index of id, or -1 if not present.
func (g *Graph) IndexOf(id NodeID) int {
	if idx, ok := g.byID[id]; ok {
		return idx
	}
	return -1
}

// reindexFrom rebuilds byID for the half-open range [from, len(nodes)).
func (g *Graph) reindexFrom(from int) {
	for i := from; i < len(g.nodes); i++ {
		g.byID[g.nodes[i].ID] = i
	}
}

// MoveUp moves id one step toward the top of its overlapping subset: the
// nearest node above it (in z-order) whose AABB intersects id's AABB. If no
// overlapping node exists above, id is moved one absolute step up instead
// (the documented fallback — not a bug).
func (g *Graph) MoveUp(id NodeID) {
	idx, ok := g.byID[id]
	if !ok || idx == len(g.nodes)-1 {
		return
	}
	n := g.nodes[idx]
	target := -1
	for i := idx + 1; i < len(g.nodes); i++ {
		if n.AABB().Intersects(g.nodes[i].AABB()) {
			target = i
			break
		}
	}
	if target == -1 {
		target = idx + 1
	}
	g.swapTo(idx, target)
}

// MoveDown is the mirror of MoveUp, searching toward the bottom.
func (g *Graph) MoveDown(id NodeID) {
	idx, ok := g.byID[id]
	if !ok || idx == 0 {
		return
	}
	n := g.nodes[idx]
	target := -1
	for i := idx - 1; i >= 0; i-- {
		if n.AABB().Intersects(g.nodes[i].AABB()) {
			target = i
			break
		}
	}
	if target == -1 {
		target = idx - 1
	}
	g.swapTo(idx, target)
}

// swapTo relocates the node at idx to sit immediately at position target by
// shifting the intervening run, then reindexes the affected span.
func (g *Graph) swapTo(idx, target int) {
	if idx == target {
		return
	}
	n := g.nodes[idx]
	if idx < target {
		copy(g.nodes[idx:target], g.nodes[idx+1:target+1])
		g.nodes[target] = n
		g.reindexFrom(idx)
	} else {
		copy(g.nodes[target+1:idx+1], g.nodes[target:idx])
		g.nodes[target] = n
		g.reindexFrom(target)
	}
}

// AABBOf returns the union AABB of the nodes named by ids. Returns the zero
// Rect if ids is empty.
func (g *Graph) AABBOf(ids []NodeID) Rect {
	var r Rect
	first := true
	for _, id := range ids {
		n := g.Find(id)
		if n == nil {
			continue
		}
		b := n.AABB()
		if first {
			r = b
			first = false
			continue
		}
		r = unionRect(r, b)
	}
	return r
}

func unionRect(a, b Rect) Rect {
	minX := minF(a.X, b.X)
	minY := minF(a.Y, b.Y)
	maxX := maxF(a.X+a.Width, b.X+b.Width)
	maxY := maxF(a.Y+a.Height, b.Y+b.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
