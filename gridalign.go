package canvas

import "math"

// GridAlign holds the scratch for a Ctrl+Shift-drag-on-empty-space
// gesture: it arranges the selection into a grid that tracks the drag
// rectangle from dragStart to the current mouse position.
type GridAlign struct {
	cfg       Config
	dragStart Vec2
	ids       []NodeID
	sizes     map[NodeID]Vec2
	springs   *SpringGroup
}

// NewGridAlign captures the selection's sizes once at gesture start;
// per-node size never changes for the duration of the gesture.
func NewGridAlign(g *Graph, ids []NodeID, dragStart Vec2, cfg Config) *GridAlign {
	sizes := make(map[NodeID]Vec2, len(ids))
	for _, id := range ids {
		if n := g.Find(id); n != nil {
			sizes[id] = n.Size
		}
	}
	return &GridAlign{
		cfg:       cfg,
		dragStart: dragStart,
		ids:       append([]NodeID(nil), ids...),
		sizes:     sizes,
		springs:   newSpringGroup(cfg.GridAlignK, cfg.GridAlignD, cfg.GridAlignDT, cfg.SpringDoneEpsilon),
	}
}

// cellSize returns the grid's fixed cell dimensions: the largest selected
// node's size plus the configured margin on each axis.
func (ga *GridAlign) cellSize() Vec2 {
	var w, h float64
	for _, sz := range ga.sizes {
		w = math.Max(w, sz.X)
		h = math.Max(h, sz.Y)
	}
	return Vec2{X: w + ga.cfg.GridAlignMargin, Y: h + ga.cfg.GridAlignMargin}
}

// layout computes the grid's column/row count and the ordered list of cell
// centers, given the current drag rectangle (dragStart to mouse).
func (ga *GridAlign) layout(mouse Vec2) (cellCenters []Vec2, cell Vec2) {
	cell = ga.cellSize()
	dragWidth := mouse.X - ga.dragStart.X
	dragHeight := mouse.Y - ga.dragStart.Y

	columns := 1
	if math.Abs(dragWidth) > 1.1*cell.X {
		columns = int(math.Round(math.Abs(dragWidth) / cell.X))
		if columns < 1 {
			columns = 1
		}
	}
	n := len(ga.ids)
	rows := int(math.Ceil(float64(n) / float64(columns)))

	signX := 1.0
	if dragWidth < 0 {
		signX = -1.0
	}
	signY := 1.0
	if dragHeight < 0 {
		signY = -1.0
	}

	cellCenters = make([]Vec2, 0, columns*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < columns; c++ {
			cx := ga.dragStart.X + signX*(float64(c)*cell.X+cell.X/2)
			cy := ga.dragStart.Y + signY*(float64(r)*cell.Y+cell.Y/2)
			cellCenters = append(cellCenters, Vec2{X: cx, Y: cy})
		}
	}
	return cellCenters, cell
}

// assignCells greedily matches each cell, in order, to its nearest
// unassigned node by squared distance from the node's current position — not
// a node-major assignment walking ga.ids — since the two greedy directions
// diverge whenever a node is each of two cells' second choice: matching
// cells to nodes in cell order is the tie-break the grid-align scenarios
// depend on.
func (ga *GridAlign) assignCells(g *Graph, cellCenters []Vec2) map[NodeID]Vec2 {
	type candidate struct {
		id  NodeID
		pos Vec2
	}
	remaining := make([]candidate, 0, len(ga.ids))
	for _, id := range ga.ids {
		if n := g.Find(id); n != nil {
			remaining = append(remaining, candidate{id: id, pos: n.Center()})
		}
	}

	assigned := make(map[NodeID]Vec2, len(ga.ids))
	for _, cell := range cellCenters {
		if len(remaining) == 0 {
			break
		}
		best := 0
		bestDist := math.Inf(1)
		for i, c := range remaining {
			dx := cell.X - c.pos.X
			dy := cell.Y - c.pos.Y
			d := dx*dx + dy*dy
			if d < bestDist {
				bestDist = d
				best = i
			}
		}
		assigned[remaining[best].id] = cell
		remaining = append(remaining[:best], remaining[best+1:]...)
	}
	return assigned
}

// Move recomputes the grid layout and cell assignment for the current
// mouse position and retargets the springs accordingly.
func (ga *GridAlign) Move(g *Graph, mouse Vec2) {
	cellCenters, _ := ga.layout(mouse)
	assigned := ga.assignCells(g, cellCenters)
	for id, center := range assigned {
		ga.springs.SetTarget(id, center)
	}
}

// Step advances the gesture's spring animation one tick. While dragging
// (stillDragging == true), nodes whose spring finished this tick have
// their graph position snapped to the spring's resting position so later
// frames remain stable even though the gesture has not ended.
func (ga *GridAlign) Step(g *Graph, states map[NodeID]*SpringState, stillDragging bool) []NodeID {
	for id := range ga.springs.Targets() {
		if _, ok := states[id]; !ok {
			if n := g.Find(id); n != nil {
				states[id] = &SpringState{Pos: n.Center()}
			}
		}
	}
	finished := ga.springs.Step(states)
	if stillDragging {
		for _, id := range finished {
			if n := g.Find(id); n != nil {
				if s, ok := states[id]; ok {
					n.Pos = Vec2{X: s.Pos.X - n.Size.X/2, Y: s.Pos.Y - n.Size.Y/2}
				}
			}
		}
	}
	return finished
}

// Targets exposes the live per-node target map.
func (ga *GridAlign) Targets() map[NodeID]Vec2 { return ga.springs.Targets() }
