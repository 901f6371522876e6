package canvas

// Clipboard is an in-process copy/paste buffer. It holds full node copies
// rather than ids, so a copied node survives the original being deleted or
// undone before the paste happens.
type Clipboard struct {
	nodes []*Node
}

// NewClipboard returns an empty clipboard.
func NewClipboard() *Clipboard {
	return &Clipboard{}
}

// Empty reports whether a paste would currently do nothing.
func (c *Clipboard) Empty() bool { return len(c.nodes) == 0 }

// Copy snapshots the selection's live nodes into the buffer, replacing
// whatever was there before. Group box membership is preserved only between
// nodes that are both in the selection; a contained id referring to a node
// outside the copied set is dropped, since paste can't place a reference to
// a node it didn't also copy.
func (c *Clipboard) Copy(g *Graph, sel *Selection) {
	ids := sel.IDs()
	copied := make(map[NodeID]bool, len(ids))
	for _, id := range ids {
		if g.Contains(id) {
			copied[id] = true
		}
	}
	c.nodes = c.nodes[:0]
	for _, id := range ids {
		n := g.Find(id)
		if n == nil {
			continue
		}
		clone := n.Clone()
		if clone.ContainedNodeIDs != nil {
			for cid := range clone.ContainedNodeIDs {
				if !copied[cid] {
					delete(clone.ContainedNodeIDs, cid)
				}
			}
		}
		c.nodes = append(c.nodes, clone)
	}
}

// Cut copies the selection and then removes it from g.
func (c *Clipboard) Cut(g *Graph, sel *Selection) {
	c.Copy(g, sel)
	for _, id := range sel.IDs() {
		g.Remove(id)
	}
	sel.Clear()
}

// Paste inserts fresh clones of the buffer into g, offset so the buffer's
// bounding-box center lands at target, and replaces sel with the newly
// inserted ids. A no-op on an empty clipboard.
func (c *Clipboard) Paste(g *Graph, sel *Selection, target Vec2) []NodeID {
	if c.Empty() {
		return nil
	}
	center := bufferCenter(c.nodes)
	delta := target.Sub(center)

	idRemap := make(map[NodeID]NodeID, len(c.nodes))
	pasted := make([]*Node, len(c.nodes))
	for i, n := range c.nodes {
		clone := n.Clone()
		idRemap[n.ID] = clone.ID
		pasted[i] = clone
	}
	newIDs := make([]NodeID, 0, len(pasted))
	sel.Clear()
	for _, n := range pasted {
		n.Pos = n.Pos.Add(delta)
		if n.ContainedNodeIDs != nil {
			remapped := make(map[NodeID]struct{}, len(n.ContainedNodeIDs))
			for oldID := range n.ContainedNodeIDs {
				if newID, ok := idRemap[oldID]; ok {
					remapped[newID] = struct{}{}
				}
			}
			n.ContainedNodeIDs = remapped
		}
		g.Insert(n)
		sel.Add(n.ID)
		newIDs = append(newIDs, n.ID)
	}
	return newIDs
}

func bufferCenter(nodes []*Node) Vec2 {
	if len(nodes) == 0 {
		return Vec2{}
	}
	var r Rect
	for i, n := range nodes {
		b := n.AABB()
		if i == 0 {
			r = b
			continue
		}
		r = unionRect(r, b)
	}
	return r.Center()
}
