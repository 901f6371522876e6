package canvas

import (
	"encoding/json"
	"fmt"
	"math"
)

// CanvasStore persists the graph snapshot the core hands it. Implementations
// are expected to be asynchronous at the caller's discretion (e.g. wrapping
// an IndexedDB-style store); the core never awaits them from inside a
// gesture handler.
type CanvasStore interface {
	SaveCanvasState(data []byte) error
	LoadCanvasState() ([]byte, error)
}

// UndoStore persists the undo/redo stack.
type UndoStore interface {
	SaveUndoStack(data []byte) error
	LoadUndoStack() ([]byte, error)
}

// ResourceStore is the content-hash-keyed blob store backing media nodes.
type ResourceStore interface {
	Put(hash string, payload []byte) error
	Get(hash string) ([]byte, bool, error)
	Has(hash string) (bool, error)
}

// snapshotSchemaVersion is bumped only on a breaking format change; new
// optional fields can be added without bumping it (append-only-compatible).
const snapshotSchemaVersion = 1

// wireNode is the JSON wire shape of one node, matching the schema in §6.
type wireNode struct {
	Type        string          `json:"type"`
	Pos         [2]float64      `json:"pos"`
	Size        [2]float64      `json:"size"`
	AspectRatio float64         `json:"aspectRatio"`
	Rotation    float64         `json:"rotation"`
	Properties  wireProperties  `json:"properties"`
	Flags       *wireFlags      `json:"flags,omitempty"`
	Title       string          `json:"title,omitempty"`
	// Contained holds, for a group box node, the indices (within this same
	// Nodes slice) of its member nodes at encode time.
	Contained []int `json:"contained,omitempty"`
}

type wireProperties struct {
	Hash     string `json:"hash,omitempty"`
	Filename string `json:"filename,omitempty"`
	Text     string `json:"text,omitempty"`
}

type wireFlags struct {
	HideTitle bool `json:"hide_title,omitempty"`
	GroupBox  bool `json:"groupbox,omitempty"`
}

type wireSnapshot struct {
	Version int        `json:"version"`
	Nodes   []wireNode `json:"nodes"`
}

var nodeTypeNames = map[NodeType]string{
	NodeImage:    "image",
	NodeVideo:    "video",
	NodeText:     "text",
	NodeShape:    "shape",
	NodeGroupBox: "groupbox",
}

var nodeTypeByName = func() map[string]NodeType {
	m := make(map[string]NodeType, len(nodeTypeNames))
	for t, name := range nodeTypeNames {
		m[name] = t
	}
	return m
}()

// EncodeCanvasState serializes g into the versioned JSON snapshot schema.
func EncodeCanvasState(g *Graph) ([]byte, error) {
	nodes := g.Nodes()
	indexByID := make(map[NodeID]int, len(nodes))
	for i, n := range nodes {
		indexByID[n.ID] = i
	}
	wire := wireSnapshot{Version: snapshotSchemaVersion, Nodes: make([]wireNode, len(nodes))}
	for i, n := range nodes {
		name, ok := nodeTypeNames[n.Type]
		if !ok {
			return nil, wrapf(fmt.Sprintf("encode node %s", n.ID), ErrUnknownNodeType)
		}
		wn := wireNode{
			Type:        name,
			Pos:         [2]float64{n.Pos.X, n.Pos.Y},
			Size:        [2]float64{n.Size.X, n.Size.Y},
			AspectRatio: n.AspectRatio,
			Rotation:    n.Rotation,
			Properties: wireProperties{
				Hash:     n.Properties.Hash,
				Filename: n.Properties.Filename,
				Text:     n.Properties.Text,
			},
			Title: n.Title,
		}
		if n.HideTitle || n.Type == NodeGroupBox {
			wn.Flags = &wireFlags{HideTitle: n.HideTitle, GroupBox: n.Type == NodeGroupBox}
		}
		if n.Type == NodeGroupBox {
			for _, memberID := range containedIDs(n) {
				if idx, ok := indexByID[memberID]; ok {
					wn.Contained = append(wn.Contained, idx)
				}
			}
		}
		wire.Nodes[i] = wn
	}
	return json.Marshal(wire)
}

// DecodeCanvasState parses data into a fresh Graph. A corrupt or
// unparseable record returns ErrCorruptSnapshot and the caller must start
// from an empty graph, per §7's error taxonomy; an unknown node type within
// an otherwise-valid record is skipped (logged), not fatal to the whole
// load.
func DecodeCanvasState(data []byte) (*Graph, error) {
	var wire wireSnapshot
	if err := json.Unmarshal(data, &wire); err != nil {
		logWarn("corrupt canvas snapshot: %v", err)
		return nil, wrapf("decode", ErrCorruptSnapshot)
	}

	g := NewGraph()
	idRemap := make(map[int]NodeID, len(wire.Nodes))
	for i, wn := range wire.Nodes {
		t, ok := nodeTypeByName[wn.Type]
		if !ok {
			logWarn("skipping unknown node type %q on load", wn.Type)
			continue
		}
		n := NewNode(t, Vec2{X: wn.Pos[0], Y: wn.Pos[1]}, Vec2{X: wn.Size[0], Y: wn.Size[1]})
		n.AspectRatio = wn.AspectRatio
		n.Rotation = wn.Rotation
		n.Properties = NodeProperties{Hash: wn.Properties.Hash, Filename: wn.Properties.Filename, Text: wn.Properties.Text}
		n.Title = wn.Title
		if wn.Flags != nil {
			n.HideTitle = wn.Flags.HideTitle
		}
		if n.IsMediaResource() && n.Properties.Hash == "" {
			logWarn("media node %s loaded with no resource hash", n.ID)
		}
		g.Insert(n)
		idRemap[i] = n.ID
	}
	for i, wn := range wire.Nodes {
		if wn.Flags == nil || !wn.Flags.GroupBox || len(wn.Contained) == 0 {
			continue
		}
		gbID, ok := idRemap[i]
		if !ok {
			continue
		}
		gb := g.Find(gbID)
		if gb == nil {
			continue
		}
		for _, memberIdx := range wn.Contained {
			if memberID, ok := idRemap[memberIdx]; ok {
				gb.ContainedNodeIDs[memberID] = struct{}{}
			}
		}
	}
	return g, nil
}

// ViewportRecord is the separately persisted camera state. It is
// deliberately excluded from the canvas snapshot so that undo/redo never
// moves the camera.
type ViewportRecord struct {
	Offset [2]float64 `json:"offset"`
	Scale  float64    `json:"scale"`
}

// EncodeViewport serializes vp.
func EncodeViewport(vp *Viewport) ([]byte, error) {
	return json.Marshal(ViewportRecord{Offset: [2]float64{vp.Offset.X, vp.Offset.Y}, Scale: vp.Scale})
}

// DecodeViewport parses data into a Viewport, applying SafetyClampLoad so a
// corrupt record (non-finite, scale <= 0, scale > 10, or an offset
// component beyond 1e6) has its invalid offset reset to zero and/or its
// invalid scale reset to 1 rather than failing the load; a valid component
// is kept.
func DecodeViewport(data []byte) (*Viewport, error) {
	var rec ViewportRecord
	vp := NewViewport()
	if err := json.Unmarshal(data, &rec); err != nil {
		logWarn("corrupt viewport record: %v", err)
		return vp, wrapf("decode", ErrCorruptViewport)
	}
	offset, scale, err := SafetyClampLoad(Vec2{X: rec.Offset[0], Y: rec.Offset[1]}, rec.Scale)
	vp.Offset = offset
	vp.Scale = scale
	return vp, err
}

// wireUndoStack is the JSON wire shape of a persisted undo/redo history.
type wireUndoStack struct {
	Version int          `json:"version"`
	Past    []wireSnapshot `json:"past"`
	Future  []wireSnapshot `json:"future"`
}

func encodeSnapshot(snap Snapshot) wireSnapshot {
	wire := wireSnapshot{Version: snapshotSchemaVersion, Nodes: make([]wireNode, len(snap.Nodes))}
	for i, ns := range snap.Nodes {
		name := nodeTypeNames[ns.Type]
		wn := wireNode{
			Type:        name,
			Pos:         [2]float64{ns.Pos.X, ns.Pos.Y},
			Size:        [2]float64{ns.Size.X, ns.Size.Y},
			AspectRatio: ns.AspectRatio,
			Rotation:    ns.Rotation,
			Properties: wireProperties{
				Hash:     ns.Properties.Hash,
				Filename: ns.Properties.Filename,
				Text:     ns.Properties.Text,
			},
			Title: ns.Title,
		}
		if ns.HideTitle || ns.IsGroupBox {
			wn.Flags = &wireFlags{HideTitle: ns.HideTitle, GroupBox: ns.IsGroupBox}
		}
		wn.Contained = append([]int(nil), ns.Contained...)
		wire.Nodes[i] = wn
	}
	return wire
}

func decodeSnapshot(wire wireSnapshot) Snapshot {
	// indexRemap tracks original wire index -> final position in snap.Nodes,
	// since skipped unknown-type entries compact the slice and would
	// otherwise desync Contained's index references.
	indexRemap := make(map[int]int, len(wire.Nodes))
	nodes := make([]NodeSnapshot, 0, len(wire.Nodes))
	for i, wn := range wire.Nodes {
		t, ok := nodeTypeByName[wn.Type]
		if !ok {
			logWarn("skipping unknown node type %q in undo history", wn.Type)
			continue
		}
		ns := NodeSnapshot{
			Type:        t,
			Pos:         Vec2{X: wn.Pos[0], Y: wn.Pos[1]},
			Size:        Vec2{X: wn.Size[0], Y: wn.Size[1]},
			AspectRatio: wn.AspectRatio,
			Rotation:    wn.Rotation,
			Properties:  NodeProperties{Hash: wn.Properties.Hash, Filename: wn.Properties.Filename, Text: wn.Properties.Text},
			Title:       wn.Title,
		}
		if wn.Flags != nil {
			ns.HideTitle = wn.Flags.HideTitle
			ns.IsGroupBox = wn.Flags.GroupBox
		}
		indexRemap[i] = len(nodes)
		nodes = append(nodes, ns)
	}
	for i, wn := range wire.Nodes {
		newIdx, ok := indexRemap[i]
		if !ok || !nodes[newIdx].IsGroupBox {
			continue
		}
		for _, oldIdx := range wn.Contained {
			if mapped, ok := indexRemap[oldIdx]; ok {
				nodes[newIdx].Contained = append(nodes[newIdx].Contained, mapped)
			}
		}
	}
	return Snapshot{Nodes: nodes}
}

// EncodeUndoStack serializes u's full past/future history.
func EncodeUndoStack(u *UndoStack) ([]byte, error) {
	past := u.Past()
	future := u.Future()
	wire := wireUndoStack{
		Version: snapshotSchemaVersion,
		Past:    make([]wireSnapshot, len(past)),
		Future:  make([]wireSnapshot, len(future)),
	}
	for i, s := range past {
		wire.Past[i] = encodeSnapshot(s)
	}
	for i, s := range future {
		wire.Future[i] = encodeSnapshot(s)
	}
	return json.Marshal(wire)
}

// DecodeUndoStack parses data into a stack bounded at depth. A corrupt
// record returns a fresh empty stack and ErrCorruptSnapshot rather than
// failing the caller, per the "transient persistence failure" policy — on
// an undo-stack load failure the caller is expected to start clean rather
// than risk replaying a half-decoded history.
func DecodeUndoStack(data []byte, depth int) (*UndoStack, error) {
	var wire wireUndoStack
	if err := json.Unmarshal(data, &wire); err != nil {
		logWarn("corrupt undo stack: %v", err)
		return NewUndoStack(depth), wrapf("decode undo stack", ErrCorruptSnapshot)
	}
	past := make([]Snapshot, len(wire.Past))
	for i, w := range wire.Past {
		past[i] = decodeSnapshot(w)
	}
	future := make([]Snapshot, len(wire.Future))
	for i, w := range wire.Future {
		future[i] = decodeSnapshot(w)
	}
	return RestoreUndoStack(depth, past, future), nil
}

// maxAbsOffsetComponent mirrors the 1e6 bound documented in SafetyClampLoad
// for callers that need to pre-validate a record without constructing a
// Viewport.
const maxAbsOffsetComponent = 1e6

func validOffsetComponent(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && math.Abs(v) <= maxAbsOffsetComponent
}
