package canvas

import "github.com/google/uuid"

// NodeID is an opaque unique identifier assigned on insertion. It is a UUID
// rather than a bare counter because nodes round-trip through persisted
// snapshots and undo history across process restarts, where a counter could
// collide.
type NodeID string

// newNodeID allocates a fresh identifier.
func newNodeID() NodeID {
	return NodeID(uuid.NewString())
}

// SpringState is transient spring-integrator state. It is never embedded on
// Node directly — per-gesture animator objects hold a map of these keyed by
// NodeID so the graph stays untouched until the animation commits (see
// spring.go). Node carries it only in the sense that animPos/animVel and
// gridAnimPos/gridAnimVel are *absent* (not merely zeroed) outside an active
// align animation, which is what AnimPos/GridAnimPos below model with a
// pointer: nil means absent.
type SpringState struct {
	Pos Vec2
	Vel Vec2
}

// Node is a placed media item. A single flat struct represents every
// NodeType to avoid interface dispatch on gesture and render hot paths.
type Node struct {
	ID   NodeID
	Type NodeType

	// Pos is the world-space position of the top-left corner.
	Pos Vec2
	// Size is the world-space extent. Minimum 100x100 for media nodes
	// (enforced by resize.go). Bounding-box multi-resize applies no per-node
	// size floor: it only floors the scale factor (Config.MinUniformScale).
	Size Vec2
	// Rotation is in degrees, canonicalized mod 360.
	Rotation float64
	// AspectRatio is the preserved ratio for uniform resize and
	// double-click-to-restore. Always equals Size.X/Size.Y after any resize.
	AspectRatio float64
	// OriginalAspect is recorded once at creation for double-click reset,
	// independent of any AspectRatio drift from non-uniform resizes.
	OriginalAspect float64

	// Title is the node's display title; hidden below the LOD thumbnail
	// threshold and editable via edit-title.
	Title string
	// HideTitle suppresses the title bar even above the LOD threshold.
	HideTitle bool

	// Properties is a type-dependent opaque payload. The core reads only
	// Hash/Filename for resource lifecycle (rescache.go, render.go); Text is
	// read by the text-editing gesture; everything else passes through
	// unexamined.
	Properties NodeProperties

	// ContainedNodeIDs is populated only for NodeGroupBox: the set of node
	// ids currently nested inside this group box.
	ContainedNodeIDs map[NodeID]struct{}

	// AnimPos is the auto-align spring scratch slot. The align engines keep
	// their spring state in the state machine's per-gesture map instead, so
	// nothing in this package sets it: it stays nil (Clone resets it to nil),
	// an absence checked by the test suite.
	AnimPos *SpringState
	// GridAnimPos is the grid-align counterpart of AnimPos, likewise never
	// set and always nil.
	GridAnimPos *SpringState
}

// NodeProperties is the type-dependent opaque payload carried by a Node.
type NodeProperties struct {
	Hash     string // content hash, for image/video resource lookup
	Filename string
	Text     string // text node content
}

// NewNode creates a node of the given type at pos with size, with
// AspectRatio and OriginalAspect derived from size. ID is freshly allocated.
func NewNode(t NodeType, pos, size Vec2) *Node {
	n := &Node{
		ID:             newNodeID(),
		Type:           t,
		Pos:            pos,
		Size:           size,
		AspectRatio:    aspectOf(size),
		OriginalAspect: aspectOf(size),
	}
	if t == NodeGroupBox {
		n.ContainedNodeIDs = make(map[NodeID]struct{})
	}
	return n
}

func aspectOf(size Vec2) float64 {
	if size.Y == 0 {
		return 0
	}
	return size.X / size.Y
}

// AABB returns the node's axis-aligned bounding box ignoring rotation — the
// rectangle a rotated node's corners are rotated away from. Used for
// cross-axis/along-axis packing math in the align engines, which operate on
// Pos/Size directly per spec.
func (n *Node) AABB() Rect {
	return Rect{X: n.Pos.X, Y: n.Pos.Y, Width: n.Size.X, Height: n.Size.Y}
}

// Center returns the node's world-space center, ignoring rotation (rotation
// is applied about this same point, so it is also the rotation pivot).
func (n *Node) Center() Vec2 {
	return Vec2{n.Pos.X + n.Size.X/2, n.Pos.Y + n.Size.Y/2}
}

// HasTitleBar reports whether this node type draws a title-bar drag handle.
func (n *Node) HasTitleBar() bool {
	return typeInfoFor(n.Type).hasTitleBar
}

// IsMediaResource reports whether this node's Properties.Hash feeds the
// resource cache's load/unload lifecycle.
func (n *Node) IsMediaResource() bool {
	return typeInfoFor(n.Type).isMediaResource
}

// EnforcesAspect reports whether the default (uniform) resize mode preserves
// this node's AspectRatio.
func (n *Node) EnforcesAspect() bool {
	return typeInfoFor(n.Type).enforcesAspect
}

// Clone returns a deep copy with a freshly allocated ID and no animation
// scratch, used by alt-drag-duplicate, Ctrl/Cmd+D, and paste. ContainedNodeIDs
// is copied rather than shared so editing the clone's group membership never
// mutates the original.
func (n *Node) Clone() *Node {
	c := *n
	c.ID = newNodeID()
	c.AnimPos = nil
	c.GridAnimPos = nil
	if n.ContainedNodeIDs != nil {
		c.ContainedNodeIDs = make(map[NodeID]struct{}, len(n.ContainedNodeIDs))
		for id := range n.ContainedNodeIDs {
			c.ContainedNodeIDs[id] = struct{}{}
		}
	}
	return &c
}
