package canvas

// Vec2 is a 2D vector used for positions, sizes, and offsets throughout the
// API.
type Vec2 struct {
	X, Y float64
}

// Add returns the component-wise sum of v and o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns the component-wise difference v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Rect is an axis-aligned rectangle with origin at the top-left.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap. Adjacent rectangles
// (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Center returns the rectangle's center point.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// NodeType distinguishes hit-test and gesture eligibility behavior for a Node.
// Interior painting is delegated to an external draw hook; the core never
// inspects pixel content.
type NodeType uint8

const (
	NodeImage    NodeType = iota // still image, aspect-preserving resize by default
	NodeVideo                    // video, same geometry rules as image
	NodeText                     // editable text, aspect ratio not enforced
	NodeShape                    // vector shape placeholder, same geometry rules as image
	NodeGroupBox                 // carries containedNodeIds, has a title bar drag handle
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// Modifiers is a bitmask of keyboard modifier keys held during an input event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether all bits in mask are set.
func (m Modifiers) Has(mask Modifiers) bool { return m&mask == mask }

// CtrlOrCmd reports whether the platform-conventional "primary" modifier
// (Ctrl on Windows/Linux, Cmd on macOS) is held.
func (m Modifiers) CtrlOrCmd() bool { return m.Has(ModCtrl) || m.Has(ModMeta) }
