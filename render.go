package canvas

import (
	"image"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/draw"
)

// LODTier is the level-of-detail bucket chosen for a node based on its
// on-screen footprint.
type LODTier uint8

const (
	LODHidden    LODTier = iota // < 5 CSS px: filled rectangle only
	LODGreyBox                  // < 32 CSS px: flat placeholder
	LODThumbnail                // < 64 CSS px: 64x64 nearest-neighbor sample
	LODFull                     // otherwise: full bilinear image
)

// LODFor classifies a node's on-screen footprint (the larger of its
// screen-space width/height) into a detail tier.
func LODFor(onScreenPx float64, cfg Config) LODTier {
	switch {
	case onScreenPx < cfg.LODHiddenCSSPx:
		return LODHidden
	case onScreenPx < cfg.LODGreyBoxCSSPx:
		return LODGreyBox
	case onScreenPx < cfg.LODThumbnailCSSPx:
		return LODThumbnail
	default:
		return LODFull
	}
}

// DrawHook delegates interior painting of a node's body to the embedder;
// the core never inspects pixel content itself.
type DrawHook interface {
	DrawNode(screen *ebiten.Image, n *Node, screenPos, screenSize Vec2, lod LODTier)
}

// ResourceHooks are invoked as media nodes cross the visibility boundary.
type ResourceHooks interface {
	LoadResource(n *Node)
	UnloadResource(n *Node)
}

// Renderer owns the dirty-flag, the visibility-cull resident set, and the
// draw-order/overlay logic of §4.7. It holds no ebiten state across frames
// beyond what's needed for that bookkeeping.
type Renderer struct {
	cfg      Config
	dirty    bool
	resident map[NodeID]bool
}

// NewRenderer returns a renderer starting dirty (so the first frame always
// draws).
func NewRenderer(cfg Config) *Renderer {
	return &Renderer{cfg: cfg, dirty: true, resident: make(map[NodeID]bool)}
}

// MarkDirty flags that the next Draw call must actually render, even if no
// animation is active.
func (r *Renderer) MarkDirty() { r.dirty = true }

// NeedsDraw reports whether a frame must be rendered: the dirty flag is
// set, or an animation is mid-flight, or a video node is playing.
func (r *Renderer) NeedsDraw(animating, videoPlaying bool) bool {
	return r.dirty || animating || videoPlaying
}

// ClearDirty resets the dirty flag after a frame has been drawn.
func (r *Renderer) ClearDirty() { r.dirty = false }

// UpdateVisibility walks g's nodes, computes the viewport's world-space
// visible bounds expanded by cfg.CullMarginWorld, and invokes hooks.Load/
// UnloadResource for each media node crossing that boundary. It is a no-op
// for non-media node types (text/shape/groupbox never own a resource).
func (r *Renderer) UpdateVisibility(g *Graph, vp *Viewport, viewportSizePx Vec2, hooks ResourceHooks) {
	bounds := vp.VisibleBounds(viewportSizePx, r.cfg.CullMarginWorld)
	seen := make(map[NodeID]bool, g.Len())
	for _, n := range g.Nodes() {
		if !n.IsMediaResource() {
			continue
		}
		visible := bounds.Intersects(n.AABB())
		seen[n.ID] = visible
		wasResident := r.resident[n.ID]
		if visible && !wasResident {
			if hooks != nil {
				hooks.LoadResource(n)
			}
			r.resident[n.ID] = true
		} else if !visible && wasResident {
			if hooks != nil {
				hooks.UnloadResource(n)
			}
			delete(r.resident, n.ID)
		}
	}
	for id := range r.resident {
		if !seen[id] {
			delete(r.resident, id)
		}
	}
}

// DrawOrder returns g's nodes reordered so group boxes paint first,
// preserving each subset's relative z-order — the "draw group boxes first,
// then others" rule in §4.7. Group box interiors still nest visually inside
// their box because the box itself is typically larger and behind its
// contained nodes in normal z-order; this only affects same-layer ties.
func DrawOrder(g *Graph) []*Node {
	nodes := append([]*Node(nil), g.Nodes()...)
	sort.SliceStable(nodes, func(i, j int) bool {
		gi := nodes[i].Type == NodeGroupBox
		gj := nodes[j].Type == NodeGroupBox
		return gi && !gj
	})
	return nodes
}

// handlesSuppressed reports whether selection/resize/rotate handle overlays
// must be hidden: true during either align gesture. On-screen size is not
// considered.
func handlesSuppressed(state GestureState) bool {
	return state == StateAutoAlign || state == StateGridAlign
}

// DrawGridDots paints the background dot grid at cfg's spacing, in world
// space, hidden below cfg.GridHiddenBelowScale. bounds is the world-space
// visible rectangle (no cull margin needed — dots outside the viewport
// simply aren't iterated).
func DrawGridDots(screen *ebiten.Image, vp *Viewport, bounds Rect, cfg Config, dotColor color.Color) {
	if vp.Scale < cfg.GridHiddenBelowScale {
		return
	}
	spacing := cfg.GridDotSpacing
	startX := float64(int(bounds.X/spacing)) * spacing
	startY := float64(int(bounds.Y/spacing)) * spacing
	for wx := startX; wx <= bounds.X+bounds.Width; wx += spacing {
		for wy := startY; wy <= bounds.Y+bounds.Height; wy += spacing {
			sx, sy := vp.WorldToScreen(wx, wy)
			vector.DrawFilledCircle(screen, float32(sx), float32(sy), 1.5, dotColor, false)
		}
	}
}

// DrawSelectionOverlay paints the multi-selection AABB, its resize handle,
// and its rotation handle in screen space, with an 8-CSS-px margin around
// the bounding box.
func DrawSelectionOverlay(screen *ebiten.Image, vp *Viewport, aabb Rect, cfg Config, strokeColor color.Color) {
	margin := cfg.OverlayHandleMarginCSSPx
	tlX, tlY := vp.WorldToScreen(aabb.X, aabb.Y)
	brX, brY := vp.WorldToScreen(aabb.X+aabb.Width, aabb.Y+aabb.Height)
	x := float32(tlX) - float32(margin)
	y := float32(tlY) - float32(margin)
	w := float32(brX-tlX) + float32(margin*2)
	h := float32(brY-tlY) + float32(margin*2)
	vector.StrokeRect(screen, x, y, w, h, 1, strokeColor, false)
	vector.DrawFilledCircle(screen, x+w, y+h, float32(cfg.SelectionHandleCSSPx/2), strokeColor, false)
	vector.DrawFilledCircle(screen, x+w/2, y-float32(rotateHandleOffsetWorld*vp.Scale), float32(cfg.RotateHandleCSSPx/2), strokeColor, false)
}

// DrawMarqueeRect paints the marquee selection rectangle in screen space.
func DrawMarqueeRect(screen *ebiten.Image, vp *Viewport, worldRect Rect, strokeColor color.Color) {
	tlX, tlY := vp.WorldToScreen(worldRect.X, worldRect.Y)
	brX, brY := vp.WorldToScreen(worldRect.X+worldRect.Width, worldRect.Y+worldRect.Height)
	vector.StrokeRect(screen, float32(tlX), float32(tlY), float32(brX-tlX), float32(brY-tlY), 1, strokeColor, false)
}

// ThumbnailScale downsamples src into a dst-sized image using
// nearest-neighbor sampling, the LODThumbnail tier's required sampling
// algorithm (full LODFull tier uses ebiten's own bilinear DrawImageOptions
// filter instead).
func ThumbnailScale(dst draw.Image, src image.Image) {
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
}
