package canvas

// Config holds the named thresholds and spring constants the gesture and
// render layers are tuned against. Callers may override fields for testing
// (e.g. shrinking debounce windows) but the zero value of each field is never
// used directly — always start from [NewDefaultConfig].
type Config struct {
	// ResizeHandleCSSPx is the hit radius of a resize handle, in CSS pixels.
	ResizeHandleCSSPx float64
	// RotateHandleCSSPx is the hit radius of a rotation handle, in CSS pixels.
	RotateHandleCSSPx float64
	// SelectionHandleCSSPx is the hit radius of a multi-selection bbox handle.
	SelectionHandleCSSPx float64
	// MinHandleDisplayCSSPx is an on-screen footprint floor for showing
	// handles. No draw path reads it: Canvas.Draw draws no per-node handles,
	// and handlesSuppressed does not consider on-screen size.
	MinHandleDisplayCSSPx float64
	// DragDeadZoneCSSPx is a pointer-travel threshold for starting a drag.
	// The state machine does not read it: a mouse-down on a node enters
	// drag-node at once, with no dead zone.
	DragDeadZoneCSSPx float64

	// AutoAlignCommitCSSPx is the axis/direction commit threshold for
	// auto-align, in CSS pixels (divided by scale before comparison).
	AutoAlignCommitCSSPx float64
	// AutoAlignHomeCircleCSSPx is the radius of the home circle gating
	// axis-switch logic during auto-align.
	AutoAlignHomeCircleCSSPx float64
	// AutoAlignMargin is the world-unit gap auto-align packs nodes with.
	AutoAlignMargin float64
	// ReorderAlignToleranceWorld is the cross-axis tolerance (world units)
	// used to decide whether a selection is "already aligned" for reorder
	// detection.
	ReorderAlignToleranceWorld float64

	// AutoAlignK, AutoAlignD, AutoAlignDT are the spring constants driving
	// animPos during auto-align.
	AutoAlignK, AutoAlignD, AutoAlignDT float64
	// GridAlignK, GridAlignD, GridAlignDT are the spring constants driving
	// gridAnimPos during grid-align.
	GridAlignK, GridAlignD, GridAlignDT float64
	// SpringDoneEpsilon is the per-node completion threshold for both
	// position error and velocity.
	SpringDoneEpsilon float64

	// GridAlignMargin is the gap added to the largest node's size to compute
	// cell width/height.
	GridAlignMargin float64

	// MinNodeSize is the minimum width/height for media nodes after resize.
	MinNodeSize float64
	// MinBBoxNodeSize is a minimum width/height for bounding-box scaling.
	// ComputeBBoxResize does not read it, so a bbox resize can shrink
	// members below this size; only MinUniformScale bounds that gesture.
	MinBBoxNodeSize float64
	// MinUniformScale floors the uniform/independent scale factor during
	// bbox resize so a drag past the anchor cannot invert the selection.
	MinUniformScale float64

	// GridDotSpacing is the world-unit spacing of the background dot grid.
	GridDotSpacing float64
	// GridHiddenBelowScale hides the dot grid when viewport scale drops
	// below this value.
	GridHiddenBelowScale float64
	// CullMarginWorld is the margin added around the visible viewport
	// before culling/resource load-unload decisions.
	CullMarginWorld float64
	// OverlayHandleMarginCSSPx is the screen-space margin around a
	// multi-selection AABB before drawing its resize/rotate handles.
	OverlayHandleMarginCSSPx float64

	// LODHiddenCSSPx is the footprint below which a node draws as a filled
	// rectangle only (no title, no image).
	LODHiddenCSSPx float64
	// LODGreyBoxCSSPx is the footprint below which a node draws as a grey
	// placeholder box.
	LODGreyBoxCSSPx float64
	// LODThumbnailCSSPx is the footprint below which a node draws its
	// nearest-neighbor-sampled thumbnail rather than the full image.
	LODThumbnailCSSPx float64

	// UndoDepth bounds the undo history.
	UndoDepth int

	// ZoomWheelUpFactor and ZoomWheelDownFactor scale the viewport on wheel
	// up/down respectively, regardless of held modifiers.
	ZoomWheelUpFactor, ZoomWheelDownFactor float64

	// DPIPollHysteresis is the minimum devicePixelRatio delta that triggers
	// a DPI re-application.
	DPIPollHysteresis float64
	// ResizeDebounceMS is the debounce window for window-resize driven DPI
	// reapplication. Not read by this package: a window resize does not
	// reapply DPI.
	ResizeDebounceMS int
	// ZoomSaveDebounceMS is the debounce window for saving after a zoom
	// gesture. Not read by this package: a zoom does not trigger a save.
	ZoomSaveDebounceMS int
	// CacheCleanupDebounceS is the debounce window for resource cache
	// cleanup sweeps. Not read by this package: the resource cache runs no
	// cleanup sweep.
	CacheCleanupDebounceS int
}

// NewDefaultConfig returns the thresholds and spring constants named by the
// interaction, auto-align, grid-align, and render specifications.
func NewDefaultConfig() Config {
	return Config{
		ResizeHandleCSSPx:     16,
		RotateHandleCSSPx:     16,
		SelectionHandleCSSPx:  16,
		MinHandleDisplayCSSPx: 24,
		DragDeadZoneCSSPx:     4,

		AutoAlignCommitCSSPx:       40,
		AutoAlignHomeCircleCSSPx:   100,
		AutoAlignMargin:            20,
		ReorderAlignToleranceWorld: 10,

		AutoAlignK: 180, AutoAlignD: 13, AutoAlignDT: 1.0 / 40.0,
		GridAlignK: 120, GridAlignD: 12, GridAlignDT: 1.0 / 60.0,
		SpringDoneEpsilon: 0.05,

		GridAlignMargin: 20,

		MinNodeSize:     100,
		MinBBoxNodeSize: 50,
		MinUniformScale: 0.1,

		GridDotSpacing:           20,
		GridHiddenBelowScale:     0.5,
		CullMarginWorld:          200,
		OverlayHandleMarginCSSPx: 8,

		LODHiddenCSSPx:    5,
		LODGreyBoxCSSPx:   32,
		LODThumbnailCSSPx: 64,

		UndoDepth: 20,

		ZoomWheelUpFactor:   1.1,
		ZoomWheelDownFactor: 0.9,

		DPIPollHysteresis:     0.1,
		ResizeDebounceMS:      100,
		ZoomSaveDebounceMS:    500,
		CacheCleanupDebounceS: 30,
	}
}
