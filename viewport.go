package canvas

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Viewport is the affine offset/scale transform between screen space (CSS
// pixels on the canvas element) and world space (the infinite plane nodes
// live in). Unlike a full camera, it carries no rotation: spec scope is
// offset + scale only.
type Viewport struct {
	Offset Vec2
	Scale  float64

	lastDPR   float64
	resizePendingMS int

	tween *viewportTween
}

// viewportTween holds the gween tweens driving an in-flight h/f camera
// animation, mirroring the teacher's scrollAnim shape for X/Y but adding a
// third tween for scale.
type viewportTween struct {
	tweenX, tweenY, tweenScale *gween.Tween
	doneX, doneY, doneScale    bool
}

// AnimateTo starts (replacing any in-flight animation) a gween ease.OutCubic
// tween of Offset/Scale toward targetOffset/targetScale over duration
// seconds. Used by the h/f keyboard shortcuts.
func (v *Viewport) AnimateTo(targetOffset Vec2, targetScale float64, duration float32) {
	v.tween = &viewportTween{
		tweenX:     gween.New(float32(v.Offset.X), float32(targetOffset.X), duration, ease.OutCubic),
		tweenY:     gween.New(float32(v.Offset.Y), float32(targetOffset.Y), duration, ease.OutCubic),
		tweenScale: gween.New(float32(v.Scale), float32(targetScale), duration, ease.OutCubic),
	}
}

// Animating reports whether an h/f camera tween is still in flight.
func (v *Viewport) Animating() bool { return v.tween != nil }

// StepAnimation advances the in-flight camera tween by dt seconds, clearing
// it once every component has finished.
func (v *Viewport) StepAnimation(dt float32) {
	t := v.tween
	if t == nil {
		return
	}
	if !t.doneX {
		val, done := t.tweenX.Update(dt)
		v.Offset.X = float64(val)
		t.doneX = done
	}
	if !t.doneY {
		val, done := t.tweenY.Update(dt)
		v.Offset.Y = float64(val)
		t.doneY = done
	}
	if !t.doneScale {
		val, done := t.tweenScale.Update(dt)
		v.Scale = float64(val)
		t.doneScale = done
	}
	if t.doneX && t.doneY && t.doneScale {
		v.tween = nil
	}
}

// NewViewport returns the identity viewport: zero offset, scale 1.
func NewViewport() *Viewport {
	return &Viewport{Offset: Vec2{}, Scale: 1, lastDPR: 1}
}

// ScreenToWorld converts a screen-space point to world space.
func (v *Viewport) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	return (sx - v.Offset.X) / v.Scale, (sy - v.Offset.Y) / v.Scale
}

// WorldToScreen converts a world-space point to screen space.
func (v *Viewport) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return wx*v.Scale + v.Offset.X, wy*v.Scale + v.Offset.Y
}

// ZoomAt scales the viewport about screenPoint by factor, updating both
// Offset and Scale so that ScreenToWorld(screenPoint) is unchanged before
// and after the call. Wheel-driven callers must ignore modifier keys and
// pass the fixed factors in Config (1.1 up, 0.9 down).
func (v *Viewport) ZoomAt(screenPoint Vec2, factor float64) {
	wx, wy := v.ScreenToWorld(screenPoint.X, screenPoint.Y)
	v.Scale *= factor
	v.Offset.X = screenPoint.X - wx*v.Scale
	v.Offset.Y = screenPoint.Y - wy*v.Scale
}

// VisibleBounds returns the world-space rectangle visible in a viewportSize
// (CSS pixel) canvas, expanded by margin world units on every side.
func (v *Viewport) VisibleBounds(viewportSize Vec2, margin float64) Rect {
	x0, y0 := v.ScreenToWorld(0, 0)
	x1, y1 := v.ScreenToWorld(viewportSize.X, viewportSize.Y)
	return Rect{
		X:      math.Min(x0, x1) - margin,
		Y:      math.Min(y0, y1) - margin,
		Width:  math.Abs(x1-x0) + 2*margin,
		Height: math.Abs(y1-y0) + 2*margin,
	}
}

// PollDPI checks the current device pixel ratio against the last applied
// value with the configured hysteresis, and reports whether a reapplication
// is due. Call at most once per tick; the caller is expected to invoke this
// no more than 1 Hz per the spec's polling cadence.
func (v *Viewport) PollDPI(currentDPR float64, hysteresis float64) bool {
	if math.Abs(currentDPR-v.lastDPR) < hysteresis {
		return false
	}
	v.lastDPR = currentDPR
	return true
}

// SafetyClampLoad validates a persisted viewport record, returning the
// record unchanged if valid. Otherwise each invalid component is reset on
// its own (offset to zero, scale to 1) and a valid one is kept, with
// ErrCorruptViewport. Mirrors the documented
// clamp-and-reset error-handling policy for corrupt viewport records.
func SafetyClampLoad(offset Vec2, scale float64) (Vec2, float64, error) {
	scaleOK := !math.IsNaN(scale) && !math.IsInf(scale, 0) && scale > 0 && scale <= 10
	offsetOK := isFiniteComponent(offset.X) && isFiniteComponent(offset.Y) &&
		math.Abs(offset.X) <= 1e6 && math.Abs(offset.Y) <= 1e6

	if scaleOK && offsetOK {
		return offset, scale, nil
	}

	result := offset
	resultScale := scale
	if !offsetOK {
		result = Vec2{}
	}
	if !scaleOK {
		resultScale = 1
	}
	return result, resultScale, ErrCorruptViewport
}

func isFiniteComponent(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
