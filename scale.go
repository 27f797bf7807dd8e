package blitview

import (
	"fmt"
	"math"
)

// Rect is an axis-aligned rectangle in window pixel coordinates.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

func (r Rect) String() string {
	return fmt.Sprintf("{x:%d y:%d w:%d h:%d}", r.X, r.Y, r.W, r.H)
}

// Transform describes how one frame of a logical buffer maps onto the
// physical window.
//
// Dest is the placement of the scaled buffer: offsets are centered and
// never negative, but Dest.W/Dest.H may exceed the window (Fill mode,
// or None with an oversized buffer). Clip is the visible part of Dest,
// intersected with the window; when Clip is smaller than Dest the
// excess source content is cropped centered.
type Transform struct {
	Dest Rect
	Clip Rect

	// Scale is the uniform scale factor. NaN for Stretch, where the
	// axes scale independently.
	Scale float64

	// ScaleX and ScaleY are the per-axis factors. Equal to Scale for
	// every mode except Stretch.
	ScaleX float64
	ScaleY float64
}

// Compute maps a logical buffer of bufW x bufH onto a window of
// winW x winH under the given mode. It is a pure function with no I/O.
//
// The second return value is false when any dimension is not positive:
// a window mid-resize may transiently report zero size, and the frame
// is simply skipped rather than failed.
func Compute(bufW, bufH, winW, winH int, mode ScaleMode) (Transform, bool) {
	if bufW <= 0 || bufH <= 0 || winW <= 0 || winH <= 0 {
		return Transform{}, false
	}

	var t Transform
	switch mode {
	case ScaleModeStretch:
		t.Dest = Rect{X: 0, Y: 0, W: winW, H: winH}
		t.Scale = math.NaN()
		t.ScaleX = float64(winW) / float64(bufW)
		t.ScaleY = float64(winH) / float64(bufH)

	case ScaleModeFit:
		scale := math.Min(
			float64(winW)/float64(bufW),
			float64(winH)/float64(bufH),
		)
		// Truncate, then clamp: rounding must never spill past the
		// window edge.
		w := min(int(float64(bufW)*scale), winW)
		h := min(int(float64(bufH)*scale), winH)
		t.Dest = Rect{X: centered(winW, w), Y: centered(winH, h), W: w, H: h}
		t.Scale = scale
		t.ScaleX = scale
		t.ScaleY = scale

	case ScaleModeFill:
		scale := math.Max(
			float64(winW)/float64(bufW),
			float64(winH)/float64(bufH),
		)
		w := int(float64(bufW) * scale)
		h := int(float64(bufH) * scale)
		t.Dest = Rect{X: centered(winW, w), Y: centered(winH, h), W: w, H: h}
		t.Scale = scale
		t.ScaleX = scale
		t.ScaleY = scale

	case ScaleModeInteger:
		scale := int(math.Floor(math.Min(
			float64(winW)/float64(bufW),
			float64(winH)/float64(bufH),
		)))
		if scale < 1 {
			scale = 1
		}
		w := bufW * scale
		h := bufH * scale
		t.Dest = Rect{X: centered(winW, w), Y: centered(winH, h), W: w, H: h}
		t.Scale = float64(scale)
		t.ScaleX = t.Scale
		t.ScaleY = t.Scale

	default: // ScaleModeNone
		t.Dest = Rect{X: centered(winW, bufW), Y: centered(winH, bufH), W: bufW, H: bufH}
		t.Scale = 1
		t.ScaleX = 1
		t.ScaleY = 1
	}

	t.Clip = Rect{
		X: t.Dest.X,
		Y: t.Dest.Y,
		W: min(t.Dest.W, winW-t.Dest.X),
		H: min(t.Dest.H, winH-t.Dest.Y),
	}
	return t, true
}

// centered returns the offset that centers inner within outer,
// saturating at zero when inner is larger.
func centered(outer, inner int) int {
	if inner >= outer {
		return 0
	}
	return (outer - inner) / 2
}
