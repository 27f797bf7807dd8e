package blitview

// ScaleMode selects how a logical pixel buffer is mapped onto the
// physical window on each frame.
type ScaleMode uint8

const (
	// ScaleModeFit scales uniformly to the largest size that fits inside
	// the window, preserving aspect ratio. Remaining window area is
	// filled with the background color (letterbox or pillarbox).
	ScaleModeFit ScaleMode = iota

	// ScaleModeFill scales uniformly to the smallest size that covers
	// the window, preserving aspect ratio. Excess content is cropped
	// centered; no background is ever visible.
	ScaleModeFill

	// ScaleModeStretch scales each axis independently to the window
	// size. Aspect ratio is not preserved and no single uniform scale
	// factor exists.
	ScaleModeStretch

	// ScaleModeInteger scales by the largest whole factor that fits,
	// never below 1. Pixels stay block-aligned, never blurred.
	ScaleModeInteger

	// ScaleModeNone presents the buffer at its native size, centered.
	// Content larger than the window is cropped centered.
	ScaleModeNone
)

var scaleModeNames = [...]string{
	ScaleModeFit:     "Fit",
	ScaleModeFill:    "Fill",
	ScaleModeStretch: "Stretch",
	ScaleModeInteger: "Integer",
	ScaleModeNone:    "None",
}

// String returns the mode name.
func (m ScaleMode) String() string {
	if int(m) < len(scaleModeNames) {
		return scaleModeNames[m]
	}
	return "Unknown"
}
