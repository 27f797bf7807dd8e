package blitview

import "image/color"

// RenderOptions is the full configuration of a PixelRenderer, passed by
// value. The zero value is not usable; start from DefaultRenderOptions
// or use NewRenderer with functional options.
type RenderOptions struct {
	// BufferWidth and BufferHeight are the logical buffer dimensions.
	// Every buffer passed to Render must hold exactly
	// BufferWidth*BufferHeight*4 bytes.
	BufferWidth  int
	BufferHeight int

	// ScaleMode selects the buffer-to-window mapping policy.
	ScaleMode ScaleMode

	// AutoScale enables the configured ScaleMode. When false the
	// renderer behaves as ScaleModeNone regardless of ScaleMode.
	AutoScale bool

	// Background fills window area not covered by the buffer
	// (letterbox and pillarbox bands).
	Background color.RGBA

	// Filter selects the resampling kernel for fractional scale
	// factors. Integer mode always uses nearest-neighbor.
	Filter Filter
}

// DefaultRenderOptions returns the default configuration for a buffer
// of the given size: Fit mode, auto-scale on, opaque black background,
// nearest-neighbor filtering.
func DefaultRenderOptions(bufferWidth, bufferHeight int) RenderOptions {
	return RenderOptions{
		BufferWidth:  bufferWidth,
		BufferHeight: bufferHeight,
		ScaleMode:    ScaleModeFit,
		AutoScale:    true,
		Background:   color.RGBA{A: 255},
		Filter:       FilterNearest,
	}
}

// RenderOption configures a PixelRenderer during creation.
//
// Example:
//
//	// Defaults: Fit mode, black background
//	r, err := blitview.NewRenderer(640, 480)
//
//	// Pixel-art presentation
//	r, err := blitview.NewRenderer(320, 240,
//	    blitview.WithScaleMode(blitview.ScaleModeInteger),
//	    blitview.WithBackground(color.RGBA{R: 20, G: 20, B: 30, A: 255}))
type RenderOption func(*RenderOptions)

// WithScaleMode sets the scaling policy.
func WithScaleMode(mode ScaleMode) RenderOption {
	return func(o *RenderOptions) {
		o.ScaleMode = mode
	}
}

// WithAutoScale enables or disables auto-scaling. Disabled, the
// renderer presents at native size regardless of the configured mode.
func WithAutoScale(enabled bool) RenderOption {
	return func(o *RenderOptions) {
		o.AutoScale = enabled
	}
}

// WithBackground sets the letterbox fill color.
func WithBackground(c color.RGBA) RenderOption {
	return func(o *RenderOptions) {
		o.Background = c
	}
}

// WithFilter sets the resampling kernel used at fractional scale
// factors.
func WithFilter(f Filter) RenderOption {
	return func(o *RenderOptions) {
		o.Filter = f
	}
}
