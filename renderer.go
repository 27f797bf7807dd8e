package blitview

import (
	"image"
	"image/color"

	"github.com/gogpu/blitview/internal/blit"
	"github.com/gogpu/blitview/surface"
)

// PixelRenderer pushes raw RGBA8 pixel buffers into windows, scaling
// them according to the configured policy.
//
// A renderer validates each buffer, computes the buffer-to-window
// transform, and drives the window's shared presentation surface.
// Any number of renderers may target the same window; they share one
// surface through the loop's arena. All methods follow the loop's
// single-goroutine contract, so the renderer carries no locks.
type PixelRenderer struct {
	opts RenderOptions

	handles map[uint64]*surface.Handle

	// Cached transform from the last render. Reads of the derived
	// properties are O(1); mutators and window resizes invalidate it.
	transform    Transform
	hasTransform bool
	winW, winH   int
	stale        bool

	closed bool
}

// NewRenderer creates a renderer for a logical buffer of the given
// dimensions.
func NewRenderer(bufferWidth, bufferHeight int, opts ...RenderOption) (*PixelRenderer, error) {
	o := DefaultRenderOptions(bufferWidth, bufferHeight)
	for _, opt := range opts {
		opt(&o)
	}
	return NewRendererWithOptions(o)
}

// NewRendererWithOptions creates a renderer from a full configuration
// value.
func NewRendererWithOptions(opts RenderOptions) (*PixelRenderer, error) {
	if opts.BufferWidth <= 0 || opts.BufferHeight <= 0 {
		return nil, &InvalidDimensionsError{Width: opts.BufferWidth, Height: opts.BufferHeight}
	}
	return &PixelRenderer{
		opts:    opts,
		handles: make(map[uint64]*surface.Handle),
		stale:   true,
	}, nil
}

// Render validates buf, maps it onto the window under the current
// scale mode, and presents the frame. buf must hold exactly
// BufferWidth*BufferHeight*4 bytes of tightly packed, row-major RGBA8.
//
// A window that transiently reports zero size (mid-resize) skips the
// frame without error. Render returns once the frame is submitted to
// the compositor.
func (r *PixelRenderer) Render(win *Window, buf []byte) error {
	if r.closed || win == nil || win.Closed() {
		return ErrWindowClosed
	}

	bw, bh := r.opts.BufferWidth, r.opts.BufferHeight
	if len(buf) != bw*bh*4 {
		return &SizeMismatchError{Width: bw, Height: bh, Got: len(buf)}
	}

	winW, winH := win.Size()
	t, ok := r.currentTransform(winW, winH)
	if !ok {
		return nil
	}

	h, err := r.handle(win, winW, winH)
	if err != nil {
		return err
	}
	surf := h.Surface()
	if surf == nil {
		return ErrWindowClosed
	}
	if w, hgt := surf.Size(); w != winW || hgt != winH {
		if err := surf.Resize(winW, winH); err != nil {
			return &SurfaceCreationError{WindowID: win.ID(), Err: err}
		}
	}

	r.compose(surf.RGBA(), buf, t, winW, winH)

	if err := surf.Present(); err != nil {
		return &SurfaceCreationError{WindowID: win.ID(), Err: err}
	}
	return nil
}

// RenderToRGBA maps buf onto dst exactly as Render would onto a window
// of dst's size, without touching any window. Useful for offscreen
// composition and GPU texture upload paths.
func (r *PixelRenderer) RenderToRGBA(dst *image.RGBA, buf []byte) error {
	bw, bh := r.opts.BufferWidth, r.opts.BufferHeight
	if len(buf) != bw*bh*4 {
		return &SizeMismatchError{Width: bw, Height: bh, Got: len(buf)}
	}
	b := dst.Bounds()
	t, ok := r.currentTransform(b.Dx(), b.Dy())
	if !ok {
		return nil
	}
	r.compose(dst, buf, t, b.Dx(), b.Dy())
	return nil
}

// compose clears uncovered window area and blits the buffer per the
// transform.
func (r *PixelRenderer) compose(frame *image.RGBA, buf []byte, t Transform, winW, winH int) {
	if t.Clip.X > 0 || t.Clip.Y > 0 || t.Clip.W < winW || t.Clip.H < winH {
		blit.Clear(frame, r.opts.Background)
	}

	src := blit.Wrap(buf, r.opts.BufferWidth, r.opts.BufferHeight)

	// When the destination exceeds the window the placement recenters
	// below zero, which crops the excess evenly on both sides.
	dx, dy := t.Dest.X, t.Dest.Y
	if t.Dest.W > winW {
		dx = (winW - t.Dest.W) / 2
	}
	if t.Dest.H > winH {
		dy = (winH - t.Dest.H) / 2
	}
	dr := image.Rect(dx, dy, dx+t.Dest.W, dy+t.Dest.H)

	if t.Dest.W == r.opts.BufferWidth && t.Dest.H == r.opts.BufferHeight {
		blit.Copy(frame, dr.Min, src, src.Bounds())
		return
	}
	filter := r.opts.Filter
	if r.effectiveMode() == ScaleModeInteger {
		filter = blit.FilterNearest
	}
	blit.Scale(frame, dr, src, src.Bounds(), filter)
}

// handle returns this renderer's arena handle for the window, acquiring
// it on first use.
func (r *PixelRenderer) handle(win *Window, winW, winH int) (*surface.Handle, error) {
	if h, ok := r.handles[win.ID()]; ok {
		return h, nil
	}
	h, err := win.loop.arena.Acquire(win.dw, winW, winH)
	if err != nil {
		return nil, &SurfaceCreationError{WindowID: win.ID(), Err: err}
	}
	r.handles[win.ID()] = h
	return h, nil
}

// currentTransform returns the cached transform, recomputing it when
// configuration changed or the window size moved. ok is false when any
// dimension is non-positive and the frame should be skipped.
func (r *PixelRenderer) currentTransform(winW, winH int) (Transform, bool) {
	if !r.stale && r.hasTransform && winW == r.winW && winH == r.winH {
		return r.transform, true
	}

	t, ok := Compute(r.opts.BufferWidth, r.opts.BufferHeight, winW, winH, r.effectiveMode())
	if !ok {
		return Transform{}, false
	}
	r.transform = t
	r.hasTransform = true
	r.winW = winW
	r.winH = winH
	r.stale = false
	return t, true
}

// effectiveMode resolves the auto-scale switch: disabled means native
// size regardless of the configured mode.
func (r *PixelRenderer) effectiveMode() ScaleMode {
	if !r.opts.AutoScale {
		return ScaleModeNone
	}
	return r.opts.ScaleMode
}

// BufferWidth returns the configured logical buffer width.
func (r *PixelRenderer) BufferWidth() int { return r.opts.BufferWidth }

// BufferHeight returns the configured logical buffer height.
func (r *PixelRenderer) BufferHeight() int { return r.opts.BufferHeight }

// WindowWidth returns the window width as of the last computed
// transform. Zero before the first render.
func (r *PixelRenderer) WindowWidth() int { return r.winW }

// WindowHeight returns the window height as of the last computed
// transform. Zero before the first render.
func (r *PixelRenderer) WindowHeight() int { return r.winH }

// ScaleFactor returns the uniform scale factor of the last computed
// transform. NaN in Stretch mode; zero before the first render.
func (r *PixelRenderer) ScaleFactor() float64 {
	if !r.hasTransform {
		return 0
	}
	return r.transform.Scale
}

// Transform returns the last computed transform, and whether one has
// been computed at all.
func (r *PixelRenderer) Transform() (Transform, bool) {
	return r.transform, r.hasTransform
}

// ScaleMode returns the configured scale mode.
func (r *PixelRenderer) ScaleMode() ScaleMode { return r.opts.ScaleMode }

// AutoScale reports whether auto-scaling is enabled.
func (r *PixelRenderer) AutoScale() bool { return r.opts.AutoScale }

// Background returns the letterbox fill color.
func (r *PixelRenderer) Background() color.RGBA { return r.opts.Background }

// ResizeBuffer changes the logical buffer dimensions. Non-positive
// dimensions are rejected with *InvalidDimensionsError and the previous
// configuration is retained.
func (r *PixelRenderer) ResizeBuffer(width, height int) error {
	if width <= 0 || height <= 0 {
		return &InvalidDimensionsError{Width: width, Height: height}
	}
	r.opts.BufferWidth = width
	r.opts.BufferHeight = height
	r.stale = true
	return nil
}

// SetScaleMode changes the scaling policy. Takes effect on the next
// render, never retroactively.
func (r *PixelRenderer) SetScaleMode(mode ScaleMode) {
	r.opts.ScaleMode = mode
	r.stale = true
}

// SetAutoScale toggles auto-scaling. Disabled, the renderer behaves as
// ScaleModeNone.
func (r *PixelRenderer) SetAutoScale(enabled bool) {
	r.opts.AutoScale = enabled
	r.stale = true
}

// SetBackgroundColor changes the letterbox fill color.
func (r *PixelRenderer) SetBackgroundColor(c color.RGBA) {
	r.opts.Background = c
	r.stale = true
}

// SetFilter changes the resampling kernel.
func (r *PixelRenderer) SetFilter(f Filter) {
	r.opts.Filter = f
	r.stale = true
}

// Close releases every surface handle this renderer holds. Surfaces
// shared with other renderers stay alive until their last holder
// releases.
func (r *PixelRenderer) Close() {
	if r.closed {
		return
	}
	r.closed = true
	for _, h := range r.handles {
		h.Release()
	}
	r.handles = nil
}

// RenderPixels presents a single frame of buf (width x height RGBA8)
// into the window with default Fit scaling. It is a convenience for
// one-shot rendering; loops that render repeatedly should keep a
// PixelRenderer instead of paying the per-call setup.
func RenderPixels(win *Window, buf []byte, width, height int) error {
	r, err := NewRenderer(width, height)
	if err != nil {
		return err
	}
	defer r.Close()
	return r.Render(win, buf)
}
