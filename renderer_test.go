package blitview

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

func solidBuffer(w, h int, c color.RGBA) []byte {
	buf := make([]byte, w*h*4)
	for i := 0; i < len(buf); i += 4 {
		buf[i+0] = c.R
		buf[i+1] = c.G
		buf[i+2] = c.B
		buf[i+3] = c.A
	}
	return buf
}

func TestNewRejectsBadDimensions(t *testing.T) {
	for _, tc := range []struct{ w, h int }{{0, 480}, {640, 0}, {-1, 480}, {640, -1}} {
		_, err := NewRenderer(tc.w, tc.h)
		var dimErr *InvalidDimensionsError
		if !errors.As(err, &dimErr) {
			t.Errorf("NewRenderer(%d, %d) error = %v, want *InvalidDimensionsError", tc.w, tc.h, err)
		}
	}
}

func TestRenderAcceptsExactLength(t *testing.T) {
	loop := newTestLoop(t)
	win, _ := loop.NewWindow(WindowOptions{Width: 800, Height: 600})
	r, _ := NewRenderer(640, 480)
	defer r.Close()

	if err := r.Render(win, make([]byte, 640*480*4)); err != nil {
		t.Errorf("Render() with exact-length buffer error = %v", err)
	}
}

func TestRenderSizeMismatch(t *testing.T) {
	loop := newTestLoop(t)
	win, _ := loop.NewWindow(WindowOptions{Width: 800, Height: 600})
	r, _ := NewRenderer(640, 480)
	defer r.Close()

	for _, n := range []int{0, 1, 640*480*4 - 1, 640*480*4 + 1, 640 * 480 * 3} {
		err := r.Render(win, make([]byte, n))
		var sizeErr *SizeMismatchError
		if !errors.As(err, &sizeErr) {
			t.Fatalf("Render() with %d bytes error = %v, want *SizeMismatchError", n, err)
		}
		if sizeErr.Got != n {
			t.Errorf("Got = %d, want %d", sizeErr.Got, n)
		}
	}

	// A failed render must not touch the surface.
	conn := memConn(t, loop)
	if got := conn.Presents(); got != 0 {
		t.Errorf("Presents() after failed renders = %d, want 0", got)
	}

	// And the caller can retry with a corrected buffer.
	if err := r.Render(win, make([]byte, 640*480*4)); err != nil {
		t.Errorf("retry with corrected buffer error = %v", err)
	}
}

func TestRenderZeroSizedWindowSkips(t *testing.T) {
	loop := newTestLoop(t)
	win, _ := loop.NewWindow(WindowOptions{Width: 800, Height: 600})
	conn := memConn(t, loop)
	mw, _ := conn.Window(win.ID())
	mw.SetSize(0, 0)

	r, _ := NewRenderer(640, 480)
	defer r.Close()

	if err := r.Render(win, make([]byte, 640*480*4)); err != nil {
		t.Errorf("Render() against zero-size window error = %v, want skip", err)
	}
	if got := conn.SurfaceCreations(); got != 0 {
		t.Errorf("SurfaceCreations() = %d, want 0 (frame skipped)", got)
	}
}

func TestRenderClosedWindow(t *testing.T) {
	loop := newTestLoop(t)
	win, _ := loop.NewWindow(WindowOptions{Width: 800, Height: 600})
	win.Close()

	r, _ := NewRenderer(640, 480)
	defer r.Close()

	if err := r.Render(win, make([]byte, 640*480*4)); !errors.Is(err, ErrWindowClosed) {
		t.Errorf("Render() to closed window error = %v, want ErrWindowClosed", err)
	}
}

// Regression for the per-frame connection leak: thousands of frames
// through one renderer must create exactly one surface.
func TestTenThousandRendersOneSurface(t *testing.T) {
	loop := newTestLoop(t)
	win, _ := loop.NewWindow(WindowOptions{Width: 800, Height: 600})
	r, _ := NewRenderer(640, 480)
	defer r.Close()

	buf := solidBuffer(640, 480, color.RGBA{R: 40, G: 80, B: 120, A: 255})
	for frame := 0; frame < 10000; frame++ {
		if err := r.Render(win, buf); err != nil {
			t.Fatalf("frame %d: Render() error = %v", frame, err)
		}
	}

	conn := memConn(t, loop)
	if got := conn.SurfaceCreations(); got != 1 {
		t.Errorf("SurfaceCreations() after 10000 frames = %d, want 1", got)
	}
	if got := conn.Presents(); got != 10000 {
		t.Errorf("Presents() = %d, want 10000", got)
	}
}

// Independent renderer façades targeting one window share a single
// surface through the arena.
func TestTenRenderersShareOneSurface(t *testing.T) {
	loop := newTestLoop(t)
	win, _ := loop.NewWindow(WindowOptions{Width: 800, Height: 600})

	buf := solidBuffer(640, 480, color.RGBA{A: 255})
	renderers := make([]*PixelRenderer, 10)
	for i := range renderers {
		r, err := NewRenderer(640, 480)
		if err != nil {
			t.Fatalf("NewRenderer() #%d error = %v", i, err)
		}
		defer r.Close()
		renderers[i] = r
	}

	for frame := 0; frame < 30; frame++ {
		for i, r := range renderers {
			if err := r.Render(win, buf); err != nil {
				t.Fatalf("renderer %d frame %d: Render() error = %v", i, frame, err)
			}
		}
	}

	conn := memConn(t, loop)
	if got := conn.SurfaceCreations(); got != 1 {
		t.Errorf("SurfaceCreations() with 10 renderers = %d, want 1, not 10", got)
	}
}

func TestRenderTracksWindowResize(t *testing.T) {
	loop := newTestLoop(t)
	win, _ := loop.NewWindow(WindowOptions{Width: 800, Height: 600})
	r, _ := NewRenderer(640, 480)
	defer r.Close()

	buf := make([]byte, 640*480*4)
	if err := r.Render(win, buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if r.WindowWidth() != 800 || r.WindowHeight() != 600 {
		t.Errorf("window props = %dx%d, want 800x600", r.WindowWidth(), r.WindowHeight())
	}

	conn := memConn(t, loop)
	mw, _ := conn.Window(win.ID())
	mw.SetSize(1280, 960)
	loop.RunIteration()

	if err := r.Render(win, buf); err != nil {
		t.Fatalf("Render() after resize error = %v", err)
	}
	if r.WindowWidth() != 1280 || r.WindowHeight() != 960 {
		t.Errorf("window props = %dx%d, want 1280x960", r.WindowWidth(), r.WindowHeight())
	}
	if r.ScaleFactor() != 2 {
		t.Errorf("ScaleFactor() = %v, want 2 (Fit doubles 640x480 into 1280x960)", r.ScaleFactor())
	}
	// Resize reuses the surface; only the backing store changes.
	if got := conn.SurfaceCreations(); got != 1 {
		t.Errorf("SurfaceCreations() after resize = %d, want 1", got)
	}
}

func TestDerivedPropertiesReflectLastRender(t *testing.T) {
	loop := newTestLoop(t)
	win, _ := loop.NewWindow(WindowOptions{Width: 800, Height: 600})
	r, _ := NewRenderer(640, 480)
	defer r.Close()

	if r.ScaleFactor() != 0 {
		t.Errorf("ScaleFactor() before first render = %v, want 0", r.ScaleFactor())
	}
	if _, ok := r.Transform(); ok {
		t.Error("Transform() ok = true before first render")
	}

	if err := r.Render(win, make([]byte, 640*480*4)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if r.ScaleFactor() != 1.25 {
		t.Errorf("ScaleFactor() = %v, want 1.25", r.ScaleFactor())
	}
	tr, ok := r.Transform()
	if !ok {
		t.Fatal("Transform() ok = false after render")
	}
	if tr.Dest != (Rect{0, 0, 800, 600}) {
		t.Errorf("Dest = %v, want {0 0 800 600}", tr.Dest)
	}
	if r.ScaleMode() != ScaleModeFit || !r.AutoScale() {
		t.Errorf("mode/auto = %v/%v, want Fit/true", r.ScaleMode(), r.AutoScale())
	}
}

func TestStretchScaleFactorNaN(t *testing.T) {
	loop := newTestLoop(t)
	win, _ := loop.NewWindow(WindowOptions{Width: 800, Height: 600})
	r, _ := NewRenderer(640, 480, WithScaleMode(ScaleModeStretch))
	defer r.Close()

	if err := r.Render(win, make([]byte, 640*480*4)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !math.IsNaN(r.ScaleFactor()) {
		t.Errorf("ScaleFactor() = %v, want NaN in Stretch mode", r.ScaleFactor())
	}
}

func TestAutoScaleOffBehavesAsNone(t *testing.T) {
	for _, mode := range []ScaleMode{ScaleModeFit, ScaleModeFill, ScaleModeStretch, ScaleModeInteger} {
		r, _ := NewRenderer(640, 480, WithScaleMode(mode), WithAutoScale(false))

		dst := image.NewRGBA(image.Rect(0, 0, 800, 600))
		if err := r.RenderToRGBA(dst, make([]byte, 640*480*4)); err != nil {
			t.Fatalf("mode %v: RenderToRGBA() error = %v", mode, err)
		}

		tr, ok := r.Transform()
		if !ok {
			t.Fatalf("mode %v: no transform computed", mode)
		}
		want := Rect{80, 60, 640, 480}
		if tr.Dest != want {
			t.Errorf("mode %v with auto-scale off: Dest = %v, want %v (None behavior)",
				mode, tr.Dest, want)
		}
		r.Close()
	}
}

func TestMutatorsInvalidateTransform(t *testing.T) {
	loop := newTestLoop(t)
	win, _ := loop.NewWindow(WindowOptions{Width: 800, Height: 600})
	r, _ := NewRenderer(640, 480)
	defer r.Close()

	buf := make([]byte, 640*480*4)
	if err := r.Render(win, buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if r.ScaleFactor() != 1.25 {
		t.Fatalf("ScaleFactor() = %v, want 1.25", r.ScaleFactor())
	}

	// Mode change takes effect on the next render, not immediately.
	r.SetScaleMode(ScaleModeInteger)
	if r.ScaleFactor() != 1.25 {
		t.Errorf("ScaleFactor() right after SetScaleMode = %v, want stale 1.25", r.ScaleFactor())
	}
	if err := r.Render(win, buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if r.ScaleFactor() != 1 {
		t.Errorf("ScaleFactor() after Integer render = %v, want 1", r.ScaleFactor())
	}
}

func TestResizeBuffer(t *testing.T) {
	r, _ := NewRenderer(640, 480)

	if err := r.ResizeBuffer(320, 240); err != nil {
		t.Fatalf("ResizeBuffer() error = %v", err)
	}
	if r.BufferWidth() != 320 || r.BufferHeight() != 240 {
		t.Errorf("buffer = %dx%d, want 320x240", r.BufferWidth(), r.BufferHeight())
	}

	err := r.ResizeBuffer(0, 240)
	var dimErr *InvalidDimensionsError
	if !errors.As(err, &dimErr) {
		t.Fatalf("ResizeBuffer(0, 240) error = %v, want *InvalidDimensionsError", err)
	}
	// Previous state retained.
	if r.BufferWidth() != 320 || r.BufferHeight() != 240 {
		t.Errorf("buffer after failed resize = %dx%d, want 320x240", r.BufferWidth(), r.BufferHeight())
	}
}

func TestRenderPixelOutputFit(t *testing.T) {
	// 320x240 into 640x480 doubles exactly; every output pixel is
	// content, no background.
	r, _ := NewRenderer(320, 240)
	defer r.Close()

	content := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	dst := image.NewRGBA(image.Rect(0, 0, 640, 480))
	if err := r.RenderToRGBA(dst, solidBuffer(320, 240, content)); err != nil {
		t.Fatalf("RenderToRGBA() error = %v", err)
	}

	for _, pt := range []image.Point{{0, 0}, {639, 0}, {0, 479}, {639, 479}, {320, 240}} {
		if got := dst.RGBAAt(pt.X, pt.Y); got != content {
			t.Errorf("pixel %v = %v, want %v", pt, got, content)
		}
	}
}

func TestRenderPixelOutputLetterbox(t *testing.T) {
	// Square buffer in a wide frame: pillarbox bands take the
	// background color, content fills the center.
	bg := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	content := color.RGBA{R: 240, G: 240, B: 240, A: 255}

	r, _ := NewRenderer(100, 100, WithBackground(bg))
	defer r.Close()

	dst := image.NewRGBA(image.Rect(0, 0, 400, 200))
	if err := r.RenderToRGBA(dst, solidBuffer(100, 100, content)); err != nil {
		t.Fatalf("RenderToRGBA() error = %v", err)
	}

	// Content spans x in [100, 300).
	if got := dst.RGBAAt(50, 100); got != bg {
		t.Errorf("left band = %v, want background %v", got, bg)
	}
	if got := dst.RGBAAt(350, 100); got != bg {
		t.Errorf("right band = %v, want background %v", got, bg)
	}
	if got := dst.RGBAAt(200, 100); got != content {
		t.Errorf("center = %v, want content %v", got, content)
	}
}

func TestRenderPixelOutputFillCropsCentered(t *testing.T) {
	// A wide buffer with distinct thirds filled into a square frame:
	// Fill crops left and right evenly, so the visible content is the
	// middle of the buffer and the edge columns come from inside the
	// left and right thirds.
	left := color.RGBA{R: 255, A: 255}
	mid := color.RGBA{G: 255, A: 255}
	right := color.RGBA{B: 255, A: 255}

	buf := make([]byte, 300*100*4)
	for y := 0; y < 100; y++ {
		for x := 0; x < 300; x++ {
			c := left
			if x >= 200 {
				c = right
			} else if x >= 100 {
				c = mid
			}
			i := (y*300 + x) * 4
			buf[i+0] = c.R
			buf[i+1] = c.G
			buf[i+2] = c.B
			buf[i+3] = c.A
		}
	}

	r, _ := NewRenderer(300, 100, WithScaleMode(ScaleModeFill))
	defer r.Close()

	dst := image.NewRGBA(image.Rect(0, 0, 100, 100))
	if err := r.RenderToRGBA(dst, buf); err != nil {
		t.Fatalf("RenderToRGBA() error = %v", err)
	}

	// Scale factor is 1 (height-limited); visible x range of the
	// buffer is [100, 200): entirely the middle third.
	if got := dst.RGBAAt(50, 50); got != mid {
		t.Errorf("center = %v, want middle third %v", got, mid)
	}
	if got := dst.RGBAAt(0, 50); got != mid {
		t.Errorf("left edge = %v, want middle third %v (centered crop)", got, mid)
	}
	if got := dst.RGBAAt(99, 50); got != mid {
		t.Errorf("right edge = %v, want middle third %v (centered crop)", got, mid)
	}
}

func TestRenderPixelOutputNoneCropsCentered(t *testing.T) {
	// Buffer twice the frame size at native scale: the visible region
	// is the buffer's center.
	r, _ := NewRenderer(200, 200, WithScaleMode(ScaleModeNone))
	defer r.Close()

	buf := make([]byte, 200*200*4)
	// Mark the exact center pixel.
	center := (100*200 + 100) * 4
	buf[center+0] = 255
	buf[center+3] = 255

	dst := image.NewRGBA(image.Rect(0, 0, 100, 100))
	if err := r.RenderToRGBA(dst, buf); err != nil {
		t.Fatalf("RenderToRGBA() error = %v", err)
	}

	// Buffer pixel (100,100) lands at frame (50,50).
	if got := dst.RGBAAt(50, 50); got.R != 255 {
		t.Errorf("frame(50,50).R = %d, want 255 (buffer center visible)", got.R)
	}
}

func TestRendererCloseReleasesHandles(t *testing.T) {
	loop := newTestLoop(t)
	win, _ := loop.NewWindow(WindowOptions{Width: 800, Height: 600})

	r, _ := NewRenderer(640, 480)
	if err := r.Render(win, make([]byte, 640*480*4)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	r.Close()
	r.Close()

	if err := r.Render(win, make([]byte, 640*480*4)); !errors.Is(err, ErrWindowClosed) {
		t.Errorf("Render() after Close error = %v, want ErrWindowClosed", err)
	}

	// With the renderer gone, closing the window frees the surface.
	win.Close()
	if got := loop.arena.Live(); got != 0 {
		t.Errorf("arena.Live() = %d, want 0", got)
	}
}

func TestRenderPixelsOneShot(t *testing.T) {
	loop := newTestLoop(t)
	win, _ := loop.NewWindow(WindowOptions{Width: 800, Height: 600})

	buf := solidBuffer(640, 480, color.RGBA{R: 5, A: 255})
	for i := 0; i < 50; i++ {
		if err := RenderPixels(win, buf, 640, 480); err != nil {
			t.Fatalf("RenderPixels() #%d error = %v", i, err)
		}
	}

	// One-shot renderers release their handles, but the window's
	// surface survives in the arena: still exactly one creation.
	conn := memConn(t, loop)
	if got := conn.SurfaceCreations(); got != 1 {
		t.Errorf("SurfaceCreations() after 50 one-shots = %d, want 1", got)
	}
}
