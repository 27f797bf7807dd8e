package blitview

import (
	"github.com/gogpu/blitview/driver"
)

// Window is a native OS window owned by an EventLoop.
//
// A window's size changes only through platform resize events; Size
// reports the dimensions as of the most recently pumped event. Like the
// loop that owns it, a window must only be used from the loop's
// goroutine.
type Window struct {
	loop *EventLoop
	dw   driver.Window

	title  string
	closed bool
}

// ID returns the window's identifier, stable for its lifetime.
func (w *Window) ID() uint64 { return w.dw.ID() }

// Size returns the current physical size in pixels.
func (w *Window) Size() (width, height int) {
	return w.dw.Size()
}

// SetTitle updates the window title.
func (w *Window) SetTitle(title string) {
	w.title = title
	w.dw.SetTitle(title)
}

// Title returns the window title as last set through this Window.
func (w *Window) Title() string { return w.title }

// Closed reports whether Close has been called.
func (w *Window) Closed() bool { return w.closed }

// Close destroys the window and, once the last renderer targeting it
// lets go, its presentation surface. Idempotent.
func (w *Window) Close() {
	if w.closed {
		return
	}
	w.closed = true

	w.loop.arena.ReleaseWindow(w.dw.ID())
	w.loop.removeWindow(w.dw.ID())
	w.dw.Release()
	Logger().Debug("window closed", "window_id", w.dw.ID())
}
