// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package memory

import (
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/blitview/driver"
)

// Window is a headless window. It tracks a size and a title but owns no
// platform resources.
type Window struct {
	conn *Conn
	id   uint64

	mu       sync.Mutex
	title    string
	width    int
	height   int
	released bool
}

// ID returns the window's process-unique identifier.
func (w *Window) ID() uint64 { return w.id }

// Size returns the current window size in pixels.
func (w *Window) Size() (width, height int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width, w.height
}

// SetTitle updates the window title.
func (w *Window) SetTitle(title string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.title = title
}

// Title returns the current window title.
func (w *Window) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}

// SetSize simulates a user resize. A Resized event is queued.
func (w *Window) SetSize(width, height int) {
	w.mu.Lock()
	if w.released || (w.width == width && w.height == height) {
		w.mu.Unlock()
		return
	}
	w.width = width
	w.height = height
	w.mu.Unlock()

	w.conn.emit(driver.Event{Kind: driver.EventResized, WindowID: w.id})
}

// RequestClose simulates the user clicking the close button.
// A CloseRequested event is queued; the window stays alive until
// Release is called.
func (w *Window) RequestClose() {
	w.mu.Lock()
	released := w.released
	w.mu.Unlock()
	if released {
		return
	}
	w.conn.emit(driver.Event{Kind: driver.EventCloseRequested, WindowID: w.id})
}

// NewSurface allocates a new in-memory surface for this window.
func (w *Window) NewSurface(width, height int) (driver.Surface, error) {
	w.mu.Lock()
	released := w.released
	w.mu.Unlock()
	if released {
		return nil, fmt.Errorf("memory: window %d: %w", w.id, driver.ErrConnClosed)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("memory: surface size %dx%d out of range", width, height)
	}

	w.conn.surfaceCreations.Add(1)
	return &Surface{
		conn:   w.conn,
		buf:    image.NewRGBA(image.Rect(0, 0, width, height)),
		width:  width,
		height: height,
	}, nil
}

// Release destroys the window. A Destroyed event is queued on the first
// call; subsequent calls are no-ops.
func (w *Window) Release() {
	w.mu.Lock()
	if w.released {
		w.mu.Unlock()
		return
	}
	w.released = true
	w.mu.Unlock()

	w.conn.mu.Lock()
	if w.conn.windows != nil {
		delete(w.conn.windows, w.id)
	}
	closed := w.conn.closed
	w.conn.mu.Unlock()

	if !closed {
		w.conn.emit(driver.Event{Kind: driver.EventDestroyed, WindowID: w.id})
	}
}

// Surface is an in-memory framebuffer. Present only counts; the frame
// stays readable through RGBA, which lets tests assert pixel output.
type Surface struct {
	conn *Conn

	mu       sync.Mutex
	buf      *image.RGBA
	width    int
	height   int
	released bool
}

// RGBA returns the backing frame.
func (s *Surface) RGBA() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf
}

// Size returns the surface size in pixels.
func (s *Surface) Size() (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Resize reallocates the backing frame at the new size.
func (s *Surface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("memory: surface size %dx%d out of range", width, height)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return driver.ErrSurfaceReleased
	}
	if width == s.width && height == s.height {
		return nil
	}
	s.buf = image.NewRGBA(image.Rect(0, 0, width, height))
	s.width = width
	s.height = height
	return nil
}

// Present records a presented frame.
func (s *Surface) Present() error {
	s.mu.Lock()
	released := s.released
	s.mu.Unlock()
	if released {
		return driver.ErrSurfaceReleased
	}
	s.conn.presents.Add(1)
	return nil
}

// Release frees the backing frame. Idempotent.
func (s *Surface) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.released = true
	s.buf = nil
	return nil
}

var _ driver.Window = (*Window)(nil)
var _ driver.Surface = (*Surface)(nil)
