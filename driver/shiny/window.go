// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shiny

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/gogpu/blitview/driver"
)

// Window wraps a shiny window and forwards its event stream into the
// connection queue.
type Window struct {
	conn *Conn
	sw   screen.Window
	id   uint64

	mu       sync.Mutex
	width    int
	height   int
	surf     *Surface
	released bool
}

// ID returns the window's process-unique identifier.
func (w *Window) ID() uint64 { return w.id }

// Size returns the window size as of the most recent size event.
func (w *Window) Size() (width, height int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width, w.height
}

// SetTitle is accepted but has no effect: the shiny screen API fixes
// the title at window creation.
func (w *Window) SetTitle(title string) {}

// NewSurface allocates a pixel buffer surface for this window.
func (w *Window) NewSurface(width, height int) (driver.Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("shiny: surface size %dx%d out of range", width, height)
	}
	buf, err := w.conn.newBuffer(width, height)
	if err != nil {
		return nil, fmt.Errorf("shiny: create buffer: %w", err)
	}

	s := &Surface{win: w, buf: buf, width: width, height: height}
	w.mu.Lock()
	w.surf = s
	w.mu.Unlock()
	return s, nil
}

// Release destroys the window. Idempotent.
func (w *Window) Release() {
	w.mu.Lock()
	if w.released {
		w.mu.Unlock()
		return
	}
	w.released = true
	w.mu.Unlock()

	w.conn.removeWindow(w.id)
	w.sw.Release()
}

// forwardEvents pumps the shiny per-window event stream, translating
// it into the connection's queue. It runs until the window reaches
// StageDead.
func (w *Window) forwardEvents() {
	for {
		switch e := w.sw.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageFocused {
				w.conn.emit(driver.Event{Kind: driver.EventFocused, WindowID: w.id})
			} else if e.From == lifecycle.StageFocused {
				w.conn.emit(driver.Event{Kind: driver.EventUnfocused, WindowID: w.id})
			}
			if e.To == lifecycle.StageDead {
				// The platform reports close and destruction as one
				// transition; surface them as the two events the
				// application contract distinguishes.
				w.conn.emit(driver.Event{Kind: driver.EventCloseRequested, WindowID: w.id})
				w.conn.emit(driver.Event{Kind: driver.EventDestroyed, WindowID: w.id})
				w.conn.removeWindow(w.id)
				return
			}

		case size.Event:
			w.mu.Lock()
			w.width = e.WidthPx
			w.height = e.HeightPx
			w.mu.Unlock()
			w.conn.emit(driver.Event{Kind: driver.EventResized, WindowID: w.id})

		case paint.Event:
			// The compositor wants the frame again (expose, unhide).
			w.mu.Lock()
			s := w.surf
			w.mu.Unlock()
			if s != nil {
				s.Present()
			}

		case mouse.Event:
			kind := driver.EventCursorMoved
			if e.Direction == mouse.DirPress || e.Direction == mouse.DirRelease {
				kind = driver.EventMouseInput
			}
			w.conn.emit(driver.Event{Kind: kind, WindowID: w.id})

		case key.Event:
			w.conn.emit(driver.Event{Kind: driver.EventKeyboardInput, WindowID: w.id})

		case error:
			w.conn.logger.Warn("shiny: window event error", "window_id", w.id, "error", e)
		}
	}
}

// Surface is a shiny pixel buffer bound to one window. Present uploads
// the buffer and publishes the frame; no platform resource is created
// per call.
type Surface struct {
	win *Window

	mu       sync.Mutex
	buf      screen.Buffer
	width    int
	height   int
	released bool
}

// RGBA returns the backing frame.
func (s *Surface) RGBA() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buf == nil {
		return nil
	}
	return s.buf.RGBA()
}

// Size returns the surface size in pixels.
func (s *Surface) Size() (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Resize replaces the backing buffer at the new size. The screen
// connection is untouched.
func (s *Surface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("shiny: surface size %dx%d out of range", width, height)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return driver.ErrSurfaceReleased
	}
	if width == s.width && height == s.height {
		return nil
	}
	buf, err := s.win.conn.newBuffer(width, height)
	if err != nil {
		return fmt.Errorf("shiny: resize buffer: %w", err)
	}
	s.buf.Release()
	s.buf = buf
	s.width = width
	s.height = height
	return nil
}

// Present uploads the frame to the window and publishes it.
func (s *Surface) Present() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released || s.buf == nil {
		return driver.ErrSurfaceReleased
	}
	s.win.sw.Upload(image.Point{}, s.buf, s.buf.Bounds())
	s.win.sw.Publish()
	return nil
}

// Release frees the backing buffer. Idempotent.
func (s *Surface) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return nil
	}
	s.released = true
	s.buf.Release()
	s.buf = nil

	s.win.mu.Lock()
	if s.win.surf == s {
		s.win.surf = nil
	}
	s.win.mu.Unlock()
	return nil
}

var _ driver.Window = (*Window)(nil)
var _ driver.Surface = (*Surface)(nil)
