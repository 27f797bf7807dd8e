// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package driver

import (
	"image"

	"github.com/gogpu/gputypes"
)

// Driver is a presentation backend: the piece of platform glue that can
// open a connection to the display server, create native windows, and
// hand out per-window surfaces for pixel upload.
type Driver interface {
	// Name returns the unique backend identifier (e.g. "shiny", "memory").
	Name() string

	// Singleton reports whether the backend's underlying event system is
	// process-wide: at most one Conn may ever be opened. Callers must
	// guard Open accordingly and reuse the existing connection.
	Singleton() bool

	// Open connects to the platform presentation subsystem.
	// A connection is a scarce resource on real display servers; callers
	// keep it for the process lifetime rather than reopening it.
	Open(opts Options) (Conn, error)
}

// Options configures a connection at Open time.
type Options struct {
	// Format is the backing pixel format for surfaces created through
	// this connection. The zero value selects RGBA8.
	Format gputypes.TextureFormat

	// QueueSize is the event queue capacity. Zero selects a default.
	// When the queue is full the oldest pending events are dropped;
	// backends log drops rather than blocking their event thread.
	QueueSize int
}

// DefaultQueueSize is the event queue capacity used when
// Options.QueueSize is zero.
const DefaultQueueSize = 256

// Default window dimensions used when WindowOptions leaves a side zero.
const (
	DefaultWindowWidth  = 640
	DefaultWindowHeight = 480
)

// Format returns the configured pixel format, defaulting to RGBA8.
func (o Options) PixelFormat() gputypes.TextureFormat {
	if o.Format == gputypes.TextureFormatUndefined {
		return gputypes.TextureFormatRGBA8Unorm
	}
	return o.Format
}

// Conn is a live connection to the presentation subsystem.
//
// Conn is the resource whose exhaustion the surface arena exists to
// prevent: display servers refuse new clients after a bounded number of
// connections, so one Conn serves every window and every frame.
type Conn interface {
	// NewWindow creates a native window.
	NewWindow(opts WindowOptions) (Window, error)

	// Events returns the connection's event queue. Backends produce into
	// it from their own event thread; consumers drain it from the UI
	// thread. The channel is closed when the connection closes.
	Events() <-chan Event

	// Close tears down the connection and all windows created through it.
	// Close is idempotent.
	Close() error
}

// WindowOptions configures window creation.
type WindowOptions struct {
	Title  string
	Width  int
	Height int
}

// Window is a native window handle.
type Window interface {
	// ID returns a process-unique identifier, stable for the window's
	// lifetime.
	ID() uint64

	// Size returns the current physical size in pixels. The value
	// reflects the most recent resize observed by the backend.
	Size() (width, height int)

	// SetTitle updates the window title.
	SetTitle(title string)

	// NewSurface allocates the window's presentation surface at the
	// given physical size. Callers create at most one live surface per
	// window; the surface arena enforces this.
	NewSurface(width, height int) (Surface, error)

	// Release destroys the window. Idempotent.
	Release()
}

// Surface is a window-sized framebuffer that can be presented to the
// compositor. It is the per-window backing store; the connection behind
// it is owned by the Conn and is never torn down per frame.
type Surface interface {
	// RGBA returns the backing frame. Pixels are tightly packed RGBA8,
	// row-major. The caller draws into it, then calls Present.
	RGBA() *image.RGBA

	// Size returns the surface's current size in pixels.
	Size() (width, height int)

	// Resize reallocates the backing store at the new size. The
	// presentation connection is untouched.
	Resize(width, height int) error

	// Present submits the current frame contents to the compositor.
	// Safe to call at arbitrary frequency; allocates no per-call
	// platform resources.
	Present() error

	// Release frees the backing store. Idempotent.
	Release() error
}
