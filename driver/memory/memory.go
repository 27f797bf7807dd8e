// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package memory provides a headless in-memory presentation backend.
//
// Windows are plain structs and surfaces are image.RGBA buffers; Present
// is a no-op that only bumps a counter. The backend exists for tests,
// CI, and server-side rendering where no display system is present.
// It is always available and registers itself at priority 10.
package memory

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/blitview/driver"
	"github.com/gogpu/gputypes"
)

// Priority of the memory backend. Low so that any native backend wins.
const Priority = 10

func init() {
	driver.Register("memory", Priority, &Driver{}, nil)
}

// Driver is the headless backend entry point.
type Driver struct {
	mu     sync.Mutex
	logger *slog.Logger
}

// Name returns the backend name.
func (d *Driver) Name() string { return "memory" }

// Singleton reports whether only one Conn may exist per process.
// The memory backend has no shared display state, so any number of
// connections may coexist.
func (d *Driver) Singleton() bool { return false }

// SetLogger sets the logger used by connections opened after this call.
func (d *Driver) SetLogger(logger *slog.Logger) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logger = logger
}

// Open creates a new headless connection.
func (d *Driver) Open(opts driver.Options) (driver.Conn, error) {
	d.mu.Lock()
	logger := d.logger
	d.mu.Unlock()
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	queueSize := opts.QueueSize
	if queueSize <= 0 {
		queueSize = driver.DefaultQueueSize
	}

	c := &Conn{
		format:  opts.PixelFormat(),
		events:  make(chan driver.Event, queueSize),
		windows: make(map[uint64]*Window),
		logger:  logger,
	}
	logger.Debug("memory: connection opened", "queue_size", queueSize)
	return c, nil
}

// Conn is a headless display connection.
//
// Events produced by window operations (SetSize, RequestClose, Release)
// are queued on a buffered channel. If the queue is full the event is
// dropped; headless consumers that care about events must drain them.
type Conn struct {
	format gputypes.TextureFormat

	mu      sync.Mutex
	closed  bool
	nextID  uint64
	windows map[uint64]*Window

	events chan driver.Event
	logger *slog.Logger

	surfaceCreations atomic.Int64
	presents         atomic.Int64
}

// Format returns the pixel format surfaces on this connection use.
func (c *Conn) Format() gputypes.TextureFormat {
	return c.format
}

// NewWindow creates a new headless window.
func (c *Conn) NewWindow(opts driver.WindowOptions) (driver.Window, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, driver.ErrConnClosed
	}

	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = driver.DefaultWindowWidth
	}
	if height <= 0 {
		height = driver.DefaultWindowHeight
	}

	c.nextID++
	w := &Window{
		conn:   c,
		id:     c.nextID,
		title:  opts.Title,
		width:  width,
		height: height,
	}
	c.windows[w.id] = w

	c.logger.Debug("memory: window created",
		"id", w.id, "width", width, "height", height)
	return w, nil
}

// Events returns the connection's event stream.
func (c *Conn) Events() <-chan driver.Event {
	return c.events
}

// Close releases the connection and all of its windows.
func (c *Conn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	windows := make([]*Window, 0, len(c.windows))
	for _, w := range c.windows {
		windows = append(windows, w)
	}
	c.windows = nil
	c.mu.Unlock()

	for _, w := range windows {
		w.Release()
	}
	close(c.events)
	c.logger.Debug("memory: connection closed")
	return nil
}

// SurfaceCreations returns the number of surfaces created on this
// connection. Useful for asserting surface reuse in tests.
func (c *Conn) SurfaceCreations() int64 {
	return c.surfaceCreations.Load()
}

// Presents returns the number of Present calls on this connection.
func (c *Conn) Presents() int64 {
	return c.presents.Load()
}

// Window returns the live window with the given ID, if any.
func (c *Conn) Window(id uint64) (*Window, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	w, ok := c.windows[id]
	return w, ok
}

// emit queues an event, dropping it if the queue is full.
func (c *Conn) emit(ev driver.Event) {
	select {
	case c.events <- ev:
	default:
		c.logger.Warn("memory: event queue full, dropping event",
			"kind", ev.Kind.String(), "window_id", ev.WindowID)
	}
}

var _ driver.Driver = (*Driver)(nil)
var _ driver.Conn = (*Conn)(nil)

func (c *Conn) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fmt.Sprintf("memory.Conn{windows: %d}", len(c.windows))
}
