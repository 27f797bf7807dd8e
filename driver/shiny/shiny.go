// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package shiny implements the native presentation backend on
// golang.org/x/exp/shiny/screen.
//
// Importing the package registers the backend at priority 100; it is
// selected automatically whenever a display server is reachable:
//
//	import _ "github.com/gogpu/blitview/driver/shiny"
//
// The shiny event system initializes process-wide state that cannot be
// torn down and re-created, so the backend is a singleton: at most one
// connection per process, guarded by the event loop layer.
package shiny

import (
	"fmt"
	"image"
	"log/slog"
	"sync"

	sdriver "golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"

	"github.com/gogpu/blitview"
	"github.com/gogpu/blitview/driver"
)

// Priority of the shiny backend. High so that it wins over headless
// backends whenever a display is present.
const Priority = 100

func init() {
	driver.Register("shiny", Priority, &Driver{}, func() bool {
		return !blitview.DetectPlatform().Headless()
	})
}

// Driver is the shiny backend entry point.
type Driver struct {
	mu     sync.Mutex
	logger *slog.Logger
	opened bool
}

// Name returns the backend name.
func (d *Driver) Name() string { return "shiny" }

// Singleton reports that only one connection may exist per process.
func (d *Driver) Singleton() bool { return true }

// SetLogger sets the logger used by connections opened after this call.
func (d *Driver) SetLogger(logger *slog.Logger) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logger = logger
}

// Open starts the shiny event system and returns the process's one
// connection.
func (d *Driver) Open(opts driver.Options) (driver.Conn, error) {
	d.mu.Lock()
	if d.opened {
		d.mu.Unlock()
		return nil, fmt.Errorf("shiny: event system already started")
	}
	d.opened = true
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
		events:  make(chan driver.Event, queueSize),
		windows: make(map[uint64]*Window),
		ready:   make(chan struct{}),
		done:    make(chan struct{}),
		logger:  logger,
	}

	// driver.Main never returns until the callback does, so it gets a
	// goroutine of its own for the connection's lifetime. Platforms
	// that insist on the main OS thread should call Open from main.
	go sdriver.Main(func(s screen.Screen) {
		c.mu.Lock()
		c.screen = s
		c.mu.Unlock()
		close(c.ready)
		<-c.done
	})
	<-c.ready

	logger.Info("shiny: event system started", "queue_size", queueSize)
	return c, nil
}

// Conn is the live shiny connection. Window events arrive on per-window
// forwarder goroutines and are funneled into one queue.
type Conn struct {
	events chan driver.Event
	ready  chan struct{}
	done   chan struct{}
	logger *slog.Logger

	mu      sync.Mutex
	screen  screen.Screen
	closed  bool
	nextID  uint64
	windows map[uint64]*Window
}

// NewWindow creates a native window.
func (c *Conn) NewWindow(opts driver.WindowOptions) (driver.Window, error) {
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = driver.DefaultWindowWidth
	}
	if height <= 0 {
		height = driver.DefaultWindowHeight
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, driver.ErrConnClosed
	}
	s := c.screen
	c.nextID++
	id := c.nextID
	c.mu.Unlock()

	sw, err := s.NewWindow(&screen.NewWindowOptions{
		Width:  width,
		Height: height,
		Title:  opts.Title,
	})
	if err != nil {
		return nil, fmt.Errorf("shiny: create window: %w", err)
	}

	w := &Window{
		conn:   c,
		sw:     sw,
		id:     id,
		width:  width,
		height: height,
	}

	c.mu.Lock()
	c.windows[id] = w
	c.mu.Unlock()

	go w.forwardEvents()
	c.logger.Debug("shiny: window created", "id", id, "width", width, "height", height)
	return w, nil
}

// Events returns the connection's event stream.
func (c *Conn) Events() <-chan driver.Event {
	return c.events
}

// Close releases every window and stops the shiny event system
// callback. Idempotent.
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
	close(c.done)

	c.mu.Lock()
	close(c.events)
	c.mu.Unlock()

	c.logger.Info("shiny: connection closed")
	return nil
}

// emit queues an event unless the connection is closed; a full queue
// drops the event rather than blocking the platform event thread.
func (c *Conn) emit(ev driver.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.events <- ev:
	default:
		c.logger.Warn("shiny: event queue full, dropping event",
			"kind", ev.Kind.String(), "window_id", ev.WindowID)
	}
}

func (c *Conn) removeWindow(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.windows != nil {
		delete(c.windows, id)
	}
}

// newBuffer allocates a pixel buffer on the shiny screen.
func (c *Conn) newBuffer(width, height int) (screen.Buffer, error) {
	c.mu.Lock()
	s := c.screen
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return nil, driver.ErrConnClosed
	}
	return s.NewBuffer(image.Pt(width, height))
}

var _ driver.Driver = (*Driver)(nil)
var _ driver.Conn = (*Conn)(nil)
