// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/blitview/driver"
)

// Arena owns at most one presentation surface per window and hands out
// reference-counted handles to it.
//
// Display connections are a bounded resource: creating a fresh surface
// for every frame exhausts the display server's client table after a
// few hundred frames. The arena makes that impossible by construction.
// The first Acquire for a window creates the surface; every later
// Acquire returns the same one. The surface is destroyed only when the
// last handle is released and the window itself is gone.
type Arena struct {
	mu      sync.Mutex
	entries map[uint64]*entry

	creations int64
	logger    *slog.Logger
}

type entry struct {
	surf driver.Surface
	refs int

	// windowGone is set by ReleaseWindow. The surface outlives the
	// window only while handles still reference it.
	windowGone bool
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{
		entries: make(map[uint64]*entry),
		logger:  slog.New(slog.DiscardHandler),
	}
}

// SetLogger sets the logger used for surface lifecycle events.
func (a *Arena) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.logger = logger
}

// Acquire returns a handle to the window's surface, creating it at the
// given size on first use. If the surface already exists at a different
// size it is resized in place; the underlying presentation connection
// is never reopened.
func (a *Arena) Acquire(win driver.Window, width, height int) (*Handle, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("surface: acquire %dx%d: dimensions must be positive", width, height)
	}

	id := win.ID()

	a.mu.Lock()
	defer a.mu.Unlock()

	e, ok := a.entries[id]
	if !ok {
		surf, err := win.NewSurface(width, height)
		if err != nil {
			return nil, fmt.Errorf("surface: create for window %d: %w", id, err)
		}
		e = &entry{surf: surf}
		a.entries[id] = e
		a.creations++
		a.logger.Debug("surface created",
			"window_id", id, "width", width, "height", height,
			"total_creations", a.creations)
	} else {
		if e.windowGone {
			return nil, fmt.Errorf("surface: window %d already released", id)
		}
		if w, h := e.surf.Size(); w != width || h != height {
			if err := e.surf.Resize(width, height); err != nil {
				return nil, fmt.Errorf("surface: resize for window %d: %w", id, err)
			}
			a.logger.Debug("surface resized",
				"window_id", id, "width", width, "height", height)
		}
	}

	e.refs++
	return &Handle{arena: a, windowID: id, surf: e.surf}, nil
}

// ReleaseWindow marks the window as gone. Its surface is destroyed
// immediately if unreferenced, or when the last handle releases.
func (a *Arena) ReleaseWindow(windowID uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	e, ok := a.entries[windowID]
	if !ok {
		return
	}
	e.windowGone = true
	if e.refs == 0 {
		a.destroyLocked(windowID, e)
	}
}

// Live returns the number of windows with a live surface.
func (a *Arena) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries)
}

// Creations returns the total number of surfaces ever created.
// Steady-state rendering keeps this at one per window regardless of
// frame count.
func (a *Arena) Creations() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.creations
}

// Close destroys every surface in the arena regardless of reference
// counts. Outstanding handles become no-ops.
func (a *Arena) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for id, e := range a.entries {
		a.destroyLocked(id, e)
	}
}

func (a *Arena) release(windowID uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	e, ok := a.entries[windowID]
	if !ok {
		return
	}
	if e.refs > 0 {
		e.refs--
	}
	if e.refs == 0 && e.windowGone {
		a.destroyLocked(windowID, e)
	}
}

// destroyLocked frees the entry's surface and removes it.
// Must be called with a.mu held.
func (a *Arena) destroyLocked(windowID uint64, e *entry) {
	if err := e.surf.Release(); err != nil {
		a.logger.Warn("surface release failed", "window_id", windowID, "error", err)
	}
	delete(a.entries, windowID)
	a.logger.Debug("surface destroyed", "window_id", windowID)
}

// Handle is a reference-counted view of a window's surface. Handles are
// cheap; each renderer holds one per window it draws to.
type Handle struct {
	arena    *Arena
	windowID uint64
	surf     driver.Surface

	mu       sync.Mutex
	released bool
}

// Surface returns the shared surface. Nil after Release.
func (h *Handle) Surface() driver.Surface {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released {
		return nil
	}
	return h.surf
}

// WindowID returns the id of the window this handle draws to.
func (h *Handle) WindowID() uint64 {
	return h.windowID
}

// Release drops this handle's reference. Idempotent. The surface is
// destroyed once no handles remain and the window is released.
func (h *Handle) Release() {
	h.mu.Lock()
	if h.released {
		h.mu.Unlock()
		return
	}
	h.released = true
	h.mu.Unlock()

	h.arena.release(h.windowID)
}
