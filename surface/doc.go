// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface provides the reference-counted per-window surface
// arena.
//
// Presentation surfaces wrap a display connection, and display servers
// cap how many connections a process may hold. Naive per-frame surface
// creation therefore fails after a few hundred frames. The arena caches
// one surface per window for the window's whole lifetime:
//
//	arena := surface.NewArena()
//	h, err := arena.Acquire(win, 800, 600)
//	// draw into h.Surface().RGBA(), then h.Surface().Present()
//
// Multiple renderers targeting the same window share one surface; the
// arena destroys it only after the last handle is released and the
// window itself is gone.
package surface
