// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package driver defines the presentation backend interface and registry
// for blitview.
//
// A Driver opens a Conn to the display system, which creates native
// windows and the pixel surfaces presented into them. Backends register
// themselves at init time with a priority; the highest-priority available
// backend wins:
//
//	import _ "github.com/gogpu/blitview/driver/shiny"
//
//	drv, err := driver.Best()
//
// Two backends ship with the library:
//
//   - shiny (priority 100): native windows via golang.org/x/exp/shiny/screen
//   - memory (priority 10): headless in-memory windows for tests and servers
//
// Events flow from the Conn as a stream of [Event] values carrying only
// the event kind and the originating window ID.
package driver
