// Package blitview presents raw RGBA8 pixel buffers in native windows.
//
// # Overview
//
// blitview is a small windowing and presentation library for the GoGPU
// ecosystem. Applications render into a plain byte slice at a fixed
// logical resolution; blitview opens the window, scales the buffer to
// whatever size the window currently has, and pushes the result to the
// screen. It is aimed at emulators, pixel-art games, visualizers, and
// tools that want a framebuffer without a graphics API.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/blitview"
//		_ "github.com/gogpu/blitview/driver/shiny"
//	)
//
//	loop, err := blitview.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer loop.Close()
//
//	win, err := loop.NewWindow(blitview.WindowOptions{
//		Title: "demo", Width: 800, Height: 600,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	renderer, err := blitview.NewRenderer(320, 240)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer renderer.Close()
//
//	buf := make([]byte, 320*240*4)
//	loop.OnEvent(func(ev blitview.Event) {
//		// fill buf, then:
//		renderer.Render(win, buf)
//	})
//	loop.Run()
//
// # Scaling
//
// Five policies map the logical buffer onto the window:
//   - ScaleModeFit letterboxes, preserving aspect ratio (default)
//   - ScaleModeFill covers the window, cropping the excess centered
//   - ScaleModeStretch fills without preserving aspect ratio
//   - ScaleModeInteger scales by whole factors only, for crisp pixels
//   - ScaleModeNone presents at native size, centered
//
// # Backends
//
// Windows come from pluggable drivers registered in the driver
// package. driver/shiny provides native windows on X11, Windows, and
// macOS; driver/memory provides headless in-process windows for tests
// and offscreen use. The highest-priority available driver wins unless
// one is named explicitly.
//
// # Surfaces
//
// Presentation surfaces are reference counted per window, so any number
// of renderers targeting the same window share one display connection
// no matter how many frames they push.
//
// # Coordinate System
//
// Buffers are tightly packed, row-major RGBA8 with origin (0,0) at the
// top-left, X increasing right and Y increasing down.
package blitview

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
