// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gputex presents scaled pixel buffers through a GPU texture.
//
// It is the bridge between blitview's scaling engine and a gogpu draw
// context: frames are composed offscreen with the same transform a
// window render would use, then uploaded once per change and drawn as
// a texture.
//
//	r, _ := blitview.NewRenderer(320, 240, blitview.WithScaleMode(blitview.ScaleModeInteger))
//	p, _ := gputex.New(r, 1280, 960)
//
//	p.Push(frame)                      // compose + mark for upload
//	p.RenderTo(dc.AsTextureDrawer())   // upload if dirty, then draw
//
// The texture is created lazily on the first RenderTo and updated in
// place afterward; resizes recreate it with deferred destruction of
// the old texture.
package gputex
