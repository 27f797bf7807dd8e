// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gputex

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/blitview"
)

// Common errors returned by Presenter operations.
var (
	// ErrPresenterClosed is returned when operations are attempted on a
	// closed presenter.
	ErrPresenterClosed = errors.New("gputex: presenter is closed")

	// ErrInvalidRenderer is returned when the draw context's renderer
	// doesn't implement gpucontext.TextureCreator.
	ErrInvalidRenderer = errors.New("gputex: renderer must implement gpucontext.TextureCreator")

	// ErrInvalidTexture is returned when the created texture doesn't
	// implement gpucontext.Texture.
	ErrInvalidTexture = errors.New("gputex: texture must implement gpucontext.Texture")
)

// textureDestroyer is the interface for destroying textures.
type textureDestroyer interface {
	Destroy()
}

// Presenter composes scaled pixel-buffer frames offscreen and draws
// them through a GPU texture instead of a native window surface. It is
// the presentation path for applications that already own a GPU frame
// (a gogpu draw context) and want blitview's scaling semantics inside
// it.
//
// Presenter is NOT safe for concurrent use.
type Presenter struct {
	renderer *blitview.PixelRenderer
	frame    *image.RGBA

	texture     any  // Lazy-created texture
	oldTexture  any  // Previous texture awaiting deferred destruction
	dirty       bool // Needs GPU upload
	sizeChanged bool // Resize pending, texture must be recreated
	width       int
	height      int
	closed      bool
}

// New creates a presenter with an output frame of width x height
// pixels. The renderer supplies buffer validation and scaling policy;
// its transform maps each pushed buffer onto the output frame exactly
// as it would onto a window of that size.
func New(renderer *blitview.PixelRenderer, width, height int) (*Presenter, error) {
	if renderer == nil {
		return nil, errors.New("gputex: nil renderer")
	}
	if width <= 0 || height <= 0 {
		return nil, &blitview.InvalidDimensionsError{Width: width, Height: height}
	}
	return &Presenter{
		renderer: renderer,
		frame:    image.NewRGBA(image.Rect(0, 0, width, height)),
		width:    width,
		height:   height,
		dirty:    true, // first RenderTo creates the texture
	}, nil
}

// Format returns the pixel format of the frames this presenter
// uploads.
func (p *Presenter) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Width returns the output frame width in pixels.
func (p *Presenter) Width() int { return p.width }

// Height returns the output frame height in pixels.
func (p *Presenter) Height() int { return p.height }

// Push composes one pixel buffer into the output frame. The buffer
// must match the renderer's configured dimensions; a mismatch fails
// with *blitview.SizeMismatchError and leaves the frame untouched.
func (p *Presenter) Push(buf []byte) error {
	if p.closed {
		return ErrPresenterClosed
	}
	if err := p.renderer.RenderToRGBA(p.frame, buf); err != nil {
		return err
	}
	p.dirty = true
	return nil
}

// Resize changes the output frame dimensions. The GPU texture is
// recreated on the next RenderTo; the old one is destroyed only after
// the new upload completes, when the GPU is known idle.
func (p *Presenter) Resize(width, height int) error {
	if p.closed {
		return ErrPresenterClosed
	}
	if width <= 0 || height <= 0 {
		return &blitview.InvalidDimensionsError{Width: width, Height: height}
	}
	if width == p.width && height == p.height {
		return nil
	}
	p.frame = image.NewRGBA(image.Rect(0, 0, width, height))
	p.width = width
	p.height = height
	p.sizeChanged = true
	p.dirty = true
	return nil
}

// IsDirty reports whether the frame has changes pending GPU upload.
func (p *Presenter) IsDirty() bool {
	return p.dirty
}

// RenderTo uploads the frame if dirty and draws it at the origin of
// the given draw context.
func (p *Presenter) RenderTo(dc gpucontext.TextureDrawer) error {
	return p.RenderToPosition(dc, 0, 0)
}

// RenderToPosition uploads the frame if dirty and draws it at (x, y).
func (p *Presenter) RenderToPosition(dc gpucontext.TextureDrawer, x, y float32) error {
	if p.closed {
		return ErrPresenterClosed
	}

	// A resize defers destruction of the old texture: in-flight GPU
	// command buffers may still reference it, and freeing its
	// descriptor heap entries early makes the GPU sample zeros.
	if p.sizeChanged {
		if p.texture != nil {
			if p.oldTexture != nil {
				if destroyer, ok := p.oldTexture.(textureDestroyer); ok {
					destroyer.Destroy()
				}
			}
			p.oldTexture = p.texture
			p.texture = nil
		}
		p.sizeChanged = false
	}

	if p.texture == nil {
		creator := dc.TextureCreator()
		if creator == nil {
			return ErrInvalidRenderer
		}

		// NewTextureFromRGBA waits for the GPU internally, so after it
		// returns the deferred old texture is safe to destroy.
		tex, err := creator.NewTextureFromRGBA(p.width, p.height, p.frame.Pix)
		if err != nil {
			return fmt.Errorf("gputex: NewTextureFromRGBA failed: %w", err)
		}
		p.texture = tex
		p.dirty = false

		if p.oldTexture != nil {
			if destroyer, ok := p.oldTexture.(textureDestroyer); ok {
				destroyer.Destroy()
			}
			p.oldTexture = nil
		}
	} else if p.dirty {
		if updater, ok := p.texture.(gpucontext.TextureUpdater); ok {
			if err := updater.UpdateData(p.frame.Pix); err != nil {
				return fmt.Errorf("gputex: texture update failed: %w", err)
			}
		}
		p.dirty = false
	}

	gpuTex, ok := p.texture.(gpucontext.Texture)
	if !ok {
		return ErrInvalidTexture
	}
	return dc.DrawTexture(gpuTex, x, y)
}

// Texture returns the current GPU texture without uploading.
// Nil until the first RenderTo.
func (p *Presenter) Texture() any {
	return p.texture
}

// Frame returns the offscreen output frame. Useful for inspecting the
// composed result without a GPU.
func (p *Presenter) Frame() *image.RGBA {
	return p.frame
}

// Close releases GPU textures held by the presenter. Idempotent.
func (p *Presenter) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true

	if p.oldTexture != nil {
		if destroyer, ok := p.oldTexture.(textureDestroyer); ok {
			destroyer.Destroy()
		}
		p.oldTexture = nil
	}
	if p.texture != nil {
		if destroyer, ok := p.texture.(textureDestroyer); ok {
			destroyer.Destroy()
		}
		p.texture = nil
	}
	return nil
}
