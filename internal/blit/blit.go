// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package blit implements the pixel transfer primitives behind frame
// presentation: clearing, copying, and resampled scaling between RGBA8
// buffers.
package blit

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Filter selects the resampling kernel used when a blit changes size.
type Filter uint8

const (
	// FilterNearest is nearest-neighbor sampling. Crisp pixels, the
	// right choice for pixel-art content and integer scale factors.
	FilterNearest Filter = iota

	// FilterBilinear is approximate bi-linear sampling. Smoother output
	// at fractional scale factors.
	FilterBilinear
)

// String returns the filter name.
func (f Filter) String() string {
	switch f {
	case FilterNearest:
		return "Nearest"
	case FilterBilinear:
		return "Bilinear"
	default:
		return "Unknown"
	}
}

func (f Filter) scaler() xdraw.Scaler {
	if f == FilterBilinear {
		return xdraw.ApproxBiLinear
	}
	return xdraw.NearestNeighbor
}

// Wrap views a tightly packed RGBA8 buffer as an *image.RGBA without
// copying. The buffer must hold exactly width*height*4 bytes.
func Wrap(pix []byte, width, height int) *image.RGBA {
	return &image.RGBA{
		Pix:    pix,
		Stride: 4 * width,
		Rect:   image.Rect(0, 0, width, height),
	}
}

// Clear fills the whole of dst with the given color.
func Clear(dst *image.RGBA, c color.RGBA) {
	b := dst.Bounds()
	if b.Empty() {
		return
	}
	// Fill the first row, then replicate it. Much faster than a
	// uniform-source draw for the per-frame letterbox clear.
	row := dst.Pix[dst.PixOffset(b.Min.X, b.Min.Y):dst.PixOffset(b.Max.X, b.Min.Y)]
	for i := 0; i < len(row); i += 4 {
		row[i+0] = c.R
		row[i+1] = c.G
		row[i+2] = c.B
		row[i+3] = c.A
	}
	for y := b.Min.Y + 1; y < b.Max.Y; y++ {
		copy(dst.Pix[dst.PixOffset(b.Min.X, y):dst.PixOffset(b.Max.X, y)], row)
	}
}

// Copy transfers sr from src to dst with dst's top-left at dp.
// No resampling; source pixels replace destination pixels.
func Copy(dst *image.RGBA, dp image.Point, src image.Image, sr image.Rectangle) {
	xdraw.Copy(dst, dp, src, sr, xdraw.Src, nil)
}

// Scale resamples sr from src into dr of dst using the given filter.
// Source pixels replace destination pixels.
func Scale(dst *image.RGBA, dr image.Rectangle, src image.Image, sr image.Rectangle, f Filter) {
	if dr.Empty() || sr.Empty() {
		return
	}
	if dr.Dx() == sr.Dx() && dr.Dy() == sr.Dy() {
		xdraw.Copy(dst, dr.Min, src, sr, xdraw.Src, nil)
		return
	}
	f.scaler().Scale(dst, dr, src, sr, xdraw.Src, nil)
}
