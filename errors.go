package blitview

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrLoopClosed is returned by operations on a closed EventLoop.
	ErrLoopClosed = errors.New("blitview: event loop closed")

	// ErrWindowClosed is returned by operations on a closed Window.
	ErrWindowClosed = errors.New("blitview: window closed")
)

// SizeMismatchError reports a pixel buffer whose byte length does not
// match the renderer's configured dimensions. The render is aborted
// before any pixel is written; the caller may retry with a corrected
// buffer.
type SizeMismatchError struct {
	Width  int // configured buffer width
	Height int // configured buffer height
	Got    int // actual byte length
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("blitview: buffer size mismatch: got %d bytes, want %d (%dx%dx4)",
		e.Got, e.Width*e.Height*4, e.Width, e.Height)
}

// InvalidDimensionsError reports a zero or negative width or height
// passed to a constructor or resize call. The previous state is
// retained.
type InvalidDimensionsError struct {
	Width  int
	Height int
}

func (e *InvalidDimensionsError) Error() string {
	return fmt.Sprintf("blitview: invalid dimensions %dx%d: width and height must be positive",
		e.Width, e.Height)
}

// SurfaceCreationError reports that the presentation subsystem refused
// to create or continue a connection. May be transient; repeated
// failures usually indicate surface leakage (a violation of the one
// surface per window rule) and should reach the operator.
type SurfaceCreationError struct {
	WindowID uint64
	Err      error
}

func (e *SurfaceCreationError) Error() string {
	return fmt.Sprintf("blitview: surface creation failed for window %d: %v", e.WindowID, e.Err)
}

func (e *SurfaceCreationError) Unwrap() error { return e.Err }

// SingleInstanceError reports construction of a second EventLoop on a
// backend whose event system is process-wide. Recover by reusing the
// existing instance via [Shared].
type SingleInstanceError struct {
	Backend string
}

func (e *SingleInstanceError) Error() string {
	return fmt.Sprintf("blitview: backend %q allows only one event loop per process; use Shared() to reuse the existing instance",
		e.Backend)
}
