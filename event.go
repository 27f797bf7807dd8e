package blitview

import (
	"github.com/gogpu/blitview/driver"
	"github.com/gogpu/blitview/internal/blit"
)

// Event is the payload delivered to the loop's listener: the event kind
// and the id of the window it concerns.
type Event = driver.Event

// EventKind identifies a window event.
type EventKind = driver.EventKind

// Window event kinds, re-exported from the driver layer.
const (
	EventResized            = driver.EventResized
	EventMoved              = driver.EventMoved
	EventCloseRequested     = driver.EventCloseRequested
	EventFocused            = driver.EventFocused
	EventUnfocused          = driver.EventUnfocused
	EventDestroyed          = driver.EventDestroyed
	EventScaleFactorChanged = driver.EventScaleFactorChanged
	EventThemeChanged       = driver.EventThemeChanged
	EventCursorEntered      = driver.EventCursorEntered
	EventCursorLeft         = driver.EventCursorLeft
	EventCursorMoved        = driver.EventCursorMoved
	EventMouseInput         = driver.EventMouseInput
	EventKeyboardInput      = driver.EventKeyboardInput
)

// Filter selects the resampling kernel used at fractional scale
// factors.
type Filter = blit.Filter

// Resampling filters.
const (
	FilterNearest  = blit.FilterNearest
	FilterBilinear = blit.FilterBilinear
)
