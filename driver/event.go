// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package driver

// EventKind identifies a window event.
type EventKind uint8

const (
	// EventResized reports a change of the window's physical size.
	EventResized EventKind = iota

	// EventMoved reports a change of the window's position.
	EventMoved

	// EventCloseRequested reports that the user asked to close the
	// window (close button, Alt-F4, WM_DELETE_WINDOW).
	EventCloseRequested

	// EventFocused reports that the window gained input focus.
	EventFocused

	// EventUnfocused reports that the window lost input focus.
	EventUnfocused

	// EventDestroyed reports that the window is gone. No further events
	// are delivered for its id.
	EventDestroyed

	// EventScaleFactorChanged reports a DPI scale change.
	EventScaleFactorChanged

	// EventThemeChanged reports a light/dark theme switch.
	EventThemeChanged

	// EventCursorEntered reports the pointer entering the window.
	EventCursorEntered

	// EventCursorLeft reports the pointer leaving the window.
	EventCursorLeft

	// EventCursorMoved reports pointer motion inside the window.
	EventCursorMoved

	// EventMouseInput reports a mouse button press or release.
	EventMouseInput

	// EventKeyboardInput reports a key press or release.
	EventKeyboardInput
)

var eventKindNames = [...]string{
	EventResized:            "Resized",
	EventMoved:              "Moved",
	EventCloseRequested:     "CloseRequested",
	EventFocused:            "Focused",
	EventUnfocused:          "Unfocused",
	EventDestroyed:          "Destroyed",
	EventScaleFactorChanged: "ScaleFactorChanged",
	EventThemeChanged:       "ThemeChanged",
	EventCursorEntered:      "CursorEntered",
	EventCursorLeft:         "CursorLeft",
	EventCursorMoved:        "CursorMoved",
	EventMouseInput:         "MouseInput",
	EventKeyboardInput:      "KeyboardInput",
}

// String returns the event kind name.
func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "Unknown"
}

// Event is a window event as delivered to the application's listener:
// the kind and the id of the window it concerns.
type Event struct {
	Kind     EventKind
	WindowID uint64
}
