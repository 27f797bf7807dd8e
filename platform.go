package blitview

import (
	"os"
	"runtime"
)

// DisplayServer identifies the platform presentation subsystem.
type DisplayServer uint8

const (
	// DisplayServerUnknown means headless or unrecognized.
	DisplayServerUnknown DisplayServer = iota

	// DisplayServerX11 is the X11 display server (Linux/BSD).
	DisplayServerX11

	// DisplayServerWayland is a Wayland compositor (modern Linux).
	DisplayServerWayland

	// DisplayServerWindows is the Windows desktop window manager.
	DisplayServerWindows

	// DisplayServerQuartz is the macOS Quartz compositor.
	DisplayServerQuartz
)

var displayServerNames = [...]string{
	DisplayServerUnknown: "Unknown",
	DisplayServerX11:     "X11",
	DisplayServerWayland: "Wayland",
	DisplayServerWindows: "Windows",
	DisplayServerQuartz:  "Quartz",
}

// String returns the display server name.
func (d DisplayServer) String() string {
	if int(d) < len(displayServerNames) {
		return displayServerNames[d]
	}
	return "Unknown"
}

// PlatformInfo describes the capabilities of the current display
// environment.
type PlatformInfo struct {
	// DisplayServer is the detected presentation subsystem.
	DisplayServer DisplayServer

	// SupportsTransparency reports per-pixel window transparency.
	SupportsTransparency bool

	// SupportsPositioning reports client-side absolute window
	// positioning. Wayland forbids it.
	SupportsPositioning bool

	// SupportsDirectRendering reports direct pixel buffer presentation.
	SupportsDirectRendering bool
}

// DetectPlatform inspects the environment and reports the current
// display platform. On Linux, WAYLAND_DISPLAY takes precedence over
// DISPLAY; with neither set the environment is headless.
func DetectPlatform() PlatformInfo {
	switch runtime.GOOS {
	case "linux":
		if os.Getenv("WAYLAND_DISPLAY") != "" {
			return PlatformInfo{
				DisplayServer:           DisplayServerWayland,
				SupportsTransparency:    true,
				SupportsPositioning:     false,
				SupportsDirectRendering: true,
			}
		}
		if os.Getenv("DISPLAY") != "" {
			return PlatformInfo{
				DisplayServer:           DisplayServerX11,
				SupportsTransparency:    true,
				SupportsPositioning:     true,
				SupportsDirectRendering: true,
			}
		}
		return PlatformInfo{DisplayServer: DisplayServerUnknown}
	case "windows":
		return PlatformInfo{
			DisplayServer:           DisplayServerWindows,
			SupportsTransparency:    true,
			SupportsPositioning:     true,
			SupportsDirectRendering: true,
		}
	case "darwin":
		return PlatformInfo{
			DisplayServer:           DisplayServerQuartz,
			SupportsTransparency:    true,
			SupportsPositioning:     true,
			SupportsDirectRendering: true,
		}
	default:
		return PlatformInfo{DisplayServer: DisplayServerUnknown}
	}
}

// Headless reports whether no display server was detected.
func (p PlatformInfo) Headless() bool {
	return p.DisplayServer == DisplayServerUnknown
}

// IsX11 reports whether the platform is X11.
func (p PlatformInfo) IsX11() bool { return p.DisplayServer == DisplayServerX11 }

// IsWayland reports whether the platform is Wayland.
func (p PlatformInfo) IsWayland() bool { return p.DisplayServer == DisplayServerWayland }
