// Package desktop abstracts the windowing system: foreground window lookup,
// window classification, geometry queries and the process-wide cursor
// confinement region.
package desktop

import (
	"github.com/bnema/cursorfence/internal/display"
)

// Window is an opaque handle to a top-level window. Handles are stable for
// the window's lifetime but recycled by the OS afterwards, so a handle must
// not be trusted once it stops being the foreground window.
type Window uintptr

// Backend is the platform interface for desktop queries and cursor
// confinement. At most one confinement region is active system-wide; the
// most recent ClipCursor or ReleaseCursor call wins.
type Backend interface {
	// Name identifies the backend for logging.
	Name() string

	// ForegroundWindow returns the window currently receiving input
	// focus. ok is false when no window has focus or the query failed.
	ForegroundWindow() (w Window, ok bool)

	// WindowClass returns the window's class tag.
	WindowClass(w Window) (string, error)

	// WindowRect returns the window's bounding rectangle in virtual
	// desktop coordinates.
	WindowRect(w Window) (display.Rect, error)

	// MonitorForWindow returns the monitor the window is nearest to.
	MonitorForWindow(w Window) (*display.Monitor, error)

	// Monitors enumerates all attached monitors.
	Monitors() ([]*display.Monitor, error)

	// ClipCursor confines the cursor to the given rectangle, replacing
	// any previous confinement region.
	ClipCursor(r display.Rect) error

	// ReleaseCursor removes the confinement region. Safe to call when no
	// region is active.
	ReleaseCursor() error

	Close() error
}

// New creates the backend for the current platform.
func New() (Backend, error) {
	return newPlatformBackend()
}
