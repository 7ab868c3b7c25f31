// Package lock holds the confinement decision logic: the fullscreen test and
// the session state machine that turns per-tick desktop observations into
// clip/release commands.
package lock

import "github.com/bnema/cursorfence/internal/display"

// IsFullscreen reports whether a window should be treated as occupying its
// whole monitor. Two heuristics, first match wins:
//
//  1. The window's size and position match the monitor's within tolerance
//     (borderless fullscreen).
//  2. The window covers the monitor entirely, possibly overdrawing slightly
//     past its edges.
//
// Deterministic and total for any pair of rectangles.
func IsFullscreen(win, mon display.Rect, tolerance int32) bool {
	winWidth := win.Width()
	winHeight := win.Height()
	monWidth := mon.Width()
	monHeight := mon.Height()

	widthMatch := abs32(winWidth-monWidth) <= tolerance
	heightMatch := abs32(winHeight-monHeight) <= tolerance
	leftMatch := abs32(win.Left-mon.Left) <= tolerance
	topMatch := abs32(win.Top-mon.Top) <= tolerance

	if widthMatch && heightMatch && leftMatch && topMatch {
		return true
	}

	return win.Left <= mon.Left+tolerance &&
		win.Top <= mon.Top+tolerance &&
		win.Right >= mon.Right-tolerance &&
		win.Bottom >= mon.Bottom-tolerance &&
		winWidth >= monWidth-tolerance &&
		winHeight >= monHeight-tolerance
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
