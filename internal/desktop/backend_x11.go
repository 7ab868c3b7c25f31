//go:build linux

package desktop

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"

	"github.com/bnema/cursorfence/internal/display"
)

// x11Backend talks to the X server directly. X has no process-wide
// ClipCursor, so confinement is rendered by clamping the pointer back into
// the region on every assertion; at the sampling cadence this behaves like a
// single system-wide confinement rectangle.
type x11Backend struct {
	conn  *xgb.Conn
	root  xproto.Window
	atoms map[string]xproto.Atom
	clip  *display.Rect
}

func newPlatformBackend() (Backend, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}

	setup := xproto.Setup(conn)
	root := setup.DefaultScreen(conn).Root

	if err := randr.Init(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	b := &x11Backend{
		conn:  conn,
		root:  root,
		atoms: make(map[string]xproto.Atom),
	}

	for _, name := range []string{"_NET_ACTIVE_WINDOW"} {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("intern atom %s: %w", name, err)
		}
		b.atoms[name] = reply.Atom
	}

	return b, nil
}

func (b *x11Backend) Name() string {
	return "x11"
}

func (b *x11Backend) getProperty(window xproto.Window, atom, atomType xproto.Atom, length uint32) ([]byte, error) {
	reply, err := xproto.GetProperty(b.conn, false, window, atom, atomType, 0, length).Reply()
	if err != nil {
		return nil, err
	}
	return reply.Value, nil
}

func (b *x11Backend) ForegroundWindow() (Window, bool) {
	data, err := b.getProperty(b.root, b.atoms["_NET_ACTIVE_WINDOW"], xproto.AtomWindow, 1)
	if err == nil && len(data) >= 4 {
		if w := xproto.Window(binary.LittleEndian.Uint32(data)); w != 0 {
			return Window(w), true
		}
	}

	// EWMH property missing or stale: fall back to the input focus,
	// walked up to its top-level window.
	reply, err := xproto.GetInputFocus(b.conn).Reply()
	if err != nil || reply.Focus == 0 || reply.Focus == b.root {
		return 0, false
	}
	return Window(b.topLevelParent(reply.Focus)), true
}

func (b *x11Backend) topLevelParent(window xproto.Window) xproto.Window {
	for {
		reply, err := xproto.QueryTree(b.conn, window).Reply()
		if err != nil || reply.Parent == b.root || reply.Parent == 0 {
			return window
		}
		window = reply.Parent
	}
}

func (b *x11Backend) WindowClass(w Window) (string, error) {
	data, err := b.getProperty(xproto.Window(w), xproto.AtomWmClass, xproto.AtomString, 256)
	if err != nil {
		return "", fmt.Errorf("WM_CLASS lookup failed: %w", err)
	}
	if len(data) == 0 {
		return "", nil
	}

	// WM_CLASS holds instance\0class\0; the class part is the tag.
	parts := strings.Split(strings.TrimRight(string(data), "\x00"), "\x00")
	if len(parts) >= 2 && parts[1] != "" {
		return parts[1], nil
	}
	return parts[0], nil
}

func (b *x11Backend) WindowRect(w Window) (display.Rect, error) {
	win := xproto.Window(w)

	geo, err := xproto.GetGeometry(b.conn, xproto.Drawable(win)).Reply()
	if err != nil {
		return display.Rect{}, fmt.Errorf("window geometry failed: %w", err)
	}

	// Geometry is relative to the parent; translate the client origin
	// into root coordinates.
	trans, err := xproto.TranslateCoordinates(b.conn, win, b.root, 0, 0).Reply()
	if err != nil {
		return display.Rect{}, fmt.Errorf("coordinate translation failed: %w", err)
	}

	left := int32(trans.DstX)
	top := int32(trans.DstY)
	return display.Rect{
		Left:   left,
		Top:    top,
		Right:  left + int32(geo.Width),
		Bottom: top + int32(geo.Height),
	}, nil
}

func (b *x11Backend) MonitorForWindow(w Window) (*display.Monitor, error) {
	rect, err := b.WindowRect(w)
	if err != nil {
		return nil, err
	}
	monitors, err := b.Monitors()
	if err != nil {
		return nil, err
	}
	mon := display.Nearest(monitors, rect)
	if mon == nil {
		return nil, fmt.Errorf("no monitors detected")
	}
	return mon, nil
}

func (b *x11Backend) Monitors() ([]*display.Monitor, error) {
	resources, err := randr.GetScreenResources(b.conn, b.root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var primaryOutput randr.Output
	if primary, err := randr.GetOutputPrimary(b.conn, b.root).Reply(); err == nil {
		primaryOutput = primary.Output
	}

	var monitors []*display.Monitor
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(b.conn, crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		primary := false
		if len(crtcInfo.Outputs) > 0 {
			if outputInfo, err := randr.GetOutputInfo(b.conn, crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
				name = string(outputInfo.Name)
			}
			for _, out := range crtcInfo.Outputs {
				if out == primaryOutput {
					primary = true
				}
			}
		}

		x := int32(crtcInfo.X)
		y := int32(crtcInfo.Y)
		monitors = append(monitors, &display.Monitor{
			ID:   fmt.Sprintf("%d", i),
			Name: name,
			Rect: display.Rect{
				Left:   x,
				Top:    y,
				Right:  x + int32(crtcInfo.Width),
				Bottom: y + int32(crtcInfo.Height),
			},
			Primary: primary,
		})
	}

	if len(monitors) == 0 {
		return nil, fmt.Errorf("no active monitors found")
	}
	return monitors, nil
}

func (b *x11Backend) ClipCursor(r display.Rect) error {
	b.clip = &r
	return b.clampPointer()
}

func (b *x11Backend) ReleaseCursor() error {
	b.clip = nil
	return nil
}

// clampPointer warps the pointer back inside the confinement region when it
// has strayed outside.
func (b *x11Backend) clampPointer() error {
	if b.clip == nil {
		return nil
	}

	qp, err := xproto.QueryPointer(b.conn, b.root).Reply()
	if err != nil {
		return fmt.Errorf("pointer query failed: %w", err)
	}

	x, y := int32(qp.RootX), int32(qp.RootY)
	if b.clip.Contains(x, y) {
		return nil
	}

	cx, cy := b.clip.Clamp(x, y)
	err = xproto.WarpPointerChecked(
		b.conn,
		xproto.Window(0), b.root,
		0, 0, 0, 0,
		int16(cx), int16(cy),
	).Check()
	if err != nil {
		return fmt.Errorf("pointer warp failed: %w", err)
	}
	return nil
}

func (b *x11Backend) Close() error {
	b.clip = nil
	b.conn.Close()
	return nil
}

// Standalone switcher UIs that map a client window; most X window managers
// run Alt-Tab without one, which the no-foreground branch already absorbs.
func switcherClassSubstrings() []string {
	return []string{
		"rofi",
		"skippy-xd",
		"xfdashboard",
	}
}

func switcherExactClasses() []string {
	return nil
}
