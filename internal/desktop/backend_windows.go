//go:build windows

package desktop

import (
	"fmt"
	"strconv"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/bnema/cursorfence/internal/display"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procGetForegroundWindow = user32.NewProc("GetForegroundWindow")
	procGetClassNameW       = user32.NewProc("GetClassNameW")
	procGetWindowRect       = user32.NewProc("GetWindowRect")
	procClipCursor          = user32.NewProc("ClipCursor")
	procMonitorFromWindow   = user32.NewProc("MonitorFromWindow")
	procGetMonitorInfoW     = user32.NewProc("GetMonitorInfoW")
	procEnumDisplayMonitors = user32.NewProc("EnumDisplayMonitors")
)

const (
	monitorDefaultToNearest = 0x00000002
	monitorinfofPrimary     = 0x00000001
)

type winRect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

type monitorInfo struct {
	CbSize    uint32
	RcMonitor winRect
	RcWork    winRect
	DwFlags   uint32
}

type windowsBackend struct {
	enumCallback uintptr
	enumMonitors []*display.Monitor
	enumFailed   bool
}

func newPlatformBackend() (Backend, error) {
	b := &windowsBackend{}
	// One callback per backend; callbacks from windows.NewCallback are
	// never released, and the backend is created once per process.
	b.enumCallback = windows.NewCallback(b.onEnumMonitor)
	return b, nil
}

func (b *windowsBackend) Name() string {
	return "windows"
}

func (b *windowsBackend) ForegroundWindow() (Window, bool) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	return Window(hwnd), hwnd != 0
}

func (b *windowsBackend) WindowClass(w Window) (string, error) {
	var buf [256]uint16
	n, _, err := procGetClassNameW.Call(
		uintptr(w),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
	)
	if n == 0 {
		return "", fmt.Errorf("GetClassNameW: %w", err)
	}
	return windows.UTF16ToString(buf[:n]), nil
}

func (b *windowsBackend) WindowRect(w Window) (display.Rect, error) {
	var r winRect
	ret, _, err := procGetWindowRect.Call(uintptr(w), uintptr(unsafe.Pointer(&r)))
	if ret == 0 {
		return display.Rect{}, fmt.Errorf("GetWindowRect: %w", err)
	}
	return display.Rect{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Bottom}, nil
}

func (b *windowsBackend) MonitorForWindow(w Window) (*display.Monitor, error) {
	hmon, _, _ := procMonitorFromWindow.Call(uintptr(w), monitorDefaultToNearest)
	if hmon == 0 {
		return nil, fmt.Errorf("MonitorFromWindow: no monitor for window %#x", uintptr(w))
	}
	return monitorFromHandle(hmon)
}

func monitorFromHandle(hmon uintptr) (*display.Monitor, error) {
	var mi monitorInfo
	mi.CbSize = uint32(unsafe.Sizeof(mi))
	ret, _, err := procGetMonitorInfoW.Call(hmon, uintptr(unsafe.Pointer(&mi)))
	if ret == 0 {
		return nil, fmt.Errorf("GetMonitorInfoW: %w", err)
	}
	id := strconv.FormatUint(uint64(hmon), 16)
	return &display.Monitor{
		ID:   id,
		Name: "Monitor " + id,
		Rect: display.Rect{
			Left:   mi.RcMonitor.Left,
			Top:    mi.RcMonitor.Top,
			Right:  mi.RcMonitor.Right,
			Bottom: mi.RcMonitor.Bottom,
		},
		Primary: mi.DwFlags&monitorinfofPrimary != 0,
	}, nil
}

// onEnumMonitor is the EnumDisplayMonitors callback. Runs on the calling
// thread, while Monitors holds the enum state.
func (b *windowsBackend) onEnumMonitor(hmon, hdc, lprect, lparam uintptr) uintptr {
	mon, err := monitorFromHandle(hmon)
	if err != nil {
		b.enumFailed = true
		return 1 // keep going, partial results are still useful
	}
	b.enumMonitors = append(b.enumMonitors, mon)
	return 1
}

func (b *windowsBackend) Monitors() ([]*display.Monitor, error) {
	b.enumMonitors = nil
	b.enumFailed = false
	ret, _, err := procEnumDisplayMonitors.Call(0, 0, b.enumCallback, 0)
	if ret == 0 {
		return nil, fmt.Errorf("EnumDisplayMonitors: %w", err)
	}
	if len(b.enumMonitors) == 0 && b.enumFailed {
		return nil, fmt.Errorf("EnumDisplayMonitors: no monitor info available")
	}
	return b.enumMonitors, nil
}

func (b *windowsBackend) ClipCursor(r display.Rect) error {
	wr := winRect{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Bottom}
	ret, _, err := procClipCursor.Call(uintptr(unsafe.Pointer(&wr)))
	if ret == 0 {
		return fmt.Errorf("ClipCursor: %w", err)
	}
	return nil
}

func (b *windowsBackend) ReleaseCursor() error {
	ret, _, err := procClipCursor.Call(0)
	if ret == 0 {
		return fmt.Errorf("ClipCursor(NULL): %w", err)
	}
	return nil
}

func (b *windowsBackend) Close() error {
	return nil
}

// Alt-Tab and Task View window classes across Windows versions.
func switcherClassSubstrings() []string {
	return []string{
		"MultitaskingView",
		"TaskSwitcher",
		"XamlExplorerHostIslandWindow",
	}
}

func switcherExactClasses() []string {
	return []string{"ForegroundStaging"}
}
