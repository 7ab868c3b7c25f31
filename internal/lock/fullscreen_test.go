package lock

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/cursorfence/internal/display"
)

func rect(left, top, right, bottom int32) display.Rect {
	return display.Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

func TestIsFullscreen(t *testing.T) {
	mon := rect(0, 0, 1920, 1080)

	tests := []struct {
		name      string
		win       display.Rect
		mon       display.Rect
		tolerance int32
		want      bool
	}{
		{
			name: "exact match",
			win:  rect(0, 0, 1920, 1080),
			mon:  mon, tolerance: 5,
			want: true,
		},
		{
			name: "borderless with slight inset",
			win:  rect(2, 3, 1918, 1078),
			mon:  mon, tolerance: 5,
			want: true,
		},
		{
			name: "window overdraws past every edge",
			win:  rect(-8, -8, 1928, 1088),
			mon:  mon, tolerance: 5,
			want: true,
		},
		{
			name: "maximized window above taskbar",
			win:  rect(0, 0, 1920, 1040),
			mon:  mon, tolerance: 5,
			want: false,
		},
		{
			name: "centered windowed mode",
			win:  rect(460, 240, 1460, 840),
			mon:  mon, tolerance: 5,
			want: false,
		},
		{
			name: "right size, wrong monitor position",
			win:  rect(1920, 0, 3840, 1080),
			mon:  mon, tolerance: 5,
			want: false,
		},
		{
			name: "secondary monitor with negative origin",
			win:  rect(-2560, -400, 0, 1040),
			mon:  rect(-2560, -400, 0, 1040), tolerance: 5,
			want: true,
		},
		{
			name: "one pixel off with zero tolerance",
			win:  rect(0, 0, 1919, 1080),
			mon:  mon, tolerance: 0,
			want: false,
		},
		{
			name: "exact match with zero tolerance",
			win:  rect(0, 0, 1920, 1080),
			mon:  mon, tolerance: 0,
			want: true,
		},
		{
			name: "covers monitor but also spans the next one",
			win:  rect(0, 0, 3840, 1080),
			mon:  mon, tolerance: 5,
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFullscreen(tt.win, tt.mon, tt.tolerance))
		})
	}
}

// The verdict only depends on the window's geometry relative to the monitor,
// so shifting both by the same offset must not change it.
func TestIsFullscreenTranslationInvariant(t *testing.T) {
	pairs := []struct {
		win, mon display.Rect
	}{
		{rect(0, 0, 1920, 1080), rect(0, 0, 1920, 1080)},
		{rect(2, 3, 1918, 1078), rect(0, 0, 1920, 1080)},
		{rect(460, 240, 1460, 840), rect(0, 0, 1920, 1080)},
		{rect(-8, -8, 1928, 1088), rect(0, 0, 1920, 1080)},
	}
	offsets := [][2]int32{{1920, 0}, {-2560, -400}, {3, 7}, {0, -1080}}

	for _, p := range pairs {
		base := IsFullscreen(p.win, p.mon, 5)
		for _, off := range offsets {
			got := IsFullscreen(p.win.Translate(off[0], off[1]), p.mon.Translate(off[0], off[1]), 5)
			assert.Equal(t, base, got, "win=%s mon=%s offset=%v", p.win, p.mon, off)
		}
	}
}
