package lock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/cursorfence/internal/desktop"
	"github.com/bnema/cursorfence/internal/display"
)

const (
	w1 = desktop.Window(0x1001)
	w2 = desktop.Window(0x2002)
)

var (
	d1 = display.Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080}
	d2 = display.Rect{Left: 1920, Top: 0, Right: 4480, Bottom: 1440}
)

func fullscreenTick(w desktop.Window, region display.Rect) TickInput {
	return TickInput{
		Foreground:    w,
		HasForeground: true,
		Fullscreen:    &Verdict{Window: w, Region: region},
	}
}

func plainTick(w desktop.Window) TickInput {
	return TickInput{Foreground: w, HasForeground: true}
}

func switcherTick(w desktop.Window) TickInput {
	return TickInput{Foreground: w, HasForeground: true, IsSwitcher: true}
}

func TestMachineLocksOnFullscreenWindow(t *testing.T) {
	m := NewMachine(50)

	cmds := m.Tick(fullscreenTick(w1, d1))

	require.Len(t, cmds, 1)
	assert.Equal(t, Command{Op: OpApply, Region: d1}, cmds[0])
	assert.True(t, m.Locked())
	assert.Equal(t, 50, m.GraceRemaining())
}

func TestMachineReassertsEveryTickWhileFullscreen(t *testing.T) {
	m := NewMachine(50)

	for i := 0; i < 4; i++ {
		cmds := m.Tick(fullscreenTick(w1, d1))
		require.Len(t, cmds, 1, "tick %d", i)
		assert.Equal(t, OpApply, cmds[0].Op, "tick %d", i)
		assert.Equal(t, 50, m.GraceRemaining(), "tick %d", i)
	}
}

func TestMachineIgnoresNonFullscreenWhileUnlocked(t *testing.T) {
	m := NewMachine(50)

	assert.Empty(t, m.Tick(plainTick(w1)))
	assert.Empty(t, m.Tick(TickInput{}))
	assert.False(t, m.Locked())
}

func TestMachineGraceAbsorbsThenReleases(t *testing.T) {
	m := NewMachine(50)
	m.Tick(fullscreenTick(w1, d1))

	// Ticks 1..49: clip kept alive on tolerance.
	for i := 1; i < 50; i++ {
		cmds := m.Tick(plainTick(w2))
		require.Len(t, cmds, 1, "tick %d", i)
		assert.Equal(t, Command{Op: OpApply, Region: d1}, cmds[0], "tick %d", i)
		assert.True(t, m.Locked(), "tick %d", i)
	}

	// Tick 50: grace exhausted.
	cmds := m.Tick(plainTick(w2))
	require.Len(t, cmds, 1)
	assert.Equal(t, OpRelease, cmds[0].Op)
	assert.False(t, m.Locked())

	// Further ticks are a no-op.
	assert.Empty(t, m.Tick(plainTick(w2)))
}

func TestMachineGraceResetsOnReconfirmation(t *testing.T) {
	m := NewMachine(10)
	m.Tick(fullscreenTick(w1, d1))

	for i := 0; i < 7; i++ {
		m.Tick(plainTick(w2))
	}
	assert.Equal(t, 3, m.GraceRemaining())

	m.Tick(fullscreenTick(w1, d1))
	assert.Equal(t, 10, m.GraceRemaining())
}

func TestMachineNoForegroundDecaysLock(t *testing.T) {
	m := NewMachine(3)
	m.Tick(fullscreenTick(w1, d1))

	cmds := m.Tick(TickInput{})
	require.Len(t, cmds, 1)
	assert.Equal(t, OpApply, cmds[0].Op)

	m.Tick(TickInput{})
	cmds = m.Tick(TickInput{})
	require.Len(t, cmds, 1)
	assert.Equal(t, OpRelease, cmds[0].Op)
	assert.False(t, m.Locked())
}

func TestMachineRelocksOnWindowChange(t *testing.T) {
	m := NewMachine(50)
	m.Tick(fullscreenTick(w1, d1))

	cmds := m.Tick(fullscreenTick(w2, d2))
	require.Len(t, cmds, 1)
	assert.Equal(t, Command{Op: OpApply, Region: d2}, cmds[0])
	r, ok := m.Region()
	require.True(t, ok)
	assert.Equal(t, d2, r)
}

func TestMachineSwitcherReleasesWhileLocked(t *testing.T) {
	m := NewMachine(50)
	m.Tick(fullscreenTick(w1, d1))

	cmds := m.Tick(switcherTick(w2))
	require.Len(t, cmds, 1)
	assert.Equal(t, OpRelease, cmds[0].Op)
	assert.True(t, m.SwitcherActive())

	// While the switcher stays up, nothing is emitted.
	assert.Empty(t, m.Tick(switcherTick(w2)))
	assert.Empty(t, m.Tick(switcherTick(w2)))
}

func TestMachineSwitcherReleasesEvenWhenUnlocked(t *testing.T) {
	m := NewMachine(50)

	cmds := m.Tick(switcherTick(w2))
	require.Len(t, cmds, 1)
	assert.Equal(t, OpRelease, cmds[0].Op)
}

func TestMachineSwitchToDifferentWindowSuspends(t *testing.T) {
	m := NewMachine(50)
	m.Tick(fullscreenTick(w1, d1))
	m.Tick(switcherTick(w2))

	// Gesture ends on w2: even a fullscreen-shaped w2 gets no clip this
	// tick.
	cmds := m.Tick(fullscreenTick(w2, d2))
	assert.Empty(t, cmds)
	assert.True(t, m.Suspended())
	assert.False(t, m.Locked())

	// Non-fullscreen ticks while suspended stay silent.
	assert.Empty(t, m.Tick(plainTick(w2)))
	assert.True(t, m.Suspended())
}

func TestMachineSuspensionEndsOnFullscreenFocus(t *testing.T) {
	m := NewMachine(50)
	m.Tick(fullscreenTick(w1, d1))
	m.Tick(switcherTick(w2))
	m.Tick(plainTick(w2)) // gesture ends elsewhere -> suspended

	require.True(t, m.Suspended())

	// Focusing a fullscreen window re-qualifies confinement.
	cmds := m.Tick(fullscreenTick(w1, d1))
	require.Len(t, cmds, 1)
	assert.Equal(t, Command{Op: OpApply, Region: d1}, cmds[0])
	assert.False(t, m.Suspended())
	assert.True(t, m.Locked())
}

func TestMachineSwitchBackToSameWindowRelocks(t *testing.T) {
	m := NewMachine(50)
	m.Tick(fullscreenTick(w1, d1))
	m.Tick(switcherTick(w2))

	// Gesture ends back on the locked window: normal evaluation resumes
	// the same tick.
	cmds := m.Tick(fullscreenTick(w1, d1))
	require.Len(t, cmds, 1)
	assert.Equal(t, Command{Op: OpApply, Region: d1}, cmds[0])
	assert.False(t, m.Suspended())
	assert.True(t, m.Locked())
	assert.Equal(t, 50, m.GraceRemaining())
}

func TestMachineSwitcherWithoutLockFallsThrough(t *testing.T) {
	m := NewMachine(50)
	m.Tick(switcherTick(w2))

	// No remembered window: the ending tick evaluates normally.
	cmds := m.Tick(fullscreenTick(w2, d2))
	require.Len(t, cmds, 1)
	assert.Equal(t, Command{Op: OpApply, Region: d2}, cmds[0])
	assert.False(t, m.Suspended())
}

func TestMachineSuspendedIgnoresGraceDecay(t *testing.T) {
	m := NewMachine(5)
	m.Tick(fullscreenTick(w1, d1))
	m.Tick(switcherTick(w2))
	m.Tick(plainTick(w2)) // suspended

	// Many non-fullscreen ticks: no counters decay, no commands.
	for i := 0; i < 20; i++ {
		assert.Empty(t, m.Tick(plainTick(w2)), "tick %d", i)
	}
	assert.True(t, m.Suspended())

	// Re-qualification still works afterwards.
	cmds := m.Tick(fullscreenTick(w2, d2))
	require.Len(t, cmds, 1)
	assert.Equal(t, OpApply, cmds[0].Op)
}

func TestMachineRegionChangeOnSameWindowRelocks(t *testing.T) {
	m := NewMachine(50)
	m.Tick(fullscreenTick(w1, d1))

	// Same window drags to another monitor.
	in := TickInput{
		Foreground:    w1,
		HasForeground: true,
		Fullscreen:    &Verdict{Window: w1, Region: d2},
	}
	cmds := m.Tick(in)
	require.Len(t, cmds, 1)
	assert.Equal(t, Command{Op: OpApply, Region: d2}, cmds[0])
}

func TestMachineMinimumGraceIsOneTick(t *testing.T) {
	m := NewMachine(0)
	m.Tick(fullscreenTick(w1, d1))

	cmds := m.Tick(plainTick(w2))
	require.Len(t, cmds, 1)
	assert.Equal(t, OpRelease, cmds[0].Op)
}
