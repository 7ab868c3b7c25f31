package lock

import (
	"github.com/bnema/cursorfence/internal/desktop"
	"github.com/bnema/cursorfence/internal/display"
	"github.com/bnema/cursorfence/internal/logger"
)

// Op is a cursor confinement command kind.
type Op int

const (
	// OpApply confines the cursor to the command's region.
	OpApply Op = iota
	// OpRelease removes the confinement region.
	OpRelease
)

// Command is an instruction for the cursor clipper.
type Command struct {
	Op     Op
	Region display.Rect
}

// Verdict is a positive fullscreen judgement: this window fills this
// monitor's rectangle.
type Verdict struct {
	Window desktop.Window
	Region display.Rect
}

// TickInput is one sampling tick's view of the desktop.
type TickInput struct {
	Foreground    desktop.Window
	HasForeground bool
	IsSwitcher    bool
	Fullscreen    *Verdict
}

// Machine owns all session state. A single caller feeds it one TickInput per
// sampling tick and executes the returned commands; nothing else mutates it.
//
// Confinement survives brief disruptions through a grace counter, reset each
// time the locked window is reconfirmed fullscreen. Window-switch gestures
// release the cursor immediately, and ending a gesture on a different window
// suspends all re-locking until some fullscreen window is focused again.
type Machine struct {
	graceMax int

	locked     bool
	lockedWin  desktop.Window
	region     display.Rect
	graceTicks int

	switcherActive bool
	remembered     desktop.Window
	hasRemembered  bool
	suspended      bool
}

// NewMachine creates an unlocked machine whose grace period lasts graceTicks
// sampling ticks.
func NewMachine(graceTicks int) *Machine {
	if graceTicks < 1 {
		graceTicks = 1
	}
	return &Machine{graceMax: graceTicks}
}

// Tick consumes one sampling tick and returns the commands to run, in order.
// Evaluation priority: no foreground window, switcher active, switcher just
// ended, then normal fullscreen evaluation.
func (m *Machine) Tick(in TickInput) []Command {
	if !in.HasForeground {
		return m.decayLock("no foreground window, cursor released")
	}

	if in.IsSwitcher {
		if m.switcherActive {
			return nil
		}
		m.switcherActive = true
		m.hasRemembered = m.locked
		if m.locked {
			m.remembered = m.lockedWin
		}
		// Release even if we think we are unlocked: confinement must
		// never fight switcher navigation.
		logger.Info("window switcher active, cursor released")
		return []Command{{Op: OpRelease}}
	}

	if m.switcherActive {
		m.switcherActive = false
		remembered, had := m.remembered, m.hasRemembered
		m.remembered = 0
		m.hasRemembered = false

		if had && in.Foreground != remembered {
			// The user deliberately navigated elsewhere; stay free
			// until a fullscreen window is focused again.
			m.suspended = true
			m.clearLock()
			logger.Info("switcher ended on a different window, cursor stays free")
			return nil
		}
		if had {
			m.suspended = false
			logger.Info("switcher ended on the locked window")
		} else {
			logger.Info("switcher ended")
		}
		// Fall through to normal evaluation with this tick's window.
	}

	if in.Fullscreen == nil {
		if m.suspended {
			return nil
		}
		return m.decayLock("fullscreen exited, cursor released")
	}

	if m.suspended {
		// Explicit refocus of a fullscreen window re-qualifies locking.
		m.suspended = false
		logger.Info("fullscreen window focused, re-enabling lock")
	}

	v := *in.Fullscreen
	isNew := !m.locked || m.lockedWin != v.Window || m.region != v.Region
	m.locked = true
	m.lockedWin = v.Window
	m.region = v.Region
	m.graceTicks = m.graceMax
	if isNew {
		logger.Infof("cursor locked to monitor %s", v.Region)
	}
	return []Command{{Op: OpApply, Region: v.Region}}
}

// decayLock handles a tick whose trigger condition does not hold: burn one
// grace tick, re-asserting the clip until the grace runs out. Other processes
// can silently revoke the OS region, so re-applying every tick is deliberate.
func (m *Machine) decayLock(releaseMsg string) []Command {
	if !m.locked {
		return nil
	}
	m.graceTicks--
	if m.graceTicks <= 0 {
		m.clearLock()
		logger.Info(releaseMsg)
		return []Command{{Op: OpRelease}}
	}
	return []Command{{Op: OpApply, Region: m.region}}
}

func (m *Machine) clearLock() {
	m.locked = false
	m.lockedWin = 0
	m.region = display.Rect{}
	m.graceTicks = 0
}

// Locked reports whether a confinement region is currently being enforced.
func (m *Machine) Locked() bool {
	return m.locked
}

// Region returns the enforced region; ok is false when unlocked.
func (m *Machine) Region() (r display.Rect, ok bool) {
	return m.region, m.locked
}

// Suspended reports whether re-locking is currently withheld.
func (m *Machine) Suspended() bool {
	return m.suspended
}

// SwitcherActive reports whether the window switcher holds the foreground.
func (m *Machine) SwitcherActive() bool {
	return m.switcherActive
}

// GraceMax returns the configured grace period in ticks.
func (m *Machine) GraceMax() int {
	return m.graceMax
}

// GraceRemaining returns how many ticks of tolerance are left while locked.
func (m *Machine) GraceRemaining() int {
	if !m.locked {
		return 0
	}
	return m.graceTicks
}
