// Package daemon runs the sampling loop that ties the desktop backend to the
// lock state machine.
package daemon

import (
	"context"
	"time"

	"github.com/bnema/cursorfence/internal/config"
	"github.com/bnema/cursorfence/internal/desktop"
	"github.com/bnema/cursorfence/internal/lock"
	"github.com/bnema/cursorfence/internal/logger"
)

// Daemon polls the desktop at a fixed cadence, classifies the foreground
// window, feeds the lock machine and executes its commands. A tick always
// completes before the next begins.
type Daemon struct {
	backend    desktop.Backend
	classifier *desktop.Classifier
	machine    *lock.Machine
	interval   time.Duration
	tolerance  int32
}

// New wires a daemon from the configuration and a desktop backend.
func New(cfg *config.Config, backend desktop.Backend) *Daemon {
	return &Daemon{
		backend:    backend,
		classifier: desktop.NewClassifier(backend, cfg.Lock.SwitcherClasses),
		machine:    lock.NewMachine(cfg.Lock.GraceTicks()),
		interval:   cfg.Lock.PollInterval,
		tolerance:  cfg.Lock.Tolerance,
	}
}

// Run samples until ctx is cancelled. The cursor is released unconditionally
// on every exit path, including panics; the release does not depend on the
// machine's state.
func (d *Daemon) Run(ctx context.Context) error {
	defer func() {
		if r := recover(); r != nil {
			d.releaseCursor()
			panic(r)
		}
		d.releaseCursor()
	}()

	logger.Info("monitoring for fullscreen windows",
		"backend", d.backend.Name(),
		"interval", d.interval,
		"grace", time.Duration(d.machine.GraceMax())*d.interval)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down, releasing cursor")
			return nil
		case <-ticker.C:
			d.TickOnce()
		}
	}
}

// TickOnce performs a single sample-decide-execute cycle.
func (d *Daemon) TickOnce() {
	in := d.sample()
	for _, cmd := range d.machine.Tick(in) {
		d.execute(cmd)
	}
}

// sample gathers this tick's view of the desktop. Any failed query degrades
// to absent data for the tick; the next tick retries naturally.
func (d *Daemon) sample() lock.TickInput {
	fg, ok := d.backend.ForegroundWindow()
	if !ok {
		return lock.TickInput{}
	}

	in := lock.TickInput{Foreground: fg, HasForeground: true}
	if d.classifier.IsSwitcher(fg) {
		in.IsSwitcher = true
		return in
	}

	winRect, err := d.backend.WindowRect(fg)
	if err != nil {
		logger.Debug("window geometry query failed", "window", fg, "err", err)
		return lock.TickInput{}
	}
	mon, err := d.backend.MonitorForWindow(fg)
	if err != nil || mon == nil {
		logger.Debug("monitor lookup failed", "window", fg, "err", err)
		return lock.TickInput{}
	}

	if lock.IsFullscreen(winRect, mon.Rect, d.tolerance) {
		in.Fullscreen = &lock.Verdict{Window: fg, Region: mon.Rect}
	}
	return in
}

// execute runs one machine command against the backend. Command failures are
// non-fatal: bookkeeping has already advanced and the next tick's
// re-assertion self-corrects.
func (d *Daemon) execute(cmd lock.Command) {
	switch cmd.Op {
	case lock.OpApply:
		if err := d.backend.ClipCursor(cmd.Region); err != nil {
			logger.Debug("clip cursor failed", "region", cmd.Region, "err", err)
		}
	case lock.OpRelease:
		if err := d.backend.ReleaseCursor(); err != nil {
			logger.Debug("release cursor failed", "err", err)
		}
	}
}

func (d *Daemon) releaseCursor() {
	if err := d.backend.ReleaseCursor(); err != nil {
		logger.Debug("release cursor failed", "err", err)
	}
}

// Machine exposes the state machine for inspection.
func (d *Daemon) Machine() *lock.Machine {
	return d.machine
}
