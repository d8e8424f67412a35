// SPDX-License-Identifier: EPL-2.0

package supervisor

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ik5/audplay/internal/sphere"
)

// DefaultInterval is the length of one iteration.
const DefaultInterval = time.Second

// Display shows playback progress in iteration units.
type Display interface {
	Advance(n int)
	Finish()
}

type State int

const (
	Init State = iota
	Running
	Draining
	Terminal
)

func (s State) String() string {
	switch s {
	case Init:
		return "init"
	case Running:
		return "running"
	case Draining:
		return "draining"
	case Terminal:
		return "terminal"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Report summarizes a run.
type Report struct {
	Target       int
	Iterations   int
	Inspections  int
	EngineErrors int
	// Completed is false when the run was cancelled.
	Completed bool
}

type Supervisor struct {
	Errors      *sphere.ErrorChannel
	Inspections <-chan sphere.Inspection
	Display     Display
	Logger      *log.Logger
	// Interval defaults to DefaultInterval.
	Interval time.Duration
	// Sleep waits d or until ctx is done. Defaults to a timer.
	Sleep func(ctx context.Context, d time.Duration) error

	state State
}

// State is the state the last Run reached.
func (s *Supervisor) State() State { return s.state }

func (s *Supervisor) defaults() {
	if s.Display == nil {
		s.Display = nopDisplay{}
	}
	if s.Logger == nil {
		s.Logger = log.New(io.Discard)
	}
	if s.Interval <= 0 {
		s.Interval = DefaultInterval
	}
	if s.Sleep == nil {
		s.Sleep = sleep
	}
}

func (s *Supervisor) enter(state State) {
	s.state = state
	s.Logger.Debug("supervisor", "state", state)
}

// Run supervises a playback of length duration.
func (s *Supervisor) Run(ctx context.Context, duration time.Duration) (Report, error) {
	s.defaults()
	defer s.Display.Finish()

	s.enter(Init)
	tracker := NewTracker(duration)
	report := Report{Target: tracker.Target()}
	s.Logger.Info("playing", "duration", duration, "seconds", tracker.Target())

	s.enter(Running)
	for !tracker.Done() {
		if err := s.Sleep(ctx, s.Interval); err != nil {
			s.drain(&report)
			return report, fmt.Errorf("playback interrupted at %ds: %w", tracker.Elapsed(), err)
		}
		tracker.Advance()
		report.Iterations++
		s.Display.Advance(1)

		s.drain(&report)
		s.poll(&report)
	}

	s.enter(Draining)
	if err := s.Sleep(ctx, s.Interval); err != nil {
		s.drain(&report)
		return report, fmt.Errorf("playback interrupted while draining: %w", err)
	}
	s.drain(&report)

	s.enter(Terminal)
	report.Completed = true
	s.Logger.Info("playback finished", "iterations", report.Iterations, "engine_errors", report.EngineErrors)

	return report, nil
}

// drain logs every pending engine error.
func (s *Supervisor) drain(report *Report) {
	if s.Errors == nil {
		return
	}
	for _, err := range s.Errors.Drain() {
		report.EngineErrors++
		s.Logger.Error("engine error", "err", err)
	}
}

// poll takes an inspection snapshot if one is waiting.
func (s *Supervisor) poll(report *Report) {
	select {
	case snap := <-s.Inspections:
		report.Inspections++
		s.Logger.Debug("inspection",
			"frames", snap.Frames,
			"elapsed", snap.Elapsed,
			"nodes", len(snap.Nodes()),
			"outputs", len(snap.Outputs()),
		)
	default:
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type nopDisplay struct{}

func (nopDisplay) Advance(int) {}
func (nopDisplay) Finish()     {}
