// SPDX-License-Identifier: EPL-2.0

// Package player runs one playback session end to end: load, open the
// backend, build the graph, supervise, tear down.
package player

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/ik5/audplay"
	"github.com/ik5/audplay/internal/backend"
	"github.com/ik5/audplay/internal/config"
	"github.com/ik5/audplay/internal/playback"
	"github.com/ik5/audplay/internal/progress"
	"github.com/ik5/audplay/internal/sphere"
	"github.com/ik5/audplay/internal/supervisor"
)

const (
	defaultSampleRate = 48000
	defaultBlockSize  = 512
	defaultChannels   = 2
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	routeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#95E1A3"))
)

type Options struct {
	Config config.Config
	Logger *log.Logger
	// Out receives the status line and the progress bar.
	Out io.Writer
	// OpenBackend defaults to OpenBackend.
	OpenBackend func(config.Config) (sphere.Backend, error)
	// Interval and Sleep are passed to the supervisor.
	Interval time.Duration
	Sleep    func(ctx context.Context, d time.Duration) error
	// TeaOptions are used for the --tui display.
	TeaOptions []tea.ProgramOption
}

// Result describes a finished or interrupted session.
type Result struct {
	Route    playback.Route
	Report   supervisor.Report
	Duration time.Duration
}

// OpenBackend opens the backend selected by cfg.
func OpenBackend(cfg config.Config) (sphere.Backend, error) {
	switch cfg.Backend {
	case config.BackendWAV:
		return backend.NewWAVFile(
			cfg.Output,
			orDefault(cfg.SampleRate, defaultSampleRate),
			orDefault(cfg.BlockSize, defaultBlockSize),
			orDefault(cfg.Channels, defaultChannels),
		), nil
	case config.BackendPortAudio:
		pa, err := backend.OpenPortAudio(backend.Config{
			SampleRate:      float64(cfg.SampleRate),
			FramesPerBuffer: cfg.BlockSize,
			OutputChannels:  cfg.Channels,
		})
		if err != nil {
			return nil, err
		}
		return pa, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Backend)
	}
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

// Run plays opts.Config.File once. Errors before playback starts are
// returned; engine errors during playback are logged by the supervisor.
func Run(ctx context.Context, opts Options) (Result, error) {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	open := opts.OpenBackend
	if open == nil {
		open = OpenBackend
	}

	// decode before anything touches the audio device
	buf, err := audplay.LoadSoundFile(cfg.File)
	if err != nil {
		return Result{}, fmt.Errorf("loading sound: %w", err)
	}
	result := Result{Duration: buf.Duration()}
	logger.Info("loaded",
		"file", cfg.File,
		"channels", buf.Channels(),
		"rate", buf.SampleRate(),
		"duration", buf.Duration(),
	)

	be, err := open(cfg)
	if err != nil {
		return result, fmt.Errorf("opening %s backend: %w", cfg.Backend, err)
	}

	errs := sphere.NewErrorChannel()
	settings := sphere.DefaultSettings()
	if opts.Interval > 0 {
		settings.InspectionInterval = opts.Interval
	}

	sess, err := sphere.Start(be, settings, errs.Hook())
	if err != nil {
		if stopErr := be.Stop(); stopErr != nil {
			logger.Warn("stopping backend", "err", stopErr)
		}
		return result, fmt.Errorf("starting engine: %w", err)
	}
	logger = logger.With("session", sess.ID())
	defer func() {
		if err := sess.Close(); err != nil {
			logger.Error("closing session", "err", err)
		}
	}()
	logger.Debug("engine started",
		"backend", cfg.Backend,
		"rate", sess.SampleRate(),
		"block", sess.BlockSize(),
		"outputs", sess.NumOutputs(),
	)

	h, err := sess.InsertBuffer(buf)
	if err != nil {
		return result, fmt.Errorf("uploading buffer: %w", err)
	}

	result.Route, err = playback.Build(sess, h, cfg.Volume)
	if err != nil {
		return result, fmt.Errorf("building graph: %w", err)
	}
	fmt.Fprintf(out, "%s %s\n",
		labelStyle.Render(fmt.Sprintf("output %d:", result.Route.Channel)),
		routeStyle.Render(result.Route.String()),
	)

	inspections, err := sess.RequestInspection()
	if err != nil {
		return result, fmt.Errorf("requesting inspection: %w", err)
	}

	sup := &supervisor.Supervisor{
		Errors:      errs,
		Inspections: inspections,
		Logger:      logger,
		Interval:    opts.Interval,
		Sleep:       opts.Sleep,
	}
	total := supervisor.Target(buf.Duration())

	if !cfg.TUI {
		sup.Display = progress.NewBar(out, total)
		result.Report, err = sup.Run(ctx, buf.Duration())
		return result, err
	}

	bar := progress.NewTeaBar(cfg.File, total, opts.TeaOptions...)
	sup.Display = bar

	g, gctx := errgroup.WithContext(ctx)
	g.Go(bar.Run)
	g.Go(func() error {
		var err error
		result.Report, err = sup.Run(gctx, buf.Duration())
		return err
	})

	return result, g.Wait()
}
