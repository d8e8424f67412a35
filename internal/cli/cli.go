// SPDX-License-Identifier: EPL-2.0

// Package cli wires the audplay commands to the player.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ik5/audplay"
	"github.com/ik5/audplay/internal/config"
	"github.com/ik5/audplay/internal/player"
)

type rootFlags struct {
	configFile string
	envFiles   []string
}

// NewRootCommand returns the audplay command. Running it without a
// subcommand plays one file.
func NewRootCommand() *cobra.Command {
	v := viper.New()
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "audplay",
		Short: "Play a sound file once through the audio engine",
		Long: `Loads a sound file, routes its first channel to output 0 of the
audio engine, optionally through a gain stage, and supervises playback
until the file has finished.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlay(cmd, v, flags)
		},
	}

	d := config.Default()
	f := cmd.Flags()
	f.String("file", d.File, "sound file to play")
	f.Float64("volume", d.Volume, "linear gain; 1.0 plays without a gain stage")
	f.String("backend", d.Backend, "audio backend: portaudio or wav")
	f.String("output", d.Output, "output file for the wav backend")
	f.Int("sample-rate", d.SampleRate, "backend sample rate, 0 for the device default")
	f.Int("block-size", d.BlockSize, "frames per engine block, 0 for the backend default")
	f.Int("channels", d.Channels, "backend output channels, 0 for the device default")
	f.Bool("tui", d.TUI, "show a full screen progress display")
	f.String("log-level", d.LogLevel, "debug, info, warn or error")
	f.StringVar(&flags.configFile, "config", "", "optional config file (yaml, toml or json)")
	f.StringSliceVar(&flags.envFiles, "env-file", nil, "dotenv files to load, .env by default")

	for key, name := range map[string]string{
		config.KeyFile:       "file",
		config.KeyVolume:     "volume",
		config.KeyBackend:    "backend",
		config.KeyOutput:     "output",
		config.KeySampleRate: "sample-rate",
		config.KeyBlockSize:  "block-size",
		config.KeyChannels:   "channels",
		config.KeyTUI:        "tui",
		config.KeyLogLevel:   "log-level",
	} {
		// only fails for a nil flag
		_ = v.BindPFlag(key, f.Lookup(name))
	}

	cmd.AddCommand(newInfoCommand(), newResampleCommand())

	return cmd
}

func runPlay(cmd *cobra.Command, v *viper.Viper, flags *rootFlags) error {
	if err := config.LoadDotEnv(flags.envFiles...); err != nil {
		return err
	}

	cfg, err := config.Load(v, flags.configFile)
	if err != nil {
		return err
	}

	logger := NewLogger(cmd.ErrOrStderr(), cfg.Level())
	logger.Debug("configuration", "file", cfg.File, "volume", cfg.Volume, "backend", cfg.Backend)

	res, err := player.Run(cmd.Context(), player.Options{
		Config: cfg,
		Logger: logger,
		Out:    cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}

	logger.Info("done", "route", res.Route, "seconds", res.Report.Iterations)

	return nil
}

// NewLogger returns the logger used by every command.
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "audplay",
		ReportTimestamp: true,
	})
}

func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info PATH...",
		Short: "Print the layout of sound files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runInfo,
	}
}

func runInfo(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	var errs []error
	for _, path := range args {
		buf, err := audplay.LoadSoundFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		fmt.Fprintf(out, "%s: %d ch, %d Hz, %d frames, %s\n",
			path, buf.Channels(), buf.SampleRate(), buf.Frames(), buf.Duration())
	}

	return errors.Join(errs...)
}
