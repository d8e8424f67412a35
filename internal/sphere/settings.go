// SPDX-License-Identifier: EPL-2.0

package sphere

import "time"

const (
	defaultCommandCapacity    = 1024
	defaultInspectionInterval = 250 * time.Millisecond
)

// Settings tune a Session. Zero values fall back to DefaultSettings.
type Settings struct {
	// CommandCapacity bounds the number of graph changes waiting for the
	// audio side.
	CommandCapacity int
	// InspectionInterval is the amount of rendered audio between snapshots.
	InspectionInterval time.Duration
}

func DefaultSettings() Settings {
	return Settings{
		CommandCapacity:    defaultCommandCapacity,
		InspectionInterval: defaultInspectionInterval,
	}
}

func (s Settings) withDefaults() Settings {
	if s.CommandCapacity <= 0 {
		s.CommandCapacity = defaultCommandCapacity
	}
	if s.InspectionInterval <= 0 {
		s.InspectionInterval = defaultInspectionInterval
	}
	return s
}
