// SPDX-License-Identifier: EPL-2.0

// Package wavtest writes small PCM16 WAV fixtures for tests.
package wavtest

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/audplay/formats/wav"
)

// Write creates name inside dir holding seconds of a 440 Hz tone at half
// amplitude and returns its path.
func Write(t testing.TB, dir, name string, sampleRate, channels int, seconds float64) string {
	t.Helper()

	frames := int(math.Round(seconds * float64(sampleRate)))
	samples := make([]int16, frames*channels)
	for f := range frames {
		v := int16(16000 * math.Sin(2*math.Pi*440*float64(f)/float64(sampleRate)))
		for c := range channels {
			samples[f*channels+c] = v
		}
	}

	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer file.Close()

	if err := wav.WriteWAV16(file, sampleRate, channels, samples); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}

	return path
}
