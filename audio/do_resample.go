// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Resample converts b to targetRate using a Resampler pipeline and collects
// the result into a new Buffer. b is returned unchanged when the rates match.
func Resample(b *Buffer, targetRate int) (*Buffer, error) {
	if targetRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if b.SampleRate() == targetRate {
		return b, nil
	}

	out, err := ReadBuffer(NewResampler(b.Source(), targetRate))
	if err != nil {
		return nil, fmt.Errorf("resample %d Hz -> %d Hz: %w", b.SampleRate(), targetRate, err)
	}

	return out, nil
}
