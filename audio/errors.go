// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize     = errors.New("dst size must be multiple of channels")
	ErrNoChannels         = errors.New("buffer must have at least one channel")
	ErrChannelLength      = errors.New("buffer channels differ in length")
	ErrInvalidSampleRate  = errors.New("sample rate must be positive")
	ErrChannelOutOfBounds = errors.New("channel index out of bounds")
)
