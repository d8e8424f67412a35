// SPDX-License-Identifier: EPL-2.0

package audplay

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode matches every *DecodeError through errors.Is.
	ErrDecode = errors.New("decode failed")

	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

// DecodeError reports why a sound file could not be loaded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }
