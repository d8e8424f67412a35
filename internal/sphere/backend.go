// SPDX-License-Identifier: EPL-2.0

package sphere

// Processor renders interleaved float32 audio. Process is called from the
// audio callback and must not block.
type Processor interface {
	Process(out []float32)
}

// Backend drives a Processor from an audio device or another clock.
type Backend interface {
	SampleRate() int
	BlockSize() int
	NumOutputs() int
	// Start begins calling p.Process. It must not call it before returning
	// control of p to the backend's own goroutine.
	Start(p Processor) error
	// Stop ends the callbacks. No Process call may happen after Stop returns.
	Stop() error
}

// ErrorHook receives errors raised while rendering. It is called from the
// audio callback.
type ErrorHook func(error)
