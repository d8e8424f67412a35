// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audplay/utils"
)

// window slots relative to the interpolation interval [t0, t1).
const (
	tPrev = iota
	t0
	t1
	tNext
	windowSize
)

// Resampler streams from src to target sample rate using cubic interpolation.
// Works on interleaved samples; preserves channel count.
// Applies a one-pole low-pass filter to the input when downsampling.
type Resampler struct {
	src      Source
	dstRate  int
	step     float64 // source frames consumed per output frame
	channels int

	window [windowSize][]float32
	filled [windowSize]bool
	primed bool

	// fractional position between t0 and t1
	pos float64

	frame []float32
	eof   bool

	lowPass bool
	alpha   float32
	state   []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		step:     step,
		channels: channels,
		frame:    make([]float32, channels),
		lowPass:  step > 1.0,
		alpha:    0.5,
		state:    make([]float32, channels),
	}
	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame pulls one frame from src into r.frame. It reports whether a frame
// was read; io.EOF is returned once src is exhausted.
func (r *Resampler) readFrame() (bool, error) {
	if r.eof {
		return false, io.EOF
	}

	n, err := r.src.ReadSamples(r.frame)
	got := n == r.channels
	if got && r.lowPass {
		if !r.primed {
			copy(r.state, r.frame)
		}
		for c := range r.channels {
			r.frame[c] = r.alpha*r.frame[c] + (1-r.alpha)*r.state[c]
			r.state[c] = r.frame[c]
		}
	}

	switch {
	case err == io.EOF:
		r.eof = true
		if !got {
			return false, io.EOF
		}
	case err != nil:
		return false, fmt.Errorf("%w", err)
	}

	return got, nil
}

// prime loads the first frames into t0..tNext. tPrev stays empty so the
// first interval reuses t0 as its left neighbour.
func (r *Resampler) prime() error {
	for i := t0; i < windowSize; i++ {
		got, err := r.readFrame()
		if got {
			copy(r.window[i], r.frame)
			r.filled[i] = true
			r.primed = true
			continue
		}
		if err != nil && err != io.EOF {
			return err
		}
		if i == t0 {
			return io.EOF
		}
		break
	}

	return nil
}

// advance shifts the window one frame forward. Once src is drained the
// new tNext slot stays empty and the stream ends when it reaches t1.
func (r *Resampler) advance() error {
	first := r.window[tPrev]
	copy(r.window[:], r.window[1:])
	copy(r.filled[:], r.filled[1:])
	r.window[tNext] = first

	got, err := r.readFrame()
	r.filled[tNext] = got
	if got {
		copy(r.window[tNext], r.frame)
	}
	if err == io.EOF {
		return nil
	}

	return err
}

// ReadSamples produces dst samples at the target rate.
// dst length should be a multiple of r.channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.filled[t0] {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	want := len(dst) / r.channels
	written := 0

	for written < want {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		// the last interval holds t0 once src is exhausted
		if !r.filled[t0] {
			return written * r.channels, io.EOF
		}

		x := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			y1 := r.window[t0][c]
			y2 := y1
			if r.filled[t1] {
				y2 = r.window[t1][c]
			}
			y0, y3 := y1, y2
			if r.filled[tPrev] {
				y0 = r.window[tPrev][c]
			}
			if r.filled[tNext] {
				y3 = r.window[tNext][c]
			}
			out[c] = utils.CubicInterpolate(y0, y1, y2, y3, x)
		}

		written++
		r.pos += r.step
	}

	return written * r.channels, nil
}
