// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"time"
)

// Buffer is a fully decoded, immutable recording held in memory.
// Samples are stored deinterleaved, one slice per channel.
type Buffer struct {
	sampleRate int
	channels   [][]float32
}

// NewBuffer wraps per-channel sample slices. The slices are owned by the
// Buffer afterwards and must not be modified by the caller.
func NewBuffer(sampleRate int, channels [][]float32) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if len(channels) == 0 {
		return nil, ErrNoChannels
	}

	frames := len(channels[0])
	for _, ch := range channels[1:] {
		if len(ch) != frames {
			return nil, ErrChannelLength
		}
	}

	return &Buffer{sampleRate: sampleRate, channels: channels}, nil
}

// ReadBuffer drains src into a new Buffer and closes it.
func ReadBuffer(src Source) (*Buffer, error) {
	defer src.Close()

	channels := src.Channels()
	if channels < 1 {
		return nil, ErrNoChannels
	}

	size := src.BufSize()
	if size < channels {
		size = 4096
	}
	// keep reads frame aligned
	size -= size % channels

	data := make([][]float32, channels)
	buf := make([]float32, size)
	// carries a partial frame over to the next read
	var pending []float32

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			samples := buf[:n]
			if len(pending) > 0 {
				samples = append(pending, samples...)
				pending = nil
			}

			frames := len(samples) / channels
			for f := range frames {
				base := f * channels
				for c := range channels {
					data[c] = append(data[c], samples[base+c])
				}
			}
			if rest := samples[frames*channels:]; len(rest) > 0 {
				pending = append([]float32(nil), rest...)
			}
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	return NewBuffer(src.SampleRate(), data)
}

func (b *Buffer) SampleRate() int { return b.sampleRate }
func (b *Buffer) Channels() int   { return len(b.channels) }
func (b *Buffer) Frames() int     { return len(b.channels[0]) }

// Channel returns the samples of channel i. The slice must be treated as
// read-only.
func (b *Buffer) Channel(i int) []float32 { return b.channels[i] }

// ExtractChannel returns a mono Buffer sharing the samples of channel i.
func (b *Buffer) ExtractChannel(i int) (*Buffer, error) {
	if i < 0 || i >= len(b.channels) {
		return nil, fmt.Errorf("%w: %d of %d", ErrChannelOutOfBounds, i, len(b.channels))
	}

	return &Buffer{sampleRate: b.sampleRate, channels: b.channels[i : i+1]}, nil
}

// Seconds is the exact, fractional length of the recording.
func (b *Buffer) Seconds() float64 {
	return float64(b.Frames()) / float64(b.sampleRate)
}

func (b *Buffer) Duration() time.Duration {
	return time.Duration(b.Seconds() * float64(time.Second))
}

// Source returns a fresh reader over the buffer contents.
func (b *Buffer) Source() Source {
	return &bufferSource{buf: b}
}

type bufferSource struct {
	buf *Buffer
	pos int
}

func (s *bufferSource) SampleRate() int { return s.buf.sampleRate }
func (s *bufferSource) Channels() int   { return len(s.buf.channels) }
func (s *bufferSource) BufSize() int    { return 4096 }
func (s *bufferSource) Close() error    { return nil }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	channels := len(s.buf.channels)
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}

	remaining := s.buf.Frames() - s.pos
	if remaining <= 0 {
		return 0, io.EOF
	}

	frames := min(len(dst)/channels, remaining)
	for f := range frames {
		for c, ch := range s.buf.channels {
			dst[f*channels+c] = ch[s.pos+f]
		}
	}
	s.pos += frames

	if s.pos >= s.buf.Frames() {
		return frames * channels, io.EOF
	}
	return frames * channels, nil
}
