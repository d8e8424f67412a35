// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

// fakeOgg mimics oggvorbis.Reader: Read fills whole frames and returns the
// number of values written.
type fakeOgg struct {
	rate     int
	channels int
	samples  []float32
	err      error
}

func (f *fakeOgg) SampleRate() int { return f.rate }
func (f *fakeOgg) Channels() int   { return f.channels }

func (f *fakeOgg) Read(p []float32) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	if len(f.samples) == 0 {
		return 0, io.EOF
	}
	n := min(len(p), len(f.samples))
	n -= n % f.channels
	copy(p, f.samples[:n])
	f.samples = f.samples[n:]
	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for name, data := range map[string][]byte{
		"garbage": []byte("This is not Ogg Vorbis data"),
		"empty":   nil,
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
				t.Error("Decode() error = nil, want error")
			}
		})
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		samples  []float32
		bufSize  int
	}{
		{"mono", 1, []float32{0.1, 0.2, 0.3, 0.4, 0.5}, 2},
		{"stereo", 2, []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3}, 4},
		{"5.1 with ragged buffer", 6, []float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			want := append([]float32(nil), tt.samples...)
			s := &source{dec: &fakeOgg{rate: 48000, channels: tt.channels, samples: tt.samples}}
			if s.Channels() != tt.channels || s.SampleRate() != 48000 {
				t.Fatalf("metadata = %d ch %d Hz", s.Channels(), s.SampleRate())
			}

			var got []float32
			buf := make([]float32, tt.bufSize)
			for {
				n, err := s.ReadSamples(buf)
				if n%tt.channels != 0 {
					t.Fatalf("ReadSamples() = %d, not frame aligned", n)
				}
				got = append(got, buf[:n]...)
				if err == io.EOF {
					break
				}
				if err != nil {
					t.Fatalf("ReadSamples() error = %v", err)
				}
			}

			if len(got) != len(want) {
				t.Fatalf("read %d samples, want %d", len(got), len(want))
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("sample[%d] = %v, want %v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestSource_ShortBuffer(t *testing.T) {
	t.Parallel()

	s := &source{dec: &fakeOgg{rate: 44100, channels: 2, samples: []float32{1, 1}}}
	if n, err := s.ReadSamples(make([]float32, 1)); n != 0 || err != nil {
		t.Errorf("ReadSamples(1) = %d, %v; want 0, nil", n, err)
	}
}

func TestSource_ReadError(t *testing.T) {
	t.Parallel()

	s := &source{dec: &fakeOgg{channels: 1, err: io.ErrUnexpectedEOF}}
	if _, err := s.ReadSamples(make([]float32, 4)); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want ErrUnexpectedEOF", err)
	}
}
