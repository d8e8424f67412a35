// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"slices"
	"sync"
	"testing"

	"github.com/ik5/audplay/internal/audiotest"
)

type stubDecoder struct {
	name string
}

func (d *stubDecoder) Decode(io.Reader) (Source, error) {
	return audiotest.NewSilentSource(44100, 2, 100), nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &stubDecoder{name: "wav"}
	registry.Register("wav", decoder)

	got, ok := registry.Get("wav")
	if !ok {
		t.Fatal("Get() ok = false, want true")
	}
	if got != decoder {
		t.Error("Get() returned a different decoder instance")
	}

	if _, ok := registry.Get("flac"); ok {
		t.Error("Get(flac) ok = true, want false")
	}
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &stubDecoder{name: "mp3"}
	registry.Register("MP3", decoder)

	got, ok := registry.Get("mp3")
	if !ok || got != decoder {
		t.Errorf("Get(mp3) = %v, %v, want registered decoder", got, ok)
	}
}

func TestRegistry_ForPath(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	wavDecoder := &stubDecoder{name: "wav"}
	oggDecoder := &stubDecoder{name: "ogg"}
	registry.Register("wav", wavDecoder)
	registry.Register("ogg", oggDecoder)

	tests := []struct {
		path       string
		want       Decoder
		wantFormat string
		wantOK     bool
	}{
		{"sessions/voice.wav", wavDecoder, "wav", true},
		{"CLICK.WAV", wavDecoder, "wav", true},
		{"/tmp/a.b/track.ogg", oggDecoder, "ogg", true},
		{"song.flac", nil, "flac", false},
		{"no-extension", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			got, format, ok := registry.ForPath(tt.path)
			if ok != tt.wantOK {
				t.Fatalf("ForPath(%q) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
			if format != tt.wantFormat {
				t.Errorf("ForPath(%q) format = %q, want %q", tt.path, format, tt.wantFormat)
			}
			if ok && got != tt.want {
				t.Errorf("ForPath(%q) returned wrong decoder", tt.path)
			}
		})
	}
}

func TestRegistry_Formats(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	for _, f := range []string{"ogg", "wav", "aiff"} {
		registry.Register(f, &stubDecoder{name: f})
	}

	want := []string{"aiff", "ogg", "wav"}
	if got := registry.Formats(); !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &stubDecoder{name: "test"}

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			registry.Register("format", decoder)
		}()
		go func() {
			defer wg.Done()
			_, _ = registry.Get("format")
		}()
	}
	wg.Wait()

	if got, ok := registry.Get("format"); !ok || got != decoder {
		t.Error("Get() failed after concurrent operations")
	}
}

func TestErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	all := []error{ErrInvalidDstSize, ErrNoChannels, ErrChannelLength, ErrInvalidSampleRate, ErrChannelOutOfBounds}
	for i, a := range all {
		for j, b := range all {
			if i != j && errors.Is(a, b) {
				t.Errorf("errors.Is(%v, %v) = true, want false", a, b)
			}
		}
	}
}
