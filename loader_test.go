// SPDX-License-Identifier: EPL-2.0

package audplay_test

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audplay"
	"github.com/ik5/audplay/audio"
	"github.com/ik5/audplay/formats/wav"
	"github.com/ik5/audplay/internal/wavtest"
)

func TestLoadSoundFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		file     string
		channels int
		seconds  float64
	}{
		{"click", "click.wav", 1, 0.5},
		{"voice", "voice.wav", 2, 5.2},
		{"upper case extension", "CLICK.WAV", 1, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := wavtest.Write(t, t.TempDir(), tt.file, 8000, tt.channels, tt.seconds)

			buf, err := audplay.LoadSoundFile(path)
			require.NoError(t, err)

			assert.Equal(t, tt.channels, buf.Channels())
			assert.Equal(t, 8000, buf.SampleRate())
			assert.InDelta(t, tt.seconds, buf.Seconds(), 1e-9)
		})
	}
}

func TestLoadSoundFile_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	corrupt := filepath.Join(dir, "corrupt.wav")
	require.NoError(t, os.WriteFile(corrupt, []byte("definitely not riff"), 0o600))

	tests := []struct {
		name  string
		path  string
		cause error
	}{
		{"missing file", filepath.Join(dir, "missing.wav"), fs.ErrNotExist},
		{"unknown extension", filepath.Join(dir, "notes.txt"), audplay.ErrUnsupportedFormat},
		{"no extension", filepath.Join(dir, "README"), audplay.ErrUnsupportedFormat},
		{"corrupt data", corrupt, wav.ErrNotWavFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf, err := audplay.LoadSoundFile(tt.path)
			require.Error(t, err)
			assert.Nil(t, buf)

			assert.ErrorIs(t, err, audplay.ErrDecode)
			assert.ErrorIs(t, err, tt.cause)

			var decodeErr *audplay.DecodeError
			require.True(t, errors.As(err, &decodeErr))
			assert.Equal(t, tt.path, decodeErr.Path)
			assert.Contains(t, err.Error(), tt.path)
		})
	}
}

type constDecoder struct{ value float32 }

func (d constDecoder) Decode(_ io.Reader) (audio.Source, error) {
	buf, err := audio.NewBuffer(4, [][]float32{{d.value, d.value, d.value, d.value}})
	if err != nil {
		return nil, err
	}
	return buf.Source(), nil
}

func TestLoader_CustomRegistry(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tone.raw")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	registry := audio.NewRegistry()
	registry.Register("raw", constDecoder{value: 0.25})

	buf, err := audplay.Loader{Registry: registry}.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.25, 0.25, 0.25, 0.25}, buf.Channel(0))
	assert.Equal(t, time.Second, buf.Duration())

	_, err = audplay.LoadSoundFile(path)
	assert.ErrorIs(t, err, audplay.ErrUnsupportedFormat)
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		[]string{"aif", "aiff", "mp3", "oga", "ogg", "wav", "wave"},
		audplay.DefaultRegistry().Formats(),
	)
}
