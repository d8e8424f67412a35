// SPDX-License-Identifier: EPL-2.0

package backend

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audplay/audio"
	"github.com/ik5/audplay/formats/wav"
)

type constProcessor float32

func (c constProcessor) Process(out []float32) {
	for i := range out {
		out[i] = float32(c)
	}
}

func TestWAVFile_Render(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "render.wav")
	be := NewWAVFile(path, 8000, 80, 2)

	assert.Equal(t, 8000, be.SampleRate())
	assert.Equal(t, 80, be.BlockSize())
	assert.Equal(t, 2, be.NumOutputs())

	require.NoError(t, be.Start(constProcessor(0.5)))
	require.Eventually(t, func() bool { return be.Frames() >= 320 }, 5*time.Second, 5*time.Millisecond)
	require.NoError(t, be.Stop())

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	src, err := wav.Decoder{}.Decode(file)
	require.NoError(t, err)
	buf, err := audio.ReadBuffer(src)
	require.NoError(t, err)

	assert.Equal(t, 8000, buf.SampleRate())
	assert.Equal(t, 2, buf.Channels())
	assert.Equal(t, be.Frames(), int64(buf.Frames()))
	assert.Zero(t, buf.Frames()%80, "only whole blocks are rendered")
	for c := range buf.Channels() {
		for _, v := range buf.Channel(c) {
			require.InDelta(t, 0.5, v, 1e-3)
		}
	}
}

func TestWAVFile_Lifecycle(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.wav")
	be := NewWAVFile(path, 8000, 80, 1)

	require.NoError(t, be.Start(constProcessor(0)))
	assert.ErrorIs(t, be.Start(constProcessor(0)), ErrStreamOpen)

	require.NoError(t, be.Stop())
	require.NoError(t, be.Stop())
	assert.ErrorIs(t, be.Start(constProcessor(0)), ErrStopped)

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestWAVFile_StopWithoutStart(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "never.wav")
	be := NewWAVFile(path, 8000, 80, 1)
	require.NoError(t, be.Stop())

	assert.NoFileExists(t, path)
	assert.ErrorIs(t, be.Start(constProcessor(0)), ErrStopped)
}

func TestWAVFile_StopAfterFailedStart(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "x.wav")
	be := NewWAVFile(path, 0, 80, 1)
	require.Error(t, be.Start(constProcessor(0)))
	require.NoError(t, be.Stop())

	assert.NoFileExists(t, path)
}

func TestWAVFile_InvalidConfig(t *testing.T) {
	t.Parallel()

	be := NewWAVFile(filepath.Join(t.TempDir(), "x.wav"), 0, 80, 1)
	assert.Error(t, be.Start(constProcessor(0)))
}
