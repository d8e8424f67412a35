// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audplay"
	"github.com/ik5/audplay/audio"
	"github.com/ik5/audplay/internal/wavtest"
)

func TestResample(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := wavtest.Write(t, dir, "voice.wav", 16000, 2, 1.0)
	out := filepath.Join(dir, "voice-8k.wav")

	stdout, _, err := execute(t, "resample", in, out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "wrote "+out+": 2 ch, 8000 Hz")

	buf, err := audplay.LoadSoundFile(out)
	require.NoError(t, err)
	assert.Equal(t, 8000, buf.SampleRate())
	assert.Equal(t, 2, buf.Channels())
	assert.InDelta(t, 8000, buf.Frames(), 2)
}

func TestResample_SameRate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := wavtest.Write(t, dir, "click.wav", 8000, 1, 0.5)
	out := filepath.Join(dir, "copy.wav")

	_, _, err := execute(t, "resample", "--rate", "8000", in, out)
	require.NoError(t, err)

	src, err := audplay.LoadSoundFile(in)
	require.NoError(t, err)
	dst, err := audplay.LoadSoundFile(out)
	require.NoError(t, err)

	require.Equal(t, src.Frames(), dst.Frames())
	// one LSB of requantization
	for i, v := range src.Channel(0) {
		require.InDelta(t, v, dst.Channel(0)[i], 1.0/16384, "frame %d", i)
	}
}

func TestResample_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := wavtest.Write(t, dir, "click.wav", 8000, 1, 0.5)

	_, _, err := execute(t, "resample", filepath.Join(dir, "missing.mp3"), filepath.Join(dir, "out.wav"))
	assert.ErrorIs(t, err, audplay.ErrDecode)

	_, _, err = execute(t, "resample", "--rate", "0", in, filepath.Join(dir, "out.wav"))
	assert.ErrorIs(t, err, audio.ErrInvalidSampleRate)

	_, _, err = execute(t, "resample", "--channel", "1", in, filepath.Join(dir, "out.wav"))
	assert.ErrorIs(t, err, audio.ErrChannelOutOfBounds)

	_, _, err = execute(t, "resample", in)
	assert.Error(t, err)
}

func TestResample_SingleChannel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := wavtest.Write(t, dir, "voice.wav", 8000, 2, 0.5)
	out := filepath.Join(dir, "left.wav")

	stdout, _, err := execute(t, "resample", "--channel", "0", in, out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 ch, 8000 Hz")

	buf, err := audplay.LoadSoundFile(out)
	require.NoError(t, err)
	assert.Equal(t, 1, buf.Channels())
	assert.Equal(t, 4000, buf.Frames())
}
