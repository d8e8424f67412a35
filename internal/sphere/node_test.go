// SPDX-License-Identifier: EPL-2.0

package sphere

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderReader(t *testing.T, n node, frames int) ([]float32, bool) {
	t.Helper()

	out := [][]float32{make([]float32, frames)}
	done := n.process(nil, out, frames)
	return out[0], done
}

func TestBufferReader_Process(t *testing.T) {
	t.Parallel()

	buf := mustBuffer(t, 8, []float32{1, 2, 3})

	tests := []struct {
		name     string
		loop     bool
		stop     StopAction
		frames   int
		want     []float32
		wantDone bool
	}{
		{"exact length frees", false, FreeSelf, 3, []float32{1, 2, 3}, true},
		{"pads with silence", false, FreeSelf, 5, []float32{1, 2, 3, 0, 0}, true},
		{"continue never frees", false, Continue, 5, []float32{1, 2, 3, 0, 0}, false},
		{"partial block", false, FreeSelf, 2, []float32{1, 2}, false},
		{"loop wraps", true, FreeSelf, 7, []float32{1, 2, 3, 1, 2, 3, 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			n := &bufferReader{buf: buf, rate: 1, loop: tt.loop, freeSelf: tt.stop == FreeSelf}
			got, done := renderReader(t, n, tt.frames)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantDone, done)
		})
	}
}

func TestBufferReader_SecondBlockAfterEnd(t *testing.T) {
	t.Parallel()

	n := &bufferReader{buf: mustBuffer(t, 8, []float32{1, 2}), rate: 1}

	got, done := renderReader(t, n, 4)
	assert.Equal(t, []float32{1, 2, 0, 0}, got)
	assert.False(t, done)

	got, done = renderReader(t, n, 4)
	assert.Equal(t, []float32{0, 0, 0, 0}, got)
	assert.False(t, done)
}

func TestBufferReader_HalfRate(t *testing.T) {
	t.Parallel()

	n := &bufferReader{buf: mustBuffer(t, 8, []float32{0, 0.1, 0.2, 0.3, 0.4}), rate: 0.5}
	got, _ := renderReader(t, n, 8)

	// whole positions are copied, interior midpoints of a ramp stay on it
	assert.Equal(t, float32(0.1), got[2])
	assert.InDelta(t, 0.15, got[3], 1e-6)
	assert.Equal(t, float32(0.2), got[4])
	assert.InDelta(t, 0.25, got[5], 1e-6)
}

func TestBufferReader_EmptyBuffer(t *testing.T) {
	t.Parallel()

	n := &bufferReader{buf: mustBuffer(t, 8, []float32{}), rate: 1, loop: true, freeSelf: true}
	got, done := renderReader(t, n, 3)

	assert.Equal(t, []float32{0, 0, 0}, got)
	assert.True(t, done)
}

func TestBufferReader_Outputs(t *testing.T) {
	t.Parallel()

	n, err := BufferReader{Rate: 1}.build(&Session{id: uuid.New()})
	require.ErrorIs(t, err, ErrForeignHandle)
	assert.Nil(t, n)

	r := &bufferReader{buf: mustBuffer(t, 8, []float32{0}, []float32{0})}
	assert.Equal(t, 0, r.numInputs())
	assert.Equal(t, 2, r.numOutputs())
}

func TestMult_Process(t *testing.T) {
	t.Parallel()

	tests := []struct {
		factor float64
		want   []float32
	}{
		{1, []float32{0.5, -0.25, 1}},
		{0.5, []float32{0.25, -0.125, 0.5}},
		{0, []float32{0, 0, 0}},
		{-1, []float32{-0.5, 0.25, -1}},
		{2, []float32{1, -0.5, 2}},
	}

	for _, tt := range tests {
		n, err := Mult{Factor: tt.factor}.build(nil)
		require.NoError(t, err)

		in := [][]float32{{0.5, -0.25, 1, 7}}
		out := [][]float32{make([]float32, 4)}
		assert.False(t, n.process(in, out, 3))
		assert.Equal(t, tt.want, out[0][:3], "factor %v", tt.factor)
		assert.Zero(t, out[0][3], "frames past the block stay untouched")
	}
}

func TestStopAction_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "continue", Continue.String())
	assert.Equal(t, "free_self", FreeSelf.String())
	assert.Equal(t, "StopAction(7)", StopAction(7).String())
}
