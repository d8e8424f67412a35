// SPDX-License-Identifier: EPL-2.0

package sphere

import (
	"fmt"

	"github.com/ik5/audplay/audio"
	"github.com/ik5/audplay/utils"
)

// StopAction tells the engine what to do with a node whose input ran out.
type StopAction int

const (
	// Continue keeps the node in the graph, producing silence.
	Continue StopAction = iota
	// FreeSelf removes the node from the graph once it finished.
	FreeSelf
)

func (a StopAction) String() string {
	switch a {
	case Continue:
		return "continue"
	case FreeSelf:
		return "free_self"
	default:
		return fmt.Sprintf("StopAction(%d)", int(a))
	}
}

// NodeSpec describes a node to insert. The implementations are BufferReader
// and Mult.
type NodeSpec interface {
	Kind() string
	build(s *Session) (node, error)
}

// node is the audio side of a NodeSpec. process renders frames samples into
// out and reports whether the node should be freed.
type node interface {
	numInputs() int
	numOutputs() int
	process(in, out [][]float32, frames int) bool
}

// BufferReader plays an uploaded buffer. It has no inputs and one output
// per buffer channel.
type BufferReader struct {
	Buffer BufferHandle
	// Rate is the playback speed; 1 plays at the original pitch.
	Rate       float64
	Loop       bool
	StopAction StopAction
}

func (BufferReader) Kind() string { return "buffer_reader" }

func (r BufferReader) build(s *Session) (node, error) {
	buf, err := s.lookupBuffer(r.Buffer)
	if err != nil {
		return nil, err
	}
	if r.Rate <= 0 {
		return nil, fmt.Errorf("%w: buffer reader rate %v", ErrInvalidNode, r.Rate)
	}

	return &bufferReader{
		buf:      buf,
		rate:     r.Rate,
		loop:     r.Loop,
		freeSelf: r.StopAction == FreeSelf,
	}, nil
}

type bufferReader struct {
	buf      *audio.Buffer
	rate     float64
	loop     bool
	freeSelf bool

	pos      float64
	finished bool
}

func (n *bufferReader) numInputs() int  { return 0 }
func (n *bufferReader) numOutputs() int { return n.buf.Channels() }

// at returns sample i of ch, wrapping when looping and clamping otherwise.
func (n *bufferReader) at(ch []float32, i int) float32 {
	length := len(ch)
	if n.loop {
		i %= length
		if i < 0 {
			i += length
		}
		return ch[i]
	}
	return ch[max(0, min(i, length-1))]
}

func (n *bufferReader) process(_, out [][]float32, frames int) bool {
	length := n.buf.Frames()

	for i := range frames {
		if !n.finished && n.pos >= float64(length) {
			if n.loop && length > 0 {
				for n.pos >= float64(length) {
					n.pos -= float64(length)
				}
			} else {
				n.finished = true
			}
		}
		if n.finished {
			for _, o := range out {
				clear(o[i:frames])
			}
			break
		}

		idx := int(n.pos)
		x := float32(n.pos - float64(idx))
		for c, o := range out {
			ch := n.buf.Channel(c)
			if x == 0 {
				o[i] = ch[idx]
				continue
			}
			o[i] = utils.CubicInterpolate(n.at(ch, idx-1), ch[idx], n.at(ch, idx+1), n.at(ch, idx+2), x)
		}
		n.pos += n.rate
	}

	if !n.loop && n.pos >= float64(length) {
		n.finished = true
	}

	return n.finished && n.freeSelf
}

// Mult multiplies its single input by Factor.
type Mult struct {
	Factor float64
}

func (Mult) Kind() string { return "mult" }

func (m Mult) build(*Session) (node, error) {
	return &mult{factor: float32(m.Factor)}, nil
}

type mult struct {
	factor float32
}

func (*mult) numInputs() int  { return 1 }
func (*mult) numOutputs() int { return 1 }

func (m *mult) process(in, out [][]float32, frames int) bool {
	src, dst := in[0][:frames], out[0][:frames]
	for i, v := range src {
		dst[i] = v * m.factor
	}
	return false
}
