// SPDX-License-Identifier: EPL-2.0

package sphere

import (
	"time"

	"github.com/google/uuid"
)

// NodeID identifies a node inside one session.
type NodeID uint64

// BufferHandle refers to a buffer uploaded with Session.InsertBuffer. It is
// only valid with the session that issued it and only while that session is
// open.
type BufferHandle struct {
	id         uint64
	session    uuid.UUID
	channels   int
	frames     int
	sampleRate int
}

func (h BufferHandle) Session() uuid.UUID { return h.session }
func (h BufferHandle) Channels() int      { return h.channels }
func (h BufferHandle) Frames() int        { return h.frames }
func (h BufferHandle) SampleRate() int    { return h.sampleRate }

func (h BufferHandle) Duration() time.Duration {
	if h.sampleRate == 0 {
		return 0
	}
	return time.Duration(h.frames) * time.Second / time.Duration(h.sampleRate)
}
