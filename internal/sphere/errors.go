// SPDX-License-Identifier: EPL-2.0

package sphere

import "errors"

var (
	ErrSessionClosed = errors.New("session closed")

	// ErrForeignHandle is returned when a BufferHandle issued by another
	// session is used.
	ErrForeignHandle = errors.New("buffer handle belongs to another session")

	ErrUnknownBuffer = errors.New("unknown buffer")
	ErrUnknownNode   = errors.New("unknown node")
	ErrChannelRange  = errors.New("channel out of range")
	ErrCycle         = errors.New("connection would create a cycle")
	ErrInvalidNode   = errors.New("invalid node")

	// ErrCommandQueueFull means the audio side has not consumed pending
	// graph changes.
	ErrCommandQueueFull = errors.New("command queue full")

	ErrInvalidBackend = errors.New("invalid backend")
	ErrBlockAlignment = errors.New("output block not frame aligned")
	ErrNodePanic      = errors.New("node panicked")

	// ErrMailboxOverflow stands in for errors an ErrorChannel had no room
	// for.
	ErrMailboxOverflow = errors.New("error mailbox overflow")
)
