// SPDX-License-Identifier: EPL-2.0

package sphere

import (
	"fmt"
	"sync/atomic"
)

// DefaultErrorCapacity is the number of errors an ErrorChannel holds before
// it starts counting overflow.
const DefaultErrorCapacity = 1024

// ErrorChannel is a mailbox for errors with any number of senders and one
// receiver. Send never blocks and never allocates: errors that do not fit
// are counted and reported as a single ErrMailboxOverflow.
type ErrorChannel struct {
	errs    chan error
	dropped atomic.Int64
}

func NewErrorChannel() *ErrorChannel {
	return NewErrorChannelSize(DefaultErrorCapacity)
}

// NewErrorChannelSize returns a mailbox holding up to size errors.
func NewErrorChannelSize(size int) *ErrorChannel {
	return &ErrorChannel{errs: make(chan error, max(1, size))}
}

func (c *ErrorChannel) Send(err error) {
	if err == nil {
		return
	}

	select {
	case c.errs <- err:
	default:
		c.dropped.Add(1)
	}
}

// Hook returns an ErrorHook that forwards to Send.
func (c *ErrorChannel) Hook() ErrorHook {
	return c.Send
}

// TryRecv pops the oldest error. Overflow is reported after every queued
// error. It returns nil when the mailbox is empty.
func (c *ErrorChannel) TryRecv() error {
	select {
	case err := <-c.errs:
		return err
	default:
	}

	if n := c.dropped.Swap(0); n > 0 {
		return fmt.Errorf("%w: %d errors dropped", ErrMailboxOverflow, n)
	}

	return nil
}

// Drain removes and returns every pending error in arrival order.
func (c *ErrorChannel) Drain() []error {
	var errs []error
	for {
		err := c.TryRecv()
		if err == nil {
			return errs
		}
		errs = append(errs, err)
	}
}

// Len counts pending errors, a non-zero overflow counting as one.
func (c *ErrorChannel) Len() int {
	n := len(c.errs)
	if c.dropped.Load() > 0 {
		n++
	}
	return n
}
