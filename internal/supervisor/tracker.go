// SPDX-License-Identifier: EPL-2.0

package supervisor

import "time"

// Target is the number of whole seconds in d.
func Target(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d / time.Second)
}

// Tracker counts elapsed whole seconds towards a target.
type Tracker struct {
	target  int
	elapsed int
}

func NewTracker(d time.Duration) *Tracker {
	return &Tracker{target: Target(d)}
}

func (t *Tracker) Advance()     { t.elapsed++ }
func (t *Tracker) Done() bool   { return t.elapsed >= t.target }
func (t *Tracker) Elapsed() int { return t.elapsed }
func (t *Tracker) Target() int  { return t.target }
