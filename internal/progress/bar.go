// SPDX-License-Identifier: EPL-2.0

package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
)

const barWidth = 40

// Bar redraws a single terminal line on every update.
type Bar struct {
	out   io.Writer
	total int
	bar   progress.Model

	mtx      sync.Mutex
	elapsed  int
	finished bool
}

func NewBar(out io.Writer, total int) *Bar {
	b := &Bar{
		out:   out,
		total: total,
		bar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithoutPercentage(),
			progress.WithWidth(barWidth),
		),
	}
	b.mtx.Lock()
	b.render()
	b.mtx.Unlock()

	return b
}

func (b *Bar) Advance(n int) {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	if b.finished {
		return
	}
	b.elapsed = min(b.total, b.elapsed+n)
	b.render()
}

// Finish draws the bar full and ends the line. Later calls do nothing.
func (b *Bar) Finish() {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	if b.finished {
		return
	}
	b.finished = true
	b.elapsed = b.total
	b.render()
	fmt.Fprintln(b.out)
}

// render expects mtx to be held.
func (b *Bar) render() {
	fmt.Fprintf(b.out, "\r%s / %s %s",
		Clock(b.elapsed), Clock(b.total), b.bar.ViewAs(fraction(b.elapsed, b.total)))
}
