// SPDX-License-Identifier: EPL-2.0

package sphere

import "fmt"

// Process renders len(out)/NumOutputs interleaved frames. It is called from
// the backend's audio callback and never blocks.
func (s *Session) Process(out []float32) {
	clear(out)
	if s.stopped.Load() {
		return
	}

	s.receive()

	channels := s.numOutputs
	if len(out)%channels != 0 && !s.misaligned {
		s.misaligned = true
		s.hook(fmt.Errorf("%w: %d samples for %d channels", ErrBlockAlignment, len(out), channels))
	}

	frames := len(out) / channels
	for done := 0; done < frames; {
		n := min(s.blockSize, frames-done)
		s.render(out[done*channels:(done+n)*channels], n)
		done += n
	}
}

// receive swaps in the newest queued plan.
func (s *Session) receive() {
	for {
		select {
		case p := <-s.commands:
			s.current = p
		default:
			return
		}
	}
}

func (s *Session) render(out []float32, frames int) {
	p := s.current
	if p == nil {
		s.frames += int64(frames)
		return
	}

	for _, st := range p.steps {
		e := st.entry
		if e.freed.Load() {
			continue
		}
		for i, sources := range st.sources {
			mix(e.in[i][:frames], sources)
		}
		s.run(e, frames)
	}

	channels := s.numOutputs
	for ch, sources := range p.outputs {
		for _, src := range sources {
			if src.entry.freed.Load() {
				continue
			}
			for i, v := range src.entry.out[src.channel][:frames] {
				out[i*channels+ch] += v
			}
		}
	}

	// freeing after the outputs keeps a node's final block audible
	for _, st := range p.steps {
		if st.entry.done && !st.entry.freed.Load() {
			st.entry.freed.Store(true)
		}
	}

	s.frames += int64(frames)
	s.publish(p)
}

func mix(dst []float32, sources []port) {
	clear(dst)
	for _, src := range sources {
		if src.entry.freed.Load() {
			continue
		}
		for i, v := range src.entry.out[src.channel][:len(dst)] {
			dst[i] += v
		}
	}
}

// run processes one node. A panicking node is silenced and freed.
func (s *Session) run(e *entry, frames int) {
	defer func() {
		if r := recover(); r != nil {
			for _, o := range e.out {
				clear(o[:frames])
			}
			e.done = true
			s.hook(fmt.Errorf("%w: node %d (%s): %v", ErrNodePanic, e.id, e.kind, r))
		}
	}()

	if e.node.process(e.in, e.out, frames) {
		e.done = true
	}
}

// publish offers a snapshot to every inspector, replacing an unread one.
func (s *Session) publish(p *plan) {
	if len(p.inspectors) == 0 || s.frames-s.lastInspect < s.inspectEvery {
		return
	}
	s.lastInspect = s.frames

	snapshot := Inspection{
		Session: s.id,
		Frames:  s.frames,
		Elapsed: s.elapsed(s.frames),
		Buffers: p.buffers,
		plan:    p,
	}
	for _, ch := range p.inspectors {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snapshot:
		default:
		}
	}
}
