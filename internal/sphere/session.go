// SPDX-License-Identifier: EPL-2.0

package sphere

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/ik5/audplay/audio"
)

// Session is one running graph bound to a Backend. The graph has one
// output channel per backend channel.
type Session struct {
	id      uuid.UUID
	backend Backend
	hook    ErrorHook

	sampleRate   int
	blockSize    int
	numOutputs   int
	inspectEvery int64

	commands chan *plan
	stopped  atomic.Bool

	// controller side, guarded by mtx
	mtx        sync.Mutex
	closed     bool
	nextNode   NodeID
	nextBuffer uint64
	nodes      map[NodeID]*entry
	order      []NodeID
	edges      []Connection
	buffers    map[uint64]*audio.Buffer
	inspectors []chan Inspection

	// audio side, only touched from Process
	current     *plan
	frames      int64
	lastInspect int64
	// set once a misaligned block has been reported
	misaligned bool
}

// Start creates a session and starts backend. hook may be nil.
func Start(backend Backend, settings Settings, hook ErrorHook) (*Session, error) {
	rate, block := backend.SampleRate(), backend.BlockSize()
	if rate <= 0 || block <= 0 || backend.NumOutputs() <= 0 {
		return nil, fmt.Errorf("%w: %d Hz, block %d, %d outputs",
			ErrInvalidBackend, rate, block, backend.NumOutputs())
	}

	settings = settings.withDefaults()
	if hook == nil {
		hook = func(error) {}
	}

	s := &Session{
		id:           uuid.New(),
		backend:      backend,
		hook:         hook,
		sampleRate:   rate,
		blockSize:    block,
		numOutputs:   backend.NumOutputs(),
		inspectEvery: max(1, int64(settings.InspectionInterval.Seconds()*float64(rate))),
		commands:     make(chan *plan, settings.CommandCapacity),
		nodes:        make(map[NodeID]*entry),
		buffers:      make(map[uint64]*audio.Buffer),
	}

	if err := backend.Start(s); err != nil {
		return nil, fmt.Errorf("starting backend: %w", err)
	}

	return s, nil
}

func (s *Session) ID() uuid.UUID   { return s.id }
func (s *Session) SampleRate() int { return s.sampleRate }
func (s *Session) BlockSize() int  { return s.blockSize }
func (s *Session) NumOutputs() int { return s.numOutputs }

// Close stops the backend. Handles and node ids of the session become
// invalid. Calling Close again is a no-op.
func (s *Session) Close() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.stopped.Store(true)

	if err := s.backend.Stop(); err != nil {
		return fmt.Errorf("stopping backend: %w", err)
	}

	return nil
}

// InsertBuffer uploads b, resampling it to the session rate when needed.
func (s *Session) InsertBuffer(b *audio.Buffer) (BufferHandle, error) {
	if b == nil {
		return BufferHandle{}, fmt.Errorf("%w: nil buffer", ErrUnknownBuffer)
	}

	buf, err := audio.Resample(b, s.sampleRate)
	if err != nil {
		return BufferHandle{}, fmt.Errorf("inserting buffer: %w", err)
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.closed {
		return BufferHandle{}, ErrSessionClosed
	}

	s.nextBuffer++
	id := s.nextBuffer
	s.buffers[id] = buf

	if err := s.commit(); err != nil {
		delete(s.buffers, id)
		s.nextBuffer--
		return BufferHandle{}, err
	}

	return BufferHandle{
		id:         id,
		session:    s.id,
		channels:   buf.Channels(),
		frames:     buf.Frames(),
		sampleRate: buf.SampleRate(),
	}, nil
}

// lookupBuffer resolves h. mtx must be held.
func (s *Session) lookupBuffer(h BufferHandle) (*audio.Buffer, error) {
	if h.session != s.id {
		return nil, ErrForeignHandle
	}
	buf, ok := s.buffers[h.id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBuffer, h.id)
	}
	return buf, nil
}

// Graph is the mutating side of a Session.
type Graph interface {
	InsertNode(spec NodeSpec) (NodeID, error)
	Connect(c Connection) error
}

// Batch runs fn against the graph and hands every change fn made to the
// audio side as one update once fn returns, so the audio side never sees
// a node before its connections. When fn or the update fails nothing is
// applied. The Graph passed to fn must not be used after fn returns.
func (s *Session) Batch(fn func(Graph) error) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	s.prune()

	saved := s.save()
	b := &batch{s: s}
	if err := fn(b); err != nil {
		s.restore(saved)
		return err
	}
	if b.changes == 0 {
		return nil
	}
	if err := s.commit(); err != nil {
		s.restore(saved)
		return err
	}

	return nil
}

// InsertNode adds a node described by spec to the graph.
func (s *Session) InsertNode(spec NodeSpec) (NodeID, error) {
	var id NodeID
	err := s.Batch(func(g Graph) error {
		var err error
		id, err = g.InsertNode(spec)
		return err
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

// Connect adds an edge. Connecting the same ports twice is a no-op.
func (s *Session) Connect(c Connection) error {
	return s.Batch(func(g Graph) error {
		return g.Connect(c)
	})
}

// batch applies changes to the controller state without committing.
// mtx is held for its whole life.
type batch struct {
	s       *Session
	changes int
}

func (b *batch) InsertNode(spec NodeSpec) (NodeID, error) {
	s := b.s
	n, err := spec.build(s)
	if err != nil {
		return 0, fmt.Errorf("inserting %s: %w", spec.Kind(), err)
	}

	s.nextNode++
	id := s.nextNode
	s.nodes[id] = newEntry(id, spec.Kind(), n, s.blockSize)
	s.order = append(s.order, id)
	b.changes++

	return id, nil
}

func (b *batch) Connect(c Connection) error {
	s := b.s
	if err := s.validate(c); err != nil {
		return fmt.Errorf("connecting %s: %w", c, err)
	}
	if slices.Contains(s.edges, c) {
		return nil
	}

	s.edges = append(s.edges, c)
	if _, err := topoOrder(s.order, s.edges); err != nil {
		s.edges = s.edges[:len(s.edges)-1]
		return fmt.Errorf("connecting %s: %w", c, err)
	}
	b.changes++

	return nil
}

type graphState struct {
	nextNode NodeID
	order    []NodeID
	edges    []Connection
}

func (s *Session) save() graphState {
	return graphState{
		nextNode: s.nextNode,
		order:    slices.Clone(s.order),
		edges:    slices.Clone(s.edges),
	}
}

// restore drops every node inserted after g was saved. mtx must be held.
func (s *Session) restore(g graphState) {
	for id := range s.nodes {
		if id > g.nextNode {
			delete(s.nodes, id)
		}
	}
	s.nextNode = g.nextNode
	s.order = g.order
	s.edges = g.edges
}

func (s *Session) validate(c Connection) error {
	from, ok := s.nodes[c.From]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownNode, c.From)
	}
	if c.FromChannel < 0 || c.FromChannel >= len(from.out) {
		return fmt.Errorf("%w: node %d has %d outputs", ErrChannelRange, c.From, len(from.out))
	}

	if c.ToOutput {
		if c.ToChannel < 0 || c.ToChannel >= s.numOutputs {
			return fmt.Errorf("%w: graph has %d outputs", ErrChannelRange, s.numOutputs)
		}
		return nil
	}

	to, ok := s.nodes[c.To]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownNode, c.To)
	}
	if c.ToChannel < 0 || c.ToChannel >= len(to.in) {
		return fmt.Errorf("%w: node %d has %d inputs", ErrChannelRange, c.To, len(to.in))
	}
	if c.From == c.To {
		return ErrCycle
	}

	return nil
}

// RequestInspection subscribes to periodic snapshots of the graph.
func (s *Session) RequestInspection() (<-chan Inspection, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.closed {
		return nil, ErrSessionClosed
	}

	ch := make(chan Inspection, 1)
	s.inspectors = append(s.inspectors, ch)
	if err := s.commit(); err != nil {
		s.inspectors = s.inspectors[:len(s.inspectors)-1]
		return nil, err
	}

	return ch, nil
}

// prune forgets nodes the audio side has freed, along with their edges.
// mtx must be held.
func (s *Session) prune() {
	s.order = slices.DeleteFunc(s.order, func(id NodeID) bool {
		if !s.nodes[id].freed.Load() {
			return false
		}
		delete(s.nodes, id)
		return true
	})
	s.edges = slices.DeleteFunc(s.edges, func(c Connection) bool {
		_, from := s.nodes[c.From]
		_, to := s.nodes[c.To]
		return !from || (!c.ToOutput && !to)
	})
}

// commit builds a plan from the controller state and queues it for the
// audio side. mtx must be held.
func (s *Session) commit() error {
	order, err := topoOrder(s.order, s.edges)
	if err != nil {
		return err
	}

	p := &plan{
		steps:      make([]step, len(order)),
		outputs:    make([][]port, s.numOutputs),
		inspectors: slices.Clone(s.inspectors),
		buffers:    len(s.buffers),
	}

	index := make(map[NodeID]int, len(order))
	for i, id := range order {
		e := s.nodes[id]
		index[id] = i
		p.steps[i] = step{entry: e, sources: make([][]port, len(e.in))}
	}

	for _, c := range s.edges {
		src := port{entry: s.nodes[c.From], channel: c.FromChannel}
		if c.ToOutput {
			p.outputs[c.ToChannel] = append(p.outputs[c.ToChannel], src)
			continue
		}
		st := &p.steps[index[c.To]]
		st.sources[c.ToChannel] = append(st.sources[c.ToChannel], src)
	}

	select {
	case s.commands <- p:
		return nil
	default:
		return ErrCommandQueueFull
	}
}

func (s *Session) elapsed(frames int64) time.Duration {
	return time.Duration(frames) * time.Second / time.Duration(s.sampleRate)
}
