// SPDX-License-Identifier: EPL-2.0

package sphere

import "sync/atomic"

// entry is a node instance with its scratch buffers. Only the audio side
// touches node state and scratch; freed is shared with the controller.
type entry struct {
	id   NodeID
	kind string
	node node
	in   [][]float32
	out  [][]float32

	done  bool
	freed atomic.Bool
}

func newEntry(id NodeID, kind string, n node, blockSize int) *entry {
	e := &entry{
		id:   id,
		kind: kind,
		node: n,
		in:   make([][]float32, n.numInputs()),
		out:  make([][]float32, n.numOutputs()),
	}
	for i := range e.in {
		e.in[i] = make([]float32, blockSize)
	}
	for i := range e.out {
		e.out[i] = make([]float32, blockSize)
	}

	return e
}

type port struct {
	entry   *entry
	channel int
}

type step struct {
	entry *entry
	// sources per input channel
	sources [][]port
}

// plan is an immutable rendering of the graph, built by the controller and
// swapped in by the audio side.
type plan struct {
	steps      []step
	outputs    [][]port
	inspectors []chan Inspection
	buffers    int
}

// topoOrder sorts nodes so every node follows its sources. Ties keep
// insertion order.
func topoOrder(ids []NodeID, edges []Connection) ([]NodeID, error) {
	indegree := make(map[NodeID]int, len(ids))
	next := make(map[NodeID][]NodeID)
	for _, c := range edges {
		if c.ToOutput {
			continue
		}
		indegree[c.To]++
		next[c.From] = append(next[c.From], c.To)
	}

	queue := make([]NodeID, 0, len(ids))
	for _, id := range ids {
		if indegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	sorted := make([]NodeID, 0, len(ids))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		sorted = append(sorted, id)

		for _, n := range next[id] {
			indegree[n]--
			if indegree[n] == 0 {
				queue = append(queue, n)
			}
		}
	}

	if len(sorted) != len(ids) {
		return nil, ErrCycle
	}

	return sorted, nil
}
