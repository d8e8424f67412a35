// SPDX-License-Identifier: EPL-2.0

package sphere

import (
	"time"

	"github.com/google/uuid"
)

// Inspection is a snapshot of a running session.
type Inspection struct {
	Session uuid.UUID
	// Frames rendered since Start.
	Frames  int64
	Elapsed time.Duration
	Buffers int

	plan *plan
}

type NodeInfo struct {
	ID      NodeID
	Kind    string
	Inputs  int
	Outputs int
}

type OutputInfo struct {
	Channel     int
	Node        NodeID
	NodeChannel int
}

// Nodes lists the nodes still in the graph, in processing order.
func (i Inspection) Nodes() []NodeInfo {
	if i.plan == nil {
		return nil
	}

	nodes := make([]NodeInfo, 0, len(i.plan.steps))
	for _, st := range i.plan.steps {
		if st.entry.freed.Load() {
			continue
		}
		nodes = append(nodes, NodeInfo{
			ID:      st.entry.id,
			Kind:    st.entry.kind,
			Inputs:  len(st.entry.in),
			Outputs: len(st.entry.out),
		})
	}

	return nodes
}

// Outputs lists the live edges into graph output channels.
func (i Inspection) Outputs() []OutputInfo {
	if i.plan == nil {
		return nil
	}

	var outputs []OutputInfo
	for ch, sources := range i.plan.outputs {
		for _, src := range sources {
			if src.entry.freed.Load() {
				continue
			}
			outputs = append(outputs, OutputInfo{Channel: ch, Node: src.entry.id, NodeChannel: src.channel})
		}
	}

	return outputs
}
