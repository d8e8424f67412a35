// SPDX-License-Identifier: EPL-2.0

package sphere

import "fmt"

// Connection is an edge from a node output to a node input or to a graph
// output channel.
type Connection struct {
	From        NodeID
	FromChannel int
	To          NodeID
	ToChannel   int
	// ToOutput routes to graph output ToChannel; To is ignored.
	ToOutput bool
}

func NodeToNode(from NodeID, fromChannel int, to NodeID, toChannel int) Connection {
	return Connection{From: from, FromChannel: fromChannel, To: to, ToChannel: toChannel}
}

func NodeToOutput(from NodeID, fromChannel, outChannel int) Connection {
	return Connection{From: from, FromChannel: fromChannel, ToChannel: outChannel, ToOutput: true}
}

func (c Connection) String() string {
	if c.ToOutput {
		return fmt.Sprintf("%d:%d -> out:%d", c.From, c.FromChannel, c.ToChannel)
	}
	return fmt.Sprintf("%d:%d -> %d:%d", c.From, c.FromChannel, c.To, c.ToChannel)
}
