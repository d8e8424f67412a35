// SPDX-License-Identifier: EPL-2.0

// Package sphere is a small real-time audio graph engine.
//
// A Session is bound to one Backend. The controlling goroutine uploads
// buffers, inserts nodes and wires them; the backend's audio callback calls
// Session.Process, which renders one graph pass per block.
//
//	s, err := sphere.Start(be, sphere.DefaultSettings(), errs.Hook())
//	defer s.Close()
//
//	h, _ := s.InsertBuffer(buf)
//	err = s.Batch(func(g sphere.Graph) error {
//	    id, err := g.InsertNode(sphere.BufferReader{Buffer: h, Rate: 1, StopAction: sphere.FreeSelf})
//	    if err != nil {
//	        return err
//	    }
//	    return g.Connect(sphere.NodeToOutput(id, 0, 0))
//	})
//
// # Threads
//
// Every mutation is validated and fully built on the controlling side, then
// handed to the audio side as an immutable plan over a bounded channel.
// InsertNode and Connect each send one plan; Batch sends one plan for a
// group of changes, so a reader and its wiring start on the same block.
// Process only performs non-blocking receives and sends. Failures on the
// audio side, including panics inside nodes, are passed to the ErrorHook.
//
// # Inspection
//
// RequestInspection returns a channel that receives a snapshot of the graph
// every Settings.InspectionInterval of rendered audio. The channel holds one
// snapshot; an unread snapshot is replaced by the newer one.
package sphere
