// SPDX-License-Identifier: EPL-2.0

// Package playback wires a loaded buffer into a sphere graph.
package playback

import (
	"fmt"

	"github.com/ik5/audplay/internal/sphere"
)

// UnityGain is the volume at which no gain stage is inserted.
const UnityGain = 1.0

// OutputChannel is the only graph output a playback is routed to, whatever
// the channel count of the buffer.
const OutputChannel = 0

// Graph is the part of a sphere.Session the builder mutates.
type Graph interface {
	Batch(fn func(sphere.Graph) error) error
}

// Route records how a playback reaches the output.
type Route struct {
	Channel  int
	Playback sphere.NodeID
	// Gain is only valid when Gained is set.
	Gain   sphere.NodeID
	Gained bool
	Factor float64
}

// Source is the node feeding the output channel.
func (r Route) Source() sphere.NodeID {
	if r.Gained {
		return r.Gain
	}
	return r.Playback
}

func (r Route) String() string {
	if r.Gained {
		return fmt.Sprintf("gain-staged (x%g)", r.Factor)
	}
	return "direct"
}

// Build inserts a reader for h that plays once at original speed and frees
// itself when done. At UnityGain the reader feeds output channel 0
// directly; any other volume, including zero and negative values, goes
// through a single Mult node. The comparison is exact: skipping the
// multiply is an optimization only.
//
// All nodes and connections are made in one batch, so the reader never
// plays before it is wired to the output.
func Build(g Graph, h sphere.BufferHandle, volume float64) (Route, error) {
	var route Route
	err := g.Batch(func(b sphere.Graph) error {
		var err error
		route, err = build(b, h, volume)
		return err
	})
	if err != nil {
		return Route{}, err
	}

	return route, nil
}

func build(g sphere.Graph, h sphere.BufferHandle, volume float64) (Route, error) {
	reader, err := g.InsertNode(sphere.BufferReader{
		Buffer:     h,
		Rate:       1.0,
		Loop:       false,
		StopAction: sphere.FreeSelf,
	})
	if err != nil {
		return Route{}, fmt.Errorf("inserting playback node: %w", err)
	}

	route := Route{Channel: OutputChannel, Playback: reader, Factor: UnityGain}

	if volume == UnityGain {
		if err := g.Connect(sphere.NodeToOutput(reader, 0, OutputChannel)); err != nil {
			return Route{}, fmt.Errorf("routing playback to output: %w", err)
		}
		return route, nil
	}

	gain, err := g.InsertNode(sphere.Mult{Factor: volume})
	if err != nil {
		return Route{}, fmt.Errorf("inserting gain node: %w", err)
	}
	if err := g.Connect(sphere.NodeToNode(reader, 0, gain, 0)); err != nil {
		return Route{}, fmt.Errorf("routing playback to gain: %w", err)
	}
	if err := g.Connect(sphere.NodeToOutput(gain, 0, OutputChannel)); err != nil {
		return Route{}, fmt.Errorf("routing gain to output: %w", err)
	}

	route.Gain = gain
	route.Gained = true
	route.Factor = volume

	return route, nil
}
