// SPDX-License-Identifier: EPL-2.0

// Package backend drives a sphere.Processor from a clock.
//
// PortAudio plays through the default output device. WAVFile renders at the
// same real-time pace into memory and writes a 16-bit WAV file when stopped,
// which makes sessions observable on machines without a sound card.
package backend
