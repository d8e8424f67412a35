// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// Decoding is done by github.com/jfreymuth/oggvorbis, which already yields
// interleaved float32 samples, so the source passes them through unchanged.
//
// # Decoding Ogg Vorbis Files
//
//	file, _ := os.Open("music.ogg")
//	source, err := vorbis.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// # Output Format
//
// Vorbis decoder output:
//   - Sample format: float32, nominally in [-1.0, 1.0]
//   - Channels: as encoded (mono, stereo or surround layouts)
//   - Sample rate: as encoded, commonly 44.1kHz or 48kHz
//
// Lossy decoding can overshoot full scale slightly. Samples are not clipped
// here; utils.Float32ToInt16 clamps when writing 16-bit PCM.
//
// # Reads
//
// Reads always cover whole frames. A dst shorter than one frame reads
// nothing and returns (0, nil). The count returned is in samples, not
// frames, like every audio.Source.
//
// # File Extensions
//
// The player registers this decoder for .ogg and .oga.
package vorbis
