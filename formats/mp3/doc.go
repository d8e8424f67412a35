// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MPEG-1 Layer
// III files into PCM samples.
//
// # Decoding MP3 Files
//
//	file, _ := os.Open("voice.mp3")
//	source, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//
//	buf, err := audio.ReadBuffer(source)
//
// # Output Format
//
// MP3 decoder output:
//   - Sample format: float32 in range [-1.0, 1.0]
//   - Channels: always 2
//   - Sample rate: as encoded, commonly 44.1kHz or 48kHz
//
// go-mp3 always emits interleaved 16-bit stereo, so every Source from this
// package reports two channels, even for mono files. The player only routes
// channel 0, which is the left (or duplicated mono) channel.
//
// # Reads
//
// Reads that end on an odd byte keep the trailing byte for the next call,
// so sample boundaries stay intact whatever the caller's buffer size.
// A read that produced no whole sample returns (0, nil).
//
// # File Extensions
//
// The player registers this decoder for .mp3.
package mp3
