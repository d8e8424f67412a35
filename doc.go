// SPDX-License-Identifier: EPL-2.0

// Package audplay loads sound recordings into memory for playback.
//
// LoadSoundFile picks a decoder from the file extension, decodes the whole
// file and returns an immutable audio.Buffer:
//
//	buf, err := audplay.LoadSoundFile("sessions/LRMonoPhase4.wav")
//	if errors.Is(err, audplay.ErrDecode) {
//	    // missing file, unknown extension or corrupt data
//	}
//	fmt.Println(buf.Channels(), buf.Duration())
//
// # Supported Formats
//
//   - WAV (8, 16, 24 and 32 bit PCM) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF via formats/aiff
//
// A Loader with its own audio.Registry can add or replace formats.
//
// Playback itself lives in internal packages: the graph engine
// (internal/sphere), the graph builder (internal/playback) and the session
// supervisor (internal/supervisor), glued together by internal/player.
package audplay
