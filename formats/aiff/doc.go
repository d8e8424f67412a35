// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to parse the file. AIFF is
// Apple's uncompressed PCM format, commonly produced on macOS.
//
// # Supported Formats
//
// Currently supported:
//   - AIFF with signed PCM at 8, 16, 24 or 32 bits
//   - Mono and multi-channel
//   - Any sample rate
//
// # Decoding AIFF Files
//
// Use the Decoder to read AIFF files:
//
//	file, _ := os.Open("voice.aiff")
//	source, err := aiff.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//
//	// Read samples as float32 in range [-1.0, 1.0]
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// Readers that do not implement io.Seeker are buffered in memory first.
//
// # Output Format
//
// AIFF decoder output:
//   - Sample format: float32 in range [-1.0, 1.0]
//   - Channels: as stored in the file, interleaved
//   - Sample rate: as stored in the file
//
// # Error Handling
//
// The package defines several errors:
//   - ErrNotAiffFile: the input is not a valid AIFF file
//   - ErrUnsupportedBitDepth: the sample size is not 8, 16, 24 or 32 bits
//   - ErrUnsupportedAiffLayout: the file has no usable format chunk or no channels
//
// Example:
//
//	source, err := aiff.Decoder{}.Decode(file)
//	if errors.Is(err, aiff.ErrUnsupportedBitDepth) {
//	    // 12-bit or compressed AIFF-C
//	}
//
// # AIFF vs. WAV
//
// AIFF is similar to WAV but:
//   - Uses big-endian byte order (WAV uses little-endian)
//   - Stores 8-bit samples signed (WAV 8-bit is unsigned)
//   - Stores sample rate as 80-bit float (WAV uses 32-bit int)
//
// The decoder handles these differences, so both produce the same float32
// samples for the same recording.
//
// # Limitations
//
//   - AIFF writing is not supported (decoding only)
//   - AIFF-C (.aifc) with compression is not supported
//
// # File Extensions
//
// The player registers this decoder for .aif and .aiff.
package aiff
