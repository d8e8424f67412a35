// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// Decoding is delegated to github.com/go-audio/wav, which walks the RIFF
// chunk list, so files with LIST, fact or other extra chunks decode fine.
//
// # Supported Formats
//
// The decoder supports:
//   - integer PCM at 8, 16, 24 or 32 bits (format tag 1 or WAVE_FORMAT_EXTENSIBLE)
//   - any channel count
//   - any sample rate
//
// 8-bit WAV is unsigned and is shifted to be centered on zero. All other
// depths are signed.
//
// # Decoding WAV Files
//
// Use the Decoder to read WAV files:
//
//	file, err := os.Open("sessions/LRMonoPhase4.wav")
//	if err != nil {
//	    return err
//	}
//	defer file.Close()
//
//	source, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// The decoder needs random access. Readers that do not implement io.Seeker
// are read into memory first.
//
// ReadSamples returns io.EOF, possibly together with the last samples, once
// the data chunk is exhausted. A truncated data chunk ends the stream the
// same way instead of failing it.
//
// # Output Format
//
// WAV decoder output:
//   - Sample format: float32 in range [-1.0, 1.0]
//   - Channels: as stored in the file, interleaved
//   - Sample rate: as stored in the file
//
// # Writing WAV Files
//
// WriteWAV16 writes interleaved 16-bit PCM with a canonical 44 byte header:
//
//	samples := utils.AppendInt16(nil, floats)
//	err := wav.WriteWAV16(file, 48000, 2, samples)
//
// The writer only needs an io.Writer, so the header sizes are computed
// up front from len(samples). It is used by the offline WAV backend and by
// the resample command.
//
// # Errors
//
//   - ErrNotWavFile: the input is not a RIFF/WAVE file
//   - ErrNotPCM: the file holds float or compressed audio
//   - ErrUnsupportedBitDepth: the PCM bit depth is not 8, 16, 24 or 32
//
// Check them with errors.Is:
//
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    fmt.Println("not a WAV file")
//	}
package wav
