// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample-level building blocks used by the player.
//
// This package contains:
//   - Source interface for streaming, interleaved audio input
//   - Decoder and Registry for looking up format decoders by extension
//   - Buffer, an immutable in-memory recording with deinterleaved channels
//   - Resampler and Resample for sample rate conversion
//
// # Source Interface
//
// Every decoder returns a Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// ReadSamples fills dst with interleaved samples, frame after frame, and
// returns the number of samples written. A call may return samples together
// with io.EOF, so always consume n before looking at err:
//
//	buf := make([]float32, 4096)
//	for {
//	    n, err := source.ReadSamples(buf)
//	    process(buf[:n])
//	    if err == io.EOF {
//	        break // normal end of stream
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
//
// BufSize is a hint for the read size that suits the decoder. Callers that
// do not care can use 4096.
//
// # Format Registry
//
// The Registry maps file extensions to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	registry.Register("mp3", mp3.Decoder{})
//
//	decoder, format, ok := registry.ForPath("sessions/Voice.MP3")
//	// decoder is mp3.Decoder{}, format is "mp3"
//
// ForPath lower-cases the extension, so "song.WAV" and "song.wav" find the
// same decoder. Formats lists the registered extensions in sorted order.
// A Registry is safe for concurrent use.
//
// # Buffers
//
// ReadBuffer drains a Source into a Buffer and closes the Source:
//
//	buf, err := audio.ReadBuffer(src)
//	fmt.Println(buf.Channels(), buf.Frames(), buf.Duration())
//
// A Buffer stores each channel as its own slice:
//
//	left := buf.Channel(0)
//	right, err := buf.ExtractChannel(1) // mono Buffer, ErrChannelOutOfBounds on a bad index
//
// A Buffer never changes after construction, so it can be shared between the
// controlling goroutine and the real-time audio callback without locking.
// Seconds gives the exact fractional length; Duration the same as a
// time.Duration. Buffer.Source replays the contents as a fresh Source.
//
// # Resampling
//
// The Resampler converts a Source to another rate with Catmull-Rom
// interpolation:
//
//	r := audio.NewResampler(src, 48000)
//	n, err := r.ReadSamples(buf)
//
// When downsampling, a one-pole low-pass filter runs on the input first to
// reduce aliasing. Channel count is preserved.
//
// Resample applies the same pipeline to a whole Buffer and returns the
// Buffer unchanged when the rates already match:
//
//	at48k, err := audio.Resample(buf, 48000)
//
// # Sample Format
//
// Audio samples are float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// Decoders normalize every integer bit depth to this range, so processing
// code never sees the file format.
//
// # Errors
//
//   - ErrInvalidDstSize: dst is not a whole number of frames
//   - ErrNoChannels: a Buffer or Source without channels
//   - ErrChannelLength: Buffer channels of different length
//   - ErrInvalidSampleRate: a sample rate that is not positive
//   - ErrChannelOutOfBounds: a channel index the Buffer does not have
package audio
