// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audplay/formats/wav"
)

// Example_roundTrip encodes interleaved stereo PCM and decodes it again.
func Example_roundTrip() {
	original := []int16{-1000, 1000, -500, 500, 0, 0}

	data := new(bytes.Buffer)
	if err := wav.WriteWAV16(data, 16000, 2, original); err != nil {
		fmt.Printf("Encode error: %v\n", err)
		return
	}
	fmt.Printf("Wrote %d bytes\n", data.Len())

	source, err := wav.Decoder{}.Decode(data)
	if err != nil {
		fmt.Printf("Decode error: %v\n", err)
		return
	}

	buf := make([]float32, len(original))
	n, err := source.ReadSamples(buf)
	if err != nil && err != io.EOF {
		fmt.Printf("Read error: %v\n", err)
		return
	}

	recovered := make([]int16, n)
	for i := range n {
		recovered[i] = int16(buf[i] * 32768.0)
	}

	fmt.Printf("%d Hz, %d channels\n", source.SampleRate(), source.Channels())
	fmt.Println(recovered)
	// Output:
	// Wrote 56 bytes
	// 16000 Hz, 2 channels
	// [-1000 1000 -500 500 0 0]
}

// Example_errorNotWAV shows how invalid input is reported.
func Example_errorNotWAV() {
	_, err := wav.Decoder{}.Decode(bytes.NewReader([]byte("This is not a WAV file")))
	if errors.Is(err, wav.ErrNotWavFile) {
		fmt.Println("not a WAV file")
	}
	// Output: not a WAV file
}
