// SPDX-License-Identifier: EPL-2.0

package audplay

import (
	"fmt"
	"os"

	"github.com/ik5/audplay/audio"
	"github.com/ik5/audplay/formats/aiff"
	"github.com/ik5/audplay/formats/mp3"
	"github.com/ik5/audplay/formats/vorbis"
	"github.com/ik5/audplay/formats/wav"
)

// DefaultRegistry returns a registry with every bundled decoder.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("wave", wav.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("oga", vorbis.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("aiff", aiff.Decoder{})

	return r
}

// Loader decodes whole files into memory.
type Loader struct {
	Registry *audio.Registry
}

// Load reads path with the decoder registered for its extension. Every
// failure is returned as a *DecodeError.
func (l Loader) Load(path string) (*audio.Buffer, error) {
	registry := l.Registry
	if registry == nil {
		registry = DefaultRegistry()
	}

	dec, format, ok := registry.ForPath(path)
	if !ok {
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer file.Close()

	src, err := dec.Decode(file)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	buf, err := audio.ReadBuffer(src)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	return buf, nil
}

// LoadSoundFile decodes path with the default registry.
func LoadSoundFile(path string) (*audio.Buffer, error) {
	return Loader{}.Load(path)
}
