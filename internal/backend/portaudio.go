// SPDX-License-Identifier: EPL-2.0

package backend

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/ik5/audplay/internal/sphere"
)

var (
	ErrStreamOpen = errors.New("stream already open")
	ErrStopped    = errors.New("backend stopped")
)

type Config struct {
	// SampleRate in Hz; 0 uses the default rate of the output device.
	SampleRate      float64
	FramesPerBuffer int
	// OutputChannels; 0 opens up to two channels of the device.
	OutputChannels int
}

func DefaultConfig() Config {
	return Config{
		FramesPerBuffer: 512,
	}
}

// negotiate fills unset fields from the device.
func (c Config) negotiate(dev *portaudio.DeviceInfo) (Config, error) {
	if dev.MaxOutputChannels < 1 {
		return c, fmt.Errorf("device %q has no output channels", dev.Name)
	}

	if c.SampleRate <= 0 {
		c.SampleRate = dev.DefaultSampleRate
	}
	if c.FramesPerBuffer <= 0 {
		c.FramesPerBuffer = DefaultConfig().FramesPerBuffer
	}
	if c.OutputChannels <= 0 {
		c.OutputChannels = min(2, dev.MaxOutputChannels)
	}
	if c.OutputChannels > dev.MaxOutputChannels {
		return c, fmt.Errorf("device %q has %d output channels, %d requested",
			dev.Name, dev.MaxOutputChannels, c.OutputChannels)
	}

	return c, nil
}

// PortAudio plays a session through the default output device.
type PortAudio struct {
	config Config
	device string

	mtx    sync.Mutex
	stream *portaudio.Stream
	closed bool
}

// OpenPortAudio initializes PortAudio and negotiates cfg with the default
// output device. The stream opens on Start.
func OpenPortAudio(cfg Config) (*PortAudio, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initializing portaudio: %w", err)
	}

	dev, err := portaudio.DefaultOutputDevice()
	if err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("default output device: %w", err)
	}

	cfg, err = cfg.negotiate(dev)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, err
	}

	return &PortAudio{config: cfg, device: dev.Name}, nil
}

func (p *PortAudio) SampleRate() int { return int(p.config.SampleRate) }
func (p *PortAudio) BlockSize() int  { return p.config.FramesPerBuffer }
func (p *PortAudio) NumOutputs() int { return p.config.OutputChannels }
func (p *PortAudio) Device() string  { return p.device }

func (p *PortAudio) Start(proc sphere.Processor) error {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if p.closed {
		return ErrStopped
	}
	if p.stream != nil {
		return ErrStreamOpen
	}

	stream, err := portaudio.OpenDefaultStream(
		0,
		p.config.OutputChannels,
		p.config.SampleRate,
		p.config.FramesPerBuffer,
		func(out []float32) { proc.Process(out) },
	)
	if err != nil {
		return fmt.Errorf("opening stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		_ = stream.Close()
		return fmt.Errorf("starting stream: %w", err)
	}
	p.stream = stream

	return nil
}

// Stop closes the stream and terminates PortAudio. The backend cannot be
// started again.
func (p *PortAudio) Stop() error {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	var errs []error
	if p.stream != nil {
		if err := p.stream.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stopping stream: %w", err))
		}
		if err := p.stream.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing stream: %w", err))
		}
		p.stream = nil
	}
	if err := portaudio.Terminate(); err != nil {
		errs = append(errs, fmt.Errorf("terminating portaudio: %w", err))
	}

	return errors.Join(errs...)
}
