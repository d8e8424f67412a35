// SPDX-License-Identifier: EPL-2.0

package backend

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ik5/audplay/formats/wav"
	"github.com/ik5/audplay/internal/sphere"
	"github.com/ik5/audplay/utils"
)

// WAVFile renders a session into a 16-bit WAV file at real-time pace.
type WAVFile struct {
	path       string
	sampleRate int
	blockSize  int
	channels   int

	frames  atomic.Int64
	samples []int16

	mtx     sync.Mutex
	started bool
	stopped bool
	done    chan struct{}
	wg      sync.WaitGroup
}

func NewWAVFile(path string, sampleRate, blockSize, channels int) *WAVFile {
	return &WAVFile{
		path:       path,
		sampleRate: sampleRate,
		blockSize:  blockSize,
		channels:   channels,
		done:       make(chan struct{}),
	}
}

func (w *WAVFile) SampleRate() int { return w.sampleRate }
func (w *WAVFile) BlockSize() int  { return w.blockSize }
func (w *WAVFile) NumOutputs() int { return w.channels }
func (w *WAVFile) Path() string    { return w.path }

// Frames is the number of frames rendered so far.
func (w *WAVFile) Frames() int64 { return w.frames.Load() }

// Start pulls one block from proc every block period.
func (w *WAVFile) Start(proc sphere.Processor) error {
	w.mtx.Lock()
	defer w.mtx.Unlock()

	if w.stopped {
		return ErrStopped
	}
	if w.started {
		return ErrStreamOpen
	}
	if w.sampleRate <= 0 || w.blockSize <= 0 || w.channels <= 0 {
		return fmt.Errorf("invalid wav output: %d Hz, block %d, %d channels",
			w.sampleRate, w.blockSize, w.channels)
	}
	w.started = true

	period := time.Duration(w.blockSize) * time.Second / time.Duration(w.sampleRate)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ticker := time.NewTicker(period)
		defer ticker.Stop()

		block := make([]float32, w.blockSize*w.channels)
		for {
			select {
			case <-w.done:
				return
			case <-ticker.C:
				proc.Process(block)
				w.samples = utils.AppendInt16(w.samples, block)
				w.frames.Add(int64(w.blockSize))
			}
		}
	}()

	return nil
}

// Stop ends rendering and writes everything rendered so far to the file.
// Nothing is written when Start never succeeded.
func (w *WAVFile) Stop() error {
	w.mtx.Lock()
	defer w.mtx.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	if !w.started {
		return nil
	}

	close(w.done)
	w.wg.Wait()

	file, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", w.path, err)
	}

	if err := wav.WriteWAV16(file, w.sampleRate, w.channels, w.samples); err != nil {
		_ = file.Close()
		return fmt.Errorf("writing %s: %w", w.path, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", w.path, err)
	}

	return nil
}
