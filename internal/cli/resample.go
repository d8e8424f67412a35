// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ik5/audplay"
	"github.com/ik5/audplay/audio"
	"github.com/ik5/audplay/formats/wav"
	"github.com/ik5/audplay/utils"
)

const defaultResampleRate = 8000

func newResampleCommand() *cobra.Command {
	var (
		rate    int
		channel int
	)

	cmd := &cobra.Command{
		Use:   "resample INPUT OUTPUT.wav",
		Short: "Convert a sound file to 16-bit PCM WAV at another sample rate",
		Long: `Decodes INPUT, resamples it and writes 16-bit PCM WAV. Every channel is
kept unless --channel picks a single one, which writes a mono file.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResample(cmd.OutOrStdout(), args[0], args[1], rate, channel)
		},
	}
	cmd.Flags().IntVar(&rate, "rate", defaultResampleRate, "target sample rate")
	cmd.Flags().IntVar(&channel, "channel", -1, "write only this channel, -1 keeps all")

	return cmd
}

func runResample(out io.Writer, inPath, outPath string, rate, channel int) error {
	buf, err := audplay.LoadSoundFile(inPath)
	if err != nil {
		return err
	}
	if channel >= 0 {
		if buf, err = buf.ExtractChannel(channel); err != nil {
			return fmt.Errorf("converting %s: %w", inPath, err)
		}
	}

	res, err := audio.Resample(buf, rate)
	if err != nil {
		return err
	}

	pcm, err := readPCM16(res.Source())
	if err != nil {
		return fmt.Errorf("converting %s: %w", inPath, err)
	}

	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer file.Close()

	if err := wav.WriteWAV16(file, res.SampleRate(), res.Channels(), pcm); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", outPath, err)
	}

	fmt.Fprintf(out, "wrote %s: %d ch, %d Hz, %s\n", outPath, res.Channels(), res.SampleRate(), res.Duration())

	return nil
}

// readPCM16 drains src as interleaved 16-bit samples.
func readPCM16(src audio.Source) ([]int16, error) {
	defer src.Close()

	var pcm []int16
	// frame aligned
	chunk := make([]float32, 4096*src.Channels())
	for {
		n, err := src.ReadSamples(chunk)
		pcm = utils.AppendInt16(pcm, chunk[:n])
		if err == io.EOF {
			return pcm, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
