// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/wavedit/buffer"
)

// ReadAll drains src into a buffer. blockFrames is the read size in frames;
// zero or less uses src.BufSize(). ctx is checked between blocks.
func ReadAll(ctx context.Context, src Source, blockFrames int) (*buffer.Buffer, error) {
	channels := src.Channels()
	if channels < 1 {
		return nil, ErrNoChannels
	}
	if src.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRate, src.SampleRate())
	}
	if blockFrames <= 0 {
		blockFrames = max(src.BufSize(), 1)
	}

	block := make([]float32, blockFrames*channels)
	var samples []float32

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, err := src.ReadSamples(block)
		samples = append(samples, block[:n]...)

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read samples: %w", err)
		}
	}

	buf, err := buffer.FromInterleaved(src.SampleRate(), channels, samples)
	if err != nil {
		return nil, fmt.Errorf("collect samples: %w", err)
	}
	buf.ClampAll()

	return buf, nil
}
