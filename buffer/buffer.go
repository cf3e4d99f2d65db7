// SPDX-License-Identifier: EPL-2.0

package buffer

import (
	"fmt"
	"math"

	"github.com/ik5/wavedit/internal/pcm"
)

// frameSnap absorbs floating point error when converting seconds to frames.
const frameSnap = 1e-6

// Buffer is a multi-channel float sample buffer.
type Buffer struct {
	sampleRate int
	channels   [][]float32
}

// New returns a silent buffer with the given shape.
func New(channels, frames, sampleRate int) *Buffer {
	if channels < 1 {
		channels = 1
	}
	if frames < 0 {
		frames = 0
	}

	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, frames)
	}

	return &Buffer{sampleRate: sampleRate, channels: data}
}

// FromChannels wraps the given channel slices without copying. The caller
// hands over ownership of the slices.
func FromChannels(sampleRate int, channels ...[]float32) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRate, sampleRate)
	}
	if len(channels) == 0 {
		return nil, ErrNoChannels
	}

	n := len(channels[0])
	for c, ch := range channels {
		if len(ch) != n {
			return nil, fmt.Errorf("%w: channel %d has %d frames, want %d", ErrChannelLength, c, len(ch), n)
		}
	}

	return &Buffer{sampleRate: sampleRate, channels: channels}, nil
}

// FromInterleaved splits interleaved samples into a new buffer. A trailing
// partial frame is dropped.
func FromInterleaved(sampleRate, channels int, samples []float32) (*Buffer, error) {
	if channels < 1 {
		return nil, ErrNoChannels
	}

	frames := len(samples) / channels
	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, frames)
	}

	for f := range frames {
		base := f * channels
		for c := range channels {
			data[c][f] = samples[base+c]
		}
	}

	return FromChannels(sampleRate, data...)
}

func (b *Buffer) SampleRate() int  { return b.sampleRate }
func (b *Buffer) NumChannels() int { return len(b.channels) }

// FrameCount is the length of every channel.
func (b *Buffer) FrameCount() int {
	if len(b.channels) == 0 {
		return 0
	}
	return len(b.channels[0])
}

// Duration in seconds.
func (b *Buffer) Duration() float64 {
	if b.sampleRate <= 0 {
		return 0
	}
	return float64(b.FrameCount()) / float64(b.sampleRate)
}

// Channel returns the live sample slice of channel c. Writes through the
// returned slice mutate the buffer.
func (b *Buffer) Channel(c int) []float32 {
	return b.channels[c]
}

// Sample returns one sample, or an error when either index is out of range.
func (b *Buffer) Sample(c, frame int) (float32, error) {
	if c < 0 || c >= len(b.channels) {
		return 0, fmt.Errorf("%w: %d", ErrChannelOutOfRange, c)
	}
	if frame < 0 || frame >= b.FrameCount() {
		return 0, fmt.Errorf("frame %d out of range [0,%d)", frame, b.FrameCount())
	}
	return b.channels[c][frame], nil
}

// FrameAt converts a time in seconds to a frame index clamped to
// [0, FrameCount()].
func (b *Buffer) FrameAt(t float64) int {
	return clampFrame(FrameIndex(t, b.sampleRate), b.FrameCount())
}

// TimeAt converts a frame index to seconds.
func (b *Buffer) TimeAt(frame int) float64 {
	return float64(frame) / float64(b.sampleRate)
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	data := make([][]float32, len(b.channels))
	for c, ch := range b.channels {
		data[c] = make([]float32, len(ch))
		copy(data[c], ch)
	}
	return &Buffer{sampleRate: b.sampleRate, channels: data}
}

// Equal reports whether two buffers have the same shape and identical samples.
func (b *Buffer) Equal(o *Buffer) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.sampleRate != o.sampleRate || len(b.channels) != len(o.channels) || b.FrameCount() != o.FrameCount() {
		return false
	}
	for c := range b.channels {
		for i, v := range b.channels[c] {
			if math.Float32bits(v) != math.Float32bits(o.channels[c][i]) {
				return false
			}
		}
	}
	return true
}

// ClampAll clamps every sample to [-1, 1].
func (b *Buffer) ClampAll() {
	for _, ch := range b.channels {
		for i, v := range ch {
			ch[i] = pcm.Clamp(v)
		}
	}
}

// Interleaved returns the samples frame by frame.
func (b *Buffer) Interleaved() []float32 {
	nc := len(b.channels)
	out := make([]float32, b.FrameCount()*nc)
	for c, ch := range b.channels {
		for f, v := range ch {
			out[f*nc+c] = v
		}
	}
	return out
}

// FrameIndex floors t*rate, snapping to the nearest integer when the
// product is within frameSnap of it. Negative times map to 0.
func FrameIndex(t float64, rate int) int {
	x := t * float64(rate)
	if r := math.Round(x); math.Abs(x-r) < frameSnap {
		x = r
	}
	if x <= 0 {
		return 0
	}
	return int(math.Floor(x))
}

func clampFrame(f, n int) int {
	if f < 0 {
		return 0
	}
	if f > n {
		return n
	}
	return f
}
