// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"math"

	"github.com/ik5/wavedit/buffer"
)

// Ramp returns a buffer whose samples are all distinct: channel 0 rises from
// -1 towards 1, odd channels are negated and further channels are offset so
// that no two channels hold the same data.
func Ramp(channels, frames, sampleRate int) *buffer.Buffer {
	return fill(channels, frames, sampleRate, func(i, c int) float32 {
		v := -1 + 2*float64(i)/float64(max(frames, 1))
		v *= 1 - 0.01*float64(c)
		if c%2 == 1 {
			v = -v
		}
		return float32(v)
	})
}

// Constant returns a buffer with every sample set to value.
func Constant(channels, frames, sampleRate int, value float32) *buffer.Buffer {
	return fill(channels, frames, sampleRate, func(int, int) float32 { return value })
}

// Sine returns a full-scale sine at frequency on every channel.
func Sine(channels, frames, sampleRate int, frequency float64) *buffer.Buffer {
	return fill(channels, frames, sampleRate, func(i, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * frequency * float64(i) / float64(sampleRate)))
	})
}

func fill(channels, frames, sampleRate int, f func(i, c int) float32) *buffer.Buffer {
	b := buffer.New(channels, frames, sampleRate)
	for c := range channels {
		ch := b.Channel(c)
		for i := range ch {
			ch[i] = f(i, c)
		}
	}
	return b
}
