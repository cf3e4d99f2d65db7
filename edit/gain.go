// SPDX-License-Identifier: EPL-2.0

package edit

import (
	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/ik5/wavedit/buffer"
	"github.com/ik5/wavedit/internal/pcm"
)

// gainBlock is the number of samples scaled per vector call.
const gainBlock = 1024

// ScaleInPlace multiplies the frames in [start, end) of every channel by
// factor and clamps the result to [-1, 1]. An empty range scales the whole
// buffer. This is the only operation that mutates its input.
func ScaleInPlace(buf *buffer.Buffer, start, end, factor float64) {
	s, e := 0, buf.FrameCount()
	if start < end {
		s, e = Frames(buf, start, end)
	}
	if s >= e {
		return
	}

	in := make([]float64, min(gainBlock, e-s))
	out := make([]float64, len(in))

	for c := range buf.NumChannels() {
		ch := buf.Channel(c)[s:e]

		for off := 0; off < len(ch); off += gainBlock {
			block := ch[off:min(off+gainBlock, len(ch))]
			n := len(block)

			for i, v := range block {
				in[i] = float64(v)
			}
			vecmath.ScaleBlock(out[:n], in[:n], factor)
			for i := range block {
				block[i] = float32(pcm.Clamp64(out[i]))
			}
		}
	}
}

// Scale is the copying form of ScaleInPlace, used for previews.
func Scale(buf *buffer.Buffer, start, end, factor float64) *buffer.Buffer {
	out := buf.Clone()
	ScaleInPlace(out, start, end, factor)
	return out
}
