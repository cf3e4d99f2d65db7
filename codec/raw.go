// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"encoding/binary"
	"math"

	"github.com/ik5/wavedit/buffer"
)

// RawSize is the number of bytes EncodeRaw produces for the given shape.
func RawSize(channels, frames int) int {
	return channels * frames * 4
}

// EncodeRaw serializes buf in the lossless channel-major float32 layout.
func EncodeRaw(buf *buffer.Buffer) []byte {
	frames := buf.FrameCount()
	out := make([]byte, RawSize(buf.NumChannels(), frames))

	off := 0
	for c := range buf.NumChannels() {
		for _, v := range buf.Channel(c) {
			binary.LittleEndian.PutUint32(out[off:off+4], math.Float32bits(v))
			off += 4
		}
	}

	return out
}

// DecodeRaw rebuilds a buffer from EncodeRaw output. The returned buffer
// does not alias data.
func DecodeRaw(data []byte, channels, frames, sampleRate int) (*buffer.Buffer, error) {
	if channels < 1 || frames < 0 || sampleRate <= 0 {
		return nil, codecErr(ErrInvalidShape, "%d channels, %d frames at %d Hz", channels, frames, sampleRate)
	}
	if want := RawSize(channels, frames); len(data) != want {
		return nil, codecErr(ErrSizeMismatch, "got %d bytes, want %d", len(data), want)
	}

	buf := buffer.New(channels, frames, sampleRate)

	off := 0
	for c := range channels {
		ch := buf.Channel(c)
		for i := range ch {
			ch[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[off : off+4]))
			off += 4
		}
	}

	return buf, nil
}
