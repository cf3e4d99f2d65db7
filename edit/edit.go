// SPDX-License-Identifier: EPL-2.0

package edit

import (
	"fmt"

	"github.com/ik5/wavedit/buffer"
	"github.com/ik5/wavedit/internal/pcm"
)

// Frames converts a normalized time range to frame indices within buf.
func Frames(buf *buffer.Buffer, start, end float64) (int, int) {
	s, e := buf.FrameAt(start), buf.FrameAt(end)
	if e < s {
		s, e = e, s
	}
	return s, e
}

// Extract returns a copy of the frames in [start, end).
func Extract(buf *buffer.Buffer, start, end float64) (*buffer.Buffer, error) {
	if !(start < end) {
		return nil, fmt.Errorf("extract: %w", ErrEmptyRange)
	}

	s, e := Frames(buf, start, end)
	out := buffer.New(buf.NumChannels(), e-s, buf.SampleRate())

	for c := range buf.NumChannels() {
		copy(out.Channel(c), buf.Channel(c)[s:e])
	}

	return out, nil
}

// Delete returns buf without the frames in [start, end).
func Delete(buf *buffer.Buffer, start, end float64) (*buffer.Buffer, error) {
	if !(start < end) {
		return nil, fmt.Errorf("delete: %w", ErrEmptyRange)
	}

	s, e := Frames(buf, start, end)
	return splice(buf, s, e, nil), nil
}

// Insert returns buf with ins spliced in at time at. Trailing frames move
// later by ins.FrameCount().
func Insert(buf *buffer.Buffer, at float64, ins *buffer.Buffer) (*buffer.Buffer, error) {
	if err := compatible(buf, ins); err != nil {
		return nil, err
	}

	s := buf.FrameAt(at)
	return splice(buf, s, s, ins), nil
}

// Replace deletes [start, end) and inserts ins at start in one step. With
// start == end it is Insert.
func Replace(buf *buffer.Buffer, start, end float64, ins *buffer.Buffer) (*buffer.Buffer, error) {
	if err := compatible(buf, ins); err != nil {
		return nil, err
	}

	s, e := Frames(buf, start, end)
	return splice(buf, s, e, ins), nil
}

// Concat joins buffers end to end.
func Concat(bufs ...*buffer.Buffer) (*buffer.Buffer, error) {
	if len(bufs) == 0 {
		return nil, ErrNothingToJoin
	}

	total := 0
	for _, b := range bufs {
		if err := compatible(bufs[0], b); err != nil {
			return nil, err
		}
		total += b.FrameCount()
	}

	out := buffer.New(bufs[0].NumChannels(), total, bufs[0].SampleRate())
	for c := range out.NumChannels() {
		dst := out.Channel(c)
		off := 0
		for _, b := range bufs {
			off += copy(dst[off:], b.Channel(c))
		}
	}

	return out, nil
}

// splice builds buf[:s] + ins + buf[e:] for every channel. ins may be nil.
func splice(buf *buffer.Buffer, s, e int, ins *buffer.Buffer) *buffer.Buffer {
	insLen := 0
	if ins != nil {
		insLen = ins.FrameCount()
	}

	n := buf.FrameCount()
	out := buffer.New(buf.NumChannels(), n-(e-s)+insLen, buf.SampleRate())

	for c := range buf.NumChannels() {
		src := buf.Channel(c)
		dst := out.Channel(c)

		copy(dst, src[:s])
		if ins != nil {
			for i, v := range ins.Channel(c) {
				dst[s+i] = pcm.Clamp(v)
			}
		}
		copy(dst[s+insLen:], src[e:])
	}

	return out
}

func compatible(a, b *buffer.Buffer) error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrIncompatible)
	}
	if a.NumChannels() != b.NumChannels() || a.SampleRate() != b.SampleRate() {
		return fmt.Errorf("%w: %d ch @ %d Hz vs %d ch @ %d Hz", ErrIncompatible,
			a.NumChannels(), a.SampleRate(), b.NumChannels(), b.SampleRate())
	}
	return nil
}
