// SPDX-License-Identifier: EPL-2.0

package clip

import (
	"github.com/ik5/wavedit/buffer"
	"github.com/ik5/wavedit/codec"
)

// Clipboard is a single slot holding a deep copy of some audio.
type Clipboard struct {
	data       []byte
	sampleRate int
	channels   int
	frames     int
	duration   float64
}

// Set overwrites the slot with a copy of buf. A nil buf clears it.
func (c *Clipboard) Set(buf *buffer.Buffer) {
	if buf == nil {
		*c = Clipboard{}
		return
	}

	*c = Clipboard{
		data:       codec.EncodeRaw(buf),
		sampleRate: buf.SampleRate(),
		channels:   buf.NumChannels(),
		frames:     buf.FrameCount(),
		duration:   buf.Duration(),
	}
}

// Buffer decodes a fresh copy of the slot. It returns nil, nil when empty.
func (c *Clipboard) Buffer() (*buffer.Buffer, error) {
	if c.data == nil {
		return nil, nil
	}
	return codec.DecodeRaw(c.data, c.channels, c.frames, c.sampleRate)
}

// Empty reports whether there is nothing to paste. A slot holding zero
// frames counts as empty.
func (c *Clipboard) Empty() bool { return c.data == nil || c.frames == 0 }

func (c *Clipboard) Duration() float64 { return c.duration }
func (c *Clipboard) Frames() int       { return c.frames }
func (c *Clipboard) Channels() int     { return c.channels }
func (c *Clipboard) SampleRate() int   { return c.sampleRate }
