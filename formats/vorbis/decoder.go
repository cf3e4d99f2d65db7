// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/wavedit/audio"
	"github.com/ik5/wavedit/internal/pcm"
)

// ErrNotVorbis wraps errors from the Ogg/Vorbis header parser.
var ErrNotVorbis = errors.New("not an Ogg Vorbis stream")

const bufFrames = 4096

// oggReader is the part of oggvorbis.Reader the source uses. Read returns
// the number of interleaved values written.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec oggReader
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return s.dec.Channels() }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return bufFrames }

func (s *source) ReadSamples(dst []float32) (int, error) {
	dst = dst[:len(dst)-len(dst)%s.dec.Channels()]
	if len(dst) == 0 {
		return 0, nil
	}

	n, err := s.dec.Read(dst)
	for i, v := range dst[:n] {
		dst[i] = pcm.Clamp(v)
	}

	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("vorbis read: %w", err)
	}
	return n, err
}

// Decoder reads Ogg Vorbis streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotVorbis, err)
	}
	if dec.Channels() < 1 {
		return nil, fmt.Errorf("%w: no channels", ErrNotVorbis)
	}

	return &source{dec: dec}, nil
}
