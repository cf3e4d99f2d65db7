// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/wavedit/audio"
	"github.com/ik5/wavedit/internal/pcm"
)

// ErrNotMP3 wraps errors from the MP3 frame parser.
var ErrNotMP3 = errors.New("not an MP3 stream")

// go-mp3 always produces 16-bit little-endian stereo.
const (
	outChannels = 2
	bufFrames   = 4096
)

// pcmReader is the part of gomp3.Decoder the source uses.
type pcmReader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec  pcmReader
	buf  []byte
	rest []byte // bytes of a sample split across reads
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return outChannels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return bufFrames }

func (s *source) ReadSamples(dst []float32) (int, error) {
	want := (len(dst) - len(dst)%outChannels) * 2
	if want == 0 {
		return 0, nil
	}
	if cap(s.buf) < want {
		s.buf = make([]byte, want)
	}

	n := copy(s.buf[:want], s.rest)
	s.rest = s.rest[:0]

	m, err := s.dec.Read(s.buf[n:want])
	n += m
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("mp3 read: %w", err)
	}

	whole := n - n%(2*outChannels)
	s.rest = append(s.rest, s.buf[whole:n]...)

	for i := range whole / 2 {
		v := int16(uint16(s.buf[2*i]) | uint16(s.buf[2*i+1])<<8)
		dst[i] = pcm.FromInt(int(v), 16)
	}

	if errors.Is(err, io.EOF) {
		return whole / 2, io.EOF
	}
	return whole / 2, nil
}

// Decoder reads MPEG-1/2 Layer III streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3, err)
	}

	return &source{dec: dec, buf: make([]byte, bufFrames*outChannels*2)}, nil
}
