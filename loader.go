// SPDX-License-Identifier: EPL-2.0

package wavedit

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ik5/wavedit/audio"
	"github.com/ik5/wavedit/buffer"
	"github.com/ik5/wavedit/formats/aiff"
	"github.com/ik5/wavedit/formats/mp3"
	"github.com/ik5/wavedit/formats/vorbis"
	"github.com/ik5/wavedit/formats/wav"
)

const (
	DefaultTargetRate = 8000
	DefaultBlockSize  = 4096
)

// Loader decodes files of any registered format into buffers at a single
// target rate. It satisfies session.Decoder.
type Loader struct {
	registry   *audio.Registry
	targetRate int
	blockSize  int
	mono       bool
	log        *logrus.Entry
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithTargetRate sets the output sample rate. Non-positive values are
// ignored.
func WithTargetRate(rate int) LoaderOption {
	return func(l *Loader) {
		if rate > 0 {
			l.targetRate = rate
		}
	}
}

// WithBlockSize sets the read size in frames. Non-positive values are
// ignored.
func WithBlockSize(frames int) LoaderOption {
	return func(l *Loader) {
		if frames > 0 {
			l.blockSize = frames
		}
	}
}

// WithMono mixes every input down to one channel.
func WithMono(mono bool) LoaderOption {
	return func(l *Loader) {
		l.mono = mono
	}
}

// WithRegistry replaces the built-in format registry.
func WithRegistry(r *audio.Registry) LoaderOption {
	return func(l *Loader) {
		if r != nil {
			l.registry = r
		}
	}
}

// WithLoaderLogger sets the logger. A nil entry is ignored.
func WithLoaderLogger(entry *logrus.Entry) LoaderOption {
	return func(l *Loader) {
		if entry != nil {
			l.log = entry
		}
	}
}

// DefaultRegistry returns a registry with every built-in format.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register(wav.Decoder{}, "wav", "wave")
	r.Register(mp3.Decoder{}, "mp3")
	r.Register(vorbis.Decoder{}, "ogg", "oga", "vorbis")
	r.Register(aiff.Decoder{}, "aiff", "aif")

	return r
}

func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		targetRate: DefaultTargetRate,
		blockSize:  DefaultBlockSize,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.registry == nil {
		l.registry = DefaultRegistry()
	}
	if l.log == nil {
		l.log = logrus.NewEntry(logrus.StandardLogger())
	}

	return l
}

func (l *Loader) TargetRate() int { return l.targetRate }

// Formats lists the format keys this loader accepts.
func (l *Loader) Formats() []string { return l.registry.Formats() }

// Decode reads r as format and returns its content at the target rate.
// format is a file extension with or without the leading dot.
func (l *Loader) Decode(ctx context.Context, r io.Reader, format string) (*buffer.Buffer, error) {
	dec, err := l.registry.Lookup(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	src, err := dec.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, strings.ToLower(format), err)
	}

	return l.DecodeSource(ctx, src)
}

// DecodeSource resamples and collects an already opened source. The source
// is closed before returning.
func (l *Loader) DecodeSource(ctx context.Context, src audio.Source) (*buffer.Buffer, error) {
	log := l.log.WithFields(logrus.Fields{
		"function":    "DecodeSource",
		"source_rate": src.SampleRate(),
		"channels":    src.Channels(),
		"target_rate": l.targetRate,
		"mono":        l.mono,
	})
	log.Debug("decoding")

	var stream audio.Source = src
	if l.mono && stream.Channels() > 1 {
		stream = audio.NewMonoMixer(stream)
	}
	if stream.SampleRate() != l.targetRate {
		stream = audio.NewResampler(stream, l.targetRate)
	}
	defer func() {
		if err := stream.Close(); err != nil {
			log.WithError(err).Debug("close source")
		}
	}()

	buf, err := audio.ReadAll(ctx, stream, l.blockSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	log.WithField("frames", buf.FrameCount()).Debug("decoded")

	return buf, nil
}
