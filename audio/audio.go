// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
)

// Source is a stream of interleaved float32 samples in [-1, 1].
type Source interface {
	// SampleRate of the stream in Hz.
	SampleRate() int
	// Channels count (1 = mono, 2 = stereo).
	Channels() int
	// ReadSamples fills dst with interleaved samples and returns the number
	// of values written, not frames. The last data may come together with
	// io.EOF.
	ReadSamples(dst []float32) (n int, err error)
	// BufSize is the preferred read size in frames.
	BufSize() int
	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps format keys ("wav", "mp3", "ogg", ...) to decoders. Keys
// are case-insensitive.
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

// Register adds d under every given key.
func (r *Registry) Register(d Decoder, formats ...string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	for _, f := range formats {
		r.codecs[normalize(f)] = d
	}
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[normalize(format)]
	return d, ok
}

// Lookup is Get returning ErrUnsupportedFormat for unknown keys.
func (r *Registry) Lookup(format string) (Decoder, error) {
	d, ok := r.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return d, nil
}

// Formats lists the registered keys in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	out := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		out = append(out, k)
	}
	slices.Sort(out)

	return out
}

func normalize(format string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
}
