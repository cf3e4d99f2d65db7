// SPDX-License-Identifier: EPL-2.0

package session

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ik5/wavedit/buffer"
	"github.com/ik5/wavedit/selection"
)

// Decoder turns an encoded file into a buffer at the session rate. format
// is the lower-case file extension without the dot.
type Decoder interface {
	Decode(ctx context.Context, r io.Reader, format string) (*buffer.Buffer, error)
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(ctx context.Context, r io.Reader, format string) (*buffer.Buffer, error)

func (f DecoderFunc) Decode(ctx context.Context, r io.Reader, format string) (*buffer.Buffer, error) {
	return f(ctx, r, format)
}

// Load decodes r with the configured decoder and makes it the working
// buffer. The decode runs without holding the session lock; edits are
// refused until it finishes. If another Load starts in the meantime this
// one returns ErrSuperseded and its result is dropped.
//
// An empty format is taken from the extension of name.
func (s *Session) Load(ctx context.Context, name string, r io.Reader, format string) error {
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(name), ".")
	}
	format = strings.ToLower(format)

	s.mu.Lock()
	dec := s.cfg.Decoder
	if dec == nil {
		err := s.reject("Load", ErrNoDecoder)
		s.mu.Unlock()
		return err
	}
	s.loadGen++
	gen := s.loadGen
	s.loading = true
	s.drag = nil
	s.gain = nil
	s.setStatus(fmt.Sprintf("decoding %s...", name))
	s.log.WithFields(logrus.Fields{
		"function":   "Load",
		"name":       name,
		"format":     format,
		"generation": gen,
	}).Debug("Decoding audio")
	s.mu.Unlock()

	buf, err := dec.Decode(ctx, r, format)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.loadGen {
		s.log.WithFields(logrus.Fields{
			"function":   "Load",
			"name":       name,
			"generation": gen,
			"current":    s.loadGen,
		}).Info("Discarding superseded load")
		return ErrSuperseded
	}
	s.loading = false

	if err == nil && buf == nil {
		err = ErrNoBuffer
	}
	if err == nil && buf.SampleRate() != s.cfg.SampleRate {
		err = fmt.Errorf("%w: got %d Hz, want %d Hz", ErrRateMismatch, buf.SampleRate(), s.cfg.SampleRate)
	}
	if err != nil {
		return s.fail("Load", fmt.Errorf("%w: %s: %w", ErrDecode, name, err))
	}

	buf.ClampAll()
	s.install(buf, exportName(name), "")
	s.done("Load", fmt.Sprintf("loaded %s (%d Hz, %s)", name, buf.SampleRate(), FormatTime(buf.Duration())))

	return nil
}

// LoadAsync runs Load in its own goroutine. The returned channel receives
// the result and is then closed.
func (s *Session) LoadAsync(ctx context.Context, name string, r io.Reader, format string) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- s.Load(ctx, name, r, format)
	}()
	return done
}

// SetBuffer installs buf, already at the session rate, as the working
// buffer. The session takes ownership of buf. Like Load it is not
// recorded in the history.
func (s *Session) SetBuffer(name string, buf *buffer.Buffer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		return s.reject("SetBuffer", ErrLoadPending)
	}
	if buf == nil {
		return s.reject("SetBuffer", ErrNoBuffer)
	}
	if buf.SampleRate() != s.cfg.SampleRate {
		return s.reject("SetBuffer", fmt.Errorf("%w: got %d Hz, want %d Hz",
			ErrRateMismatch, buf.SampleRate(), s.cfg.SampleRate))
	}

	buf.ClampAll()
	s.install(buf, exportName(name), "")
	s.done("SetBuffer", fmt.Sprintf("loaded %s", name))

	return nil
}

// Clear drops the working buffer. The history, clipboard and library are
// kept.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		return s.reject("Clear", ErrLoadPending)
	}
	s.install(nil, "", "")
	s.done("Clear", "editor cleared")

	return nil
}

// install replaces the working buffer without recording history and
// resets selection, zoom and any gain preview.
func (s *Session) install(buf *buffer.Buffer, name, clipID string) {
	s.name = name
	s.clipID = clipID
	s.view.Reset()
	s.replace(buf, selection.Selection{})
}

func exportName(name string) string {
	if name == "" {
		return ""
	}
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".wav"
}
