// SPDX-License-Identifier: EPL-2.0

package session

import (
	"fmt"
	"math"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ik5/wavedit/buffer"
	"github.com/ik5/wavedit/clip"
	"github.com/ik5/wavedit/edit"
	"github.com/ik5/wavedit/history"
	"github.com/ik5/wavedit/peaks"
	"github.com/ik5/wavedit/selection"
	"github.com/ik5/wavedit/viewport"
)

// Session is one editor instance. It is safe for concurrent use, although
// the engine expects a single logical actor driving it.
type Session struct {
	mu sync.Mutex

	cfg Config
	log *logrus.Entry

	buf  *buffer.Buffer
	name string
	// clipID is the library clip currently shown, if any.
	clipID string

	sel  selection.Selection
	drag *selection.Drag

	view  *viewport.Viewport
	peaks *peaks.Cache
	hist  *history.History

	clipboard clip.Clipboard
	library   *clip.Library

	gain *gainPreview

	loadGen uint64
	loading bool

	status string
}

// New returns an empty session.
func New(opts ...Option) *Session {
	cfg := applyOptions(opts)

	view := viewport.New(cfg.PixelWidth)
	view.SetLimits(cfg.MinZoom, cfg.MaxZoom)
	view.SetStep(cfg.ZoomStep)

	return &Session{
		cfg:     cfg,
		log:     cfg.Logger.WithField("component", "session"),
		view:    view,
		peaks:   peaks.New(cfg.PeakTarget),
		hist:    history.New(cfg.HistoryCapacity, cfg.Now),
		library: clip.NewLibrary(),
		status:  "ready",
	}
}

// Config returns the effective settings.
func (s *Session) Config() Config {
	return s.cfg
}

// Buffer returns a copy of the working buffer, or nil.
func (s *Session) Buffer() *buffer.Buffer {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buf == nil {
		return nil
	}
	return s.buf.Clone()
}

// Name is the export file name of the working buffer.
func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// Duration of the working buffer in seconds.
func (s *Session) Duration() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duration()
}

// FrameCount of the working buffer.
func (s *Session) FrameCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buf == nil {
		return 0
	}
	return s.buf.FrameCount()
}

// Status is the last human readable status message.
func (s *Session) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Loading reports whether a load is pending.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.loading && s.hist.CanUndo()
}

func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.loading && s.hist.CanRedo()
}

// CanEdit reports whether cut, copy and delete would be accepted.
func (s *Session) CanEdit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editable() != nil {
		return false
	}
	_, _, err := s.requireRange()
	return err == nil
}

// CanPaste reports whether Paste would be accepted.
func (s *Session) CanPaste() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editable() == nil && !s.clipboard.Empty()
}

// ClipboardDuration is the length of the clipboard content in seconds.
func (s *Session) ClipboardDuration() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clipboard.Duration()
}

// HistoryLabels returns the undo labels, oldest first.
func (s *Session) HistoryLabels() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.Labels()
}

// FormatTime renders seconds as m:ss.mmm.
func FormatTime(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}

	mins := int(seconds / 60)
	secs := int(math.Mod(seconds, 60))
	millis := int(math.Mod(seconds, 1) * 1000)

	return fmt.Sprintf("%d:%02d.%03d", mins, secs, millis)
}

func (s *Session) duration() float64 {
	if s.buf == nil {
		return 0
	}
	return s.buf.Duration()
}

func (s *Session) editable() error {
	if s.loading {
		return ErrLoadPending
	}
	if s.buf == nil {
		return ErrNoBuffer
	}
	return nil
}

// requireRange returns the normalized selection or ErrInvalidSelection.
func (s *Session) requireRange() (float64, float64, error) {
	if err := s.sel.Require(); err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrInvalidSelection, err)
	}
	start, end := s.sel.Normalized()
	if s.buf != nil {
		if first, last := edit.Frames(s.buf, start, end); first == last {
			return 0, 0, fmt.Errorf("%w: %w: shorter than one frame", ErrInvalidSelection, selection.ErrEmpty)
		}
	}
	return start, end, nil
}

// replace swaps in a new working buffer and refreshes everything derived
// from it.
func (s *Session) replace(buf *buffer.Buffer, sel selection.Selection) {
	s.buf = buf
	s.sel = sel.Clamp(s.duration())
	s.drag = nil
	s.gain = nil
	s.peaks.Rebuild(buf)
	s.view.ScrollTo(s.view.ScrollOffset())
}

// commit records the current state under label and installs buf.
func (s *Session) commit(label string, buf *buffer.Buffer, sel selection.Selection) {
	s.hist.Record(s.buf, s.sel, label)
	s.replace(buf, sel)
}

func (s *Session) setStatus(msg string) {
	s.status = msg
}

// reject logs and reports a refused operation. The state is not touched.
func (s *Session) reject(op string, err error) error {
	s.log.WithFields(logrus.Fields{
		"function": op,
		"error":    err.Error(),
	}).Warn("Operation rejected")
	s.setStatus(fmt.Sprintf("%s: %v", op, err))
	return err
}

func (s *Session) fail(op string, err error) error {
	s.log.WithFields(logrus.Fields{
		"function": op,
		"error":    err.Error(),
	}).Error("Operation failed")
	s.setStatus(fmt.Sprintf("%s failed: %v", op, err))
	return err
}

func (s *Session) done(op, msg string) {
	fields := logrus.Fields{"function": op}
	if s.buf != nil {
		fields["frames"] = s.buf.FrameCount()
		fields["channels"] = s.buf.NumChannels()
	}
	s.log.WithFields(fields).Info(msg)
	s.setStatus(msg)
}
