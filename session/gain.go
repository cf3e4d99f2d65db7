// SPDX-License-Identifier: EPL-2.0

package session

import (
	"fmt"
	"math"

	"github.com/ik5/wavedit/edit"
	"github.com/ik5/wavedit/peaks"
)

// MaxGain is the largest accepted loudness factor.
const MaxGain = 4.0

// gainPreview is a loudness drag in progress. The working buffer is never
// touched until the drag is committed.
type gainPreview struct {
	factor float64
	peaks  []float32
}

// BeginGain starts a loudness drag at factor 1.
func (s *Session) BeginGain() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editable(); err != nil {
		return s.reject("BeginGain", err)
	}
	s.gain = &gainPreview{factor: 1}

	return nil
}

// PreviewGain scales a copy of the buffer by factor and returns the peaks
// of that copy for rendering. It starts a drag if none is active.
func (s *Session) PreviewGain(factor float64) ([]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editable(); err != nil {
		return nil, s.reject("PreviewGain", err)
	}
	factor, err := checkGain(factor)
	if err != nil {
		return nil, s.reject("PreviewGain", err)
	}

	if s.gain == nil {
		s.gain = &gainPreview{}
	}

	start, end := s.sel.Normalized()
	scaled := edit.Scale(s.buf, start, end, factor)

	s.gain.factor = factor
	_, s.gain.peaks = peaks.Compute(scaled.Channel(0), s.cfg.PeakTarget, s.gain.peaks)
	s.setStatus(fmt.Sprintf("loudness %d%%", int(math.Round(factor*100))))

	return append([]float32(nil), s.gain.peaks...), nil
}

// GainFactor is the factor of the active drag, or 1.
func (s *Session) GainFactor() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gain == nil {
		return 1
	}
	return s.gain.factor
}

// CommitGain applies factor to the selection, or to the whole buffer when
// the selection is empty, as one history step. A factor of 1 only ends the
// drag.
func (s *Session) CommitGain(factor float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	const op = "CommitGain"

	if err := s.editable(); err != nil {
		return s.reject(op, err)
	}
	factor, err := checkGain(factor)
	if err != nil {
		return s.reject(op, err)
	}

	s.gain = nil
	if factor == 1 {
		s.setStatus("loudness unchanged")
		return nil
	}

	start, end := s.sel.Normalized()
	out := edit.Scale(s.buf, start, end, factor)

	s.commit("gain", out, s.sel)
	s.done(op, fmt.Sprintf("loudness set to %d%%", int(math.Round(factor*100))))

	return nil
}

// CancelGain abandons the drag.
func (s *Session) CancelGain() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gain = nil
}

func checkGain(f float64) (float64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, fmt.Errorf("invalid loudness factor %v", f)
	}
	return math.Min(f, MaxGain), nil
}
