// SPDX-License-Identifier: EPL-2.0

package session

import (
	"math"

	"github.com/ik5/wavedit/selection"
)

// Peaks returns a copy of the peak cache of the working buffer.
func (s *Session) Peaks() []float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]float32(nil), s.peaks.Peaks()...)
}

// PeakStep is the number of frames behind each peak.
func (s *Session) PeakStep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.peaks.Step()
}

// Selection returns the current selection.
func (s *Session) Selection() selection.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel
}

// SetSelection sets the selection, clamped to the buffer. Setting it does
// not end a gain drag.
func (s *Session) SetSelection(anchor, cursor float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel = selection.New(anchor, cursor).Clamp(s.duration())
}

// ClearSelection resets the selection to (0, 0).
func (s *Session) ClearSelection() {
	s.SetSelection(0, 0)
}

// VisibleWindow is the time range currently on screen.
func (s *Session) VisibleWindow() (start, end float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.VisibleWindow(s.duration())
}

// TimeAtPixel maps a surface x coordinate to time.
func (s *Session) TimeAtPixel(x float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeAt(x)
}

// PixelAtTime maps a time to a surface x coordinate.
func (s *Session) PixelAtTime(t float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.PixelAtTime(t, s.duration())
}

func (s *Session) Zoom() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.Zoom()
}

func (s *Session) ScrollOffset() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.ScrollOffset()
}

// SetZoom sets the zoom keeping the center of the view fixed.
func (s *Session) SetZoom(zoom float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.SetZoomCentered(zoom, s.duration())
}

// ZoomIn steps the zoom up, keeping the center fixed.
func (s *Session) ZoomIn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.AdjustZoom(s.cfg.ZoomStep, s.duration())
}

// ZoomOut steps the zoom down, keeping the center fixed.
func (s *Session) ZoomOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.AdjustZoom(-s.cfg.ZoomStep, s.duration())
}

// Wheel applies one wheel notch at pixel x, keeping the time under the
// pointer fixed. deltaY < 0 zooms in.
func (s *Session) Wheel(deltaY, x float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.view.Wheel(deltaY, x, s.duration())
}

// ResetZoom shows the whole buffer.
func (s *Session) ResetZoom() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Reset()
}

// Scroll sets the scroll offset in pixels.
func (s *Session) Scroll(offset float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.ScrollTo(offset)
}

// Thumb returns the scrollbar thumb geometry in percent and whether the
// scrollbar is shown at all.
func (s *Session) Thumb() (widthPercent, leftPercent float64, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, l := s.view.Thumb()
	return w, l, s.view.ScrollbarVisible()
}

// ScrollToThumb scrolls from a thumb position in percent.
func (s *Session) ScrollToThumb(leftPercent float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.ScrollToThumb(leftPercent)
}

// SetWidth resizes the rendering surface.
func (s *Session) SetWidth(px float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.SetWidth(px)
}

// BeginDrag starts a selection gesture at pixel x and reports what it
// grabbed. Without a buffer it returns TargetNone.
func (s *Session) BeginDrag(x float64) selection.Target {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buf == nil || s.loading {
		return selection.TargetNone
	}

	dur := s.duration()
	tol := s.view.PixelsToTime(s.cfg.HandleTolerance, dur)

	var sel selection.Selection
	s.drag, sel = selection.BeginDrag(s.sel, s.timeAt(x), tol, dur)
	s.sel = sel

	return s.drag.Target()
}

// DragTo moves the active gesture to pixel x.
func (s *Session) DragTo(x float64) selection.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.drag != nil {
		s.sel = s.drag.Update(s.timeAt(x))
	}
	return s.sel
}

// EndDrag finishes the gesture.
func (s *Session) EndDrag() selection.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drag = nil
	return s.sel
}

func (s *Session) timeAt(x float64) float64 {
	dur := s.duration()
	return math.Max(0, math.Min(s.view.TimeAtPixel(x, dur), dur))
}
