// SPDX-License-Identifier: EPL-2.0

package session

import (
	"fmt"

	"github.com/ik5/wavedit/buffer"
	"github.com/ik5/wavedit/edit"
	"github.com/ik5/wavedit/selection"
)

// Extract replaces the working buffer with just the selected range.
func (s *Session) Extract() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	const op = "Extract"

	if err := s.editable(); err != nil {
		return s.reject(op, err)
	}
	start, end, err := s.requireRange()
	if err != nil {
		return s.reject(op, err)
	}

	out, err := edit.Extract(s.buf, start, end)
	if err != nil {
		return s.reject(op, fmt.Errorf("%w: %w", ErrInvalidSelection, err))
	}

	s.commit("cut", out, selection.Selection{})
	s.view.Reset()
	s.done(op, fmt.Sprintf("kept %s to %s", FormatTime(start), FormatTime(end)))

	return nil
}

// Copy stores the selected range in the clipboard. The buffer is not
// changed.
func (s *Session) Copy() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	const op = "Copy"

	if err := s.editable(); err != nil {
		return s.reject(op, err)
	}
	start, end, err := s.requireRange()
	if err != nil {
		return s.reject(op, err)
	}

	out, err := edit.Extract(s.buf, start, end)
	if err != nil {
		return s.reject(op, fmt.Errorf("%w: %w", ErrInvalidSelection, err))
	}

	s.clipboard.Set(out)
	s.done(op, fmt.Sprintf("copied %s", FormatTime(s.clipboard.Duration())))

	return nil
}

// CutToClipboard moves the selected range into the clipboard and removes
// it from the buffer.
func (s *Session) CutToClipboard() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	const op = "CutToClipboard"

	if err := s.editable(); err != nil {
		return s.reject(op, err)
	}
	start, end, err := s.requireRange()
	if err != nil {
		return s.reject(op, err)
	}

	cut, err := edit.Extract(s.buf, start, end)
	if err != nil {
		return s.reject(op, fmt.Errorf("%w: %w", ErrInvalidSelection, err))
	}
	rest, err := edit.Delete(s.buf, start, end)
	if err != nil {
		return s.reject(op, fmt.Errorf("%w: %w", ErrInvalidSelection, err))
	}

	s.clipboard.Set(cut)
	s.commit("cut to clipboard", rest, selection.Selection{})
	s.done(op, fmt.Sprintf("cut %s to clipboard", FormatTime(s.clipboard.Duration())))

	return nil
}

// Paste inserts the clipboard at the cursor, or replaces the selected
// range. The selection then covers exactly the pasted audio.
func (s *Session) Paste() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	const op = "Paste"

	if err := s.editable(); err != nil {
		return s.reject(op, err)
	}
	if s.clipboard.Empty() {
		return s.reject(op, ErrClipboardEmpty)
	}

	ins, err := s.clipboard.Buffer()
	if err != nil {
		return s.fail(op, err)
	}

	start, end := s.sel.Normalized()

	var out *buffer.Buffer
	if s.sel.IsEmpty() {
		out, err = edit.Insert(s.buf, start, ins)
	} else {
		out, err = edit.Replace(s.buf, start, end, ins)
	}
	if err != nil {
		return s.reject(op, err)
	}

	at := s.buf.FrameAt(start)
	rate := float64(s.buf.SampleRate())
	pasted := selection.New(float64(at)/rate, float64(at+ins.FrameCount())/rate)

	s.commit("paste", out, pasted)
	s.done(op, fmt.Sprintf("pasted %s at %s", FormatTime(ins.Duration()), FormatTime(pasted.Anchor)))

	return nil
}

// Delete removes the selected range.
func (s *Session) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	const op = "Delete"

	if err := s.editable(); err != nil {
		return s.reject(op, err)
	}
	start, end, err := s.requireRange()
	if err != nil {
		return s.reject(op, err)
	}

	out, err := edit.Delete(s.buf, start, end)
	if err != nil {
		return s.reject(op, fmt.Errorf("%w: %w", ErrInvalidSelection, err))
	}

	s.commit("delete", out, selection.Selection{})
	s.done(op, fmt.Sprintf("deleted %s to %s", FormatTime(start), FormatTime(end)))

	return nil
}
