// SPDX-License-Identifier: EPL-2.0

package session

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ik5/wavedit/buffer"
	"github.com/ik5/wavedit/history"
	"github.com/ik5/wavedit/selection"
)

// Undo restores the state before the last edit. It returns
// history.ErrEmpty, without touching the status, when there is nothing to
// undo.
func (s *Session) Undo() error {
	return s.step("Undo", s.hist.Undo)
}

// Redo reapplies the last undone edit.
func (s *Session) Redo() error {
	return s.step("Redo", s.hist.Redo)
}

func (s *Session) step(op string, fn func(*buffer.Buffer, selection.Selection) (*buffer.Buffer, history.Snapshot, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		return s.reject(op, ErrLoadPending)
	}

	buf, snap, err := fn(s.buf, s.sel)
	if errors.Is(err, history.ErrEmpty) {
		s.log.WithField("function", op).Debug("Nothing to do")
		return err
	}
	if err != nil {
		return s.fail(op, err)
	}

	s.replace(buf, snap.Selection)
	s.log.WithFields(logrus.Fields{
		"function": op,
		"action":   snap.Label,
		"undo":     s.hist.UndoLen(),
		"redo":     s.hist.RedoLen(),
	}).Info("History step")
	s.setStatus(fmt.Sprintf("%s: %s", op, snap.Label))

	return nil
}
