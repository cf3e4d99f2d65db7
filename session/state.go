// SPDX-License-Identifier: EPL-2.0

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ik5/wavedit/buffer"
	"github.com/ik5/wavedit/history"
	"github.com/ik5/wavedit/selection"
	"github.com/ik5/wavedit/store"
)

// State is the persisted session record.
type State struct {
	SelectedClipID string              `json:"selectedClipId,omitempty"`
	Name           string              `json:"name,omitempty"`
	Selection      selection.Selection `json:"selection"`
	Undo           []history.Snapshot  `json:"undoStack"`
	Redo           []history.Snapshot  `json:"redoStack"`
	// Current is the working buffer. It is absent when nothing is loaded.
	Current *history.Snapshot `json:"current,omitempty"`
}

// SerializeState encodes the session record as JSON.
func (s *Session) SerializeState() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		SelectedClipID: s.clipID,
		Name:           s.name,
		Selection:      s.sel,
	}
	st.Undo, st.Redo = s.hist.Stacks()
	if s.buf != nil {
		cur := history.Take(s.buf, s.sel, "current", s.cfg.Now())
		st.Current = &cur
	}

	data, err := json.Marshal(st)
	if err != nil {
		return nil, s.fail("SerializeState", err)
	}
	return data, nil
}

// RestoreState replaces the working buffer, selection and history with a
// record produced by SerializeState. Nothing changes if the record cannot
// be decoded. A record without a buffer loads the selected library clip,
// if there is one.
func (s *Session) RestoreState(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	const op = "RestoreState"

	if s.loading {
		return s.reject(op, ErrLoadPending)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return s.fail(op, fmt.Errorf("decode session state: %w", err))
	}

	var (
		buf *buffer.Buffer
		err error
	)
	switch {
	case st.Current != nil:
		buf, err = st.Current.Buffer()
	case st.SelectedClipID != "":
		if c, cerr := s.library.Get(st.SelectedClipID); cerr == nil {
			buf, err = c.Buffer()
			if st.Name == "" {
				st.Name = c.Name + ".wav"
			}
		}
	}
	if err != nil {
		return s.fail(op, err)
	}
	if buf != nil && buf.SampleRate() != s.cfg.SampleRate {
		return s.fail(op, fmt.Errorf("%w: got %d Hz, want %d Hz", ErrRateMismatch, buf.SampleRate(), s.cfg.SampleRate))
	}

	if err := s.checkSnapshots(st.Undo, st.Redo); err != nil {
		return s.fail(op, err)
	}

	s.hist.Load(st.Undo, st.Redo)
	s.install(buf, st.Name, st.SelectedClipID)
	s.sel = st.Selection.Clamp(s.duration())

	s.log.WithFields(logrus.Fields{
		"function": op,
		"undo":     s.hist.UndoLen(),
		"redo":     s.hist.RedoLen(),
	}).Info("Session restored")
	s.setStatus("session restored")

	return nil
}

// Persist writes the clip library and the session record to st.
func (s *Session) Persist(ctx context.Context, st store.Store) error {
	s.mu.Lock()
	clips := s.library.List()
	s.mu.Unlock()

	if err := st.SaveClips(ctx, clips); err != nil {
		return fmt.Errorf("save clips: %w", err)
	}

	data, err := s.SerializeState()
	if err != nil {
		return err
	}
	if err := st.SaveSession(ctx, data); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

// RestoreFrom loads the clip library and, if one was saved, the session
// record from st.
func (s *Session) RestoreFrom(ctx context.Context, st store.Store) error {
	clips, err := st.LoadClips(ctx)
	if err != nil {
		return fmt.Errorf("load clips: %w", err)
	}

	s.mu.Lock()
	if s.loading {
		err := s.reject("RestoreFrom", ErrLoadPending)
		s.mu.Unlock()
		return err
	}
	s.library.Replace(clips)
	s.mu.Unlock()

	data, err := st.LoadSession(ctx)
	if errors.Is(err, store.ErrNoSession) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	return s.RestoreState(data)
}

// checkSnapshots rejects history entries recorded at another sample rate,
// so undo can never install a foreign buffer.
func (s *Session) checkSnapshots(stacks ...[]history.Snapshot) error {
	for _, stack := range stacks {
		for _, snap := range stack {
			if snap.Data != nil && snap.SampleRate != s.cfg.SampleRate {
				return fmt.Errorf("%w: %q snapshot at %d Hz, want %d Hz", ErrRateMismatch, snap.Label, snap.SampleRate, s.cfg.SampleRate)
			}
		}
	}
	return nil
}
