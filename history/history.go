// SPDX-License-Identifier: EPL-2.0

// Package history keeps bounded undo and redo stacks of editor snapshots.
//
// A snapshot stores the buffer in the lossless raw format (see package
// codec) so that undo restores the exact samples, together with the
// selection at the time it was taken.
package history

import (
	"errors"
	"fmt"
	"time"

	"github.com/ik5/wavedit/buffer"
	"github.com/ik5/wavedit/codec"
	"github.com/ik5/wavedit/selection"
)

// DefaultCapacity is the number of undo steps kept.
const DefaultCapacity = 50

// ErrEmpty is returned by Undo and Redo when there is nothing to do.
var ErrEmpty = errors.New("history is empty")

// Snapshot is one saved editor state. Data is nil when no buffer was loaded.
type Snapshot struct {
	Data       []byte              `json:"data"`
	SampleRate int                 `json:"sampleRate"`
	Channels   int                 `json:"channels"`
	Frames     int                 `json:"frames"`
	Selection  selection.Selection `json:"selection"`
	Label      string              `json:"label"`
	Timestamp  time.Time           `json:"timestamp"`
}

// Take captures buf and sel. buf may be nil.
func Take(buf *buffer.Buffer, sel selection.Selection, label string, at time.Time) Snapshot {
	s := Snapshot{Selection: sel, Label: label, Timestamp: at}
	if buf != nil {
		s.Data = codec.EncodeRaw(buf)
		s.SampleRate = buf.SampleRate()
		s.Channels = buf.NumChannels()
		s.Frames = buf.FrameCount()
	}
	return s
}

// Buffer decodes the snapshot. It returns nil, nil for an empty snapshot.
func (s Snapshot) Buffer() (*buffer.Buffer, error) {
	if s.Data == nil {
		return nil, nil
	}
	buf, err := codec.DecodeRaw(s.Data, s.Channels, s.Frames, s.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("snapshot %q: %w", s.Label, err)
	}
	return buf, nil
}

// History holds the two stacks. The zero value is not usable; call New.
type History struct {
	undo     []Snapshot
	redo     []Snapshot
	capacity int
	now      func() time.Time
}

// New returns an empty history. A non-positive capacity selects
// DefaultCapacity; a nil clock selects time.Now.
func New(capacity int, now func() time.Time) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if now == nil {
		now = time.Now
	}
	return &History{capacity: capacity, now: now}
}

// Record pushes the pre-edit state, clears redo and evicts the oldest
// entry on overflow.
func (h *History) Record(buf *buffer.Buffer, sel selection.Selection, label string) {
	h.redo = nil
	h.undo = pushBounded(h.undo, Take(buf, sel, label, h.now()), h.capacity)
}

// Undo moves the current state onto the redo stack and pops the most recent
// undo snapshot, returning it with its decoded buffer. A snapshot that
// fails to decode is left in place.
func (h *History) Undo(cur *buffer.Buffer, sel selection.Selection) (*buffer.Buffer, Snapshot, error) {
	return h.step(&h.undo, &h.redo, cur, sel)
}

// Redo is the mirror of Undo.
func (h *History) Redo(cur *buffer.Buffer, sel selection.Selection) (*buffer.Buffer, Snapshot, error) {
	return h.step(&h.redo, &h.undo, cur, sel)
}

func (h *History) step(from, to *[]Snapshot, cur *buffer.Buffer, sel selection.Selection) (*buffer.Buffer, Snapshot, error) {
	if len(*from) == 0 {
		return nil, Snapshot{}, ErrEmpty
	}

	top := (*from)[len(*from)-1]
	buf, err := top.Buffer()
	if err != nil {
		return nil, Snapshot{}, err
	}

	*from = (*from)[:len(*from)-1]
	*to = pushBounded(*to, Take(cur, sel, top.Label, h.now()), h.capacity)

	return buf, top, nil
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }
func (h *History) UndoLen() int  { return len(h.undo) }
func (h *History) RedoLen() int  { return len(h.redo) }
func (h *History) Capacity() int { return h.capacity }

// Labels returns the undo labels, oldest first.
func (h *History) Labels() []string {
	out := make([]string, len(h.undo))
	for i, s := range h.undo {
		out[i] = s.Label
	}
	return out
}

// Clear drops both stacks.
func (h *History) Clear() {
	h.undo, h.redo = nil, nil
}

// Stacks returns copies of both stacks for persistence.
func (h *History) Stacks() (undo, redo []Snapshot) {
	return append([]Snapshot(nil), h.undo...), append([]Snapshot(nil), h.redo...)
}

// Load replaces both stacks, keeping only the newest capacity entries.
func (h *History) Load(undo, redo []Snapshot) {
	h.undo = tail(undo, h.capacity)
	h.redo = tail(redo, h.capacity)
}

func pushBounded(s []Snapshot, v Snapshot, capacity int) []Snapshot {
	s = append(s, v)
	if len(s) > capacity {
		// copy so the evicted snapshot's bytes can be collected
		s = append([]Snapshot(nil), s[len(s)-capacity:]...)
	}
	return s
}

func tail(s []Snapshot, n int) []Snapshot {
	if len(s) > n {
		s = s[len(s)-n:]
	}
	return append([]Snapshot(nil), s...)
}
