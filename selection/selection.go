// SPDX-License-Identifier: EPL-2.0

// Package selection models the time range the user operates on.
//
// A Selection keeps the two ends in the order the user dragged them
// (Anchor is where the drag started, Cursor where it is now). Operations
// always use the normalized (start, end) form.
package selection

import (
	"errors"
	"fmt"
	"math"
)

// ErrEmpty is returned by Require when the selection has no length.
var ErrEmpty = errors.New("selection is empty")

// Kind distinguishes the three shapes a selection can take.
type Kind int

const (
	// Empty is the reset state: both ends at zero.
	Empty Kind = iota
	// Cursor is a zero-width selection at t > 0, a "play from here" mark.
	Cursor
	// Range is a selection with start < end.
	Range
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Cursor:
		return "cursor"
	case Range:
		return "range"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Selection is a directional time range in seconds.
type Selection struct {
	Anchor float64 `json:"anchor"`
	Cursor float64 `json:"cursor"`
}

// New returns a selection between a and b in drag order.
func New(anchor, cursor float64) Selection {
	return Selection{Anchor: anchor, Cursor: cursor}
}

// At returns a zero-width selection at t.
func At(t float64) Selection {
	return Selection{Anchor: t, Cursor: t}
}

// Normalized returns (min, max) of the two ends.
func (s Selection) Normalized() (start, end float64) {
	return math.Min(s.Anchor, s.Cursor), math.Max(s.Anchor, s.Cursor)
}

func (s Selection) Start() float64 { return math.Min(s.Anchor, s.Cursor) }
func (s Selection) End() float64   { return math.Max(s.Anchor, s.Cursor) }

// Span is end - start.
func (s Selection) Span() float64 { return s.End() - s.Start() }

// IsEmpty reports whether the selection has zero length.
func (s Selection) IsEmpty() bool { return s.Anchor == s.Cursor }

// Kind classifies the selection.
func (s Selection) Kind() Kind {
	switch {
	case !s.IsEmpty():
		return Range
	case s.Anchor > 0:
		return Cursor
	default:
		return Empty
	}
}

// Require returns ErrEmpty unless the selection is a range.
func (s Selection) Require() error {
	if s.IsEmpty() {
		return ErrEmpty
	}
	return nil
}

// Clamp limits both ends to [0, duration], keeping drag order.
func (s Selection) Clamp(duration float64) Selection {
	return Selection{
		Anchor: clamp(s.Anchor, 0, duration),
		Cursor: clamp(s.Cursor, 0, duration),
	}
}

func (s Selection) String() string {
	start, end := s.Normalized()
	return fmt.Sprintf("%s[%.3f, %.3f]", s.Kind(), start, end)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
