// SPDX-License-Identifier: EPL-2.0

package selection

// Target is the part of a selection a drag grabbed.
type Target int

const (
	TargetNone Target = iota
	TargetStart
	TargetEnd
	TargetBody
	// TargetNew starts a fresh selection at the pointer.
	TargetNew
)

// HitTest decides what a press at time t grabs. tolerance is the handle
// grab radius expressed in seconds. Handles and the body only exist for a
// range selection.
func HitTest(s Selection, t, tolerance float64) Target {
	start, end := s.Normalized()
	if end <= start {
		return TargetNew
	}

	switch {
	case abs(t-start) < tolerance:
		return TargetStart
	case abs(t-end) < tolerance:
		return TargetEnd
	case t >= start && t <= end:
		return TargetBody
	default:
		return TargetNew
	}
}

// Drag tracks one press-move-release gesture over a buffer of a fixed
// duration.
type Drag struct {
	target    Target
	origStart float64
	origEnd   float64
	grabTime  float64
	duration  float64
}

// BeginDrag hit-tests s at time t and returns the gesture together with the
// selection to show immediately. Starting a new selection collapses it to a
// cursor at t.
func BeginDrag(s Selection, t, tolerance, duration float64) (*Drag, Selection) {
	target := HitTest(s, t, tolerance)
	start, end := s.Normalized()

	if target == TargetNew {
		t = clamp(t, 0, duration)
		s = At(t)
		start, end = t, t
	}

	return &Drag{
		target:    target,
		origStart: start,
		origEnd:   end,
		grabTime:  t,
		duration:  duration,
	}, s
}

// Target reports what the drag grabbed.
func (d *Drag) Target() Target { return d.target }

// Update returns the selection for a pointer now at time t.
//
// A handle moves alone and cannot cross the other end or leave
// [0, duration]. The body moves both ends by the same delta, clamped so the
// whole range stays inside the buffer.
func (d *Drag) Update(t float64) Selection {
	switch d.target {
	case TargetStart:
		return New(clamp(t, 0, d.origEnd), d.origEnd)

	case TargetEnd:
		return New(d.origStart, clamp(t, d.origStart, d.duration))

	case TargetBody:
		width := d.origEnd - d.origStart
		start := clamp(d.origStart+(t-d.grabTime), 0, d.duration-width)
		return New(start, start+width)

	case TargetNew:
		return New(d.origStart, clamp(t, 0, d.duration))

	default:
		return New(d.origStart, d.origEnd)
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
