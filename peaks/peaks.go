// SPDX-License-Identifier: EPL-2.0

// Package peaks builds the downsampled amplitude envelope used to draw a
// waveform. The envelope is a visualization aid only and is never consulted
// by sample-accurate edits.
package peaks

import "github.com/ik5/wavedit/buffer"

// DefaultTarget is the number of source windows the cache aims for.
const DefaultTarget = 5000

// Cache holds the peaks of channel 0 of the last buffer it was built from.
type Cache struct {
	target int
	step   int
	peaks  []float32
}

// New returns an empty cache. A non-positive target selects DefaultTarget.
func New(target int) *Cache {
	if target <= 0 {
		target = DefaultTarget
	}
	return &Cache{target: target, step: 1}
}

// Rebuild recomputes every peak from buf. A nil buffer clears the cache.
func (c *Cache) Rebuild(buf *buffer.Buffer) {
	if buf == nil {
		c.peaks = c.peaks[:0]
		c.step = 1
		return
	}
	c.step, c.peaks = Compute(buf.Channel(0), c.target, c.peaks)
}

// Peaks returns the current envelope. The slice is owned by the cache and is
// replaced on the next Rebuild.
func (c *Cache) Peaks() []float32 { return c.peaks }

// Step is the number of source frames per peak.
func (c *Cache) Step() int { return c.step }

// Len is the number of peaks.
func (c *Cache) Len() int { return len(c.peaks) }

// Target is the configured target cardinality.
func (c *Cache) Target() int { return c.target }

// Compute downsamples data into ceil(len/step) peaks where
// step = max(1, len/target). Each peak is (max-min)/2 over its window, with
// min and max both seeded at zero. dst is reused when it has capacity.
func Compute(data []float32, target int, dst []float32) (int, []float32) {
	n := len(data)
	step := max(1, n/target)
	count := (n + step - 1) / step

	if cap(dst) < count {
		dst = make([]float32, count)
	}
	dst = dst[:count]

	for i := range count {
		start := i * step
		end := min(start+step, n)

		var lo, hi float32
		for _, v := range data[start:end] {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		dst[i] = (hi - lo) / 2
	}

	return step, dst
}
