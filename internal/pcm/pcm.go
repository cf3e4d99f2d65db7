// SPDX-License-Identifier: EPL-2.0

// Package pcm holds the numeric helpers shared by the codec, the edit
// operations and the resampler.
package pcm

import "math"

const (
	// PositiveScale maps 1.0 to the largest int16 value.
	PositiveScale = 32767.0
	// NegativeScale maps -1.0 to the smallest int16 value.
	NegativeScale = 32768.0
)

// Clamp limits x to [-1, 1].
func Clamp(x float32) float32 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

// Clamp64 is Clamp for float64 intermediates.
func Clamp64(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

// ToInt16 converts a float sample to 16-bit PCM. The sample is clamped
// first, positive values scale by 32767 and negative ones by 32768, and the
// product is rounded to the nearest integer.
func ToInt16(x float32) int16 {
	v := float64(Clamp(x))
	if v < 0 {
		return int16(math.Round(v * NegativeScale))
	}
	return int16(math.Round(v * PositiveScale))
}

// FromInt16 is the inverse of ToInt16.
func FromInt16(v int16) float32 {
	if v < 0 {
		return float32(float64(v) / NegativeScale)
	}
	return float32(float64(v) / PositiveScale)
}

// FromInt normalizes a signed integer sample of the given bit depth to
// [-1, 1). Unknown depths are treated as 16-bit.
func FromInt(v, bitDepth int) float32 {
	if bitDepth < 8 || bitDepth > 32 {
		bitDepth = 16
	}
	return Clamp(float32(float64(v) / float64(int64(1)<<(bitDepth-1))))
}

// Cubic performs Catmull-Rom interpolation between y1 and y2.
// x is the fractional position (0 <= x <= 1).
func Cubic(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2

	return ((a0*x+a1)*x+a2)*x + y1
}
