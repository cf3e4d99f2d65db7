// SPDX-License-Identifier: EPL-2.0

// Package buffer defines the in-memory sample buffer the editor operates on.
//
// A Buffer owns one []float32 per channel. All channels have the same length
// (the frame count) and share a single sample rate. Buffers produced by the
// edit package never alias the storage of their inputs, so a Buffer can be
// handed to the history or the clipboard without copying again.
//
// # Time and sample indices
//
// Times are seconds as float64. FrameAt converts a time to a frame index by
// flooring t*rate, snapping values that sit within a tiny epsilon of an
// integer so that e.g. 0.35s at 8 kHz is frame 2800 rather than 2799:
//
//	buf := buffer.New(1, 8000, 8000)
//	buf.FrameAt(0.35) // 2800
//	buf.Duration()    // 1.0
package buffer
