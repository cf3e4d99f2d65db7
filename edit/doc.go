// SPDX-License-Identifier: EPL-2.0

// Package edit implements the sample-accurate buffer transformations behind
// cut, copy, paste, delete and gain.
//
// Every function except ScaleInPlace returns a freshly allocated buffer that
// shares no storage with its inputs, and none of them touch the input on
// failure. Times are seconds; they are turned into frame indices with
// buffer.FrameIndex and clamped to the buffer length, so the frame counts of
// Extract and Delete over the same range always add up to the original.
//
//	clip, _ := edit.Extract(buf, 0.25, 0.5)     // 2000 frames at 8 kHz
//	rest, _ := edit.Delete(buf, 0.25, 0.5)      // buf.FrameCount() - 2000
//	out, _ := edit.Replace(rest, 0.1, 0.1, clip) // paste at a cursor = insert
package edit
