// SPDX-License-Identifier: EPL-2.0

// Package session ties the editing engine together.
//
// A Session owns the working buffer, its selection, the viewport, the peak
// cache, the undo history, the clipboard and the clip library. Every
// content-changing operation builds the complete new buffer first, records
// the previous state in the history and only then swaps the new buffer in,
// so a failed operation leaves the session untouched.
//
// Loading is the only operation that may block. While a load is pending the
// mutating operations return ErrLoadPending, and a load that has been
// superseded by a newer one is discarded with ErrSuperseded.
package session
