// SPDX-License-Identifier: EPL-2.0

package edit

import "errors"

var (
	// ErrEmptyRange is returned when an operation needs start < end.
	ErrEmptyRange = errors.New("empty range")
	// ErrIncompatible is returned when spliced buffers differ in channel
	// count or sample rate.
	ErrIncompatible = errors.New("incompatible buffers")
	// ErrNothingToJoin is returned by Concat without inputs.
	ErrNothingToJoin = errors.New("no buffers to join")
)
