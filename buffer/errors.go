// SPDX-License-Identifier: EPL-2.0

package buffer

import "errors"

var (
	ErrNoChannels        = errors.New("buffer must have at least one channel")
	ErrChannelLength     = errors.New("all channels must have the same length")
	ErrInvalidRate       = errors.New("sample rate must be positive")
	ErrChannelOutOfRange = errors.New("channel index out of range")
)
