// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize    = errors.New("dst size must be multiple of channels")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrInvalidRate       = errors.New("invalid sample rate")
	ErrNoChannels        = errors.New("source has no channels")
)
