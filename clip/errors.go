// SPDX-License-Identifier: EPL-2.0

package clip

import "errors"

var (
	ErrNotFound     = errors.New("clip not found")
	ErrIncompatible = errors.New("clips have different channel count or sample rate")
	ErrTooFew       = errors.New("at least two clips are needed")
	ErrEmptyName    = errors.New("clip name is empty")
)
