// SPDX-License-Identifier: EPL-2.0

package wavedit

import "errors"

// ErrDecode wraps every failure to turn input bytes into a buffer.
var ErrDecode = errors.New("decode failed")
