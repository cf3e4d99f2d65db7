// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrCodec is wrapped by every error returned from this package.
	ErrCodec = errors.New("codec error")

	ErrBadHeader         = errors.New("malformed container header")
	ErrUnsupportedFormat = errors.New("only 16-bit integer PCM containers are supported")
	ErrSizeMismatch      = errors.New("byte length does not match declared shape")
	ErrInvalidShape      = errors.New("invalid channel count, frame count or sample rate")
)

func codecErr(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", ErrCodec, kind, fmt.Sprintf(format, args...))
}
