// SPDX-License-Identifier: EPL-2.0

package session

import "errors"

var (
	ErrInvalidSelection = errors.New("invalid selection")
	ErrNoBuffer         = errors.New("no audio loaded")
	ErrClipboardEmpty   = errors.New("clipboard is empty")
	ErrLoadPending      = errors.New("a load is in progress")
	ErrSuperseded       = errors.New("load superseded by a newer one")
	ErrDecode           = errors.New("decode failed")
	ErrNoDecoder        = errors.New("no decoder configured")
	ErrRateMismatch     = errors.New("sample rate does not match the session")
)
