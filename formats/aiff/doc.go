// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes uncompressed AIFF files into an audio.Source using
// github.com/go-audio/aiff. Samples at 8, 16, 24 and 32 bits are
// normalized to [-1, 1).
package aiff
