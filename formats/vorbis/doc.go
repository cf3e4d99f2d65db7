// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams into an audio.Source using
// github.com/jfreymuth/oggvorbis. Decoded samples are clamped to [-1, 1]
// since Vorbis synthesis can overshoot slightly.
package vorbis
