// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 streams into an audio.Source using
// github.com/hajimehoshi/go-mp3.
//
// The decoder always yields two channels, duplicating mono streams; use
// audio.MonoMixer to fold them back.
package mp3
