// SPDX-License-Identifier: EPL-2.0

// Package wav decodes RIFF/WAVE files into an audio.Source.
//
// Parsing is done by github.com/go-audio/wav, so files with LIST, bext or
// other chunks before the data chunk are accepted. Integer PCM at 8, 16,
// 24 and 32 bits is supported; IEEE float and compressed encodings are
// rejected with ErrUnsupportedEncoding.
//
// 16-bit samples use the same asymmetric scale as the editor's export
// container, so an exported file imports back sample for sample.
package wav
