// SPDX-License-Identifier: EPL-2.0

// Package codec serializes buffer.Buffer values.
//
// Two formats are supported:
//
// The container is a canonical 44-byte RIFF/WAVE header followed by
// interleaved 16-bit little-endian PCM. It is the export format and is lossy
// (float samples are quantized to int16):
//
//	offset size field
//	0      4    "RIFF"
//	4      4    36 + data size
//	8      4    "WAVE"
//	12     4    "fmt "
//	16     4    16 (fmt chunk size)
//	20     2    1 (integer PCM)
//	22     2    channel count
//	24     4    sample rate
//	28     4    byte rate = rate * channels * 2
//	32     2    block align = channels * 2
//	34     2    16 (bits per sample)
//	36     4    "data"
//	40     4    data size = frames * channels * 2
//
// The raw transfer format is lossless: little-endian float32 samples laid out
// channel after channel (all of channel 0, then all of channel 1, ...). It
// carries no header, so the shape travels alongside the bytes. The history
// and clipboard store buffers in this format.
package codec
