// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/wavedit/buffer"
	"github.com/ik5/wavedit/internal/pcm"
)

const (
	// HeaderSize is the fixed size of the container header.
	HeaderSize = 44

	formatPCM     = 1
	bitsPerSample = 16
	fmtChunkSize  = 16

	// frames per write when streaming the data chunk
	chunkFrames = 4096
)

// EncodeContainer returns the complete container for buf.
func EncodeContainer(buf *buffer.Buffer) ([]byte, error) {
	out := bytes.NewBuffer(make([]byte, 0, ContainerSize(buf)))
	if err := WriteContainer(out, buf); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// ContainerSize is the number of bytes EncodeContainer produces for buf.
func ContainerSize(buf *buffer.Buffer) int {
	return HeaderSize + buf.FrameCount()*buf.NumChannels()*2
}

// WriteContainer streams the container for buf to w.
func WriteContainer(w io.Writer, buf *buffer.Buffer) error {
	channels := buf.NumChannels()
	frames := buf.FrameCount()

	blockAlign := channels * bitsPerSample / 8
	byteRate := uint32(buf.SampleRate()) * uint32(blockAlign)
	dataSize := uint32(frames * blockAlign)

	header := make([]byte, HeaderSize)

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], fmtChunkSize)
	binary.LittleEndian.PutUint16(header[20:22], formatPCM)
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(buf.SampleRate()))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("write container header: %w", err)
	}

	if frames == 0 {
		return nil
	}

	out := make([]byte, min(frames, chunkFrames)*blockAlign)

	for start := 0; start < frames; start += chunkFrames {
		end := min(start+chunkFrames, frames)
		chunk := out[:(end-start)*blockAlign]

		off := 0
		for f := start; f < end; f++ {
			for c := range channels {
				binary.LittleEndian.PutUint16(chunk[off:off+2], uint16(pcm.ToInt16(buf.Channel(c)[f])))
				off += 2
			}
		}

		if _, err := w.Write(chunk); err != nil {
			return fmt.Errorf("write container samples: %w", err)
		}
	}

	return nil
}

// DecodeContainer parses a container produced by EncodeContainer. Only the
// canonical 44-byte layout is accepted.
func DecodeContainer(data []byte) (*buffer.Buffer, error) {
	if len(data) < HeaderSize {
		return nil, codecErr(ErrBadHeader, "need %d bytes, got %d", HeaderSize, len(data))
	}

	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, codecErr(ErrBadHeader, "missing RIFF/WAVE tags")
	}
	if string(data[12:16]) != "fmt " || string(data[36:40]) != "data" {
		return nil, codecErr(ErrBadHeader, "non-canonical chunk layout")
	}

	format := binary.LittleEndian.Uint16(data[20:22])
	channels := int(binary.LittleEndian.Uint16(data[22:24]))
	rate := int(binary.LittleEndian.Uint32(data[24:28]))
	bits := binary.LittleEndian.Uint16(data[34:36])
	dataSize := int(binary.LittleEndian.Uint32(data[40:44]))

	if format != formatPCM || bits != bitsPerSample {
		return nil, codecErr(ErrUnsupportedFormat, "format %d, %d bits", format, bits)
	}
	if channels < 1 || rate <= 0 {
		return nil, codecErr(ErrInvalidShape, "%d channels at %d Hz", channels, rate)
	}

	blockAlign := channels * 2
	if dataSize%blockAlign != 0 || HeaderSize+dataSize > len(data) {
		return nil, codecErr(ErrSizeMismatch, "data size %d, %d bytes available", dataSize, len(data)-HeaderSize)
	}

	frames := dataSize / blockAlign
	buf := buffer.New(channels, frames, rate)

	off := HeaderSize
	for f := range frames {
		for c := range channels {
			v := int16(binary.LittleEndian.Uint16(data[off : off+2]))
			buf.Channel(c)[f] = pcm.FromInt16(v)
			off += 2
		}
	}

	return buf, nil
}
