// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

type fakeReader struct {
	data     []float32
	channels int
}

func (f *fakeReader) SampleRate() int { return 22050 }
func (f *fakeReader) Channels() int   { return f.channels }

func (f *fakeReader) Read(p []float32) (int, error) {
	if len(f.data) == 0 {
		return 0, io.EOF
	}
	n := copy(p, f.data)
	f.data = f.data[n:]
	return n, nil
}

func TestSource_ClampsAndAligns(t *testing.T) {
	t.Parallel()

	src := &source{dec: &fakeReader{data: []float32{0.5, 1.2, -1.5, 0}, channels: 2}}

	buf := make([]float32, 3) // one stray value beyond a whole frame
	n, err := src.ReadSamples(buf)
	if err != nil || n != 2 {
		t.Fatalf("ReadSamples() = %d, %v; want 2, nil", n, err)
	}
	if buf[0] != 0.5 || buf[1] != 1 {
		t.Errorf("first frame = %v", buf[:2])
	}

	n, _ = src.ReadSamples(buf)
	if n != 2 || buf[0] != -1 {
		t.Errorf("second frame = %v (n=%d)", buf[:n], n)
	}

	if n, err := src.ReadSamples(buf); n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("end = %d, %v", n, err)
	}
}

func TestDecoder_Invalid(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("OggS but not really")))
	if !errors.Is(err, ErrNotVorbis) {
		t.Errorf("error = %v, want ErrNotVorbis", err)
	}
}
