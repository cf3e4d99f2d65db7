// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

// fakeReader serves 16-bit stereo PCM in reads of at most chunk bytes.
type fakeReader struct {
	data  []byte
	chunk int
	err   error
}

func (f *fakeReader) SampleRate() int { return 44100 }

func (f *fakeReader) Read(p []byte) (int, error) {
	if len(f.data) == 0 {
		if f.err != nil {
			return 0, f.err
		}
		return 0, io.EOF
	}
	n := copy(p[:min(len(p), f.chunk)], f.data)
	f.data = f.data[n:]
	return n, nil
}

func pcmBytes(samples ...int16) []byte {
	var buf bytes.Buffer
	for _, s := range samples {
		_ = binary.Write(&buf, binary.LittleEndian, s)
	}
	return buf.Bytes()
}

func TestSource_ReadsOddChunks(t *testing.T) {
	t.Parallel()

	in := []int16{0, 16384, -16384, -32768, 8192, -8192}
	src := &source{dec: &fakeReader{data: pcmBytes(in...), chunk: 3}}

	if src.Channels() != 2 || src.SampleRate() != 44100 {
		t.Fatalf("format = %d ch %d Hz", src.Channels(), src.SampleRate())
	}

	var got []float32
	buf := make([]float32, 4)
	for {
		n, err := src.ReadSamples(buf)
		got = append(got, buf[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
	}

	want := []float32{0, 0.5, -0.5, -1, 0.25, -0.25}
	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSource_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	src := &source{dec: &fakeReader{chunk: 8, err: boom}}

	if _, err := src.ReadSamples(make([]float32, 8)); !errors.Is(err, boom) {
		t.Errorf("error = %v, want boom", err)
	}
}

func TestDecoder_Invalid(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("this is not an mp3 stream")))
	if !errors.Is(err, ErrNotMP3) {
		t.Errorf("error = %v, want ErrNotMP3", err)
	}
}
