// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/wavedit/audio"
	"github.com/ik5/wavedit/codec"
	"github.com/ik5/wavedit/internal/audiotest"
)

// encodeFile writes data with the go-audio encoder and returns the file
// contents.
func encodeFile(t *testing.T, rate, depth, channels int, data []int) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "in.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	enc := gowav.NewEncoder(f, rate, depth, channels, formatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		Data:           data,
		SourceBitDepth: depth,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	out, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestDecoder_ContainerRoundTrip(t *testing.T) {
	t.Parallel()

	want := audiotest.Ramp(2, 300, 8000)
	data, err := codec.EncodeContainer(want)
	if err != nil {
		t.Fatal(err)
	}

	// io.Reader without Seek exercises the buffering path
	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.SampleRate() != 8000 || src.Channels() != 2 {
		t.Fatalf("format = %d Hz %d ch", src.SampleRate(), src.Channels())
	}

	got, err := audio.ReadAll(context.Background(), src, 100)
	if err != nil {
		t.Fatal(err)
	}

	ref, err := codec.DecodeContainer(data)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(ref) {
		t.Error("decoded samples differ from the container decoder")
	}
}

func TestDecoder_BitDepths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		depth int
		data  []int
		want  []float32
	}{
		{8, []int{128, 192, 0}, []float32{0, 0.5, -1}},
		{16, []int{0, -32768, 32767}, []float32{0, -1, 1}},
		{24, []int{0, 4194304, -8388608}, []float32{0, 0.5, -1}},
		{32, []int{0, 1073741824, -2147483648}, []float32{0, 0.5, -1}},
	}

	for _, tt := range tests {
		src, err := Decoder{}.Decode(bytes.NewReader(encodeFile(t, 16000, tt.depth, 1, tt.data)))
		if err != nil {
			t.Fatalf("%d-bit: Decode() error = %v", tt.depth, err)
		}

		got, err := audio.ReadAll(context.Background(), src, 0)
		if err != nil {
			t.Fatalf("%d-bit: %v", tt.depth, err)
		}
		if got.SampleRate() != 16000 {
			t.Errorf("%d-bit: rate = %d", tt.depth, got.SampleRate())
		}

		ch := got.Channel(0)
		if len(ch) != len(tt.want) {
			t.Fatalf("%d-bit: %d frames, want %d", tt.depth, len(ch), len(tt.want))
		}
		for i := range ch {
			if ch[i] != tt.want[i] {
				t.Errorf("%d-bit: sample %d = %v, want %v", tt.depth, i, ch[i], tt.want[i])
			}
		}
	}
}

func TestDecoder_Rejects(t *testing.T) {
	t.Parallel()

	floatWAV := encodeFile(t, 8000, 16, 1, []int{1, 2, 3})
	floatWAV[20] = 3 // IEEE float format tag

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"garbage", []byte("definitely not a riff file at all, just some text padding"), ErrNotWavFile},
		{"empty", nil, ErrNotWavFile},
		{"float", floatWAV, ErrUnsupportedEncoding},
	}

	for _, tt := range tests {
		_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: error = %v, want %v", tt.name, err, tt.want)
		}
	}
}

func ExampleDecoder() {
	buf := audiotest.Constant(1, 80, 8000, 0.5)
	data, _ := codec.EncodeContainer(buf)

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		panic(err)
	}
	decoded, _ := audio.ReadAll(context.Background(), src, 0)

	fmt.Println(decoded.SampleRate(), decoded.NumChannels(), decoded.FrameCount())
	// Output: 8000 1 80
}
