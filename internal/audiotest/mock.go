// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides deterministic sources and buffers for tests.
package audiotest

import (
	"errors"
	"io"
	"math"
)

// ErrInjected is returned by a MockSource configured to fail.
var ErrInjected = errors.New("injected read failure")

// MockSource generates interleaved audio on demand. It satisfies
// audio.Source without importing it.
type MockSource struct {
	sampleRate int
	channels   int
	frames     int // frames per channel to generate
	generated  int
	failAfter  int // fail once this many frames were produced; -1 never
	closed     bool
	waveform   func(frame, channel int) float32
}

// NewMockSource creates a source of frames frames computed by waveform.
func NewMockSource(sampleRate, channels, frames int, waveform func(frame, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		failAfter:  -1,
		waveform:   waveform,
	}
}

// NewSilentSource generates zeros.
func NewSilentSource(sampleRate, channels, frames int) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 { return 0 })
}

// NewSineSource generates the same sine on every channel.
func NewSineSource(sampleRate, channels, frames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource generates value on every channel.
func NewConstantSource(sampleRate, channels, frames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 { return value })
}

// FailAfter makes ReadSamples return ErrInjected once n frames were read.
func (m *MockSource) FailAfter(n int) *MockSource {
	m.failAfter = n
	return m
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Closed() bool    { return m.closed }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Reset rewinds the source.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.failAfter >= 0 && m.generated >= m.failAfter {
		return 0, ErrInjected
	}
	if m.generated >= m.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/m.channels, m.frames-m.generated)
	if m.failAfter >= 0 {
		n = min(n, m.failAfter-m.generated)
	}

	for f := range n {
		frame := m.generated + f
		for c := range m.channels {
			dst[f*m.channels+c] = m.waveform(frame, c)
		}
	}

	m.generated += n
	if m.generated >= m.frames {
		return n * m.channels, io.EOF
	}

	return n * m.channels, nil
}
