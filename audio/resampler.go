// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/wavedit/internal/pcm"
)

// lowPassAlpha is the coefficient of the one-pole smoothing applied to the
// input when downsampling.
const lowPassAlpha = 0.5

// Resampler streams src at a new sample rate using cubic interpolation.
// The channel count is preserved. Output frame k is taken at source
// position k*srcRate/dstRate, computed exactly, so n source frames produce
// ceil(n*dstRate/srcRate) output frames.
type Resampler struct {
	src      Source
	srcRate  int64
	dstRate  int64
	channels int

	// win[1] is source frame base; win[0], win[2] and win[3] are its
	// neighbours. Frames past the end repeat the last real one.
	win    [4][]float32
	real   [4]bool
	primed bool
	base   int64
	out    int64

	in     []float32
	inOff  int
	inLen  int
	srcEOF bool

	smooth     []float32 // nil unless downsampling
	smoothInit bool
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := max(src.Channels(), 1)

	r := &Resampler{
		src:      src,
		srcRate:  int64(max(src.SampleRate(), 1)),
		dstRate:  int64(max(dstRate, 1)),
		channels: channels,
		in:       make([]float32, max(src.BufSize(), 1)*channels),
	}
	for i := range r.win {
		r.win[i] = make([]float32, channels)
	}
	if r.srcRate > r.dstRate {
		r.smooth = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return int(r.dstRate) }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("close resampler source: %w", err)
	}
	return nil
}

// ReadSamples produces interleaved samples at the target rate. len(dst)
// must be a multiple of Channels().
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		num := r.out * r.srcRate
		for target := num / r.dstRate; r.base < target && r.real[1]; r.base++ {
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}
		if !r.real[1] {
			return written * r.channels, io.EOF
		}

		x := float32(float64(num%r.dstRate) / float64(r.dstRate))
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = pcm.Cubic(r.win[0][c], r.win[1][c], r.win[2][c], r.win[3][c], x)
		}

		written++
		r.out++
	}

	return written * r.channels, nil
}

// prime loads the first frame and its lookahead.
func (r *Resampler) prime() error {
	ok, err := r.readFrame(r.win[1])
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}

	copy(r.win[0], r.win[1])
	r.real[1] = true

	for i := 2; i < 4; i++ {
		if r.real[i], err = r.readFrame(r.win[i]); err != nil {
			return err
		}
		if !r.real[i] {
			copy(r.win[i], r.win[i-1])
		}
	}
	r.primed = true

	return nil
}

// advance shifts the window by one source frame.
func (r *Resampler) advance() error {
	first := r.win[0]
	copy(r.win[:], r.win[1:])
	copy(r.real[:], r.real[1:])
	r.win[3] = first

	ok, err := r.readFrame(r.win[3])
	if err != nil {
		return err
	}
	r.real[3] = ok
	if !ok {
		copy(r.win[3], r.win[2])
	}

	return nil
}

// readFrame copies the next source frame into f. It reports false at the
// end of the stream.
func (r *Resampler) readFrame(f []float32) (bool, error) {
	for r.inOff+r.channels > r.inLen {
		if r.srcEOF {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.in)
		r.inOff, r.inLen = 0, n-n%r.channels
		if errors.Is(err, io.EOF) {
			r.srcEOF = true
		} else if err != nil {
			return false, fmt.Errorf("resampler read: %w", err)
		}
	}

	copy(f, r.in[r.inOff:r.inOff+r.channels])
	r.inOff += r.channels

	if r.smooth != nil {
		if !r.smoothInit {
			copy(r.smooth, f)
			r.smoothInit = true
		}
		for c := range f {
			f[c] = lowPassAlpha*f[c] + (1-lowPassAlpha)*r.smooth[c]
			r.smooth[c] = f[c]
		}
	}

	return true, nil
}
