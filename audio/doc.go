// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming plumbing between format decoders
// and the editor's in-memory buffers.
//
// # Source Interface
//
// Every decoder produces a Source of interleaved float32 samples in
// [-1.0, 1.0]. Sources chain: a Resampler or MonoMixer wraps another
// Source and is one itself.
//
//	src, _ := wav.Decoder{}.Decode(f)
//	src = audio.NewResampler(audio.NewMonoMixer(src), 8000)
//	buf, err := audio.ReadAll(ctx, src, 0)
//
// # Resampling
//
// The Resampler converts the sample rate with cubic interpolation and a
// one-pole smoothing stage when downsampling. Source positions are
// computed with integer arithmetic, so the output length is exactly
// ceil(frames*dstRate/srcRate).
//
// # Format Registry
//
// The Registry maps case-insensitive format keys to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register(wav.Decoder{}, "wav", "wave")
//	dec, err := registry.Lookup("WAV")
//
// # End of Stream
//
// ReadSamples may return the final samples together with io.EOF; callers
// consume n before checking err.
package audio
