// SPDX-License-Identifier: EPL-2.0

// Package wavedit ties the editing engine to real audio files.
//
// The engine itself (packages buffer, codec, edit, history, peaks,
// selection, viewport and session) works on one canonical sample rate and
// never decodes foreign formats. Loader is the decoder collaborator that
// fills that gap: it looks the input format up in an audio.Registry,
// resamples the decoded stream to the engine rate, optionally mixes it down
// to mono and collects it into a buffer.Buffer.
//
// # Supported Formats
//
//   - WAV (PCM 8/16/24/32-bit) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF (PCM 8/16/24/32-bit) via formats/aiff
//
// # Quick Start
//
//	loader := wavedit.NewLoader()
//	sess := session.New(session.WithDecoder(loader))
//
//	f, _ := os.Open("voice.mp3")
//	defer f.Close()
//
//	if err := sess.Load(ctx, "voice.mp3", f, ""); err != nil {
//	    return err
//	}
//
// A Loader can be used on its own as well:
//
//	buf, err := loader.Decode(ctx, f, "mp3")
//
// # Sample Rate
//
// The default target rate is 8000 Hz, matching session.DefaultSampleRate.
// Both must agree; use WithTargetRate and session.WithSampleRate together
// when changing it.
package wavedit
