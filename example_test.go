// SPDX-License-Identifier: EPL-2.0

package wavedit_test

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/ik5/wavedit"
	"github.com/ik5/wavedit/codec"
	"github.com/ik5/wavedit/internal/audiotest"
	"github.com/ik5/wavedit/session"
)

// Example_editFile loads a 44.1 kHz stereo WAV into a session, cuts a
// quarter of a second to the clipboard and exports the result.
func Example_editFile() {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	log := logrus.NewEntry(logger)

	input, err := codec.EncodeContainer(audiotest.Sine(2, 44100, 44100, 440))
	if err != nil {
		fmt.Println(err)
		return
	}

	loader := wavedit.NewLoader(wavedit.WithMono(true), wavedit.WithLoaderLogger(log))
	sess := session.New(session.WithDecoder(loader), session.WithLogger(log))

	ctx := context.Background()
	if err := sess.Load(ctx, "tone.wav", bytes.NewReader(input), ""); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("loaded:", sess.FrameCount())

	sess.SetSelection(0.25, 0.5)
	if err := sess.CutToClipboard(); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("after cut:", sess.FrameCount())

	var out bytes.Buffer
	if err := sess.Export(&out); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("exported bytes:", out.Len())
	// Output:
	// loaded: 8000
	// after cut: 6000
	// exported bytes: 12044
}
