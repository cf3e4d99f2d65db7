// SPDX-License-Identifier: EPL-2.0

package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/wavedit/buffer"
	"github.com/ik5/wavedit/codec"
	"github.com/ik5/wavedit/history"
	"github.com/ik5/wavedit/internal/audiotest"
	"github.com/ik5/wavedit/selection"
	"github.com/ik5/wavedit/store"
)

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func newSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	return New(append([]Option{WithLogger(quietLogger())}, opts...)...)
}

// loaded returns a session holding a one second ramp at 8 kHz.
func loaded(t *testing.T, opts ...Option) *Session {
	t.Helper()
	s := newSession(t, opts...)
	require.NoError(t, s.SetBuffer("ramp.mp3", audiotest.Ramp(1, 8000, 8000)))
	return s
}

func TestCutToClipboard(t *testing.T) {
	t.Parallel()

	s := loaded(t)
	s.SetSelection(0.25, 0.5)
	require.NoError(t, s.CutToClipboard())

	assert.Equal(t, 6000, s.FrameCount())
	assert.InDelta(t, 0.25, s.ClipboardDuration(), 1e-9)
	assert.True(t, s.Selection().IsEmpty())
	assert.Equal(t, []string{"cut to clipboard"}, s.HistoryLabels())
	assert.True(t, s.CanPaste())
}

func TestPasteAtCursor(t *testing.T) {
	t.Parallel()

	s := loaded(t)
	s.SetSelection(0.25, 0.5)
	require.NoError(t, s.Copy())
	assert.Equal(t, 8000, s.FrameCount(), "copy leaves the buffer alone")

	s.SetSelection(0.1, 0.1)
	require.NoError(t, s.Paste())

	assert.Equal(t, 10000, s.FrameCount())
	start, end := s.Selection().Normalized()
	assert.InDelta(t, 0.1, start, 1e-12)
	assert.InDelta(t, 0.35, end, 1e-12)

	buf := s.Buffer()
	orig := audiotest.Ramp(1, 8000, 8000).Channel(0)
	assert.Equal(t, orig[:800], buf.Channel(0)[:800])
	assert.Equal(t, orig[2000:4000], buf.Channel(0)[800:2800])
	assert.Equal(t, orig[800:], buf.Channel(0)[2800:])
}

func TestPasteReplacesRange(t *testing.T) {
	t.Parallel()

	s := loaded(t)
	s.SetSelection(0, 0.1)
	require.NoError(t, s.Copy())

	s.SetSelection(0.6, 0.5)
	require.NoError(t, s.Paste())

	assert.Equal(t, 8000-800+800, s.FrameCount())
	start, end := s.Selection().Normalized()
	assert.InDelta(t, 0.5, start, 1e-12)
	assert.InDelta(t, 0.6, end, 1e-12)
}

func TestEmptySelectionRejected(t *testing.T) {
	t.Parallel()

	for name, op := range map[string]func(*Session) error{
		"copy":   (*Session).Copy,
		"cut":    (*Session).CutToClipboard,
		"delete": (*Session).Delete,
		"trim":   (*Session).Extract,
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			for _, at := range []float64{0, 0.4} {
				s := loaded(t)
				s.SetSelection(at, at)

				err := op(s)
				require.ErrorIs(t, err, ErrInvalidSelection)
				require.ErrorIs(t, err, selection.ErrEmpty)
				assert.Equal(t, 8000, s.FrameCount())
				assert.False(t, s.CanUndo())
				assert.NotEmpty(t, s.Status())
			}
		})
	}
}

func TestSubFrameSelectionRejected(t *testing.T) {
	t.Parallel()

	s := loaded(t)
	s.SetSelection(0.00001, 0.00002)
	assert.False(t, s.CanEdit())

	for _, op := range []func() error{s.CutToClipboard, s.Copy, s.Delete, s.Extract} {
		err := op()
		require.ErrorIs(t, err, ErrInvalidSelection)
		require.ErrorIs(t, err, selection.ErrEmpty)
	}
	_, err := s.SaveClip("blip")
	require.ErrorIs(t, err, ErrInvalidSelection)

	assert.Equal(t, 8000, s.FrameCount())
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanPaste())
	require.ErrorIs(t, s.Paste(), ErrClipboardEmpty)
	assert.Empty(t, s.HistoryLabels())
}

func TestPasteErrors(t *testing.T) {
	t.Parallel()

	s := loaded(t)
	require.ErrorIs(t, s.Paste(), ErrClipboardEmpty)

	empty := newSession(t)
	require.ErrorIs(t, empty.Paste(), ErrNoBuffer)
	require.ErrorIs(t, empty.Export(io.Discard), ErrNoBuffer)
}

func TestPasteIncompatibleClipboard(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	require.NoError(t, s.SetBuffer("stereo", audiotest.Ramp(2, 800, 8000)))
	s.SetSelection(0, 0.05)
	require.NoError(t, s.Copy())

	require.NoError(t, s.SetBuffer("mono", audiotest.Ramp(1, 800, 8000)))
	err := s.Paste()
	require.Error(t, err)
	assert.Equal(t, 800, s.FrameCount())
}

func TestExtractResetsViewAndSelection(t *testing.T) {
	t.Parallel()

	s := loaded(t)
	s.SetWidth(1000)
	s.SetZoom(4)
	s.SetSelection(0.5, 0.25)
	require.NoError(t, s.Extract())

	assert.Equal(t, 2000, s.FrameCount())
	assert.InDelta(t, 1.0, s.Zoom(), 0)
	assert.Equal(t, selection.Selection{}, s.Selection())
}

func TestUndoRedoInverse(t *testing.T) {
	t.Parallel()

	s := loaded(t)
	original := s.Buffer()

	s.SetSelection(0.2, 0.3)
	before := s.Selection()
	require.NoError(t, s.Delete())
	afterDelete := s.Buffer()
	afterSel := s.Selection()

	require.NoError(t, s.Undo())
	assert.True(t, s.Buffer().Equal(original))
	assert.Equal(t, before, s.Selection())
	assert.True(t, s.CanRedo())

	require.NoError(t, s.Redo())
	assert.True(t, s.Buffer().Equal(afterDelete))
	assert.Equal(t, afterSel, s.Selection())

	require.NoError(t, s.Undo())
	require.ErrorIs(t, s.Undo(), history.ErrEmpty)
	assert.True(t, s.Buffer().Equal(original))
}

func TestNewEditClearsRedo(t *testing.T) {
	t.Parallel()

	s := loaded(t)
	s.SetSelection(0.1, 0.2)
	require.NoError(t, s.Delete())
	require.NoError(t, s.Undo())

	s.SetSelection(0.3, 0.4)
	require.NoError(t, s.Delete())
	assert.False(t, s.CanRedo())
	require.ErrorIs(t, s.Redo(), history.ErrEmpty)
}

func TestHistoryCapacity(t *testing.T) {
	t.Parallel()

	s := loaded(t, WithHistoryCapacity(3))
	for range 5 {
		s.SetSelection(0, 0.01)
		require.NoError(t, s.Delete())
	}
	assert.Len(t, s.HistoryLabels(), 3)
}

func TestGainPreviewDoesNotTouchBuffer(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	require.NoError(t, s.SetBuffer("c", audiotest.Constant(1, 8000, 8000, 0.25)))
	s.SetSelection(0.5, 0.5)

	require.NoError(t, s.BeginGain())
	peaks, err := s.PreviewGain(2)
	require.NoError(t, err)
	require.NotEmpty(t, peaks)
	assert.InDelta(t, 0.25, peaks[0], 1e-6)
	assert.InDelta(t, 2.0, s.GainFactor(), 0)

	v, err := s.Buffer().Sample(0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, v, 0, "preview must not modify the buffer")
	assert.False(t, s.CanUndo())

	s.CancelGain()
	assert.InDelta(t, 1.0, s.GainFactor(), 0)
}

func TestCommitGain(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	require.NoError(t, s.SetBuffer("c", audiotest.Constant(1, 8000, 8000, 0.5)))
	s.SetSelection(0, 0.5)

	_, err := s.PreviewGain(1.5)
	require.NoError(t, err)
	_, err = s.PreviewGain(3)
	require.NoError(t, err)
	require.NoError(t, s.CommitGain(3))

	buf := s.Buffer()
	assert.InDelta(t, 1.0, buf.Channel(0)[0], 0, "clamped")
	assert.InDelta(t, 0.5, buf.Channel(0)[4000], 0)
	assert.Equal(t, []string{"gain"}, s.HistoryLabels())

	require.NoError(t, s.CommitGain(1))
	assert.Len(t, s.HistoryLabels(), 1)

	require.Error(t, s.CommitGain(-1))

	require.NoError(t, s.Undo())
	assert.InDelta(t, 0.5, s.Buffer().Channel(0)[0], 0)
}

func TestFormatTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{0, "0:00.000"},
		{1.5, "0:01.500"},
		{61.25, "1:01.250"},
		{-3, "0:00.000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTime(tt.in))
	}
}

func TestExportContainer(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	require.NoError(t, s.SetBuffer("take1.ogg", audiotest.Constant(1, 80, 8000, 0)))
	assert.Equal(t, "take1.wav", s.Name())

	var out bytes.Buffer
	require.NoError(t, s.Export(&out))
	assert.Equal(t, codec.HeaderSize+160, out.Len())
}

func TestSetBufferRejectsRate(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	err := s.SetBuffer("x", buffer.New(1, 10, 44100))
	require.ErrorIs(t, err, ErrRateMismatch)
	assert.Nil(t, s.Buffer())
}

// gatedDecoder blocks decodes of the input "slow" until release is closed.
type gatedDecoder struct {
	release chan struct{}
	started chan struct{}
}

func (d *gatedDecoder) Decode(ctx context.Context, r io.Reader, _ string) (*buffer.Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	switch string(data) {
	case "slow":
		close(d.started)
		select {
		case <-d.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return audiotest.Constant(1, 100, 8000, 0.1), nil
	case "bad":
		return nil, errors.New("corrupt input")
	default:
		return audiotest.Constant(1, 200, 8000, 0.2), nil
	}
}

func TestLoadSuperseded(t *testing.T) {
	t.Parallel()

	dec := &gatedDecoder{release: make(chan struct{}), started: make(chan struct{})}
	s := newSession(t, WithDecoder(dec))

	slow := s.LoadAsync(context.Background(), "slow.wav", bytes.NewBufferString("slow"), "")
	<-dec.started

	assert.True(t, s.Loading())
	require.ErrorIs(t, s.SetBuffer("x", audiotest.Constant(1, 1, 8000, 0)), ErrLoadPending)
	assert.False(t, s.CanPaste())

	require.NoError(t, s.Load(context.Background(), "fast.wav", bytes.NewBufferString("fast"), ""))
	assert.Equal(t, 200, s.FrameCount())

	close(dec.release)
	select {
	case err := <-slow:
		require.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(5 * time.Second):
		t.Fatal("slow load did not finish")
	}

	assert.Equal(t, 200, s.FrameCount(), "superseded result must be discarded")
	assert.Equal(t, "fast.wav", s.Name())
	assert.False(t, s.Loading())
}

func TestLoadFailureKeepsBuffer(t *testing.T) {
	t.Parallel()

	dec := &gatedDecoder{}
	s := newSession(t, WithDecoder(dec))
	require.NoError(t, s.Load(context.Background(), "ok.mp3", bytes.NewBufferString("ok"), ""))

	err := s.Load(context.Background(), "bad.mp3", bytes.NewBufferString("bad"), "")
	require.ErrorIs(t, err, ErrDecode)
	assert.Equal(t, 200, s.FrameCount())
	assert.Equal(t, "ok.wav", s.Name())
	assert.False(t, s.Loading())
}

func TestLoadWithoutDecoder(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	err := s.Load(context.Background(), "a.wav", bytes.NewReader(nil), "")
	require.ErrorIs(t, err, ErrNoDecoder)
}

func TestDragSelection(t *testing.T) {
	t.Parallel()

	s := loaded(t, WithPixelWidth(1000))

	assert.Equal(t, selection.TargetNew, s.BeginDrag(200))
	s.DragTo(500)
	sel := s.EndDrag()
	start, end := sel.Normalized()
	assert.InDelta(t, 0.2, start, 1e-9)
	assert.InDelta(t, 0.5, end, 1e-9)

	assert.Equal(t, selection.TargetEnd, s.BeginDrag(505))
	s.DragTo(700)
	s.EndDrag()
	start, end = s.Selection().Normalized()
	assert.InDelta(t, 0.2, start, 1e-9)
	assert.InDelta(t, 0.7, end, 1e-9)

	assert.Equal(t, selection.TargetBody, s.BeginDrag(400))
	s.DragTo(1200)
	s.EndDrag()
	start, end = s.Selection().Normalized()
	assert.InDelta(t, 0.5, start, 1e-9)
	assert.InDelta(t, 1.0, end, 1e-9)
}

func TestWheelKeepsPointerTime(t *testing.T) {
	t.Parallel()

	s := loaded(t, WithPixelWidth(1000))
	before := s.TimeAtPixel(250)

	for range 10 {
		s.Wheel(-1, 250)
	}

	assert.InDelta(t, 2.0, s.Zoom(), 1e-9)
	assert.InDelta(t, before, s.TimeAtPixel(250), 1e-9)

	_, _, visible := s.Thumb()
	assert.True(t, visible)

	s.ResetZoom()
	assert.InDelta(t, 0, s.ScrollOffset(), 0)
	start, end := s.VisibleWindow()
	assert.InDelta(t, 0, start, 0)
	assert.InDelta(t, 1, end, 1e-12)
}

func TestWheelUsesConfiguredStep(t *testing.T) {
	t.Parallel()

	s := loaded(t, WithZoomStep(0.5))
	s.Wheel(-1, 500)
	assert.InDelta(t, 1.5, s.Zoom(), 1e-9)

	s.Wheel(1, 500)
	assert.InDelta(t, 1.0, s.Zoom(), 1e-9)
}

func TestClipLibrary(t *testing.T) {
	t.Parallel()

	s := loaded(t)
	s.SetSelection(0, 0.25)
	a, err := s.SaveClip("a")
	require.NoError(t, err)
	s.SetSelection(0.5, 0.75)
	b, err := s.SaveClip("b")
	require.NoError(t, err)

	require.NoError(t, s.MoveClipUp(b.ID))
	merged, err := s.MergeClips("", a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "merged 3", merged.Name)
	assert.Equal(t, 4000, merged.Frames)

	require.NoError(t, s.LoadClip(merged.ID))
	assert.Equal(t, 4000, s.FrameCount())
	assert.Equal(t, "merged 3.wav", s.Name())
	assert.False(t, s.CanUndo(), "loading a clip is not an edit")

	orig := audiotest.Ramp(1, 8000, 8000).Channel(0)
	got := s.Buffer().Channel(0)
	assert.Equal(t, orig[4000:6000], got[:2000], "b comes first after moving it up")
	assert.Equal(t, orig[:2000], got[2000:])

	require.NoError(t, s.CopyClip(a.ID))
	assert.InDelta(t, 0.25, s.ClipboardDuration(), 1e-9)

	var out bytes.Buffer
	require.NoError(t, s.ExportClip(a.ID, &out))
	assert.Equal(t, codec.HeaderSize+2000*2, out.Len())

	require.NoError(t, s.RenameClip(a.ID, "intro"))
	require.NoError(t, s.RemoveClip(b.ID))
	assert.Len(t, s.Clips(), 2)

	s.ClearClips()
	assert.Empty(t, s.Clips())
}

func TestPersistRoundTrip(t *testing.T) {
	t.Parallel()

	st := store.NewMemory()

	s := loaded(t)
	s.SetSelection(0.1, 0.2)
	_, err := s.SaveClip("keep")
	require.NoError(t, err)
	require.NoError(t, s.Delete())
	s.SetSelection(0.3, 0.4)
	require.NoError(t, s.Persist(context.Background(), st))

	restored := newSession(t)
	require.NoError(t, restored.RestoreFrom(context.Background(), st))

	assert.True(t, restored.Buffer().Equal(s.Buffer()))
	assert.Equal(t, s.Selection(), restored.Selection())
	assert.Equal(t, s.Name(), restored.Name())
	assert.Len(t, restored.Clips(), 1)
	assert.True(t, restored.CanUndo())

	require.NoError(t, restored.Undo())
	assert.Equal(t, 8000, restored.FrameCount())
}

func TestRestoreStateRejectsGarbage(t *testing.T) {
	t.Parallel()

	s := loaded(t)
	require.Error(t, s.RestoreState([]byte("{not json")))
	assert.Equal(t, 8000, s.FrameCount())

	bad := []byte(`{"current":{"data":"AAAA","sampleRate":8000,"channels":1,"frames":9}}`)
	require.ErrorIs(t, s.RestoreState(bad), codec.ErrCodec)
	assert.Equal(t, 8000, s.FrameCount())
}

func TestRestoreStateRejectsForeignRateHistory(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for name, st := range map[string]State{
		"undo": {
			Current: ptr(history.Take(audiotest.Ramp(1, 400, 8000), selection.Selection{}, "load", at)),
			Undo:    []history.Snapshot{history.Take(audiotest.Ramp(2, 100, 44100), selection.Selection{}, "cut", at)},
		},
		"redo": {
			Current: ptr(history.Take(audiotest.Ramp(1, 400, 8000), selection.Selection{}, "load", at)),
			Redo:    []history.Snapshot{history.Take(audiotest.Ramp(1, 100, 16000), selection.Selection{}, "delete", at)},
		},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			data, err := json.Marshal(st)
			require.NoError(t, err)

			s := loaded(t)
			require.ErrorIs(t, s.RestoreState(data), ErrRateMismatch)

			assert.Equal(t, 8000, s.FrameCount())
			assert.False(t, s.CanUndo())
			assert.False(t, s.CanRedo())
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestRestoreFromEmptyStore(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	require.NoError(t, s.RestoreFrom(context.Background(), store.NewMemory()))
	assert.Nil(t, s.Buffer())
}
