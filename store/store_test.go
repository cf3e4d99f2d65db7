// SPDX-License-Identifier: EPL-2.0

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/wavedit/clip"
)

func sampleClips() []clip.Clip {
	return []clip.Clip{
		{ID: "a", Name: "first", Start: 0.1, End: 0.2, SampleRate: 8000, Channels: 1, Frames: 1, Data: []byte{0, 0, 0x80, 0x3f}, Order: 0},
		{ID: "b", Name: "second", SampleRate: 8000, Channels: 1, Order: 1},
	}
}

func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	clips, err := s.LoadClips(ctx)
	require.NoError(t, err)
	assert.Empty(t, clips)

	_, err = s.LoadSession(ctx)
	require.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, s.SaveClips(ctx, sampleClips()))
	clips, err = s.LoadClips(ctx)
	require.NoError(t, err)
	require.Len(t, clips, 2)
	assert.Equal(t, sampleClips()[0], clips[0])
	assert.Equal(t, "second", clips[1].Name)

	require.NoError(t, s.SaveSession(ctx, []byte(`{"selectedClipId":"a"}`)))
	state, err := s.LoadSession(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"selectedClipId":"a"}`, string(state))

	require.NoError(t, s.SaveClips(ctx, nil))
	clips, err = s.LoadClips(ctx)
	require.NoError(t, err)
	assert.Empty(t, clips)
}

func TestMemory(t *testing.T) {
	t.Parallel()
	testStore(t, NewMemory())
}

func TestFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := NewFile(dir)
	require.NoError(t, err)
	testStore(t, s)

	reopened, err := NewFile(dir)
	require.NoError(t, err)
	state, err := reopened.LoadSession(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"selectedClipId":"a"}`, string(state))
}

func TestCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewMemory()
	require.ErrorIs(t, s.SaveSession(ctx, nil), context.Canceled)
	_, err := s.LoadClips(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
