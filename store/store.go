// SPDX-License-Identifier: EPL-2.0

// Package store persists the clip library and the current session record.
//
// The session record is opaque to the store; it is whatever
// session.SerializeState produced.
package store

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/ik5/wavedit/clip"
)

// ErrNoSession is returned by LoadSession when nothing has been saved.
var ErrNoSession = errors.New("no saved session")

// Store is the persistence collaborator.
type Store interface {
	SaveClips(ctx context.Context, clips []clip.Clip) error
	LoadClips(ctx context.Context) ([]clip.Clip, error)
	SaveSession(ctx context.Context, state []byte) error
	LoadSession(ctx context.Context) ([]byte, error)
}

// Memory keeps everything in memory. It is safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	clips   []clip.Clip
	session []byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) SaveClips(ctx context.Context, clips []clip.Clip) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.clips = slices.Clone(clips)

	return nil
}

func (m *Memory) LoadClips(ctx context.Context) ([]clip.Clip, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.clips), nil
}

func (m *Memory) SaveSession(ctx context.Context, state []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = slices.Clone(state)

	return nil
}

func (m *Memory) LoadSession(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return nil, ErrNoSession
	}
	return slices.Clone(m.session), nil
}
