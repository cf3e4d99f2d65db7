// SPDX-License-Identifier: EPL-2.0

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/ik5/wavedit/clip"
)

const (
	clipsFile   = "clips.json"
	sessionFile = "session.json"
)

// File keeps the clip list and the session record as JSON files in a
// directory. Writes go to a temporary file that is then renamed.
type File struct {
	mu  sync.Mutex
	dir string
}

// NewFile returns a store rooted at dir, creating it if needed.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &File{dir: dir}, nil
}

func (f *File) SaveClips(ctx context.Context, clips []clip.Clip) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if clips == nil {
		clips = []clip.Clip{}
	}

	data, err := json.Marshal(clips)
	if err != nil {
		return fmt.Errorf("encode clips: %w", err)
	}
	return f.write(clipsFile, data)
}

func (f *File) LoadClips(ctx context.Context) ([]clip.Clip, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := f.read(clipsFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var clips []clip.Clip
	if err := json.Unmarshal(data, &clips); err != nil {
		return nil, fmt.Errorf("decode clips: %w", err)
	}
	return clips, nil
}

func (f *File) SaveSession(ctx context.Context, state []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.write(sessionFile, state)
}

func (f *File) LoadSession(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := f.read(sessionFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoSession
	}
	return data, err
}

func (f *File) read(name string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return os.ReadFile(filepath.Join(f.dir, name))
}

func (f *File) write(name string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	tmp, err := os.CreateTemp(f.dir, name+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	return os.Rename(tmp.Name(), filepath.Join(f.dir, name))
}
