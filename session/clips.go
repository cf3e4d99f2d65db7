// SPDX-License-Identifier: EPL-2.0

package session

import (
	"fmt"
	"io"

	"github.com/ik5/wavedit/clip"
	"github.com/ik5/wavedit/codec"
	"github.com/ik5/wavedit/edit"
)

// Clips lists the library in order.
func (s *Session) Clips() []clip.Clip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.library.List()
}

// SaveClip stores the selected range in the library under name.
func (s *Session) SaveClip(name string) (clip.Clip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	const op = "SaveClip"

	if err := s.editable(); err != nil {
		return clip.Clip{}, s.reject(op, err)
	}
	start, end, err := s.requireRange()
	if err != nil {
		return clip.Clip{}, s.reject(op, err)
	}

	out, err := edit.Extract(s.buf, start, end)
	if err != nil {
		return clip.Clip{}, s.reject(op, fmt.Errorf("%w: %w", ErrInvalidSelection, err))
	}

	c, err := s.library.Add(name, start, end, out)
	if err != nil {
		return clip.Clip{}, s.reject(op, err)
	}
	s.done(op, fmt.Sprintf("saved clip %q (%s)", c.Name, FormatTime(c.Duration())))

	return c, nil
}

// CopyClip puts a library clip into the clipboard.
func (s *Session) CopyClip(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	const op = "CopyClip"

	c, err := s.library.Get(id)
	if err != nil {
		return s.reject(op, err)
	}
	buf, err := c.Buffer()
	if err != nil {
		return s.fail(op, err)
	}

	s.clipboard.Set(buf)
	s.done(op, fmt.Sprintf("copied clip %q", c.Name))

	return nil
}

// LoadClip makes a library clip the working buffer. Like Load it is not
// recorded in the history.
func (s *Session) LoadClip(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	const op = "LoadClip"

	if s.loading {
		return s.reject(op, ErrLoadPending)
	}
	c, err := s.library.Get(id)
	if err != nil {
		return s.reject(op, err)
	}
	if c.SampleRate != s.cfg.SampleRate {
		return s.reject(op, fmt.Errorf("%w: clip %q is %d Hz", ErrRateMismatch, c.Name, c.SampleRate))
	}
	buf, err := c.Buffer()
	if err != nil {
		return s.fail(op, err)
	}

	s.install(buf, c.Name+".wav", c.ID)
	s.done(op, fmt.Sprintf("loaded clip %q", c.Name))

	return nil
}

// MergeClips joins the given clips in library order and saves the result
// as a new clip. An empty name picks a numbered default.
func (s *Session) MergeClips(name string, ids ...string) (clip.Clip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	const op = "MergeClips"

	merged, err := s.library.Merge(ids...)
	if err != nil {
		return clip.Clip{}, s.reject(op, err)
	}
	if name == "" {
		name = fmt.Sprintf("merged %d", s.library.Len()+1)
	}

	c, err := s.library.Add(name, 0, merged.Duration(), merged)
	if err != nil {
		return clip.Clip{}, s.reject(op, err)
	}
	s.done(op, fmt.Sprintf("merged %d clips into %q", len(ids), c.Name))

	return c, nil
}

func (s *Session) RenameClip(id, name string) error {
	return s.withLibrary("RenameClip", func(l *clip.Library) error { return l.Rename(id, name) })
}

func (s *Session) MoveClipUp(id string) error {
	return s.withLibrary("MoveClipUp", func(l *clip.Library) error { return l.MoveUp(id) })
}

func (s *Session) MoveClipDown(id string) error {
	return s.withLibrary("MoveClipDown", func(l *clip.Library) error { return l.MoveDown(id) })
}

// RemoveClip deletes a clip. The working buffer stays even if it was
// loaded from that clip.
func (s *Session) RemoveClip(id string) error {
	return s.withLibrary("RemoveClip", func(l *clip.Library) error {
		if err := l.Remove(id); err != nil {
			return err
		}
		if s.clipID == id {
			s.clipID = ""
		}
		return nil
	})
}

// ClearClips empties the library.
func (s *Session) ClearClips() {
	_ = s.withLibrary("ClearClips", func(l *clip.Library) error {
		l.Clear()
		s.clipID = ""
		return nil
	})
}

func (s *Session) withLibrary(op string, fn func(*clip.Library) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.library); err != nil {
		return s.reject(op, err)
	}
	s.done(op, fmt.Sprintf("%d clips in library", s.library.Len()))

	return nil
}

// Export writes the working buffer as a 16-bit container.
func (s *Session) Export(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buf == nil {
		return s.reject("Export", ErrNoBuffer)
	}
	if err := codec.WriteContainer(w, s.buf); err != nil {
		return s.fail("Export", err)
	}
	s.done("Export", fmt.Sprintf("exported %s", s.name))

	return nil
}

// ExportClip writes a library clip as a 16-bit container.
func (s *Session) ExportClip(id string, w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.library.Get(id)
	if err != nil {
		return s.reject("ExportClip", err)
	}
	buf, err := c.Buffer()
	if err != nil {
		return s.fail("ExportClip", err)
	}
	if err := codec.WriteContainer(w, buf); err != nil {
		return s.fail("ExportClip", err)
	}
	s.done("ExportClip", fmt.Sprintf("exported clip %q", c.Name))

	return nil
}
