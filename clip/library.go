// SPDX-License-Identifier: EPL-2.0

package clip

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/ik5/wavedit/buffer"
	"github.com/ik5/wavedit/codec"
	"github.com/ik5/wavedit/edit"
)

// Clip is one named entry of the library. Start and End are the offsets
// in the source buffer the clip was taken from.
type Clip struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Start      float64 `json:"startOffset"`
	End        float64 `json:"endOffset"`
	SampleRate int     `json:"sampleRate"`
	Channels   int     `json:"channelCount"`
	Frames     int     `json:"frames"`
	Data       []byte  `json:"rawBytes"`
	Order      int     `json:"order"`
}

// Duration is the length of the clip in seconds.
func (c Clip) Duration() float64 {
	if c.SampleRate <= 0 {
		return 0
	}
	return float64(c.Frames) / float64(c.SampleRate)
}

// Buffer decodes a fresh copy of the clip audio.
func (c Clip) Buffer() (*buffer.Buffer, error) {
	buf, err := codec.DecodeRaw(c.Data, c.Channels, c.Frames, c.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("clip %q: %w", c.Name, err)
	}
	return buf, nil
}

// Library is an ordered list of clips.
type Library struct {
	clips []Clip
	newID func() string
}

// NewLibrary returns an empty library that assigns random UUIDs.
func NewLibrary() *Library {
	return &Library{newID: uuid.NewString}
}

// Add stores a copy of buf under name and returns the new clip.
func (l *Library) Add(name string, start, end float64, buf *buffer.Buffer) (Clip, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Clip{}, ErrEmptyName
	}

	c := Clip{
		ID:         l.newID(),
		Name:       name,
		Start:      start,
		End:        end,
		SampleRate: buf.SampleRate(),
		Channels:   buf.NumChannels(),
		Frames:     buf.FrameCount(),
		Data:       codec.EncodeRaw(buf),
	}
	l.clips = append(l.clips, c)
	l.renumber()

	return l.clips[len(l.clips)-1], nil
}

// Get returns the clip with the given id.
func (l *Library) Get(id string) (Clip, error) {
	i := l.index(id)
	if i < 0 {
		return Clip{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return l.clips[i], nil
}

// List returns the clips in library order.
func (l *Library) List() []Clip {
	return slices.Clone(l.clips)
}

func (l *Library) Len() int { return len(l.clips) }

// Rename changes the name of a clip.
func (l *Library) Rename(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	i := l.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	l.clips[i].Name = name

	return nil
}

// MoveUp swaps a clip with its predecessor. Moving the first clip is a
// no-op.
func (l *Library) MoveUp(id string) error {
	return l.move(id, -1)
}

// MoveDown swaps a clip with its successor. Moving the last clip is a
// no-op.
func (l *Library) MoveDown(id string) error {
	return l.move(id, 1)
}

func (l *Library) move(id string, delta int) error {
	i := l.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	j := i + delta
	if j < 0 || j >= len(l.clips) {
		return nil
	}
	l.clips[i], l.clips[j] = l.clips[j], l.clips[i]
	l.renumber()

	return nil
}

// Remove deletes a clip.
func (l *Library) Remove(id string) error {
	i := l.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	l.clips = slices.Delete(l.clips, i, i+1)
	l.renumber()

	return nil
}

// Clear drops every clip.
func (l *Library) Clear() {
	l.clips = nil
}

// Replace loads clips from persistence, ordered by their Order field.
func (l *Library) Replace(clips []Clip) {
	l.clips = slices.Clone(clips)
	slices.SortStableFunc(l.clips, func(a, b Clip) int { return a.Order - b.Order })
	l.renumber()
}

// Merge concatenates the given clips in library order, not in the order
// of ids, and returns the joined audio.
func (l *Library) Merge(ids ...string) (*buffer.Buffer, error) {
	if len(ids) < 2 {
		return nil, ErrTooFew
	}

	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		if l.index(id) < 0 {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		want[id] = true
	}

	var (
		parts []*buffer.Buffer
		first Clip
	)
	for _, c := range l.clips {
		if !want[c.ID] {
			continue
		}
		if len(parts) == 0 {
			first = c
		} else if c.Channels != first.Channels || c.SampleRate != first.SampleRate {
			return nil, fmt.Errorf("%w: %q is %d ch @ %d Hz, %q is %d ch @ %d Hz",
				ErrIncompatible, first.Name, first.Channels, first.SampleRate, c.Name, c.Channels, c.SampleRate)
		}

		buf, err := c.Buffer()
		if err != nil {
			return nil, err
		}
		parts = append(parts, buf)
	}

	return edit.Concat(parts...)
}

func (l *Library) index(id string) int {
	return slices.IndexFunc(l.clips, func(c Clip) bool { return c.ID == id })
}

func (l *Library) renumber() {
	for i := range l.clips {
		l.clips[i].Order = i
	}
}
