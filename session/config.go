// SPDX-License-Identifier: EPL-2.0

package session

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ik5/wavedit/history"
	"github.com/ik5/wavedit/peaks"
	"github.com/ik5/wavedit/viewport"
)

// Default configuration values.
const (
	DefaultSampleRate      = 8000
	DefaultPixelWidth      = 1000
	DefaultHandleTolerance = 8
)

// Config holds the session settings.
type Config struct {
	SampleRate      int
	HistoryCapacity int
	PeakTarget      int
	MinZoom         float64
	MaxZoom         float64
	ZoomStep        float64
	PixelWidth      float64
	// HandleTolerance is the selection handle grab radius in pixels.
	HandleTolerance float64

	Logger  *logrus.Entry
	Now     func() time.Time
	Decoder Decoder
}

// DefaultConfig returns the default settings.
func DefaultConfig() Config {
	return Config{
		SampleRate:      DefaultSampleRate,
		HistoryCapacity: history.DefaultCapacity,
		PeakTarget:      peaks.DefaultTarget,
		MinZoom:         viewport.MinZoom,
		MaxZoom:         viewport.MaxZoom,
		ZoomStep:        viewport.ZoomStep,
		PixelWidth:      DefaultPixelWidth,
		HandleTolerance: DefaultHandleTolerance,
		Logger:          logrus.NewEntry(logrus.StandardLogger()),
		Now:             time.Now,
	}
}

// Option modifies a Config.
type Option func(*Config)

// WithSampleRate sets the engine rate every loaded buffer must have.
func WithSampleRate(rate int) Option {
	return func(c *Config) {
		if rate > 0 {
			c.SampleRate = rate
		}
	}
}

// WithHistoryCapacity sets the number of undo steps kept.
func WithHistoryCapacity(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.HistoryCapacity = n
		}
	}
}

// WithPeakTarget sets the peak cache resolution.
func WithPeakTarget(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.PeakTarget = n
		}
	}
}

// WithZoomRange sets the zoom limits.
func WithZoomRange(minZoom, maxZoom float64) Option {
	return func(c *Config) {
		if minZoom >= 1 && maxZoom >= minZoom {
			c.MinZoom, c.MaxZoom = minZoom, maxZoom
		}
	}
}

// WithZoomStep sets the zoom increment of buttons and the wheel.
func WithZoomStep(step float64) Option {
	return func(c *Config) {
		if step > 0 {
			c.ZoomStep = step
		}
	}
}

// WithPixelWidth sets the rendering surface width.
func WithPixelWidth(w float64) Option {
	return func(c *Config) {
		if w > 0 {
			c.PixelWidth = w
		}
	}
}

// WithHandleTolerance sets the selection handle grab radius in pixels.
func WithHandleTolerance(px float64) Option {
	return func(c *Config) {
		if px >= 0 {
			c.HandleTolerance = px
		}
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *logrus.Entry) Option {
	return func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// WithClock sets the clock used to timestamp history snapshots.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		if now != nil {
			c.Now = now
		}
	}
}

// WithDecoder sets the collaborator used by Load.
func WithDecoder(d Decoder) Option {
	return func(c *Config) {
		c.Decoder = d
	}
}

func applyOptions(opts []Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
