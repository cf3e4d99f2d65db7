// SPDX-License-Identifier: EPL-2.0

// Package viewport maps pixels on a waveform surface to times in a buffer.
//
// The surface is PixelWidth pixels wide. At zoom z the virtual content is
// PixelWidth*z pixels wide and the scroll offset selects which part of it is
// visible. Every pixel/time conversion in the editor goes through
// VisibleWindow so that selection handles, the playhead and hit-testing
// agree with each other.
package viewport

import "math"

const (
	MinZoom = 1.0
	MaxZoom = 25.0

	// ZoomStep is the increment used by zoom buttons and the mouse wheel.
	ZoomStep = 0.1

	// minThumbPercent keeps the scrollbar thumb grabbable at high zoom.
	minThumbPercent = 10.0
)

// Viewport is the zoom and scroll state of one rendering surface.
type Viewport struct {
	width   float64
	zoom    float64
	scroll  float64
	minZoom float64
	maxZoom float64
	step    float64
}

// New returns a fully zoomed-out viewport for a surface of the given width.
func New(pixelWidth float64) *Viewport {
	return &Viewport{
		width:   math.Max(0, pixelWidth),
		zoom:    MinZoom,
		minZoom: MinZoom,
		maxZoom: MaxZoom,
		step:    ZoomStep,
	}
}

// SetLimits overrides the zoom range. Invalid ranges are ignored.
func (v *Viewport) SetLimits(minZoom, maxZoom float64) {
	if minZoom < 1 || maxZoom < minZoom {
		return
	}
	v.minZoom, v.maxZoom = minZoom, maxZoom
	v.zoom = v.clampZoom(v.zoom)
	v.scroll = v.clampScroll(v.scroll)
}

// SetStep sets the zoom change of one wheel notch. Non-positive values are
// ignored.
func (v *Viewport) SetStep(step float64) {
	if step > 0 {
		v.step = step
	}
}

func (v *Viewport) Zoom() float64         { return v.zoom }
func (v *Viewport) ScrollOffset() float64 { return v.scroll }
func (v *Viewport) Width() float64        { return v.width }

// ZoomPercent is the zoom level as a rounded percentage (1.0 -> 100).
func (v *Viewport) ZoomPercent() int { return int(math.Round(v.zoom * 100)) }

// CanZoomIn and CanZoomOut report whether the zoom limits allow another step.
func (v *Viewport) CanZoomIn() bool  { return v.zoom < v.maxZoom }
func (v *Viewport) CanZoomOut() bool { return v.zoom > v.minZoom }

// SetWidth resizes the surface and re-clamps the scroll offset.
func (v *Viewport) SetWidth(pixelWidth float64) {
	v.width = math.Max(0, pixelWidth)
	v.scroll = v.clampScroll(v.scroll)
}

// MaxScroll is the largest valid scroll offset at the current zoom.
func (v *Viewport) MaxScroll() float64 {
	return v.width * (v.zoom - 1)
}

// ScrollbarVisible reports whether there is anything to scroll.
func (v *Viewport) ScrollbarVisible() bool { return v.zoom > 1 }

// VisibleWindow returns the time range currently shown.
func (v *Viewport) VisibleWindow(duration float64) (start, end float64) {
	if v.width <= 0 || duration <= 0 {
		return 0, duration
	}
	start = (v.scroll / (v.width * v.zoom)) * duration
	return start, start + duration/v.zoom
}

// TimeAtPixel converts a surface x coordinate to a time.
func (v *Viewport) TimeAtPixel(x, duration float64) float64 {
	start, end := v.VisibleWindow(duration)
	if v.width <= 0 {
		return start
	}
	return start + (x/v.width)*(end-start)
}

// PixelAtTime converts a time to a surface x coordinate. Times outside the
// visible window map outside [0, width].
func (v *Viewport) PixelAtTime(t, duration float64) float64 {
	start, end := v.VisibleWindow(duration)
	if end <= start {
		return 0
	}
	return ((t - start) / (end - start)) * v.width
}

// PixelsToTime converts a horizontal pixel distance to a time span.
func (v *Viewport) PixelsToTime(dx, duration float64) float64 {
	start, end := v.VisibleWindow(duration)
	if v.width <= 0 {
		return 0
	}
	return (dx / v.width) * (end - start)
}

// ScrollTo sets the scroll offset, clamped to [0, MaxScroll()].
func (v *Viewport) ScrollTo(offset float64) {
	v.scroll = v.clampScroll(offset)
}

// SetZoomAt changes zoom while keeping the time under pixel x fixed. This is
// the mouse-wheel policy.
func (v *Viewport) SetZoomAt(zoom, x, duration float64) {
	if duration <= 0 || v.width <= 0 {
		v.zoom = v.clampZoom(zoom)
		v.scroll = 0
		return
	}

	pointerTime := v.TimeAtPixel(x, duration)

	v.zoom = v.clampZoom(zoom)
	visible := duration / v.zoom
	start := pointerTime - (x/v.width)*visible

	v.scroll = v.clampScroll((start / duration) * (v.width * v.zoom))
}

// SetZoomCentered changes zoom while keeping the center of the visible
// window fixed. This is the button and slider policy.
func (v *Viewport) SetZoomCentered(zoom, duration float64) {
	if duration <= 0 || v.width <= 0 {
		v.zoom = v.clampZoom(zoom)
		v.scroll = 0
		return
	}

	start, end := v.VisibleWindow(duration)
	center := start + (end-start)/2

	v.zoom = v.clampZoom(zoom)
	visible := duration / v.zoom
	newStart := math.Max(0, math.Min(center-visible/2, duration-visible))

	v.scroll = v.clampScroll((newStart / duration) * (v.width * v.zoom))
}

// AdjustZoom adds delta to the zoom using the centered policy.
func (v *Viewport) AdjustZoom(delta, duration float64) {
	v.SetZoomCentered(v.zoom+delta, duration)
}

// Wheel applies one mouse-wheel notch at pixel x. Scrolling up (deltaY < 0)
// zooms in.
func (v *Viewport) Wheel(deltaY, x, duration float64) {
	step := v.step
	if deltaY > 0 {
		step = -step
	}
	v.SetZoomAt(v.zoom+step, x, duration)
}

// Reset returns to zoom 1 with no scroll.
func (v *Viewport) Reset() {
	v.zoom = v.minZoom
	v.scroll = 0
}

// Thumb returns the scrollbar thumb geometry as percentages of the track.
func (v *Viewport) Thumb() (widthPercent, leftPercent float64) {
	widthPercent = math.Max(minThumbPercent, 100/v.zoom)
	if widthPercent > 100 {
		widthPercent = 100
	}

	maxScroll := v.MaxScroll()
	if maxScroll <= 0 {
		return widthPercent, 0
	}

	left := (v.scroll / maxScroll) * (100 - widthPercent)
	return widthPercent, math.Max(0, math.Min(left, 100-widthPercent))
}

// ScrollToThumb positions the content from a thumb offset in percent.
func (v *Viewport) ScrollToThumb(leftPercent float64) {
	widthPercent, _ := v.Thumb()
	maxLeft := 100 - widthPercent
	if maxLeft <= 0 {
		v.scroll = 0
		return
	}

	leftPercent = math.Max(0, math.Min(leftPercent, maxLeft))
	v.scroll = v.clampScroll((leftPercent / maxLeft) * v.MaxScroll())
}

func (v *Viewport) clampZoom(z float64) float64 {
	return math.Max(v.minZoom, math.Min(z, v.maxZoom))
}

func (v *Viewport) clampScroll(s float64) float64 {
	return math.Max(0, math.Min(s, v.MaxScroll()))
}
