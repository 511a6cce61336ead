// Package timeline maps pointer positions to timeline times and edits the
// section and track lists of a scene timeline.
//
// Every function here is pure: slices are copied, never modified in place.
package timeline

import (
	"fmt"
	"math"
)

const (
	MinZoom  = 0.1
	MaxZoom  = 4.0
	ZoomStep = 0.5

	// Snap is the resolution of mapped times, in seconds.
	Snap = 0.5
)

// Rect is the horizontal extent of the rendered timeline.
type Rect struct {
	Left  float64
	Width float64
}

// VisibleDuration is how many seconds fit in the rendered width at zoom.
func VisibleDuration(duration, zoom float64) float64 {
	return duration / zoom
}

// TimeAt maps pointerX to a time snapped to the nearest half second. Ties
// round up, toward positive infinity, on both sides of zero.
// The result is not clamped: a pointer outside rect gives a time outside
// [0, duration], and callers pick their own clamping policy.
func TimeAt(pointerX float64, rect Rect, zoom, duration float64) float64 {
	raw := (pointerX - rect.Left) / rect.Width * VisibleDuration(duration, zoom)
	return math.Floor(raw/Snap+0.5) * Snap
}

func Clamp(t, duration float64) float64 {
	return math.Max(0, math.Min(t, duration))
}

// PlayheadAt is where a click on the ruler puts the playhead.
func PlayheadAt(pointerX float64, rect Rect, zoom, duration float64) float64 {
	return Clamp(TimeAt(pointerX, rect, zoom, duration), duration)
}

// DropAt is the start time of an asset dropped at pointerX. It is
// deliberately unclamped.
func DropAt(pointerX float64, rect Rect, zoom, duration float64) float64 {
	return TimeAt(pointerX, rect, zoom, duration)
}

func ZoomIn(zoom float64) float64 {
	return math.Min(zoom+ZoomStep, MaxZoom)
}

func ZoomOut(zoom float64) float64 {
	return math.Max(zoom-ZoomStep, MinZoom)
}

// MarkerInterval is the spacing of ruler markers in seconds.
func MarkerInterval(zoom float64) float64 {
	switch {
	case zoom >= 3:
		return 1
	case zoom >= 1.5:
		return 5
	default:
		return 10
	}
}

// Markers lists the ruler marker times from 0 through the visible duration.
func Markers(duration, zoom float64) []float64 {
	visible := VisibleDuration(duration, zoom)
	interval := MarkerInterval(zoom)

	var out []float64
	for i := 0; ; i++ {
		t := float64(i) * interval
		if t > visible {
			break
		}
		out = append(out, t)
	}
	return out
}

// FormatTime renders seconds as m:ss.
func FormatTime(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	mins := int(seconds / 60)
	secs := int(math.Mod(seconds, 60))
	return fmt.Sprintf("%d:%02d", mins, secs)
}
