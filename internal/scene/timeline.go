package scene

import (
	"math"
	"time"
)

// RateFunc maps elapsed fraction of an animation to drawing progress.
type RateFunc func(alpha float64) float64

// Linear draws at constant speed.
func Linear(alpha float64) float64 { return clamp01(alpha) }

// Timeline is one animated segment of RunTime seconds followed by Hold
// seconds without changes.
type Timeline struct {
	FPS     int
	RunTime float64
	Hold    float64
	Rate    RateFunc
}

func NewTimeline(fps int, runTime, hold float64) Timeline {
	return Timeline{FPS: fps, RunTime: runTime, Hold: hold, Rate: Linear}
}

// Steps is F = round(RunTime*FPS). Frames 0..F are rendered, frame F at
// progress exactly 1.
func (tl Timeline) Steps() int {
	return max(1, int(math.Round(tl.RunTime*float64(tl.FPS))))
}

func (tl Timeline) Frames() int { return tl.Steps() + 1 }

func (tl Timeline) Progress(frame int) float64 {
	rate := tl.Rate
	if rate == nil {
		rate = Linear
	}
	return rate(float64(frame) / float64(tl.Steps()))
}

// FrameInterval is the display time of one animated frame.
func (tl Timeline) FrameInterval() time.Duration {
	return time.Duration(float64(time.Second) / float64(tl.FPS))
}

// Duration is the total playback time including the hold.
func (tl Timeline) Duration() time.Duration {
	return time.Duration((tl.RunTime + tl.Hold) * float64(time.Second))
}
