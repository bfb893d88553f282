package ui

import (
	"time"

	"vpet/internal/creature"
)

// Animation is the clip currently on screen.
type Animation struct {
	Clip      creature.Clip
	Spec      creature.ClipSpec
	Loop      creature.Loop
	StartTime time.Time
	Frame     int
	Held      bool // frozen on the first frame

	// During a crossfade the outgoing clip's frame stays up until BlendUntil.
	From       string
	BlendUntil time.Time

	done bool
}

// StartAnimation begins clip at now. A clip with no frames renders blank.
func StartAnimation(clip creature.Clip, spec creature.ClipSpec, loop creature.Loop, now time.Time) Animation {
	return Animation{
		Clip:      clip,
		Spec:      spec,
		Loop:      loop,
		StartTime: now,
	}
}

// WithBlend keeps from on screen for d before the new clip shows.
func (a Animation) WithBlend(from string, d time.Duration) Animation {
	if from == "" || d <= 0 {
		return a
	}
	a.From = from
	a.BlendUntil = a.StartTime.Add(d)
	return a
}

// Step moves the animation to now. It reports true exactly once, on the step
// where a play-once clip reaches its end.
func (a *Animation) Step(now time.Time) bool {
	if a.Held || a.done || len(a.Spec.Frames) == 0 || a.Spec.FrameDuration <= 0 {
		return false
	}
	elapsed := now.Sub(a.StartTime)
	if elapsed < 0 {
		return false
	}
	frame := int(elapsed / a.Spec.FrameDuration)
	n := len(a.Spec.Frames)

	if a.Loop == creature.LoopRepeat {
		a.Frame = frame % n
		return false
	}
	if frame >= n {
		a.Frame = n - 1
		a.done = true
		return true
	}
	a.Frame = frame
	return false
}

// Complete reports whether a play-once clip has ended.
func (a Animation) Complete() bool {
	return a.done
}

// Render returns the frame to draw at now.
func (a Animation) Render(now time.Time) string {
	if a.From != "" && now.Before(a.BlendUntil) {
		return a.From
	}
	return GetAnimationFrame(a)
}

// GetAnimationFrame returns the current frame of an animation.
func GetAnimationFrame(a Animation) string {
	frames := a.Spec.Frames
	if len(frames) == 0 {
		return ""
	}
	if a.Frame >= len(frames) {
		return frames[len(frames)-1]
	}
	if a.Frame < 0 {
		return frames[0]
	}
	return frames[a.Frame]
}
