package ui

import (
	"context"
	"testing"
	"time"

	"vpet/internal/creature"
)

var epoch = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func testSpec(n int) creature.ClipSpec {
	frames := make([]string, n)
	for i := range frames {
		frames[i] = string(rune('a' + i))
	}
	return creature.ClipSpec{Loop: creature.LoopOnce, FrameDuration: 100 * time.Millisecond, Frames: frames}
}

func TestAnimationRepeatWraps(t *testing.T) {
	a := StartAnimation(creature.ClipIdle, testSpec(3), creature.LoopRepeat, epoch)

	tests := []struct {
		at   time.Duration
		want string
	}{
		{0, "a"},
		{150 * time.Millisecond, "b"},
		{250 * time.Millisecond, "c"},
		{300 * time.Millisecond, "a"},
		{1050 * time.Millisecond, "b"},
	}
	for _, tt := range tests {
		if a.Step(epoch.Add(tt.at)) {
			t.Errorf("repeating clip reported completion at %v", tt.at)
		}
		if got := a.Render(epoch.Add(tt.at)); got != tt.want {
			t.Errorf("frame at %v = %q, want %q", tt.at, got, tt.want)
		}
	}
}

func TestAnimationOnceCompletesOnce(t *testing.T) {
	a := StartAnimation(creature.ClipSleep, testSpec(2), creature.LoopOnce, epoch)

	if a.Step(epoch.Add(150 * time.Millisecond)) {
		t.Fatalf("completed before the last frame ended")
	}
	if !a.Step(epoch.Add(200 * time.Millisecond)) {
		t.Fatalf("expected completion after two frames")
	}
	if a.Step(epoch.Add(time.Second)) {
		t.Errorf("completion reported twice")
	}
	if !a.Complete() {
		t.Errorf("Complete() = false")
	}
	if got := GetAnimationFrame(a); got != "b" {
		t.Errorf("finished clip shows %q, want last frame", got)
	}
}

func TestAnimationHeldDoesNotMove(t *testing.T) {
	a := StartAnimation(creature.ClipIdle, testSpec(3), creature.LoopRepeat, epoch)
	a.Held = true
	a.Step(epoch.Add(time.Second))
	if got := GetAnimationFrame(a); got != "a" {
		t.Errorf("held clip moved to %q", got)
	}
}

func TestAnimationBlend(t *testing.T) {
	a := StartAnimation(creature.ClipPlay, testSpec(2), creature.LoopRepeat, epoch).
		WithBlend("old", 300*time.Millisecond)

	if got := a.Render(epoch.Add(100 * time.Millisecond)); got != "old" {
		t.Errorf("during blend got %q, want outgoing frame", got)
	}
	a.Step(epoch.Add(300 * time.Millisecond))
	if got := a.Render(epoch.Add(300 * time.Millisecond)); got != "b" {
		t.Errorf("after blend got %q, want %q", got, "b")
	}

	cold := StartAnimation(creature.ClipPlay, testSpec(2), creature.LoopRepeat, epoch).WithBlend("", time.Second)
	if cold.From != "" {
		t.Errorf("blend from nothing should be a cold start")
	}
}

func TestGetAnimationFrameBounds(t *testing.T) {
	a := Animation{Spec: testSpec(2), Frame: 100}
	if got := GetAnimationFrame(a); got != "b" {
		t.Errorf("out of range frame = %q, want last", got)
	}
	if got := GetAnimationFrame(Animation{}); got != "" {
		t.Errorf("empty clip frame = %q", got)
	}
}

func TestBuiltinClipsPlayForTheirDuration(t *testing.T) {
	c, err := creature.Builtin().Load(context.Background(), 1)
	if err != nil {
		t.Fatalf("loading builtin creature: %v", err)
	}
	spec := c.Clips[creature.ClipWakeup]
	a := StartAnimation(creature.ClipWakeup, spec, spec.Loop, epoch)

	if a.Step(epoch.Add(spec.Duration() - time.Millisecond)) {
		t.Errorf("wakeup finished early")
	}
	if !a.Step(epoch.Add(spec.Duration())) {
		t.Errorf("wakeup did not finish after %v", spec.Duration())
	}
}
