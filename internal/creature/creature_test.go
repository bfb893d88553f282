package creature

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"testing"
	"testing/fstest"
	"time"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

const brokenManifest = `
creatures:
  - id: 7
    name: Halfling
    color: "#00FF00"
    clips:
      idle:
        loop: repeat
        frame_duration: 100ms
        frames: ["o"]
      punch:
        loop: repeat
        frame_duration: 100ms
        frames: ["o"]
`

func TestBuiltinCatalogLoadsEveryCreature(t *testing.T) {
	cat := Builtin()
	entries, err := cat.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 creatures, got %d", len(entries))
	}
	if entries[0].Name != "Mosasaur" || entries[1].Name != "Mikie" {
		t.Errorf("Unexpected catalog order: %+v", entries)
	}

	for _, e := range entries {
		cr, err := cat.Load(context.Background(), e.ID)
		if err != nil {
			t.Fatalf("Load(%d) error: %v", e.ID, err)
		}
		for _, clip := range RequiredClips {
			if len(cr.Clips[clip].Frames) == 0 {
				t.Errorf("%s: clip %s has no frames", cr.Name, clip)
			}
		}
	}
}

func TestBuiltinClipTimings(t *testing.T) {
	cr, err := Builtin().Load(context.Background(), 1)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	tests := []struct {
		clip Clip
		loop Loop
		want time.Duration
	}{
		{ClipSleep, LoopOnce, 500 * time.Millisecond},
		{ClipWakeup, LoopOnce, 4900 * time.Millisecond},
		{ClipPunch, LoopRepeat, time.Second},
		{ClipPlay, LoopRepeat, time.Second},
	}
	for _, tt := range tests {
		spec := cr.Clips[tt.clip]
		if spec.Loop != tt.loop {
			t.Errorf("%s: expected loop %s, got %s", tt.clip, tt.loop, spec.Loop)
		}
		if spec.Duration() != tt.want {
			t.Errorf("%s: expected duration %v, got %v", tt.clip, tt.want, spec.Duration())
		}
	}
}

func TestLoadUnknownCreature(t *testing.T) {
	_, err := Builtin().Load(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	var le *LoadError
	if !errors.As(err, &le) || le.ID != 99 {
		t.Errorf("Expected LoadError for id 99, got %#v", err)
	}
}

func TestLoadMissingClip(t *testing.T) {
	fsys := fstest.MapFS{"pets.yaml": {Data: []byte(brokenManifest)}}
	_, err := FromFS(fsys, "pets.yaml").Load(context.Background(), 7)
	if !errors.Is(err, ErrMissingClip) {
		t.Errorf("Expected ErrMissingClip, got %v", err)
	}
}

func TestLoadUnreadableManifest(t *testing.T) {
	_, err := FromFS(fstest.MapFS{}, "missing.yaml").Load(context.Background(), 1)
	if err == nil {
		t.Fatal("Expected error for missing manifest")
	}
	var le *LoadError
	if !errors.As(err, &le) {
		t.Errorf("Expected LoadError, got %T", err)
	}
}

func TestLoadCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Builtin().Load(ctx, 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestValidateRejectsBadLoopMode(t *testing.T) {
	cr := &Creature{ID: 1, Clips: map[Clip]ClipSpec{}}
	for _, c := range RequiredClips {
		cr.Clips[c] = ClipSpec{Loop: LoopOnce, FrameDuration: time.Millisecond, Frames: []string{"x"}}
	}
	if err := cr.Validate(); err != nil {
		t.Fatalf("Expected valid creature, got %v", err)
	}
	cr.Clips[ClipIdle] = ClipSpec{Loop: "bounce", FrameDuration: time.Millisecond, Frames: []string{"x"}}
	if err := cr.Validate(); !errors.Is(err, ErrBadClip) {
		t.Errorf("Expected ErrBadClip, got %v", err)
	}
}

func TestPreload(t *testing.T) {
	all, err := Preload(context.Background(), Builtin(), []int{1, 2})
	if err != nil {
		t.Fatalf("Preload error: %v", err)
	}
	if all[0].ID != 1 || all[1].ID != 2 {
		t.Errorf("Preload should keep input order, got %d,%d", all[0].ID, all[1].ID)
	}

	_, err = Preload(context.Background(), Builtin(), []int{1, 42})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected one failure to fail the preload, got %v", err)
	}
}
