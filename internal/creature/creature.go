package creature

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"gopkg.in/yaml.v3"
)

// Clip names an animation every creature must provide.
type Clip string

const (
	ClipIdle   Clip = "idle"
	ClipPunch  Clip = "punch"
	ClipPlay   Clip = "play"
	ClipSleep  Clip = "sleep"
	ClipWakeup Clip = "wakeup"
)

// RequiredClips lists the clips a creature needs before it can be played.
var RequiredClips = []Clip{ClipIdle, ClipPunch, ClipPlay, ClipSleep, ClipWakeup}

// Loop is a clip's playback mode.
type Loop string

const (
	LoopOnce   Loop = "once"
	LoopRepeat Loop = "repeat"
)

// ClipSpec is one animation: a list of ASCII frames played at a fixed rate.
type ClipSpec struct {
	Loop          Loop          `yaml:"loop"`
	FrameDuration time.Duration `yaml:"frame_duration"`
	Frames        []string      `yaml:"frames"`
}

// Duration is the nominal length of one pass through the clip.
func (c ClipSpec) Duration() time.Duration {
	return time.Duration(len(c.Frames)) * c.FrameDuration
}

// Creature is a selectable pet and its clips.
type Creature struct {
	ID    int               `yaml:"id"`
	Name  string            `yaml:"name"`
	Color string            `yaml:"color"`
	Clips map[Clip]ClipSpec `yaml:"clips"`
}

// Entry is the catalog listing shown on the selection screen.
type Entry struct {
	ID   int
	Name string
}

type manifest struct {
	Creatures []Creature `yaml:"creatures"`
}

// Errors returned by Load
var (
	ErrNotFound    = errors.New("creature not found")
	ErrMissingClip = errors.New("missing clip")
	ErrBadClip     = errors.New("invalid clip")
)

// LoadError reports why a creature could not be loaded.
type LoadError struct {
	ID  int
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load creature %d: %v", e.ID, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Source loads creatures by ID.
type Source interface {
	Load(ctx context.Context, id int) (*Creature, error)
}

//go:embed creatures.yaml
var builtinManifest []byte

// Catalog reads creatures from a YAML manifest.
type Catalog struct {
	read func() ([]byte, error)
}

// Builtin returns the catalog compiled into the binary.
func Builtin() *Catalog {
	return &Catalog{read: func() ([]byte, error) { return builtinManifest, nil }}
}

// FromFS returns a catalog backed by a manifest file. The file is read on
// every call so edits show up without a restart.
func FromFS(fsys fs.FS, name string) *Catalog {
	return &Catalog{read: func() ([]byte, error) { return fs.ReadFile(fsys, name) }}
}

func (c *Catalog) decode() (*manifest, error) {
	data, err := c.read()
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}

// List returns every creature in manifest order.
func (c *Catalog) List() ([]Entry, error) {
	m, err := c.decode()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(m.Creatures))
	for _, cr := range m.Creatures {
		entries = append(entries, Entry{ID: cr.ID, Name: cr.Name})
	}
	return entries, nil
}

// Load returns the creature with the given ID once all its clips check out.
func (c *Catalog) Load(ctx context.Context, id int) (*Creature, error) {
	if err := ctx.Err(); err != nil {
		return nil, &LoadError{ID: id, Err: err}
	}
	m, err := c.decode()
	if err != nil {
		return nil, &LoadError{ID: id, Err: err}
	}
	for i := range m.Creatures {
		cr := &m.Creatures[i]
		if cr.ID != id {
			continue
		}
		if err := cr.Validate(); err != nil {
			log.Printf("Failed to load creature %d (%s): %v", id, cr.Name, err)
			return nil, &LoadError{ID: id, Err: err}
		}
		log.Printf("Loaded creature %d (%s) with %d clips", id, cr.Name, len(cr.Clips))
		return cr, nil
	}
	return nil, &LoadError{ID: id, Err: ErrNotFound}
}

// Validate checks that every required clip is present and playable.
func (cr *Creature) Validate() error {
	for _, name := range RequiredClips {
		spec, ok := cr.Clips[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingClip, name)
		}
		if len(spec.Frames) == 0 || spec.FrameDuration <= 0 {
			return fmt.Errorf("%w: %s has no frames or no frame duration", ErrBadClip, name)
		}
		if spec.Loop != LoopOnce && spec.Loop != LoopRepeat {
			return fmt.Errorf("%w: %s has loop mode %q", ErrBadClip, name, spec.Loop)
		}
	}
	return nil
}
