package ui

import (
	"context"
	"errors"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"vpet/internal/clock"
	"vpet/internal/creature"
	"vpet/internal/pet"
)

// TimeNow is the wall clock. Tests replace it.
var TimeNow = time.Now

// Screen is which page of the program is showing.
type Screen int

const (
	ScreenPreloading Screen = iota
	ScreenSelect
	ScreenLoading
	ScreenFailed
	ScreenGame
)

// Catalog is where creatures come from.
type Catalog interface {
	creature.Source
	List() ([]creature.Entry, error)
}

// Options configure a Model.
type Options struct {
	Catalog       Catalog
	Rules         pet.Rules
	FrameInterval time.Duration
	Creature      int // skip selection and load this id when non-zero
}

// Model represents the program state
type Model struct {
	opts Options

	Screen    Screen
	Creatures []*creature.Creature
	Selected  int
	Err       error
	Quitting  bool

	// failedPreload tells the failure screen whether retry means preload
	// or loading the selected creature.
	failedPreload bool
	loadingID     int

	Choice  int
	session *pet.Session
	sched   *clock.Scheduler
	stage   *stage

	// gen invalidates frame ticks from an earlier game.
	gen int
}

type preloadedMsg struct {
	creatures []*creature.Creature
	err       error
}

type loadedMsg struct {
	id       int
	creature *creature.Creature
	err      error
}

type frameMsg struct {
	gen int
	at  time.Time
}

// NewModel creates a model that starts by preloading every creature.
func NewModel(opts Options) Model {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = 100 * time.Millisecond
	}
	return Model{opts: opts, Screen: ScreenPreloading}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return preload(m.opts.Catalog)
}

func preload(cat Catalog) tea.Cmd {
	return func() tea.Msg {
		entries, err := cat.List()
		if err != nil {
			return preloadedMsg{err: err}
		}
		ids := make([]int, len(entries))
		for i, e := range entries {
			ids[i] = e.ID
		}
		creatures, err := creature.Preload(context.Background(), cat, ids)
		return preloadedMsg{creatures: creatures, err: err}
	}
}

func load(src creature.Source, id int) tea.Cmd {
	return func() tea.Msg {
		c, err := src.Load(context.Background(), id)
		return loadedMsg{id: id, creature: c, err: err}
	}
}

func frameTick(gen int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return frameMsg{gen: gen, at: t}
	})
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			m.closeSession()
			m.Quitting = true
			return m, tea.Quit
		}
		switch m.Screen {
		case ScreenSelect:
			return m.updateSelect(msg)
		case ScreenFailed:
			return m.updateFailed(msg)
		case ScreenGame:
			return m.updateGame(msg)
		}

	case preloadedMsg:
		if msg.err != nil {
			log.Printf("[ui] preload failed: %v", msg.err)
			m.Screen, m.Err, m.failedPreload = ScreenFailed, msg.err, true
			return m, nil
		}
		m.Creatures = msg.creatures
		log.Printf("[ui] preloaded %d creatures", len(m.Creatures))
		if m.opts.Creature != 0 {
			return m.startLoading(m.opts.Creature)
		}
		m.Screen = ScreenSelect
		return m, nil

	case loadedMsg:
		if m.Screen != ScreenLoading || msg.id != m.loadingID {
			return m, nil
		}
		if msg.err != nil {
			log.Printf("[ui] loading creature %d failed: %v", msg.id, msg.err)
			m.Screen, m.Err, m.failedPreload = ScreenFailed, msg.err, false
			return m, nil
		}
		return m.startGame(msg.creature)

	case frameMsg:
		// Drop ticks that belong to an older game
		if m.Screen != ScreenGame || msg.gen != m.gen {
			return m, nil
		}
		m.advance(msg.at)
		return m, frameTick(m.gen, m.opts.FrameInterval)
	}

	return m, nil
}

func (m Model) updateSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h", "up", "k":
		if m.HasPrev() {
			m.Selected--
		}
	case "right", "l", "down", "j":
		if m.HasNext() {
			m.Selected++
		}
	case "enter", " ":
		if len(m.Creatures) > 0 {
			return m.startLoading(m.Creatures[m.Selected].ID)
		}
	}
	return m, nil
}

func (m Model) updateFailed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		if m.failedPreload {
			m.Screen, m.Err = ScreenPreloading, nil
			return m, preload(m.opts.Catalog)
		}
		return m.startLoading(m.loadingID)
	case "esc":
		if m.failedPreload {
			m.Quitting = true
			return m, tea.Quit
		}
		m.Screen, m.Err = ScreenSelect, nil
	}
	return m, nil
}

func (m Model) updateGame(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.menuItems()
	switch msg.String() {
	case "esc":
		m.closeSession()
		m.Screen = ScreenSelect
		return m, nil
	case "up", "k":
		if m.Choice > 0 {
			m.Choice--
		}
	case "down", "j":
		if m.Choice < len(items)-1 {
			m.Choice++
		}
	case "p":
		m.request(pet.ActionPunch)
	case "y":
		m.request(pet.ActionPlay)
	case "s":
		if m.stage.sleepVisible {
			m.request(pet.ActionSleep)
		}
	case "w":
		if m.stage.wakeupVisible {
			m.request(pet.ActionWakeup)
		}
	case "enter", " ":
		if m.Choice < len(items) {
			m.request(items[m.Choice].action)
		}
	}
	if n := len(m.menuItems()); m.Choice >= n {
		m.Choice = n - 1
	}
	return m, nil
}

// HasPrev reports whether the previous-creature control is enabled.
func (m Model) HasPrev() bool {
	return m.Selected > 0
}

// HasNext reports whether the next-creature control is enabled.
func (m Model) HasNext() bool {
	return m.Selected < len(m.Creatures)-1
}

func (m Model) startLoading(id int) (tea.Model, tea.Cmd) {
	m.Screen, m.Err, m.loadingID = ScreenLoading, nil, id
	for i, c := range m.Creatures {
		if c.ID == id {
			m.Selected = i
		}
	}
	return m, load(m.opts.Catalog, id)
}

func (m Model) startGame(c *creature.Creature) (tea.Model, tea.Cmd) {
	m.closeSession()
	now := TimeNow()
	m.sched = clock.New(now)
	m.stage = newStage(c, m.sched)
	m.session = pet.NewSession(m.sched, m.opts.Rules, m.stage)
	m.session.Start()
	m.Screen = ScreenGame
	m.Choice = 0
	m.gen++
	log.Printf("[ui] %s ready (session %s)", c.Name, m.session.ID)
	return m, frameTick(m.gen, m.opts.FrameInterval)
}

func (m *Model) closeSession() {
	if m.session != nil {
		m.session.Close()
		m.session = nil
	}
}

// advance moves the game to now: timers first, then the animation. A
// play-once clip that ends is reported back so its phase can finish.
func (m *Model) advance(now time.Time) {
	m.session.Advance(now)
	if clip, done := m.stage.step(now); done {
		m.session.ClipFinished(clip)
	}
}

func (m *Model) request(a pet.Action) {
	// catch timers up to the key press first
	m.session.Advance(TimeNow())
	if err := m.session.Request(a); errors.Is(err, pet.ErrBusy) {
		log.Printf("[ui] %s ignored while busy", a)
	}
}

type menuItem struct {
	label  string
	key    string
	action pet.Action
}

// menuItems lists the actions currently offered.
func (m Model) menuItems() []menuItem {
	items := []menuItem{
		{"Punch", "p", pet.ActionPunch},
		{"Play", "y", pet.ActionPlay},
	}
	if m.stage == nil {
		return items
	}
	if m.stage.sleepVisible {
		items = append(items, menuItem{"Sleep", "s", pet.ActionSleep})
	}
	if m.stage.wakeupVisible {
		items = append(items, menuItem{"Wake up", "w", pet.ActionWakeup})
	}
	return items
}
