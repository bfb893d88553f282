package ui

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"vpet/internal/creature"
	"vpet/internal/pet"
	"vpet/internal/stats"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func key(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// fixClock pins TimeNow for the duration of a test.
func fixClock(t *testing.T, at time.Time) *time.Time {
	t.Helper()
	now := at
	TimeNow = func() time.Time { return now }
	t.Cleanup(func() { TimeNow = time.Now })
	return &now
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// run executes a command that does not sleep (preload and load) and feeds
// its message back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	return send(t, m, cmd())
}

func readyModel(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.Catalog == nil {
		opts.Catalog = creature.Builtin()
	}
	if opts.Rules.Stats.TickInterval == 0 {
		opts.Rules = pet.DefaultRules()
	}
	m := NewModel(opts)
	m, _ = run(t, m, m.Init())
	return m
}

func TestPreloadShowsSelection(t *testing.T) {
	m := readyModel(t, Options{})

	if m.Screen != ScreenSelect {
		t.Fatalf("screen = %v, want selection", m.Screen)
	}
	if len(m.Creatures) != 2 {
		t.Fatalf("preloaded %d creatures, want 2", len(m.Creatures))
	}
	if m.HasPrev() || !m.HasNext() {
		t.Errorf("at first creature: prev=%t next=%t", m.HasPrev(), m.HasNext())
	}

	m, _ = send(t, m, key("right"))
	if m.Selected != 1 || !m.HasPrev() || m.HasNext() {
		t.Errorf("at last creature: selected=%d prev=%t next=%t", m.Selected, m.HasPrev(), m.HasNext())
	}

	// next is disabled at the end
	m, _ = send(t, m, key("right"))
	if m.Selected != 1 {
		t.Errorf("moved past the last creature")
	}
	if !strings.Contains(m.View(), m.Creatures[1].Name) {
		t.Errorf("selection view does not show %s", m.Creatures[1].Name)
	}
}

func TestPreloadFailureCanRetry(t *testing.T) {
	broken := creature.FromFS(fstest.MapFS{}, "missing.yaml")
	m := readyModel(t, Options{Catalog: broken})

	if m.Screen != ScreenFailed || m.Err == nil {
		t.Fatalf("screen = %v err = %v, want failure", m.Screen, m.Err)
	}
	m, cmd := send(t, m, key("r"))
	if m.Screen != ScreenPreloading || cmd == nil {
		t.Fatalf("retry did not restart preload")
	}
	m, _ = send(t, m, cmd())
	if m.Screen != ScreenFailed {
		t.Errorf("screen = %v after second failure", m.Screen)
	}
}

func TestLoadFailureGoesBackToSelection(t *testing.T) {
	m := readyModel(t, Options{Creature: 42})

	if m.Screen != ScreenLoading {
		t.Fatalf("screen = %v, want loading", m.Screen)
	}
	m, cmd := send(t, m, load(creature.Builtin(), 42)())
	if cmd != nil {
		t.Errorf("unexpected command after failure")
	}
	if m.Screen != ScreenFailed || !errors.Is(m.Err, creature.ErrNotFound) {
		t.Fatalf("screen = %v err = %v, want not found failure", m.Screen, m.Err)
	}
	if !strings.Contains(m.View(), "retry") {
		t.Errorf("failure view has no retry hint")
	}

	m, cmd = send(t, m, key("r"))
	if m.Screen != ScreenLoading || cmd == nil {
		t.Errorf("retry should load again, screen = %v", m.Screen)
	}

	m, _ = send(t, m, cmd())
	m, _ = send(t, m, key("esc"))
	if m.Screen != ScreenSelect {
		t.Errorf("esc from failure: screen = %v", m.Screen)
	}
}

func TestStaleLoadIsIgnored(t *testing.T) {
	m := readyModel(t, Options{})
	m, _ = send(t, m, key("enter"))

	c, err := creature.Builtin().Load(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	m, _ = send(t, m, loadedMsg{id: 2, creature: c})
	if m.Screen != ScreenLoading {
		t.Errorf("load for another creature changed screen to %v", m.Screen)
	}
}

func startGame(t *testing.T) Model {
	t.Helper()
	m := readyModel(t, Options{})
	m, cmd := send(t, m, key("enter"))
	m, _ = run(t, m, cmd)
	if m.Screen != ScreenGame {
		t.Fatalf("screen = %v, want game", m.Screen)
	}
	return m
}

func TestGamePlayRoundTrip(t *testing.T) {
	now := fixClock(t, epoch)
	m := startGame(t)

	if m.session.State() != pet.StateIdle {
		t.Fatalf("new pet state = %s", m.session.State())
	}

	m, _ = send(t, m, key("y"))
	if m.session.State() != pet.StatePlaying {
		t.Fatalf("state after play = %s", m.session.State())
	}
	if m.stage.anim.Clip != creature.ClipPlay {
		t.Errorf("stage shows %s, want play clip", m.stage.anim.Clip)
	}

	*now = epoch.Add(pet.PlayDuration)
	m, cmd := send(t, m, frameMsg{gen: m.gen, at: *now})
	if cmd == nil {
		t.Errorf("frame tick not rescheduled")
	}
	if m.session.State() != pet.StateIdle {
		t.Errorf("state after play duration = %s", m.session.State())
	}
	if got := m.session.Stats().Value(stats.Energy); got >= 100 {
		t.Errorf("play did not cost energy: %v", got)
	}
}

func TestSleepMenuFollowsControls(t *testing.T) {
	fixClock(t, epoch)
	m := startGame(t)

	labels := func() []string {
		var out []string
		for _, it := range m.menuItems() {
			out = append(out, it.label)
		}
		return out
	}
	if got := strings.Join(labels(), ","); got != "Punch,Play,Sleep" {
		t.Errorf("menu = %s", got)
	}

	// full energy: sleep is refused with an alert
	m, _ = send(t, m, key("s"))
	if m.session.State() != pet.StateIdle {
		t.Errorf("sleep accepted at full energy")
	}
	if msg, _, ok := m.stage.activeAlert(epoch); !ok || !strings.Contains(msg, "tired") {
		t.Errorf("expected not-tired alert, got %q", msg)
	}
	if !strings.Contains(m.View(), "isn't tired") {
		t.Errorf("alert not rendered")
	}
}

func TestStaleFrameTickIsDropped(t *testing.T) {
	fixClock(t, epoch)
	m := startGame(t)

	m, cmd := send(t, m, frameMsg{gen: m.gen - 1, at: epoch.Add(time.Second)})
	if cmd != nil {
		t.Errorf("stale tick rescheduled itself")
	}

	m, _ = send(t, m, key("esc"))
	if m.Screen != ScreenSelect {
		t.Fatalf("esc from game: screen = %v", m.Screen)
	}
	if _, cmd = send(t, m, frameMsg{gen: m.gen, at: epoch.Add(time.Second)}); cmd != nil {
		t.Errorf("tick after leaving the game rescheduled itself")
	}
}

func TestQuit(t *testing.T) {
	m := readyModel(t, Options{})
	m, cmd := send(t, m, key("q"))
	if !m.Quitting || cmd == nil {
		t.Errorf("q did not quit")
	}
	if m.View() != "Thanks for playing!\n" {
		t.Errorf("unexpected goodbye %q", m.View())
	}
}
