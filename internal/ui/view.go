package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"vpet/internal/creature"
	"vpet/internal/pet"
)

var gameStyles = struct {
	title    lipgloss.Style
	status   lipgloss.Style
	menu     lipgloss.Style
	menuBox  lipgloss.Style
	stats    lipgloss.Style
	disabled lipgloss.Style
	frame    lipgloss.Style
}{
	title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF75B5")).
		Padding(0, 1),

	status: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF75B5")),

	stats: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF75B5")),

	menu: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF75B5")),

	menuBox: lipgloss.NewStyle().
		Padding(0, 2),

	disabled: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#555555")),

	frame: lipgloss.NewStyle().
		Bold(true).
		Padding(1, 2),
}

// alertColors by severity
var alertColors = map[pet.Severity]lipgloss.Color{
	pet.SeverityInfo:   lipgloss.Color("#4CAF50"),
	pet.SeverityWarn:   lipgloss.Color("#FFC107"),
	pet.SeverityDanger: lipgloss.Color("#F44336"),
}

// View implements tea.Model
func (m Model) View() string {
	if m.Quitting {
		return "Thanks for playing!\n"
	}
	switch m.Screen {
	case ScreenPreloading:
		return gameStyles.title.Render("🥚 Waking up the creatures...")
	case ScreenSelect:
		return m.selectView()
	case ScreenLoading:
		return m.loadingView()
	case ScreenFailed:
		return m.failedView()
	default:
		return m.gameView()
	}
}

func (m Model) selectView() string {
	if len(m.Creatures) == 0 {
		return gameStyles.status.Render("No creatures found. Press q to exit")
	}
	c := m.Creatures[m.Selected]

	prev, next := "◀ prev", "next ▶"
	if m.HasPrev() {
		prev = gameStyles.menu.Render(prev)
	} else {
		prev = gameStyles.disabled.Render(prev)
	}
	if m.HasNext() {
		next = gameStyles.menu.Render(next)
	} else {
		next = gameStyles.disabled.Render(next)
	}

	preview := ""
	if spec, ok := c.Clips[creature.ClipIdle]; ok && len(spec.Frames) > 0 {
		preview = gameStyles.frame.Foreground(lipgloss.Color(c.Color)).Render(spec.Frames[0])
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		gameStyles.title.Render("Choose your pet"),
		"",
		creatureTitle(c.Name, c.Color),
		preview,
		fmt.Sprintf("%s   %d/%d   %s", prev, m.Selected+1, len(m.Creatures), next),
		"",
		gameStyles.status.Render("←/→ to browse • enter to choose • q to quit"),
	)
}

func (m Model) loadingView() string {
	name := fmt.Sprintf("creature %d", m.loadingID)
	for _, c := range m.Creatures {
		if c.ID == m.loadingID {
			name = c.Name
		}
	}
	return gameStyles.title.Render("⏳ Loading " + name + "...")
}

func (m Model) failedView() string {
	help := "r to retry • esc to go back • q to quit"
	if m.failedPreload {
		help = "r to retry • esc or q to quit"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Foreground(alertColors[pet.SeverityDanger]).Render("⚠️  Something went wrong"),
		"",
		gameStyles.status.Render(fmt.Sprintf("%v", m.Err)),
		"",
		gameStyles.status.Render(help),
	)
}

func creatureTitle(name, color string) string {
	return gameStyles.title.Foreground(lipgloss.Color(color)).Render("🐾 " + name + " 🐾")
}

func (m Model) gameView() string {
	if m.stage == nil {
		return ""
	}
	now := m.sched.Now()
	c := m.stage.creature

	sections := []string{
		creatureTitle(c.Name, c.Color),
		gameStyles.frame.Foreground(lipgloss.Color(c.Color)).Render(m.stage.anim.Render(now)),
		renderStats(m.stage),
		"",
		m.renderStatus(),
	}

	if msg, sev, ok := m.stage.activeAlert(now); ok {
		sections = append(sections, "", lipgloss.NewStyle().Bold(true).Foreground(alertColors[sev]).Render(msg))
	}

	sections = append(sections,
		"",
		m.renderMenu(),
		"",
		gameStyles.status.Render("arrows to move • enter to select • esc to change pet • q to quit"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderStatus() string {
	return gameStyles.status.Render(fmt.Sprintf("Status: %s", pet.GetStatusWithLabel(m.stage.snapshot)))
}

func (m Model) renderMenu() string {
	var menuItems []string
	for i, item := range m.menuItems() {
		cursor := " "
		if m.Choice == i {
			cursor = ">"
		}
		menuItems = append(menuItems, gameStyles.menu.Render(fmt.Sprintf("%s %s [%s]", cursor, item.label, item.key)))
	}
	return gameStyles.menuBox.Render(strings.Join(menuItems, "\n"))
}
