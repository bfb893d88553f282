package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"vpet/internal/pet"
)

// BarWidth is the number of cells in a stat bar.
const BarWidth = 20

// bandColors are the two ends of each energy band's gradient, dim to bright.
var bandColors = map[pet.Band][2]string{
	pet.BandSleeping: {"#2B4C7E", "#6CA0DC"},
	pet.BandHigh:     {"#2E7D32", "#66DD55"},
	pet.BandMedium:   {"#B8860B", "#FFD54F"},
	pet.BandLow:      {"#8B0000", "#FF5555"},
}

// BandColor returns the bar colour for fraction inside band.
func BandColor(band pet.Band, fraction float64) string {
	ends, ok := bandColors[band]
	if !ok {
		ends = bandColors[pet.BandLow]
	}
	from, err := colorful.Hex(ends[0])
	if err != nil {
		return ends[1]
	}
	to, err := colorful.Hex(ends[1])
	if err != nil {
		return ends[0]
	}
	return from.BlendLab(to, clampFraction(fraction)).Clamped().Hex()
}

func clampFraction(f float64) float64 {
	return math.Max(0, math.Min(1, f))
}

// makeBar draws fraction as a row of filled and empty cells.
func makeBar(fraction float64, width int, color string) string {
	filled := int(math.Round(clampFraction(fraction) * float64(width)))
	bar := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(strings.Repeat("█", filled))
	return bar + strings.Repeat("░", width-filled)
}

// renderEnergyBar draws the energy bar as the session last reported it.
func renderEnergyBar(fraction float64, band pet.Band) string {
	return makeBar(fraction, BarWidth, BandColor(band, fraction))
}

// renderStats draws the three stat rows and the warning icons.
func renderStats(s *stage) string {
	snap := s.snapshot
	rows := []struct {
		name  string
		bar   string
		value float64
	}{
		{"Energy", renderEnergyBar(s.energy, s.band), s.energy * 100},
		{"Anger", makeBar(snap.Anger/100, BarWidth, "#FF7043"), snap.Anger},
		{"Happiness", makeBar(snap.Happiness/100, BarWidth, "#FF75B5"), snap.Happiness},
	}

	var lines []string
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%-10s [%s] %3.0f%%", r.name+":", r.bar, math.Round(r.value)))
	}
	if icons := warningIcons(snap.Warnings); icons != "" {
		lines = append(lines, "", icons)
	}
	return gameStyles.stats.Render(strings.Join(lines, "\n"))
}

// warningIcons are the small reminders next to the actions.
func warningIcons(w pet.Warnings) string {
	var icons []string
	if w.AngerLow {
		icons = append(icons, "😡 punch me")
	}
	if w.EnergyLow {
		icons = append(icons, "🪫 tired")
	}
	if w.EnergyFull {
		icons = append(icons, "🔋 full")
	}
	if w.HappinessLow {
		icons = append(icons, "💔 lonely")
	}
	return strings.Join(icons, "  ")
}
