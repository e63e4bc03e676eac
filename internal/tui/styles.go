package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Shimmer animation for the header logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "CAMPUSDESK" as a slow wave of blue light moving
// left to right. Deep navy (#1e3a5f) -> sky (#60a5fa).
func renderShimmerLogo(frame int) string {
	const text = "CAMPUSDESK"
	n := len(text)

	var out strings.Builder
	t := float64(frame)

	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)

		phase := t*0.1 - x*3.0
		phase += math.Sin(t*0.023) * 2.0

		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.3)
		b = b*0.75 + math.Sin(t*0.035)*0.12 + 0.18
		if b > 1.0 {
			b = 1.0
		} else if b < 0.05 {
			b = 0.05
		}

		r := clampByte(30 + b*(96-30))
		g := clampByte(58 + b*(165-58))
		bl := clampByte(95 + b*(250-95))

		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r, g, bl)))
		out.WriteString(s.Render(string(text[i])))
		if i < n-1 {
			out.WriteString(" ")
		}
	}
	return out.String()
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	// Base styles, neutral palette
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60a5fa"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34d474"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4a844"))

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#606878")).
				Bold(true)

	borderColor = lipgloss.Color("#1e1e2a")

	// Status colors shared by students, teachers and events.
	statusColors = map[string]lipgloss.Color{
		"active":    lipgloss.Color("#34d474"),
		"published": lipgloss.Color("#34d474"),
		"inactive":  lipgloss.Color("#8890a0"),
		"draft":     lipgloss.Color("#8890a0"),
		"graduated": lipgloss.Color("#60a0e0"),
		"completed": lipgloss.Color("#60a0e0"),
		"retired":   lipgloss.Color("#b080d0"),
		"expelled":  lipgloss.Color("#e06060"),
		"cancelled": lipgloss.Color("#e06060"),
	}

	roleColors = map[string]lipgloss.Color{
		"admin":   lipgloss.Color("#f0944a"),
		"teacher": lipgloss.Color("#60a5fa"),
		"student": lipgloss.Color("#34d474"),
	}
)

// StatusStyle returns the style for a record status.
func StatusStyle(status string) lipgloss.Style {
	if c, ok := statusColors[status]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#606878"))
}

// RoleBadge returns a short colored badge for a user role, e.g. "[admin]".
func RoleBadge(role string) string {
	if role == "" {
		return ""
	}
	c, ok := roleColors[role]
	if !ok {
		c = lipgloss.Color("#8890a0")
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true).Render("[" + role + "]")
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpBar joins key/label pairs into one help line.
func helpBar(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, helpEntry(pairs[i], pairs[i+1]))
	}
	return " " + strings.Join(parts, "  ")
}

// formTheme is the huh theme for the login and record forms.
func formTheme() *huh.Theme {
	t := huh.ThemeBase()

	blue := lipgloss.Color("#60a5fa")
	gray := lipgloss.Color("#8890a0")
	text := lipgloss.Color("#e4e4ec")
	red := lipgloss.Color("#e06060")

	t.Group.Title = lipgloss.NewStyle().Foreground(blue).Bold(true).MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().Foreground(gray).MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(blue)
	t.Focused.Title = lipgloss.NewStyle().Foreground(blue).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(gray)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(red).SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(red)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(blue).SetString("> ")
	t.Focused.Option = lipgloss.NewStyle().Foreground(text)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(blue).Bold(true)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(blue)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(lipgloss.Color("#343c4a"))
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(blue)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(text)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().Foreground(gray)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(gray).SetString("  ")
	t.Blurred.Option = lipgloss.NewStyle().Foreground(gray)

	return t
}
