// Package render formats command output for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/bump/internal/pregnancy"
)

const DefaultBarWidth = 30

func Title(s string) string   { return titleStyle.Render(s) }
func Label(s string) string   { return labelStyle.Render(s) }
func Success(s string) string { return successStyle.Render("✓ " + s) }
func Warning(s string) string { return warningStyle.Render(s) }
func Danger(s string) string  { return dangerStyle.Render(s) }

// Plural formats n with unit, adding an "s" unless n is 1 or -1.
func Plural(n int, unit string) string {
	if n == 1 || n == -1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// ProgressBar draws percent (0-100) as a gradient bar of the given width
// followed by the percentage with one decimal.
func ProgressBar(percent float64, width int) string {
	if width <= 0 {
		width = DefaultBarWidth
	}
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(width))
	return fmt.Sprintf("%s %.1f%%", bar.ViewAs(percent/100), percent)
}

// StatusView is what the status screen shows.
type StatusView struct {
	Name   string
	Status pregnancy.Status
}

// Status renders v as a bordered block.
func Status(v StatusView, width int) string {
	s := v.Status
	var lines []string

	if v.Name != "" {
		lines = append(lines, Title(v.Name))
	}

	if s.TotalDays < 0 {
		lines = append(lines, Warning(fmt.Sprintf("Reference point is %s in the future", Plural(-s.TotalDays, "day"))))
	} else {
		lines = append(lines, fmt.Sprintf("%s %s  %s %d",
			Label("Progress"), fmt.Sprintf("%s %s", Plural(s.Weeks, "week"), Plural(s.Days, "day")),
			Label("Trimester"), pregnancy.Trimester(s.Weeks)))
	}
	lines = append(lines, ProgressBar(s.PercentComplete, width))

	until := pregnancy.TermDays - s.TotalDays
	due := fmt.Sprintf("%s %s", Label("Due"), s.DueDate)
	switch {
	case until > 0:
		due += fmt.Sprintf(" (%s to go)", Plural(until, "day"))
	case until == 0:
		due += " (today)"
	default:
		due += " " + Danger(fmt.Sprintf("(%s past due)", Plural(-until, "day")))
	}
	lines = append(lines, due)

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// KeyValues lines up label/value pairs in two columns.
func KeyValues(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		width = max(width, lipgloss.Width(p[0]))
	}
	var b strings.Builder
	for _, p := range pairs {
		fmt.Fprintf(&b, "%s  %s\n", Label(p[0]+strings.Repeat(" ", width-lipgloss.Width(p[0]))), p[1])
	}
	return b.String()
}
