package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/floatwin/internal/palette"
	"github.com/1broseidon/floatwin/internal/registry"
)

var (
	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("250")).
			Padding(0, 1)

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	dangerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62"))

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)
)

// renderStatusBar shows the device class, window counts, dock and the last
// message.
func renderStatusBar(class string, visible int, dock []registry.Window, active, message string, width int) string {
	dot := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●")
	parts := []string{dot + " " + class, fmt.Sprintf("%d open", visible)}
	if active != "" {
		parts = append(parts, "active:"+active)
	}
	if len(dock) > 0 {
		names := make([]string, len(dock))
		for i, w := range dock {
			names[i] = windowLabel(w)
		}
		parts = append(parts, "dock: "+strings.Join(names, " · "))
	}
	if message != "" {
		parts = append(parts, message)
	} else {
		parts = append(parts, dimStyle.Render("ctrl+k palette  ctrl+n new  q quit"))
	}
	return statusBarStyle.Width(width).MaxHeight(1).Render(strings.Join(parts, "  "))
}

// renderPalette draws the palette overlay box.
func renderPalette(p *palette.Palette, width int) string {
	w := width / 2
	if w < 30 {
		w = 30
	}
	var b strings.Builder
	fmt.Fprintf(&b, "> %s\n", p.Query())

	actions := p.Filtered()
	if len(actions) == 0 {
		b.WriteString(dimStyle.Render("no matching commands"))
	}
	for i, a := range actions {
		line := a.Name
		if a.Shortcut != "" {
			line += "  " + dimStyle.Render(a.Shortcut)
		}
		if i == p.Selected() {
			line = selectedStyle.Render(a.Name)
			if a.Shortcut != "" {
				line += "  " + a.Shortcut
			}
		}
		b.WriteString(line)
		if i < len(actions)-1 {
			b.WriteString("\n")
		}
	}
	return overlayStyle.Width(w).Render(b.String())
}

// renderConfirm draws a yes/no confirmation box.
func renderConfirm(title, description string) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render(title),
		description,
		"",
		dimStyle.Render("y/enter: confirm  n/esc: cancel"),
	)
	return dangerStyle.Render(body)
}

// renderCarousel draws one window full-screen with optional pagination and
// footer chrome.
func renderCarousel(w registry.Window, index, count int, chrome bool, width, height int) string {
	title := panelTitleStyle.Width(width).Render(windowLabel(w))

	var footer []string
	if chrome {
		dots := make([]string, count)
		for i := range dots {
			dots[i] = "○"
			if i == index {
				dots[i] = "●"
			}
		}
		footer = append(footer,
			lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(strings.Join(dots, " ")),
			dimStyle.Width(width).Align(lipgloss.Center).Render("←/→ switch  f fullscreen  esc close"),
		)
	}

	bodyHeight := height - lipgloss.Height(title) - len(footer)
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body := lipgloss.NewStyle().
		Width(width).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Padding(0, 1).
		Render(strings.Join(windowBody(w), "\n"))

	return lipgloss.JoinVertical(lipgloss.Left, append([]string{title, body}, footer...)...)
}
