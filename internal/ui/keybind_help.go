package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// RenderKeybindHelp renders the hint box shown while a leader sequence is
// pending, or "" outside leader mode.
func RenderKeybindHelp(keyHandler *KeyHandler, focused PanelKind) string {
	if keyHandler == nil || !keyHandler.LeaderWaiting {
		return ""
	}
	seq := keyHandler.Sequence()
	bindings := keyHandler.Registry.LeaderBindings(seq, focused)
	if len(bindings) == 0 {
		return ""
	}
	label := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted)).Render(seq)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Padding(0, 1).
		Render(label + " " + newHelpModel(0).ShortHelpView(bindings))
}

func newHelpModel(width int) help.Model {
	h := help.New()
	h.Width = width
	h.Styles.ShortKey = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true)
	h.Styles.ShortDesc = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted))
	h.Styles.ShortSeparator = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted))
	return h
}

// statusBindings are the always-visible hints for the focused panel.
func statusBindings(focused PanelKind) []key.Binding {
	b := func(k, desc string) key.Binding {
		return key.NewBinding(key.WithKeys(k), key.WithHelp(k, desc))
	}
	out := []key.Binding{b("[ ]", "year"), b("tab", "focus"), b("+ -", "zoom")}
	switch focused {
	case PanelScatter:
		out = append(out, b("x/y", "axes"), b("n/p", "year"), b("c", "continent"), b("r", "regression"))
	case PanelTable:
		out = append(out, b("d", "descriptions"))
	}
	return append(out, b("esc", "clear hover"), b("SPC", "commands"), b("q", "quit"))
}

// RenderStatusHelp renders the one-line hint bar.
func RenderStatusHelp(focused PanelKind, width int) string {
	return newHelpModel(width).ShortHelpView(statusBindings(focused))
}
