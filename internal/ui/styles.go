package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color palette
// - Default (white/black): Primary text
// - Accent (soft purple #A78BFA): Highlights, game URLs, motif names
// - Muted (gray): Secondary info, plies, counts
// - No colored success/error/warning - use unicode symbols only

var (
	// Accent style for game URLs, motif names, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA"))

	// Muted style for secondary info, hints, ply numbers
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA")).Bold(true)
)

// ConfigureTheme overrides the accent color. Empty keeps the default.
func ConfigureTheme(accent string) {
	if accent == "" {
		return
	}
	color := lipgloss.Color(accent)
	Accent = lipgloss.NewStyle().Foreground(color)
	AccentBold = lipgloss.NewStyle().Foreground(color).Bold(true)
}

// IsInteractive reports whether stdout is a terminal. Styling is
// skipped when output is piped.
func IsInteractive() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// Styled renders text with the style when interactive, plain otherwise.
func Styled(style lipgloss.Style, text string) string {
	if !IsInteractive() {
		return text
	}
	return style.Render(text)
}
