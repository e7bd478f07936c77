package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// IsTTY reports whether f is an interactive terminal
func IsTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ConfigureColor turns styling off when requested or when out is not a terminal.
func ConfigureColor(noColor bool, out *os.File) {
	if noColor || !IsTTY(out) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// ColorSuccess colors text green
func ColorSuccess(text string) string {
	return successStyle.Render(text)
}

// ColorWarn colors text yellow
func ColorWarn(text string) string {
	return warnStyle.Render(text)
}

// ColorMuted dims text
func ColorMuted(text string) string {
	return mutedStyle.Render(text)
}

// ColorPath colors a file path cyan
func ColorPath(text string) string {
	return pathStyle.Render(text)
}
