package ui

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gubarz/sloc/internal/report"
	"github.com/gubarz/sloc/internal/termstyle"
)

// ErrNoEntries is returned when there is nothing to browse
var ErrNoEntries = errors.New("no files to browse")

// getTTY returns file handles for TUI input/output.
// Uses /dev/tty when stdout is redirected so the report can still be piped.
func getTTY() (in *os.File, out *os.File, cleanup func()) {
	var closers []func()

	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) == 0 {
		out, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
		if err != nil {
			out = os.Stderr
		} else {
			closers = append(closers, func() { out.Close() })
		}

		in, err := os.OpenFile("/dev/tty", os.O_RDONLY, 0)
		if err != nil {
			in = os.Stdin
		} else {
			closers = append(closers, func() { in.Close() })
		}

		// Tell lipgloss to use the TTY for color detection
		lipgloss.SetDefaultRenderer(lipgloss.NewRenderer(out))

		return in, out, func() {
			for _, c := range closers {
				c()
			}
		}
	}

	return os.Stdin, os.Stdout, func() {}
}

// Run launches the interactive results browser
func Run(entries []report.Entry, palette termstyle.Palette) error {
	if len(entries) == 0 {
		return ErrNoEntries
	}

	ttyIn, ttyOut, cleanup := getTTY()
	defer cleanup()

	// Styles are built after getTTY so they pick up the right renderer
	m := newBrowserModel(entries, NewStyles(palette))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(ttyOut), tea.WithInput(ttyIn))
	_, err := p.Run()
	return err
}
