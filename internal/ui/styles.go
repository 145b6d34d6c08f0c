package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/gubarz/sloc/internal/termstyle"
)

// StyleManager encapsulates all browser styles
type StyleManager struct {
	// List view styles
	Path     lipgloss.Style
	Code     lipgloss.Style
	Blank    lipgloss.Style
	Comment  lipgloss.Style
	Warning  lipgloss.Style
	Selected lipgloss.Style
	Cursor   lipgloss.Style
	Dim      lipgloss.Style

	// Detail pane styles
	DetailHeader lipgloss.Style
	Bar          lipgloss.Style

	// Chrome styles
	Divider lipgloss.Style

	SelectedBg lipgloss.Color
}

// DefaultStyles returns a StyleManager with default styles
func DefaultStyles() *StyleManager {
	return NewStyles(termstyle.DefaultPalette())
}

// NewStyles builds browser styles from the configured palette
func NewStyles(p termstyle.Palette) *StyleManager {
	selectedBg := lipgloss.Color("236")
	return &StyleManager{
		Path:         lipgloss.NewStyle(),
		Code:         lipgloss.NewStyle().Foreground(termstyle.ParseColor(p.Code)),
		Blank:        lipgloss.NewStyle().Foreground(termstyle.ParseColor(p.Blank)),
		Comment:      lipgloss.NewStyle().Foreground(termstyle.ParseColor(p.Comment)),
		Warning:      lipgloss.NewStyle().Foreground(termstyle.ParseColor(p.Warning)),
		Selected:     lipgloss.NewStyle().Background(selectedBg),
		Cursor:       lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		Dim:          lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		DetailHeader: lipgloss.NewStyle().Bold(true).Foreground(termstyle.ParseColor(p.Header)),
		Bar:          lipgloss.NewStyle(),
		Divider:      lipgloss.NewStyle().Foreground(termstyle.ParseColor(p.Delimiter)),
		SelectedBg:   selectedBg,
	}
}

// WithSelection returns a copy of the given style with the selected background applied
func (s *StyleManager) WithSelection(style lipgloss.Style) lipgloss.Style {
	return style.Background(s.SelectedBg)
}
