package termstyle

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette holds the configured ANSI color codes
type Palette struct {
	Header    string
	Code      string
	Blank     string
	Comment   string
	Delimiter string
	Warning   string
}

// DefaultPalette mirrors the config defaults
func DefaultPalette() Palette {
	return Palette{
		Header:    "36",
		Code:      "32",
		Blank:     "90",
		Comment:   "33",
		Delimiter: "90",
		Warning:   "31",
	}
}

// Styles encapsulates the report styles. When disabled every Paint call
// returns its input untouched so plain output stays byte-exact.
type Styles struct {
	Header    lipgloss.Style
	Code      lipgloss.Style
	Blank     lipgloss.Style
	Comment   lipgloss.Style
	Delimiter lipgloss.Style
	Warning   lipgloss.Style

	enabled bool
}

// Plain returns styles that never emit escape sequences
func Plain() *Styles {
	return &Styles{}
}

// New builds styles rendering to out with the given palette and profile
func New(out io.Writer, palette Palette, profile termenv.Profile, enabled bool) *Styles {
	if !enabled {
		return Plain()
	}
	r := lipgloss.NewRenderer(out)
	r.SetColorProfile(profile)

	return &Styles{
		Header:    r.NewStyle().Bold(true).Foreground(ParseColor(palette.Header)),
		Code:      r.NewStyle().Foreground(ParseColor(palette.Code)),
		Blank:     r.NewStyle().Foreground(ParseColor(palette.Blank)),
		Comment:   r.NewStyle().Foreground(ParseColor(palette.Comment)),
		Delimiter: r.NewStyle().Foreground(ParseColor(palette.Delimiter)),
		Warning:   r.NewStyle().Foreground(ParseColor(palette.Warning)),
		enabled:   true,
	}
}

// Enabled reports whether styling is active
func (s *Styles) Enabled() bool {
	return s != nil && s.enabled
}

// Paint renders text with style when styling is enabled
func (s *Styles) Paint(style lipgloss.Style, text string) string {
	if !s.Enabled() || text == "" {
		return text
	}
	return style.Render(text)
}

// ParseColor converts ANSI color codes (30-37, 90-97) to lipgloss colors;
// anything else is passed through as a lipgloss color string
func ParseColor(code string) lipgloss.Color {
	ansiToLipgloss := map[string]string{
		"30": "0", "31": "1", "32": "2", "33": "3",
		"34": "4", "35": "5", "36": "6", "37": "7",
		"90": "8", "91": "9", "92": "10", "93": "11",
		"94": "12", "95": "13", "96": "14", "97": "15",
	}
	if mapped, ok := ansiToLipgloss[code]; ok {
		return lipgloss.Color(mapped)
	}
	return lipgloss.Color(code)
}
