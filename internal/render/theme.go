package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/fjglira/LogTriage/internal/domain"
)

// Palette
const (
	colorText    = "252"
	colorFaint   = "243"
	colorAccent  = "39"
	colorSuccess = "42"
	colorWarning = "214"
	colorDanger  = "203"
	colorCommand = "75"
	colorReply   = "141"
)

// Styles holds the lipgloss styles used by the terminal views.
type Styles struct {
	Title    lipgloss.Style
	Faint    lipgloss.Style
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Pass     lipgloss.Style
	Retry    lipgloss.Style
	Fail     lipgloss.Style
	Step     lipgloss.Style
	Command  lipgloss.Style
	Response lipgloss.Style
	Border   lipgloss.Style
}

// DefaultStyles returns the built-in theme.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorAccent)).
			Bold(true),
		Faint: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorFaint)),
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorAccent)).
			Bold(true).
			Padding(0, 1),
		Cell: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorText)).
			Padding(0, 1),
		Pass: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorSuccess)),
		Retry: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorWarning)),
		Fail: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorDanger)).
			Bold(true),
		Step: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorAccent)).
			Bold(true),
		Command: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorCommand)),
		Response: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorReply)),
		Border: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorFaint)),
	}
}

// ForKind returns the style for an annotated line.
func (s Styles) ForKind(kind domain.LineKind) lipgloss.Style {
	switch kind {
	case domain.LineStepStart:
		return s.Step
	case domain.LinePass:
		return s.Pass
	case domain.LineFail:
		return s.Fail
	case domain.LineCommand:
		return s.Command
	case domain.LineResponse:
		return s.Response
	default:
		return lipgloss.NewStyle()
	}
}

// ConfigureColor picks the color profile: plain ASCII when noColor is set,
// otherwise whatever the environment and terminal support.
func ConfigureColor(noColor bool) {
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.EnvColorProfile())
}
