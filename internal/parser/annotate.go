package parser

import (
	"strings"

	"github.com/fjglira/LogTriage/internal/domain"
)

// Annotate classifies every raw line for display. Step starts win over
// verdict keywords, which win over command/response shapes.
func (p *Patterns) Annotate(lines []string) []domain.LineAnnotation {
	out := make([]domain.LineAnnotation, len(lines))
	for i, line := range lines {
		kind := domain.LinePlain
		upper := strings.ToUpper(line)
		switch {
		case p.stepStart.MatchString(line):
			kind = domain.LineStepStart
		case strings.Contains(upper, "PASS"):
			kind = domain.LinePass
		case strings.Contains(upper, "FAIL") || strings.Contains(upper, "ERROR"):
			kind = domain.LineFail
		case p.command.MatchString(line):
			kind = domain.LineCommand
		case p.response.MatchString(line):
			kind = domain.LineResponse
		}
		out[i] = domain.LineAnnotation{Index: i, Text: line, Kind: kind}
	}
	return out
}
