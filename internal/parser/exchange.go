package parser

import (
	"regexp"

	"github.com/fjglira/LogTriage/internal/domain"
)

var lineNumberPrefix = regexp.MustCompile(`^\s*\d+\.\s`)

// Exchanges groups a step's lines into command -> responses pairs. Replies
// seen before any command are collected under an empty command. Numbered
// lines ("  12. > :Power") are accepted as well as raw ones.
func (p *Patterns) Exchanges(lines []string) []domain.Exchange {
	var out []domain.Exchange
	var current *domain.Exchange
	for _, raw := range lines {
		line := lineNumberPrefix.ReplaceAllString(raw, "")
		if _, _, ok := p.StepStart(line); ok {
			continue
		}
		if cmd, ok := p.Command(line); ok {
			if current != nil {
				out = append(out, *current)
			}
			current = &domain.Exchange{Command: cmd}
			continue
		}
		if resp, ok := p.Response(line); ok {
			if current == nil {
				current = &domain.Exchange{}
			}
			current.Responses = append(current.Responses, resp)
		}
	}
	if current != nil {
		out = append(out, *current)
	}
	return out
}
