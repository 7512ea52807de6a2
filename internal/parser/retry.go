package parser

// EffectiveRetryCount returns the value of the first qualifying "Retry: N"
// line, or 0 when there is none.
func (p *Patterns) EffectiveRetryCount(lines []string) int {
	for _, line := range lines {
		if n, ok := p.RetryValue(line); ok {
			return n
		}
	}
	return 0
}
