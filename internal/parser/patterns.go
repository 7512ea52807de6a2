package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/fjglira/LogTriage/internal/config"
)

// Patterns holds the compiled line classifiers, tried in priority order:
// step start, step end, command, response, fail keyword.
type Patterns struct {
	stepStart    *regexp.Regexp
	stepEnd      string
	command      *regexp.Regexp
	response     *regexp.Regexp
	retry        *regexp.Regexp
	retryExclude string
	testID       *regexp.Regexp
	failKeywords []string

	mu       sync.Mutex
	endCache map[string]*regexp.Regexp
}

// NewPatterns compiles the configured patterns.
func NewPatterns(cfg config.PatternConfig) (*Patterns, error) {
	compile := func(name, expr string) (*regexp.Regexp, error) {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid %s pattern: %w", name, err)
		}
		return re, nil
	}

	p := &Patterns{
		stepEnd:      cfg.StepEnd,
		retryExclude: cfg.RetryExclude,
		endCache:     make(map[string]*regexp.Regexp),
	}
	var err error
	if p.stepStart, err = compile("step_start", cfg.StepStart); err != nil {
		return nil, err
	}
	if p.stepStart.NumSubexp() < 2 {
		return nil, fmt.Errorf("step_start pattern must capture the step number and name")
	}
	if p.command, err = compile("command", cfg.Command); err != nil {
		return nil, err
	}
	if p.response, err = compile("response", cfg.Response); err != nil {
		return nil, err
	}
	if p.retry, err = compile("retry", cfg.Retry); err != nil {
		return nil, err
	}
	if p.testID, err = compile("test_id", cfg.TestID); err != nil {
		return nil, err
	}
	if _, err = compile("step_end", fmt.Sprintf(cfg.StepEnd, "0")); err != nil {
		return nil, err
	}
	for _, kw := range cfg.FailKeywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			p.failKeywords = append(p.failKeywords, strings.ToUpper(kw))
		}
	}
	return p, nil
}

// DefaultPatterns returns the patterns of DefaultConfig.
func DefaultPatterns() *Patterns {
	p, err := NewPatterns(config.DefaultConfig().Patterns)
	if err != nil {
		panic(err)
	}
	return p
}

// StepStart extracts the numeric step id and the label from a step-start marker.
func (p *Patterns) StepStart(line string) (number, name string, ok bool) {
	m := p.stepStart.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], strings.TrimSpace(m[2]), true
}

// IsStepEnd reports whether line closes the step with the given numeric id.
func (p *Patterns) IsStepEnd(line, number string) bool {
	if number == "" {
		return false
	}
	return p.endPattern(number).MatchString(line)
}

func (p *Patterns) endPattern(number string) *regexp.Regexp {
	p.mu.Lock()
	defer p.mu.Unlock()
	if re, ok := p.endCache[number]; ok {
		return re
	}
	re := regexp.MustCompile(fmt.Sprintf(p.stepEnd, regexp.QuoteMeta(number)))
	p.endCache[number] = re
	return re
}

// Command returns the payload of an outbound command line.
func (p *Patterns) Command(line string) (string, bool) {
	return firstGroup(p.command, line)
}

// Response returns the payload of an inbound response line.
func (p *Patterns) Response(line string) (string, bool) {
	return firstGroup(p.response, line)
}

// TestID returns the test id announced by a "Run <ID>:" line.
func (p *Patterns) TestID(line string) (string, bool) {
	return firstGroup(p.testID, line)
}

// IsFailLine reports whether the line carries a fail keyword, ignoring case.
func (p *Patterns) IsFailLine(line string) bool {
	upper := strings.ToUpper(line)
	for _, kw := range p.failKeywords {
		if strings.Contains(upper, kw) {
			return true
		}
	}
	return false
}

// RetryValue returns the retry count announced on a line. Descriptive
// header lines ("Run XXX:YYY  Mode: 0, Retry: 3") never qualify.
func (p *Patterns) RetryValue(line string) (int, bool) {
	if p.retryExclude != "" && strings.Contains(line, p.retryExclude) {
		return 0, false
	}
	v, ok := firstGroup(p.retry, line)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func firstGroup(re *regexp.Regexp, line string) (string, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	if len(m) < 2 {
		return strings.TrimSpace(m[0]), true
	}
	return strings.TrimSpace(m[1]), true
}
