package parser

import (
	"path/filepath"
	"strings"

	"github.com/fjglira/LogTriage/internal/domain"
)

// Mode is the parsing strategy selected from the file name.
type Mode int

const (
	// PassMode treats every step as passing; steps end at their end marker.
	PassMode Mode = iota
	// FailMode classifies each step on its own from end markers and fail keywords.
	FailMode
)

func (m Mode) String() string {
	if m == PassMode {
		return "PASS"
	}
	return "FAIL"
}

// ModeFor selects PassMode when the base file name contains "PASS" in any
// case, FailMode otherwise. Content is never consulted.
func ModeFor(fileName string) Mode {
	if strings.Contains(strings.ToUpper(filepath.Base(fileName)), "PASS") {
		return PassMode
	}
	return FailMode
}

type verdict int

const (
	verdictNone verdict = iota
	verdictPass
	verdictFail
)

// strategy decides how an open step is classified apart from its end marker.
type strategy interface {
	logType() domain.LogType
	// inspect sees every line appended to an open step after the end-marker check.
	inspect(open *openStep, line string) verdict
	// atEOF classifies a step still open when the input ends.
	atEOF(open *openStep) verdict
}

func newStrategy(mode Mode, patterns *Patterns, closeOnFail bool) strategy {
	if mode == PassMode {
		return passStrategy{}
	}
	return failStrategy{patterns: patterns, closeOnFail: closeOnFail}
}

type passStrategy struct{}

func (passStrategy) logType() domain.LogType { return domain.LogTypePass }

func (passStrategy) inspect(*openStep, string) verdict { return verdictNone }

func (passStrategy) atEOF(*openStep) verdict { return verdictPass }

type failStrategy struct {
	patterns    *Patterns
	closeOnFail bool
}

func (failStrategy) logType() domain.LogType { return domain.LogTypeFail }

func (s failStrategy) inspect(open *openStep, line string) verdict {
	if !s.patterns.IsFailLine(line) {
		return verdictNone
	}
	// the latest fail line is the reason
	open.sawFail = true
	open.failLine = line
	if s.closeOnFail {
		return verdictFail
	}
	return verdictNone
}

// atEOF keeps the existing policy: a step cut off without any recognized
// fail keyword counts as PASS.
func (failStrategy) atEOF(open *openStep) verdict {
	if open.sawFail {
		return verdictFail
	}
	return verdictPass
}
