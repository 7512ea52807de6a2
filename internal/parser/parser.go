package parser

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/fjglira/LogTriage/internal/config"
	"github.com/fjglira/LogTriage/internal/domain"
	"github.com/fjglira/LogTriage/internal/scanner"
	"github.com/fjglira/LogTriage/internal/summary"
)

// LogParser turns test-equipment logs into classified test steps.
type LogParser struct {
	patterns    *Patterns
	scanner     scanner.Scanner
	encoding    string
	closeOnFail bool
	include     []string
	exclude     []string
	parallel    int
	log         *logrus.Logger
}

// New creates a LogParser from the configuration. The scanner is used for
// folder inputs.
func New(cfg *config.Config, s scanner.Scanner, log *logrus.Logger) (*LogParser, error) {
	patterns, err := NewPatterns(cfg.Patterns)
	if err != nil {
		return nil, domain.NewErrorWithSuggestion("config", "", 0,
			"failed to compile log patterns", "check the patterns section of the config file", err)
	}
	return &LogParser{
		patterns:    patterns,
		scanner:     s,
		encoding:    cfg.Input.Encoding,
		closeOnFail: cfg.CloseOnFail(),
		include:     cfg.Input.Include,
		exclude:     cfg.Input.Exclude,
		parallel:    cfg.Parallel,
		log:         log,
	}, nil
}

// Patterns returns the compiled line classifiers.
func (p *LogParser) Patterns() *Patterns {
	return p.patterns
}

// ParseFile reads and parses one log file. A file that cannot be read or
// decoded yields an empty result; the failure is logged, not returned.
func (p *LogParser) ParseFile(path string) *domain.ParseResult {
	content, err := os.ReadFile(path)
	if err != nil {
		p.log.Warnf("Failed to read %s: %v", path, err)
		return domain.NewEmptyResult(filepath.Base(path))
	}
	return p.Parse(path, content)
}

// Parse decodes content and parses it as the log named fileName.
func (p *LogParser) Parse(fileName string, content []byte) *domain.ParseResult {
	text, err := Decode(content, p.encoding)
	if err != nil {
		p.log.Warnf("Failed to decode %s as %s: %v", fileName, p.encoding, err)
		return domain.NewEmptyResult(filepath.Base(fileName))
	}
	return p.ParseLines(fileName, SplitLines(text))
}

// ParseLines classifies already split lines. The mode comes from fileName only.
func (p *LogParser) ParseLines(fileName string, lines []string) *domain.ParseResult {
	base := filepath.Base(fileName)
	mode := ModeFor(base)
	strat := newStrategy(mode, p.patterns, p.closeOnFail)

	pass, fail := newMachine(p.patterns, strat, lines).run()
	tagSource(pass, base)
	tagSource(fail, base)

	result := &domain.ParseResult{
		SourceFile:  base,
		LogType:     strat.logType(),
		PassItems:   pass,
		FailItems:   fail,
		RawLines:    lines,
		FailLineIdx: domain.NoLine,
		Annotations: p.patterns.Annotate(lines),
		Summary:     summary.Extract(base, lines),
	}
	if len(fail) > 0 {
		result.LastFail = &result.FailItems[0]
		result.FailLineIdx = fail[0].StartLine
	}

	p.log.Debugf("Parsed %s in %s mode: %d PASS, %d FAIL", base, mode, len(pass), len(fail))
	return result
}

func tagSource(steps []domain.TestStep, name string) {
	for i := range steps {
		steps[i].SourceFile = name
		for j := range steps[i].Members {
			steps[i].Members[j].SourceFile = name
		}
	}
}
