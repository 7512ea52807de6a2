package config

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/fjglira/LogTriage/internal/domain"
)

// Validate checks the Config for required fields and valid values.
func Validate(cfg *Config) error {
	var errs []string

	// Input validation
	if len(cfg.Input.Paths) == 0 {
		errs = append(errs, "input.paths must not be empty")
	}
	if len(cfg.Input.Include) == 0 {
		errs = append(errs, "input.include must not be empty")
	}
	if cfg.Input.Encoding != "" {
		if _, err := htmlindex.Get(cfg.Input.Encoding); err != nil {
			errs = append(errs, fmt.Sprintf("input.encoding %q is not a known encoding", cfg.Input.Encoding))
		}
	}

	// Patterns must compile; the step start needs both capture groups
	patterns := map[string]string{
		"patterns.step_start": cfg.Patterns.StepStart,
		"patterns.command":    cfg.Patterns.Command,
		"patterns.response":   cfg.Patterns.Response,
		"patterns.retry":      cfg.Patterns.Retry,
		"patterns.test_id":    cfg.Patterns.TestID,
	}
	for _, key := range []string{"patterns.step_start", "patterns.command", "patterns.response", "patterns.retry", "patterns.test_id"} {
		expr := patterns[key]
		if expr == "" {
			errs = append(errs, fmt.Sprintf("%s must not be empty", key))
			continue
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s is not a valid regex: %v", key, err))
			continue
		}
		if key == "patterns.step_start" && re.NumSubexp() < 2 {
			errs = append(errs, "patterns.step_start must capture the step number and the step name")
		}
	}
	if !strings.Contains(cfg.Patterns.StepEnd, "%s") {
		errs = append(errs, "patterns.step_end must contain %s for the step number")
	} else if _, err := regexp.Compile(fmt.Sprintf(cfg.Patterns.StepEnd, "001")); err != nil {
		errs = append(errs, fmt.Sprintf("patterns.step_end is not a valid regex: %v", err))
	}
	if len(cfg.Patterns.FailKeywords) == 0 {
		errs = append(errs, "patterns.fail_keywords must not be empty")
	}

	// Output validation
	if cfg.Output.Directory == "" {
		errs = append(errs, "output.directory must not be empty")
	}
	switch cfg.Output.Report {
	case "", "none", "markdown", "html":
	default:
		errs = append(errs, fmt.Sprintf("output.report must be one of: markdown, html, none (got %q)", cfg.Output.Report))
	}

	if cfg.Parallel < 0 {
		errs = append(errs, "parallel must not be negative")
	}

	// Validate logging level
	if cfg.Logging.Level != "" {
		validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
		if !validLevels[cfg.Logging.Level] {
			errs = append(errs, fmt.Sprintf("logging.level must be one of: debug, info, warn, error (got %q)", cfg.Logging.Level))
		}
	}

	if len(errs) > 0 {
		return domain.NewError("config", "", 0, fmt.Sprintf("validation failed: %s", strings.Join(errs, "; ")), nil)
	}

	return nil
}
