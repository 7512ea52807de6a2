package config

import (
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/fjglira/LogTriage/internal/domain"
)

// Config is the top-level configuration struct.
type Config struct {
	Input     InputConfig    `yaml:"input" toml:"input"`
	Patterns  PatternConfig  `yaml:"patterns" toml:"patterns"`
	Parser    ParserConfig   `yaml:"parser" toml:"parser"`
	Output    OutputConfig   `yaml:"output" toml:"output"`
	Templates TemplateConfig `yaml:"templates" toml:"templates"`
	Script    string         `yaml:"script" toml:"script"`
	Parallel  int            `yaml:"parallel" toml:"parallel"`
	Logging   LoggingConfig  `yaml:"logging" toml:"logging"`
	DryRun    bool           `yaml:"dry_run" toml:"dry_run"`
}

type InputConfig struct {
	Paths     []string `yaml:"paths" toml:"paths"`
	Include   []string `yaml:"include" toml:"include"`
	Exclude   []string `yaml:"exclude" toml:"exclude"`
	Recursive *bool    `yaml:"recursive" toml:"recursive"` // pointer to distinguish unset from false
	Encoding  string   `yaml:"encoding" toml:"encoding"`
}

// PatternConfig holds the regular expressions used to classify log lines.
type PatternConfig struct {
	StepStart    string   `yaml:"step_start" toml:"step_start"`
	StepEnd      string   `yaml:"step_end" toml:"step_end"` // %s is replaced with the quoted step number
	Command      string   `yaml:"command" toml:"command"`
	Response     string   `yaml:"response" toml:"response"`
	Retry        string   `yaml:"retry" toml:"retry"`
	RetryExclude string   `yaml:"retry_exclude" toml:"retry_exclude"`
	TestID       string   `yaml:"test_id" toml:"test_id"`
	FailKeywords []string `yaml:"fail_keywords" toml:"fail_keywords"`
}

type ParserConfig struct {
	CloseOnFail *bool `yaml:"close_on_fail" toml:"close_on_fail"`
}

type OutputConfig struct {
	Directory  string `yaml:"directory" toml:"directory"`
	FilePrefix string `yaml:"file_prefix" toml:"file_prefix"`
	Workbook   *bool  `yaml:"workbook" toml:"workbook"`
	Report     string `yaml:"report" toml:"report"` // "markdown", "html" or "none"
}

type TemplateConfig struct {
	Directory string `yaml:"directory" toml:"directory"`
	Default   string `yaml:"default" toml:"default"`
}

type LoggingConfig struct {
	Level string `yaml:"level" toml:"level"`
	File  string `yaml:"file" toml:"file"`
}

// Load reads a YAML (or, for *.toml paths, TOML) configuration file and
// returns a Config layered over DefaultConfig.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewError("config", path, 0, "failed to read config file", err)
	}

	cfg := DefaultConfig()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, domain.NewError("config", path, 0, "failed to parse config file", err)
	}

	return cfg, nil
}

// IsRecursive reports whether folder inputs are walked recursively.
func (c *Config) IsRecursive() bool {
	return c.Input.Recursive == nil || *c.Input.Recursive
}

// CloseOnFail reports whether a FAIL keyword closes the open step immediately.
func (c *Config) CloseOnFail() bool {
	return c.Parser.CloseOnFail == nil || *c.Parser.CloseOnFail
}

// WriteWorkbook reports whether the Excel workbook should be written.
func (c *Config) WriteWorkbook() bool {
	return c.Output.Workbook == nil || *c.Output.Workbook
}
