package config

// Default patterns for the test-equipment log format.
const (
	DefaultStepStart    = `Do\s+@STEP(\d+)@([^@\n]+)`
	DefaultStepEnd      = `(?i)@(?:STEP)?%s@.*Test is Pass !`
	DefaultCommand      = `(?:\([A-Za-z0-9_ ]+\)|\[[A-Za-z0-9_ ]+\])?\s*>\s*(.+)`
	DefaultResponse     = `(?:\([A-Za-z0-9_ ]+\)|\[[A-Za-z0-9_ ]+\])?\s*<\s*(.+)`
	DefaultRetry        = `Retry:\s*(\d+)`
	DefaultRetryExclude = "Run "
	DefaultTestID       = `Run ([A-Z0-9]+-\d+):`
)

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	recursive := true
	closeOnFail := true
	workbook := true
	return &Config{
		Input: InputConfig{
			Paths:     []string{"logs"},
			Include:   []string{"*.log", "*.LOG"},
			Exclude:   []string{},
			Recursive: &recursive,
			Encoding:  "utf-8",
		},
		Patterns: PatternConfig{
			StepStart:    DefaultStepStart,
			StepEnd:      DefaultStepEnd,
			Command:      DefaultCommand,
			Response:     DefaultResponse,
			Retry:        DefaultRetry,
			RetryExclude: DefaultRetryExclude,
			TestID:       DefaultTestID,
			FailKeywords: []string{"FAIL", "FAILED", "ERROR"},
		},
		Parser: ParserConfig{
			CloseOnFail: &closeOnFail,
		},
		Output: OutputConfig{
			Directory:  "reports",
			FilePrefix: "log_analysis_",
			Workbook:   &workbook,
			Report:     "markdown",
		},
		Templates: TemplateConfig{
			Default: "summary",
		},
		Parallel: 4,
		Logging: LoggingConfig{
			Level: "info",
		},
		DryRun: false,
	}
}
