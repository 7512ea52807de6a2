package domain

import (
	"fmt"
	"strings"
)

// Result labels and placeholders shared by the parser and the exporters.
const (
	ResultPass = "PASS"
	ResultFail = "FAIL"

	// NoCommandPlaceholder marks a step (or group) whose outbound command was never seen.
	NoCommandPlaceholder = "未找到指令"
	// NoResponsePlaceholder marks a step whose inbound reply was never seen.
	NoResponsePlaceholder = "無收到反饋值"

	// NoLine is used for line offsets that do not exist.
	NoLine = -1
)

// LogType tells how a ParseResult was produced.
type LogType string

const (
	LogTypePass    LogType = "PASS"
	LogTypeFail    LogType = "FAIL"
	LogTypeMulti   LogType = "MULTI"
	LogTypeUnknown LogType = "UNKNOWN"
)

// TestStep is one parsed unit of a test log.
type TestStep struct {
	StepName    string
	StepNumber  string // numeric id from "Do @STEP<id>@"
	TestID      string // "Run <ID>:" found shortly before the step start
	Command     string
	Response    string
	Result      string // "PASS", "PASS (Retry N)" or "FAIL"
	RetryCount  int
	ErrorReason string
	FullLog     []string

	StartLine int // 0-based offset of the first line in the source file
	EndLine   int // 0-based offset of the last line in the source file

	IsConsolidated bool
	Members        []TestStep // steps merged into a consolidated record
	IsMainFail     bool
	SourceFile     string
}

// PassResult returns the PASS label for the given effective retry count.
func PassResult(retries int) string {
	if retries > 1 {
		return fmt.Sprintf("PASS (Retry %d)", retries)
	}
	return ResultPass
}

// Failed reports whether the step was classified as FAIL.
func (s TestStep) Failed() bool {
	return s.Result == ResultFail
}

// Retried reports whether the step passed only after retries.
func (s TestStep) Retried() bool {
	return !s.Failed() && s.RetryCount > 1
}

// NumberedLog returns the full log with 1-based, right-aligned line numbers.
func (s TestStep) NumberedLog() string {
	if s.IsConsolidated {
		return strings.Join(s.FullLog, "\n")
	}
	return NumberLines(s.FullLog, "")
}

// NumberLines prefixes each line with its 1-based index, "%4d. " style.
func NumberLines(lines []string, indent string) string {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s%4d. %s", indent, i+1, line)
	}
	return b.String()
}

// LineKind classifies a raw log line for display.
type LineKind string

const (
	LineStepStart LineKind = "step"
	LinePass      LineKind = "pass"
	LineFail      LineKind = "fail"
	LineCommand   LineKind = "command"
	LineResponse  LineKind = "response"
	LinePlain     LineKind = "plain"
)

// LineAnnotation describes how a single raw line should be presented.
type LineAnnotation struct {
	Index int
	Text  string
	Kind  LineKind
}

// Exchange is one outbound command followed by the replies it received.
type Exchange struct {
	Command   string
	Responses []string
}

// FileSummary holds best-effort metadata extracted from a log file.
type FileSummary struct {
	TestDate        string
	TestTime        string
	OnOff           string // "ON", "OFF" or empty when unknown
	DurationSeconds float64
	HasDuration     bool
}

// ParseResult is what parsing a single file or a folder produces.
type ParseResult struct {
	SourceFile  string
	LogType     LogType
	PassItems   []TestStep
	FailItems   []TestStep
	RawLines    []string
	LastFail    *TestStep
	FailLineIdx int
	Annotations []LineAnnotation
	Summary     FileSummary

	// Files holds the per-file results a MULTI result was built from.
	Files []*ParseResult
}

// NewEmptyResult returns the result used when a file cannot be read.
func NewEmptyResult(sourceFile string) *ParseResult {
	return &ParseResult{
		SourceFile:  sourceFile,
		LogType:     LogTypeUnknown,
		PassItems:   []TestStep{},
		FailItems:   []TestStep{},
		RawLines:    []string{},
		FailLineIdx: NoLine,
	}
}

// Steps returns PASS items followed by FAIL items.
func (r *ParseResult) Steps() []TestStep {
	steps := make([]TestStep, 0, len(r.PassItems)+len(r.FailItems))
	steps = append(steps, r.PassItems...)
	return append(steps, r.FailItems...)
}

// FirstFailReason returns the error reason of the first FAIL item, if any.
func (r *ParseResult) FirstFailReason() (string, bool) {
	if len(r.FailItems) == 0 {
		return "", false
	}
	return r.FailItems[0].ErrorReason, true
}
