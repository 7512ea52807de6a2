package domain

import "fmt"

// LogTriageError is the base error type with context.
type LogTriageError struct {
	Phase      string // "config", "scan", "parse", "script", "export", "template", "write"
	File       string
	LineNumber int
	Message    string
	Suggestion string
	Cause      error
}

func (e *LogTriageError) Error() string {
	s := fmt.Sprintf("[%s]", e.Phase)
	if e.File != "" {
		s += fmt.Sprintf(" %s", e.File)
	}
	if e.LineNumber > 0 {
		s += fmt.Sprintf(":%d", e.LineNumber)
	}
	s += fmt.Sprintf(": %s", e.Message)
	if e.Cause != nil {
		s += fmt.Sprintf(": %v", e.Cause)
	}
	if e.Suggestion != "" {
		s += fmt.Sprintf(" (hint: %s)", e.Suggestion)
	}
	return s
}

func (e *LogTriageError) Unwrap() error {
	return e.Cause
}

// NewError creates a new LogTriageError.
func NewError(phase, file string, line int, message string, cause error) *LogTriageError {
	return &LogTriageError{
		Phase:      phase,
		File:       file,
		LineNumber: line,
		Message:    message,
		Cause:      cause,
	}
}

// NewErrorWithSuggestion creates a LogTriageError carrying a hint for the user.
func NewErrorWithSuggestion(phase, file string, line int, message, suggestion string, cause error) *LogTriageError {
	err := NewError(phase, file, line, message, cause)
	err.Suggestion = suggestion
	return err
}
