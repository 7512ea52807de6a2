package parser

import (
	"regexp"
	"strings"
)

var failPhrase = regexp.MustCompile(`(?i)\bis\s+fail(?:ed)?\b`)

// ExtractFailReason turns a fail line into a short reason.
//
//	"VSCH026-043:Check Firmware version is Fail ! <ErrorCode: BSFR18>"
//	-> "Check Firmware version is Fail"
//
// Lines without a "label: ... is fail" shape are returned trimmed.
func ExtractFailReason(line string) string {
	trimmed := strings.TrimSpace(line)
	loc := failPhrase.FindStringIndex(trimmed)
	if loc == nil {
		return trimmed
	}
	// The colon nearest the phrase, so a leading timestamp does not win.
	colon := strings.LastIndex(trimmed[:loc[0]], ":")
	if colon < 0 {
		return trimmed
	}
	if reason := strings.TrimSpace(trimmed[colon+1 : loc[1]]); reason != "" {
		return reason
	}
	return trimmed
}
