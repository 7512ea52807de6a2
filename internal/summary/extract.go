package summary

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/fjglira/LogTriage/internal/domain"
)

var (
	timestampRe     = regexp.MustCompile(`(\d{4})[/-](\d{2})[/-](\d{2})[ T](\d{2}:\d{2}:\d{2})`)
	fileStampRe     = regexp.MustCompile(`(?:^|[^0-9])(\d{4})(\d{2})(\d{2})(\d{2})(\d{2})(\d{2})(?:[^0-9]|$)`)
	onOffRe         = regexp.MustCompile(`(?i)(?:on\s*/\s*off|power\s*mode)\s*[:=]\s*"?(on|off)\b`)
	powerCommandRe  = regexp.MustCompile(`(?i):power\s*,\s*"?(on|off)\b`)
	totalDurationRe = regexp.MustCompile(`(?i)total\s+(?:test\s+)?time\s*[:=]?\s*([\d.]+)\s*(?:s|sec)`)
	stepDurationRe  = regexp.MustCompile(`-{5}\s*([\d.]+)\s*Sec\.`)
)

// Extract pulls best-effort metadata out of a log. Nothing here is fatal:
// fields that cannot be found stay empty.
func Extract(fileName string, lines []string) domain.FileSummary {
	var s domain.FileSummary

	for _, line := range lines {
		if m := timestampRe.FindStringSubmatch(line); m != nil {
			s.TestDate = fmt.Sprintf("%s/%s/%s", m[1], m[2], m[3])
			s.TestTime = m[4]
			break
		}
	}
	if s.TestDate == "" {
		if m := fileStampRe.FindStringSubmatch(filepath.Base(fileName)); m != nil {
			s.TestDate = fmt.Sprintf("%s/%s/%s", m[1], m[2], m[3])
			s.TestTime = fmt.Sprintf("%s:%s:%s", m[4], m[5], m[6])
		}
	}

	s.OnOff = onOff(lines)
	s.DurationSeconds, s.HasDuration = duration(lines)
	return s
}

func onOff(lines []string) string {
	for _, line := range lines {
		if m := onOffRe.FindStringSubmatch(line); m != nil {
			return strings.ToUpper(m[1])
		}
	}
	for _, line := range lines {
		if m := powerCommandRe.FindStringSubmatch(line); m != nil {
			return strings.ToUpper(m[1])
		}
	}
	return ""
}

// duration prefers an explicit total and falls back to summing per-step timings.
func duration(lines []string) (float64, bool) {
	for _, line := range lines {
		if m := totalDurationRe.FindStringSubmatch(line); m != nil {
			if v, err := strconv.ParseFloat(strings.TrimSuffix(m[1], "."), 64); err == nil {
				return v, true
			}
		}
	}

	var total float64
	found := false
	for _, line := range lines {
		if m := stepDurationRe.FindStringSubmatch(line); m != nil {
			if v, err := strconv.ParseFloat(strings.TrimSuffix(m[1], "."), 64); err == nil {
				total += v
				found = true
			}
		}
	}
	return total, found
}

// FormatDuration renders seconds as "1h02m03s" / "2m03.5s" / "12.5s".
func FormatDuration(s domain.FileSummary) string {
	if !s.HasDuration {
		return ""
	}
	secs := s.DurationSeconds
	h := int(secs) / 3600
	m := (int(secs) % 3600) / 60
	rest := secs - float64(h*3600+m*60)
	switch {
	case h > 0:
		return fmt.Sprintf("%dh%02dm%02.0fs", h, m, rest)
	case m > 0:
		return fmt.Sprintf("%dm%s", m, trimFloat(rest)+"s")
	default:
		return trimFloat(rest) + "s"
	}
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
