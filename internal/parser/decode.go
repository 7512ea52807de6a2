package parser

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
)

// Decode converts raw file bytes to text. Bytes that are invalid in the
// given encoding are dropped; an empty name means UTF-8.
func Decode(content []byte, encoding string) (string, error) {
	var text string
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "utf-8", "utf8":
		text = strings.ToValidUTF8(string(content), "")
	default:
		enc, err := htmlindex.Get(encoding)
		if err != nil {
			return "", err
		}
		decoded, err := enc.NewDecoder().Bytes(content)
		if err != nil {
			return "", err
		}
		text = strings.ReplaceAll(strings.ToValidUTF8(string(decoded), ""), string(utf8.RuneError), "")
	}
	return strings.TrimPrefix(text, "\ufeff"), nil
}

// SplitLines splits text into lines without their line terminators. A
// trailing newline does not produce an extra empty line.
func SplitLines(text string) []string {
	if text == "" {
		return []string{}
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
