package report

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/fjglira/LogTriage/internal/domain"
	"github.com/fjglira/LogTriage/internal/summary"
)

// CustomFuncMap returns the custom template functions available in templates.
func CustomFuncMap() template.FuncMap {
	return template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"toLower":   strings.ToLower,
		"toUpper":   strings.ToUpper,
		"replace":   strings.ReplaceAll,
		"trimSpace": strings.TrimSpace,
		"contains":  strings.Contains,
		"join":      strings.Join,
		"indent": func(spaces int, s string) string {
			pad := strings.Repeat(" ", spaces)
			lines := strings.Split(s, "\n")
			for i, line := range lines {
				if line != "" {
					lines[i] = pad + line
				}
			}
			return strings.Join(lines, "\n")
		},
		"cell":     tableCell,
		"text":     inlineText,
		"code":     codeSpan,
		"duration": summary.FormatDuration,
		"percent": func(part, total int) string {
			if total == 0 {
				return "0%"
			}
			return fmt.Sprintf("%.1f%%", float64(part)/float64(total)*100)
		},
		"numbered": func(s domain.TestStep) string {
			return s.NumberedLog()
		},
		"fileNames": func(files []*domain.ParseResult) []string {
			names := make([]string, len(files))
			for i, f := range files {
				names[i] = f.SourceFile
			}
			return names
		},
	}
}

// markdownEscaper makes log text render literally, in Markdown and in the
// HTML converted from it.
var markdownEscaper = strings.NewReplacer(
	"&", "&amp;", "<", "&lt;", ">", "&gt;",
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "[", `\[`, "]", `\]`, "|", `\|`,
)

// tableCell makes a value safe inside a Markdown table cell.
func tableCell(s string) string {
	s = markdownEscaper.Replace(s)
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "<br>")
	if s == "" {
		return "-"
	}
	return s
}

// inlineText makes a value safe in running Markdown text on a single line.
func inlineText(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	return markdownEscaper.Replace(strings.ReplaceAll(s, "\n", " "))
}

// codeSpan wraps a value in a code span whose fence is longer than any
// backtick run inside it.
func codeSpan(s string) string {
	s = strings.ReplaceAll(strings.ReplaceAll(s, "\r", ""), "\n", " ")
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	longest, run := 0, 0
	for _, r := range s {
		if r != '`' {
			run = 0
			continue
		}
		run++
		if run > longest {
			longest = run
		}
	}
	fence := strings.Repeat("`", longest+1)
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		s = " " + s + " "
	}
	return fence + s + fence
}
