package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/fjglira/LogTriage/internal/domain"
)

var stepHeaders = []string{"#", "Step", "Result", "Retry", "Command", "Response", "Lines"}

// maxCellWidth keeps long commands from blowing up the table.
const maxCellWidth = 40

// Renderer draws parse results for the terminal.
type Renderer struct {
	styles Styles
}

// NewRenderer creates a Renderer with the given styles.
func NewRenderer(styles Styles) *Renderer {
	return &Renderer{styles: styles}
}

// Annotated returns the whole log, numbered and colored by line kind. The
// first FAIL step start is marked with an arrow.
func (r *Renderer) Annotated(res *domain.ParseResult) string {
	var b strings.Builder
	for _, a := range res.Annotations {
		marker := "  "
		if a.Index == res.FailLineIdx {
			marker = r.styles.Fail.Render("→ ")
		}
		num := r.styles.Faint.Render(fmt.Sprintf("%5d", a.Index+1))
		fmt.Fprintf(&b, "%s%s  %s\n", marker, num, r.styles.ForKind(a.Kind).Render(a.Text))
	}
	return b.String()
}

// StepTable lists every step of a result, PASS items first.
func (r *Renderer) StepTable(res *domain.ParseResult) string {
	steps := res.Steps()
	rows := make([][]string, len(steps))
	for i, s := range steps {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			clip(s.StepName),
			s.Result,
			strconv.Itoa(s.RetryCount),
			clip(s.Command),
			clip(s.Response),
			fmt.Sprintf("%d-%d", s.StartLine+1, s.EndLine+1),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.styles.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.styles.Header
			}
			if col != 2 || row < 0 || row >= len(steps) {
				return r.styles.Cell
			}
			return r.resultStyle(steps[row]).Padding(0, 1)
		}).
		Headers(stepHeaders...).
		Rows(rows...)

	return t.String()
}

// Summary is a one-line overview of a result.
func (r *Renderer) Summary(res *domain.ParseResult) string {
	parts := []string{
		r.styles.Title.Render(res.SourceFile),
		r.styles.Faint.Render(string(res.LogType)),
		r.styles.Pass.Render(fmt.Sprintf("%d PASS", len(res.PassItems))),
		r.styles.Fail.Render(fmt.Sprintf("%d FAIL", len(res.FailItems))),
	}
	if s := res.Summary; s.TestDate != "" {
		parts = append(parts, r.styles.Faint.Render(strings.TrimSpace(s.TestDate+" "+s.TestTime)))
	}
	return strings.Join(parts, "  ")
}

// StepDetail shows one step's numbered log followed by its command/response digest.
func (r *Renderer) StepDetail(s domain.TestStep, exchanges []domain.Exchange) string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render(s.StepName))
	b.WriteString("  ")
	b.WriteString(r.resultStyle(s).Render(s.Result))
	b.WriteByte('\n')
	if s.ErrorReason != "" {
		fmt.Fprintf(&b, "%s %s\n", r.styles.Fail.Render("錯誤原因:"), s.ErrorReason)
	}
	b.WriteByte('\n')
	b.WriteString(s.NumberedLog())
	b.WriteString("\n\n")

	if len(exchanges) == 0 {
		return b.String()
	}
	b.WriteString(r.styles.Title.Render("指令/回應整理"))
	b.WriteByte('\n')
	for _, ex := range exchanges {
		cmd := ex.Command
		if cmd == "" {
			cmd = domain.NoCommandPlaceholder
		}
		fmt.Fprintf(&b, "%s %s\n", r.styles.Command.Render(">"), cmd)
		for _, resp := range ex.Responses {
			fmt.Fprintf(&b, "  %s %s\n", r.styles.Response.Render("<"), resp)
		}
	}
	return b.String()
}

func (r *Renderer) resultStyle(s domain.TestStep) lipgloss.Style {
	switch {
	case s.Failed():
		return r.styles.Fail
	case s.Retried():
		return r.styles.Retry
	default:
		return r.styles.Pass
	}
}

func clip(s string) string {
	runes := []rune(s)
	if len(runes) <= maxCellWidth {
		return s
	}
	return string(runes[:maxCellWidth-1]) + "…"
}
