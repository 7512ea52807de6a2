package workbook

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/fjglira/LogTriage/internal/compare"
	"github.com/fjglira/LogTriage/internal/domain"
	"github.com/fjglira/LogTriage/internal/summary"
)

const (
	sheetPass    = "PASS"
	sheetFail    = "FAIL"
	sheetGroups  = "分組摘要"
	sheetStats   = "統計摘要"
	sheetCompare = "腳本比對"

	// Style
	patternType   = "pattern"
	patternValue  = 1
	headerBgColor = "D9E1F2"
	failBgColor   = "FFC7CE"
	retryBgColor  = "FFEB9C"
	linkColor     = "1265BE"

	// Excel refuses cells longer than 32767 characters.
	maxCellRunes   = 32000
	commentLines   = 40
	commentAuthor  = "LogTriage"
	defaultColWide = 14
)

var (
	passHeaders    = []string{"Step Name", "指令", "回應", "結果", "Retry 次數", "檔案"}
	failHeaders    = []string{"Step Name", "指令", "錯誤回應", "Retry 次數", "錯誤原因", "檔案"}
	fileHeaders    = []string{"檔案", "類型", "測試日期", "測試時間", "ON/OFF", "測試時長", "PASS 數", "FAIL 數", "分組"}
	compareHeaders = []string{"Test ID", "Status", "Note"}
)

// Input is everything the exporter writes.
type Input struct {
	Result     *domain.ParseResult
	PassGroups []summary.PassGroup
	FailGroups []summary.FailGroup
	Comparison []compare.Entry
}

// Exporter writes analysis results to a workbook file.
type Exporter interface {
	Export(path string, in Input) error
}

// ExcelExporter implements Exporter with excelize.
type ExcelExporter struct {
	log *logrus.Logger
}

// NewExporter creates a new ExcelExporter.
func NewExporter(log *logrus.Logger) *ExcelExporter {
	return &ExcelExporter{log: log}
}

type styles struct {
	header, fail, retry, link int
}

// Export writes the PASS, FAIL, group, statistics and (optional) script
// comparison sheets to path.
func (e *ExcelExporter) Export(path string, in Input) error {
	f := excelize.NewFile()
	defer f.Close()

	st, err := newStyles(f)
	if err != nil {
		return domain.NewError("export", path, 0, "failed to create cell styles", err)
	}

	if err := f.SetSheetName("Sheet1", sheetPass); err != nil {
		return domain.NewError("export", path, 0, "failed to rename default sheet", err)
	}
	for _, name := range []string{sheetFail, sheetGroups, sheetStats} {
		if _, err := f.NewSheet(name); err != nil {
			return domain.NewError("export", path, 0, fmt.Sprintf("failed to create sheet %s", name), err)
		}
	}

	result := in.Result
	if result == nil {
		result = domain.NewEmptyResult("")
	}

	failRows, err := e.writeSteps(f, st, result)
	if err != nil {
		return domain.NewError("export", path, 0, "failed to write step sheets", err)
	}
	if err := writeGroups(f, st, in, failRows); err != nil {
		return domain.NewError("export", path, 0, "failed to write group sheet", err)
	}
	if err := writeStats(f, st, result); err != nil {
		return domain.NewError("export", path, 0, "failed to write statistics sheet", err)
	}
	if len(in.Comparison) > 0 {
		if _, err := f.NewSheet(sheetCompare); err != nil {
			return domain.NewError("export", path, 0, "failed to create comparison sheet", err)
		}
		if err := writeComparison(f, st, in.Comparison); err != nil {
			return domain.NewError("export", path, 0, "failed to write comparison sheet", err)
		}
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return domain.NewErrorWithSuggestion("export", path, 0,
			"failed to save workbook",
			"close the workbook if it is open in Excel and check write permissions",
			err)
	}
	e.log.Infof("Workbook written: %s", path)
	return nil
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error
	fill := func(color string) excelize.Fill {
		return excelize.Fill{Type: patternType, Pattern: patternValue, Color: []string{color}}
	}
	if st.header, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, Fill: fill(headerBgColor)}); err != nil {
		return st, err
	}
	if st.fail, err = f.NewStyle(&excelize.Style{Fill: fill(failBgColor)}); err != nil {
		return st, err
	}
	if st.retry, err = f.NewStyle(&excelize.Style{Fill: fill(retryBgColor)}); err != nil {
		return st, err
	}
	if st.link, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: linkColor, Underline: "single"}}); err != nil {
		return st, err
	}
	return st, nil
}

// writeSteps fills the PASS and FAIL sheets and returns, per file result,
// the FAIL sheet row of its first FAIL item.
func (e *ExcelExporter) writeSteps(f *excelize.File, st styles, r *domain.ParseResult) (map[*domain.ParseResult]int, error) {
	pass := &sheetWriter{f: f, sheet: sheetPass}
	pass.header(passHeaders, st.header)
	for i, s := range r.PassItems {
		row := i + 2
		pass.row(row, s.StepName, s.Command, s.Response, s.Result, s.RetryCount, s.SourceFile)
		if s.Retried() {
			pass.style(row, len(passHeaders), st.retry)
		}
		pass.comment(row, s)
	}
	pass.widths(40, 30, 30, 16, 10, 36)
	if pass.err != nil {
		return nil, pass.err
	}

	fail := &sheetWriter{f: f, sheet: sheetFail}
	fail.header(failHeaders, st.header)
	for i, s := range r.FailItems {
		row := i + 2
		fail.row(row, s.StepName, s.Command, s.Response, s.RetryCount, s.ErrorReason, s.SourceFile)
		fail.style(row, len(failHeaders), st.fail)
		fail.comment(row, s)
	}

	// FAIL items are concatenated in file order
	failRows := make(map[*domain.ParseResult]int)
	offset := 0
	for _, file := range summary.Files(r) {
		if len(file.FailItems) > 0 {
			failRows[file] = offset + 2
		}
		offset += len(file.FailItems)
	}
	fail.widths(40, 30, 30, 10, 50, 36)
	e.log.Debugf("Wrote %d PASS and %d FAIL rows", len(r.PassItems), len(r.FailItems))
	return failRows, fail.err
}

func writeGroups(f *excelize.File, st styles, in Input, failRows map[*domain.ParseResult]int) error {
	w := &sheetWriter{f: f, sheet: sheetGroups}
	row := 1

	w.header([]string{"PASS 分組", "檔案數", "測項數", "測項順序", "檔案"}, st.header)
	row++
	labels := make(map[*domain.ParseResult]string)
	for i, g := range in.PassGroups {
		label := fmt.Sprintf("P%d", i+1)
		names := fileNames(g.Files, labels, label)
		w.row(row, label, len(g.Files), len(g.StepNames), strings.Join(g.StepNames, " → "), strings.Join(names, "\n"))
		row++
	}

	row++
	w.headerAt(row, []string{"FAIL 分組", "檔案數", "首個 FAIL 原因", "檔案"}, st.header)
	row++
	for i, g := range in.FailGroups {
		label := fmt.Sprintf("F%d", i+1)
		names := fileNames(g.Files, labels, label)
		w.row(row, label, len(g.Files), g.Reason, strings.Join(names, "\n"))
		if target, ok := failRows[g.Files[0]]; ok {
			w.link(3, row, fmt.Sprintf("%s!A%d", sheetFail, target), st.link)
		}
		row++
	}

	row++
	w.headerAt(row, fileHeaders, st.header)
	row++
	for _, file := range summary.Files(in.Result) {
		s := file.Summary
		w.row(row, file.SourceFile, string(file.LogType), s.TestDate, s.TestTime, s.OnOff,
			summary.FormatDuration(s), len(file.PassItems), len(file.FailItems), labels[file])
		if summary.IsFailFile(file) {
			w.style(row, len(fileHeaders), st.fail)
		}
		row++
	}
	w.widths(36, 10, 40, 60, 40, 12, 10, 10, 8)
	return w.err
}

func writeStats(f *excelize.File, st styles, r *domain.ParseResult) error {
	w := &sheetWriter{f: f, sheet: sheetStats}
	total := len(r.PassItems) + len(r.FailItems)
	rate := "0%"
	if total > 0 {
		rate = fmt.Sprintf("%.1f%%", float64(len(r.PassItems))/float64(total)*100)
	}
	w.header([]string{"項目", "數值"}, st.header)
	w.row(2, "檔案數", len(summary.Files(r)))
	w.row(3, "總測試數", total)
	w.row(4, "通過數", len(r.PassItems))
	w.row(5, "失敗數", len(r.FailItems))
	w.row(6, "成功率", rate)
	w.widths(16, 16)
	return w.err
}

func writeComparison(f *excelize.File, st styles, entries []compare.Entry) error {
	w := &sheetWriter{f: f, sheet: sheetCompare}
	w.header(compareHeaders, st.header)
	for i, e := range entries {
		row := i + 2
		w.row(row, e.TestID, string(e.Status), e.Note)
		switch e.Status {
		case compare.StatusFail:
			w.style(row, len(compareHeaders), st.fail)
		case compare.StatusNotExecuted:
			w.style(row, len(compareHeaders), st.retry)
		}
	}
	w.widths(20, 16, 24)
	return w.err
}

func fileNames(files []*domain.ParseResult, labels map[*domain.ParseResult]string, label string) []string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.SourceFile
		labels[f] = label
	}
	return names
}

// sheetWriter remembers the first error so rows can be written without
// checking every call.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) header(titles []string, style int) {
	w.headerAt(1, titles, style)
	if w.err == nil {
		w.err = w.f.SetPanes(w.sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		})
	}
}

func (w *sheetWriter) headerAt(row int, titles []string, style int) {
	values := make([]interface{}, len(titles))
	for i, t := range titles {
		values[i] = t
	}
	w.row(row, values...)
	w.style(row, len(titles), style)
}

func (w *sheetWriter) row(row int, values ...interface{}) {
	for i, v := range values {
		if w.err != nil {
			return
		}
		if s, ok := v.(string); ok {
			v = truncate(s)
		}
		w.err = w.f.SetCellValue(w.sheet, cellName(i+1, row), v)
	}
}

func (w *sheetWriter) style(row, cols, style int) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellStyle(w.sheet, cellName(1, row), cellName(cols, row), style)
}

func (w *sheetWriter) link(col, row int, location string, style int) {
	if w.err != nil {
		return
	}
	cell := cellName(col, row)
	if w.err = w.f.SetCellHyperLink(w.sheet, cell, location, "Location"); w.err != nil {
		return
	}
	w.err = w.f.SetCellStyle(w.sheet, cell, cell, style)
}

// comment attaches the head of the step's numbered log to its name cell.
func (w *sheetWriter) comment(row int, s domain.TestStep) {
	if w.err != nil {
		return
	}
	lines := strings.Split(s.NumberedLog(), "\n")
	if len(lines) > commentLines {
		lines = append(lines[:commentLines], fmt.Sprintf("... (%d more lines)", len(lines)-commentLines))
	}
	w.err = w.f.AddComment(w.sheet, excelize.Comment{
		Cell:   cellName(1, row),
		Author: commentAuthor,
		Paragraph: []excelize.RichTextRun{
			{Text: commentAuthor + ":\n", Font: &excelize.Font{Bold: true}},
			{Text: truncate(strings.Join(lines, "\n"))},
		},
	})
}

func (w *sheetWriter) widths(widths ...float64) {
	for i, width := range widths {
		if w.err != nil {
			return
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		if width <= 0 {
			width = defaultColWide
		}
		w.err = w.f.SetColWidth(w.sheet, col, col, width)
	}
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxCellRunes {
		return s
	}
	return string(r[:maxCellRunes]) + "…"
}
