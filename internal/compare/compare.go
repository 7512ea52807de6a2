package compare

import (
	"regexp"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/fjglira/LogTriage/internal/domain"
)

// Status is the outcome of one test id in a script comparison.
type Status string

const (
	StatusPass        Status = "PASS"
	StatusFail        Status = "FAIL"
	StatusNotExecuted Status = "NOT_EXECUTED"
	StatusExtra       Status = "EXTRA"
)

// Entry is one row of a script comparison.
type Entry struct {
	TestID string
	Status Status
	Note   string
}

var (
	idColumns    = []string{"test id", "testid", "id", "test_id"}
	testIDInName = regexp.MustCompile(`[A-Z0-9]+-\d+`)
)

// LoadScript reads the test ids of a script workbook: the first sheet, the
// column titled like "Test ID" (or the first column), below the header row.
func LoadScript(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, domain.NewErrorWithSuggestion("script", path, 0,
			"failed to open script workbook", "pass an .xlsx file exported from the test script", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.NewError("script", path, 0, "script workbook has no sheets", nil)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, domain.NewError("script", path, 0, "failed to read script sheet", err)
	}
	if len(rows) < 2 {
		return []string{}, nil
	}

	col := 0
	for i, header := range rows[0] {
		if isIDColumn(header) {
			col = i
			break
		}
	}

	seen := make(map[string]bool)
	ids := []string{}
	for _, cells := range rows[1:] {
		if col >= len(cells) {
			continue
		}
		id := strings.TrimSpace(cells[col])
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

func isIDColumn(header string) bool {
	h := strings.ToLower(strings.TrimSpace(header))
	for _, c := range idColumns {
		if h == c {
			return true
		}
	}
	return false
}

// StepTestIDs returns the test ids a step stands for: its own, or the first
// "ABC123-045" token of its name; consolidated steps use their members.
func StepTestIDs(s domain.TestStep) []string {
	if s.IsConsolidated {
		var ids []string
		for _, m := range s.Members {
			ids = append(ids, StepTestIDs(m)...)
		}
		return ids
	}
	if s.TestID != "" {
		return []string{s.TestID}
	}
	if id := testIDInName.FindString(s.StepName); id != "" {
		return []string{id}
	}
	return nil
}

// Compare matches the script's test ids against what the logs executed.
// Script ids come first in script order, then extra executed ids sorted.
func Compare(script []string, pass, fail []domain.TestStep) []Entry {
	failed := make(map[string]bool)
	executed := make(map[string]bool)
	for _, s := range fail {
		for _, id := range StepTestIDs(s) {
			failed[id] = true
			executed[id] = true
		}
	}
	for _, s := range pass {
		for _, id := range StepTestIDs(s) {
			executed[id] = true
		}
	}

	inScript := make(map[string]bool, len(script))
	entries := make([]Entry, 0, len(script))
	for _, id := range script {
		inScript[id] = true
		switch {
		case failed[id]:
			entries = append(entries, Entry{TestID: id, Status: StatusFail, Note: "已執行但失敗"})
		case executed[id]:
			entries = append(entries, Entry{TestID: id, Status: StatusPass, Note: "已執行且通過"})
		default:
			entries = append(entries, Entry{TestID: id, Status: StatusNotExecuted, Note: "腳本中有但未執行"})
		}
	}

	var extra []string
	for id := range executed {
		if !inScript[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	for _, id := range extra {
		entries = append(entries, Entry{TestID: id, Status: StatusExtra, Note: "執行但腳本中沒有"})
	}
	return entries
}
