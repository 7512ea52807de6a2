package summary

import (
	"strings"

	"github.com/fjglira/LogTriage/internal/domain"
)

// PassGroup is a set of passing files that ran the same named steps in the same order.
type PassGroup struct {
	StepNames []string
	Files     []*domain.ParseResult
}

// FailGroup is a set of failing files that share their first FAIL reason.
type FailGroup struct {
	Reason string
	Files  []*domain.ParseResult
}

// IsFailFile reports whether a per-file result belongs to the FAIL side.
func IsFailFile(r *domain.ParseResult) bool {
	return parsed(r) && len(r.FailItems) > 0
}

// IsPassFile reports whether a per-file result has PASS items and no FAIL items.
func IsPassFile(r *domain.ParseResult) bool {
	return parsed(r) && len(r.FailItems) == 0 && len(r.PassItems) > 0
}

// parsed excludes unreadable files and MULTI aggregates.
func parsed(r *domain.ParseResult) bool {
	return r != nil && (r.LogType == domain.LogTypePass || r.LogType == domain.LogTypeFail)
}

// GroupPassFiles groups PASS files by their exact ordered tuple of PASS
// step names. Groups keep the order of first appearance.
func GroupPassFiles(files []*domain.ParseResult) []PassGroup {
	var groups []PassGroup
	index := make(map[string]int)
	for _, f := range files {
		if !IsPassFile(f) {
			continue
		}
		names := make([]string, len(f.PassItems))
		for i, s := range f.PassItems {
			names[i] = s.StepName
		}
		key := strings.Join(names, "\x00")
		if i, ok := index[key]; ok {
			groups[i].Files = append(groups[i].Files, f)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, PassGroup{StepNames: names, Files: []*domain.ParseResult{f}})
	}
	return groups
}

// GroupFailFiles groups files with FAIL items by their first FAIL reason.
func GroupFailFiles(files []*domain.ParseResult) []FailGroup {
	var groups []FailGroup
	index := make(map[string]int)
	for _, f := range files {
		if !IsFailFile(f) {
			continue
		}
		reason, _ := f.FirstFailReason()
		if i, seen := index[reason]; seen {
			groups[i].Files = append(groups[i].Files, f)
			continue
		}
		index[reason] = len(groups)
		groups = append(groups, FailGroup{Reason: reason, Files: []*domain.ParseResult{f}})
	}
	return groups
}

// Files returns the per-file results behind r: r itself for a single file,
// or its members for a MULTI result.
func Files(r *domain.ParseResult) []*domain.ParseResult {
	if r == nil {
		return nil
	}
	if r.LogType == domain.LogTypeMulti {
		return r.Files
	}
	return []*domain.ParseResult{r}
}
