package parser

import (
	"fmt"
	"sort"

	"github.com/fjglira/LogTriage/internal/domain"
)

// Consolidate merges no-command steps back into the PASS list by line
// offset, collapsing every maximal run of consecutive no-command steps into
// one synthetic record. A lone no-command step still becomes a group of one.
func Consolidate(pass, noCommand []domain.TestStep) []domain.TestStep {
	if len(noCommand) == 0 {
		return pass
	}

	type entry struct {
		step      domain.TestStep
		noCommand bool
	}
	all := make([]entry, 0, len(pass)+len(noCommand))
	for _, s := range pass {
		all = append(all, entry{step: s})
	}
	for _, s := range noCommand {
		all = append(all, entry{step: s, noCommand: true})
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].step.StartLine < all[j].step.StartLine
	})

	out := make([]domain.TestStep, 0, len(all))
	var run []domain.TestStep
	for _, e := range all {
		if e.noCommand {
			run = append(run, e.step)
			continue
		}
		if len(run) > 0 {
			out = append(out, consolidatedStep(run))
			run = nil
		}
		out = append(out, e.step)
	}
	if len(run) > 0 {
		out = append(out, consolidatedStep(run))
	}
	return out
}

func consolidatedStep(group []domain.TestStep) domain.TestStep {
	var content []string
	for i, s := range group {
		content = append(content, fmt.Sprintf("步驟 %d: %s", i+1, s.StepName))
		for j, line := range s.FullLog {
			content = append(content, fmt.Sprintf("  %4d. %s", j+1, line))
		}
		content = append(content, "")
	}

	members := make([]domain.TestStep, len(group))
	copy(members, group)

	first, last := group[0], group[len(group)-1]
	return domain.TestStep{
		StepName:       fmt.Sprintf("%s x%d", domain.NoCommandPlaceholder, len(group)),
		Command:        domain.NoCommandPlaceholder,
		Response:       domain.NoResponsePlaceholder,
		Result:         domain.ResultPass,
		FullLog:        content,
		StartLine:      first.StartLine,
		EndLine:        last.EndLine,
		IsConsolidated: true,
		Members:        members,
		SourceFile:     first.SourceFile,
	}
}
