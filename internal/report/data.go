package report

import (
	"time"

	"github.com/fjglira/LogTriage/internal/compare"
	"github.com/fjglira/LogTriage/internal/domain"
	"github.com/fjglira/LogTriage/internal/summary"
)

// Data is the struct passed to report templates.
type Data struct {
	Title       string
	GeneratedAt string
	Stats       Stats
	Files       []*domain.ParseResult
	PassGroups  []summary.PassGroup
	FailGroups  []summary.FailGroup
	Failures    []Failure
	Comparison  []compare.Entry
}

// Stats are the overall counters of a run.
type Stats struct {
	Files int
	Total int
	Pass  int
	Fail  int
	Retry int
}

// Failure is a FAIL step with its command/response digest.
type Failure struct {
	Step      domain.TestStep
	Exchanges []domain.Exchange
}

// ExchangeFunc groups step lines into exchanges.
type ExchangeFunc func(lines []string) []domain.Exchange

// NewData assembles template data from an aggregated result.
func NewData(title string, r *domain.ParseResult, pass []summary.PassGroup, fail []summary.FailGroup,
	cmp []compare.Entry, exchanges ExchangeFunc, now time.Time) Data {
	data := Data{
		Title:       title,
		GeneratedAt: now.Format("2006-01-02 15:04:05"),
		Files:       summary.Files(r),
		PassGroups:  pass,
		FailGroups:  fail,
		Comparison:  cmp,
	}
	if r == nil {
		return data
	}

	data.Stats = Stats{
		Files: len(data.Files),
		Total: len(r.PassItems) + len(r.FailItems),
		Pass:  len(r.PassItems),
		Fail:  len(r.FailItems),
	}
	for _, s := range r.PassItems {
		if s.Retried() {
			data.Stats.Retry++
		}
	}
	for _, s := range r.FailItems {
		f := Failure{Step: s}
		if exchanges != nil {
			f.Exchanges = exchanges(s.FullLog)
		}
		data.Failures = append(data.Failures, f)
	}
	return data
}
