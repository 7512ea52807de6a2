package parser

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/fjglira/LogTriage/internal/domain"
)

// ParseFolder parses every log file under dir and concatenates the results.
// Files are parsed in parallel; the output keeps sorted path order.
func (p *LogParser) ParseFolder(ctx context.Context, dir string) (*domain.ParseResult, error) {
	files, err := p.scanner.Scan(ctx, dir, p.include, p.exclude)
	if err != nil {
		return nil, err
	}
	p.log.Infof("Found %d log file(s) in %s", len(files), dir)

	results, err := p.ParseFiles(ctx, files)
	if err != nil {
		return nil, err
	}
	return Aggregate(results), nil
}

// ParseFiles parses the given files concurrently, bounded by the configured
// parallelism, and returns results in input order.
func (p *LogParser) ParseFiles(ctx context.Context, files []string) ([]*domain.ParseResult, error) {
	results := make([]*domain.ParseResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	if p.parallel > 0 {
		g.SetLimit(p.parallel)
	}
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.ParseFile(file)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Aggregate concatenates PASS and FAIL items across per-file results. There
// is no cross-file correlation or dedup.
func Aggregate(results []*domain.ParseResult) *domain.ParseResult {
	multi := &domain.ParseResult{
		LogType:     domain.LogTypeMulti,
		PassItems:   []domain.TestStep{},
		FailItems:   []domain.TestStep{},
		RawLines:    []string{},
		FailLineIdx: domain.NoLine,
	}
	for _, r := range results {
		if r.LogType == domain.LogTypeMulti {
			multi.Files = append(multi.Files, r.Files...)
		} else {
			multi.Files = append(multi.Files, r)
		}
		multi.PassItems = append(multi.PassItems, r.PassItems...)
		multi.FailItems = append(multi.FailItems, r.FailItems...)
	}
	if n := len(multi.FailItems); n > 0 {
		multi.LastFail = &multi.FailItems[n-1]
	}
	return multi
}
