package analyzer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fjglira/LogTriage/internal/compare"
	"github.com/fjglira/LogTriage/internal/config"
	"github.com/fjglira/LogTriage/internal/domain"
	"github.com/fjglira/LogTriage/internal/parser"
	"github.com/fjglira/LogTriage/internal/report"
	"github.com/fjglira/LogTriage/internal/summary"
	"github.com/fjglira/LogTriage/internal/workbook"
)

const reportTitle = "Log Analysis Report"

// Analyzer is the top-level orchestrator.
type Analyzer interface {
	Analyze(ctx context.Context, cfg *config.Config) (*Outcome, error)
}

// Outcome is what one analysis run produced.
type Outcome struct {
	Result       *domain.ParseResult
	PassGroups   []summary.PassGroup
	FailGroups   []summary.FailGroup
	Comparison   []compare.Entry
	WorkbookPath string
	ReportPath   string
}

// DefaultAnalyzer implements Analyzer by wiring all components together.
type DefaultAnalyzer struct {
	parser   *parser.LogParser
	exporter workbook.Exporter
	engine   report.ReportEngine
	log      *logrus.Logger
	now      func() time.Time
}

// NewAnalyzer creates a new DefaultAnalyzer with all dependencies. engine
// may be nil when no report is wanted.
func NewAnalyzer(
	p *parser.LogParser,
	x workbook.Exporter,
	e report.ReportEngine,
	log *logrus.Logger,
) *DefaultAnalyzer {
	return &DefaultAnalyzer{
		parser:   p,
		exporter: x,
		engine:   e,
		log:      log,
		now:      time.Now,
	}
}

// Analyze runs the full pipeline: parse → group → compare → export.
func (a *DefaultAnalyzer) Analyze(ctx context.Context, cfg *config.Config) (*Outcome, error) {
	// Step 1: Parse every input path, file or folder
	var results []*domain.ParseResult
	for _, path := range cfg.Input.Paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, domain.NewErrorWithSuggestion("parse", path, 0,
				"input path not found",
				"pass an existing log file or folder, or fix input.paths in logtriage.yaml",
				err)
		}
		if !info.IsDir() {
			a.log.Debugf("Parsing file: %s", path)
			results = append(results, a.parser.ParseFile(path))
			continue
		}
		a.log.Debugf("Scanning folder: %s", path)
		r, err := a.parser.ParseFolder(ctx, path)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	result := a.combine(results)
	if len(summary.Files(result)) == 0 {
		a.log.Warn("No log files found")
	}
	a.log.Infof("Parsed %d file(s): %d PASS, %d FAIL",
		len(summary.Files(result)), len(result.PassItems), len(result.FailItems))

	// Step 2: Group files
	files := summary.Files(result)
	out := &Outcome{
		Result:     result,
		PassGroups: summary.GroupPassFiles(files),
		FailGroups: summary.GroupFailFiles(files),
	}

	// Step 3: Compare with the test script if configured
	if cfg.Script != "" {
		ids, err := compare.LoadScript(cfg.Script)
		if err != nil {
			return nil, err
		}
		out.Comparison = compare.Compare(ids, result.PassItems, result.FailItems)
		a.log.Infof("Compared %d script test id(s)", len(ids))
	}

	if cfg.DryRun {
		a.log.Infof("[DRY-RUN] Would write results to: %s", cfg.Output.Directory)
		return out, nil
	}

	// Step 4: Ensure output directory exists
	if err := os.MkdirAll(cfg.Output.Directory, 0755); err != nil {
		return nil, domain.NewErrorWithSuggestion("write", cfg.Output.Directory, 0,
			"failed to create output directory",
			"check that the parent directory exists and has write permissions",
			err)
	}
	stamp := a.now().Format("20060102_150405")

	// Step 5: Workbook
	if cfg.WriteWorkbook() {
		out.WorkbookPath = filepath.Join(cfg.Output.Directory, outputName(cfg.Output, result, stamp, ".xlsx"))
		err := a.exporter.Export(out.WorkbookPath, workbook.Input{
			Result:     result,
			PassGroups: out.PassGroups,
			FailGroups: out.FailGroups,
			Comparison: out.Comparison,
		})
		if err != nil {
			return nil, err
		}
	}

	// Step 6: Report
	format := cfg.Output.Report
	if a.engine != nil && format != "" && format != report.FormatNone {
		data := report.NewData(reportTitle, result, out.PassGroups, out.FailGroups, out.Comparison,
			a.parser.Patterns().Exchanges, a.now())
		rendered, err := a.engine.Render(data, format)
		if err != nil {
			return nil, err
		}
		out.ReportPath = filepath.Join(cfg.Output.Directory, outputName(cfg.Output, result, stamp, report.Extension(format)))
		a.log.Infof("Writing: %s", out.ReportPath)
		if err := os.WriteFile(out.ReportPath, []byte(rendered), 0644); err != nil {
			return nil, domain.NewErrorWithSuggestion("write", out.ReportPath, 0,
				"failed to write report",
				"check disk space and write permissions for the output directory",
				err)
		}
	}

	a.log.Info("Analysis complete")
	return out, nil
}

// combine returns the single result as is, or a MULTI aggregate.
func (a *DefaultAnalyzer) combine(results []*domain.ParseResult) *domain.ParseResult {
	if len(results) == 1 {
		return results[0]
	}
	return parser.Aggregate(results)
}

// outputName builds "<prefix><name>_<stamp><ext>". name is the log's base
// name for a single file and "multi" otherwise.
func outputName(output config.OutputConfig, r *domain.ParseResult, stamp, ext string) string {
	name := "multi"
	if r.LogType != domain.LogTypeMulti && r.SourceFile != "" {
		base := filepath.Base(r.SourceFile)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return fmt.Sprintf("%s%s_%s%s", output.FilePrefix, name, stamp, ext)
}
