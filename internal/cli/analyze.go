package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fjglira/LogTriage/internal/analyzer"
	"github.com/fjglira/LogTriage/internal/config"
	"github.com/fjglira/LogTriage/internal/parser"
	"github.com/fjglira/LogTriage/internal/report"
	"github.com/fjglira/LogTriage/internal/scanner"
	"github.com/fjglira/LogTriage/internal/workbook"
)

var (
	outputDir    string
	reportFormat string
	noWorkbook   bool
	scriptFile   string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [paths...]",
	Short: "Parse log files or folders and export the results",
	Long: `Parses every given log file or folder (input.paths when none are given),
classifies test steps as PASS or FAIL, groups the files and writes an Excel
workbook plus an optional Markdown or HTML report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyAnalyzeFlags(cmd, cfg, args)

		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}

		log.Info("Configuration loaded successfully")
		log.Infof("Inputs: %v", cfg.Input.Paths)
		log.Infof("Output directory: %s", cfg.Output.Directory)

		out, err := runAnalyze(cmd, cfg)
		if err != nil {
			return err
		}
		printOutcome(cmd, out)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (overrides output.directory)")
	analyzeCmd.Flags().StringVar(&reportFormat, "report", "", "report format: markdown, html or none")
	analyzeCmd.Flags().BoolVar(&noWorkbook, "no-workbook", false, "skip the Excel workbook")
	analyzeCmd.Flags().StringVar(&scriptFile, "script", "", "test script workbook (.xlsx) to compare against")
	rootCmd.AddCommand(analyzeCmd)
}

func applyAnalyzeFlags(cmd *cobra.Command, cfg *config.Config, args []string) {
	if len(args) > 0 {
		cfg.Input.Paths = args
	}
	if cmd.Flags().Changed("output") {
		cfg.Output.Directory = outputDir
	}
	if cmd.Flags().Changed("report") {
		cfg.Output.Report = reportFormat
	}
	if noWorkbook {
		off := false
		cfg.Output.Workbook = &off
	}
	if cmd.Flags().Changed("script") {
		cfg.Script = scriptFile
	}
}

// runAnalyze wires all components and runs the analyzer.
func runAnalyze(cmd *cobra.Command, cfg *config.Config) (*analyzer.Outcome, error) {
	// Create scanner and parser
	s := scanner.NewScanner(cfg.IsRecursive())
	p, err := parser.New(cfg, s, log)
	if err != nil {
		return nil, err
	}

	// Create report engine only when a report is requested
	var engine report.ReportEngine
	if cfg.Output.Report != "" && cfg.Output.Report != report.FormatNone {
		e, err := report.NewEngine(cfg.Templates.Directory, cfg.Templates.Default)
		if err != nil {
			return nil, fmt.Errorf("failed to create report engine: %w", err)
		}
		engine = e
	}

	a := analyzer.NewAnalyzer(p, workbook.NewExporter(log), engine, log)
	return a.Analyze(cmd.Context(), cfg)
}

func printOutcome(cmd *cobra.Command, out *analyzer.Outcome) {
	w := cmd.OutOrStdout()
	r := out.Result
	fmt.Fprintf(w, "PASS: %d  FAIL: %d  (PASS groups: %d, FAIL groups: %d)\n",
		len(r.PassItems), len(r.FailItems), len(out.PassGroups), len(out.FailGroups))
	if out.WorkbookPath != "" {
		fmt.Fprintf(w, "Workbook: %s\n", out.WorkbookPath)
	}
	if out.ReportPath != "" {
		fmt.Fprintf(w, "Report:   %s\n", out.ReportPath)
	}
}
