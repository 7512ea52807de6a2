package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fjglira/LogTriage/internal/domain"
	"github.com/fjglira/LogTriage/internal/parser"
	"github.com/fjglira/LogTriage/internal/render"
	"github.com/fjglira/LogTriage/internal/scanner"
)

var (
	showStep int
	noColor  bool
)

var showCmd = &cobra.Command{
	Use:   "show <file.log>",
	Short: "Print a colored, annotated view of one log file",
	Long: `Parses a single log file and prints every line colored by kind (step
start, PASS, FAIL, command, response) followed by a table of its steps.
With --step N only the N-th step (as numbered in the table) is shown, with
its full log and command/response digest.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		render.ConfigureColor(noColor)

		p, err := parser.New(cfg, scanner.NewScanner(cfg.IsRecursive()), log)
		if err != nil {
			return err
		}
		res := p.ParseFile(args[0])
		r := render.NewRenderer(render.DefaultStyles())
		w := cmd.OutOrStdout()

		if showStep > 0 {
			steps := res.Steps()
			if showStep > len(steps) {
				return domain.NewErrorWithSuggestion("show", res.SourceFile, 0,
					fmt.Sprintf("step %d out of range (file has %d steps)", showStep, len(steps)),
					"run without --step to list the steps", nil)
			}
			step := steps[showStep-1]
			fmt.Fprint(w, r.StepDetail(step, p.Patterns().Exchanges(step.FullLog)))
			return nil
		}

		fmt.Fprintln(w, r.Summary(res))
		fmt.Fprintln(w)
		fmt.Fprint(w, r.Annotated(res))
		fmt.Fprintln(w)
		fmt.Fprintln(w, r.StepTable(res))
		return nil
	},
}

func init() {
	showCmd.Flags().IntVar(&showStep, "step", 0, "show only the N-th step (1-based)")
	showCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colors")
	rootCmd.AddCommand(showCmd)
}
