package cli

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fjglira/LogTriage/internal/config"
)

const defaultConfigFile = "logtriage.yaml"

var (
	cfgFile string
	verbose bool
	dryRun  bool
	log     *logrus.Logger

	// logFile is the open logging.file, closed by closeLogFile.
	logFile *os.File
)

// rootCmd is the base command for logtriage.
var rootCmd = &cobra.Command{
	Use:   "logtriage",
	Short: "Classify test-equipment logs into PASS/FAIL steps",
	Long: `LogTriage reads test-equipment log files, splits them into test steps,
classifies every step as PASS or FAIL and exports the result as an Excel
workbook and a Markdown or HTML report.

Defaults can be overridden with a YAML or TOML configuration file (logtriage.yaml).`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = closeLogFile()
		log = newLogger(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigFile, "config file path (.yaml or .toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "parse and summarize but don't write files")

	// Initialize default logger (overridden in PersistentPreRun)
	log = newLogger(false)
}

// Execute runs the root command. Ctrl-C cancels folder parsing.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	defer closeLogFile()
	return rootCmd.ExecuteContext(ctx)
}

// closeLogFile closes the logging.file handle, if one is open, and sends
// log output back to stderr.
func closeLogFile() error {
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

func newLogger(debug bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

// loadConfig loads the config file. A missing file at the default location
// is not an error: the built-in defaults are used instead.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config") {
			log.Debugf("No %s found, using defaults", cfgFile)
			cfg = config.DefaultConfig()
		} else {
			return nil, err
		}
	}
	if dryRun {
		cfg.DryRun = true
	}
	if err := applyLogging(cfg.Logging); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyLogging honors logging.level (unless --verbose) and logging.file.
func applyLogging(lc config.LoggingConfig) error {
	if !verbose && lc.Level != "" {
		level, err := logrus.ParseLevel(lc.Level)
		if err != nil {
			return err
		}
		log.SetLevel(level)
	}
	if lc.File != "" {
		if err := closeLogFile(); err != nil {
			return err
		}
		f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		logFile = f
		log.SetOutput(io.MultiWriter(os.Stderr, f))
	}
	return nil
}
