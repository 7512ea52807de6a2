package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fjglira/LogTriage/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the logtriage.yaml configuration file",
	Long:  `Loads the configuration file and checks for errors, missing required fields, invalid patterns and invalid values.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %q is valid.\n", cfgFile)
		log.Debugf("Loaded config: %+v", cfg)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
