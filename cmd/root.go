package cmd

import (
	"fmt"

	"lazmerge/pkg/logging"
	"lazmerge/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// logger is shared by all subcommands. It is injected by Execute and swapped
// for a development logger when --debug is set.
var logger *zap.Logger

// RootCmd is the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:           "lazmerge",
	Short:         "lazmerge merges lidar point-cloud tiles into one file",
	Long:          `lazmerge consolidates LAZ/LAS point-cloud tile files into a single output file by driving an external point-cloud merge utility.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		debug, err := cmd.Flags().GetBool("debug")
		if err != nil {
			return fmt.Errorf("error reading flags: %w", err)
		}
		if debug {
			l, err := logging.Setup(true, "lazmerge", version.Get().Version)
			if err != nil {
				return fmt.Errorf("failed to initialize debug logger: %w", err)
			}
			logger = l
		}
		return nil
	},
}

// Execute adds all child commands to the root command and runs it with the
// given logger.
func Execute(l *zap.Logger) error {
	logger = l
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}
