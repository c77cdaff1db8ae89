package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"lazmerge/pkg/config"
	"lazmerge/pkg/merge"

	"github.com/spf13/cobra"
)

// mergeCmd runs one merge job: it resolves the job from the config file and
// command line, then invokes the external merge tool.
var mergeCmd = &cobra.Command{
	Use:   "merge [input.laz ...]",
	Short: "Merge point-cloud tiles into a single output file",
	Long: `Merge invokes an external point-cloud utility to consolidate the given
LAZ/LAS tile files into one output file. Inputs are passed to the tool in the
order given on the command line (or in the config file); the output path is
always the final argument.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, err := cmd.Flags().GetString("output")
		if err != nil {
			return fmt.Errorf("error reading flags: %w", err)
		}
		tool, err := cmd.Flags().GetString("tool")
		if err != nil {
			return fmt.Errorf("error reading flags: %w", err)
		}
		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			return fmt.Errorf("error reading flags: %w", err)
		}

		jf := &config.JobFile{}
		if configPath != "" {
			jf, err = config.Load(configPath)
			if err != nil {
				return err
			}
		}
		job := jf.Merge(tool, args, output)

		// Forward termination signals to the subprocess.
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		_, err = merge.Execute(ctx, merge.Arguments{
			Tool:   job.Tool,
			Inputs: job.Inputs,
			Output: job.Output,
		}, logger)
		return err
	},
}

func init() {
	mergeCmd.Flags().StringP("output", "o", "", "Path of the consolidated output file")
	mergeCmd.Flags().String("tool", "", fmt.Sprintf("Merge tool binary (default %q)", merge.DefaultTool))
	mergeCmd.Flags().StringP("config", "c", "", "TOML job file with tool, inputs and output")

	RootCmd.AddCommand(mergeCmd)
}
