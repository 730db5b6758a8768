package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/josephlewis42/vsh/core/pipeline"
	"github.com/spf13/cobra"
)

var execBackground bool

// execCmd runs one command line without starting the interactive loop,
// useful for scripting and for poking at the pipeline engine.
var execCmd = &cobra.Command{
	Use:   "exec -- LINE...",
	Short: "Run a single command line and exit.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		runner := pipeline.NewRunner(os.Stdin, os.Stdout, os.Stderr)

		outcomes, err := runner.Run(strings.Join(args, " "), execBackground)
		if err != nil {
			return err
		}

		for _, o := range outcomes {
			fmt.Fprintln(cmd.OutOrStdout(), o)
		}
		return nil
	},
}

func init() {
	execCmd.Flags().BoolVarP(&execBackground, "background", "b", false, "do not wait for the pipeline to finish")
	rootCmd.AddCommand(execCmd)
}
