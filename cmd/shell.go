package cmd

import (
	"github.com/josephlewis42/vsh/core"
	"github.com/spf13/cobra"
)

// shellCmd starts the interactive prompt loop.
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive shell.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		shell, err := core.NewShell(cfg)
		if err != nil {
			return err
		}
		defer shell.Close()

		return shell.Run()
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
