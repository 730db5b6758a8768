package cmd

import (
	"errors"
	"io/fs"
	"log"

	"github.com/josephlewis42/vsh/core/config"
	"github.com/spf13/cobra"
)

var cfgPath string

// loadConfig loads the configuration, falling back to the built-in defaults
// when no config file exists so the shell works out of the box.
func loadConfig() (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		log.Println("No config found, using defaults (run init to create one).")
		return config.Default(), nil
	}

	return configuration, err
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vsh",
	Short: "Very small shell",
	Long: `A minimal interactive shell built around pipelines of external
processes with file redirection and background execution.`,
	// Run: func(cmd *cobra.Command, args []string) { },
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
}
