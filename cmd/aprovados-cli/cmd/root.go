package cmd

import (
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// fs is where photo files are read from; tests swap in a memory filesystem.
var fs afero.Fs = afero.NewOsFs()

var rootCmd = &cobra.Command{
	Use:   "aprovados-cli",
	Short: "Aprovados command-line tool",
	Long: `aprovados-cli talks to the approvals backend without the web form.

Available commands:
  submit        Send one registration to the backend
  format-phone  Apply the Brazilian phone mask to a number
  topics        List the submission lifecycle topics
  version       Print the version

Use "aprovados-cli [command] --help" for more information about a specific command.`,
	SilenceUsage: true,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
