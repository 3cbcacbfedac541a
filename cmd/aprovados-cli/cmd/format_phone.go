package cmd

import (
	"fmt"
	"strings"

	"github.com/nfrund/aprovados/internal/phone"
	"github.com/spf13/cobra"
)

var formatPhoneCmd = &cobra.Command{
	Use:   "format-phone <number>",
	Short: "Apply the (DD) NNNNN-NNNN mask to a phone number",
	Long: `Keeps the digits of the input, truncates them to 11 and prints the masked
number. Arguments are joined with spaces, so unquoted input works too.

Examples:
  aprovados-cli format-phone 11987654321     # (11) 98765-4321
  aprovados-cli format-phone "(11) 3333 4444" # (11) 33334-444`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), phone.Format(strings.Join(args, " ")))
	},
}

func init() {
	rootCmd.AddCommand(formatPhoneCmd)
}
