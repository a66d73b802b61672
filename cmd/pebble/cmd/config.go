package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as TOML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := cfg.Encode()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if src := cfg.Source(); src != "" {
			fmt.Fprintf(out, "# loaded from %s\n", src)
		}
		fmt.Fprint(out, text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
