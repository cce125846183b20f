package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobeam/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gobeam",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, version.String())
		fmt.Fprintln(out, "Beam Analysis Tool")
		fmt.Fprintln(out, "Simply supported statics with NSCP 2015 load combinations")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
