package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const VERSION = "0.3.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of abiscope",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("abiscope v%s\n", VERSION)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
