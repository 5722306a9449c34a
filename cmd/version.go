package cmd

import (
	"fmt"

	"github.com/chukul/cloudrecon/internal"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(internal.VersionString())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
