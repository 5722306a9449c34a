package cmd

import "github.com/spf13/cobra"

var sessionCmd = &cobra.Command{
	Use:     "session",
	Aliases: []string{"sessions"},
	Short:   "Manage named AWS sessions",
	Long:    `Add, assume, list, select and remove the AWS sessions modules run under.`,
}

func init() {
	rootCmd.AddCommand(sessionCmd)
}
