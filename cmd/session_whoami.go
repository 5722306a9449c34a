package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chukul/cloudrecon/internal"
)

var sessionWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the AWS identity behind the active session",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}

		sess, err := store.Active()
		if err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}

		id, err := internal.WhoAmI(cmd.Context(), sess, appConfig.Region)
		if err != nil {
			fmt.Printf("❌ GetCallerIdentity failed for session '%s': %v\n", sess.Name, err)
			os.Exit(1)
		}

		fmt.Printf("Session: %s\n", sess.Name)
		fmt.Printf("Account: %s\n", id.Account)
		fmt.Printf("ARN:     %s\n", id.Arn)
		fmt.Printf("UserId:  %s\n", id.UserID)
	},
}

func init() {
	sessionCmd.AddCommand(sessionWhoamiCmd)
}
