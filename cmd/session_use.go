package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var sessionUseCmd = &cobra.Command{
	Use:     "use <name>",
	Aliases: []string{"switch"},
	Short:   "Select the session modules run under",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]

		store, err := openStore()
		if err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}

		if err := store.SetActive(name); err != nil {
			fmt.Printf("❌ Session '%s' not found\n", name)

			if names, _ := store.Names(); len(names) > 0 {
				fmt.Println("\n💡 Available sessions:")
				for _, n := range names {
					fmt.Printf("   • %s\n", n)
				}
			} else {
				fmt.Println("\n💡 No sessions found. Create one with:")
				fmt.Println("   cloudrecon session add <name> --access-key-id <key>")
			}
			os.Exit(1)
		}

		fmt.Printf("✅ Active session is now '%s'\n", name)
	},
}

func init() {
	sessionCmd.AddCommand(sessionUseCmd)
}
