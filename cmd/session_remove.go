package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var removeAll bool

var sessionRemoveCmd = &cobra.Command{
	Use:     "remove [name]",
	Aliases: []string{"rm", "delete"},
	Short:   "Remove a stored session or all sessions",
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !removeAll && len(args) == 0 {
			fmt.Println("❌ Specify a session name or --all")
			os.Exit(1)
		}

		store, err := openStore()
		if err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}

		if removeAll {
			fmt.Print("⚠️  This will remove all stored sessions. Type 'yes' to confirm: ")
			reader := bufio.NewReader(os.Stdin)
			input, _ := reader.ReadString('\n')
			if strings.TrimSpace(input) != "yes" {
				fmt.Println("❌ Operation cancelled.")
				return
			}

			names, err := store.Names()
			if err != nil {
				fmt.Printf("❌ Failed to read sessions: %v\n", err)
				os.Exit(1)
			}
			for _, n := range names {
				if err := store.Remove(n); err != nil {
					fmt.Printf("❌ Failed to remove session %s: %v\n", n, err)
					os.Exit(1)
				}
			}
			fmt.Println("✅ All sessions removed successfully.")
			return
		}

		name := args[0]
		if err := store.Remove(name); err != nil {
			fmt.Printf("❌ Failed to remove session %s: %v\n", name, err)
			os.Exit(1)
		}
		fmt.Printf("✅ Session '%s' removed. Files under its downloads directory are kept.\n", name)
	},
}

func init() {
	sessionRemoveCmd.Flags().BoolVar(&removeAll, "all", false, "Remove all stored sessions")
	sessionCmd.AddCommand(sessionRemoveCmd)
}
