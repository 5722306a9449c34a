package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/chukul/cloudrecon/internal"
)

var listJSON bool

// sessionView is what `session list --json` prints. Secrets are left out.
type sessionView struct {
	Name        string    `json:"name"`
	Active      bool      `json:"active"`
	AccessKeyID string    `json:"access_key_id"`
	RoleARN     string    `json:"role_arn,omitempty"`
	Region      string    `json:"region,omitempty"`
	Expiration  time.Time `json:"expiration,omitempty"`
	Status      string    `json:"status"`
}

var sessionListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "status"},
	Short:   "Show stored sessions with status and remaining time",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}

		sessions, err := store.List()
		if err != nil {
			fmt.Printf("❌ Failed to list sessions: %v\n", err)
			os.Exit(1)
		}
		active, _ := store.ActiveName()

		if len(sessions) == 0 {
			fmt.Println("📭 No stored sessions found.")
			fmt.Println("\n💡 Add one with:")
			fmt.Println("   cloudrecon session add <name> --access-key-id <key>")
			return
		}

		now := time.Now()
		if listJSON {
			views := make([]sessionView, 0, len(sessions))
			for _, s := range sessions {
				views = append(views, sessionView{
					Name:        s.Name,
					Active:      s.Name == active,
					AccessKeyID: s.AccessKeyID,
					RoleARN:     s.RoleARN,
					Region:      s.Region,
					Expiration:  s.Expiration,
					Status:      sessionStatus(s, now),
				})
			}
			jsonData, _ := json.MarshalIndent(views, "", "  ")
			fmt.Println(string(jsonData))
			return
		}

		header := color.New(color.FgCyan, color.Bold).SprintFunc()
		fmt.Printf("  %-20s %-24s %-50s %-15s %-10s\n",
			header("NAME"), header("ACCESS KEY"), header("ROLE ARN"), header("REMAINING"), header("STATUS"))
		fmt.Println(strings.Repeat("-", 125))

		for _, s := range sessions {
			marker := " "
			if s.Name == active {
				marker = "*"
			}

			status := sessionStatus(s, now)
			statusColor := color.New(color.FgGreen).SprintFunc()
			if status == "EXPIRED" {
				statusColor = color.New(color.FgYellow).SprintFunc()
			}

			fmt.Printf("%s %-20s %-24s %-50s %-15s %-10s\n",
				marker,
				s.Name,
				s.AccessKeyID,
				truncateText(s.RoleARN, 48),
				internal.FormatRemaining(s.Expiration, now),
				statusColor(status),
			)
		}
	},
}

func sessionStatus(s *internal.Session, now time.Time) string {
	if s.Expired(now) {
		return "EXPIRED"
	}
	return "READY"
}

func init() {
	sessionListCmd.Flags().BoolVar(&listJSON, "json", false, "Output results in JSON format for automation")
	sessionCmd.AddCommand(sessionListCmd)
}
