package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chukul/cloudrecon/internal"
	"github.com/chukul/cloudrecon/internal/ui"
)

var (
	addAccessKeyID     string
	addSecretAccessKey string
	addSessionToken    string
	addRegion          string
	addUse             bool
)

var sessionAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Store a session from static access keys",
	Args:  cobra.ExactArgs(1),
	Example: `  cloudrecon session add demo --access-key-id AKIA...
  # the secret access key is prompted for when not passed`,
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		if err := internal.ValidateSessionName(name); err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}
		if addAccessKeyID == "" {
			fmt.Println("❌ --access-key-id is required")
			os.Exit(1)
		}

		secret := addSecretAccessKey
		if secret == "" {
			var err error
			secret, err = ui.GetInput("Enter secret access key for "+addAccessKeyID, "", true)
			if err != nil || secret == "" {
				fmt.Println("❌ Secret access key is required")
				os.Exit(1)
			}
		}

		store, err := openStore()
		if err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}

		sess := &internal.Session{
			Name:            name,
			AccessKeyID:     addAccessKeyID,
			SecretAccessKey: secret,
			SessionToken:    addSessionToken,
			Region:          addRegion,
		}
		if err := store.Save(sess); err != nil {
			fmt.Printf("❌ Failed to save session: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✅ Session '%s' stored\n", name)

		activateIfNeeded(store, name, addUse)
	},
}

// activateIfNeeded selects name when asked to, or when no session is active yet.
func activateIfNeeded(store *internal.Store, name string, force bool) {
	active, err := store.ActiveName()
	if err != nil {
		fmt.Printf("⚠️  Could not read the active session: %v\n", err)
		return
	}
	if !force && active != "" {
		return
	}
	if err := store.SetActive(name); err != nil {
		fmt.Printf("⚠️  Could not activate session '%s': %v\n", name, err)
		return
	}
	fmt.Printf("👉 Active session is now '%s'\n", name)
}

func init() {
	sessionAddCmd.Flags().StringVar(&addAccessKeyID, "access-key-id", "", "AWS access key ID")
	sessionAddCmd.Flags().StringVar(&addSecretAccessKey, "secret-access-key", "", "AWS secret access key (prompted when omitted)")
	sessionAddCmd.Flags().StringVar(&addSessionToken, "session-token", "", "Session token for temporary credentials")
	sessionAddCmd.Flags().StringVar(&addRegion, "session-region", "", "Region to use for this session")
	sessionAddCmd.Flags().BoolVar(&addUse, "use", false, "Make this the active session")
	sessionCmd.AddCommand(sessionAddCmd)
}
