package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chukul/cloudrecon/internal"
	"github.com/chukul/cloudrecon/internal/ui"
)

var secretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Manage the session store secret",
	Long:  `Manage the secret used to encrypt the stored AWS sessions.`,
}

var secretInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a new secret and keep it in the keychain",
	Run: func(cmd *cobra.Command, args []string) {
		if !internal.IsMacOS() {
			fmt.Println("❌ Keychain integration is only available on macOS")
			fmt.Printf("💡 Set %s to a random 32+ character string instead.\n", internal.SecretEnvVar)
			return
		}

		if _, err := internal.SetupKeychain(); err != nil {
			fmt.Printf("❌ Failed to set up keychain: %v\n", err)
			return
		}
		fmt.Println("✅ New secret generated and stored in Keychain.")
		fmt.Println("⚠️  Sessions stored with a previous secret can no longer be decrypted.")
	},
}

var secretShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current keychain secret",
	Run: func(cmd *cobra.Command, args []string) {
		if !internal.IsMacOS() {
			fmt.Println("❌ Keychain integration is only available on macOS")
			return
		}

		secret, err := internal.GetSecret("")
		if err != nil {
			fmt.Println("❌ No secret found in Keychain or it couldn't be accessed.")
			return
		}

		fmt.Println("🔐 Your cloudrecon store secret:")
		fmt.Println(strings.Repeat("─", 64))
		fmt.Println(secret)
		fmt.Println(strings.Repeat("─", 64))
		fmt.Println("\n⚠️  KEEP THIS SAFE! You will need it to restore access on another machine.")
		fmt.Println("   To restore: cloudrecon secret import <key>")
	},
}

var secretImportCmd = &cobra.Command{
	Use:   "import [key]",
	Short: "Import a secret into keychain",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !internal.IsMacOS() {
			fmt.Println("❌ Keychain integration is only available on macOS")
			return
		}

		var key string
		if len(args) > 0 {
			key = args[0]
		} else {
			var err error
			key, err = ui.GetInput("Enter Secret Key to Import", "", true)
			if err != nil {
				return
			}
		}

		if len(key) < 32 {
			fmt.Println("❌ Secret key must be at least 32 characters")
			return
		}

		if err := internal.StoreKeychainSecret(key); err != nil {
			fmt.Printf("❌ Failed to store secret: %v\n", err)
			return
		}

		fmt.Println("✅ Secret imported successfully to Keychain!")
	},
}

func init() {
	secretCmd.AddCommand(secretInitCmd)
	secretCmd.AddCommand(secretShowCmd)
	secretCmd.AddCommand(secretImportCmd)
	rootCmd.AddCommand(secretCmd)
}
