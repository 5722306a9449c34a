package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chukul/cloudrecon/internal"
)

var (
	assumeSourceProfile string
	assumeRoleArn       string
	assumeDuration      int32
	assumeMFASerial     string
	assumeUse           bool
)

var sessionAssumeCmd = &cobra.Command{
	Use:   "assume <name>",
	Short: "Assume an IAM role and store the temporary credentials as a session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		if err := internal.ValidateSessionName(name); err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}
		if assumeRoleArn == "" {
			fmt.Println("❌ --role is required")
			os.Exit(1)
		}
		if !strings.HasPrefix(assumeRoleArn, "arn:aws") || !strings.Contains(assumeRoleArn, ":role/") {
			fmt.Println("⚠️  Warning: The ARN provided doesn't look like a standard IAM Role ARN.")
			fmt.Println("   Standard format: arn:aws:iam::<account-id>:role/<role-name>")
		}

		store, err := openStore()
		if err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}

		in := internal.AssumeRoleInput{
			Name:      name,
			Profile:   assumeSourceProfile,
			RoleARN:   assumeRoleArn,
			Region:    appConfig.Region,
			Duration:  assumeDuration,
			MFASerial: assumeMFASerial,
		}
		if assumeMFASerial != "" {
			in.TokenCode = readMFACode()
		}

		fmt.Printf("🔐 Assuming role %s using base profile %s...\n", assumeRoleArn, assumeSourceProfile)
		sess, err := internal.AssumeRole(cmd.Context(), in)
		if err != nil {
			fmt.Printf("❌ Failed to assume role: %v\n", err)
			os.Exit(1)
		}

		if err := store.Save(sess); err != nil {
			fmt.Printf("❌ Failed to save session: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("✅ Session '%s' stored (expires %s)\n", name, internal.FormatLocal(sess.Expiration))
		activateIfNeeded(store, name, assumeUse)
	},
}

func init() {
	sessionAssumeCmd.Flags().StringVar(&assumeSourceProfile, "source", "default", "Base AWS CLI profile used to assume the role")
	sessionAssumeCmd.Flags().StringVar(&assumeRoleArn, "role", "", "Role ARN to assume")
	sessionAssumeCmd.Flags().Int32Var(&assumeDuration, "duration", 3600, "Session duration in seconds")
	sessionAssumeCmd.Flags().StringVar(&assumeMFASerial, "mfa", "", "MFA device ARN, if the role requires MFA")
	sessionAssumeCmd.Flags().BoolVar(&assumeUse, "use", false, "Make this the active session")
	sessionCmd.AddCommand(sessionAssumeCmd)
}
