package cmd

import (
	"fmt"
	"os"

	"github.com/chukul/cloudrecon/internal"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	sessionsDir string
	secretKey   string
	regionFlag  string
	verbose     bool

	appConfig = internal.DefaultConfig()
)

var rootCmd = &cobra.Command{
	Use:   "cloudrecon",
	Short: "cloudrecon runs AWS enumeration modules under named sessions",
	Long: `cloudrecon keeps named AWS sessions encrypted on disk and runs enumeration
modules against the account behind the active session. Module output is saved
under <sessions-dir>/<session>/downloads.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := internal.LoadConfig(configPath)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("sessions-dir") {
			cfg.SessionsDir = sessionsDir
		}
		if cmd.Flags().Changed("region") {
			cfg.Region = regionFlag
		}
		if verbose {
			cfg.Verbose = true
		}

		internal.SetupLogging(cfg.Verbose, cfg.LogFormat, os.Stderr)
		appConfig = cfg
		return nil
	},
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openStore opens the session store with the secret from --secret, the
// environment or the keychain.
func openStore() (*internal.Store, error) {
	secret, err := internal.GetSecret(secretKey)
	if err != nil {
		return nil, fmt.Errorf("encryption secret required: pass --secret or set %s (%w)", internal.SecretEnvVar, err)
	}
	if len(secret) < 32 {
		return nil, fmt.Errorf("encryption secret must be at least 32 characters")
	}
	return internal.NewStore(appConfig.StorePath, secret), nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", internal.DefaultConfigPath(), "Path to the config file")
	rootCmd.PersistentFlags().StringVar(&sessionsDir, "sessions-dir", "sessions", "Directory holding per-session output")
	rootCmd.PersistentFlags().StringVar(&secretKey, "secret", "", "Secret used to encrypt the session store (or set "+internal.SecretEnvVar+")")
	rootCmd.PersistentFlags().StringVar(&regionFlag, "region", internal.DefaultRegion, "AWS region for sessions that do not set one")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logs on stderr")
}
