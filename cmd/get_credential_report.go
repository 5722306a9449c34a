package cmd

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chukul/cloudrecon/internal"
	"github.com/chukul/cloudrecon/internal/credreport"
	"github.com/chukul/cloudrecon/internal/ui"
)

var getCredentialReportCmd = &cobra.Command{
	Use:   credreport.ModuleName,
	Short: "Generates and downloads an IAM credential report",
	Long: `Tries to download the IAM credential report for the account behind the active
session, giving authentication history for every user in the account. If no
report exists you are asked whether to generate one; generation is then polled
until the report is ready.

The report is saved to <sessions-dir>/<session>/downloads/get_credential_report_<time>.csv`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			return
		}

		interval, err := appConfig.Interval()
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			return
		}

		name, _ := store.ActiveName()
		fetcher := &credreport.Fetcher{
			NewClient: func(ctx context.Context, s *internal.Session) (credreport.API, error) {
				client, err := internal.NewIAMClient(ctx, s, appConfig.Region)
				if err != nil {
					return nil, err
				}
				return client, nil
			},
			Printer:     internal.NewConsolePrinter(cmd.OutOrStdout(), name, credreport.ModuleName),
			Confirmer:   newConfirmer(cmd),
			Clock:       newPollClock(),
			SessionsDir: appConfig.SessionsDir,
			Interval:    interval,
			Log:         log.StandardLogger(),
		}

		if _, err := fetcher.RunActive(cmd.Context(), store); err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			fmt.Fprintln(os.Stderr, "\n💡 Select a session first:")
			fmt.Fprintln(os.Stderr, "   cloudrecon session use <name>")
		}
	},
}

// newConfirmer prompts interactively on a terminal and falls back to reading
// a line from stdin otherwise.
func newConfirmer(cmd *cobra.Command) credreport.Confirmer {
	if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stderr.Fd())) {
		return ui.TeaConfirmer{}
	}
	return ui.NewLineConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
}

func newPollClock() credreport.Clock {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return ui.SpinnerClock{Text: "Waiting for the credential report..."}
	}
	return credreport.SystemClock{}
}

func init() {
	rootCmd.AddCommand(getCredentialReportCmd)
}
