// Package credreport downloads the IAM credential report for the account
// behind a session, generating it first when the account has none.
package credreport

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/iam"
	log "github.com/sirupsen/logrus"

	"github.com/chukul/cloudrecon/internal"
)

// ModuleName names the command and prefixes every saved report.
const ModuleName = "get_credential_report"

const (
	msgConfirm    = "Credential report not generated, do you want to generate one? (y/n) "
	msgGenerating = "Credential report generation started, this may take up to a couple minutes. Checking if it is ready every %s..."
	msgDenied     = "Download failed, you do not have the correct permissions to download a credential report."
	msgSaved      = "Credential report saved to %s"
	msgCompleted  = "%s completed.\n"
)

// API is the part of *iam.Client the fetcher uses.
type API interface {
	GetCredentialReport(ctx context.Context, params *iam.GetCredentialReportInput, optFns ...func(*iam.Options)) (*iam.GetCredentialReportOutput, error)
	GenerateCredentialReport(ctx context.Context, params *iam.GenerateCredentialReportInput, optFns ...func(*iam.Options)) (*iam.GenerateCredentialReportOutput, error)
}

// ClientFactory builds an API client that authenticates as sess.
type ClientFactory func(ctx context.Context, sess *internal.Session) (API, error)

// Printer receives progress and result text meant for the operator.
type Printer interface {
	Print(msg string)
}

// Confirmer asks the operator a yes/no question.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(question string) (bool, error)

func (f ConfirmFunc) Confirm(question string) (bool, error) { return f(question) }

// SessionProvider returns the session modules run under.
type SessionProvider interface {
	Active() (*internal.Session, error)
}

// Outcome is how a run ended.
type Outcome int

const (
	Saved Outcome = iota
	Skipped
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Saved:
		return "saved"
	case Skipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Result describes a finished run. Path is set when Outcome is Saved, Err
// when it is Failed. Polls counts the intervals waited for generation.
type Result struct {
	Outcome Outcome
	Path    string
	Err     *Error
	Polls   int
}

// Report is a downloaded credential report.
type Report struct {
	Content       []byte
	Format        string
	GeneratedTime time.Time
}

// Fetcher runs the get/generate/poll/save workflow.
type Fetcher struct {
	NewClient   ClientFactory
	Printer     Printer
	Confirmer   Confirmer
	Clock       Clock         // defaults to SystemClock
	SessionsDir string        // root holding <session>/downloads
	Interval    time.Duration // defaults to internal.DefaultPollInterval
	Log         log.FieldLogger
}

// RunActive runs under the provider's active session. Only a failure to
// resolve the session is returned as an error.
func (f *Fetcher) RunActive(ctx context.Context, sessions SessionProvider) (Result, error) {
	sess, err := sessions.Active()
	if err != nil {
		return Result{}, fmt.Errorf("failed to load active session: %w", err)
	}
	return f.Run(ctx, sess), nil
}

// Run fetches the credential report for sess and saves it. It never returns
// an error: every failure is folded into the Result and reported through the
// Printer.
func (f *Fetcher) Run(ctx context.Context, sess *internal.Session) (res Result) {
	logger := f.logger().WithFields(log.Fields{"session": sess.Name, "module": ModuleName})
	defer func() {
		logger.WithFields(log.Fields{"outcome": res.Outcome.String(), "polls": res.Polls}).Debug("run finished")
		f.Printer.Print(fmt.Sprintf(msgCompleted, ModuleName))
	}()

	if sess.Expired(f.clock().Now()) {
		logger.WithField("expiration", sess.Expiration.Format(time.RFC3339)).Warn("session credentials have expired")
	}

	client, err := f.NewClient(ctx, sess)
	if err != nil {
		return f.fail(logger, Classify(err), 0)
	}

	report, err := fetch(ctx, client)
	polls := 0
	if err != nil {
		ce := Classify(err)
		if ce.Kind != KindReportNotPresent {
			return f.fail(logger, ce, 0)
		}

		generate, err := f.Confirmer.Confirm(msgConfirm)
		if err != nil {
			logger.WithError(err).Warn("confirmation prompt failed")
		}
		if err != nil || !generate {
			return Result{Outcome: Skipped}
		}

		report, polls, ce = f.generateAndWait(ctx, client, logger)
		if ce != nil {
			return f.fail(logger, ce, polls)
		}
	}

	if len(report.Content) == 0 {
		logger.Warn("credential report returned no content")
		return Result{Outcome: Skipped, Polls: polls}
	}

	path, err := WriteReport(f.SessionsDir, sess.Name, report.Content, f.clock().Now())
	if err != nil {
		logger.WithError(err).Error("failed to save credential report")
		f.Printer.Print(fmt.Sprintf("❌ Failed to save credential report: %v", err))
		return Result{Outcome: Failed, Err: &Error{Kind: KindUnknown, Err: err}, Polls: polls}
	}

	logger.WithFields(log.Fields{
		"path":      path,
		"format":    report.Format,
		"generated": report.GeneratedTime.Format(time.RFC3339),
		"bytes":     len(report.Content),
	}).Info("credential report saved")
	f.Printer.Print(fmt.Sprintf(msgSaved, path))
	return Result{Outcome: Saved, Path: path, Polls: polls}
}

// generateAndWait requests a new report and polls until it can be fetched.
// There is no attempt limit; only an error other than "not ready" stops it.
func (f *Fetcher) generateAndWait(ctx context.Context, client API, logger *log.Entry) (*Report, int, *Error) {
	out, err := client.GenerateCredentialReport(ctx, &iam.GenerateCredentialReportInput{})
	if err != nil {
		return nil, 0, Classify(err)
	}
	logger.WithField("state", string(out.State)).Debug("credential report generation requested")

	interval := f.interval()
	f.Printer.Print(fmt.Sprintf(msgGenerating, describeInterval(interval)))

	polls := 0
	for {
		f.clock().Sleep(interval)
		polls++

		report, err := fetch(ctx, client)
		if err == nil {
			return report, polls, nil
		}

		ce := Classify(err)
		if ce.Kind != KindReportNotPresent && ce.Kind != KindReportInProgress {
			return nil, polls, ce
		}
		logger.WithFields(log.Fields{"poll": polls, "code": ce.Code}).Debug("credential report not ready")
	}
}

func (f *Fetcher) fail(logger *log.Entry, ce *Error, polls int) Result {
	logger.WithFields(log.Fields{"kind": ce.Kind.String(), "code": ce.Code}).
		WithError(ce.Err).
		Warn("credential report download failed")
	f.Printer.Print(msgDenied)
	return Result{Outcome: Failed, Err: ce, Polls: polls}
}

func fetch(ctx context.Context, client API) (*Report, error) {
	out, err := client.GetCredentialReport(ctx, &iam.GetCredentialReportInput{})
	if err != nil {
		return nil, err
	}
	report := &Report{Content: out.Content, Format: string(out.ReportFormat)}
	if out.GeneratedTime != nil {
		report.GeneratedTime = *out.GeneratedTime
	}
	return report, nil
}

func (f *Fetcher) clock() Clock {
	if f.Clock == nil {
		return SystemClock{}
	}
	return f.Clock
}

func (f *Fetcher) interval() time.Duration {
	if f.Interval <= 0 {
		return internal.DefaultPollInterval
	}
	return f.Interval
}

func (f *Fetcher) logger() log.FieldLogger {
	if f.Log == nil {
		return log.StandardLogger()
	}
	return f.Log
}

func describeInterval(d time.Duration) string {
	if d%time.Second == 0 {
		return fmt.Sprintf("%d seconds", int(d/time.Second))
	}
	return d.String()
}
