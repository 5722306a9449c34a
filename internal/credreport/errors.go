package credreport

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
)

// Kind classifies why a credential report call failed.
type Kind int

const (
	KindUnknown Kind = iota
	// KindReportNotPresent means no report has been generated yet (or it was
	// generated more than four hours ago and dropped).
	KindReportNotPresent
	// KindReportInProgress means generation was requested and is still running.
	KindReportInProgress
	KindAccessDenied
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindReportNotPresent:
		return "ReportNotPresent"
	case KindReportInProgress:
		return "ReportInProgress"
	case KindAccessDenied:
		return "AccessDenied"
	case KindTransport:
		return "Transport"
	default:
		return "Unknown"
	}
}

// AWS error codes that mean the caller is not allowed to make the call.
var accessDeniedCodes = map[string]bool{
	"AccessDenied":                true,
	"AccessDeniedException":       true,
	"UnauthorizedOperation":       true,
	"InvalidClientTokenId":        true,
	"ExpiredToken":                true,
	"ExpiredTokenException":       true,
	"SignatureDoesNotMatch":       true,
	"UnrecognizedClientException": true,
}

// Error is a classified failure from the IAM credential report API.
type Error struct {
	Kind Kind
	Code string // AWS error code, empty when the call never got a response
	Err  error
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s): %v", e.Kind, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Classify maps an SDK error onto a Kind. It returns nil for a nil error.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var ce *Error
	if errors.As(err, &ce) {
		return ce
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		kind := KindUnknown
		switch {
		case code == "ReportNotPresent":
			kind = KindReportNotPresent
		case code == "ReportInProgress":
			kind = KindReportInProgress
		case accessDeniedCodes[code]:
			kind = KindAccessDenied
		}
		return &Error{Kind: kind, Code: code, Err: err}
	}

	var sendErr *smithyhttp.RequestSendError
	var netErr net.Error
	if errors.As(err, &sendErr) || errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTransport, Err: err}
	}

	return &Error{Kind: KindUnknown, Err: err}
}

// IsNotReady reports whether err means the report simply does not exist yet.
func IsNotReady(err error) bool {
	ce := Classify(err)
	return ce != nil && (ce.Kind == KindReportNotPresent || ce.Kind == KindReportInProgress)
}
