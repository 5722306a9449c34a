package internal

import (
	"fmt"
	"regexp"
	"time"
)

// Session is a named set of AWS credentials the operator works under.
type Session struct {
	Name            string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Expiration      time.Time

	Region        string
	RoleARN       string // empty for static keys
	SourceProfile string // AWS CLI profile the role was assumed from
}

// Expired reports whether the session carries temporary credentials that
// are past their expiration. Static keys never expire.
func (s *Session) Expired(now time.Time) bool {
	return !s.Expiration.IsZero() && s.Expiration.Before(now)
}

var sessionNamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidateSessionName rejects names that are unsafe as a single path component.
func ValidateSessionName(name string) error {
	if name == "" {
		return fmt.Errorf("session name is required")
	}
	if name == "." || name == ".." || !sessionNamePattern.MatchString(name) {
		return fmt.Errorf("invalid session name %q: use letters, digits, '.', '_' or '-'", name)
	}
	return nil
}
