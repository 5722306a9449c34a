package internal

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsolePrinterTagsSession(t *testing.T) {
	var out, logs bytes.Buffer
	SetupLogging(true, "json", &logs)

	p := NewConsolePrinter(&out, "demo", "get_credential_report")
	p.Print("Credential report saved to x.csv")

	if out.String() != "Credential report saved to x.csv\n" {
		t.Errorf("stdout = %q", out.String())
	}
	if !strings.Contains(logs.String(), `"session":"demo"`) {
		t.Errorf("log line should carry the session name, got %s", logs.String())
	}
	if !strings.Contains(logs.String(), `"module":"get_credential_report"`) {
		t.Errorf("log line should carry the module name, got %s", logs.String())
	}
}

func TestSetupLoggingQuietByDefault(t *testing.T) {
	var out, logs bytes.Buffer
	SetupLogging(false, "text", &logs)

	NewConsolePrinter(&out, "demo", "m").Print("hello")

	if logs.Len() != 0 {
		t.Errorf("info lines should be suppressed without verbose, got %q", logs.String())
	}
	if out.String() != "hello\n" {
		t.Errorf("stdout = %q", out.String())
	}
}
