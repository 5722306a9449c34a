package internal

import "testing"

func TestGetSecretPriority(t *testing.T) {
	t.Setenv(SecretEnvVar, "from-env")

	got, err := GetSecret("from-flag")
	if err != nil || got != "from-flag" {
		t.Errorf("GetSecret(flag) = %q, %v; want from-flag", got, err)
	}

	got, err = GetSecret("")
	if err != nil || got != "from-env" {
		t.Errorf("GetSecret(\"\") = %q, %v; want from-env", got, err)
	}
}
