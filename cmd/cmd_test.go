package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chukul/cloudrecon/internal"
)

const testSecret = "1234567890ABCDEF1234567890ABCDEF"

func TestSessionAddStoresAndActivates(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv(internal.SecretEnvVar, testSecret)

	storePath := filepath.Join(dir, "creds.json")
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("store_path: "+storePath+"\n"), 0600))

	rootCmd.SetArgs([]string{
		"--config", cfgPath,
		"--sessions-dir", filepath.Join(dir, "sessions"),
		"session", "add", "demo",
		"--access-key-id", "AKIADEMO",
		"--secret-access-key", "s3cret",
	})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, filepath.Join(dir, "sessions"), appConfig.SessionsDir)

	sess, err := internal.NewStore(storePath, testSecret).Active()
	require.NoError(t, err)
	assert.Equal(t, "demo", sess.Name)
	assert.Equal(t, "AKIADEMO", sess.AccessKeyID)
	assert.Equal(t, "s3cret", sess.SecretAccessKey)
}

func TestGetCredentialReportTakesNoArguments(t *testing.T) {
	assert.Equal(t, "get_credential_report", getCredentialReportCmd.Name())
	getCredentialReportCmd.LocalNonPersistentFlags().VisitAll(func(f *pflag.Flag) {
		assert.Equal(t, "help", f.Name, "unexpected module flag --%s", f.Name)
	})
	assert.Error(t, getCredentialReportCmd.Args(getCredentialReportCmd, []string{"extra"}))
	assert.NoError(t, getCredentialReportCmd.Args(getCredentialReportCmd, nil))
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", truncateText("short", 10))
	assert.Equal(t, "arn:aws:i...", truncateText("arn:aws:iam::123456789012:role/x", 12))
}
