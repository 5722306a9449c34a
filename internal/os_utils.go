package internal

import "runtime"

// SecretEnvVar names the environment variable holding the store secret.
const SecretEnvVar = "CLOUDRECON_SECRET"

// IsMacOS checks if the runtime OS is darwin
func IsMacOS() bool {
	return runtime.GOOS == "darwin"
}
