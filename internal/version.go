package internal

import (
	"fmt"
	"runtime"
)

var (
	CurrentVersion = "v0.1.0" // Will be overwritten by ldflags during build
	GitCommit      = ""
)

// VersionString describes the running build.
func VersionString() string {
	s := fmt.Sprintf("cloudrecon version %s", CurrentVersion)
	if GitCommit != "" {
		s += fmt.Sprintf(" (%s)", GitCommit)
	}
	return s + fmt.Sprintf(" %s/%s", runtime.GOOS, runtime.GOARCH)
}
