package credreport

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chukul/cloudrecon/internal"
)

const maxNameAttempts = 1000

// DownloadsDir is where files fetched under a session are kept.
func DownloadsDir(sessionsDir, sessionName string) string {
	return filepath.Join(sessionsDir, sessionName, "downloads")
}

// ReportPath is the file a report fetched at t is written to.
func ReportPath(sessionsDir, sessionName string, t time.Time) string {
	return filepath.Join(DownloadsDir(sessionsDir, sessionName), reportFileName(t))
}

func reportFileName(t time.Time) string {
	return fmt.Sprintf("%s_%s.csv", ModuleName, internal.UnixTimestamp(t))
}

// WriteReport saves content under the session's downloads directory, creating
// it if needed, and returns the path written. An existing file is never
// overwritten: on a name clash the timestamp moves forward one microsecond.
func WriteReport(sessionsDir, sessionName string, content []byte, now time.Time) (string, error) {
	if err := internal.ValidateSessionName(sessionName); err != nil {
		return "", err
	}

	dir := DownloadsDir(sessionsDir, sessionName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create downloads directory: %w", err)
	}

	t := now
	for i := 0; i < maxNameAttempts; i++ {
		path := filepath.Join(dir, reportFileName(t))
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if errors.Is(err, os.ErrExist) {
			t = t.Add(time.Microsecond)
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create %s: %w", path, err)
		}

		if _, err := f.Write(content); err != nil {
			f.Close()
			os.Remove(path)
			return "", fmt.Errorf("failed to write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("failed to close %s: %w", path, err)
		}
		return path, nil
	}
	return "", fmt.Errorf("could not find a free file name in %s", dir)
}
