package internal

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
)

// SetupLogging configures the standard logrus logger. Only warnings and
// errors are shown unless verbose is set.
func SetupLogging(verbose bool, format string, w io.Writer) {
	log.SetOutput(w)

	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	log.SetLevel(level)

	if format == "json" {
		log.SetFormatter(&log.JSONFormatter{TimestampFormat: LogTimeFormat})
	} else {
		log.SetFormatter(&log.TextFormatter{TimestampFormat: LogTimeFormat, FullTimestamp: true})
	}
}

// ConsolePrinter writes module output for the operator and mirrors each
// line to the log, tagged with the session it ran under.
type ConsolePrinter struct {
	Out io.Writer
	Log *log.Entry
}

// NewConsolePrinter returns a printer for sessionName writing to out.
func NewConsolePrinter(out io.Writer, sessionName, module string) *ConsolePrinter {
	return &ConsolePrinter{
		Out: out,
		Log: log.WithFields(log.Fields{"session": sessionName, "module": module}),
	}
}

func (p *ConsolePrinter) Print(msg string) {
	fmt.Fprintln(p.Out, msg)
	p.Log.Info(msg)
}
