package account

import (
	"fmt"
	"os"

	"github.com/sparkfi/sparkgo/pkg/logger"
)

// Severity tags user-facing notices.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// Notifier is the fire-and-forget sink for user-facing notices. The
// controller is the only component that talks to it.
type Notifier interface {
	Notify(message string, severity Severity)
}

// LogNotifier routes notices to the process log; the default for headless
// use where no UI is attached.
type LogNotifier struct{}

func (LogNotifier) Notify(message string, severity Severity) {
	if severity == SeverityError {
		logger.Error(message)
		return
	}
	logger.Info(message)
}

// ConsoleNotifier prints notices straight to stderr, for interactive CLI
// sessions where log lines would be noise.
type ConsoleNotifier struct{}

func (ConsoleNotifier) Notify(message string, severity Severity) {
	fmt.Fprintf(os.Stderr, "[%s] %s\n", severity, message)
}
