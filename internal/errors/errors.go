package errors

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/bump/internal/logger"
	"github.com/julianstephens/bump/internal/pregnancy"
)

// hinted attaches remediation lines to an error without changing its identity.
type hinted struct {
	err   error
	hints []string
}

func (h *hinted) Error() string { return h.err.Error() }
func (h *hinted) Unwrap() error { return h.err }

// WithHint wraps err so that Format prints each hint on its own indented line.
func WithHint(err error, hints ...string) error {
	if err == nil {
		return nil
	}
	return &hinted{err: err, hints: hints}
}

// Format formats an error message with a consistent "Error: " prefix.
// Rejected reference points are reported with the rule that failed.
func Format(err error) string {
	if err == nil {
		return ""
	}

	var msg string
	var verr *pregnancy.ValidationError
	if errors.As(err, &verr) {
		msg = fmt.Sprintf("Error: %s (%s)", verr.Message, verr.Rule)
	} else {
		msg = fmt.Sprintf("Error: %v", err)
	}

	var h *hinted
	if errors.As(err, &h) && len(h.hints) > 0 {
		var b strings.Builder
		b.WriteString(msg)
		for _, line := range h.hints {
			b.WriteString("\n       ")
			b.WriteString(line)
		}
		msg = b.String()
	}
	return msg
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
