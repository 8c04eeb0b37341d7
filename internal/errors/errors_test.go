package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/julianstephens/bump/internal/pregnancy"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name: "validation error",
			err: &pregnancy.ValidationError{
				Rule:    pregnancy.RuleWeeksRange,
				Message: "Weeks must be between 0 and 42",
			},
			expected: "Error: Weeks must be between 0 and 42 (weeks_range)",
		},
		{
			name: "wrapped validation error",
			err: fmt.Errorf("saving profile: %w", &pregnancy.ValidationError{
				Rule:    pregnancy.RuleFutureDate,
				Message: "Reference date cannot be in the future",
			}),
			expected: "Error: Reference date cannot be in the future (future_date)",
		},
		{
			name:     "hinted error",
			err:      WithHint(errors.New("storage not initialized"), "Run 'bump init' first."),
			expected: "Error: storage not initialized\n       Run 'bump init' first.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestWithHint(t *testing.T) {
	if WithHint(nil, "ignored") != nil {
		t.Error("WithHint(nil) should return nil")
	}

	base := errors.New("boom")
	wrapped := WithHint(base, "try again")
	if !errors.Is(wrapped, base) {
		t.Error("hinted error should unwrap to its cause")
	}
	if wrapped.Error() != "boom" {
		t.Errorf("Error() = %q, want %q", wrapped.Error(), "boom")
	}
}

func TestFormatf(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		args     []interface{}
		expected string
	}{
		{
			name:     "simple message",
			format:   "something went wrong",
			expected: "Error: something went wrong",
		},
		{
			name:     "formatted message",
			format:   "no profile found in %s",
			args:     []interface{}{"bump.db"},
			expected: "Error: no profile found in bump.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Formatf(tt.format, tt.args...)
			if result != tt.expected {
				t.Errorf("Formatf() = %q, want %q", result, tt.expected)
			}
		})
	}
}

// TestFatal tests the Fatal function using exec helper process
func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		Fatal(errors.New("test error"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		if e.ExitCode() != 1 {
			t.Errorf("Fatal() exit code = %d, want 1", e.ExitCode())
		}
		if !strings.Contains(stderr.String(), "Error: test error") {
			t.Errorf("Fatal() stderr = %q, want to contain %q", stderr.String(), "Error: test error")
		}
	} else {
		t.Errorf("Fatal() did not exit with error: %v", err)
	}
}

func TestFatal_NilError(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal_NilError")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_NIL=1")

	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}

func TestFatalf(t *testing.T) {
	if os.Getenv("GO_TEST_FATALF") == "1" {
		Fatalf("connection to %s:%d failed", "localhost", 5432)
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatalf")
	cmd.Env = append(os.Environ(), "GO_TEST_FATALF=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		if e.ExitCode() != 1 {
			t.Errorf("Fatalf() exit code = %d, want 1", e.ExitCode())
		}
		want := "Error: connection to localhost:5432 failed"
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("Fatalf() stderr = %q, want to contain %q", stderr.String(), want)
		}
	} else {
		t.Errorf("Fatalf() did not exit with error: %v", err)
	}
}
