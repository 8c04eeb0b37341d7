package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestTopLevel(t *testing.T) {
	tests := []struct {
		command string
		want    string
	}{
		{"init", "init"},
		{"keyring set <conn-str>", "keyring"},
		{"week <week>", "week"},
		{"diet water", "diet"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := topLevel(tt.command); got != tt.want {
			t.Errorf("topLevel(%q) = %q, want %q", tt.command, got, tt.want)
		}
	}
}

// buildCLI compiles the bump binary into a temp dir.
func buildCLI(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping end-to-end workflow in short mode")
	}
	goBin, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go toolchain not found in PATH")
	}

	binPath := filepath.Join(t.TempDir(), "bump")
	cmd := exec.Command(goBin, "build", "-o", binPath, ".")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build CLI: %v\nOutput: %s", err, out)
	}
	return binPath
}

// isolatedEnv points HOME and every BUMP_ variable at tempDir.
func isolatedEnv(tempDir string) []string {
	var env []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "HOME=") || strings.HasPrefix(e, "BUMP_") {
			continue
		}
		env = append(env, e)
	}
	return append(env,
		"HOME="+tempDir,
		"BUMP_CONFIG="+filepath.Join(tempDir, "bump", "config.yaml"),
		"BUMP_DB="+filepath.Join(tempDir, "bump", "bump.db"),
	)
}

func TestEndToEndWorkflow(t *testing.T) {
	cliPath := buildCLI(t)
	tempDir := t.TempDir()
	env := isolatedEnv(tempDir)

	run := func(args ...string) string {
		t.Helper()
		cmd := exec.Command(cliPath, args...)
		cmd.Env = env
		cmd.Dir = tempDir
		out, err := cmd.CombinedOutput()
		if err != nil {
			t.Fatalf("bump %v failed: %v\nOutput: %s", args, err, out)
		}
		return string(out)
	}

	if out := run("init"); !strings.Contains(out, "Initialized bump storage") {
		t.Errorf("unexpected init output: %s", out)
	}

	run("setup", "--weeks", "20", "--days", "3", "--first-name", "Ada")
	run("milestone", "add", "Anatomy scan", "--type", "ultrasound")
	run("entry", "add", "--activity", "mood:happy", "--notes", "Felt the first kick")
	run("appointment", "add", "OB checkup", "--date", "tomorrow", "--time", "10:00")
	run("reminder", "add", "Prenatal vitamin", "--time", "08:00")

	if out := run("status"); !strings.Contains(out, "20 weeks 3 days") {
		t.Errorf("status should report 20 weeks 3 days, got: %s", out)
	}
	if out := run("milestone", "list"); !strings.Contains(out, "Anatomy scan") {
		t.Errorf("milestone list missing entry: %s", out)
	}
	if out := run("reminders", "list"); !strings.Contains(out, "Prenatal vitamin") {
		t.Errorf("reminder list missing entry: %s", out)
	}

	run("validate", "--strict")
	run("doctor")
	run("notify", "--dry-run")

	exportPath := filepath.Join(tempDir, "export.yaml")
	run("export", "--out", exportPath)
	data, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	if !strings.Contains(string(data), "Anatomy scan") {
		t.Errorf("export missing milestone")
	}

	if out := run("backup", "create"); !strings.Contains(out, "Backup created") {
		t.Errorf("unexpected backup output: %s", out)
	}
}

func TestEndToEnd_UninitializedStore(t *testing.T) {
	cliPath := buildCLI(t)
	tempDir := t.TempDir()

	cmd := exec.Command(cliPath, "status")
	cmd.Env = isolatedEnv(tempDir)
	out, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("expected status to fail before init, output: %s", out)
	}
	if !strings.Contains(string(out), "run 'bump init' first") {
		t.Errorf("expected init hint, got: %s", out)
	}
}
