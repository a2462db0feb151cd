package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// runCLI executes the built binary with an isolated HOME, so a developer's
// real ~/.rewind/config.yaml cannot leak into assertions.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(cliBinary, args...)
	cmd.Env = append(os.Environ(), "HOME="+t.TempDir())
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// TestVersionCommand verifies the binary starts and reports its version
// without needing a config file.
func TestVersionCommand(t *testing.T) {
	output, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("version command failed: %v\nOutput: %s", err, output)
	}

	if !strings.HasPrefix(output, "rewind ") {
		t.Errorf("FAIL: unexpected version output: %q", output)
	}
}

func TestHelpListsSubcommands(t *testing.T) {
	output, err := runCLI(t, "--help")
	if err != nil {
		t.Fatalf("help failed: %v\nOutput: %s", err, output)
	}

	for _, want := range []string{"demo", "version", "--config", "--log-level"} {
		if !strings.Contains(output, want) {
			t.Errorf("FAIL: help output missing %q", want)
		}
	}
}

// TestDemoRejectsInvalidDepth checks that flag overrides are validated before
// the terminal UI starts.
func TestDemoRejectsInvalidDepth(t *testing.T) {
	output, err := runCLI(t, "demo", "--depth", "0")
	if err == nil {
		t.Fatalf("expected demo --depth 0 to fail, output: %s", output)
	}

	if !strings.Contains(output, "max_depth must be at least 1") {
		t.Errorf("FAIL: expected depth validation error, got: %s", output)
	}
}

func TestExplicitConfigMustExist(t *testing.T) {
	output, err := runCLI(t, "--config", "/nonexistent/rewind.yaml", "version")
	if err == nil {
		t.Fatalf("expected missing explicit config to fail, output: %s", output)
	}

	if !strings.Contains(output, "Error loading config") {
		t.Errorf("FAIL: expected config load error, got: %s", output)
	}
}

// TestInvalidConfigFileRejected writes a config with an out-of-range depth
// and verifies startup refuses it.
func TestInvalidConfigFileRejected(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("max_depth: 0\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	output, err := runCLI(t, "--config", cfgPath, "version")
	if err == nil {
		t.Fatalf("expected invalid config to fail, output: %s", output)
	}

	if !strings.Contains(output, "max_depth") {
		t.Errorf("FAIL: expected max_depth validation error, got: %s", output)
	}
}
