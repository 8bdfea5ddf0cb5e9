//go:build integration

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"
)

// TestRunExamplePrograms runs the bundled example programs end to end
func TestRunExamplePrograms(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	binaryPath := buildCallistoBinary(t)

	tests := []struct {
		program string
		want    string
	}{
		{"hello.cal", "hello, callisto\n"},
		{"factorial.cal", "10 ! = 3628800\n"},
		{"strings.cal", "call|isto llis 8\n"},
	}

	for _, tt := range tests {
		t.Run(tt.program, func(t *testing.T) {
			cmd := exec.Command(binaryPath, "run", filepath.Join("..", "examples", "programs", tt.program), "--no-dumps")

			var stdout, stderr bytes.Buffer
			cmd.Stdout = &stdout
			cmd.Stderr = &stderr

			if err := cmd.Run(); err != nil {
				t.Fatalf("run failed: %v\nStderr: %s", err, stderr.String())
			}
			if stdout.String() != tt.want {
				t.Errorf("output = %q, want %q", stdout.String(), tt.want)
			}
		})
	}
}

// TestRunFailureWritesDiagnostics checks the exit status and dumps of a failing run
func TestRunFailureWritesDiagnostics(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	tmpDir := t.TempDir()
	program := filepath.Join(tmpDir, "broken.cal")
	writeFile(t, program, "define start()\n\twriteLine(10 / 0)\n")

	configFile := filepath.Join(tmpDir, "config.yaml")
	writeFile(t, configFile, `
diagnostics:
  enabled: true
  dir: "`+filepath.Join(tmpDir, "debug")+`"
  format: "json"

telemetry:
  logging:
    level: "error"
    format: "json"
  tracing:
    enabled: false
`)

	binaryPath := buildCallistoBinary(t)
	cmd := exec.Command(binaryPath, "run", program, "--config", configFile)
	output, err := cmd.CombinedOutput()

	exitErr, ok := err.(*exec.ExitError)
	if !ok || exitErr.ExitCode() != 1 {
		t.Fatalf("expected exit status 1, got %v\nOutput: %s", err, output)
	}
	if !bytes.Contains(output, []byte("[arithmetic]")) {
		t.Errorf("expected an arithmetic error, got: %s", output)
	}

	matches, _ := filepath.Glob(filepath.Join(tmpDir, "debug", "tokens_*.json"))
	if len(matches) != 1 {
		t.Errorf("expected one JSON token dump, found %v", matches)
	}
}

// TestCheckPipeline checks the example directory and JSON output
func TestCheckPipeline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	binaryPath := buildCallistoBinary(t)

	cmd := exec.Command(binaryPath, "check", filepath.Join("..", "examples", "programs"), "--format", "json")
	output, err := cmd.Output()
	if err != nil {
		t.Fatalf("check failed: %v\nOutput: %s", err, output)
	}

	var report struct {
		Files []struct {
			File  string `json:"file"`
			Valid bool   `json:"valid"`
		} `json:"files"`
		Failed int `json:"failed"`
	}
	if err := json.Unmarshal(output, &report); err != nil {
		t.Fatalf("failed to parse JSON output: %v\nOutput: %s", err, output)
	}
	if report.Failed != 0 || len(report.Files) == 0 {
		t.Errorf("unexpected report: %+v", report)
	}
}

// TestScheduleRunsUntilInterrupted starts a schedule and stops it with SIGINT
func TestScheduleRunsUntilInterrupted(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	binaryPath := buildCallistoBinary(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, binaryPath, "schedule",
		filepath.Join("..", "examples", "programs", "hello.cal"),
		"--cron", "@every 1s", "--now")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		t.Fatalf("failed to start schedule: %v", err)
	}

	time.Sleep(2500 * time.Millisecond)

	if err := cmd.Process.Signal(syscall.SIGINT); err != nil {
		t.Fatalf("failed to signal: %v", err)
	}
	if err := cmd.Wait(); err != nil {
		t.Fatalf("schedule exited with error: %v\nStderr: %s", err, stderr.String())
	}

	if runs := strings.Count(stdout.String(), "hello, callisto\n"); runs < 2 {
		t.Errorf("expected at least 2 runs, got %d\nOutput: %s", runs, stdout.String())
	}
}

// TestCommandVersionOutput tests the version command
func TestCommandVersionOutput(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	binaryPath := buildCallistoBinary(t)

	cmd := exec.Command(binaryPath, "version")
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("version command failed: %v\nOutput: %s", err, output)
	}

	if !bytes.Contains(output, []byte("Callisto")) {
		t.Errorf("version output should contain 'Callisto', got: %s", output)
	}
}

// Helper functions

// buildCallistoBinary builds the callisto binary for testing
func buildCallistoBinary(t *testing.T) string {
	t.Helper()

	// Check if binary already exists in bin/
	binaryPath := "../bin/callisto"
	if _, err := os.Stat(binaryPath); err == nil {
		return binaryPath
	}

	t.Log("Building callisto binary...")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../cmd/callisto")
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to build callisto: %v\nOutput: %s", err, output)
	}

	return binaryPath
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
