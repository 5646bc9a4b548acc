package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ccollicutt/tztail/internal/cli/commands"
	"github.com/ccollicutt/tztail/pkg/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvTimezone, "")
	t.Setenv(config.EnvSourceTimezone, "")
	t.Setenv(config.EnvFormat, "")
}

func runRoot(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd := NewRootCommand()
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	code := run(rootCmd, args, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_ExitCodes(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{"rewrite", []string{"-t", "UTC"}, 0},
		{"unknown timezone", []string{"-t", "Not/AZone"}, 1},
		{"missing timezone", []string{}, 1},
		{"missing file", []string{"-t", "UTC", "/nonexistent/app.log"}, 1},
		{"unknown flag", []string{"--bogus"}, 1},
		{"version", []string{"version"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runRoot(t, "", tt.args...)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr %q)", code, tt.wantCode, stderr)
			}
			if tt.wantCode != 0 && !strings.HasPrefix(stderr, "Error: ") {
				t.Errorf("stderr = %q, want an Error: line", stderr)
			}
			if tt.wantCode == 0 && stderr != "" {
				t.Errorf("stderr = %q, want nothing", stderr)
			}
		})
	}
}

func TestRun_Dispatch(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	logFile := filepath.Join(tmpDir, "app.log")
	if err := os.WriteFile(logFile, []byte("2020-06-01T12:00:00Z ok\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// A file argument goes to the root rewrite command.
	code, stdout, _ := runRoot(t, "", "-t", "Asia/Tokyo", logFile)
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if stdout != "2020-06-01T21:00:00+09:00 ok\n" {
		t.Errorf("rewrite output = %q", stdout)
	}

	// A subcommand name dispatches to the subcommand.
	code, stdout, _ = runRoot(t, "", "detect", "-q", logFile)
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout, "RFC 3339") {
		t.Errorf("detect output = %q", stdout)
	}

	code, stdout, _ = runRoot(t, "", "version")
	if code != 0 || stdout != "tztail "+commands.Version+"\n" {
		t.Errorf("version: code %d, output %q", code, stdout)
	}
}

func TestRun_FileNamedLikeSubcommand(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	logFile := filepath.Join(tmpDir, "detect")
	if err := os.WriteFile(logFile, []byte("2020-06-01T12:00:00Z ok\n"), 0644); err != nil {
		t.Fatal(err)
	}

	code, stdout, _ := runRoot(t, "", "-t", "UTC", logFile)
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if stdout != "2020-06-01T12:00:00Z ok\n" {
		t.Errorf("output = %q", stdout)
	}

	if !strings.Contains(NewRootCommand().Long, "./detect") {
		t.Error("help should explain how to pass a file named like a subcommand")
	}
}

func TestNewRootCommand(t *testing.T) {
	rootCmd := NewRootCommand()

	if !rootCmd.SilenceUsage || !rootCmd.SilenceErrors {
		t.Error("root command should leave error reporting to run")
	}
	if rootCmd.Version != commands.Version {
		t.Errorf("Version = %q", rootCmd.Version)
	}

	for _, name := range []string{"detect", "validate", "version"} {
		found := false
		for _, sub := range rootCmd.Commands() {
			if sub.Name() == name {
				found = true
			}
		}
		if !found {
			t.Errorf("missing subcommand %s", name)
		}
	}
}
