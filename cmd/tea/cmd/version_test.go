package cmd

import (
	"strings"
	"testing"
)

func TestVersionCommandPrintsVersionInfo(t *testing.T) {
	output, err := captureStdout(t, func() error {
		versionCmd.Run(versionCmd, nil)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output, Version) {
		t.Errorf("expected output to contain version %q, got %q", Version, output)
	}
	if !strings.Contains(output, GitCommit) || !strings.Contains(output, BuildDate) {
		t.Errorf("expected output to contain commit and build date, got %q", output)
	}
}
