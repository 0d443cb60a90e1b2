package replcli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lnsp/tea/internal/config"
	"github.com/lnsp/tea/pkg/tea"
)

func run(t *testing.T, cfg *config.REPL, script string) string {
	t.Helper()
	var out strings.Builder
	r := &REPL{
		Engine: tea.New(),
		Config: cfg,
		In:     strings.NewReader(script),
		Out:    &out,
	}
	if err := r.Run(); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	return out.String()
}

func TestREPL_EvaluatesLines(t *testing.T) {
	out := run(t, config.Default(), "1 + 1;\n!exit\n")
	if !strings.Contains(out, "<- 2") {
		t.Errorf("output %q missing result line for 1 + 1", out)
	}
}

func TestREPL_PersistsNamespaceAcrossLines(t *testing.T) {
	out := run(t, config.Default(), "var x = 10;\nx * 2;\n!exit\n")
	if !strings.Contains(out, "<- 20") {
		t.Errorf("output %q missing result line for x * 2", out)
	}
}

func TestREPL_ReportsEvalErrors(t *testing.T) {
	out := run(t, config.Default(), "1 / 0;\n!exit\n")
	if !strings.Contains(out, "!! ") {
		t.Errorf("output %q missing error prefix", out)
	}
}

func TestREPL_DebugTogglePrintsType(t *testing.T) {
	out := run(t, config.Default(), "!debug\n1;\n!exit\n")
	if !strings.Contains(out, "(int)") {
		t.Errorf("output %q missing debug type annotation", out)
	}
}

func TestREPL_ExecLoadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.tea")
	if err := os.WriteFile(path, []byte("var shared = 7;"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	out := run(t, config.Default(), "!exec "+path+"\nshared;\n!exit\n")
	if !strings.Contains(out, "<- 7") {
		t.Errorf("output %q missing result sourced from !exec'd file", out)
	}
}

func TestREPL_Preload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.tea")
	if err := os.WriteFile(path, []byte("var shared = 3;"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	cfg := config.Default()
	cfg.Preload = []string{path}

	out := run(t, cfg, "shared + 1;\n!exit\n")
	if !strings.Contains(out, "<- 4") {
		t.Errorf("output %q missing result built on preloaded value", out)
	}
}
