package cmd

import (
	"strings"
	"testing"

	"github.com/lnsp/tea/internal/ast"
)

func TestRunParsePrintsTree(t *testing.T) {
	oldEval := evalExpr
	defer func() { evalExpr = oldEval }()
	evalExpr = `1 + 2 * 3;`

	output, err := captureStdout(t, func() error {
		return runParse(parseCmd, nil)
	})
	if err != nil {
		t.Fatalf("runParse returned error: %v", err)
	}
	if !strings.Contains(output, "+") || !strings.Contains(output, "*") {
		t.Errorf("expected the dumped tree to mention both operators, got %q", output)
	}
}

func TestRunParseReportsParseError(t *testing.T) {
	oldEval := evalExpr
	defer func() { evalExpr = oldEval }()
	evalExpr = `var ;`

	_, err := captureStdout(t, func() error {
		return runParse(parseCmd, nil)
	})
	if err == nil {
		t.Fatal("expected an error for malformed source")
	}
}

func TestDumpNodeIndentsByDepth(t *testing.T) {
	seq := &ast.Sequence{Body: []ast.Node{
		&ast.Assignment{Name: "x", Expr: &ast.Literal{}},
	}}

	output, _ := captureStdout(t, func() error {
		dumpNode(seq, 0)
		return nil
	})

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 printed lines (sequence + child + its expression), got %d: %q", len(lines), output)
	}
	if strings.HasPrefix(lines[1], "  ") == false {
		t.Errorf("child node should be indented, got %q", lines[1])
	}
}

func TestDumpNodeNilIsNoop(t *testing.T) {
	output, _ := captureStdout(t, func() error {
		dumpNode(nil, 0)
		return nil
	})
	if output != "" {
		t.Errorf("dumpNode(nil) should print nothing, got %q", output)
	}
}
