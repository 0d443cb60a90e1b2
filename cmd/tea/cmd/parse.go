package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lnsp/tea/internal/ast"
	"github.com/lnsp/tea/pkg/tea"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse Tea source code and display the AST",
	Long: `Parse Tea source code and display the Abstract Syntax Tree.

Examples:
  tea parse script.tea
  tea parse -e "1 + 2 * 3;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline code instead of reading from file")
}

func runParse(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	engine := tea.New()
	program, err := engine.Parse(input)
	if err != nil {
		fmt.Println(tea.FormatError(err, input))
		return fmt.Errorf("parsing %s failed", filename)
	}

	dumpNode(program, 0)
	return nil
}

// dumpNode prints node and its children as an indented tree, walking
// the same shape of node the evaluator's type switch dispatches on.
func dumpNode(n ast.Node, depth int) {
	if n == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	fmt.Printf("%s%s\n", indent, n.String())

	switch v := n.(type) {
	case *ast.Sequence:
		for _, stmt := range v.Body {
			dumpNode(stmt, depth+1)
		}
	case *ast.Conditional:
		dumpNode(v.Predicate, depth+1)
		dumpNode(v.Body, depth+1)
	case *ast.Branch:
		for _, c := range v.Conditionals {
			dumpNode(c, depth+1)
		}
		dumpNode(v.Else, depth+1)
	case *ast.Loop:
		dumpNode(v.Predicate, depth+1)
		dumpNode(v.Body, depth+1)
	case *ast.Operation:
		for _, o := range v.Operands {
			dumpNode(o, depth+1)
		}
	case *ast.Call:
		for _, a := range v.Arguments {
			dumpNode(a, depth+1)
		}
	case *ast.Cast:
		dumpNode(v.Expr, depth+1)
	case *ast.Return:
		dumpNode(v.Expr, depth+1)
	case *ast.Assignment:
		dumpNode(v.Expr, depth+1)
	case *ast.Definition:
		dumpNode(v.Body, depth+1)
	}
}
