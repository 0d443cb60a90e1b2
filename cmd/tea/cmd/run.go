package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lnsp/tea/pkg/tea"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Tea file or expression",
	Long: `Execute a Tea program from a file or inline expression.

Examples:
  # Run a script file
  tea run script.tea

  # Evaluate an inline expression
  tea run -e "print(1 + 2);"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
}

func runScript(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	engine := tea.New()
	if _, err := engine.Run(input); err != nil {
		fmt.Fprintln(os.Stderr, tea.FormatError(err, input))
		return fmt.Errorf("execution of %s failed", filename)
	}
	return nil
}

// readSource resolves the input to run/lex/parse: an inline -e
// expression, a file argument, or neither (an error).
func readSource(eval string, args []string) (input, filename string, err error) {
	switch {
	case eval != "":
		return eval, "<eval>", nil
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	default:
		return "", "", fmt.Errorf("either provide a file path or use -e for inline code")
	}
}
