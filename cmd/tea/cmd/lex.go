package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lnsp/tea/internal/lexer"
)

var showPos bool

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Tea file or expression",
	Long: `Tokenize (lex) a Tea program and print the resulting tokens.

Examples:
  tea lex script.tea
  tea lex -e "var x = 1;"
  tea lex --show-pos script.tea`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show the source line next to each token")
}

func lexScript(_ *cobra.Command, args []string) error {
	input, _, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	tokens := lexer.FilterWhitespace(lexer.Tokenize(input))
	for _, t := range tokens {
		if showPos {
			fmt.Printf("%4d  %s\n", t.Line, t.String())
			continue
		}
		fmt.Println(t.String())
	}
	return nil
}
