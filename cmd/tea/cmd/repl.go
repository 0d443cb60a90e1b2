package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lnsp/tea/internal/config"
	"github.com/lnsp/tea/internal/replcli"
	"github.com/lnsp/tea/pkg/tea"
)

var configPath string

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Tea session",
	Long: `Start the Tea read-eval-print loop.

Meta commands:
  !exit          quit the session
  !debug         toggle debug mode (prints the result's type)
  !exec <file>   evaluate a file's contents in the current session`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().StringVar(&configPath, "config", "", "path to a .tearc.yaml config file (default: ./.tearc.yaml)")
}

func runRepl(_ *cobra.Command, _ []string) error {
	path := configPath
	if path == "" {
		path = ".tearc.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", path, err)
	}

	fmt.Printf("Tea @%s\n", Version)

	r := &replcli.REPL{
		Engine: tea.New(),
		Config: cfg,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
	return r.Run()
}
