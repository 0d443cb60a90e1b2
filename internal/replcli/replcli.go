// Package replcli implements the interactive shell `tea repl` runs,
// a line-oriented read-eval-print loop: tokenize, parse, and evaluate
// each line against one persistent Engine, with a handful of
// "!"-prefixed meta commands.
package replcli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lnsp/tea/internal/config"
	"github.com/lnsp/tea/pkg/tea"
)

// REPL runs one interactive session over in/out, evaluating against
// engine and formatting results/errors per cfg.
type REPL struct {
	Engine *tea.Engine
	Config *config.REPL
	In     io.Reader
	Out    io.Writer

	debug bool
}

// Run reads lines from r.In until "!exit", EOF, or a fatal read error,
// printing each result line prefixed by Config.ResultPrefix and each
// error line prefixed by Config.ErrorPrefix, mirroring repl.py's
// CLI_RESULT/CLI_ERROR convention.
func (r *REPL) Run() error {
	scanner := bufio.NewScanner(r.In)

	for _, path := range r.Config.Preload {
		if err := r.exec(path); err != nil {
			fmt.Fprintln(r.Out, r.Config.ErrorPrefix+err.Error())
		}
	}

	for {
		fmt.Fprint(r.Out, r.Config.Prompt)
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		done, err := r.interpret(line)
		if err != nil {
			fmt.Fprintln(r.Out, r.Config.ErrorPrefix+err.Error())
		}
		if done {
			return nil
		}
	}
}

// interpret evaluates one line, handling the "!"-prefixed meta
// commands before falling through to ordinary Tea source. It reports
// done=true once "!exit" is seen.
func (r *REPL) interpret(line string) (done bool, err error) {
	switch {
	case line == "!exit":
		return true, nil
	case line == "!debug":
		r.debug = !r.debug
		state := "off"
		if r.debug {
			state = "on"
		}
		fmt.Fprintln(r.Out, r.Config.ResultPrefix+"debug mode "+state)
		return false, nil
	case strings.HasPrefix(line, "!exec "):
		path := strings.TrimSpace(strings.TrimPrefix(line, "!exec "))
		fmt.Fprintln(r.Out, "executing "+path)
		return false, r.exec(path)
	}

	result, evalErr := r.Engine.Run(line)
	if evalErr != nil {
		return false, evalErr
	}
	if r.debug && result != nil {
		fmt.Fprintf(r.Out, "%s%s (%s)\n", r.Config.ResultPrefix, tea.Display(result), result.Type.Name)
		return false, nil
	}
	fmt.Fprintln(r.Out, r.Config.ResultPrefix+tea.Display(result))
	return false, nil
}

func (r *REPL) exec(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = r.Engine.Run(string(content))
	return err
}
