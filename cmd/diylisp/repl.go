package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/chzyer/readline"
	"github.com/jpschroeder/diylisp"
	"github.com/spf13/cobra"
)

const (
	prompt      = "→  "
	contPrompt  = "…  "
	historyFile = ".diylisp_history"
)

func runRepl(in *diylisp.Interpreter, cmd *cobra.Command) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyPath(),
		AutoComplete:    &completer{env: in.Env()},
		InterruptPrompt: "^C",
		EOFPrompt:       "bye",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	out := rl.Stdout()
	var buf []string
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			buf = nil
			rl.SetPrompt(prompt)
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		buf = append(buf, line)
		src := strings.Join(buf, "\n")
		if strings.TrimSpace(src) == "" {
			buf = nil
			continue
		}

		exprs, err := diylisp.ParseAll(src)
		if diylisp.IsIncomplete(err) {
			rl.SetPrompt(contPrompt)
			continue
		}
		buf = nil
		rl.SetPrompt(prompt)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		evalPrint(in, exprs, out)
	}
}

// evalPrint prints the value of each expression, stopping at the first error.
func evalPrint(in *diylisp.Interpreter, exprs []diylisp.Expr, out io.Writer) {
	for _, expr := range exprs {
		val, err := in.EvalExpr(expr)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}
		fmt.Fprintln(out, diylisp.Print(val))
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.WithError(err).Debug("no home directory, history disabled")
		return ""
	}
	return filepath.Join(home, historyFile)
}

// completer completes keywords and symbols bound in env.
type completer struct {
	env *diylisp.Env
}

func (c *completer) Do(line []rune, pos int) ([][]rune, int) {
	start := pos
	for start > 0 && !isDelimiter(line[start-1]) {
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}

	var suffixes [][]rune
	for _, name := range c.names() {
		if len(name) > len(prefix) && strings.HasPrefix(name, prefix) {
			suffixes = append(suffixes, []rune(name[len(prefix):]))
		}
	}
	return suffixes, len([]rune(prefix))
}

func (c *completer) names() []string {
	seen := make(map[string]bool)
	var names []string
	for _, sym := range append(diylisp.Keywords(), c.env.Symbols()...) {
		if !seen[string(sym)] {
			seen[string(sym)] = true
			names = append(names, string(sym))
		}
	}
	sort.Strings(names)
	return names
}

func isDelimiter(ch rune) bool {
	return unicode.IsSpace(ch) || ch == '(' || ch == ')' || ch == '\''
}
