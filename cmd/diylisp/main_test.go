package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jpschroeder/diylisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunExpressions(t *testing.T) {
	out, err := execute(t, "run", "-e", "-p", "(+ 1 2)", "(define x 2) (* x 21)")
	require.NoError(t, err)
	assert.Equal(t, "3\nx\n42\n", out)
}

func TestRunWithoutPrint(t *testing.T) {
	out, err := execute(t, "run", "-e", "(+ 1 2)")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.lisp")
	src := "(define square (lambda (x) (* x x)))\n(map square (range 1 4))\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	out, err := execute(t, "run", "-p", path)
	require.NoError(t, err)
	assert.Equal(t, "square\n(1 4 9 16)\n", out)
}

func TestRunFault(t *testing.T) {
	_, err := execute(t, "run", "-e", "(/ 1 0)")
	assert.ErrorIs(t, err, diylisp.ErrDivisionByZero)

	_, err = execute(t, "run", "-e", "(+ 1")
	assert.True(t, diylisp.IsIncomplete(err))

	_, err = execute(t, "run", filepath.Join(t.TempDir(), "missing.lisp"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunNoPrelude(t *testing.T) {
	_, err := execute(t, "--no-prelude", "run", "-e", "(sum '(1 2))")
	assert.Equal(t, diylisp.UnknownOperator, diylisp.KindOf(err))
}

func TestBadLogLevel(t *testing.T) {
	_, err := execute(t, "--log-level", "loud", "run", "-e", "1")
	assert.Error(t, err)
}

func TestRunHelp(t *testing.T) {
	out, err := execute(t, "run", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Run lisp code supplied via the command line or a file.")
}

func TestPreludeCmd(t *testing.T) {
	out, err := execute(t, "prelude")
	require.NoError(t, err)
	assert.Contains(t, out, "(define reverse")
}

func TestEvalPrint(t *testing.T) {
	in, err := diylisp.New()
	require.NoError(t, err)
	exprs, err := diylisp.ParseAll("(define n 3) (range 1 n) (head '()) 99")
	require.NoError(t, err)

	var out bytes.Buffer
	evalPrint(in, exprs, &out)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "n", lines[0])
	assert.Equal(t, "(1 2 3)", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "Error: "), lines[2])
}

func TestCompleter(t *testing.T) {
	in, err := diylisp.New()
	require.NoError(t, err)
	c := &completer{env: in.Env()}

	suffixes, n := c.Do([]rune("(def"), 4)
	assert.Equal(t, 3, n)
	assert.Equal(t, [][]rune{[]rune("ine")}, suffixes)

	suffixes, n = c.Do([]rune("(ma"), 3)
	assert.Equal(t, 2, n)
	assert.Equal(t, [][]rune{[]rune("p"), []rune("x")}, suffixes)

	suffixes, n = c.Do([]rune("(map '("), 7)
	assert.Nil(t, suffixes)
	assert.Equal(t, 0, n)

	// only the word under the cursor is completed
	suffixes, n = c.Do([]rune("(le (map"), 3)
	assert.Equal(t, 2, n)
	assert.Equal(t, [][]rune{[]rune("ngth")}, suffixes)
}
