package diylisp

import (
	_ "embed"
	"strings"
)

//go:embed prelude.lisp
var prelude string

// LoadPrelude defines the standard library functions in env.
func LoadPrelude(env *Env) error {
	exprs, err := ParseAll(prelude)
	if err != nil {
		return err
	}
	for _, expr := range exprs {
		if _, err := Eval(expr, env); err != nil {
			return &EvalError{Form: expr, Err: err}
		}
	}
	return nil
}

// PreludeSource returns the source of the standard library.
func PreludeSource() string {
	return strings.TrimSpace(prelude)
}
