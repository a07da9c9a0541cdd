package diylisp

import (
	"bufio"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Interpreter reads source text and evaluates it in a single environment
// that persists across calls.
type Interpreter struct {
	env       *Env
	log       logrus.FieldLogger
	noPrelude bool
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithEnv makes the interpreter evaluate in env instead of a new empty one.
func WithEnv(env *Env) Option {
	return func(in *Interpreter) {
		in.env = env
	}
}

// WithLogger sets the logger used for load and evaluation tracing. The
// default discards everything.
func WithLogger(log logrus.FieldLogger) Option {
	return func(in *Interpreter) {
		in.log = log
	}
}

// WithoutPrelude skips loading the standard library.
func WithoutPrelude() Option {
	return func(in *Interpreter) {
		in.noPrelude = true
	}
}

func New(opts ...Option) (*Interpreter, error) {
	in := &Interpreter{}
	for _, opt := range opts {
		opt(in)
	}
	if in.env == nil {
		in.env = NewEnv(nil)
	}
	if in.log == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		in.log = quiet
	}

	if !in.noPrelude {
		if err := LoadPrelude(in.env); err != nil {
			in.log.WithError(err).Error("failed to load prelude")
			return nil, err
		}
		in.log.Debug("prelude loaded")
	}
	return in, nil
}

func (in *Interpreter) Env() *Env {
	return in.env
}

// Eval evaluates every expression in src and returns the value of the last
// one. Evaluation stops at the first error.
func (in *Interpreter) Eval(src string) (Expr, error) {
	exprs, err := ParseAll(src)
	if err != nil {
		in.log.WithError(err).Debug("parse failed")
		return nil, err
	}
	return in.evalAll(exprs)
}

// Interpret is Eval followed by Print.
func (in *Interpreter) Interpret(src string) (string, error) {
	val, err := in.Eval(src)
	if err != nil {
		return "", err
	}
	return Print(val), nil
}

// Load evaluates all expressions read from r. name is only used for logging.
func (in *Interpreter) Load(name string, r io.Reader) error {
	log := in.log.WithField("source", name)
	br := bufio.NewReader(r)
	count := 0
	for {
		expr, err := Read(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			log.WithError(err).Debug("read failed")
			return err
		}
		if _, err := in.EvalExpr(expr); err != nil {
			return err
		}
		count++
	}
	log.WithField("forms", count).Debug("loaded")
	return nil
}

func (in *Interpreter) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return in.Load(path, f)
}

// EvalExpr evaluates an already parsed expression in the session env.
func (in *Interpreter) EvalExpr(expr Expr) (Expr, error) {
	val, err := Eval(expr, in.env)
	if err != nil {
		in.log.WithFields(logrus.Fields{
			"form":  Print(expr),
			"fault": KindOf(err).String(),
		}).Debug("evaluation failed")
		return nil, &EvalError{Form: expr, Err: err}
	}
	return val, nil
}

func (in *Interpreter) evalAll(exprs []Expr) (Expr, error) {
	var val Expr
	for _, expr := range exprs {
		var err error
		val, err = in.EvalExpr(expr)
		if err != nil {
			return nil, err
		}
	}
	return val, nil
}
