package diylisp

import (
	"errors"
	"fmt"
)

// FaultKind classifies evaluation failures.
type FaultKind int

const (
	UnboundSymbol FaultKind = iota + 1
	AlreadyDefined
	ArityMismatch
	NotASymbol
	InvalidParams
	NotAFunction
	UnknownOperator
	DivisionByZero
	TypeMismatch
	EmptyList
)

var kindNames = map[FaultKind]string{
	UnboundSymbol:   "unbound symbol",
	AlreadyDefined:  "already defined",
	ArityMismatch:   "arity mismatch",
	NotASymbol:      "not a symbol",
	InvalidParams:   "invalid params",
	NotAFunction:    "not a function",
	UnknownOperator: "unknown operator",
	DivisionByZero:  "division by zero",
	TypeMismatch:    "type mismatch",
	EmptyList:       "empty list",
}

func (k FaultKind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return fmt.Sprintf("fault(%d)", int(k))
	}
	return name
}

// Sentinels for errors.Is. A *Fault matches the sentinel of its kind.
var (
	ErrUnboundSymbol   = &Fault{Kind: UnboundSymbol}
	ErrAlreadyDefined  = &Fault{Kind: AlreadyDefined}
	ErrArityMismatch   = &Fault{Kind: ArityMismatch}
	ErrNotASymbol      = &Fault{Kind: NotASymbol}
	ErrInvalidParams   = &Fault{Kind: InvalidParams}
	ErrNotAFunction    = &Fault{Kind: NotAFunction}
	ErrUnknownOperator = &Fault{Kind: UnknownOperator}
	ErrDivisionByZero  = &Fault{Kind: DivisionByZero}
	ErrTypeMismatch    = &Fault{Kind: TypeMismatch}
	ErrEmptyList       = &Fault{Kind: EmptyList}
)

// Fault is an evaluation failure. Op names the operator or symbol involved
// and Err holds the underlying cause, if any.
type Fault struct {
	Kind FaultKind
	Op   string
	Msg  string
	Err  error
}

func (f *Fault) Error() string {
	msg := f.Msg
	if msg == "" {
		msg = f.Kind.String()
	}
	if f.Op != "" {
		msg = fmt.Sprintf("%s: %s", f.Op, msg)
	}
	if f.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, f.Err)
	}
	return msg
}

func (f *Fault) Unwrap() error {
	return f.Err
}

func (f *Fault) Is(target error) bool {
	t, ok := target.(*Fault)
	return ok && t.Kind == f.Kind
}

func newFault(kind FaultKind, op string, format string, args ...any) *Fault {
	return &Fault{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func arityFault(op string, expected, actual int) *Fault {
	return newFault(ArityMismatch, op, "wrong number of arguments, expected %d got %d", expected, actual)
}

func typeFault(op string, expected string, actual Expr) *Fault {
	return newFault(TypeMismatch, op, "expected %s, got %s %s", expected, typeName(actual), Print(actual))
}

// KindOf returns the kind of the first *Fault in err's chain, or 0 when err
// carries no fault.
func KindOf(err error) FaultKind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return 0
}

// EvalError is returned by an Interpreter when a top level form fails. The
// originating *Fault stays reachable through Unwrap.
type EvalError struct {
	Form Expr
	Err  error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("error evaluating %s: %v", Print(e.Form), e.Err)
}

func (e *EvalError) Unwrap() error {
	return e.Err
}

// SyntaxError is returned by the reader. Incomplete is set when the input
// ended inside an expression.
type SyntaxError struct {
	Msg        string
	Incomplete bool
}

func (e *SyntaxError) Error() string {
	return "syntax error: " + e.Msg
}
