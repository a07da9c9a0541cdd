package diylisp

// Expr is any value the evaluator handles: the four AST shapes plus closures,
// which only appear at runtime.
type Expr interface {
	expr()
}

type Symbol string
type Integer int64
type Boolean bool

// List is both a form (code) and a list value (data).
type List []Expr

// Closure is a procedure value. Env is the environment that was current when
// the lambda form was evaluated.
type Closure struct {
	Env    *Env
	Params []Symbol
	Body   Expr
}

func (Symbol) expr()   {}
func (Integer) expr()  {}
func (Boolean) expr()  {}
func (List) expr()     {}
func (*Closure) expr() {}

// IsAtom reports whether val is a Symbol, Integer or Boolean.
func IsAtom(val Expr) bool {
	switch val.(type) {
	case Symbol, Integer, Boolean:
		return true
	default:
		return false
	}
}

// typeName is used in fault messages.
func typeName(val Expr) string {
	switch val.(type) {
	case Symbol:
		return "symbol"
	case Integer:
		return "integer"
	case Boolean:
		return "boolean"
	case List:
		return "list"
	case *Closure:
		return "closure"
	case nil:
		return "nil"
	default:
		return "unknown"
	}
}
