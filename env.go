package diylisp

import "sort"

// Env holds the bindings visible to an expression. Extending an Env copies
// it, so an Env never observes definitions made in another one.
type Env struct {
	symbols map[Symbol]Expr
}

// Binding pairs a symbol with a value for Extend.
type Binding struct {
	Symbol Symbol
	Value  Expr
}

func NewEnv(s map[Symbol]Expr) *Env {
	symbols := make(map[Symbol]Expr, len(s))
	for k, v := range s {
		symbols[k] = v
	}
	return &Env{symbols}
}

func (e *Env) Lookup(sym Symbol) (Expr, error) {
	val, ok := e.symbols[sym]
	if !ok {
		return nil, newFault(UnboundSymbol, string(sym), "cannot find variable")
	}
	return val, nil
}

// Define binds sym in e. A symbol can only be defined once per Env.
func (e *Env) Define(sym Symbol, val Expr) error {
	if _, exists := e.symbols[sym]; exists {
		return newFault(AlreadyDefined, string(sym), "symbol is already defined")
	}
	e.symbols[sym] = val
	return nil
}

// Extend returns a new Env with a copy of e's bindings overlaid with
// bindings. Later bindings win over earlier ones and over e.
func (e *Env) Extend(bindings []Binding) *Env {
	child := NewEnv(e.symbols)
	for _, b := range bindings {
		child.symbols[b.Symbol] = b.Value
	}
	return child
}

// Symbols returns the bound names in sorted order.
func (e *Env) Symbols() []Symbol {
	syms := make([]Symbol, 0, len(e.symbols))
	for sym := range e.symbols {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i] < syms[j]
	})
	return syms
}
