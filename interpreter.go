package diylisp

import "sort"

var operators map[Symbol]specialform

func init() {
	operators = map[Symbol]specialform{
		Symbol("quote"):  quote,
		Symbol("atom"):   atom,
		Symbol("eq"):     eq,
		Symbol("+"):      arithmetic("+", add),
		Symbol("-"):      arithmetic("-", sub),
		Symbol("*"):      arithmetic("*", mul),
		Symbol("/"):      arithmetic("/", div),
		Symbol("mod"):    arithmetic("mod", mod),
		Symbol(">"):      gt,
		Symbol("if"):     ifform,
		Symbol("define"): define,
		Symbol("lambda"): lambda,
		Symbol("cons"):   cons,
		Symbol("head"):   head,
		Symbol("tail"):   tail,
		Symbol("empty"):  empty,
	}
}

// special forms take unevaluated arguments and the env
type specialform func(args []Expr, env *Env) (Expr, error)

// IsKeyword reports whether sym names one of the built in operators. Keywords
// are resolved before the environment, so binding one has no effect on forms
// that use it as an operator.
func IsKeyword(sym Symbol) bool {
	_, ok := operators[sym]
	return ok
}

// Eval evaluates an expression in env. The first fault aborts the whole
// evaluation.
func Eval(val Expr, env *Env) (Expr, error) {
	switch t := val.(type) {
	case Symbol:
		return env.Lookup(t)
	case Integer, Boolean, *Closure:
		return t, nil
	case List:
		if len(t) == 0 {
			return nil, newFault(NotAFunction, "()", "cannot call an empty list")
		}
		return evalForm(t[0], t[1:], env)
	default:
		return nil, newFault(TypeMismatch, "", "cannot evaluate %s", typeName(val))
	}
}

// evalForm evaluates a call form given its operator position and its
// unevaluated arguments.
func evalForm(front Expr, args []Expr, env *Env) (Expr, error) {
	switch t := front.(type) {
	case Symbol:
		if spec, isSpec := operators[t]; isSpec {
			return spec(args, env)
		}

		fn, err := env.Lookup(t)
		if err != nil {
			return nil, &Fault{Kind: UnknownOperator, Op: string(t), Msg: "not a keyword or a bound procedure", Err: err}
		}

		proc, isProc := fn.(*Closure)
		if !isProc {
			return nil, newFault(NotAFunction, string(t), "%s %s is not a function", typeName(fn), Print(fn))
		}
		return apply(proc, args, env)
	case List:
		fn, err := Eval(t, env)
		if err != nil {
			return nil, err
		}

		// a data list in operator position is never evaluated a second time
		if _, isList := fn.(List); isList {
			return nil, newFault(NotAFunction, Print(t), "evaluated to list %s", Print(fn))
		}
		return evalForm(fn, args, env)
	case *Closure:
		return apply(t, args, env)
	default:
		return nil, newFault(NotAFunction, Print(front), "%s is not a function", typeName(front))
	}
}

// eval all elements in a slice
func evalSlice(val []Expr, env *Env) ([]Expr, error) {
	arr := make([]Expr, len(val))
	for i, v := range val {
		res, err := Eval(v, env)
		if err != nil {
			return nil, err
		}
		arr[i] = res
	}
	return arr, nil
}

// apply calls proc. Arguments are evaluated in the caller's env, the body in
// the env proc was created in.
func apply(proc *Closure, args []Expr, env *Env) (Expr, error) {
	evaled, err := evalSlice(args, env)
	if err != nil {
		return nil, err
	}

	if len(evaled) != len(proc.Params) {
		return nil, arityFault(Print(proc), len(proc.Params), len(evaled))
	}

	bindings := make([]Binding, len(evaled))
	for i, arg := range evaled {
		bindings[i] = Binding{proc.Params[i], arg}
	}

	return Eval(proc.Body, proc.Env.Extend(bindings))
}

// Special Forms

func quote(args []Expr, env *Env) (Expr, error) {
	if len(args) != 1 {
		return nil, arityFault("quote", 1, len(args))
	}
	return args[0], nil
}

func atom(args []Expr, env *Env) (Expr, error) {
	if len(args) != 1 {
		return nil, arityFault("atom", 1, len(args))
	}
	val, err := Eval(args[0], env)
	if err != nil {
		return nil, err
	}
	return Boolean(IsAtom(val)), nil
}

// eq only compares atoms; lists are never eq, even with equal contents.
func eq(args []Expr, env *Env) (Expr, error) {
	if len(args) != 2 {
		return nil, arityFault("eq", 2, len(args))
	}
	evaled, err := evalSlice(args, env)
	if err != nil {
		return nil, err
	}
	a, b := evaled[0], evaled[1]
	return Boolean(IsAtom(a) && IsAtom(b) && Equals(a, b)), nil
}

func arithmetic(op string, fn func(x, y Integer) (Integer, error)) specialform {
	return func(args []Expr, env *Env) (Expr, error) {
		x, y, err := evalOperands(op, args, env)
		if err != nil {
			return nil, err
		}
		res, err := fn(x, y)
		if err != nil {
			if f, isFault := err.(*Fault); isFault {
				f.Op = op
			}
			return nil, err
		}
		return res, nil
	}
}

// evalOperands evaluates the two integer operands of an arithmetic or
// comparison form.
func evalOperands(op string, args []Expr, env *Env) (Integer, Integer, error) {
	if len(args) != 2 {
		return 0, 0, arityFault(op, 2, len(args))
	}
	evaled, err := evalSlice(args, env)
	if err != nil {
		return 0, 0, err
	}
	x, isInt := evaled[0].(Integer)
	if !isInt {
		return 0, 0, typeFault(op, "integer", evaled[0])
	}
	y, isInt := evaled[1].(Integer)
	if !isInt {
		return 0, 0, typeFault(op, "integer", evaled[1])
	}
	return x, y, nil
}

func add(x, y Integer) (Integer, error) {
	return x + y, nil
}

func sub(x, y Integer) (Integer, error) {
	return x - y, nil
}

func mul(x, y Integer) (Integer, error) {
	return x * y, nil
}

// div rounds towards negative infinity.
func div(x, y Integer) (Integer, error) {
	if y == 0 {
		return 0, &Fault{Kind: DivisionByZero}
	}
	q := x / y
	if x%y != 0 && (x < 0) != (y < 0) {
		q--
	}
	return q, nil
}

// mod takes the sign of the divisor, matching div.
func mod(x, y Integer) (Integer, error) {
	if y == 0 {
		return 0, &Fault{Kind: DivisionByZero}
	}
	m := x % y
	if m != 0 && (m < 0) != (y < 0) {
		m += y
	}
	return m, nil
}

func gt(args []Expr, env *Env) (Expr, error) {
	x, y, err := evalOperands(">", args, env)
	if err != nil {
		return nil, err
	}
	return Boolean(x > y), nil
}

// Only the boolean true selects the then branch; anything else is false.
func ifform(args []Expr, env *Env) (Expr, error) {
	if len(args) != 3 {
		return nil, arityFault("if", 3, len(args))
	}

	cond, err := Eval(args[0], env)
	if err != nil {
		return nil, err
	}

	if isTrue, isBoolean := cond.(Boolean); isBoolean && bool(isTrue) {
		return Eval(args[1], env)
	}
	return Eval(args[2], env)
}

func define(args []Expr, env *Env) (Expr, error) {
	if len(args) != 2 {
		return nil, arityFault("define", 2, len(args))
	}

	sym, isSym := args[0].(Symbol)
	if !isSym {
		return nil, newFault(NotASymbol, "define", "expected a symbol, got %s %s", typeName(args[0]), Print(args[0]))
	}

	evaled, err := Eval(args[1], env)
	if err != nil {
		return nil, err
	}

	if err := env.Define(sym, evaled); err != nil {
		return nil, err
	}
	return sym, nil
}

func lambda(args []Expr, env *Env) (Expr, error) {
	if len(args) != 2 {
		return nil, arityFault("lambda", 2, len(args))
	}

	params, isList := args[0].(List)
	if !isList {
		return nil, newFault(InvalidParams, "lambda", "params must be a list, got %s %s", typeName(args[0]), Print(args[0]))
	}

	symbols := make([]Symbol, len(params))
	for i, p := range params {
		sym, isSym := p.(Symbol)
		if !isSym {
			return nil, newFault(InvalidParams, "lambda", "param %d is %s %s, not a symbol", i, typeName(p), Print(p))
		}
		symbols[i] = sym
	}

	return &Closure{
		Env:    env,
		Params: symbols,
		Body:   args[1],
	}, nil
}

func cons(args []Expr, env *Env) (Expr, error) {
	if len(args) != 2 {
		return nil, arityFault("cons", 2, len(args))
	}

	front, err := Eval(args[0], env)
	if err != nil {
		return nil, err
	}

	rest, err := Eval(args[1], env)
	if err != nil {
		return nil, err
	}
	l, isList := rest.(List)
	if !isList {
		return nil, typeFault("cons", "list", rest)
	}

	ret := make(List, 0, len(l)+1)
	ret = append(ret, front)
	return append(ret, l...), nil
}

// evalList evaluates the single list argument of head, tail and empty.
func evalList(op string, args []Expr, env *Env) (List, error) {
	if len(args) != 1 {
		return nil, arityFault(op, 1, len(args))
	}
	val, err := Eval(args[0], env)
	if err != nil {
		return nil, err
	}
	l, isList := val.(List)
	if !isList {
		return nil, typeFault(op, "list", val)
	}
	return l, nil
}

func head(args []Expr, env *Env) (Expr, error) {
	l, err := evalList("head", args, env)
	if err != nil {
		return nil, err
	}
	if len(l) == 0 {
		return nil, newFault(EmptyList, "head", "head of an empty list")
	}
	return l[0], nil
}

func tail(args []Expr, env *Env) (Expr, error) {
	l, err := evalList("tail", args, env)
	if err != nil {
		return nil, err
	}
	if len(l) == 0 {
		return nil, newFault(EmptyList, "tail", "tail of an empty list")
	}
	return l[1:], nil
}

func empty(args []Expr, env *Env) (Expr, error) {
	l, err := evalList("empty", args, env)
	if err != nil {
		return nil, err
	}
	return Boolean(len(l) == 0), nil
}

// Keywords returns the operator names in sorted order.
func Keywords() []Symbol {
	syms := make([]Symbol, 0, len(operators))
	for sym := range operators {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i] < syms[j]
	})
	return syms
}
