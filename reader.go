package diylisp

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// macros return a nil Expr when they consume input without producing a value
var macros map[rune]func(r *bufio.Reader) (Expr, error)

func init() {
	macros = map[rune]func(r *bufio.Reader) (Expr, error){
		';':  commentReader,
		'(':  listReader,
		')':  unmatchedDelimiterReader,
		'\'': quoteReader,
	}
}

func isWhitespace(ch rune) bool {
	return unicode.IsSpace(ch)
}

// Read reads the next expression from r. It returns io.EOF when r holds
// nothing but whitespace and comments.
func Read(r *bufio.Reader) (Expr, error) {
	for {
		ch, _, err := r.ReadRune()

		for isWhitespace(ch) {
			ch, _, err = r.ReadRune()
		}

		if err != nil {
			return nil, err
		}

		if unicode.IsDigit(ch) {
			return readNumber(r, ch)
		}

		macroFn, isMacro := macros[ch]
		if isMacro {
			ret, err := macroFn(r)
			if err != nil {
				return nil, err
			}
			if ret == nil {
				continue
			}
			return ret, nil
		}

		if ch == '+' || ch == '-' {
			ch2, _, _ := r.ReadRune()
			r.UnreadRune()
			if unicode.IsDigit(ch2) {
				return readNumber(r, ch)
			}
		}

		return interpretToken(readToken(r, ch))
	}
}

// Parse reads exactly one expression from src.
func Parse(src string) (Expr, error) {
	r := bufio.NewReader(strings.NewReader(src))
	val, err := Read(r)
	if err == io.EOF {
		return nil, &SyntaxError{Msg: "empty input", Incomplete: true}
	}
	if err != nil {
		return nil, err
	}

	next, err := Read(r)
	if err == io.EOF {
		return val, nil
	}
	if err != nil {
		return nil, err
	}
	return nil, &SyntaxError{Msg: "expected end of input, found " + Print(next)}
}

// ParseAll reads every expression in src.
func ParseAll(src string) ([]Expr, error) {
	r := bufio.NewReader(strings.NewReader(src))
	var exprs []Expr
	for {
		val, err := Read(r)
		if err == io.EOF {
			return exprs, nil
		}
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, val)
	}
}

// IsIncomplete reports whether err was caused by input that ended in the
// middle of an expression.
func IsIncomplete(err error) bool {
	var serr *SyntaxError
	return errors.As(err, &serr) && serr.Incomplete
}

func readToken(r *bufio.Reader, initch rune) string {
	var sb strings.Builder
	sb.WriteRune(initch)

	for {
		ch, _, err := r.ReadRune()
		if err != nil || isWhitespace(ch) || isMacro(ch) {
			r.UnreadRune()
			return sb.String()
		}

		sb.WriteRune(ch)
	}
}

func readNumber(r *bufio.Reader, initch rune) (Expr, error) {
	s := readToken(r, initch)
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, &SyntaxError{Msg: "invalid number: " + s}
	}
	return Integer(i), nil
}

func interpretToken(s string) (Expr, error) {
	switch s {
	case "#t":
		return Boolean(true), nil
	case "#f":
		return Boolean(false), nil
	}
	return Symbol(s), nil
}

func isMacro(ch rune) bool {
	_, ismacro := macros[ch]
	return ismacro
}

func commentReader(r *bufio.Reader) (Expr, error) {
	ch, _, err := r.ReadRune()
	for err == nil && ch != '\n' && ch != '\r' {
		ch, _, err = r.ReadRune()
	}
	if err != nil && err != io.EOF {
		return nil, err
	}
	return nil, nil
}

// 'x reads as (quote x)
func quoteReader(r *bufio.Reader) (Expr, error) {
	val, err := Read(r)
	if err == io.EOF {
		return nil, &SyntaxError{Msg: "unexpected end of input after quote", Incomplete: true}
	}
	if err != nil {
		return nil, err
	}
	return List{Symbol("quote"), val}, nil
}

func listReader(r *bufio.Reader) (Expr, error) {
	l := List{}
	err := readDelimitedList(r, ')', func(item Expr) {
		l = append(l, item)
	})
	if err == io.EOF {
		return nil, &SyntaxError{Msg: "unbalanced parens", Incomplete: true}
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func unmatchedDelimiterReader(r *bufio.Reader) (Expr, error) {
	return nil, &SyntaxError{Msg: "unmatched delimiter )"}
}

func readDelimitedList(r *bufio.Reader, delim rune, add func(Expr)) error {
	for {
		ch, _, err := r.ReadRune()

		for isWhitespace(ch) {
			ch, _, err = r.ReadRune()
		}

		if err != nil {
			return err
		}

		if ch == delim {
			break
		}

		macroFn, isMacro := macros[ch]
		if isMacro {
			mret, err := macroFn(r)
			if err != nil {
				return err
			}
			if mret != nil {
				add(mret)
			}
		} else {
			r.UnreadRune()
			o, err := Read(r)
			if err != nil {
				return err
			}
			add(o)
		}
	}

	return nil
}
