package diylisp

import (
	"fmt"
	"strconv"
	"strings"
)

func Print(val Expr) string {
	switch t := val.(type) {
	case nil:
		return "nil"
	case Symbol:
		return string(t)
	case Integer:
		return strconv.FormatInt(int64(t), 10)
	case Boolean:
		if t {
			return "#t"
		}
		return "#f"
	case List:
		arr := make([]string, len(t))
		for i, v := range t {
			arr[i] = Print(v)
		}
		return fmt.Sprintf("(%s)", strings.Join(arr, " "))
	case *Closure:
		return fmt.Sprintf("<closure/%d>", len(t.Params))
	default:
		return fmt.Sprintf("%v", val)
	}
}
