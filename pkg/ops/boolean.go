package ops

import (
	"github.com/grinchenko/sqlit/pkg/column"
	"github.com/grinchenko/sqlit/pkg/errs"
)

func registerBoolean(r *Registry) {
	r.SetMapOp("and", booleanBinaryOp("and", func(a, b bool) bool { return a && b }))
	r.SetMapOp("or", booleanBinaryOp("or", func(a, b bool) bool { return a || b }))
	r.SetMapOp("xor", booleanBinaryOp("xor", func(a, b bool) bool { return a != b }))
	r.SetMapOp("!", booleanUnaryOp("!", func(a bool) bool { return !a }))
}

func booleanBinaryOp(name string, fn func(a, b bool) bool) MapOp {
	return func(args []column.Column) (column.Column, error) {
		if len(args) != 2 {
			return column.Column{}, argCountError(name, 2, len(args))
		}
		left, right := args[0], args[1]
		if left.Kind != column.Boolean || right.Kind != column.Boolean {
			return column.Column{}, errs.Typef("%s requires two boolean columns", name)
		}

		n, err := broadcastLen(left.Len(), right.Len())
		if err != nil {
			return column.Column{}, err
		}

		values := make([]bool, n)
		valid := make([]bool, n)
		for i := 0; i < n; i++ {
			li, ri := broadcastIndex(i, left.Len()), broadcastIndex(i, right.Len())
			if left.IsNull(li) || right.IsNull(ri) {
				continue
			}
			valid[i] = true
			values[i] = fn(left.Bools[li], right.Bools[ri])
		}

		return column.NewBooleans(values, valid), nil
	}
}

func booleanUnaryOp(name string, fn func(a bool) bool) MapOp {
	return func(args []column.Column) (column.Column, error) {
		if len(args) != 1 {
			return column.Column{}, argCountError(name, 1, len(args))
		}
		arg := args[0]
		if arg.Kind != column.Boolean {
			return column.Column{}, errs.Typef("%s requires a boolean column", name)
		}

		n := arg.Len()
		values := make([]bool, n)
		valid := make([]bool, n)
		for i := 0; i < n; i++ {
			if arg.IsNull(i) {
				continue
			}
			valid[i] = true
			values[i] = fn(arg.Bools[i])
		}

		return column.NewBooleans(values, valid), nil
	}
}
