package ops

import (
	"math"

	"github.com/grinchenko/sqlit/pkg/column"
	"github.com/grinchenko/sqlit/pkg/errs"
)

func registerArithmetic(r *Registry) {
	r.SetMapOp("+", numericOp("+", func(a, b float64) float64 { return a + b }, func(a, b int64) int64 { return a + b }))
	r.SetMapOp("-", numericOp("-", func(a, b float64) float64 { return a - b }, func(a, b int64) int64 { return a - b }))
	r.SetMapOp("*", numericOp("*", func(a, b float64) float64 { return a * b }, func(a, b int64) int64 { return a * b }))
	r.SetMapOp("/", numericOp("/", func(a, b float64) float64 { return a / b }, nil))
	r.SetMapOp("%", numericOp("%", math.Mod, func(a, b int64) int64 { return a % b }))
}

// numericOp builds a map-op over two numeric columns (Int or Float,
// promoted to Float when they differ), null-propagating and
// broadcasting per the registry's standard contract. floatFn is used
// whenever either side is Float, or intFn is nil (true division always
// yields Float even for two Int columns).
func numericOp(name string, floatFn func(a, b float64) float64, intFn func(a, b int64) int64) MapOp {
	return func(args []column.Column) (column.Column, error) {
		if len(args) != 2 {
			return column.Column{}, argCountError(name, 2, len(args))
		}
		left, right := args[0], args[1]

		n, err := broadcastLen(left.Len(), right.Len())
		if err != nil {
			return column.Column{}, err
		}

		if intFn != nil && left.Kind == column.Int && right.Kind == column.Int {
			values := make([]int64, n)
			valid := make([]bool, n)
			for i := 0; i < n; i++ {
				li, ri := broadcastIndex(i, left.Len()), broadcastIndex(i, right.Len())
				if left.IsNull(li) || right.IsNull(ri) {
					continue
				}
				valid[i] = true
				values[i] = intFn(left.Ints[li], right.Ints[ri])
			}
			return column.NewInts(values, valid), nil
		}

		leftFloats, ok1 := asFloats(left)
		rightFloats, ok2 := asFloats(right)
		if !ok1 || !ok2 {
			return column.Column{}, errs.Typef("%s requires numeric (Int/Float) columns", name)
		}

		values := make([]float64, n)
		valid := make([]bool, n)
		for i := 0; i < n; i++ {
			li, ri := broadcastIndex(i, left.Len()), broadcastIndex(i, right.Len())
			if left.IsNull(li) || right.IsNull(ri) {
				continue
			}
			valid[i] = true
			values[i] = floatFn(leftFloats[li], rightFloats[ri])
		}
		return column.NewFloats(values, valid), nil
	}
}

// asFloats returns c's values coerced to float64, promoting an Int
// column transparently; ok is false for any other kind.
func asFloats(c column.Column) ([]float64, bool) {
	switch c.Kind {
	case column.Float:
		return c.Floats, true
	case column.Int:
		out := make([]float64, len(c.Ints))
		for i, v := range c.Ints {
			out[i] = float64(v)
		}
		return out, true
	default:
		return nil, false
	}
}
