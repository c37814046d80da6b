package ops

import (
	"github.com/grinchenko/sqlit/pkg/column"
	"github.com/grinchenko/sqlit/pkg/errs"
)

func registerComparison(r *Registry) {
	r.SetMapOp("=", equalityOp("=", false))
	r.SetMapOp("!=", equalityOp("!=", true))
	r.SetMapOp(">", orderingOp(">", func(cmp int) bool { return cmp > 0 }))
	r.SetMapOp(">=", orderingOp(">=", func(cmp int) bool { return cmp >= 0 }))
	r.SetMapOp("<", orderingOp("<", func(cmp int) bool { return cmp < 0 }))
	r.SetMapOp("<=", orderingOp("<=", func(cmp int) bool { return cmp <= 0 }))
}

// rowValue pulls a single row's value out of c as an untyped comparable
// so equalityOp/orderingOp can stay kind-agnostic.
func rowValue(c column.Column, i int) interface{} {
	switch c.Kind {
	case column.Boolean:
		return c.Bools[i]
	case column.Int:
		return c.Ints[i]
	case column.Float:
		return c.Floats[i]
	case column.String:
		return c.Strings[i]
	case column.DateTime:
		return c.Dates[i]
	}
	return nil
}

// numericPair returns left and right's row values as float64 whenever
// both columns are numeric (Int or Float, in any combination); ok is
// false otherwise. Used by both equality and ordering.
func numericPair(left, right column.Column, li, ri int) (float64, float64, bool) {
	if left.Kind != column.Int && left.Kind != column.Float {
		return 0, 0, false
	}
	if right.Kind != column.Int && right.Kind != column.Float {
		return 0, 0, false
	}
	toF := func(c column.Column, i int) float64 {
		if c.Kind == column.Int {
			return float64(c.Ints[i])
		}
		return c.Floats[i]
	}
	return toF(left, li), toF(right, ri), true
}

func equalityOp(name string, negate bool) MapOp {
	return func(args []column.Column) (column.Column, error) {
		if len(args) != 2 {
			return column.Column{}, argCountError(name, 2, len(args))
		}
		left, right := args[0], args[1]

		n, err := broadcastLen(left.Len(), right.Len())
		if err != nil {
			return column.Column{}, err
		}
		if !isNullScalar(left) && !isNullScalar(right) && !comparableKinds(left.Kind, right.Kind) {
			return column.Column{}, errs.Typef("%s: cannot compare %s with %s", name, left.Kind, right.Kind)
		}

		values := make([]bool, n)
		valid := make([]bool, n)
		for i := 0; i < n; i++ {
			li, ri := broadcastIndex(i, left.Len()), broadcastIndex(i, right.Len())
			if left.IsNull(li) || right.IsNull(ri) {
				continue
			}
			valid[i] = true

			var eq bool
			if lf, rf, ok := numericPair(left, right, li, ri); ok {
				eq = lf == rf
			} else {
				eq = rowValue(left, li) == rowValue(right, ri)
			}
			if negate {
				eq = !eq
			}
			values[i] = eq
		}

		return column.NewBooleans(values, valid), nil
	}
}

func orderingOp(name string, test func(cmp int) bool) MapOp {
	return func(args []column.Column) (column.Column, error) {
		if len(args) != 2 {
			return column.Column{}, argCountError(name, 2, len(args))
		}
		left, right := args[0], args[1]

		n, err := broadcastLen(left.Len(), right.Len())
		if err != nil {
			return column.Column{}, err
		}
		if !isNullScalar(left) && !isNullScalar(right) && !orderableKinds(left.Kind, right.Kind) {
			return column.Column{}, errs.Typef("%s: cannot order %s against %s", name, left.Kind, right.Kind)
		}

		values := make([]bool, n)
		valid := make([]bool, n)
		for i := 0; i < n; i++ {
			li, ri := broadcastIndex(i, left.Len()), broadcastIndex(i, right.Len())
			if left.IsNull(li) || right.IsNull(ri) {
				continue
			}
			valid[i] = true

			cmp, err := compareValues(left, right, li, ri)
			if err != nil {
				return column.Column{}, err
			}
			values[i] = test(cmp)
		}

		return column.NewBooleans(values, valid), nil
	}
}

// isNullScalar reports whether c is a length-1 column holding a single
// null entry — the shape a bare `null` literal takes once evaluated.
// Comparing against one is always a no-op (the result is null
// regardless of kind), so it bypasses the kind check entirely.
func isNullScalar(c column.Column) bool {
	return c.Len() == 1 && c.IsNull(0)
}

func comparableKinds(a, b column.Kind) bool {
	if a == b {
		return true
	}
	return (a == column.Int || a == column.Float) && (b == column.Int || b == column.Float)
}

func orderableKinds(a, b column.Kind) bool {
	if a == column.Boolean || b == column.Boolean {
		return false
	}
	return comparableKinds(a, b)
}

// compareValues returns -1/0/1 comparing left row li to right row ri;
// the two kinds must already have passed orderableKinds.
func compareValues(left, right column.Column, li, ri int) (int, error) {
	if lf, rf, ok := numericPair(left, right, li, ri); ok {
		switch {
		case lf < rf:
			return -1, nil
		case lf > rf:
			return 1, nil
		default:
			return 0, nil
		}
	}

	switch left.Kind {
	case column.String:
		a, b := left.Strings[li], right.Strings[ri]
		switch {
		case a < b:
			return -1, nil
		case a > b:
			return 1, nil
		default:
			return 0, nil
		}
	case column.DateTime:
		a, b := left.Dates[li], right.Dates[ri]
		switch {
		case a < b:
			return -1, nil
		case a > b:
			return 1, nil
		default:
			return 0, nil
		}
	}

	return 0, errs.Typef("unsupported column kind for ordering: %s", left.Kind)
}
