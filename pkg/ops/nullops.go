package ops

import "github.com/grinchenko/sqlit/pkg/column"

// registerNullOps wires is_null/not_null — the only map-ops that are
// exempt from null propagation: their own result is always non-null,
// since they exist precisely to report nullness.
func registerNullOps(r *Registry) {
	r.SetMapOp("is_null", nullTestOp("is_null", true))
	r.SetMapOp("not_null", nullTestOp("not_null", false))
}

func nullTestOp(name string, wantNull bool) MapOp {
	return func(args []column.Column) (column.Column, error) {
		if len(args) != 1 {
			return column.Column{}, argCountError(name, 1, len(args))
		}
		arg := args[0]

		n := arg.Len()
		values := make([]bool, n)
		valid := make([]bool, n)
		for i := 0; i < n; i++ {
			valid[i] = true
			values[i] = arg.IsNull(i) == wantNull
		}

		return column.NewBooleans(values, valid), nil
	}
}
