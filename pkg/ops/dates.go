package ops

import (
	"time"

	"github.com/grinchenko/sqlit/pkg/column"
	"github.com/grinchenko/sqlit/pkg/errs"
)

func registerDates(r *Registry) {
	r.SetMapOp("year", func(args []column.Column) (column.Column, error) {
		if len(args) != 1 {
			return column.Column{}, argCountError("year", 1, len(args))
		}
		arg := args[0]
		if arg.Kind != column.DateTime {
			return column.Column{}, errs.Typef("year can only be called on a datetime column")
		}

		n := arg.Len()
		values := make([]int64, n)
		valid := make([]bool, n)
		for i := 0; i < n; i++ {
			if arg.IsNull(i) {
				continue
			}
			valid[i] = true
			values[i] = int64(time.Unix(arg.Dates[i], 0).UTC().Year())
		}

		return column.NewInts(values, valid), nil
	})
}
