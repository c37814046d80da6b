package eval_test

import (
	"testing"

	"github.com/grinchenko/sqlit/pkg/column"
	"github.com/grinchenko/sqlit/pkg/eval"
	"github.com/grinchenko/sqlit/pkg/parser"
	"github.com/grinchenko/sqlit/pkg/table"
)

func mustEval(t *testing.T, e *eval.Evaluator, query string) *table.Table {
	t.Helper()
	node, err := parser.Parse(query)
	if err != nil {
		t.Fatalf("parsing %q: %v", query, err)
	}
	out, err := e.Eval(node)
	if err != nil {
		t.Fatalf("evaluating %q: %v", query, err)
	}
	return out
}

// newNullTestTable builds the fixture described by the spec's
// end-to-end scenarios: columns first,second,third and rows
// (0,"hello",null), (0,"bye",true), (1,"null",false), (null,"null",false).
// "null" in the second column is a real string value, distinct from the
// first column's actual null entry in the last row.
func newNullTestTable() *table.Table {
	tbl := table.New("null_test")
	tbl.Push(table.NamedColumn{
		Name:   "first",
		Column: column.NewInts([]int64{0, 0, 1, 0}, []bool{true, true, true, false}),
	}, "null_test")
	tbl.Push(table.NamedColumn{
		Name:   "second",
		Column: column.NewStrings([]string{"hello", "bye", "null", "null"}, []bool{true, true, true, true}),
	}, "null_test")
	tbl.Push(table.NamedColumn{
		Name:   "third",
		Column: column.NewBooleans([]bool{false, true, false, false}, []bool{false, true, true, true}),
	}, "null_test")
	return tbl
}

func newEvaluator(tables ...*table.Table) *eval.Evaluator {
	store := table.NewStore()
	for _, t := range tables {
		store.Set(t)
	}
	return eval.New(store)
}

func TestScenarioEqualsAndWhere(t *testing.T) {
	e := newEvaluator(newNullTestTable())
	out := mustEval(t, e, `select second = 'hello' from null_test where second = 'hello'`)

	if out.Width() != 1 || out.Len() != 1 {
		t.Fatalf("expected a 1x1 table, got width %d len %d", out.Width(), out.Len())
	}
	col, err := out.Column("", "=")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if col.Kind != column.Boolean || !col.Bools[0] {
		t.Errorf("expected a single true, got kind %v bools %v", col.Kind, col.Bools)
	}
}

func TestScenarioLiteralEquality(t *testing.T) {
	e := newEvaluator()
	out := mustEval(t, e, `select 'hello' = 'hello'`)

	if out.Width() != 1 || out.Len() != 1 {
		t.Fatalf("expected a 1x1 table, got width %d len %d", out.Width(), out.Len())
	}
	col, err := out.Column("", "=")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !col.Bools[0] {
		t.Errorf("expected 'hello' = 'hello' to be true")
	}
}

func TestScenarioSubqueryProjectionReorder(t *testing.T) {
	e := newEvaluator()
	out := mustEval(t, e, `select second, first from (select 1 as first, 2 as second) my_table`)

	if out.Width() != 2 || out.Len() != 1 {
		t.Fatalf("expected a 1x2 table, got width %d len %d", out.Width(), out.Len())
	}
	second, err := out.Column("", "second")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first, err := out.Column("", "first")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Ints[0] != 2 || first.Ints[0] != 1 {
		t.Errorf("expected (second, first) == (2, 1), got (%d, %d)", second.Ints[0], first.Ints[0])
	}
}

func TestScenarioSubqueryWhere(t *testing.T) {
	e := newEvaluator()
	out := mustEval(t, e, `select 1 from (select 'Hello' as hello) my_table where hello = 'Hello'`)

	if out.Width() != 1 || out.Len() != 1 {
		t.Fatalf("expected a 1x1 table, got width %d len %d", out.Width(), out.Len())
	}
	col, err := out.Column("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if col.Kind != column.Int || col.Ints[0] != 1 {
		t.Errorf("expected a single Int 1, got kind %v ints %v", col.Kind, col.Ints)
	}
}

func TestScenarioLeftJoinOnNullableKey(t *testing.T) {
	e := newEvaluator(newNullTestTable())
	out := mustEval(t, e, `select * from (select * from null_test) a left join (select * from null_test) b on a.first = b.first`)

	if out.Width() != 6 {
		t.Fatalf("expected 6 columns after a self left join, got %d", out.Width())
	}
	// first = [0, 0, 1, null]; rows 0 and 1 each match both first=0 rows
	// (2 pairings each), row 2 matches its single first=1 partner, and
	// the null-keyed row matches nothing and is padded once.
	if out.Len() != 6 {
		t.Fatalf("expected 6 result rows, got %d", out.Len())
	}
}

func TestWhereOnEmptyTableYieldsEmpty(t *testing.T) {
	empty := table.New("nothing")
	empty.Push(table.NamedColumn{Name: "x", Column: column.NewInts(nil, nil)}, "nothing")
	e := newEvaluator(empty)

	out := mustEval(t, e, `select * from nothing where x > 0`)
	if out.Len() != 0 || out.Width() != 1 {
		t.Fatalf("expected an empty 1-column table, got width %d len %d", out.Width(), out.Len())
	}
}

func TestLimitZeroYieldsZeroRowsPreservingShape(t *testing.T) {
	e := newEvaluator(newNullTestTable())
	out := mustEval(t, e, `select * from null_test limit 0`)
	if out.Len() != 0 || out.Width() != 3 {
		t.Fatalf("expected 0 rows and 3 columns, got width %d len %d", out.Width(), out.Len())
	}
}

func TestLimitBeyondRowCountYieldsWholeTable(t *testing.T) {
	e := newEvaluator(newNullTestTable())
	out := mustEval(t, e, `select * from null_test limit 100`)
	if out.Len() != 4 {
		t.Fatalf("expected all 4 rows, got %d", out.Len())
	}
}

func TestGroupByOnEmptyInputYieldsEmpty(t *testing.T) {
	empty := table.New("nothing")
	empty.Push(table.NamedColumn{Name: "k", Column: column.NewInts(nil, nil)}, "nothing")
	e := newEvaluator(empty)

	out := mustEval(t, e, `select k, count(k) from nothing group by k`)
	if out.Len() != 0 {
		t.Fatalf("expected an empty result, got %d rows", out.Len())
	}
}

func TestOrderByAscThenDescAreReversePermutations(t *testing.T) {
	fixture := table.New("t")
	fixture.Push(table.NamedColumn{Name: "v", Column: column.NewInts([]int64{3, 1, 2}, []bool{true, true, true})}, "t")
	e := newEvaluator(fixture)

	asc := mustEval(t, e, `select v from t order by v asc`)
	desc := mustEval(t, e, `select v from t order by v desc`)

	ascCol, _ := asc.Column("", "v")
	descCol, _ := desc.Column("", "v")

	n := ascCol.Len()
	for i := 0; i < n; i++ {
		if ascCol.Ints[i] != descCol.Ints[n-1-i] {
			t.Fatalf("expected desc to be the reverse of asc: asc=%v desc=%v", ascCol.Ints, descCol.Ints)
		}
	}
}

func TestOrderByDanceabilitySortsAscending(t *testing.T) {
	data := table.New("data")
	data.Push(table.NamedColumn{
		Name:   "name",
		Column: column.NewStrings([]string{"a", "b", "c"}, []bool{true, true, true}),
	}, "data")
	data.Push(table.NamedColumn{
		Name:   "danceability",
		Column: column.NewFloats([]float64{0.8, 0.2, 0.5}, []bool{true, true, true}),
	}, "data")
	e := newEvaluator(data)

	out := mustEval(t, e, `select name, danceability from data order by danceability`)
	if out.Len() != 3 {
		t.Fatalf("expected all 3 rows, got %d", out.Len())
	}
	dance, _ := out.Column("", "danceability")
	for i := 1; i < dance.Len(); i++ {
		if dance.Floats[i-1] > dance.Floats[i] {
			t.Fatalf("expected ascending danceability, got %v", dance.Floats)
		}
	}
}

func TestGroupByRowCountMatchesDistinctKeys(t *testing.T) {
	g := table.New("g")
	g.Push(table.NamedColumn{
		Name:   "k",
		Column: column.NewInts([]int64{1, 1, 2, 3, 3, 3}, []bool{true, true, true, true, true, true}),
	}, "g")
	g.Push(table.NamedColumn{
		Name:   "id",
		Column: column.NewInts([]int64{10, 11, 12, 13, 14, 15}, []bool{true, true, true, true, true, true}),
	}, "g")
	e := newEvaluator(g)

	out := mustEval(t, e, `select k, count(id) from g group by k`)
	if out.Len() != 3 {
		t.Fatalf("expected 3 distinct groups, got %d rows", out.Len())
	}

	k, err := out.Column("", "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cnt, err := out.Column("", "count")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantKeys := []int64{1, 2, 3}
	wantCounts := []int64{2, 1, 3}
	for i := range wantKeys {
		if k.Ints[i] != wantKeys[i] || cnt.Ints[i] != wantCounts[i] {
			t.Errorf("group %d: expected key %d count %d, got key %d count %d",
				i, wantKeys[i], wantCounts[i], k.Ints[i], cnt.Ints[i])
		}
	}
}

func TestGroupByBareColumnReferenceIsRuntimeError(t *testing.T) {
	g := table.New("g")
	g.Push(table.NamedColumn{
		Name:   "k",
		Column: column.NewInts([]int64{1, 1, 2}, []bool{true, true, true}),
	}, "g")
	g.Push(table.NamedColumn{
		Name:   "id",
		Column: column.NewInts([]int64{10, 11, 12}, []bool{true, true, true}),
	}, "g")
	e := newEvaluator(g)

	node, err := parser.Parse(`select k, id from g group by k`)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if _, err := e.Eval(node); err == nil {
		t.Fatalf("expected a runtime error for a bare non-key column in a grouped projection")
	}
}

func TestInnerJoinExcludesUnmatchedRows(t *testing.T) {
	left := table.New("l")
	left.Push(table.NamedColumn{Name: "id", Column: column.NewInts([]int64{1, 2}, []bool{true, true})}, "l")
	right := table.New("r")
	right.Push(table.NamedColumn{Name: "id", Column: column.NewInts([]int64{2, 3}, []bool{true, true})}, "r")
	e := newEvaluator(left, right)

	out := mustEval(t, e, `select * from l inner join r on l.id = r.id`)
	if out.Len() != 1 {
		t.Fatalf("expected exactly 1 matching row, got %d", out.Len())
	}
}

func TestRightJoinPadsUnmatchedLeftRows(t *testing.T) {
	left := table.New("l")
	left.Push(table.NamedColumn{Name: "id", Column: column.NewInts([]int64{1}, []bool{true})}, "l")
	right := table.New("r")
	right.Push(table.NamedColumn{Name: "id", Column: column.NewInts([]int64{1, 2}, []bool{true, true})}, "r")
	e := newEvaluator(left, right)

	out := mustEval(t, e, `select l.id as lid, r.id as rid from l right join r on l.id = r.id`)
	if out.Len() != 2 {
		t.Fatalf("expected 2 rows (1 matched, 1 right-only padded), got %d", out.Len())
	}

	lid, err := out.Column("", "lid")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rid, err := out.Column("", "rid")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rid.Ints[0] != 1 || rid.Ints[1] != 2 {
		t.Fatalf("expected every right row preserved in order, got %v", rid.Ints)
	}
	if lid.IsNull(0) || lid.Ints[0] != 1 {
		t.Fatalf("expected the matched left row to carry id 1, got null=%v val=%d", lid.IsNull(0), lid.Ints[0])
	}
	if !lid.IsNull(1) {
		t.Fatalf("expected the unmatched left row to be null")
	}
}

func TestStarExpandsToAllSourceColumns(t *testing.T) {
	e := newEvaluator(newNullTestTable())
	out := mustEval(t, e, `select * from null_test`)
	if out.Width() != 3 || out.Len() != 4 {
		t.Fatalf("expected the same shape as null_test (3x4), got width %d len %d", out.Width(), out.Len())
	}
}
