package parser

import (
	"testing"

	"github.com/grinchenko/sqlit/pkg/ast"
)

func TestParseBasicSelect(t *testing.T) {
	tree, err := Parse("select a, b, c from mytable")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Type != ast.Query {
		t.Fatalf("expected Query root, got %v", tree.Type)
	}
	if len(tree.Children) == 0 {
		t.Fatalf("expected at least one child")
	}
}

func TestParseTwoFunctionSelect(t *testing.T) {
	tree, err := Parse("select mean(teampoints), mean(assists) from nba_games_stats")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	columns := tree.Children[0]
	if columns.Type != ast.Columns {
		t.Fatalf("expected Columns, got %v", columns.Type)
	}
	if len(columns.Children) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(columns.Children))
	}
}

func TestParseAsClause(t *testing.T) {
	tree, err := Parse("select mean(assists) as avgassists from nba_games_stats")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	columns := tree.Children[0]
	expr := columns.Children[0]
	if expr.Type != ast.Expression {
		t.Fatalf("expected Expression, got %v", expr.Type)
	}
	if len(expr.Children) != 2 {
		t.Fatalf("expected equality + alias identifier, got %d children", len(expr.Children))
	}
}

func TestParseWhereGroupByOrderByLimitInto(t *testing.T) {
	query := "select team, mean(points) as avg_points from games where points > 10 group by team order by avg_points desc limit 5 into top_teams"
	tree, err := Parse(query)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var types []ast.NodeType
	for _, c := range tree.Children {
		types = append(types, c.Type)
	}
	want := []ast.NodeType{ast.Columns, ast.From, ast.Where, ast.GroupBy, ast.OrderBy, ast.Limit, ast.Into}
	if len(types) != len(want) {
		t.Fatalf("expected %d top-level clauses, got %d (%v)", len(want), len(types), types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("clause %d: expected %v, got %v", i, want[i], types[i])
		}
	}
}

func TestParseJoin(t *testing.T) {
	tree, err := Parse("select a.x, b.y from a left join b on a.id = b.id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	from := tree.Children[1]
	if from.Type != ast.From {
		t.Fatalf("expected From, got %v", from.Type)
	}
	if len(from.Tokens) != 1 || !from.Tokens[0].Is("left join") {
		t.Fatalf("expected a left join token, got %v", from.Tokens)
	}
	if len(from.Children) != 3 {
		t.Fatalf("expected left table, right table, and on-condition, got %d", len(from.Children))
	}
}

func TestParseRejectsOutOfOrderClauses(t *testing.T) {
	_, err := Parse("select a from t limit 1 where a > 1")
	if err == nil {
		t.Fatalf("expected an error for out-of-order clauses")
	}
}

func TestParseRejectsMissingSelect(t *testing.T) {
	_, err := Parse("a, b from t")
	if err == nil {
		t.Fatalf("expected an error when select is missing")
	}
}

// A "*" after a comma is recognized as a StarOperator column alongside
// ordinary expressions; this checks it in non-leading position.
func TestParseStarOperator(t *testing.T) {
	tree, err := Parse("select total, * from scores")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	columns := tree.Children[0]
	if columns.Children[1].Type != ast.StarOperator {
		t.Fatalf("expected StarOperator as second column, got %v", columns.Children[1].Type)
	}
}
