package eval

import (
	"strings"

	"github.com/grinchenko/sqlit/pkg/ast"
	"github.com/grinchenko/sqlit/pkg/render"
	"github.com/grinchenko/sqlit/pkg/table"
)

// evalInto strips the target filename's quotes (it may be a bare
// identifier or a quoted string) and writes the result table to it.
// The caller (Eval) replaces the query's own result with an empty
// table afterward — INTO never prints.
func (e *Evaluator) evalInto(node *ast.Node, src *table.Table) error {
	name := strings.Trim(node.Tokens[0].Text, "'")
	return render.WriteToFile(src, name)
}
