package parser

// clauseOrder lists the optional SELECT clauses in the order the grammar
// requires them to appear. parseQuery rejects any clause that shows up
// after a clause later in this list, and any clause that appears twice.
var clauseOrder = []string{"from", "where", "group by", "order by", "limit", "into"}

func clauseIndex(text string) int {
	for i, c := range clauseOrder {
		if c == text {
			return i
		}
	}
	return -1
}
