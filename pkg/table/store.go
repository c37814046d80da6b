package table

import "github.com/grinchenko/sqlit/pkg/errs"

// Store is the query environment: every loaded or materialized table,
// addressed by alias. The CLI fills it at startup and nothing modifies it
// afterward; an INTO write does not add a table to it.
type Store struct {
	tables map[string]*Table
}

func NewStore() *Store {
	return &Store{tables: make(map[string]*Table)}
}

func (s *Store) Get(alias string) (*Table, error) {
	t, ok := s.tables[alias]
	if !ok {
		return nil, errs.Lookupf("alias %q not found in store", alias)
	}
	return t, nil
}

func (s *Store) Set(t *Table) {
	s.tables[t.Alias()] = t
}

// Aliases returns every loaded table's alias in no particular order —
// the REPL's `\d` command sorts them for display.
func (s *Store) Aliases() []string {
	out := make([]string, 0, len(s.tables))
	for alias := range s.tables {
		out = append(out, alias)
	}
	return out
}
