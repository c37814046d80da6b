// Package repl implements the interactive prompt: line editing, history,
// and tab completion over the live Store's table and column names via
// github.com/petermattis/prompt, plus the `\d` introspection
// meta-commands original_source's eval/commands.rs exposed as
// PrintableTables/PrintableColumns/PrintableTableNames.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/petermattis/prompt"
	"go.uber.org/zap"

	"github.com/grinchenko/sqlit/internal/telemetry"
	"github.com/grinchenko/sqlit/pkg/eval"
	"github.com/grinchenko/sqlit/pkg/errs"
	"github.com/grinchenko/sqlit/pkg/parser"
	"github.com/grinchenko/sqlit/pkg/render"
	"github.com/grinchenko/sqlit/pkg/table"
)

// REPL owns the query environment and drives one terminal session
// against it.
type REPL struct {
	store       *table.Store
	prompt      string
	log         *zap.Logger
	out         io.Writer
	historyFile string
}

// New builds a REPL. historyFile, when non-empty, is an append-only log
// of every query line executed, opened and closed again for each query.
func New(store *table.Store, promptText string, log *zap.Logger, out io.Writer, historyFile string) *REPL {
	return &REPL{store: store, prompt: promptText, log: log, out: out, historyFile: historyFile}
}

// appendHistory appends one executed query line to the history file, if
// configured. A failure here is logged but never aborts the query.
func (r *REPL) appendHistory(line string) {
	if r.historyFile == "" {
		return
	}
	f, err := os.OpenFile(r.historyFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		if r.log != nil {
			r.log.Warn("history write failed", zap.String("path", r.historyFile), zap.Error(err))
		}
		return
	}
	defer f.Close()
	fmt.Fprintln(f, line)
}

// Run reads queries until EOF, printing each result or error. It
// returns nil on clean EOF (the caller exits 0).
func (r *REPL) Run() error {
	p := prompt.New(prompt.WithCompleter(r.completer))

	for {
		line, err := p.ReadLine(r.prompt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "goodbye")
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "\\d") {
			r.runMeta(line)
			continue
		}

		r.appendHistory(line)
		r.runQuery(line)
	}
}

func (r *REPL) runQuery(query string) {
	p := parser.New(query)
	node, err := p.Parse()
	if err != nil {
		r.reportError(query, err, p)
		return
	}

	ev := eval.New(r.store)
	result, err := ev.Eval(node)
	if err != nil {
		r.reportError(query, err, p)
		return
	}

	if r.log != nil {
		r.log.Info("query evaluated", telemetry.QueryFields(query, nil, p.TokenCount(), p.Duration())...)
	}

	if result.Width() > 0 {
		fmt.Fprintln(r.out, render.Text(result))
	}
}

func (r *REPL) reportError(query string, err error, p *parser.Parser) {
	if r.log != nil {
		r.log.Warn("query failed", telemetry.QueryFields(query, err, p.TokenCount(), p.Duration())...)
	}
	fmt.Fprintf(r.out, "%s Error: %s\n", errs.KindOf(err), stripKindPrefix(err))
}

// stripKindPrefix removes a redundant "<Kind> Error: " prefix when err
// is already one of this package's tagged errors, so the message isn't
// printed twice.
func stripKindPrefix(err error) string {
	var e *errs.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// runMeta handles `\d` (list table aliases) and `\d <alias>` (list that
// table's columns and types); these never reach the tokenizer.
func (r *REPL) runMeta(line string) {
	arg := strings.TrimSpace(strings.TrimPrefix(line, "\\d"))
	if arg == "" {
		aliases := r.store.Aliases()
		sort.Strings(aliases)
		fmt.Fprintln(r.out, strings.Join(aliases, " "))
		return
	}

	t, err := r.store.Get(arg)
	if err != nil {
		fmt.Fprintf(r.out, "%s Error: %s\n", errs.KindOf(err), stripKindPrefix(err))
		return
	}
	meta := t.Meta()
	for _, c := range meta.Columns {
		fmt.Fprintf(r.out, "%s %s\n", c.Name, c.Kind)
	}
}

// completer offers table aliases and column names — qualified and
// unqualified — drawn from the live store, mirroring the teacher
// corpus's keyword-table completer pattern.
func (r *REPL) completer(text []rune, wordStart, wordEnd int) []string {
	word := strings.ToLower(string(text[wordStart:wordEnd]))

	var candidates []string
	for _, alias := range r.store.Aliases() {
		candidates = append(candidates, alias)
		t, err := r.store.Get(alias)
		if err != nil {
			continue
		}
		for _, name := range t.ColumnNames() {
			candidates = append(candidates, name)
			candidates = append(candidates, alias+"."+name)
		}
	}
	sort.Strings(candidates)

	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(c, word) {
			out = append(out, c)
		}
	}
	return out
}
