package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/tronlang/tron/lang/ast"
	"github.com/tronlang/tron/lang/parser"
	"github.com/tronlang/tron/lang/reporter"
)

func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return ParseFiles(ctx, stdio, args...)
}

// ParseFiles parses each file and prints an indented rendering of its
// statement list, per spec.md §6's `parse` subcommand.
func ParseFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
	var failed error
	for _, f := range files {
		src, err := os.ReadFile(f)
		if err != nil {
			printError(stdio, err)
			failed = err
			continue
		}

		rep := reporter.New(stdio.Stderr)
		rep.SetExit(func(int) {})

		p := parser.New(src, rep)
		stmts := p.ParseProgram()
		for _, s := range stmts {
			ast.Print(stdio.Stdout, s)
		}
		if rep.Count > 0 {
			failed = fmt.Errorf("%s: %d diagnostic(s)", f, rep.Count)
		}
	}
	return failed
}
