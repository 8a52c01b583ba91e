package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/tronlang/tron/lang/reporter"
	"github.com/tronlang/tron/lang/scanner"
	"github.com/tronlang/tron/lang/token"
)

func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return TokenizeFiles(ctx, stdio, args...)
}

// TokenizeFiles scans each file independently and prints one line per
// token, per spec.md §6's `tokenize` subcommand.
func TokenizeFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
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

		s := scanner.New(src, rep)
		for {
			tok, val := s.Scan()
			fmt.Fprintf(stdio.Stdout, "%s:%d: %s", f, val.Line, tok)
			if lit := literalOf(tok, val); lit != "" {
				fmt.Fprintf(stdio.Stdout, " %s", lit)
			}
			fmt.Fprintln(stdio.Stdout)
			if tok == token.EOF {
				break
			}
		}
		if rep.Count > 0 {
			failed = fmt.Errorf("%s: %d diagnostic(s)", f, rep.Count)
		}
	}
	return failed
}

func literalOf(tok token.Token, val token.Value) string {
	switch tok {
	case token.NUMBER:
		return fmt.Sprint(val.Float)
	case token.STRING:
		return val.String
	case token.IDENT:
		return val.Raw
	default:
		return ""
	}
}
