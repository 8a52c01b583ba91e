package maincmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mna/mainer"

	"github.com/tronlang/tron/lang/builtin"
	"github.com/tronlang/tron/lang/interp"
	"github.com/tronlang/tron/lang/parser"
	"github.com/tronlang/tron/lang/reporter"
	"github.com/tronlang/tron/lang/resolver"
)

func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	if len(args) != 1 {
		err := fmt.Errorf("run: exactly one source file is required")
		printError(stdio, err)
		return err
	}
	return RunFile(ctx, stdio, args[0])
}

// stdioPrinter writes `print`/`input` prompts to stdout, per spec.md §6's
// `run` subcommand.
type stdioPrinter struct{ w io.Writer }

func (p stdioPrinter) Print(s string) { fmt.Fprintln(p.w, s) }

// fileLoader resolves `use "path";` against the process's current working
// directory, per spec.md §6's use path resolution ("if relative, it is
// resolved against the process's current working directory") —
// os.ReadFile already resolves a relative path that way, so no joining
// against the directory of the file being run is needed.
type fileLoader struct{}

func (fileLoader) Load(path string) (string, bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(b), true, nil
}

// RunFile parses, resolves and evaluates the program at path. A resolved
// but erroring program still returns a non-nil error through the fatal exit
// codes a reporter.Reporter enforces; a well-formed program returns nil and
// exits 0 (spec.md §6: exit 0 success, 1 runtime error, 64 usage error).
func RunFile(ctx context.Context, stdio mainer.Stdio, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		printError(stdio, err)
		return err
	}

	rep := reporter.New(stdio.Stderr)
	rep.SetExit(func(code int) { os.Exit(code) })

	p := parser.New(src, rep)
	stmts := p.ParseProgram()
	if rep.Count > 0 {
		return fmt.Errorf("%s: parse errors", path)
	}

	dist := resolver.New(rep).Resolve(stmts)
	if rep.Count > 0 {
		return fmt.Errorf("%s: resolve errors", path)
	}

	it := interp.New(rep, dist, fileLoader{})
	builtin.Register(it.Globals(), stdioPrinter{w: stdio.Stdout}, stdio.Stdin)

	if err := it.Run(stmts); err != nil {
		printError(stdio, err)
		return err
	}
	if rep.Count > 0 {
		return fmt.Errorf("%s: runtime errors", path)
	}
	return nil
}
