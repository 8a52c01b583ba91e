// Package builtin implements the fixed catalog of native functions the
// evaluator's root environment is pre-populated with at construction time
// (spec.md §3, grounded on original_source/src/environment.rs's
// get_globals). spec.md §1 puts the contents of a full builtin catalog out
// of scope; this package ships the minimal catalog needed to run the
// example programs of spec.md §8 — print, len, clock, typeof, input —
// behind the same registry/dispatch mechanism a richer catalog would use.
package builtin

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tronlang/tron/lang/environment"
	"github.com/tronlang/tron/lang/value"
)

// Printer is the output sink `print` writes through. Decorated,
// colorized presentation belongs to a caller-supplied implementation, not
// to this package (spec.md §1 excludes the pretty-printer).
type Printer interface {
	Print(s string)
}

// Register installs the builtin catalog into env. stdin backs the `input`
// builtin; passing nil makes `input` always report an error.
func Register(env *environment.Environment, p Printer, stdin io.Reader) {
	var reader *bufio.Reader
	if stdin != nil {
		reader = bufio.NewReader(stdin)
	}

	env.Define("print", &value.Builtin{
		BuiltinName: "print",
		NumArgs:     1,
		Fn: func(args []value.Value) (value.Value, error) {
			p.Print(args[0].String())
			return value.NullValue, nil
		},
	})

	env.Define("len", &value.Builtin{
		BuiltinName: "len",
		NumArgs:     1,
		Fn:          lenOf,
	})

	env.Define("clock", &value.Builtin{
		BuiltinName: "clock",
		NumArgs:     0,
		Fn: func(args []value.Value) (value.Value, error) {
			return value.Number(float64(time.Now().UnixMilli()) / 1000), nil
		},
	})

	env.Define("typeof", &value.Builtin{
		BuiltinName: "typeof",
		NumArgs:     1,
		Fn: func(args []value.Value) (value.Value, error) {
			return value.String(args[0].Type()), nil
		},
	})

	env.Define("input", &value.Builtin{
		BuiltinName: "input",
		NumArgs:     1,
		Fn: func(args []value.Value) (value.Value, error) {
			prompt, ok := args[0].(value.String)
			if !ok {
				return nil, errors.New("input requires a string argument")
			}
			if reader == nil {
				return nil, errors.New("input has no stdin configured")
			}
			p.Print(string(prompt))
			line, err := reader.ReadString('\n')
			if err != nil && line == "" {
				return nil, err
			}
			return value.String(strings.TrimRight(line, "\r\n")), nil
		},
	})
}

func lenOf(args []value.Value) (value.Value, error) {
	switch v := args[0].(type) {
	case value.String:
		return value.Number(len(v)), nil
	case *value.Array:
		return value.Number(v.Len()), nil
	case *value.Object:
		return value.Number(v.Len()), nil
	default:
		return nil, fmt.Errorf("len is not defined for %s", v.Type())
	}
}
