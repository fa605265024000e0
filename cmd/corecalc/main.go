// Command corecalc type-checks, normalizes, and pretty-prints expressions
// of the core calculus read from a JSON document (see internal/builder for
// the wire shape): flag dispatch by os.Args[1], stdin-or-file input, a
// top-level panic recovery deferred in run, and diagnostics written to
// stderr with a process exit code of 1 on failure.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/corecalc/corecalc/internal/ast"
	"github.com/corecalc/corecalc/internal/builder"
	"github.com/corecalc/corecalc/internal/cache"
	"github.com/corecalc/corecalc/internal/diagnostics"
	"github.com/corecalc/corecalc/internal/normalize"
	"github.com/corecalc/corecalc/internal/prettyprinter"
	"github.com/corecalc/corecalc/internal/typecheck"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run implements the CLI and returns the process exit code, rather than
// calling os.Exit directly, so it can be driven from script tests (see
// main_test.go) in addition to a real process.
func run(args []string) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "this is a bug; please report it")
			exitCode = 1
		}
	}()

	if len(args) == 0 {
		usage()
		return 1
	}

	var configPath string
	cmd := args[0]
	rest := args[1:]
	for i := 0; i < len(rest); i++ {
		if rest[i] == "--config" && i+1 < len(rest) {
			configPath = rest[i+1]
			rest = append(rest[:i], rest[i+2:]...)
			i--
		}
	}

	cfg, err := loadCLIConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	switch cmd {
	case "typecheck":
		return runTypecheck(rest, cfg)
	case "normalize":
		return runNormalize(rest)
	case "pretty":
		return runPretty(rest)
	case "cache":
		return runCache(rest, cfg)
	case "-help", "--help", "help":
		usage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		usage()
		return 1
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: corecalc <command> [file] [--config path]

commands:
  typecheck [file]   synthesize and print the type of the expression in file (or stdin)
  normalize [file]   reduce the expression in file (or stdin) to normal form and print it
  pretty [file]      pretty-print the expression in file (or stdin) unchanged
  cache stat <db>    report entry count and size of a disk cache
  cache clean <db>   remove all entries from a disk cache`)
}

func readExpr(args []string) (ast.Expr[ast.X], error) {
	var data []byte
	var err error
	if len(args) >= 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	embedded, err := builder.ParseJSON(data)
	if err != nil {
		return nil, err
	}
	return closeExpr(embedded)
}

// closeExpr rejects any tree still containing Embed nodes: this command
// does not resolve file/URL embeds, and internal/typecheck only operates on
// closed Expr[ast.X] trees.
func closeExpr(e ast.Expr[ast.Path]) (ast.Expr[ast.X], error) {
	var embedErr error
	result := ast.Bind[ast.Path, ast.X](e, func(p ast.Path) ast.Expr[ast.X] {
		embedErr = fmt.Errorf("expression contains an unresolved embed (%s); embed resolution is not supported", p.Render())
		return ast.ConstExpr[ast.X]{Sort: ast.SortType}
	})
	if embedErr != nil {
		return nil, embedErr
	}
	return result, nil
}

func colorEnabled(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	}
}

func reportDiagnostic(derr *diagnostics.DiagnosticError, color bool) {
	stamped := derr.WithCorrelationID(uuid.NewString())
	if color {
		fmt.Fprintf(os.Stderr, "\033[31m%s\033[0m", stamped.Error())
	} else {
		fmt.Fprint(os.Stderr, stamped.Error())
	}
}

func runTypecheck(args []string, cfg cliConfig) int {
	e, err := readExpr(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	color := colorEnabled(cfg.Color)

	typ, derr, tcErr := typecheck.TypeOfBounded(e, typecheck.WithMaxDepth(cfg.MaxDepth))
	if tcErr != nil {
		fmt.Fprintln(os.Stderr, tcErr)
		return 1
	}
	if derr != nil {
		reportDiagnostic(derr, color)
		return 1
	}
	fmt.Println(prettyprinter.Pretty(typ))
	return 0
}

func runNormalize(args []string) int {
	e, err := readExpr(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(prettyprinter.Pretty(normalize.Normalize(e)))
	return 0
}

func runPretty(args []string) int {
	e, err := readExpr(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(prettyprinter.Pretty(e))
	return 0
}

func runCache(args []string, cfg cliConfig) int {
	if len(args) < 1 {
		usage()
		return 1
	}
	switch args[0] {
	case "stat":
		path := cfg.DiskCache
		if len(args) >= 2 {
			path = args[1]
		}
		disk, err := cache.OpenDiskCache(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		defer disk.Close()
		summary, err := disk.Stat()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println(summary)
		return 0
	case "clean":
		path := cfg.DiskCache
		if len(args) >= 2 {
			path = args[1]
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	default:
		usage()
		return 1
	}
}
