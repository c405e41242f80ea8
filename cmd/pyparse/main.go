// Command pyparse drives the lexer/parser pipeline over a source file (or
// stdin) and prints the resulting AST. It is trimmed from the teacher's own
// CLI front-end down to exactly what a grammar-only module needs: no
// analyzer, evaluator, VM, or module loader stage (spec.md §1 Non-goals).
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/corelang/pyparse/internal/config"
	"github.com/corelang/pyparse/internal/lexer"
	"github.com/corelang/pyparse/internal/parser"
	"github.com/corelang/pyparse/internal/pipeline"
	"github.com/corelang/pyparse/internal/prettyprinter"
	"github.com/corelang/pyparse/internal/utils"
)

func usage(prog string) {
	fmt.Fprintf(os.Stderr, "Usage: %s [-tree|-code] [-stmt|-expr] <file> (or pipe source on stdin)\n", prog)
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	args := os.Args[1:]
	mode := pipeline.ModeProgram
	dump := "tree"
	var path string

	for _, arg := range args {
		switch arg {
		case "-tree":
			dump = "tree"
		case "-code":
			dump = "code"
		case "-stmt":
			mode = pipeline.ModeStatement
		case "-expr":
			mode = pipeline.ModeExpression
		case "-help", "--help", "-h":
			usage(os.Args[0])
			return
		default:
			path = arg
		}
	}

	source, filePath, err := readSource(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	if source == "" {
		return
	}

	ctx := pipeline.NewPipelineContext(source, mode)
	ctx.FilePath = filePath
	pl := pipeline.New(&lexer.Processor{}, &parser.Processor{})
	finalCtx := pl.Run(ctx)

	if len(finalCtx.Errors) > 0 {
		name := filePath
		if name == "" {
			name = "<stdin>"
		} else {
			name = utils.ExtractModuleName(name)
		}
		fmt.Fprintf(os.Stderr, "%s: parse failed:\n", name)
		for _, e := range finalCtx.Errors {
			fmt.Fprintf(os.Stderr, "  %s\n", e.Error())
		}
		os.Exit(1)
	}

	switch dump {
	case "code":
		fmt.Print(prettyprinter.NewCodePrinter().PrintTop(finalCtx.AstRoot))
	default:
		fmt.Print(prettyprinter.NewTreePrinter().PrintTop(finalCtx.AstRoot))
	}
}

func readSource(path string) (source string, filePath string, err error) {
	if path == "" {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) != 0 {
			return "", "", fmt.Errorf("no file given and stdin is a terminal")
		}
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "", nil
	}

	if !hasSourceExtension(path) {
		fmt.Fprintf(os.Stderr, "warning: %s does not have a recognized source extension\n", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", path, err)
	}
	abs, absErr := filepath.Abs(path)
	if absErr != nil {
		abs = path
	}
	return string(data), abs, nil
}

func hasSourceExtension(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
