package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Select(ctx context.Context, path string) error
	Status(ctx context.Context) error
	Generate(ctx context.Context) error
	Reset(ctx context.Context) error
	Save(ctx context.Context, path string) error
	Inspect(ctx context.Context) error
	Publish(ctx context.Context) error
}

const helpText = `Available commands:
  select <path>  stage a source file (alias: drop)
  status         show the staged file and workflow state
  generate       upload the file and wait for the documentation archive
  reset          clear the file, the error and any archive
  save [path]    write the archive to disk
  inspect        list the files inside the archive
  publish        upload the archive to object storage and print a share link
  exit | quit    leave the program`

// runREPL starts a simple read-eval-print loop for the docforge CLI.
//
// It prompts with the current status (from statusFn), reads a line from in,
// parses the first token as the command and dispatches to methods on 'a'.
// Paths may contain spaces: everything after the command is the argument.
// "select" without a path asks for one. The loop exits on EOF or when the
// user types "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader, w io.Writer) {
	for {
		line, err := GetSimpleText(in, fmt.Sprintf("docforge %s", statusFn()), w)
		if err != nil {
			return
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)
		if cmd == "" {
			continue
		}

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "select", "drop":
			if arg == "" {
				arg, err = GetSimpleText(in, "Path to source file", w)
				if err != nil || arg == "" {
					printlnFn("Usage: select <path>")
					continue
				}
			}
			_ = a.Select(ctx, arg)

		case "status":
			_ = a.Status(ctx)

		case "generate":
			_ = a.Generate(ctx)

		case "reset":
			_ = a.Reset(ctx)

		case "save":
			_ = a.Save(ctx, arg)

		case "inspect":
			_ = a.Inspect(ctx)

		case "publish":
			_ = a.Publish(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
