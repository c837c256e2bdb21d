package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
)

type fakeExec struct {
	calls []string
	args  []string
}

func (f *fakeExec) record(name, arg string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, arg)
	return nil
}

func (f *fakeExec) Select(ctx context.Context, path string) error { return f.record("select", path) }
func (f *fakeExec) Status(ctx context.Context) error              { return f.record("status", "") }
func (f *fakeExec) Generate(ctx context.Context) error            { return f.record("generate", "") }
func (f *fakeExec) Reset(ctx context.Context) error               { return f.record("reset", "") }
func (f *fakeExec) Save(ctx context.Context, path string) error   { return f.record("save", path) }
func (f *fakeExec) Inspect(ctx context.Context) error             { return f.record("inspect", "") }
func (f *fakeExec) Publish(ctx context.Context) error             { return f.record("publish", "") }

func silencePrint(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	silencePrint(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"select ./src/my file.py",
		"status",
		"",
		"generate",
		"inspect",
		"save",
		"save out/docs.zip",
		"publish",
		"drop main.go",
		"reset",
		"foobar",
		"exit",
		"generate",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(input), io.Discard)

	wantCalls := []string{"select", "status", "generate", "inspect", "save", "save", "publish", "select", "reset"}
	wantArgs := []string{"./src/my file.py", "", "", "", "", "out/docs.zip", "", "main.go", ""}
	if fmt.Sprint(exec.calls) != fmt.Sprint(wantCalls) {
		t.Fatalf("calls mismatch: got %v, want %v", exec.calls, wantCalls)
	}
	if fmt.Sprint(exec.args) != fmt.Sprint(wantArgs) {
		t.Fatalf("args mismatch: got %q, want %q", exec.args, wantArgs)
	}
}

func TestRunREPL_SelectPromptsForPath(t *testing.T) {
	silencePrint(t)

	input := strings.NewReader("select\napp.js\nselect\n\nquit\n")
	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(input), io.Discard)

	if len(exec.calls) != 1 || exec.args[0] != "app.js" {
		t.Fatalf("unexpected calls: %v %q", exec.calls, exec.args)
	}
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	lines := silencePrint(t)

	input := strings.NewReader("bogus\nquit\n")
	exec := &fakeExec{}
	var out strings.Builder
	runREPL(context.Background(), exec, func() string { return "(idle)" }, bufio.NewReader(input), &out)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
	if got := strings.Join(*lines, "|"); got != "Unknown command: bogus|Bye!" {
		t.Fatalf("unexpected output: %q", got)
	}
	if !strings.Contains(out.String(), "docforge (idle)\n> ") {
		t.Fatalf("prompt missing: %q", out.String())
	}
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	silencePrint(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("status")), io.Discard)

	if len(exec.calls) != 1 {
		t.Fatalf("expected the partial last line to run, got %v", exec.calls)
	}
}
