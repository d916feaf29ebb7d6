// Package stacktest checks fstack scripts against the expectations written in their comments.
//
// Each script under test/testdata describes what running it should do with two kinds of trailing comment:
//
//	peek // prints: 3
//	pop 1 // error: unexpected argument 1 to pop
//
// A // prints: comment expects the next line of stdout, in order. A // error: comment expects an error to be reported
// on the line it's written on. A script with any // error: comments is expected to exit with status 1.
package stacktest

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

var update = flag.Bool("update", false, "rewrite the expectations of each script with its actual output")

const emptyLine = "<empty>"

var (
	expectationRe = regexp.MustCompile(`// (prints|error): (.+)$`)
	stderrRe      = regexp.MustCompile(`(?m)^.+:(\d+): error: (.+)$`)
)

// LineError is an error reported on a line of a script.
type LineError struct {
	Line int
	Msg  string
}

// Expectations are what a script should do when it's run.
type Expectations struct {
	Stdout []byte
	Errors []LineError
}

// ExitCode returns the exit status that the script should finish with.
func (e Expectations) ExitCode() int {
	if len(e.Errors) > 0 {
		return 1
	}
	return 0
}

// ParseExpectations parses the expectations from the comments of a script. A // prints: <empty> comment expects an
// empty line.
func ParseExpectations(src []byte) Expectations {
	var e Expectations
	for i, line := range bytes.Split(src, []byte("\n")) {
		m := expectationRe.FindSubmatch(line)
		if m == nil {
			continue
		}
		switch string(m[1]) {
		case "prints":
			if string(m[2]) != emptyLine {
				e.Stdout = append(e.Stdout, m[2]...)
			}
			e.Stdout = append(e.Stdout, '\n')
		case "error":
			e.Errors = append(e.Errors, LineError{Line: i + 1, Msg: string(m[2])})
		}
	}
	return e
}

// Result is the outcome of running fstack.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Errors returns the positioned errors reported on stderr.
func (r Result) Errors() []LineError {
	var errs []LineError
	for _, m := range stderrRe.FindAllSubmatch(r.Stderr, -1) {
		line, err := strconv.Atoi(string(m[1]))
		if err != nil {
			panic(fmt.Sprintf("line number %q matched by %s isn't an integer", m[1], stderrRe))
		}
		errs = append(errs, LineError{Line: line, Msg: string(m[2])})
	}
	return errs
}

// Script is a script under test/testdata.
type Script struct {
	Path string
	Src  []byte
}

// Run calls test in a parallel subtest for each script under test/testdata. test should run the script and pass its
// result to [Check].
func Run(t *testing.T, test func(t *testing.T, s Script) Result) {
	testdata := filepath.Join(MustGoModuleRoot(t), "test", "testdata")
	err := fs.WalkDir(os.DirFS(testdata), ".", func(rel string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(rel) != ".fst" {
			return err
		}
		path := filepath.Join(testdata, rel)
		t.Run(testName(rel), func(t *testing.T) {
			t.Parallel()
			src, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			s := Script{Path: path, Src: src}
			Check(t, s, test(t, s))
		})
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

// testName converts a path like iteration/for_each.fst to IterationForEach.
func testName(rel string) string {
	words := strings.FieldsFunc(strings.TrimSuffix(rel, ".fst"), func(r rune) bool {
		return r == '_' || r == '/'
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, "")
}

// Check fails t if got doesn't meet the expectations of s. If the -update flag was passed, the expectations of s are
// rewritten to match got instead.
func Check(t *testing.T, s Script, got Result) {
	t.Helper()

	if *update {
		src, err := RewriteExpectations(s.Src, got)
		if err != nil {
			t.Fatalf("updating %s: %s\nstdout:\n%s\nstderr:\n%s", s.Path, err, got.Stdout, got.Stderr)
		}
		if err := os.WriteFile(s.Path, src, 0644); err != nil {
			t.Fatal(err)
		}
		return
	}

	want := ParseExpectations(s.Src)
	if got.ExitCode != want.ExitCode() {
		t.Fatalf("exit code = %d, want %d\nstdout:\n%s\nstderr:\n%s", got.ExitCode, want.ExitCode(), got.Stdout, got.Stderr)
	}
	if !bytes.Equal(got.Stdout, want.Stdout) {
		t.Errorf("stdout mismatch:\n%s", DiffText(string(want.Stdout), string(got.Stdout)))
	}
	if gotErrs := got.Errors(); !cmp.Equal(gotErrs, want.Errors) {
		t.Errorf("stderr errors mismatch:\n%s\nstderr:\n%s", DiffErrors(want.Errors, gotErrs), got.Stderr)
	}
}

// RewriteExpectations returns src with the text of its expectation comments replaced by the output of got. Every
// line of stdout must have a // prints: comment and every reported error must have a // error: comment on the line
// it was reported on.
func RewriteExpectations(src []byte, got Result) ([]byte, error) {
	var stdout []string
	if len(got.Stdout) > 0 {
		stdout = strings.Split(strings.TrimSuffix(string(got.Stdout), "\n"), "\n")
	}
	errsByLine := map[int][]string{}
	for _, e := range got.Errors() {
		errsByLine[e.Line] = append(errsByLine[e.Line], e.Msg)
	}

	lines := bytes.Split(src, []byte("\n"))
	for i, line := range lines {
		m := expectationRe.FindSubmatchIndex(line)
		if m == nil {
			continue
		}
		var text string
		switch string(line[m[2]:m[3]]) {
		case "prints":
			if len(stdout) == 0 {
				return nil, fmt.Errorf("line %d: // prints: comment but no more stdout", i+1)
			}
			text, stdout = stdout[0], stdout[1:]
			if text == "" {
				text = emptyLine
			}
		case "error":
			msgs := errsByLine[i+1]
			if len(msgs) == 0 {
				return nil, fmt.Errorf("line %d: // error: comment but no error reported", i+1)
			}
			text, errsByLine[i+1] = msgs[0], msgs[1:]
		}
		lines[i] = append(append(line[:m[4]:m[4]], text...), line[m[5]:]...)
	}

	var errs []error
	if len(stdout) > 0 {
		errs = append(errs, fmt.Errorf("%d lines of stdout without a // prints: comment, starting with %q", len(stdout), stdout[0]))
	}
	for line, msgs := range errsByLine {
		for _, msg := range msgs {
			errs = append(errs, fmt.Errorf("line %d: error %q without a // error: comment", line, msg))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return bytes.Join(lines, []byte("\n")), nil
}

// DiffText returns a unified diff from want to got.
func DiffText(want, got string) string {
	edits := myers.ComputeEdits(span.URIFromPath("want"), want, got)
	return colourise(fmt.Sprint(gotextdiff.ToUnified("want", "got", want, edits)))
}

// DiffErrors returns a report of the differences between the wanted and got errors.
func DiffErrors(want, got []LineError) string {
	return colourise("-want +got\n" + cmp.Diff(want, got))
}

var (
	wantColour = color.New(color.FgGreen)
	gotColour  = color.New(color.FgRed)
)

func colourise(diff string) string {
	var b strings.Builder
	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "-"):
			wantColour.Fprint(&b, line)
		case strings.HasPrefix(line, "+"):
			gotColour.Fprint(&b, line)
		default:
			b.WriteString(line)
		}
	}
	return b.String()
}

// Exec runs the binary at path with the given arguments and returns its result. A non-zero exit status isn't an
// error.
func Exec(t *testing.T, path string, args ...string) Result {
	t.Helper()
	cmd := exec.Command(path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	var exitErr *exec.ExitError
	if err := cmd.Run(); err != nil && !errors.As(err, &exitErr) {
		t.Fatalf("running %s: %s", cmd, err)
	}
	return Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes(), ExitCode: cmd.ProcessState.ExitCode()}
}

// MustBuildBinary builds the command in the named directory of the module into a temporary directory and returns the
// path to the binary.
func MustBuildBinary(t *testing.T, name string) string {
	t.Helper()
	bin := filepath.Join(t.TempDir(), name)
	cmd := exec.Command("go", "build", "-o", bin, "./"+name)
	cmd.Dir = MustGoModuleRoot(t)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("building %s: %s\n%s", name, err, out)
	}
	return bin
}

// MustGoModuleRoot returns the root directory of the module containing the working directory.
func MustGoModuleRoot(t *testing.T) string {
	t.Helper()
	out, err := exec.Command("go", "env", "GOMOD").Output()
	if err != nil {
		t.Fatalf("finding go module root: %s", err)
	}
	gomod := strings.TrimSpace(string(out))
	if gomod == "" || gomod == os.DevNull {
		t.Fatal("finding go module root: working directory isn't inside a go module")
	}
	return filepath.Dir(gomod)
}
