package script

import (
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"

	"github.com/marcuscaisey/finitestack/stack"
)

func init() {
	color.NoColor = true
}

func runScript(t *testing.T, src string) (string, error) {
	t.Helper()
	var out strings.Builder
	err := Run(strings.NewReader(src), "test.fst", NewSession(&out))
	return out.String(), err
}

func TestRun(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "pop",
			src: `new array 3
push 1 2 3
pop
pop
pop
pop
size`,
			want: "3\n2\n1\nnone\n0\n",
		},
		{
			name: "peek",
			src: `new array 2
peek
push 1
peek
push 2
peek
size`,
			want: "none\n1\n2\n2\n",
		},
		{
			name: "each",
			src: `new array 11
push 1 2 3 4 5 6 7 8 9 10 "eleven"
each`,
			want: ` 0  "eleven"
 1  10
 2  9
 3  8
 4  7
 5  6
 6  5
 7  4
 8  3
 9  2
10  1
`,
		},
		{
			name: "values and entries",
			src: `from uint8 [1 2 3] 45
values
entries
size
capacity`,
			want: "3\n2\n1\n(0, 3)\n(1, 2)\n(2, 1)\n3\n45\n",
		},
		{
			name: "array keeps kind",
			src: `new uint8 3
push 1 2 259
array
kind`,
			want: "uint8[3, 2, 1]\nuint8\n",
		},
		{
			name: "clear",
			src: `new array 2
push 2 3
clear
size
array`,
			want: "0\narray[]\n",
		},
		{
			name: "from replaces stack",
			src: `new float32 1
from array ["a" b] // comment
array`,
			want: "array[\"b\", \"a\"]\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := runScript(t, test.src)
			if err != nil {
				t.Fatalf("Run() returned error: %s", err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunErrors(t *testing.T) {
	src := `pop
new array 1
push "test"
push "test"

new array -20
size
`
	out, err := runScript(t, src)
	if diff := cmp.Diff("1\n", out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}

	var errs Errors
	if !errors.As(err, &errs) {
		t.Fatalf("Run() error = %v, want Errors", err)
	}
	want := []string{
		"test.fst:1: error: no stack: create one with new or from",
		"test.fst:4: error: capacity exceeded: can't push onto a full stack of capacity 1",
		"test.fst:6: error: invalid argument: capacity should be a non-negative integer, got -20",
	}
	var got []string
	for _, e := range errs {
		got = append(got, e.Error())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
	if !errors.Is(err, stack.ErrCapacityExceeded) {
		t.Errorf("Run() error doesn't wrap %v", stack.ErrCapacityExceeded)
	}
	if !errors.Is(err, stack.ErrInvalidArgument) {
		t.Errorf("Run() error doesn't wrap %v", stack.ErrInvalidArgument)
	}
}

func TestRunLongLine(t *testing.T) {
	src := "new array 1\npush 1\npush 2\nfrom array [" + strings.Repeat("1 ", 40000) + "]\nsize\npush 3\n"
	out, err := runScript(t, src)
	if diff := cmp.Diff("40000\n", out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}

	var errs Errors
	if !errors.As(err, &errs) {
		t.Fatalf("Run() error = %v, want Errors", err)
	}
	var gotLines []int
	for _, e := range errs {
		gotLines = append(gotLines, e.Line)
		if !errors.Is(e, stack.ErrCapacityExceeded) {
			t.Errorf("error on line %d = %v, want error wrapping %v", e.Line, e, stack.ErrCapacityExceeded)
		}
	}
	if diff := cmp.Diff([]int{3, 6}, gotLines); diff != "" {
		t.Errorf("error lines mismatch (-want +got):\n%s", diff)
	}
}

func TestExecNilCommand(t *testing.T) {
	var out strings.Builder
	s := NewSession(&out)
	cmd, err := Parse("   // nothing to do")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Exec(cmd); err != nil {
		t.Errorf("Exec(%v) returned error: %s", cmd, err)
	}
	if out.Len() != 0 {
		t.Errorf("Exec(%v) printed %q, want nothing", cmd, out.String())
	}
}

func TestRunLine(t *testing.T) {
	var out strings.Builder
	s := NewSession(&out)
	if err := RunLine("new int8 2", s); err != nil {
		t.Fatal(err)
	}
	if err := RunLine("push 200", s); err != nil {
		t.Fatal(err)
	}
	if err := RunLine("pop", s); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "-56\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	err := RunLine("new", s)
	if err == nil {
		t.Fatal("RunLine(\"new\") returned no error")
	}
	if got, want := err.Error(), "error: invalid argument: buffer kind is missing"; got != want {
		t.Errorf("RunLine(\"new\") error = %q, want %q", got, want)
	}
	if s.Stack() == nil || s.Stack().Capacity() != 2 {
		t.Errorf("failed command replaced the stack: %v", s.Stack())
	}
}

func TestHelp(t *testing.T) {
	out, err := runScript(t, "help")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "Commands:\n  new <kind> <capacity>  ") {
		t.Errorf("help output doesn't start with the new command:\n%s", out)
	}
	if !strings.HasSuffix(out, "Kinds: array, int8, uint8, uint8clamped, int16, uint16, int32, uint32, float32, float64\n") {
		t.Errorf("help output doesn't end with the list of kinds:\n%s", out)
	}
}
