package script

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/marcuscaisey/finitestack/stack"
	"github.com/marcuscaisey/finitestack/typedstack"
)

var exportAll = cmp.Exporter(func(reflect.Type) bool { return true })

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Command
	}{
		{name: "blank", line: "   ", want: nil},
		{name: "comment only", line: "// prints: 3", want: nil},
		{name: "new", line: "new uint8 3", want: NewCmd{Kind: typedstack.Uint8, Capacity: 3}},
		{name: "new mixed case", line: "NEW Float64 0", want: NewCmd{Kind: typedstack.Float64, Capacity: 0}},
		{
			name: "from",
			line: `from array [1 "two" three true false null] 45`,
			want: FromCmd{Kind: typedstack.Array, Values: []any{1.0, "two", "three", true, false, nil}, Capacity: 45},
		},
		{
			name: "from derived capacity",
			line: "from int8 [1 2 3]",
			want: FromCmd{Kind: typedstack.Int8, Values: []any{1.0, 2.0, 3.0}, Capacity: stack.DeriveCapacity},
		},
		{
			name: "from no values",
			line: "from array []",
			want: FromCmd{Kind: typedstack.Array, Values: []any{}, Capacity: stack.DeriveCapacity},
		},
		{name: "push", line: `push 1 -2.5 "a b" c`, want: PushCmd{Values: []any{1.0, -2.5, "a b", "c"}}},
		{name: "push escaped string", line: `push "say \"hi\"\n"`, want: PushCmd{Values: []any{"say \"hi\"\n"}}},
		{name: "push with comment", line: `push 1 // prints: nothing`, want: PushCmd{Values: []any{1.0}}},
		{name: "push string containing slashes", line: `push "a//b"`, want: PushCmd{Values: []any{"a//b"}}},
		{name: "pop", line: "pop", want: PopCmd{}},
		{name: "peek", line: "peek", want: PeekCmd{}},
		{name: "clear", line: "clear", want: ClearCmd{}},
		{name: "size", line: "size", want: SizeCmd{}},
		{name: "capacity", line: "capacity", want: CapacityCmd{}},
		{name: "kind", line: "kind", want: KindCmd{}},
		{name: "each", line: "each", want: EachCmd{}},
		{name: "values", line: "values", want: ValuesCmd{}},
		{name: "entries", line: "entries", want: EntriesCmd{}},
		{name: "array", line: "  array  ", want: ArrayCmd{}},
		{name: "help", line: "help", want: HelpCmd{}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Parse(test.line)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %s", test.line, err)
			}
			if diff := cmp.Diff(test.want, got, exportAll); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", test.line, diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantMsg string
		wantIs  error
	}{
		{name: "unknown command", line: "shove 1", wantMsg: `unknown command "shove"`},
		{name: "number as command", line: "3", wantMsg: "expected command, got number 3"},
		{name: "missing kind", line: "new", wantMsg: "invalid argument: buffer kind is missing", wantIs: stack.ErrInvalidArgument},
		{name: "unknown kind", line: "new list 3", wantMsg: `invalid argument: unknown buffer kind "list"`, wantIs: stack.ErrInvalidArgument},
		{name: "missing capacity", line: "new array", wantMsg: "invalid argument: capacity is missing", wantIs: stack.ErrInvalidArgument},
		{name: "non-numeric capacity", line: "new array null", wantMsg: "invalid argument: capacity should be a number, got null", wantIs: stack.ErrInvalidArgument},
		{name: "negative capacity", line: "new array -20", wantMsg: "invalid argument: capacity should be a non-negative integer, got -20", wantIs: stack.ErrInvalidArgument},
		{name: "fractional capacity", line: "new array 1.5", wantMsg: "invalid argument: capacity should be a non-negative integer, got 1.5", wantIs: stack.ErrInvalidArgument},
		{name: "capacity too large", line: "new float64 2000000000", wantMsg: "invalid argument: capacity should be at most 16777216, got 2000000000", wantIs: stack.ErrInvalidArgument},
		{name: "infinite capacity", line: "new array 1e400", wantMsg: "invalid argument: capacity should be at most 16777216, got 1e400", wantIs: stack.ErrInvalidArgument},
		{name: "from without list", line: "from array 1 2 3", wantMsg: "from expects a list of values in square brackets"},
		{name: "from unterminated list", line: "from array [1 2", wantMsg: "unterminated list of values, expected ]"},
		{name: "from nested list", line: "from array [[1]]", wantMsg: "unexpected ["},
		{name: "push nothing", line: "push", wantMsg: "push expects at least one value"},
		{name: "push bracket", line: "push ]", wantMsg: "unexpected ]"},
		{name: "unterminated string", line: `push "abc`, wantMsg: "unterminated string literal"},
		{name: "extra argument", line: "pop 1", wantMsg: "unexpected argument 1 to pop"},
		{name: "extra argument after capacity", line: "new array 1 2", wantMsg: "unexpected argument 2 to new"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cmd, err := Parse(test.line)
			if err == nil {
				t.Fatalf("Parse(%q) = %#v, want error", test.line, cmd)
			}
			if err.Error() != test.wantMsg {
				t.Errorf("Parse(%q) error = %q, want %q", test.line, err, test.wantMsg)
			}
			if test.wantIs != nil && !errors.Is(err, test.wantIs) {
				t.Errorf("Parse(%q) error = %v, want error wrapping %v", test.line, err, test.wantIs)
			}
		})
	}
}

func TestLexNumbers(t *testing.T) {
	tokens, err := lex("1 -2 3.5e2 1e400 abc")
	if err != nil {
		t.Fatal(err)
	}
	var types []string
	for _, tok := range tokens {
		types = append(types, tok.Type.String())
	}
	if got, want := strings.Join(types, " "), "number number number number word"; got != want {
		t.Errorf("token types = %q, want %q", got, want)
	}
}
