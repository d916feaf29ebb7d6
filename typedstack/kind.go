package typedstack

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/marcuscaisey/finitestack/stack"
)

// Kind identifies the representation of the elements stored in a [Stack].
type Kind int

//go:generate go run golang.org/x/tools/cmd/stringer -type Kind -linecomment

// The zero Kind is Invalid so that a Kind which hasn't been set is rejected.
const (
	Invalid      Kind = iota // invalid
	Array                    // array
	Int8                     // int8
	Uint8                    // uint8
	Uint8Clamped             // uint8clamped
	Int16                    // int16
	Uint16                   // uint16
	Int32                    // int32
	Uint32                   // uint32
	Float32                  // float32
	Float64                  // float64
)

// Kinds returns all valid kinds.
func Kinds() []Kind {
	kinds := make([]Kind, 0, Float64)
	for k := Array; k <= Float64; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseKind returns the kind with the given name. Names are matched case-insensitively.
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds() {
		if strings.EqualFold(name, k.String()) {
			return k, nil
		}
	}
	if name == "" {
		return Invalid, fmt.Errorf("%w: buffer kind is missing", stack.ErrInvalidArgument)
	}
	return Invalid, fmt.Errorf("%w: unknown buffer kind %q", stack.ErrInvalidArgument, name)
}

// Valid reports whether k is one of the kinds returned by [Kinds].
func (k Kind) Valid() bool {
	return k >= Array && k <= Float64
}

// Numeric reports whether k stores fixed-width numbers.
func (k Kind) Numeric() bool {
	return k.Valid() && k != Array
}

// Coerce converts v to the representation stored by k.
//
// [Array] stores values unchanged. Every other kind stores a float64: v is first converted to a number (see
// [ToNumber]) and then to the fixed-width representation of the kind. Integer kinds map NaN and ±Inf to 0, truncate
// towards zero and wrap modulo 2^bits. [Uint8Clamped] clamps to [0, 255] and rounds half to even. [Float32] rounds to
// the nearest float32.
func (k Kind) Coerce(v any) any {
	switch k {
	case Invalid:
		panic("Coerce called on invalid kind")
	case Array:
		return v
	case Int8:
		return float64(int8(wrap(ToNumber(v), 8)))
	case Uint8:
		return float64(uint8(wrap(ToNumber(v), 8)))
	case Uint8Clamped:
		return clamp(ToNumber(v))
	case Int16:
		return float64(int16(wrap(ToNumber(v), 16)))
	case Uint16:
		return float64(uint16(wrap(ToNumber(v), 16)))
	case Int32:
		return float64(int32(wrap(ToNumber(v), 32)))
	case Uint32:
		return float64(uint32(wrap(ToNumber(v), 32)))
	case Float32:
		return float64(float32(ToNumber(v)))
	case Float64:
		return ToNumber(v)
	}
	panic(fmt.Sprintf("unexpected kind %d", int(k)))
}

// wrap truncates f towards zero and reduces it modulo 2^bits, returning the result as a uint64 whose low bits hold the
// two's complement representation.
func wrap(f float64, bits uint) uint64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	m := math.Mod(math.Trunc(f), math.Ldexp(1, int(bits)))
	if m < 0 {
		m += math.Ldexp(1, int(bits))
	}
	return uint64(m)
}

func clamp(f float64) float64 {
	switch {
	case math.IsNaN(f) || f <= 0:
		return 0
	case f >= 255:
		return 255
	default:
		return math.RoundToEven(f)
	}
}

// ToNumber converts v to a float64.
// Go numeric types are converted directly, true is 1, false and nil are 0, strings are parsed after trimming
// whitespace with the empty string being 0. Anything else, including a string which can't be parsed, is NaN.
//
// Strings are parsed the way JavaScript's Number does: decimal literals with an optional sign and exponent, Infinity
// with an optional sign, and unsigned 0x, 0o and 0b integer literals. Go-only spellings such as inf, NaN, hex floats
// and digit separators aren't numbers.
func ToNumber(v any) float64 {
	switch v := v.(type) {
	case nil:
		return 0
	case bool:
		if v {
			return 1
		}
		return 0
	case int:
		return float64(v)
	case int8:
		return float64(v)
	case int16:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint8:
		return float64(v)
	case uint16:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case float32:
		return float64(v)
	case float64:
		return v
	case string:
		return parseNumber(strings.TrimSpace(v))
	default:
		return math.NaN()
	}
}

func parseNumber(s string) float64 {
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			return parseInteger(s[2:], 16)
		case 'o', 'O':
			return parseInteger(s[2:], 8)
		case 'b', 'B':
			return parseInteger(s[2:], 2)
		}
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789+-.eE", r) {
			return math.NaN()
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return f
}

// parseInteger parses the digits of an integer literal in the given base. Literals which overflow a uint64 are
// accumulated in a float64 rather than rejected.
func parseInteger(digits string, base int) float64 {
	var f float64
	for _, r := range digits {
		d, err := strconv.ParseUint(string(r), base, 8)
		if err != nil {
			return math.NaN()
		}
		f = f*float64(base) + float64(d)
	}
	return f
}
