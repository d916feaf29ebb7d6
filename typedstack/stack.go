// Package typedstack implements a fixed capacity stack whose buffer kind is chosen at run time.
//
// It's the dynamic counterpart to [stack.Stack], for when the representation of the elements isn't known at compile
// time. Values pushed onto a [Stack] are converted with [Kind.Coerce] so that every element has the representation of
// the stack's kind.
package typedstack

import (
	"fmt"
	"iter"
	"math"
	"strconv"
	"strings"

	"github.com/marcuscaisey/finitestack/stack"
)

// Stack is a fixed capacity LIFO stack of values of a single [Kind].
// Like [stack.Stack], it's not safe for concurrent use.
type Stack struct {
	kind  Kind
	items *stack.Stack[any]
}

// New creates an empty stack of the given kind which can hold up to capacity elements.
func New(kind Kind, capacity int) (*Stack, error) {
	if kind == Invalid {
		return nil, fmt.Errorf("%w: buffer kind is missing", stack.ErrInvalidArgument)
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown buffer kind %s", stack.ErrInvalidArgument, kind)
	}
	items, err := stack.New[any](capacity)
	if err != nil {
		return nil, err
	}
	return &Stack{kind: kind, items: items}, nil
}

// From creates a stack of the given kind by pushing the values of seq in order.
// capacity can't be [stack.DeriveCapacity] since the length of a sequence isn't known up front.
func From(seq iter.Seq[any], kind Kind, capacity int) (*Stack, error) {
	if capacity == stack.DeriveCapacity {
		return nil, fmt.Errorf("%w: capacity can't be derived from a sequence of unknown length", stack.ErrInvalidArgument)
	}
	s, err := New(kind, capacity)
	if err != nil {
		return nil, err
	}
	for v := range seq {
		if err := s.Push(v); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// FromSlice creates a stack of the given kind by pushing the elements of values in order.
// If capacity is [stack.DeriveCapacity], the capacity of the stack is len(values).
func FromSlice(values []any, kind Kind, capacity int) (*Stack, error) {
	if capacity == stack.DeriveCapacity {
		capacity = len(values)
	}
	s, err := New(kind, capacity)
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		if err := s.Push(v); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Kind returns the kind of the stack.
func (s *Stack) Kind() Kind {
	return s.kind
}

// Push converts v to the stack's kind and pushes it onto the stack.
// If the stack is full, it returns an error wrapping [stack.ErrCapacityExceeded].
func (s *Stack) Push(v any) error {
	return s.items.Push(s.kind.Coerce(v))
}

// Pop pops a value from the stack and returns it. If the stack is empty, it returns nil and false.
func (s *Stack) Pop() (any, bool) {
	return s.items.Pop()
}

// Peek returns the top value of the stack without removing it. If the stack is empty, it returns nil and false.
func (s *Stack) Peek() (any, bool) {
	return s.items.Peek()
}

// Clear removes all elements from the stack.
func (s *Stack) Clear() {
	s.items.Clear()
}

// Size returns the number of elements in the stack.
func (s *Stack) Size() int {
	return s.items.Size()
}

// Capacity returns the maximum number of elements that the stack can hold.
func (s *Stack) Capacity() int {
	return s.items.Capacity()
}

// ForEach calls fn for each element of the stack from top to bottom, with index 0 being the top.
func (s *Stack) ForEach(fn func(v any, i int, s *Stack)) {
	s.items.ForEach(func(v any, i int, _ *stack.Stack[any]) {
		fn(v, i, s)
	})
}

// Values returns a single-use iterator over the elements of the stack from top to bottom.
func (s *Stack) Values() iter.Seq[any] {
	return s.items.Values()
}

// Entries returns a single-use iterator over index-value pairs of the stack from top to bottom.
func (s *Stack) Entries() iter.Seq2[int, any] {
	return s.items.Entries()
}

// All is equivalent to [Stack.Values].
func (s *Stack) All() iter.Seq[any] {
	return s.items.All()
}

// ToArray returns a snapshot of the elements of the stack from top to bottom.
func (s *Stack) ToArray() Array {
	return Array{Kind: s.kind, Values: s.items.ToSlice()}
}

func (s *Stack) String() string {
	return fmt.Sprintf("%s(%d/%d)%s", s.kind, s.Size(), s.Capacity(), formatValues(s.items.ToSlice()))
}

// Array is a sequence of values of a single [Kind].
type Array struct {
	Kind   Kind
	Values []any
}

// String formats the array as its kind followed by its values, for example uint8[3, 2, 1].
func (a Array) String() string {
	return a.Kind.String() + formatValues(a.Values)
}

func formatValues(values []any) string {
	var b strings.Builder
	b.WriteString("[")
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(FormatValue(v))
	}
	b.WriteString("]")
	return b.String()
}

// FormatValue formats a value stored in a [Stack].
// Numbers use the shortest representation which round trips, without an exponent for integers below 1e21. NaN and
// infinities are written as NaN, Infinity and -Infinity. Strings are quoted and nil is written as null.
func FormatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(v)
	case float64:
		switch {
		case math.IsNaN(v):
			return "NaN"
		case math.IsInf(v, 1):
			return "Infinity"
		case math.IsInf(v, -1):
			return "-Infinity"
		case v == math.Trunc(v) && math.Abs(v) < 1e21:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
