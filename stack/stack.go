// Package stack implements a generic LIFO stack with a fixed capacity.
//
// A [Stack] allocates its backing slice once, when it is created, and never grows it. Pushing onto a full stack
// fails with [ErrCapacityExceeded] instead.
//
// Stacks are not safe for concurrent use. Sequences returned by [Stack.Values], [Stack.Entries] and [Stack.All] read
// from the live stack, so mutating the stack while one is in use gives unspecified results.
package stack

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

var (
	// ErrInvalidArgument is returned when a stack is constructed with invalid arguments.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrCapacityExceeded is returned when pushing onto a stack which is full.
	ErrCapacityExceeded = errors.New("capacity exceeded")
)

// DeriveCapacity can be passed as the capacity to [From] and [FromSlice] to size the stack from the length of the
// source.
const DeriveCapacity = -1

// MaxCapacity is the largest capacity a stack can be created with.
const MaxCapacity = 1 << 24

// Stack is a LIFO stack with a fixed capacity.
type Stack[E any] struct {
	items []E // len(items) is the capacity
	size  int
}

// New creates an empty stack which can hold up to capacity elements.
// capacity must be between 0 and [MaxCapacity] inclusive.
func New[E any](capacity int) (*Stack[E], error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w: capacity should be a non-negative integer, got %d", ErrInvalidArgument, capacity)
	}
	if capacity > MaxCapacity {
		return nil, fmt.Errorf("%w: capacity should be at most %d, got %d", ErrInvalidArgument, MaxCapacity, capacity)
	}
	return &Stack[E]{items: make([]E, capacity)}, nil
}

// From creates a stack by pushing the values of seq in order, so that the last value yielded ends up on top.
// The length of a sequence can't be known up front so capacity must be given explicitly.
func From[E any](seq iter.Seq[E], capacity int) (*Stack[E], error) {
	if capacity == DeriveCapacity {
		return nil, fmt.Errorf("%w: capacity can't be derived from a sequence of unknown length", ErrInvalidArgument)
	}
	s, err := New[E](capacity)
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

// FromSlice creates a stack by pushing the elements of x in order, so that the last element ends up on top.
// If capacity is [DeriveCapacity], the capacity of the stack is len(x).
func FromSlice[S ~[]E, E any](x S, capacity int) (*Stack[E], error) {
	if capacity == DeriveCapacity {
		capacity = len(x)
	}
	s, err := New[E](capacity)
	if err != nil {
		return nil, err
	}
	for _, v := range x {
		if err := s.Push(v); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Push pushes a value onto the stack.
// If the stack is full, it returns an error wrapping [ErrCapacityExceeded] and the stack is left unchanged.
func (s *Stack[E]) Push(v E) error {
	if s.size == len(s.items) {
		return fmt.Errorf("%w: can't push onto a full stack of capacity %d", ErrCapacityExceeded, len(s.items))
	}
	s.items[s.size] = v
	s.size++
	return nil
}

// Pop pops a value from the stack and returns it.
// If the stack is empty, it returns the zero value and false.
func (s *Stack[E]) Pop() (E, bool) {
	if s.size == 0 {
		var zero E
		return zero, false
	}
	s.size--
	return s.items[s.size], true
}

// Peek returns the top value of the stack without removing it.
// If the stack is empty, it returns the zero value and false.
func (s *Stack[E]) Peek() (E, bool) {
	if s.size == 0 {
		var zero E
		return zero, false
	}
	return s.items[s.size-1], true
}

// Clear removes all elements from the stack.
// The backing slice is not zeroed.
func (s *Stack[E]) Clear() {
	s.size = 0
}

// Size returns the number of elements in the stack.
func (s *Stack[E]) Size() int {
	return s.size
}

// Capacity returns the maximum number of elements that the stack can hold.
func (s *Stack[E]) Capacity() int {
	return len(s.items)
}

// ForEach calls fn for each element of the stack from top to bottom. The index passed to fn is 0 for the top of the
// stack and increases towards the bottom. s is passed as the last argument and should only be read from.
func (s *Stack[E]) ForEach(fn func(v E, i int, s *Stack[E])) {
	for i := range s.size {
		fn(s.items[s.size-1-i], i, s)
	}
}

// Values returns an iterator over the elements of the stack from top to bottom.
//
// The iterator is single-use: ranging over it a second time resumes after the last element yielded, and once every
// element has been yielded it yields nothing. Call Values again to start a new traversal.
func (s *Stack[E]) Values() iter.Seq[E] {
	next := 0
	return func(yield func(E) bool) {
		for next < s.size {
			v := s.items[s.size-1-next]
			next++
			if !yield(v) {
				return
			}
		}
	}
}

// Entries returns an iterator over index-value pairs of the stack from top to bottom, with index 0 being the top.
// Like [Stack.Values], the iterator is single-use.
func (s *Stack[E]) Entries() iter.Seq2[int, E] {
	next := 0
	return func(yield func(int, E) bool) {
		for next < s.size {
			i := next
			next++
			if !yield(i, s.items[s.size-1-i]) {
				return
			}
		}
	}
}

// All returns an iterator over the elements of the stack from top to bottom. It's equivalent to [Stack.Values].
func (s *Stack[E]) All() iter.Seq[E] {
	return s.Values()
}

// ToSlice returns a new slice containing the elements of the stack from top to bottom.
func (s *Stack[E]) ToSlice() []E {
	x := make([]E, s.size)
	for i := range s.size {
		x[i] = s.items[s.size-1-i]
	}
	return x
}

func (s *Stack[E]) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "stack(%d/%d)[", s.size, len(s.items))
	for i := range s.size {
		fmt.Fprintf(&b, "%v", s.items[s.size-1-i])
		if i < s.size-1 {
			fmt.Fprint(&b, ", ")
		}
	}
	fmt.Fprint(&b, "]")
	return b.String()
}
