// Package script implements a small line-oriented command language for driving a [typedstack.Stack].
//
// Each line holds one command, such as
//
//	new uint8 3
//	push 1 2 3
//	pop
//	from array ["a" "b" "c"] 10
//
// A // outside of a string starts a comment which runs to the end of the line.
package script

import (
	"github.com/marcuscaisey/finitestack/typedstack"
)

// Command is the interface which all commands implement.
//
//gosumtype:decl Command
type Command interface {
	isCommand()
}

type command struct{}

func (command) isCommand() {}

// NewCmd creates a new empty stack, such as
//
//	new uint8 3
type NewCmd struct {
	Kind     typedstack.Kind
	Capacity int
	command
}

// FromCmd creates a new stack from a list of values, such as
//
//	from array [1 2 3] 45
//
// Capacity is [stack.DeriveCapacity] if it was omitted.
type FromCmd struct {
	Kind     typedstack.Kind
	Values   []any
	Capacity int
	command
}

// PushCmd pushes one or more values onto the stack, such as
//
//	push 1 "two" true
type PushCmd struct {
	Values []any
	command
}

// PopCmd pops the top value off the stack and prints it.
type PopCmd struct{ command }

// PeekCmd prints the top value of the stack.
type PeekCmd struct{ command }

// ClearCmd removes all values from the stack.
type ClearCmd struct{ command }

// SizeCmd prints the number of values in the stack.
type SizeCmd struct{ command }

// CapacityCmd prints the capacity of the stack.
type CapacityCmd struct{ command }

// KindCmd prints the buffer kind of the stack.
type KindCmd struct{ command }

// EachCmd prints the index and value of each element of the stack from top to bottom.
type EachCmd struct{ command }

// ValuesCmd prints each value of the stack from top to bottom.
type ValuesCmd struct{ command }

// EntriesCmd prints each index-value pair of the stack from top to bottom.
type EntriesCmd struct{ command }

// ArrayCmd prints a snapshot of the stack as an array.
type ArrayCmd struct{ command }

// HelpCmd prints a summary of the available commands.
type HelpCmd struct{ command }
