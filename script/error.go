package script

import (
	"strings"

	"github.com/fatih/color"
)

// Error describes an error that occurred while running a line of a script.
type Error struct {
	File string // empty if the line didn't come from a file
	Line int
	Err  error
}

// Error formats the error as the position of the line followed by the message, for example
//
//	test.fst:2: error: capacity exceeded: can't push onto a full stack of capacity 1
//
// The position is omitted if File is empty.
func (e *Error) Error() string {
	bold := color.New(color.Bold)
	red := color.New(color.Bold, color.FgRed)
	var b strings.Builder
	if e.File != "" {
		bold.Fprintf(&b, "%s:%d: ", e.File, e.Line)
	}
	red.Fprint(&b, "error")
	bold.Fprintf(&b, ": %s", e.Err)
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errors is a list of [*Error]s.
type Errors []*Error

// Add adds a [*Error] to the list of errors.
func (e *Errors) Add(file string, line int, err error) {
	*e = append(*e, &Error{File: file, Line: line, Err: err})
}

// Error formats the errors by joining their messages with newlines.
func (e Errors) Error() string {
	if len(e) == 0 {
		panic("Error called on empty error list")
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

func (e Errors) Unwrap() []error {
	errs := make([]error, len(e))
	for i, err := range e {
		errs[i] = err
	}
	return errs
}

// Err returns the error list unchanged if its non-empty, otherwise nil.
// This should be used to return an [Errors] from a function as an [error] so that it becomes an untyped nil if there
// are no errors.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

