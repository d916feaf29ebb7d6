package script

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/mattn/go-runewidth"

	"github.com/marcuscaisey/finitestack/typedstack"
)

var errNoStack = errors.New("no stack: create one with new or from")

// Session executes commands against a single stack, writing their output to an [io.Writer].
// The stack is replaced each time a [NewCmd] or [FromCmd] is executed.
type Session struct {
	stack *typedstack.Stack
	out   io.Writer
}

// NewSession returns a session without a stack which writes the output of commands to out.
func NewSession(out io.Writer) *Session {
	return &Session{out: out}
}

// Stack returns the current stack or nil if one hasn't been created yet.
func (s *Session) Stack() *typedstack.Stack {
	return s.stack
}

// Exec executes a command. A nil command, which [Parse] returns for a blank line, does nothing.
func (s *Session) Exec(cmd Command) error {
	if cmd == nil {
		return nil
	}
	if needsStack(cmd) && s.stack == nil {
		return errNoStack
	}

	switch cmd := cmd.(type) {
	case NewCmd:
		return s.execNew(cmd)
	case FromCmd:
		return s.execFrom(cmd)
	case PushCmd:
		return s.execPush(cmd)
	case PopCmd:
		s.printOptional(s.stack.Pop())
	case PeekCmd:
		s.printOptional(s.stack.Peek())
	case ClearCmd:
		s.stack.Clear()
	case SizeCmd:
		fmt.Fprintln(s.out, s.stack.Size())
	case CapacityCmd:
		fmt.Fprintln(s.out, s.stack.Capacity())
	case KindCmd:
		fmt.Fprintln(s.out, s.stack.Kind())
	case EachCmd:
		s.execEach()
	case ValuesCmd:
		for v := range s.stack.Values() {
			fmt.Fprintln(s.out, typedstack.FormatValue(v))
		}
	case EntriesCmd:
		for i, v := range s.stack.Entries() {
			fmt.Fprintf(s.out, "(%d, %s)\n", i, typedstack.FormatValue(v))
		}
	case ArrayCmd:
		fmt.Fprintln(s.out, s.stack.ToArray())
	case HelpCmd:
		printHelp(s.out)
	}
	return nil
}

func needsStack(cmd Command) bool {
	switch cmd.(type) {
	case NewCmd, FromCmd, HelpCmd:
		return false
	case PushCmd, PopCmd, PeekCmd, ClearCmd, SizeCmd, CapacityCmd, KindCmd, EachCmd, ValuesCmd, EntriesCmd, ArrayCmd:
		return true
	}
	panic(fmt.Sprintf("unexpected command %T", cmd))
}

func (s *Session) execNew(cmd NewCmd) error {
	st, err := typedstack.New(cmd.Kind, cmd.Capacity)
	if err != nil {
		return err
	}
	s.stack = st
	return nil
}

func (s *Session) execFrom(cmd FromCmd) error {
	st, err := typedstack.FromSlice(cmd.Values, cmd.Kind, cmd.Capacity)
	if err != nil {
		return err
	}
	s.stack = st
	return nil
}

// execPush pushes values from left to right, stopping at the first one which can't be pushed.
func (s *Session) execPush(cmd PushCmd) error {
	for _, v := range cmd.Values {
		if err := s.stack.Push(v); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) printOptional(v any, ok bool) {
	if !ok {
		fmt.Fprintln(s.out, "none")
		return
	}
	fmt.Fprintln(s.out, typedstack.FormatValue(v))
}

func (s *Session) execEach() {
	var indexes, values []string
	indexWidth := 0
	s.stack.ForEach(func(v any, i int, _ *typedstack.Stack) {
		index := strconv.Itoa(i)
		indexes = append(indexes, index)
		indexWidth = max(indexWidth, runewidth.StringWidth(index))
		values = append(values, typedstack.FormatValue(v))
	})
	for i := range indexes {
		fmt.Fprintln(s.out, runewidth.FillLeft(indexes[i], indexWidth), "", values[i])
	}
}
