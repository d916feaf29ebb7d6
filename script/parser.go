package script

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/marcuscaisey/finitestack/stack"
	"github.com/marcuscaisey/finitestack/typedstack"
)

// Parse parses a single line into a [Command]. It returns nil and no error if the line is blank or only contains a
// comment.
func Parse(line string) (Command, error) {
	tokens, err := lex(line)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, nil
	}
	p := &parser{tokens: tokens}
	return p.parseCommand()
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) parseCommand() (Command, error) {
	name := p.tokens[0]
	p.pos++
	if name.Type != wordToken {
		return nil, fmt.Errorf("expected command, got %s %s", name.Type, name.Lexeme)
	}

	var cmd Command
	var err error
	switch strings.ToLower(name.Lexeme) {
	case "new":
		cmd, err = p.parseNew()
	case "from":
		cmd, err = p.parseFrom()
	case "push":
		cmd, err = p.parsePush()
	case "pop":
		cmd = PopCmd{}
	case "peek":
		cmd = PeekCmd{}
	case "clear":
		cmd = ClearCmd{}
	case "size":
		cmd = SizeCmd{}
	case "capacity":
		cmd = CapacityCmd{}
	case "kind":
		cmd = KindCmd{}
	case "each":
		cmd = EachCmd{}
	case "values":
		cmd = ValuesCmd{}
	case "entries":
		cmd = EntriesCmd{}
	case "array":
		cmd = ArrayCmd{}
	case "help":
		cmd = HelpCmd{}
	default:
		return nil, fmt.Errorf("unknown command %q", name.Lexeme)
	}
	if err != nil {
		return nil, err
	}

	if p.pos < len(p.tokens) {
		return nil, fmt.Errorf("unexpected argument %s to %s", p.tokens[p.pos].Lexeme, strings.ToLower(name.Lexeme))
	}
	return cmd, nil
}

// new <kind> <capacity>
func (p *parser) parseNew() (Command, error) {
	kind, err := p.parseKind()
	if err != nil {
		return nil, err
	}
	if p.atEnd() {
		return nil, fmt.Errorf("%w: capacity is missing", stack.ErrInvalidArgument)
	}
	capacity, err := p.parseCapacity()
	if err != nil {
		return nil, err
	}
	return NewCmd{Kind: kind, Capacity: capacity}, nil
}

// from <kind> [<value>...] [<capacity>]
func (p *parser) parseFrom() (Command, error) {
	kind, err := p.parseKind()
	if err != nil {
		return nil, err
	}

	if p.atEnd() || p.tokens[p.pos].Type != leftBracketToken {
		return nil, errors.New("from expects a list of values in square brackets")
	}
	p.pos++
	values := []any{}
	for {
		if p.atEnd() {
			return nil, errors.New("unterminated list of values, expected ]")
		}
		if p.tokens[p.pos].Type == rightBracketToken {
			p.pos++
			break
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	capacity := stack.DeriveCapacity
	if !p.atEnd() {
		capacity, err = p.parseCapacity()
		if err != nil {
			return nil, err
		}
	}
	return FromCmd{Kind: kind, Values: values, Capacity: capacity}, nil
}

// push <value> [<value>...]
func (p *parser) parsePush() (Command, error) {
	if p.atEnd() {
		return nil, errors.New("push expects at least one value")
	}
	var values []any
	for !p.atEnd() {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return PushCmd{Values: values}, nil
}

func (p *parser) parseKind() (typedstack.Kind, error) {
	if p.atEnd() {
		return typedstack.ParseKind("")
	}
	tok := p.tokens[p.pos]
	p.pos++
	return typedstack.ParseKind(tok.Lexeme)
}

func (p *parser) parseCapacity() (int, error) {
	tok := p.tokens[p.pos]
	p.pos++
	if tok.Type != numberToken {
		return 0, fmt.Errorf("%w: capacity should be a number, got %s", stack.ErrInvalidArgument, tok.Lexeme)
	}
	f := tok.Value.(float64)
	if f < 0 || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: capacity should be a non-negative integer, got %s", stack.ErrInvalidArgument, tok.Lexeme)
	}
	if f > stack.MaxCapacity {
		return 0, fmt.Errorf("%w: capacity should be at most %d, got %s", stack.ErrInvalidArgument, stack.MaxCapacity, tok.Lexeme)
	}
	return int(f), nil
}

// parseValue parses a value to push. Numbers are float64, quoted strings and bare words are strings, true and false
// are booleans and null is nil.
func (p *parser) parseValue() (any, error) {
	tok := p.tokens[p.pos]
	p.pos++
	switch tok.Type {
	case numberToken, stringToken:
		return tok.Value, nil
	case wordToken:
		switch tok.Lexeme {
		case "true":
			return true, nil
		case "false":
			return false, nil
		case "null":
			return nil, nil
		}
		return tok.Lexeme, nil
	}
	return nil, fmt.Errorf("unexpected %s", tok.Lexeme)
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.tokens)
}
