package script

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

const eof = -1

type tokenType int

const (
	wordToken tokenType = iota
	numberToken
	stringToken
	leftBracketToken
	rightBracketToken
)

func (t tokenType) String() string {
	switch t {
	case wordToken:
		return "word"
	case numberToken:
		return "number"
	case stringToken:
		return "string"
	case leftBracketToken:
		return "["
	case rightBracketToken:
		return "]"
	}
	panic(fmt.Sprintf("unexpected token type %d", int(t)))
}

// token is a lexical token of a command line.
type token struct {
	Type   tokenType
	Lexeme string
	Value  any // float64 for numbers, unquoted string for strings
}

// lexer splits a single line into tokens. A // outside of a string starts a comment which runs to the end of the line.
type lexer struct {
	src string

	ch         rune // character currently being considered
	offset     int  // offset of character currently being considered
	readOffset int  // offset of next character to be read
}

func lex(line string) ([]token, error) {
	l := &lexer{src: line}
	l.next()

	var tokens []token
	for {
		l.skipWhitespace()
		if l.ch == eof || (l.ch == '/' && l.peek() == '/') {
			return tokens, nil
		}
		tok, err := l.lexToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
}

func (l *lexer) lexToken() (token, error) {
	start := l.offset
	var tok token
	switch {
	case l.ch == '[':
		tok.Type = leftBracketToken
		l.next()
	case l.ch == ']':
		tok.Type = rightBracketToken
		l.next()
	case l.ch == '"':
		tok.Type = stringToken
		if err := l.consumeString(); err != nil {
			return token{}, err
		}
		s, err := strconv.Unquote(l.src[start:l.offset])
		if err != nil {
			return token{}, fmt.Errorf("invalid string literal %s", l.src[start:l.offset])
		}
		tok.Value = s
	default:
		for l.ch != eof && !unicode.IsSpace(l.ch) && l.ch != '[' && l.ch != ']' && l.ch != '"' &&
			!(l.ch == '/' && l.peek() == '/') {
			l.next()
		}
		tok.Type = wordToken
		f, err := strconv.ParseFloat(l.src[start:l.offset], 64)
		if err == nil || errors.Is(err, strconv.ErrRange) {
			tok.Type = numberToken
			tok.Value = f
		}
	}
	tok.Lexeme = l.src[start:l.offset]
	return tok, nil
}

func (l *lexer) consumeString() error {
	l.next()
	for l.ch != '"' {
		switch l.ch {
		case eof:
			return errors.New("unterminated string literal")
		case '\\':
			l.next()
			if l.ch == eof {
				return errors.New("unterminated string literal")
			}
		}
		l.next()
	}
	l.next()
	return nil
}

func (l *lexer) skipWhitespace() {
	for unicode.IsSpace(l.ch) {
		l.next()
	}
}

// next reads the next character into l.ch. l.ch is set to eof at the end of the line.
func (l *lexer) next() {
	if l.readOffset >= len(l.src) {
		l.offset = len(l.src)
		l.ch = eof
		return
	}
	r, size := utf8.DecodeRuneInString(l.src[l.readOffset:])
	l.ch = r
	l.offset = l.readOffset
	l.readOffset += size
}

// peek returns the character after l.ch without advancing the lexer.
func (l *lexer) peek() rune {
	if l.readOffset >= len(l.src) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.readOffset:])
	return r
}
