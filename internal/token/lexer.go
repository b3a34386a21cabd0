package token

import (
	"fmt"
	"strconv"

	"github.com/ifc-lite/ifclite/errors"
)

// Lexer scans a byte slice into Tokens on demand. It never allocates on the
// fast path; callers that need decoded string content call Decode.
type Lexer struct {
	data []byte
	pos  uint32
	line uint32
}

// NewLexer returns a Lexer positioned at the start of data.
func NewLexer(data []byte) *Lexer {
	return &Lexer{data: data, line: 1}
}

// NewLexerAt returns a Lexer positioned at byte offset start, with the given
// starting line number (used when retokenizing a single entity's argument
// list, where the caller already knows the line from the index).
func NewLexerAt(data []byte, start uint32, line uint32) *Lexer {
	return &Lexer{data: data, pos: start, line: line}
}

// Pos returns the current byte offset.
func (l *Lexer) Pos() uint32 { return l.pos }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(b byte) bool {
	return (b >= 'A' && b <= 'Z') || b == '_'
}

func isIdentByte(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

// skipTrivia skips whitespace and /* ... */ block comments, tracking lines.
func (l *Lexer) skipTrivia() error {
	for l.pos < uint32(len(l.data)) {
		b := l.data[l.pos]
		switch {
		case b == '\n':
			l.line++
			l.pos++
		case b == ' ' || b == '\t' || b == '\r':
			l.pos++
		case b == '/' && l.pos+1 < uint32(len(l.data)) && l.data[l.pos+1] == '*':
			start := l.pos
			l.pos += 2
			closed := false
			for l.pos+1 < uint32(len(l.data)) {
				if l.data[l.pos] == '\n' {
					l.line++
				}
				if l.data[l.pos] == '*' && l.data[l.pos+1] == '/' {
					l.pos += 2
					closed = true
					break
				}
				l.pos++
			}
			if !closed {
				return malformed(start, "unterminated block comment")
			}
		default:
			return nil
		}
	}
	return nil
}

func malformed(pos uint32, reason string) error {
	d := errors.NewDiagnostic(errors.ErrMalformed, reason).AtPosition(pos)
	return errors.DiagnosticList{d}
}

// Next scans and returns the next token. At end of input it returns a
// KindEOF token and a nil error.
func (l *Lexer) Next() (Token, error) {
	if err := l.skipTrivia(); err != nil {
		return Token{}, err
	}
	n := uint32(len(l.data))
	if l.pos >= n {
		return Token{Kind: KindEOF, Span: Span{l.pos, l.pos}, Line: l.line}, nil
	}

	start := l.pos
	line := l.line
	b := l.data[l.pos]

	switch b {
	case '(':
		l.pos++
		return Token{Kind: KindLParen, Span: Span{start, l.pos}, Line: line}, nil
	case ')':
		l.pos++
		return Token{Kind: KindRParen, Span: Span{start, l.pos}, Line: line}, nil
	case ',':
		l.pos++
		return Token{Kind: KindComma, Span: Span{start, l.pos}, Line: line}, nil
	case ';':
		l.pos++
		return Token{Kind: KindSemicolon, Span: Span{start, l.pos}, Line: line}, nil
	case '$':
		l.pos++
		return Token{Kind: KindNull, Span: Span{start, l.pos}, Line: line}, nil
	case '*':
		l.pos++
		return Token{Kind: KindDerived, Span: Span{start, l.pos}, Line: line}, nil
	case '#':
		return l.scanRef(start, line)
	case '\'':
		return l.scanString(start, line)
	case '.':
		return l.scanEnum(start, line)
	}

	if b == '+' || b == '-' || isDigit(b) {
		return l.scanNumber(start, line)
	}
	if isIdentStart(b) {
		return l.scanIdent(start, line)
	}

	return Token{}, malformed(start, fmt.Sprintf("unexpected byte %q", b))
}

func (l *Lexer) scanRef(start, line uint32) (Token, error) {
	l.pos++ // '#'
	digitsStart := l.pos
	for l.pos < uint32(len(l.data)) && isDigit(l.data[l.pos]) {
		l.pos++
	}
	if l.pos == digitsStart {
		return Token{}, malformed(start, "'#' not followed by digits")
	}
	val, err := strconv.ParseUint(string(l.data[digitsStart:l.pos]), 10, 32)
	if err != nil {
		return Token{}, malformed(start, "entity reference overflow")
	}
	return Token{Kind: KindRef, Span: Span{start, l.pos}, RefID: uint32(val), Line: line}, nil
}

func (l *Lexer) scanIdent(start, line uint32) (Token, error) {
	l.pos++
	for l.pos < uint32(len(l.data)) && isIdentByte(l.data[l.pos]) {
		l.pos++
	}
	return Token{Kind: KindIdent, Span: Span{start, l.pos}, Text: Span{start, l.pos}, Line: line}, nil
}

func (l *Lexer) scanEnum(start, line uint32) (Token, error) {
	l.pos++ // opening '.'
	textStart := l.pos
	for l.pos < uint32(len(l.data)) && l.data[l.pos] != '.' {
		c := l.data[l.pos]
		if c == '\n' || c == ';' || c == '(' || c == ')' {
			return Token{}, malformed(start, "unterminated enumeration literal")
		}
		l.pos++
	}
	if l.pos >= uint32(len(l.data)) {
		return Token{}, malformed(start, "unterminated enumeration literal")
	}
	textEnd := l.pos
	l.pos++ // closing '.'
	return Token{Kind: KindEnum, Span: Span{start, l.pos}, Text: Span{textStart, textEnd}, Line: line}, nil
}

func (l *Lexer) scanNumber(start, line uint32) (Token, error) {
	n := uint32(len(l.data))
	if l.data[l.pos] == '+' || l.data[l.pos] == '-' {
		l.pos++
	}
	digitsBefore := l.pos
	for l.pos < n && isDigit(l.data[l.pos]) {
		l.pos++
	}
	if l.pos == digitsBefore {
		return Token{}, malformed(start, "malformed number: no digits")
	}
	isReal := false
	if l.pos < n && l.data[l.pos] == '.' {
		isReal = true
		l.pos++
		for l.pos < n && isDigit(l.data[l.pos]) {
			l.pos++
		}
	}
	if l.pos < n && (l.data[l.pos] == 'e' || l.data[l.pos] == 'E') {
		save := l.pos
		l.pos++
		if l.pos < n && (l.data[l.pos] == '+' || l.data[l.pos] == '-') {
			l.pos++
		}
		expStart := l.pos
		for l.pos < n && isDigit(l.data[l.pos]) {
			l.pos++
		}
		if l.pos == expStart {
			l.pos = save // not an exponent after all; leave 'e' for caller (shouldn't happen in valid STEP)
		} else {
			isReal = true
		}
	}

	lit := string(l.data[start:l.pos])
	if isReal {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return Token{}, malformed(start, "malformed real literal: "+lit)
		}
		return Token{Kind: KindReal, Span: Span{start, l.pos}, RealVal: f, Line: line}, nil
	}
	iv, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return Token{}, malformed(start, "malformed integer literal: "+lit)
	}
	return Token{Kind: KindInt, Span: Span{start, l.pos}, IntVal: iv, Line: line}, nil
}

func (l *Lexer) scanString(start, line uint32) (Token, error) {
	l.pos++ // opening quote
	contentStart := l.pos
	hasEscape := false
	n := uint32(len(l.data))
	for l.pos < n {
		c := l.data[l.pos]
		if c == '\n' {
			l.line++
		}
		if c == '\\' && l.pos+1 < n && l.data[l.pos+1] == 'X' {
			hasEscape = true
		}
		if c == '\'' {
			if l.pos+1 < n && l.data[l.pos+1] == '\'' {
				hasEscape = true
				l.pos += 2
				continue
			}
			contentEnd := l.pos
			l.pos++ // closing quote
			return Token{
				Kind: KindString, Span: Span{start, l.pos},
				Text: Span{contentStart, contentEnd}, HasEscape: hasEscape, Line: line,
			}, nil
		}
		l.pos++
	}
	return Token{}, malformed(start, "unterminated string literal")
}
