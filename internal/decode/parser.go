package decode

import (
	"fmt"
	"strings"

	"github.com/ifc-lite/ifclite/errors"
	"github.com/ifc-lite/ifclite/internal/token"
)

type parser struct {
	lex    *token.Lexer
	data   []byte
	peeked *token.Token
}

func newParser(data []byte, start, end, line uint32) *parser {
	return &parser{lex: token.NewLexerAt(data[:end], start, line), data: data}
}

func (p *parser) next() (token.Token, error) {
	if p.peeked != nil {
		t := *p.peeked
		p.peeked = nil
		return t, nil
	}
	return p.lex.Next()
}

func (p *parser) peek() (token.Token, error) {
	if p.peeked == nil {
		t, err := p.lex.Next()
		if err != nil {
			return token.Token{}, err
		}
		p.peeked = &t
	}
	return *p.peeked, nil
}

// parseTopLevelArgs parses a comma-separated list of values with no
// enclosing parentheses (the arguments of one entity).
func parseTopLevelArgs(data []byte, start, end, line uint32) ([]Value, error) {
	p := newParser(data, start, end, line)
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == token.KindEOF {
		return nil, nil
	}
	var out []Value
	for {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case token.KindComma:
			continue
		case token.KindEOF:
			return out, nil
		default:
			return nil, malformed(tok.Span.Start, "expected ',' between arguments")
		}
	}
}

func (p *parser) parseValue() (Value, error) {
	tok, err := p.next()
	if err != nil {
		return Value{}, err
	}
	switch tok.Kind {
	case token.KindInt:
		return Value{Kind: VInteger, Int: tok.IntVal}, nil
	case token.KindReal:
		return Value{Kind: VReal, Real: tok.RealVal}, nil
	case token.KindString:
		var s string
		if tok.HasEscape {
			s = token.DecodeString(p.data, tok.Text)
		} else {
			s = string(p.data[tok.Text.Start:tok.Text.End])
		}
		return Value{Kind: VString, Str: s}, nil
	case token.KindEnum:
		return Value{Kind: VEnum, Enum: string(p.data[tok.Text.Start:tok.Text.End])}, nil
	case token.KindRef:
		return Value{Kind: VRef, Ref: tok.RefID}, nil
	case token.KindNull:
		return Value{Kind: VNull}, nil
	case token.KindDerived:
		return Value{Kind: VDerived}, nil
	case token.KindLParen:
		items, err := p.parseListBody()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: VList, List: items}, nil
	case token.KindIdent:
		name := strings.ToUpper(string(p.data[tok.Text.Start:tok.Text.End]))
		open, err := p.next()
		if err != nil {
			return Value{}, err
		}
		if open.Kind != token.KindLParen {
			return Value{}, malformed(open.Span.Start, "expected '(' after typed value wrapper "+name)
		}
		items, err := p.parseListBody()
		if err != nil {
			return Value{}, err
		}
		v := Value{Kind: VTyped, Wrapper: name}
		switch len(items) {
		case 0:
			v.Inner = &Value{Kind: VNull}
		case 1:
			v.Inner = &items[0]
		default:
			v.Inner = &Value{Kind: VList, List: items}
		}
		return v, nil
	default:
		return Value{}, malformed(tok.Span.Start, fmt.Sprintf("unexpected token kind %v in argument list", tok.Kind))
	}
}

// parseListBody parses comma-separated values up to and including the
// closing ')'.
func (p *parser) parseListBody() ([]Value, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == token.KindRParen {
		_, _ = p.next()
		return nil, nil
	}
	var out []Value
	for {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case token.KindComma:
			continue
		case token.KindRParen:
			return out, nil
		default:
			return nil, malformed(tok.Span.Start, "expected ',' or ')' in list")
		}
	}
}

func malformed(pos uint32, reason string) error {
	return errors.DiagnosticList{errors.NewDiagnostic(errors.ErrMalformed, reason).AtPosition(pos)}
}
