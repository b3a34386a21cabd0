package stepindex

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ifc-lite/ifclite/errors"
	"github.com/ifc-lite/ifclite/internal/token"
)

// SchemaVersion identifies the IFC EXPRESS schema a file declares.
type SchemaVersion string

const (
	SchemaIFC2X3   SchemaVersion = "IFC2X3"
	SchemaIFC4     SchemaVersion = "IFC4"
	SchemaIFC4X3   SchemaVersion = "IFC4X3"
	SchemaUnknown  SchemaVersion = ""
)

// Header carries the parsed ISO 10303-21 HEADER section.
type Header struct {
	Description  []string
	ImplLevel    string
	FileName     string
	Timestamp    string
	Author       []string
	Organization []string
	Application  string
	Schema       SchemaVersion
	SchemaRaw    string
}

// parseHeader extracts FILE_DESCRIPTION/FILE_NAME/FILE_SCHEMA from the
// HEADER;...ENDSEC; section preceding DATA;.
func parseHeader(data []byte) (Header, uint32, error) {
	headerStart := bytes.Index(data, []byte("HEADER;"))
	if headerStart < 0 {
		return Header{}, 0, errors.DiagnosticList{errors.NewDiagnostic(errors.ErrMissingHeader, "no HEADER; section")}
	}
	endSec := bytes.Index(data[headerStart:], []byte("ENDSEC;"))
	if endSec < 0 {
		return Header{}, 0, errors.DiagnosticList{errors.NewDiagnostic(errors.ErrMissingHeader, "unterminated HEADER section")}
	}
	section := data[headerStart : headerStart+endSec]

	var h Header
	if args, ok := extractCallArgs(section, "FILE_DESCRIPTION"); ok {
		vals := parseArgList(section, args)
		if len(vals) > 0 {
			h.Description = vals[0]
		}
		if len(vals) > 1 && len(vals[1]) > 0 {
			h.ImplLevel = vals[1][0]
		}
	}
	if args, ok := extractCallArgs(section, "FILE_NAME"); ok {
		vals := parseArgList(section, args)
		if len(vals) > 0 && len(vals[0]) > 0 {
			h.FileName = vals[0][0]
		}
		if len(vals) > 1 && len(vals[1]) > 0 {
			h.Timestamp = vals[1][0]
		}
		if len(vals) > 2 {
			h.Author = vals[2]
		}
		if len(vals) > 3 {
			h.Organization = vals[3]
		}
		if len(vals) > 4 && len(vals[4]) > 0 {
			h.Application = vals[4][0]
		}
	}
	if args, ok := extractCallArgs(section, "FILE_SCHEMA"); ok {
		vals := parseArgList(section, args)
		if len(vals) > 0 && len(vals[0]) > 0 {
			h.SchemaRaw = vals[0][0]
			h.Schema = normalizeSchema(h.SchemaRaw)
		}
	}
	if h.Schema == SchemaUnknown {
		return h, uint32(headerStart + endSec + len("ENDSEC;")), errors.DiagnosticList{
			errors.NewDiagnosticf(errors.ErrUnsupportedSchema, "unrecognized or missing FILE_SCHEMA: %q", h.SchemaRaw),
		}
	}
	return h, uint32(headerStart + endSec + len("ENDSEC;")), nil
}

func normalizeSchema(raw string) SchemaVersion {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "IFC2X3":
		return SchemaIFC2X3
	case "IFC4":
		return SchemaIFC4
	case "IFC4X3", "IFC4X3_ADD2", "IFC4X3_RC1", "IFC4X3_RC2", "IFC4X3_RC3", "IFC4X3_RC4":
		return SchemaIFC4X3
	default:
		return SchemaUnknown
	}
}

// extractCallArgs locates `name(` in section and returns the byte range of
// the balanced-parenthesis argument list (excluding the outer parens).
func extractCallArgs(section []byte, name string) ([2]int, bool) {
	idx := bytes.Index(section, []byte(name+"("))
	if idx < 0 {
		return [2]int{}, false
	}
	start := idx + len(name) + 1
	depth := 1
	i := start
	for i < len(section) && depth > 0 {
		switch section[i] {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth == 0 {
			break
		}
		i++
	}
	if depth != 0 {
		return [2]int{}, false
	}
	return [2]int{start, i}, true
}

// parseArgList tokenizes a top-level comma-separated argument list, where
// each argument may itself be a parenthesized list of strings; it returns
// one []string per top-level argument (strings inside nested lists, or a
// single string for a scalar argument).
func parseArgList(section []byte, rng [2]int) [][]string {
	sub := section[rng[0]:rng[1]]
	l := token.NewLexer(sub)

	var result [][]string
	var cur []string
	depth := 0
	for {
		tok, err := l.Next()
		if err != nil || tok.Kind == token.KindEOF {
			break
		}
		switch tok.Kind {
		case token.KindLParen:
			depth++
		case token.KindRParen:
			depth--
		case token.KindComma:
			if depth == 0 {
				result = append(result, cur)
				cur = nil
			}
		case token.KindString:
			var s string
			if tok.HasEscape {
				s = token.DecodeString(sub, tok.Text)
			} else {
				s = string(sub[tok.Text.Start:tok.Text.End])
			}
			cur = append(cur, s)
		}
	}
	result = append(result, cur)
	return result
}

func (h Header) String() string {
	return fmt.Sprintf("Header{schema=%s file=%s}", h.Schema, h.FileName)
}
