// Package stepindex implements the entity indexer (spec component B): one
// forward pass over the raw STEP bytes producing an immutable express-id to
// (type, byte range, line) index, plus the parsed header.
package stepindex

import (
	"bytes"
	"strings"

	"github.com/ifc-lite/ifclite/errors"
)

// EntityRef locates one `#id = TYPE(args);` entity within the byte window.
type EntityRef struct {
	ExpressID uint32
	TypeUpper string
	ByteStart uint32 // start of "#id"
	ByteEnd   uint32 // just past the closing ')'
	ArgsStart uint32 // just past the opening '(' of the argument list
	ArgsEnd   uint32 // at the matching ')'
	Line      uint32
}

// Index is the immutable result of one indexing pass.
type Index struct {
	Data    []byte
	Header  Header
	ByID    map[uint32]EntityRef
	ByType  map[string][]uint32 // insertion (textual) order
	Order   []uint32            // all express ids in textual order
}

// Build performs a single forward pass over data, producing the header and
// entity index. It never allocates per-entity beyond two appends per the
// runtime guarantee in spec §4.B.
func Build(data []byte) (*Index, error) {
	header, dataSecStart, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	dataIdx := bytes.Index(data[dataSecStart:], []byte("DATA;"))
	if dataIdx < 0 {
		return nil, errors.DiagnosticList{errors.NewDiagnostic(errors.ErrMissingHeader, "no DATA; section")}
	}
	pos := dataSecStart + uint32(dataIdx) + uint32(len("DATA;"))

	idx := &Index{
		Data:   data,
		Header: header,
		ByID:   make(map[uint32]EntityRef),
		ByType: make(map[string][]uint32),
	}

	line := countLines(data[:pos]) + 1
	n := uint32(len(data))

	for {
		var advanced uint32
		pos, advanced, line = skipTrivia(data, pos, line)
		_ = advanced
		if pos >= n {
			return nil, errors.DiagnosticList{errors.NewDiagnostic(errors.ErrMissingHeader, "unterminated DATA section")}
		}
		if data[pos] != '#' {
			// ENDSEC; or any other non-entity token ends the data section scan.
			break
		}

		ref, next, nextLine, err := scanEntity(data, pos, line)
		if err != nil {
			return nil, err
		}
		if existing, dup := idx.ByID[ref.ExpressID]; dup {
			return nil, errors.DiagnosticList{errors.NewDiagnosticf(errors.ErrDuplicateID,
				"duplicate express id #%d at lines %d and %d", ref.ExpressID, existing.Line, ref.Line)}
		}
		idx.ByID[ref.ExpressID] = ref
		idx.ByType[ref.TypeUpper] = append(idx.ByType[ref.TypeUpper], ref.ExpressID)
		idx.Order = append(idx.Order, ref.ExpressID)

		pos = next
		line = nextLine
	}

	return idx, nil
}

func countLines(b []byte) uint32 {
	return uint32(bytes.Count(b, []byte("\n")))
}

// skipTrivia advances past whitespace and /* */ comments, tracking line
// numbers, without invoking the token lexer (the indexer works at a coarser
// grain than attribute decoding).
func skipTrivia(data []byte, pos uint32, line uint32) (newPos uint32, advanced uint32, newLine uint32) {
	start := pos
	n := uint32(len(data))
	for pos < n {
		switch data[pos] {
		case '\n':
			line++
			pos++
		case ' ', '\t', '\r':
			pos++
		case '/':
			if pos+1 < n && data[pos+1] == '*' {
				pos += 2
				for pos+1 < n && !(data[pos] == '*' && data[pos+1] == '/') {
					if data[pos] == '\n' {
						line++
					}
					pos++
				}
				pos += 2
			} else {
				return pos, pos - start, line
			}
		default:
			return pos, pos - start, line
		}
	}
	return pos, pos - start, line
}

// scanEntity scans one `#id = TYPE ( args ) ;` starting at data[pos]=='#'.
func scanEntity(data []byte, pos uint32, line uint32) (EntityRef, uint32, uint32, error) {
	start := pos
	n := uint32(len(data))
	pos++ // '#'
	digitsStart := pos
	for pos < n && data[pos] >= '0' && data[pos] <= '9' {
		pos++
	}
	if pos == digitsStart {
		return EntityRef{}, 0, 0, malformedAt(start, "'#' not followed by digits")
	}
	id, ok := parseUintFast(data[digitsStart:pos])
	if !ok {
		return EntityRef{}, 0, 0, malformedAt(start, "express id overflow")
	}

	pos, _, line = skipTrivia(data, pos, line)
	if pos >= n || data[pos] != '=' {
		return EntityRef{}, 0, 0, malformedAt(pos, "expected '=' after express id")
	}
	pos++
	pos, _, line = skipTrivia(data, pos, line)

	typeStart := pos
	for pos < n && isTypeByte(data[pos]) {
		pos++
	}
	if pos == typeStart {
		return EntityRef{}, 0, 0, malformedAt(pos, "expected type name")
	}
	typeUpper := strings.ToUpper(string(data[typeStart:pos]))

	pos, _, line = skipTrivia(data, pos, line)
	if pos >= n || data[pos] != '(' {
		return EntityRef{}, 0, 0, malformedAt(pos, "expected '(' after type name")
	}

	argsStart := pos + 1
	closeParen, newLine, err := findMatchingParen(data, pos, line)
	if err != nil {
		return EntityRef{}, 0, 0, err
	}
	argsEnd := closeParen
	pos = closeParen + 1
	byteEnd := pos
	line = newLine

	pos, _, line = skipTrivia(data, pos, line)
	if pos >= n || data[pos] != ';' {
		return EntityRef{}, 0, 0, malformedAt(pos, "expected ';' after entity")
	}
	pos++ // ';'

	return EntityRef{
		ExpressID: id,
		TypeUpper: typeUpper,
		ByteStart: start,
		ByteEnd:   byteEnd,
		ArgsStart: argsStart,
		ArgsEnd:   argsEnd,
		Line:      line,
	}, pos, line, nil
}

func isTypeByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') || b == '_'
}

// findMatchingParen returns the index of the ')' matching the '(' at
// data[open], tracking nested parens and skipping string literals so that
// '(' ')' or ';' inside a quoted string never affect depth.
func findMatchingParen(data []byte, open uint32, line uint32) (uint32, uint32, error) {
	n := uint32(len(data))
	depth := 0
	pos := open
	for pos < n {
		c := data[pos]
		switch {
		case c == '\n':
			line++
			pos++
		case c == '\'':
			pos++
			for pos < n {
				if data[pos] == '\n' {
					line++
				}
				if data[pos] == '\'' {
					if pos+1 < n && data[pos+1] == '\'' {
						pos += 2
						continue
					}
					pos++
					break
				}
				pos++
			}
		case c == '(':
			depth++
			pos++
		case c == ')':
			depth--
			if depth == 0 {
				return pos, line, nil
			}
			pos++
		default:
			pos++
		}
	}
	return 0, 0, malformedAt(open, "unbalanced parentheses in entity argument list")
}

func parseUintFast(b []byte) (uint32, bool) {
	var v uint64
	for _, c := range b {
		v = v*10 + uint64(c-'0')
		if v > 0xFFFFFFFF {
			return 0, false
		}
	}
	return uint32(v), true
}

func malformedAt(pos uint32, reason string) error {
	return errors.DiagnosticList{errors.NewDiagnostic(errors.ErrMalformed, reason).AtPosition(pos)}
}

// Lookup returns the EntityRef for id and whether it was found.
func (idx *Index) Lookup(id uint32) (EntityRef, bool) {
	ref, ok := idx.ByID[id]
	return ref, ok
}

// IDsOfType returns the express ids of the given upper-cased type name, in
// textual order.
func (idx *Index) IDsOfType(typeUpper string) []uint32 {
	return idx.ByType[typeUpper]
}

// Count returns the number of indexed entities.
func (idx *Index) Count() int {
	return len(idx.Order)
}
