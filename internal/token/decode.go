package token

import (
	"unicode/utf16"
	"unicode/utf8"
)

// DecodeString unescapes the content span of a KindString token: doubled
// apostrophes collapse to one, and \X\hh, \X2\hhhh...\X0\, \X4\hhhhhhhh...\X0\
// decode to their Unicode code points. Callers should only call this when
// Token.HasEscape is set; otherwise data[span.Start:span.End] can be used
// directly with no allocation.
func DecodeString(data []byte, span Span) string {
	src := data[span.Start:span.End]
	out := make([]byte, 0, len(src))
	i := 0
	for i < len(src) {
		if src[i] == '\'' && i+1 < len(src) && src[i+1] == '\'' {
			out = append(out, '\'')
			i += 2
			continue
		}
		if src[i] == '\\' && i+1 < len(src) && src[i+1] == 'X' {
			if consumed, decoded, ok := decodeXEscape(src[i:]); ok {
				out = append(out, decoded...)
				i += consumed
				continue
			}
		}
		out = append(out, src[i])
		i++
	}
	return string(out)
}

// decodeXEscape decodes one \X\, \X2\...\X0\, or \X4\...\X0\ escape at the
// start of src. Returns the number of bytes consumed and the decoded UTF-8
// text, or ok=false if src does not start with a recognized escape.
func decodeXEscape(src []byte) (consumed int, decoded []byte, ok bool) {
	switch {
	case len(src) >= 4 && src[2] == '\\':
		// \X\hh : one byte, hex pair, straight Latin-1/ASCII code point.
		hex := src[3:]
		if len(hex) < 2 {
			return 0, nil, false
		}
		v, n, valid := parseHexByte(hex)
		if !valid {
			return 0, nil, false
		}
		var buf [4]byte
		w := utf8.EncodeRune(buf[:], rune(v))
		return 3 + n, buf[:w], true
	case len(src) >= 3 && src[2] == '2':
		return decodeXWide(src, 2)
	case len(src) >= 3 && src[2] == '4':
		return decodeXWide(src, 4)
	}
	return 0, nil, false
}

func parseHexByte(hex []byte) (uint32, int, bool) {
	if len(hex) < 2 {
		return 0, 0, false
	}
	var v uint32
	for i := 0; i < 2; i++ {
		d, ok := hexDigit(hex[i])
		if !ok {
			return 0, 0, false
		}
		v = v<<4 | uint32(d)
	}
	return v, 2, true
}

func hexDigit(b byte) (uint32, bool) {
	switch {
	case b >= '0' && b <= '9':
		return uint32(b - '0'), true
	case b >= 'A' && b <= 'F':
		return uint32(b-'A') + 10, true
	case b >= 'a' && b <= 'f':
		return uint32(b-'a') + 10, true
	}
	return 0, false
}

// decodeXWide decodes \X2\hhhh*\X0\ (width=2, UTF-16 code units) or
// \X4\hhhhhhhh*\X0\ (width=4, UTF-32 code points) sequences.
func decodeXWide(src []byte, width int) (consumed int, decoded []byte, ok bool) {
	// src[0:3] == "\Xw\"
	i := 3
	nibbles := width * 2
	var units16 []uint16
	var runes32 []rune
	for {
		if i+3 <= len(src) && src[i] == '\\' && src[i+1] == 'X' && src[i+2] == '0' {
			if i+3 < len(src) && src[i+3] == '\\' {
				i += 4
				break
			}
		}
		if i+nibbles > len(src) {
			return 0, nil, false
		}
		var v uint32
		for k := 0; k < nibbles; k++ {
			d, hok := hexDigit(src[i+k])
			if !hok {
				return 0, nil, false
			}
			v = v<<4 | uint32(d)
		}
		i += nibbles
		if width == 2 {
			units16 = append(units16, uint16(v))
		} else {
			runes32 = append(runes32, rune(v))
		}
	}
	var buf []byte
	if width == 2 {
		runes := utf16.Decode(units16)
		for _, r := range runes {
			var tmp [4]byte
			w := utf8.EncodeRune(tmp[:], r)
			buf = append(buf, tmp[:w]...)
		}
	} else {
		for _, r := range runes32 {
			var tmp [4]byte
			w := utf8.EncodeRune(tmp[:], r)
			buf = append(buf, tmp[:w]...)
		}
	}
	return i, buf, true
}
