package token

import "testing"

func scanAll(t *testing.T, src string) []Token {
	t.Helper()
	l := NewLexer([]byte(src))
	var toks []Token
	for {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("Next() error: %v", err)
		}
		if tok.Kind == KindEOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

func TestScanPrimitives(t *testing.T) {
	toks := scanAll(t, "#12,3.5,-7,.T.,'hi',$,*,IFCLABEL")
	wantKinds := []Kind{KindRef, KindComma, KindReal, KindComma, KindInt, KindComma,
		KindEnum, KindComma, KindString, KindComma, KindNull, KindComma, KindDerived, KindComma, KindIdent}
	if len(toks) != len(wantKinds) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(wantKinds))
	}
	for i, k := range wantKinds {
		if toks[i].Kind != k {
			t.Fatalf("token %d kind = %v, want %v", i, toks[i].Kind, k)
		}
	}
	if toks[0].RefID != 12 {
		t.Fatalf("RefID = %d, want 12", toks[0].RefID)
	}
	if toks[2].RealVal != 3.5 {
		t.Fatalf("RealVal = %v, want 3.5", toks[2].RealVal)
	}
	if toks[4].IntVal != -7 {
		t.Fatalf("IntVal = %d, want -7", toks[4].IntVal)
	}
}

func TestIntVsRealDistinction(t *testing.T) {
	cases := map[string]Kind{
		"3":     KindInt,
		"3.0":   KindReal,
		"3e2":   KindReal,
		"3.5E2": KindReal,
		"-4":    KindInt,
	}
	for src, want := range cases {
		toks := scanAll(t, src)
		if len(toks) != 1 || toks[0].Kind != want {
			t.Fatalf("scan(%q) = %+v, want single token of kind %v", src, toks, want)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	data := []byte("'it''s \\X\\41 fine'")
	l := NewLexer(data)
	tok, err := l.Next()
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if tok.Kind != KindString {
		t.Fatalf("Kind = %v, want KindString", tok.Kind)
	}
	if !tok.HasEscape {
		t.Fatalf("HasEscape = false, want true")
	}
	got := DecodeString(data, tok.Text)
	want := "it's A fine"
	if got != want {
		t.Fatalf("DecodeString() = %q, want %q", got, want)
	}
}

func TestWideUnicodeEscape(t *testing.T) {
	// \X2\00E9\X0\ decodes to 'é' (U+00E9).
	data := []byte("'caf\\X2\\00E9\\X0\\'")
	l := NewLexer(data)
	tok, err := l.Next()
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	got := DecodeString(data, tok.Text)
	if got != "café" {
		t.Fatalf("DecodeString() = %q, want %q", got, "café")
	}
}

func TestMalformedByte(t *testing.T) {
	l := NewLexer([]byte("@"))
	if _, err := l.Next(); err == nil {
		t.Fatalf("Next() error = nil, want malformed error")
	}
}

func TestBlockComment(t *testing.T) {
	toks := scanAll(t, "1 /* skip me */ 2")
	if len(toks) != 2 || toks[0].IntVal != 1 || toks[1].IntVal != 2 {
		t.Fatalf("scan with comment = %+v", toks)
	}
}

func TestEnumSpan(t *testing.T) {
	data := []byte(".AREA.")
	l := NewLexer(data)
	tok, err := l.Next()
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if string(data[tok.Text.Start:tok.Text.End]) != "AREA" {
		t.Fatalf("enum text = %q, want AREA", data[tok.Text.Start:tok.Text.End])
	}
}
