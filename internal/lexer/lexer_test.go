package lexer_test

import (
	"testing"

	"chearmyp/internal/diag"
	"chearmyp/internal/lexer"
	"chearmyp/internal/source"
	"chearmyp/internal/token"
)

// testReporter собирает диагностики для проверки.
type testReporter struct {
	diags []diagnostic
}

type diagnostic struct {
	code diag.Code
	sev  diag.Severity
	msg  string
	sp   source.Span
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, _ []diag.Note) {
	r.diags = append(r.diags, diagnostic{code: code, sev: sev, msg: msg, sp: primary})
}

func (r *testReporter) has(code diag.Code) bool {
	for _, d := range r.diags {
		if d.code == code {
			return true
		}
	}
	return false
}

func newLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.chy", []byte(input))
	file := fs.Get(id)
	reporter := &testReporter{}
	return lexer.New(file, lexer.Options{Reporter: reporter}), reporter
}

func collectTokens(lx *lexer.Lexer) []token.Token {
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

type want struct {
	kind  token.Kind
	depth int
	text  string
	label string
	lines []string
}

func checkTokens(t *testing.T, got []token.Token, expected []want) {
	t.Helper()
	if len(got) != len(expected) {
		for i, tok := range got {
			t.Logf("token %d: %v depth=%d text=%q", i, tok.Kind, tok.Depth, tok.Text)
		}
		t.Fatalf("got %d tokens, want %d", len(got), len(expected))
	}
	for i, w := range expected {
		tok := got[i]
		if tok.Kind != w.kind {
			t.Errorf("token %d: kind = %v, want %v", i, tok.Kind, w.kind)
			continue
		}
		if tok.Depth != w.depth {
			t.Errorf("token %d (%v): depth = %d, want %d", i, tok.Kind, tok.Depth, w.depth)
		}
		if string(tok.Text) != w.text {
			t.Errorf("token %d (%v): text = %q, want %q", i, tok.Kind, tok.Text, w.text)
		}
		if string(tok.Label) != w.label {
			t.Errorf("token %d (%v): label = %q, want %q", i, tok.Kind, tok.Label, w.label)
		}
		if len(tok.Lines) != len(w.lines) {
			t.Errorf("token %d (%v): lines = %q, want %q", i, tok.Kind, tok.Lines, w.lines)
			continue
		}
		for j, line := range w.lines {
			if string(tok.Lines[j]) != line {
				t.Errorf("token %d line %d = %q, want %q", i, j, tok.Lines[j], line)
			}
		}
	}
}

func TestLexerClassifiesLines(t *testing.T) {
	input := "# note\n" +
		"###\nblock\n###\n" +
		"root\n" +
		"\tleaf|\n" +
		"\tkey: value\n" +
		"\t= raw\n" +
		"\t===\n\tembedded\n\t===\n" +
		"\n" +
		"other\n"

	lx, reporter := newLexer(input)
	checkTokens(t, collectTokens(lx), []want{
		{kind: token.LineComment, text: " note"},
		{kind: token.BlockComment, lines: []string{"block"}},
		{kind: token.Complex, text: "root"},
		{kind: token.Simplex, depth: 1, text: "leaf"},
		{kind: token.Attacher, depth: 1, label: "key", text: "value"},
		{kind: token.LineOthertongue, depth: 1, text: " raw"},
		{kind: token.BlockOthertongue, depth: 1, lines: []string{"\tembedded"}},
		{kind: token.Complex, text: "other"},
		{kind: token.EOF},
	})
	if len(reporter.diags) != 0 {
		t.Errorf("unexpected diagnostics: %+v", reporter.diags)
	}
}

func TestLexerLineForms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  want
	}{
		{"fence with text is a line comment", "### Section", want{kind: token.LineComment, text: "## Section"}},
		{"double hash", "##", want{kind: token.LineComment, text: "#"}},
		{"fence with text is a line othertongue", "=== x", want{kind: token.LineOthertongue, text: "== x"}},
		{"empty attacher", "key:", want{kind: token.Attacher, label: "key"}},
		{"attacher with tab", "key:\tv", want{kind: token.Attacher, label: "key", text: "v"}},
		{"colon without blank", "url:http", want{kind: token.Complex, text: "url:http"}},
		{"colon after blank", "a b: c", want{kind: token.Complex, text: "a b: c"}},
		{"leading colon", ":x", want{kind: token.Complex, text: ":x"}},
		{"trailing blanks trimmed", "name  \t", want{kind: token.Complex, text: "name"}},
		{"simplex with spaces", "big cat|", want{kind: token.Simplex, text: "big cat"}},
		{"deep complex", "\t\t\tx", want{kind: token.Complex, depth: 3, text: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, _ := newLexer(tt.input)
			checkTokens(t, collectTokens(lx), []want{tt.want, {kind: token.EOF}})
		})
	}
}

func TestLexerSkipsBlankLines(t *testing.T) {
	lx, _ := newLexer("\n\t\n  \na\n\n")
	checkTokens(t, collectTokens(lx), []want{
		{kind: token.Complex, text: "a"},
		{kind: token.EOF},
	})
}

func TestLexerNestedFenceDoesNotCloseOuterBlock(t *testing.T) {
	input := "\t###\n\t\tinner\n###\n\t###\nafter"
	lx, reporter := newLexer(input)
	checkTokens(t, collectTokens(lx), []want{
		{kind: token.BlockComment, depth: 1, lines: []string{"\t\tinner", "###"}},
		{kind: token.Complex, text: "after"},
		{kind: token.EOF},
	})
	if reporter.has(diag.LexUnterminatedBlock) {
		t.Error("block is closed, no diagnostic expected")
	}
}

func TestLexerUnterminatedBlock(t *testing.T) {
	lx, reporter := newLexer("===\na\n\nb")
	checkTokens(t, collectTokens(lx), []want{
		{kind: token.BlockOthertongue, lines: []string{"a", "", "b"}},
		{kind: token.EOF},
	})
	if !reporter.has(diag.LexUnterminatedBlock) {
		t.Fatal("expected LexUnterminatedBlock")
	}
	if reporter.diags[0].sev != diag.SevInfo {
		t.Errorf("severity = %v, want info", reporter.diags[0].sev)
	}
}

func TestLexerWarnings(t *testing.T) {
	lx, reporter := newLexer("  spaced\n|\n")
	checkTokens(t, collectTokens(lx), []want{
		{kind: token.Complex, text: "  spaced"},
		{kind: token.Simplex},
		{kind: token.EOF},
	})
	if !reporter.has(diag.LexSpaceIndent) {
		t.Error("expected LexSpaceIndent")
	}
	if !reporter.has(diag.LexEmptyName) {
		t.Error("expected LexEmptyName")
	}
}

func TestLexerSpans(t *testing.T) {
	input := "a\n\tb|\n###\nx\n###\n"
	lx, _ := newLexer(input)
	tokens := collectTokens(lx)
	spans := [][2]uint32{{0, 1}, {2, 5}, {6, 15}}
	for i, sp := range spans {
		if tokens[i].Span.Start != sp[0] || tokens[i].Span.End != sp[1] {
			t.Errorf("token %d span = %d..%d, want %d..%d",
				i, tokens[i].Span.Start, tokens[i].Span.End, sp[0], sp[1])
		}
	}
}

func TestLexerPeekAndEOF(t *testing.T) {
	lx, _ := newLexer("a\nb")
	if p := lx.Peek(); p.Kind != token.Complex || string(p.Text) != "a" {
		t.Fatalf("Peek = %v %q", p.Kind, p.Text)
	}
	if p := lx.Peek(); string(p.Text) != "a" {
		t.Fatalf("second Peek = %q", p.Text)
	}
	if n := lx.Next(); string(n.Text) != "a" {
		t.Fatalf("Next after Peek = %q", n.Text)
	}
	lx.Next()
	for range 3 {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("expected EOF, got %v", tok.Kind)
		}
	}
}

func TestLexerNilReporter(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("x.chy", []byte("  |\n===\nopen")))
	lx := lexer.New(file, lexer.Options{})
	if got := len(collectTokens(lx)); got != 3 {
		t.Errorf("got %d tokens, want 3", got)
	}
}
