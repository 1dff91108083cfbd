package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"chearmyp/internal/diag"
	"chearmyp/internal/node"
	"chearmyp/internal/source"
	"chearmyp/internal/token"
)

const doc = "a\n\tkey: value\n"

func fixture(t *testing.T) (*source.FileSet, source.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	return fs, fs.AddVirtual("doc.chy", []byte(doc))
}

func TestPrettyCaretUnderSpan(t *testing.T) {
	fs, id := fixture(t)
	bag := diag.NewBag(0)
	bag.Add(&diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.SynOverIndent,
		Message:  "too deep",
		Primary:  source.Span{File: id, Start: 3, End: 13},
	})

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	want := "doc.chy:2:2: WARNING SYN2001: too deep\n" +
		" 2 |     key: value\n" +
		"   |     ^~~~~~~~~~\n"
	if got := buf.String(); got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestPrettyContextAndNotes(t *testing.T) {
	fs, id := fixture(t)
	bag := diag.NewBag(0)
	bag.Add(&diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.SynAttacherChild,
		Message:  "attacher cannot hold this line",
		Primary:  source.Span{File: id, Start: 3, End: 6},
		Notes:    []diag.Note{{Span: source.Span{File: id, Start: 0, End: 1}, Msg: "owner"}},
	})

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, ShowNotes: true})
	out := buf.String()
	for _, want := range []string{" 1 | a\n", " 2 |     key: value\n", "^~~\n", "note: doc.chy:1:1: owner\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{})
	if strings.Contains(buf.String(), "note:") {
		t.Errorf("notes shown without ShowNotes:\n%s", buf.String())
	}
}

func TestPrettyWithoutLocation(t *testing.T) {
	fs, _ := fixture(t)
	bag := diag.NewBag(0)
	bag.Add(&diag.Diagnostic{Severity: diag.SevError, Code: diag.IOLoadFileError, Message: "failed to load file: gone"})

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	if got, want := buf.String(), "ERROR IO4001: failed to load file: gone\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("/home/user/project/src/test.chy", []byte(doc))
	bag := diag.NewBag(0)
	bag.Add(&diag.Diagnostic{Severity: diag.SevInfo, Code: diag.LexUnterminatedBlock, Primary: source.Span{File: id}})

	tests := []struct {
		mode PathMode
		want string
	}{
		{PathModeAbsolute, "/home/user/project/src/test.chy:1:1"},
		{PathModeBasename, "test.chy:1:1"},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			if !strings.HasPrefix(buf.String(), tt.want) {
				t.Errorf("got %q, want prefix %q", buf.String(), tt.want)
			}
		})
	}
}

func TestJSONDiagnostics(t *testing.T) {
	fs, id := fixture(t)
	bag := diag.NewBag(0)
	bag.Add(&diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.SynOrphanAttacher,
		Message:  "orphan",
		Primary:  source.Span{File: id, Start: 3, End: 13},
		Notes:    []diag.Note{{Span: source.Span{File: id}, Msg: "n"}},
	})
	bag.Add(&diag.Diagnostic{Severity: diag.SevError, Code: diag.IOLoadFileError, Message: "gone"})

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true})
	if out.Count != 2 {
		t.Fatalf("count = %d", out.Count)
	}
	first := out.Diagnostics[0]
	if first.Code != "SYN2002" || first.Location == nil || first.Location.StartLine != 2 || first.Location.StartCol != 2 {
		t.Errorf("first = %+v", first)
	}
	if len(first.Notes) != 1 {
		t.Errorf("notes = %+v", first.Notes)
	}
	if out.Diagnostics[1].Location != nil {
		t.Errorf("load error has a location")
	}

	limited := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if limited.Count != 1 || limited.Diagnostics[0].Location.StartLine != 0 {
		t.Errorf("limited = %+v", limited)
	}

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	var decoded DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if decoded.Count != 2 {
		t.Errorf("decoded count = %d", decoded.Count)
	}
}

func TestFormatTokens(t *testing.T) {
	fs, id := fixture(t)
	f := fs.Get(id)
	tokens := []token.Token{
		{Kind: token.Complex, Span: f.Span(0, 1), Text: []byte("a")},
		{Kind: token.Attacher, Depth: 1, Span: f.Span(2, 13), Label: []byte("key"), Text: []byte("value")},
		{Kind: token.EOF, Span: f.Span(14, 14)},
	}

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, tokens, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %q", lines)
	}
	if !strings.Contains(lines[1], `d=1 "key": "value" at 2:1-2:12`) {
		t.Errorf("attacher line = %q", lines[1])
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, tokens); err != nil {
		t.Fatal(err)
	}
	var decoded []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 3 || decoded[1].Label != "key" || decoded[1].Depth != 1 {
		t.Errorf("decoded = %+v", decoded)
	}
}

func sampleRecords() []node.Record {
	return []node.Record{{
		Kind: "complex", Name: "a", Start: 0, End: 13,
		Attachers: []node.Record{{Kind: "attacher", Label: "key", Content: "value", Start: 2, End: 13}},
	}}
}

func TestFormatTreePretty(t *testing.T) {
	fs, id := fixture(t)
	var buf bytes.Buffer
	if err := FormatTreePretty(&buf, "doc.chy", sampleRecords(), fs, id); err != nil {
		t.Fatal(err)
	}
	want := "doc.chy (1 roots)\n" +
		"└── complex \"a\" @ 1:1-2:12\n" +
		"    └── attacher \"key\": \"value\" @ 2:1-2:12\n"
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}

	buf.Reset()
	if err := FormatTreePretty(&buf, "doc.chy", sampleRecords(), nil, 0); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "@ 0..13") {
		t.Errorf("offsets missing without a file set:\n%s", buf.String())
	}
}

func TestForestEncodings(t *testing.T) {
	out := NewForestOutput("doc.chy", sampleRecords(), false)

	var buf bytes.Buffer
	if err := FormatForestYAML(&buf, out); err != nil {
		t.Fatal(err)
	}
	var fromYAML ForestOutput
	if err := yaml.Unmarshal(buf.Bytes(), &fromYAML); err != nil {
		t.Fatalf("yaml: %v\n%s", err, buf.String())
	}
	if fromYAML.Roots != 1 || fromYAML.Forest[0].Attachers[0].Content != "value" {
		t.Errorf("yaml round trip = %+v", fromYAML)
	}

	buf.Reset()
	if err := FormatForestMsgpack(&buf, out); err != nil {
		t.Fatal(err)
	}
	var fromMsgpack ForestOutput
	if err := msgpack.Unmarshal(buf.Bytes(), &fromMsgpack); err != nil {
		t.Fatal(err)
	}
	if fromMsgpack.File != "doc.chy" || fromMsgpack.Forest[0].Name != "a" {
		t.Errorf("msgpack round trip = %+v", fromMsgpack)
	}

	buf.Reset()
	if err := FormatForestJSON(&buf, NewForestOutput("empty.chy", nil, true)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"forest": []`) || !strings.Contains(buf.String(), `"cached": true`) {
		t.Errorf("json = %s", buf.String())
	}
}
