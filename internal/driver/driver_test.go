package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"chearmyp/internal/diag"
	"chearmyp/internal/observ"
	"chearmyp/internal/project"
	"chearmyp/internal/token"
	"chearmyp/internal/trace"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func codesOf(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

const outline = "root\n\tkey: value\n\tleaf|\n"

const outlineDump = "complex \"root\"\n" +
	"\tattacher \"key\" \"value\" []\n" +
	"\tsimplex \"leaf\"\n"

func TestTokenize(t *testing.T) {
	path := writeFile(t, t.TempDir(), "doc.chy", outline)
	res, err := Tokenize(path, 0)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := []token.Kind{token.Complex, token.Attacher, token.Simplex, token.EOF}
	if len(res.Tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(res.Tokens), len(want))
	}
	for i, k := range want {
		if res.Tokens[i].Kind != k {
			t.Errorf("token %d = %v, want %v", i, res.Tokens[i].Kind, k)
		}
	}
	if eof := res.Tokens[3].Span; eof.Start != uint32(len(outline)) || eof.End != eof.Start {
		t.Errorf("EOF span = %v, want empty at end of file", eof)
	}
	if res.Bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %v", codesOf(res.Bag))
	}
}

func TestTokenizeMissingFile(t *testing.T) {
	if _, err := Tokenize(filepath.Join(t.TempDir(), "nope.chy"), 0); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseTextModes(t *testing.T) {
	path := writeFile(t, t.TempDir(), "doc.chy", outline)

	borrowed, err := Parse(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if borrowed.Borrowed == nil || borrowed.Owned != nil {
		t.Fatalf("borrowed mode produced owned forest")
	}
	if got := borrowed.Dump(); got != outlineDump {
		t.Errorf("dump mismatch:\n%s", got)
	}

	owned, err := Parse(context.Background(), path, Options{Text: TextOwned})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if owned.Owned == nil || owned.Borrowed != nil {
		t.Fatalf("owned mode produced borrowed forest")
	}
	if got := owned.Dump(); got != outlineDump {
		t.Errorf("dump mismatch:\n%s", got)
	}
	if owned.Roots() != 1 || len(owned.Records()) != 1 {
		t.Errorf("roots = %d, records = %d", owned.Roots(), len(owned.Records()))
	}
}

func TestParseRecordsTimer(t *testing.T) {
	path := writeFile(t, t.TempDir(), "doc.chy", outline)
	timer := observ.NewTimer()
	if _, err := Parse(context.Background(), path, Options{Timer: timer}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	names := map[string]bool{}
	for _, p := range timer.Report().Phases {
		names[p.Name] = true
	}
	if !names["load"] || !names["parse"] {
		t.Errorf("phases = %v, want load and parse", names)
	}
}

func TestParseCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.chy", "a\n\t\t\tb\n")
	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	opts := Options{Cache: cache}

	first, err := Parse(context.Background(), path, opts)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if first.Cached {
		t.Fatal("first parse must miss")
	}
	if first.Owned == nil {
		t.Fatal("cached runs must produce owned forests")
	}

	second, err := Parse(context.Background(), path, opts)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !second.Cached {
		t.Fatal("second parse must hit")
	}
	if first.Dump() != second.Dump() {
		t.Errorf("dumps differ:\n%s\nvs\n%s", first.Dump(), second.Dump())
	}

	a, b := first.Bag.Items(), second.Bag.Items()
	if len(a) != 1 || len(b) != 1 {
		t.Fatalf("diagnostics: %v vs %v", codesOf(first.Bag), codesOf(second.Bag))
	}
	if a[0].Code != diag.SynOverIndent || b[0].Code != a[0].Code {
		t.Errorf("codes = %v, %v", a[0].Code, b[0].Code)
	}
	if a[0].Primary != b[0].Primary || a[0].Message != b[0].Message {
		t.Errorf("restored diagnostic differs: %+v vs %+v", b[0], a[0])
	}
	if second.Owned[0].Span() != first.Owned[0].Span() {
		t.Errorf("span %v, want %v", second.Owned[0].Span(), first.Owned[0].Span())
	}
}

func TestCacheKeyDependsOnOptions(t *testing.T) {
	res := ParseSource(context.Background(), "x.chy", []byte(outline), Options{})
	plain := cacheKey(res.File, Options{})
	if plain != cacheKey(res.File, Options{Text: TextOwned}) {
		t.Error("text mode must not change the key")
	}
	if plain == cacheKey(res.File, Options{Normalize: true}) {
		t.Error("normalize must change the key")
	}
	if plain == cacheKey(res.File, Options{MaxDiagnostics: 3}) {
		t.Error("diagnostic limit must change the key")
	}
}

func TestDiskCacheSchemaMismatchIsMiss(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := project.Combine(project.Digest{1}, "k")
	p := cache.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	data, err := msgpack.Marshal(&DiskPayload{Schema: diskCacheSchemaVersion + 1, Path: "old"})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, data, 0o600); err != nil {
		t.Fatal(err)
	}
	var out DiskPayload
	hit, err := cache.Get(key, &out)
	if err != nil || hit {
		t.Fatalf("Get = %v, %v; want miss", hit, err)
	}
}

func TestDiskCacheClean(t *testing.T) {
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "c"))
	if err != nil {
		t.Fatal(err)
	}
	key := project.Combine(project.Digest{2})
	if err := cache.Put(key, &DiskPayload{Path: "p"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	var out DiskPayload
	if hit, err := cache.Get(key, &out); err != nil || !hit || out.Path != "p" {
		t.Fatalf("Get = %v, %v, %q", hit, err, out.Path)
	}
	if err := cache.Clean(); err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if hit, err := cache.Get(key, &out); err != nil || hit {
		t.Fatalf("after Clean: %v, %v", hit, err)
	}
	if _, err := os.Stat(cache.Dir()); err != nil {
		t.Errorf("cache dir gone: %v", err)
	}
}

func TestNilDiskCache(t *testing.T) {
	var c *DiskCache
	if err := c.Put(project.Digest{}, &DiskPayload{}); err != nil {
		t.Error(err)
	}
	if hit, err := c.Get(project.Digest{}, &DiskPayload{}); hit || err != nil {
		t.Error("nil cache must miss")
	}
	if c.Clean() != nil || c.Dir() != "" {
		t.Error("nil cache Clean/Dir")
	}
}

func TestParseDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.chy", "b|\n")
	writeFile(t, dir, "a.chy", "a\n\tk: v\n")
	writeFile(t, dir, "nested/c.chy", "# c\n")
	writeFile(t, dir, "notes.txt", "ignored\n")

	var (
		mu     sync.Mutex
		events = map[string][]ProgressEvent{}
	)
	opts := Options{
		Jobs: 2,
		Progress: func(ev ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			events[filepath.Base(ev.File)] = append(events[filepath.Base(ev.File)], ev)
		},
	}
	_, results, err := ParseDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	want := []struct {
		base  string
		roots int
	}{{"a.chy", 1}, {"b.chy", 1}, {"c.chy", 1}}
	if len(results) != len(want) {
		t.Fatalf("got %d results, want %d", len(results), len(want))
	}
	for i, w := range want {
		r := results[i]
		if filepath.Base(r.Path) != w.base {
			t.Errorf("result %d = %s, want %s", i, r.Path, w.base)
		}
		if r.Roots() != w.roots {
			t.Errorf("%s: roots = %d, want %d", w.base, r.Roots(), w.roots)
		}
		evs := events[w.base]
		if len(evs) == 0 || evs[len(evs)-1].Status != StatusDone {
			t.Errorf("%s: last progress event %+v, want done", w.base, evs)
		}
	}
}

func TestParseDirLoadError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ok.chy", "a\n")
	if err := os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "broken.chy")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	_, results, err := ParseDir(context.Background(), dir, Options{})
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	broken := results[0]
	if broken.File != nil || broken.Roots() != 0 {
		t.Errorf("broken file produced a forest")
	}
	if codes := codesOf(broken.Bag); len(codes) != 1 || codes[0] != diag.IOLoadFileError {
		t.Errorf("codes = %v", codes)
	}
	if results[1].Roots() != 1 {
		t.Errorf("ok.chy roots = %d", results[1].Roots())
	}
}

func TestParseDirEmpty(t *testing.T) {
	fs, results, err := ParseDir(context.Background(), t.TempDir(), Options{})
	if err != nil || results != nil || fs == nil {
		t.Fatalf("ParseDir = %v, %v, %v", fs, results, err)
	}
}

func TestParseDirCustomExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.outline", "a\n")
	writeFile(t, dir, "b.chy", "b\n")
	_, results, err := ParseDir(context.Background(), dir, Options{Extension: ".outline"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || filepath.Base(results[0].Path) != "a.outline" {
		t.Fatalf("results = %+v", results)
	}
}

func TestParseTracesTokensAtDebug(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)
	ParseSource(ctx, "doc.chy", []byte("a\n\tb|\n"), Options{})

	var points []string
	spans := map[string]bool{}
	for _, ev := range ring.Snapshot() {
		switch ev.Kind {
		case trace.KindPoint:
			if ev.Scope == trace.ScopeToken {
				points = append(points, ev.Name)
			}
		case trace.KindSpanEnd:
			spans[ev.Name] = true
		}
	}
	want := []string{"Complex", "Simplex", "EOF"}
	if len(points) != len(want) {
		t.Fatalf("token points = %v, want %v", points, want)
	}
	for i := range want {
		if points[i] != want[i] {
			t.Errorf("point %d = %s, want %s", i, points[i], want[i])
		}
	}
	if !spans["parse_file"] || !spans["lex_parse"] {
		t.Errorf("spans = %v", spans)
	}
}

func TestParseNoTokenPointsBelowDebug(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelDetail)
	ctx := trace.WithTracer(context.Background(), ring)
	ParseSource(ctx, "doc.chy", []byte("a\n"), Options{})
	for _, ev := range ring.Snapshot() {
		if ev.Scope == trace.ScopeToken {
			t.Fatalf("unexpected token event %+v", ev)
		}
	}
}
