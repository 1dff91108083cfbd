package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"chearmyp/internal/driver"
	"chearmyp/internal/project"
)

func newTestRoot(child *cobra.Command) *cobra.Command {
	root := &cobra.Command{Use: "chearmyp", SilenceUsage: true, SilenceErrors: true}
	registerGlobalFlags(root)
	root.AddCommand(child)
	return root
}

func settingsFor(t *testing.T, target string, args ...string) (*settings, error) {
	t.Helper()
	var got *settings
	child := &cobra.Command{
		Use:  "parse",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, a []string) error {
			s, err := loadSettings(cmd, a[0])
			got = s
			return err
		},
	}
	registerParseFlags(child)
	root := newTestRoot(child)
	root.SetArgs(append(append([]string{"parse", "--color", "off"}, args...), target))
	err := root.Execute()
	return got, err
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSettingsDefaults(t *testing.T) {
	doc := writeDoc(t, t.TempDir(), "a.chy", "a\n")
	s, err := settingsFor(t, doc, "--no-manifest")
	if err != nil {
		t.Fatal(err)
	}
	if s.format != "dump" || s.text != driver.TextBorrowed || s.maxDiagnostics != 100 || s.color {
		t.Errorf("settings = %+v", s)
	}
	if s.extension != driver.DefaultExtension || s.cache || s.manifest != nil {
		t.Errorf("settings = %+v", s)
	}
}

const manifest = `[parse]
text = "owned"
normalize = true
jobs = 3
cache = true

[output]
format = "yaml"
max-diagnostics = 7

[trace]
level = "phase"
`

func TestSettingsFromManifest(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, project.ManifestName, manifest)
	doc := writeDoc(t, dir, "a.chy", "a\n")

	s, err := settingsFor(t, doc)
	if err != nil {
		t.Fatal(err)
	}
	if s.manifest == nil {
		t.Fatal("manifest not found")
	}
	if s.text != driver.TextOwned || !s.normalize || s.jobs != 3 || !s.cache {
		t.Errorf("parse section not applied: %+v", s)
	}
	if s.format != "yaml" || s.maxDiagnostics != 7 || s.trace.Level != "phase" {
		t.Errorf("output/trace sections not applied: %+v", s)
	}
}

func TestFlagsOverrideManifest(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, project.ManifestName, manifest)

	s, err := settingsFor(t, dir, "--format", "json", "--jobs", "1", "--max-diagnostics", "5", "--text", "borrowed", "--normalize=false")
	if err != nil {
		t.Fatal(err)
	}
	if s.format != "json" || s.jobs != 1 || s.maxDiagnostics != 5 || s.text != driver.TextBorrowed || s.normalize {
		t.Errorf("flags lost to manifest: %+v", s)
	}
}

func TestInvalidManifest(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, project.ManifestName, "[parse]\nspeed = 1\n")
	if _, err := settingsFor(t, dir); err == nil || !strings.Contains(err.Error(), "unknown keys") {
		t.Fatalf("err = %v", err)
	}
	if _, err := settingsFor(t, dir, "--no-manifest"); err != nil {
		t.Fatalf("--no-manifest still read the manifest: %v", err)
	}
}

func TestEnumParsers(t *testing.T) {
	if m, err := readUIMode(" ON "); err != nil || m != uiModeOn {
		t.Errorf("readUIMode = %v, %v", m, err)
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Error("readUIMode accepted junk")
	}
	if m, err := parseTextMode("owned"); err != nil || m != driver.TextOwned {
		t.Errorf("parseTextMode = %v, %v", m, err)
	}
	if _, err := parseTextMode("shared"); err == nil {
		t.Error("parseTextMode accepted junk")
	}
	if c, err := resolveColor("on", os.Stderr); err != nil || !c {
		t.Errorf("resolveColor(on) = %v, %v", c, err)
	}
	if _, err := resolveColor("rainbow", os.Stderr); err == nil {
		t.Error("resolveColor accepted junk")
	}
}

func TestWriteForests(t *testing.T) {
	ctx := context.Background()
	a := driver.ParseSource(ctx, "a.chy", []byte("a\n\tk: v\n"), driver.Options{})
	b := driver.ParseSource(ctx, "b.chy", []byte("b|\n"), driver.Options{})
	broken := &driver.ParseResult{Path: "gone.chy"}

	var buf bytes.Buffer
	if err := writeForests(&buf, "dump", []*driver.ParseResult{a, broken, b}, true); err != nil {
		t.Fatal(err)
	}
	want := "== a.chy\ncomplex \"a\"\n\tattacher \"k\" \"v\" []\n== b.chy\nsimplex \"b\"\n"
	if got := buf.String(); got != want {
		t.Errorf("dump:\n%s\nwant:\n%s", got, want)
	}

	buf.Reset()
	if err := writeForests(&buf, "json", []*driver.ParseResult{a}, false); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "{") || !strings.Contains(buf.String(), `"file": "a.chy"`) {
		t.Errorf("single json = %s", buf.String())
	}

	buf.Reset()
	if err := writeForests(&buf, "json", []*driver.ParseResult{a, b}, true); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "[") {
		t.Errorf("dir json = %s", buf.String())
	}
}

func TestParseCommand(t *testing.T) {
	dir := t.TempDir()
	doc := writeDoc(t, dir, "a.chy", "root\n\tleaf|\n")
	child := &cobra.Command{Use: "parse", Args: cobra.ExactArgs(1), RunE: runParse}
	registerParseFlags(child)
	root := newTestRoot(child)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"parse", "--no-manifest", "--color", "off", "--ui", "off", doc})
	if err := root.Execute(); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got, want := out.String(), "complex \"root\"\n\tsimplex \"leaf\"\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestParseCommandWithCache(t *testing.T) {
	dir := t.TempDir()
	doc := writeDoc(t, dir, "a.chy", "root\n")
	cacheDir := filepath.Join(dir, "cache")

	for i := range 2 {
		child := &cobra.Command{Use: "parse", Args: cobra.ExactArgs(1), RunE: runParse}
		registerParseFlags(child)
		root := newTestRoot(child)
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetArgs([]string{"parse", "--no-manifest", "--color", "off", "--format", "json", "--cache", "--cache-dir", cacheDir, doc})
		if err := root.Execute(); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		cached := strings.Contains(out.String(), `"cached": true`)
		if cached != (i == 1) {
			t.Errorf("run %d: cached = %v\n%s", i, cached, out.String())
		}
	}
}

func TestTokenizeCommand(t *testing.T) {
	doc := writeDoc(t, t.TempDir(), "a.chy", "# hi\n")
	child := &cobra.Command{Use: "tokenize", Args: cobra.ExactArgs(1), RunE: runTokenize}
	child.Flags().String("format", "pretty", "")
	root := newTestRoot(child)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"tokenize", "--no-manifest", "--color", "off", doc})
	if err := root.Execute(); err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if !strings.Contains(out.String(), "LineComment") || !strings.Contains(out.String(), "EOF") {
		t.Errorf("output = %s", out.String())
	}
}
