package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"chearmyp/internal/diag"
	"chearmyp/internal/node"
	"chearmyp/internal/parser"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func codes(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

// parseSource parses src into an owned forest and collects diagnostics.
func parseSource(t *testing.T, src string) ([]node.Node[node.Owned], *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(100)
	forest := parser.ParseBytes([]byte(src), parser.Options[node.Owned]{
		Reporter: &diag.BagReporter{Bag: bag},
	})
	return forest, bag
}

func expectDump(t *testing.T, forest []node.Node[node.Owned], want string) {
	t.Helper()
	if got := node.Dump(forest); got != want {
		t.Errorf("forest mismatch\n--- got ---\n%s--- want ---\n%s", got, want)
	}
}

func expectCodes(t *testing.T, bag *diag.Bag, want ...diag.Code) {
	t.Helper()
	got := codes(bag)
	if len(got) != len(want) {
		t.Fatalf("diagnostics: %s; want codes %v", diagnosticsSummary(bag), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("diagnostic %d: %s, want %s (%s)", i, got[i].ID(), want[i].ID(), diagnosticsSummary(bag))
		}
	}
}
