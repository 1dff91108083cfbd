package ui

import (
	"strings"
	"testing"

	"chearmyp/internal/driver"
)

func newModel(files ...string) *progressModel {
	return NewProgressModel("parse", files, make(chan driver.ProgressEvent)).(*progressModel)
}

func TestApplyEventTracksStatus(t *testing.T) {
	m := newModel("a.chy", "b.chy")
	steps := []struct {
		ev     driver.ProgressEvent
		file   int
		status string
	}{
		{driver.ProgressEvent{File: "a.chy", Stage: driver.StageLoad, Status: driver.StatusWorking}, 0, "loading"},
		{driver.ProgressEvent{File: "a.chy", Stage: driver.StageParse, Status: driver.StatusWorking}, 0, "parsing"},
		{driver.ProgressEvent{File: "a.chy", Stage: driver.StageParse, Status: driver.StatusDone, Roots: 2, Diags: 1}, 0, "done"},
		{driver.ProgressEvent{File: "b.chy", Stage: driver.StageCache, Status: driver.StatusDone, Roots: 1}, 1, "cached"},
	}
	for i, s := range steps {
		m.applyEvent(s.ev)
		if got := m.items[s.file].status; got != s.status {
			t.Errorf("step %d: status = %q, want %q", i, got, s.status)
		}
	}
	finished, roots, diags := m.totals()
	if finished != 2 || roots != 3 || diags != 1 {
		t.Errorf("totals = %d, %d, %d", finished, roots, diags)
	}
	if p := m.percent(); p != 1.0 {
		t.Errorf("percent = %v, want 1", p)
	}
}

func TestUnknownFileIsTracked(t *testing.T) {
	m := newModel()
	m.applyEvent(driver.ProgressEvent{File: "late.chy", Stage: driver.StageLoad, Status: driver.StatusError})
	if len(m.items) != 1 || m.items[0].status != "error" || !m.items[0].final {
		t.Fatalf("items = %+v", m.items)
	}
	m.applyEvent(driver.ProgressEvent{Stage: driver.StageParse, Status: driver.StatusWorking})
	if len(m.items) != 1 {
		t.Errorf("run-wide event created an item")
	}
}

func TestPercentFromStages(t *testing.T) {
	m := newModel("a", "b")
	m.applyEvent(driver.ProgressEvent{File: "a", Stage: driver.StageParse, Status: driver.StatusWorking})
	if p := m.percent(); p != 0.25 {
		t.Errorf("percent = %v, want 0.25", p)
	}
}

func TestViewAfterDone(t *testing.T) {
	m := newModel("a.chy")
	m.applyEvent(driver.ProgressEvent{File: "a.chy", Stage: driver.StageParse, Status: driver.StatusDone, Roots: 4})
	m.Update(doneMsg{})
	out := m.View()
	if !strings.Contains(out, "done: parse [1/1], 4 roots, 0 diagnostics") {
		t.Errorf("header missing:\n%s", out)
	}
	if !strings.Contains(out, "a.chy") || !strings.Contains(out, "4/0") {
		t.Errorf("file line missing:\n%s", out)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"abcdefghij", 8, "ab..."},
		{"abcdef", 2, "ab"},
		{"any", 0, "any"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
