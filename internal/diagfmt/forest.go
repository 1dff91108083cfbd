package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"chearmyp/internal/node"
	"chearmyp/internal/source"
)

// ForestOutput is one parsed document in machine-readable form.
type ForestOutput struct {
	File   string        `json:"file" yaml:"file" msgpack:"file"`
	Roots  int           `json:"roots" yaml:"roots" msgpack:"roots"`
	Cached bool          `json:"cached,omitempty" yaml:"cached,omitempty" msgpack:"cached,omitempty"`
	Forest []node.Record `json:"forest" yaml:"forest" msgpack:"forest"`
}

func NewForestOutput(path string, records []node.Record, cached bool) ForestOutput {
	if records == nil {
		records = []node.Record{}
	}
	return ForestOutput{File: path, Roots: len(records), Cached: cached, Forest: records}
}

// FormatForestJSON выводит лес в JSON
func FormatForestJSON(w io.Writer, out ForestOutput) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// FormatForestYAML выводит лес в YAML; несколько документов разделяются "---".
func FormatForestYAML(w io.Writer, outs ...ForestOutput) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	for _, out := range outs {
		if err := encoder.Encode(out); err != nil {
			return err
		}
	}
	return encoder.Close()
}

// FormatForestsJSON выводит несколько документов одним массивом
func FormatForestsJSON(w io.Writer, outs []ForestOutput) error {
	if outs == nil {
		outs = []ForestOutput{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(outs)
}

// FormatForestMsgpack writes each document as one msgpack value, back to back.
func FormatForestMsgpack(w io.Writer, outs ...ForestOutput) error {
	enc := msgpack.NewEncoder(w)
	for _, out := range outs {
		if err := enc.Encode(out); err != nil {
			return err
		}
	}
	return nil
}

type treeNode struct {
	label    string
	children []*treeNode
}

// FormatTreePretty рисует лес деревом с позициями узлов.
// fs may be nil; spans are then shown as byte offsets.
func FormatTreePretty(w io.Writer, path string, records []node.Record, fs *source.FileSet, file source.FileID) error {
	root := &treeNode{label: fmt.Sprintf("%s (%d roots)", path, len(records))}
	for i := range records {
		root.children = append(root.children, buildRecordTreeNode(&records[i], fs, file))
	}
	var sb strings.Builder
	sb.WriteString(root.label)
	sb.WriteByte('\n')
	for i, child := range root.children {
		renderTree(&sb, child, "", i == len(root.children)-1)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func buildRecordTreeNode(r *node.Record, fs *source.FileSet, file source.FileID) *treeNode {
	var label strings.Builder
	label.WriteString(r.Kind)
	switch {
	case r.Label != "":
		fmt.Fprintf(&label, " %s: %s", strconv.Quote(r.Label), strconv.Quote(r.Content))
	case r.Name != "":
		label.WriteString(" " + strconv.Quote(r.Name))
	case r.Line != "":
		label.WriteString(" " + strconv.Quote(r.Line))
	}
	if len(r.Lines) > 0 {
		fmt.Fprintf(&label, " (%d lines)", len(r.Lines))
	}
	fmt.Fprintf(&label, " @ %s", formatSpan(source.Span{File: file, Start: r.Start, End: r.End}, fs))

	n := &treeNode{label: label.String()}
	for i := range r.Attachers {
		n.children = append(n.children, buildRecordTreeNode(&r.Attachers[i], fs, file))
	}
	for i := range r.Children {
		n.children = append(n.children, buildRecordTreeNode(&r.Children[i], fs, file))
	}
	return n
}

func renderTree(sb *strings.Builder, n *treeNode, prefix string, last bool) {
	branch, next := "├── ", "│   "
	if last {
		branch, next = "└── ", "    "
	}
	sb.WriteString(prefix)
	sb.WriteString(branch)
	sb.WriteString(n.label)
	sb.WriteByte('\n')
	for i, child := range n.children {
		renderTree(sb, child, prefix+next, i == len(n.children)-1)
	}
}

func formatSpan(sp source.Span, fs *source.FileSet) string {
	if fs == nil || int(sp.File) >= fs.Len() {
		return fmt.Sprintf("%d..%d", sp.Start, sp.End)
	}
	start, end := fs.Resolve(sp)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}
