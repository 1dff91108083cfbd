package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"chearmyp/internal/source"
	"chearmyp/internal/token"
)

type TokenOutput struct {
	Kind  string      `json:"kind"`
	Depth int         `json:"depth"`
	Label string      `json:"label,omitempty"`
	Text  string      `json:"text,omitempty"`
	Lines []string    `json:"lines,omitempty"`
	Span  source.Span `json:"span"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		if _, err := fmt.Fprintf(w, "%3d: %-16s d=%d", i+1, tok.Kind.String(), tok.Depth); err != nil {
			return err
		}
		if tok.Kind == token.Attacher {
			fmt.Fprintf(w, " %q:", tok.Label)
		}
		if len(tok.Text) > 0 || tok.Kind == token.Attacher {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		if tok.IsBlock() {
			quoted := make([]string, len(tok.Lines))
			for j, l := range tok.Lines {
				quoted[j] = fmt.Sprintf("%q", l)
			}
			fmt.Fprintf(w, " [%s]", strings.Join(quoted, ", "))
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d\n",
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{
			Kind:  tok.Kind.String(),
			Depth: tok.Depth,
			Label: string(tok.Label),
			Text:  string(tok.Text),
			Span:  tok.Span,
		}
		for _, l := range tok.Lines {
			out.Lines = append(out.Lines, string(l))
		}
		output = append(output, out)
		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
