package lexer

import (
	"chearmyp/internal/diag"
	"chearmyp/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil — тогда диагностики молча отбрасываются
}

func (lx *Lexer) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, sev, sp, msg, nil)
	}
}
