// Package diag defines the diagnostic model shared by the lexer, the parser
// and the driver.
//
// Diagnostics are data, not errors. Parsing an outline never fails: unterminated
// blocks and unclosed nodes are closed implicitly, and the oddities met on the
// way (space indentation, attachers without an owner, over-indented lines) are
// recorded here so the CLI can show them. Go errors are reserved for I/O.
//
// Producers emit through a Reporter; BagReporter collects into a Bag which
// supports sorting, deduplication and limits. Rendering lives in internal/diagfmt.
package diag
