// Package token defines line-level token kinds for Chearmyp outline documents.
// Invariants:
//   - Every Token describes whole source lines; Span starts at the first tab of the line.
//   - Text, Label and Lines are slices of the original source (no copies).
//   - Depth is the number of leading TAB bytes; spaces never count as indentation.
//   - Invalid and Empty are control signals of the block scanner, never faults:
//     Invalid means "input remains but this is not a block", Empty means "no input left".
package token
