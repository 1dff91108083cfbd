// Package node defines the outline tree produced by the parser.
//
// Every node kind is its own struct behind the Node interface, so asking a
// Simplex for its children does not compile. Payload text is generic over
// Text: Borrowed slices alias the source buffer, Owned strings are
// independent copies (see Own).
//
// Invariants:
//   - Attachers lists hold only *Attacher values.
//   - The forest is a pure ownership tree: no node is reachable twice.
//   - A node is immutable once its parent fragment is closed by the parser.
package node
