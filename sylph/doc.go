// Package sylph implements the Sylph execution engine: lexer, recursive
// descent parser, and tree-walking evaluator for a small imperative language
// with the following constructs:
//   - Function definitions via `def name(params...) ... end`, top level only.
//   - Parenthesis-free calls with an optional comma between arguments, so
//     `add x y` and `multiply 2, 3, 4` both work.
//   - Integer literals with graduated widths i8 < i16 < i32 < i64 < i128 <
//     bigint: an explicit suffix (`10i64`) pins the width, an unsuffixed
//     literal takes the narrowest width that holds it.
//   - Arithmetic (+, -, *, /, %) that promotes to the wider operand width and
//     fails with an OverflowError rather than wrapping; bigint never
//     overflows.
//   - Comparisons on integer or string pairs, producing the only bools in the
//     language.
//   - `if`/`else`, `while`, assignment and compound assignment (+=, -=, *=,
//     %=), and the `out` statement, the sole observable effect.
//
// Comments beginning with `//` are ignored. Statements end at newlines.
// Function bodies are isolated: they see their parameters and their own
// assignments, never the caller's or the global frame's names. The engine
// enforces a step quota and a recursion limit, rejecting programs that exceed
// configured execution bounds.
package sylph
