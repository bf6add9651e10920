// Package brewin implements the Brewin execution engine. Brewin is a small
// object-oriented language written as S-expressions:
//   - Programs are lists of `(class NAME [inherits BASE] ...)` and
//     `(tclass NAME (T ...) ...)` declarations.
//   - Classes hold typed fields and typed, overloadable methods.
//   - Method bodies use print, set, inputi, inputs, call, while, if,
//     return, begin, and let statements.
//   - Templates are instantiated on demand with `Name@type@type`.
//
// Comments beginning with `#` run to the end of the line. Execution starts
// by instantiating the class named `main` and calling its zero-argument
// `main` method. The interpreter enforces a step quota and a recursion
// limit, rejecting programs that exceed configured execution limits.
package brewin
