// Package binder walks a token stream and drives a scope.Stack the way an
// evaluator would: `{` pushes, `}` pops, `var NAME = OPERAND` declares and
// `NAME = OPERAND` assigns. OPERAND is a literal or a name; operator
// expressions are recognised and reported but never evaluated.
//
// The binder never stops on the first problem. Every diagnostic goes to the
// configured diag.Reporter and binding resumes at the next token.
package binder
