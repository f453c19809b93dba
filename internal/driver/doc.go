// Package driver loads quill source files and runs the lexer and binder
// over them, one file at a time or a whole directory in parallel.
//
// Problems in the source text are diagnostics in a per-file diag.Bag; only
// failures of the run itself (unreadable input, invalid UTF-8, cancelled
// context) come back as errors.
package driver
