// Package scope implements the runtime stack of lexical environments.
//
// Every binding lives in a shared cell. A pushed frame starts with the
// parent's visible bindings (the same cells) and no owned names; Set through
// an inherited name mutates the cell the ancestor still holds. Declare always
// binds a fresh cell, so shadowing never touches the outer binding. A cell is
// released when the last frame mapping a name to it is popped or rebinds it.
//
// The stack is never empty: Pop refuses to remove the base frame.
package scope
