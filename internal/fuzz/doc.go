// Package fuzztests houses Go fuzz harnesses for the quill front end
// (source -> lexer -> binder). They smoke test robustness: no panics, no
// hangs, and the token stream invariants from testkit hold on any input.
//
// Назначение: загружать произвольные байты в FileSet и прогонять их через
// лексер и биндер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/binder, internal/diag,
// internal/testkit.

package fuzztests
