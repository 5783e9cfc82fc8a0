// Package fuzztests houses Go fuzz harnesses that exercise the checking
// pipeline (source -> lexer -> parser -> sema). Its goal is to guard against
// panics, hangs and broken span invariants on arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через лексер, парсер и проверку типов.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
