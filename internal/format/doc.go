// Package format reprints ss modules in canonical layout: one space around
// `:`, `=` and `->`, `, ` between parameters. Text between items (comments,
// blank lines) is kept as is.
//
// Назначение: форматтер `ssc fmt` поверх уже разобранного AST.
// Не делает: перенос длинных строк, сортировку объявлений, IO.
// Зависимости: internal/ast, internal/source, internal/lexer, internal/parser.
package format
