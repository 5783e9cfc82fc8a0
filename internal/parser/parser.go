package parser

import (
	"slices"

	"ssc/internal/ast"
	"ssc/internal/diag"
	"ssc/internal/lexer"
	"ssc/internal/source"
	"ssc/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
}

// Parser - состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	file     ast.FileID
	fs       *source.FileSet
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseFile - входная точка для разбора одного файла.
// Требует уже созданный lexer (на основе source.File).
func ParseFile(
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) Result {
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		file:     arenas.Files.New(lx.EmptySpan()),
		fs:       fs,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	p.parseItems()
	var bag *diag.Bag
	if br, ok := opts.Reporter.(*diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{
		File: p.file,
		Bag:  bag,
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}

// parseItems - основной цикл верхнего уровня: пока не EOF - parseItem.
func (p *Parser) parseItems() {
	startSpan := p.lx.Peek().Span
	for !p.at(token.EOF) && !p.opts.Enough() {
		// пустые ';' между items допустимы
		if p.at(token.Semicolon) {
			p.advance()
			continue
		}
		itemID, ok := p.parseItem()
		if !ok {
			p.resyncTop()
			continue
		}
		p.arenas.PushItem(p.file, itemID)
		if p.at(token.Semicolon) {
			p.advance()
		}
	}
	p.arenas.Files.Get(p.file).Span = startSpan.Cover(p.lastSpan)
}

// resyncTop - восстановление после ошибки на верхнем уровне:
// прокручиваем до ';' (съедаем его), до идентификатора в начале строки
// или до EOF.
func (p *Parser) resyncTop() {
	for !p.at(token.EOF) {
		tok := p.lx.Peek()
		if tok.Kind == token.Semicolon {
			p.advance()
			return
		}
		// parseItem всегда съедает имя, так что прогресс гарантирован
		if tok.Kind == token.Ident && startsLine(tok) {
			return
		}
		p.advance()
	}
}

func startsLine(tok token.Token) bool {
	for _, tv := range tok.Leading {
		if tv.Kind == token.TriviaNewline {
			return true
		}
	}
	return false
}

// parseIdent - ожидает Ident и интернирует его.
// На ошибке - репорт SynExpectIdentifier.
func (p *Parser) parseIdent(what string) (source.StringID, source.Span, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return p.arenas.StringsInterner.Intern(tok.Text), tok.Span, true
	}
	p.err(diag.SynExpectIdentifier, "expected "+what+", got "+describe(p.lx.Peek()))
	return source.NoStringID, source.Span{}, false
}

func describe(tok token.Token) string {
	if tok.Kind == token.Ident || tok.Kind == token.IntLit {
		return tok.Kind.Spelling() + " '" + tok.Text + "'"
	}
	if tok.Kind == token.EOF {
		return tok.Kind.Spelling()
	}
	return "'" + tok.Kind.Spelling() + "'"
}
