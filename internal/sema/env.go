package sema

import (
	"ssc/internal/ast"
	"ssc/internal/source"
	"ssc/internal/types"
)

type declaration struct {
	item     ast.ItemID
	span     source.Span
	nameSpan source.Span
	typ      types.TypeID
}

type duplicate struct {
	name   source.StringID
	first  declaration
	second declaration
}

// environment is the outcome of COLLECT.
type environment struct {
	root      *Scope
	decls     map[source.StringID]declaration
	checklist []ast.ItemID
	dups      []duplicate
}

// collect partitions the file's items in one linear pass. It never fails:
// duplicates are only recorded, enforcement belongs to CHECK.
func (c *checker) collect(file *ast.File) environment {
	env := environment{
		decls: make(map[source.StringID]declaration, len(file.Items)),
	}
	for _, id := range file.Items {
		item := c.builder.Items.Get(id)
		if item == nil {
			continue
		}
		switch item.Kind {
		case ast.ItemTypeDecl:
			d, _ := c.builder.Items.TypeDecl(id)
			// явные переменные локальны для своего объявления
			clear(c.declaredVars)
			decl := declaration{
				item:     id,
				span:     item.Span,
				nameSpan: d.NameSpan,
				typ:      c.resolveTypeExpr(d.Type),
			}
			if prev, ok := env.decls[d.Name]; ok {
				env.dups = append(env.dups, duplicate{name: d.Name, first: prev, second: decl})
			}
			env.decls[d.Name] = decl
		case ast.ItemProc, ast.ItemVar:
			env.checklist = append(env.checklist, id)
		}
	}

	names := make(map[source.StringID]types.TypeID, len(env.decls))
	for name, d := range env.decls {
		names[name] = d.typ
	}
	env.root = newRootScope(names)
	return env
}

// resolveTypeExpr interns a syntactic type. Every name denotes a base type;
// explicit free variables map to one fresh variable per distinct id within
// the declaration being resolved.
func (c *checker) resolveTypeExpr(id ast.TypeID) types.TypeID {
	te := c.builder.Types.Get(id)
	if te == nil {
		return types.NoTypeID
	}
	switch te.Kind {
	case ast.TypeExprName:
		data, _ := c.builder.Types.Name(id)
		return c.types.RegisterBase(c.builder.Name(data.Name))
	case ast.TypeExprArrow:
		data, _ := c.builder.Types.Arrow(id)
		params := make([]types.TypeID, len(data.Params))
		for i, p := range data.Params {
			params[i] = c.resolveTypeExpr(p)
		}
		return c.types.RegisterFn(params, c.resolveTypeExpr(data.Result))
	case ast.TypeExprFree:
		data, _ := c.builder.Types.Free(id)
		if v, ok := c.declaredVars[data.Var]; ok {
			return v
		}
		v := c.fresh()
		c.declaredVars[data.Var] = v
		return v
	}
	return types.NoTypeID
}
